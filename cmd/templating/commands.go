package templating

import (
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/templating/internal/version"
	"github.com/arthur-debert/templating/pkg/cobrax/topics"
	"github.com/arthur-debert/templating/pkg/config"
	"github.com/arthur-debert/templating/pkg/errors"
	"github.com/arthur-debert/templating/pkg/filesystem"
	"github.com/arthur-debert/templating/pkg/logging"
	"github.com/arthur-debert/templating/pkg/style"
	"github.com/arthur-debert/templating/pkg/ui"
)

// globalOptions holds the persistent flags shared by every command
type globalOptions struct {
	verbosity  int
	basedir    string
	configFile string
	format     string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	g := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "templating",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.SetupLogger(g.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
			_, err := ui.ParseFormat(g.format)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf(MsgNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&g.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVarP(&g.basedir, "basedir", "C", "", MsgFlagBasedir)
	rootCmd.PersistentFlags().StringVar(&g.configFile, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVar(&g.format, "format", "auto", MsgFlagFormat)

	// The topics help command replaces cobra's
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newFilterSourcesCmd(g))
	rootCmd.AddCommand(newFilterTestSourcesCmd(g))
	rootCmd.AddCommand(newDelimitersCmd(g))
	rootCmd.AddCommand(newWatchCmd(g))
	rootCmd.AddCommand(newGenConfigCmd(g))
	rootCmd.AddCommand(newTopicsCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	opts := topics.Options{
		Extensions: []string{".md"},
		Renderer:   topics.NewGlamourRenderer(),
	}
	if err := topics.InitializeWithOptions(rootCmd, helpTopics(), opts); err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}
	if helpCmd, _, err := rootCmd.Find([]string{"help"}); err == nil && helpCmd != rootCmd {
		helpCmd.GroupID = "misc"
	}

	return rootCmd
}

// ReportError writes err to w the way the CLI shows fatal errors. I/O
// failures name the offending path and input errors point at the help.
func ReportError(w io.Writer, err error) {
	fmt.Fprintln(w, style.ErrorStyle.Render(fmt.Sprintf(MsgErrorPrefix, err)))
	if p := errors.Path(err); p != "" && errors.IsIO(err) {
		fmt.Fprintf(w, MsgErrorPath+"\n", p)
	}
	if errors.IsErrorCode(err, errors.ErrInvalidInput) {
		fmt.Fprintln(w, MsgUsageHint)
	}
}

// loadConfig reads the configuration for the selected project, applying
// overrides on top of every other layer
func loadConfig(g *globalOptions, overrides map[string]interface{}) (*config.Config, error) {
	cfg, err := config.Load(config.LoadOptions{
		FS:         filesystem.NewOS(),
		Basedir:    g.basedir,
		ConfigFile: g.configFile,
		Overrides:  overrides,
	})
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadConfig, err)
	}
	return cfg, nil
}

// newRenderer returns the output renderer selected by --format for cmd
func newRenderer(cmd *cobra.Command, g *globalOptions) (ui.Renderer, error) {
	format, err := ui.ParseFormat(g.format)
	if err != nil {
		return nil, err
	}
	return ui.NewRenderer(format, cmd.OutOrStdout())
}

func newTopicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "topics",
		Short:   MsgTopicsShort,
		Long:    MsgTopicsLong,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			helpCmd, _, err := cmd.Root().Find([]string{"help"})
			if err != nil || helpCmd == cmd.Root() {
				return fmt.Errorf(MsgHelpNotFound)
			}
			switch {
			case helpCmd.RunE != nil:
				return helpCmd.RunE(helpCmd, []string{"topics"})
			case helpCmd.Run != nil:
				helpCmd.Run(helpCmd, []string{"topics"})
				return nil
			}
			return fmt.Errorf(MsgHelpNotFound)
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), version.String())
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}
