package templating

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/templating/pkg/config"
	"github.com/arthur-debert/templating/pkg/delimiters"
	"github.com/arthur-debert/templating/pkg/errors"
	"github.com/arthur-debert/templating/pkg/filesystem"
	"github.com/arthur-debert/templating/pkg/materialize"
	"github.com/arthur-debert/templating/pkg/paths"
	"github.com/arthur-debert/templating/pkg/project"
	"github.com/arthur-debert/templating/pkg/render"
	"github.com/arthur-debert/templating/pkg/ui/display"
	"github.com/arthur-debert/templating/pkg/watch"
)

// filterFlags are the per-run settings that can be given on the command line
type filterFlags struct {
	delimiters          []string
	noDefaultDelimiters bool
	encoding            string
	escapeString        string
	overwrite           bool
	skipPoms            bool
	sourceDirectory     string
	outputDirectory     string
}

func addFilterFlags(cmd *cobra.Command, f *filterFlags) {
	flags := cmd.Flags()
	flags.StringArrayVar(&f.delimiters, "delimiter", nil, MsgFlagDelimiter)
	flags.BoolVar(&f.noDefaultDelimiters, "no-default-delimiters", false, MsgFlagNoDefaultDelimiters)
	flags.StringVar(&f.encoding, "encoding", "", MsgFlagEncoding)
	flags.StringVar(&f.escapeString, "escape-string", "", MsgFlagEscapeString)
	flags.BoolVar(&f.overwrite, "overwrite", false, MsgFlagOverwrite)
	flags.BoolVar(&f.skipPoms, "skip-poms", true, MsgFlagSkipPoms)
	flags.StringVar(&f.sourceDirectory, "source-directory", "", MsgFlagSourceDirectory)
	flags.StringVar(&f.outputDirectory, "output-directory", "", MsgFlagOutputDirectory)
}

// overrides returns the configuration keys set by flags the user gave.
// Untouched flags leave the lower layers in effect.
func (f *filterFlags) overrides(cmd *cobra.Command, scope paths.Scope) map[string]interface{} {
	changed := cmd.Flags().Changed
	out := make(map[string]interface{})

	if changed("delimiter") {
		out["delimiters"] = f.delimiters
	}
	if changed("no-default-delimiters") {
		out["use_default_delimiters"] = !f.noDefaultDelimiters
	}
	if changed("encoding") {
		out["encoding"] = f.encoding
	}
	if changed("escape-string") {
		out["escape_string"] = f.escapeString
	}
	if changed("overwrite") {
		out["overwrite"] = f.overwrite
	}
	if changed("skip-poms") {
		out["skip_poms"] = f.skipPoms
	}
	if changed("source-directory") {
		out[string(scope)+".source_directory"] = f.sourceDirectory
	}
	if changed("output-directory") {
		out[string(scope)+".output_directory"] = f.outputDirectory
	}
	return out
}

func newFilterSourcesCmd(g *globalOptions) *cobra.Command {
	return newFilterCmd(g, paths.ScopeMain, "filter-sources", MsgFilterSourcesShort, MsgFilterLong, MsgFilterExample)
}

func newFilterTestSourcesCmd(g *globalOptions) *cobra.Command {
	return newFilterCmd(g, paths.ScopeTest, "filter-test-sources", MsgFilterTestSourcesShort, MsgFilterTestLong, MsgFilterTestExample)
}

func newFilterCmd(g *globalOptions, scope paths.Scope, use, short, long, example string) *cobra.Command {
	f := &filterFlags{}
	cmd := &cobra.Command{
		Use:     use,
		Short:   short,
		Long:    long,
		Example: example,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := newRenderer(cmd, g)
			if err != nil {
				return err
			}
			result, err := filter(g, f.overrides(cmd, scope), scope)
			if err != nil {
				return err
			}
			return renderer.RenderResult(display.NewReport(cmd.Name(), result))
		},
	}
	addFilterFlags(cmd, f)
	return cmd
}

// filter runs one materialization of scope and records the registered
// source roots in the build manifest
func filter(g *globalOptions, overrides map[string]interface{}, scope paths.Scope) (*materialize.Result, error) {
	cfg, err := loadConfig(g, overrides)
	if err != nil {
		return nil, err
	}
	p, err := cfg.NewProject()
	if err != nil {
		return nil, err
	}
	opts, err := materialize.OptionsFromConfig(cfg, p, scope)
	if err != nil {
		return nil, err
	}

	fsys := filesystem.NewOS()
	result, err := materialize.New(fsys, nil).Run(opts)
	if err != nil {
		return nil, err
	}
	if !result.Skipped {
		if err := project.SaveManifest(fsys, p); err != nil {
			return nil, fmt.Errorf(MsgErrSaveManifest, err)
		}
	}
	return result, nil
}

func newDelimitersCmd(g *globalOptions) *cobra.Command {
	f := &filterFlags{}
	cmd := &cobra.Command{
		Use:     "delimiters",
		Short:   MsgDelimitersShort,
		Long:    MsgDelimitersLong,
		Example: MsgDelimitersExample,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := newRenderer(cmd, g)
			if err != nil {
				return err
			}
			cfg, err := loadConfig(g, f.overrides(cmd, paths.ScopeMain))
			if err != nil {
				return err
			}
			specs, err := cfg.DelimiterSpecs()
			if err != nil {
				return err
			}

			defaults := render.DefaultDelimiters()
			set := delimiters.Resolve(cfg.UseDefaultDelimiters, specs, defaults)
			return renderer.RenderResult(display.NewDelimiterTable(set, defaults))
		},
	}

	flags := cmd.Flags()
	flags.StringArrayVar(&f.delimiters, "delimiter", nil, MsgFlagDelimiter)
	flags.BoolVar(&f.noDefaultDelimiters, "no-default-delimiters", false, MsgFlagNoDefaultDelimiters)
	return cmd
}

func newWatchCmd(g *globalOptions) *cobra.Command {
	var (
		test     bool
		debounce time.Duration
	)
	f := &filterFlags{}

	cmd := &cobra.Command{
		Use:     "watch",
		Short:   MsgWatchShort,
		Long:    MsgWatchLong,
		Example: MsgWatchExample,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			scope := paths.ScopeMain
			if test {
				scope = paths.ScopeTest
			}
			renderer, err := newRenderer(cmd, g)
			if err != nil {
				return err
			}
			overrides := f.overrides(cmd, scope)

			source, err := sourceDirectory(g, overrides, scope)
			if err != nil {
				return err
			}

			run := func() error {
				result, err := filter(g, overrides, scope)
				if err != nil {
					return err
				}
				return renderer.RenderResult(display.NewReport(cmd.Name(), result))
			}
			if err := run(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(cmd.ErrOrStderr(), MsgWatching, source)
			return watch.New(debounce).Run(ctx, source, run)
		},
	}

	addFilterFlags(cmd, f)
	cmd.Flags().BoolVar(&test, "test", false, MsgFlagTest)
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, MsgFlagDebounce)
	return cmd
}

// sourceDirectory resolves the template directory of scope, which must exist
// to be watched
func sourceDirectory(g *globalOptions, overrides map[string]interface{}, scope paths.Scope) (string, error) {
	cfg, err := loadConfig(g, overrides)
	if err != nil {
		return "", err
	}
	p, err := cfg.NewProject()
	if err != nil {
		return "", err
	}
	source, _, err := cfg.ResolveScope(p, scope)
	if err != nil {
		return "", err
	}

	if !filesystem.IsDir(filesystem.NewOS(), source) {
		return "", errors.Newf(errors.ErrConfig, "source directory '%s' does not exist", source).WithPath(source)
	}
	return source, nil
}

func newGenConfigCmd(g *globalOptions) *cobra.Command {
	var write, commented, force bool

	cmd := &cobra.Command{
		Use:     "gen-config",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		Example: MsgGenConfigExample,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(g, nil)
			if err != nil {
				return err
			}

			generate := config.Generate
			if commented {
				generate = config.GenerateCommented
			}
			content, err := generate(cfg)
			if err != nil {
				return err
			}

			if !write {
				_, err := fmt.Fprint(cmd.OutOrStdout(), content)
				return err
			}

			fsys := filesystem.NewOS()
			path := filepath.Join(cfg.Basedir, config.FileName)
			exists, err := filesystem.Exists(fsys, path)
			if err != nil {
				return errors.Wrapf(err, errors.ErrIO, "cannot access '%s'", path).WithPath(path)
			}
			if exists && !force {
				return errors.Newf(errors.ErrInvalidInput, MsgConfigExists, path).WithPath(path)
			}
			if err := afero.WriteFile(fsys, path, []byte(content), 0644); err != nil {
				return errors.Wrapf(err, errors.ErrIO, "cannot write '%s'", path).WithPath(path)
			}
			log.Info().Str("path", path).Msg("Configuration written")
			fmt.Fprintf(cmd.OutOrStdout(), MsgConfigWritten, path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	cmd.Flags().BoolVar(&commented, "commented", false, MsgFlagCommented)
	cmd.Flags().BoolVar(&force, "force", false, MsgFlagForce)
	return cmd
}
