package templating

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort              = "Materialize template sources into generated sources"
	MsgFilterSourcesShort     = "Filter main template sources"
	MsgFilterTestSourcesShort = "Filter test template sources"
	MsgDelimitersShort        = "Show the effective delimiter set"
	MsgWatchShort             = "Filter again whenever templates change"
	MsgGenConfigShort         = "Print the effective configuration as TOML"
	MsgVersionShort           = "Print version information"
	MsgTopicsShort            = "Display available documentation topics"
	MsgTopicsLong             = "Display a list of all available help topics that provide additional documentation beyond command help."
	MsgCompletionShort        = "Generate shell completion script"

	// Status messages
	MsgWatching      = "Watching %s (Ctrl-C to stop)\n"
	MsgConfigWritten = "Wrote %s\n"
	MsgConfigExists  = "%s already exists, use --force to replace it"
	MsgNoCommand     = "no command specified"
	MsgHelpNotFound  = "help command not found"
	MsgUsageHint     = "Run 'templating help' for usage."
	MsgErrorPrefix   = "Error: %v"
	MsgErrorPath     = "  path: %s"

	// Error messages
	MsgErrLoadConfig   = "failed to load configuration: %w"
	MsgErrSaveManifest = "failed to register source roots: %w"

	// Flag descriptions
	MsgFlagVerbose             = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagBasedir             = "Project directory (default is the current directory)"
	MsgFlagConfig              = "Configuration file (default is <basedir>/templating.toml)"
	MsgFlagFormat              = "Output format: auto, term, text or json"
	MsgFlagDelimiter           = "Delimiter to add, begin*end or a single token (repeatable)"
	MsgFlagNoDefaultDelimiters = "Do not add ${*} and @ to the delimiter set"
	MsgFlagEncoding            = "Character encoding of the templates"
	MsgFlagEscapeString        = "String that keeps a following expression literal"
	MsgFlagOverwrite           = "Render templates even when the staged copy is newer"
	MsgFlagSkipPoms            = "Do nothing for projects with pom packaging"
	MsgFlagSourceDirectory     = "Template source directory"
	MsgFlagOutputDirectory     = "Generated sources output directory"
	MsgFlagTest                = "Watch the test templates instead of the main ones"
	MsgFlagDebounce            = "Quiet period before filtering after a change"
	MsgFlagWrite               = "Write to templating.toml instead of stdout"
	MsgFlagCommented           = "Comment out every value"
	MsgFlagForce               = "Replace an existing templating.toml"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/filter-long.txt
	msgFilterLongRaw string
	MsgFilterLong    = strings.TrimSpace(msgFilterLongRaw)

	//go:embed msgs/filter-example.txt
	msgFilterExampleRaw string
	MsgFilterExample    = strings.TrimRight(msgFilterExampleRaw, "\n")

	//go:embed msgs/filter-test-long.txt
	msgFilterTestLongRaw string
	MsgFilterTestLong    = strings.TrimSpace(msgFilterTestLongRaw)

	//go:embed msgs/filter-test-example.txt
	msgFilterTestExampleRaw string
	MsgFilterTestExample    = strings.TrimRight(msgFilterTestExampleRaw, "\n")

	//go:embed msgs/delimiters-long.txt
	msgDelimitersLongRaw string
	MsgDelimitersLong    = strings.TrimSpace(msgDelimitersLongRaw)

	//go:embed msgs/delimiters-example.txt
	msgDelimitersExampleRaw string
	MsgDelimitersExample    = strings.TrimRight(msgDelimitersExampleRaw, "\n")

	//go:embed msgs/watch-long.txt
	msgWatchLongRaw string
	MsgWatchLong    = strings.TrimSpace(msgWatchLongRaw)

	//go:embed msgs/watch-example.txt
	msgWatchExampleRaw string
	MsgWatchExample    = strings.TrimRight(msgWatchExampleRaw, "\n")

	//go:embed msgs/gen-config-long.txt
	msgGenConfigLongRaw string
	MsgGenConfigLong    = strings.TrimSpace(msgGenConfigLongRaw)

	//go:embed msgs/gen-config-example.txt
	msgGenConfigExampleRaw string
	MsgGenConfigExample    = strings.TrimRight(msgGenConfigExampleRaw, "\n")

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
