package materialize

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/arthur-debert/templating/pkg/delimiters"
	"github.com/arthur-debert/templating/pkg/errors"
	"github.com/arthur-debert/templating/pkg/logging"
	"github.com/arthur-debert/templating/pkg/paths"
	"github.com/arthur-debert/templating/pkg/project"
	"github.com/arthur-debert/templating/pkg/render"
	"github.com/arthur-debert/templating/pkg/treesync"
)

// Registrar announces a materialized directory to the project
type Registrar func(p *project.Project, dir string)

// Options configures one materialization
type Options struct {
	Project *project.Project
	Scope   paths.Scope

	SourceDirectory string
	OutputDirectory string
	// StagingDirectory defaults to the scope's directory under the build directory
	StagingDirectory string

	Encoding              string
	EscapeString          string
	Delimiters            []delimiters.Spec
	UseDefaultDelimiters  bool
	Overwrite             bool
	SkipPoms              bool
	NonFilteredExtensions []string

	// Registrar defaults to the scope's source-root registration
	Registrar Registrar
}

// Result describes a finished materialization
type Result struct {
	Scope   paths.Scope
	Skipped bool
	Reason  string

	SourceDirectory  string
	OutputDirectory  string
	StagingDirectory string
	Delimiters       *delimiters.Set
	Sync             *treesync.Result
}

// Copied returns the number of files written to the output directory
func (r *Result) Copied() int {
	if r.Sync == nil {
		return 0
	}
	return r.Sync.Copied
}

// Materializer runs the pipeline with a renderer on a filesystem
type Materializer struct {
	fs       afero.Fs
	renderer render.Renderer
	logger   zerolog.Logger
}

// New returns a Materializer. A nil renderer selects render.Interpolator.
func New(fsys afero.Fs, renderer render.Renderer) *Materializer {
	if renderer == nil {
		renderer = render.NewInterpolator(fsys)
	}
	return &Materializer{
		fs:       fsys,
		renderer: renderer,
		logger:   logging.GetLogger("materialize"),
	}
}

// Run executes the pipeline. Each failing step aborts the remaining ones.
func (m *Materializer) Run(opts Options) (*Result, error) {
	if opts.Project == nil {
		return nil, errors.New(errors.ErrConfig, "project is required")
	}
	if opts.Scope == "" {
		opts.Scope = paths.ScopeMain
	}
	logger := m.logger.With().Str("scope", string(opts.Scope)).Logger()
	done := logging.LogOperationStart(logger, "materialize")
	defer done()

	result := &Result{
		Scope:           opts.Scope,
		SourceDirectory: opts.SourceDirectory,
		OutputDirectory: opts.OutputDirectory,
	}

	if opts.SkipPoms && opts.Project.IsPOM() {
		result.Skipped = true
		result.Reason = "project packaging is pom"
		logger.Info().Msg("Skipping templates for pom project")
		return result, nil
	}

	if opts.SourceDirectory == "" {
		return nil, errors.New(errors.ErrConfig, "source directory is required")
	}
	if opts.OutputDirectory == "" {
		return nil, errors.New(errors.ErrConfig, "output directory is required")
	}

	info, err := m.fs.Stat(opts.SourceDirectory)
	switch {
	case os.IsNotExist(err):
		result.Skipped = true
		result.Reason = "source directory does not exist"
		logger.Info().Msgf("Request to add '%s' folder. Not added since it does not exist.", opts.SourceDirectory)
		return result, nil
	case err != nil:
		return nil, errors.Wrapf(err, errors.ErrIO, "cannot access source directory '%s'", opts.SourceDirectory).
			WithPath(opts.SourceDirectory)
	case !info.IsDir():
		return nil, errors.Newf(errors.ErrConfig, "source '%s' is not a directory", opts.SourceDirectory).
			WithPath(opts.SourceDirectory)
	}

	staging := opts.StagingDirectory
	if staging == "" {
		staging = paths.StagingDir(opts.Project.BuildDirectory, opts.Scope)
	}
	result.StagingDirectory = staging

	// staging is wiped before and after every run, so the output must stay clear of it
	if paths.Same(staging, opts.OutputDirectory) || paths.Within(staging, opts.OutputDirectory) {
		return nil, errors.Newf(errors.ErrConfig,
			"output directory '%s' must be outside the staging directory '%s'", opts.OutputDirectory, staging).
			WithPath(opts.OutputDirectory)
	}

	result.Delimiters = delimiters.Resolve(opts.UseDefaultDelimiters, opts.Delimiters, m.renderer.DefaultDelimiters())

	if err := m.fs.RemoveAll(staging); err != nil {
		return nil, errors.Wrapf(err, errors.ErrIO, "cannot clear staging directory '%s'", staging).WithPath(staging)
	}

	err = m.renderer.Render(render.Request{
		SourceDir:             opts.SourceDirectory,
		OutputDir:             staging,
		Delimiters:            result.Delimiters,
		EscapeString:          opts.EscapeString,
		Overwrite:             opts.Overwrite,
		Encoding:              opts.Encoding,
		NonFilteredExtensions: opts.NonFilteredExtensions,
		Properties:            opts.Project.InterpolationProperties(),
	})
	if err != nil {
		m.discardStaging(logger, staging)
		return nil, errors.Wrapf(err, errors.ErrProcessing, "rendering '%s' failed", opts.SourceDirectory).
			WithPath(opts.SourceDirectory)
	}

	syncResult, err := treesync.New(m.fs).Sync(staging, opts.OutputDirectory, opts.OutputDirectory)
	if err != nil {
		m.discardStaging(logger, staging)
		return nil, err
	}
	result.Sync = syncResult

	if err := m.fs.RemoveAll(staging); err != nil {
		return nil, errors.Wrapf(err, errors.ErrIO, "cannot delete staging directory '%s'", staging).WithPath(staging)
	}

	if syncResult.UpToDate() {
		logger.Info().Msg("No files have been copied. Up to date.")
	} else {
		logger.Info().Msgf("Copied %d to output directory", syncResult.Copied)
	}

	registrar := opts.Registrar
	if registrar == nil {
		registrar = DefaultRegistrar(opts.Scope)
	}
	registrar(opts.Project, opts.OutputDirectory)
	logger.Debug().Str("dir", opts.OutputDirectory).Msg("Registered source root")

	return result, nil
}

// discardStaging removes a staging tree after a failure. Errors are only logged.
func (m *Materializer) discardStaging(logger zerolog.Logger, staging string) {
	if err := m.fs.RemoveAll(staging); err != nil {
		logger.Warn().Err(err).Str("path", staging).Msg("Failed to remove staging directory")
	}
}
