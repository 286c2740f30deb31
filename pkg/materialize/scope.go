package materialize

import (
	"github.com/arthur-debert/templating/pkg/config"
	"github.com/arthur-debert/templating/pkg/paths"
	"github.com/arthur-debert/templating/pkg/project"
)

// DefaultRegistrar returns the registration used for scope when none is given
func DefaultRegistrar(scope paths.Scope) Registrar {
	if scope == paths.ScopeTest {
		return (*project.Project).AddTestCompileSourceRoot
	}
	return (*project.Project).AddCompileSourceRoot
}

// OptionsFromConfig builds the options for scope from a loaded configuration
func OptionsFromConfig(cfg *config.Config, p *project.Project, scope paths.Scope) (Options, error) {
	specs, err := cfg.DelimiterSpecs()
	if err != nil {
		return Options{}, err
	}
	source, output, err := cfg.ResolveScope(p, scope)
	if err != nil {
		return Options{}, err
	}

	return Options{
		Project:               p,
		Scope:                 scope,
		SourceDirectory:       source,
		OutputDirectory:       output,
		Encoding:              cfg.EffectiveEncoding(),
		EscapeString:          cfg.EscapeString,
		Delimiters:            specs,
		UseDefaultDelimiters:  cfg.UseDefaultDelimiters,
		Overwrite:             cfg.Overwrite,
		SkipPoms:              cfg.SkipPoms,
		NonFilteredExtensions: cfg.NonFilteredExtensions,
	}, nil
}
