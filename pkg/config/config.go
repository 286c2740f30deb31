package config

import (
	"path/filepath"

	"github.com/arthur-debert/templating/pkg/delimiters"
	"github.com/arthur-debert/templating/pkg/errors"
	"github.com/arthur-debert/templating/pkg/paths"
	"github.com/arthur-debert/templating/pkg/project"
	"github.com/arthur-debert/templating/pkg/render"
)

// FileName is the project configuration file looked up in the basedir
const FileName = "templating.toml"

// Config is the complete templating configuration
type Config struct {
	Encoding              string   `koanf:"encoding" toml:"encoding"`
	EscapeString          string   `koanf:"escape_string" toml:"escape_string"`
	Delimiters            []string `koanf:"delimiters" toml:"delimiters"`
	UseDefaultDelimiters  bool     `koanf:"use_default_delimiters" toml:"use_default_delimiters"`
	Overwrite             bool     `koanf:"overwrite" toml:"overwrite"`
	SkipPoms              bool     `koanf:"skip_poms" toml:"skip_poms"`
	NonFilteredExtensions []string `koanf:"non_filtered_extensions" toml:"non_filtered_extensions"`

	Main    Scope   `koanf:"main" toml:"main"`
	Test    Scope   `koanf:"test" toml:"test"`
	Project Project `koanf:"project" toml:"project"`

	// Basedir is the absolute project directory the configuration was loaded for
	Basedir string `koanf:"-" toml:"-"`

	pom *project.POM
}

// Scope holds the directories of one source set
type Scope struct {
	SourceDirectory string `koanf:"source_directory" toml:"source_directory"`
	OutputDirectory string `koanf:"output_directory" toml:"output_directory"`
}

// Project holds the build settings templating needs from the project
type Project struct {
	BuildDirectory string            `koanf:"build_directory" toml:"build_directory"`
	Packaging      string            `koanf:"packaging" toml:"packaging"`
	SourceEncoding string            `koanf:"source_encoding" toml:"source_encoding"`
	Properties     map[string]string `koanf:"properties" toml:"properties"`
}

// DelimiterSpecs parses the configured delimiter list
func (c *Config) DelimiterSpecs() ([]delimiters.Spec, error) {
	return delimiters.ParseSpecs(c.Delimiters)
}

// EffectiveEncoding returns the template encoding, falling back to the
// project source encoding.
func (c *Config) EffectiveEncoding() string {
	if c.Encoding != "" {
		return c.Encoding
	}
	return c.Project.SourceEncoding
}

// ScopeFor returns the directory settings of scope
func (c *Config) ScopeFor(scope paths.Scope) Scope {
	if scope == paths.ScopeTest {
		return c.Test
	}
	return c.Main
}

// Validate checks values that can be verified without touching the filesystem
func (c *Config) Validate() error {
	if _, err := c.DelimiterSpecs(); err != nil {
		return err
	}
	if enc := c.EffectiveEncoding(); !render.ValidEncoding(enc) {
		return errors.Newf(errors.ErrConfig, "unsupported encoding '%s'", enc).WithDetail("encoding", enc)
	}
	for name, s := range map[string]Scope{"main": c.Main, "test": c.Test} {
		if s.SourceDirectory == "" {
			return errors.Newf(errors.ErrConfig, "%s.source_directory is required", name)
		}
		if s.OutputDirectory == "" {
			return errors.Newf(errors.ErrConfig, "%s.output_directory is required", name)
		}
	}
	return nil
}

// NewProject builds the project model described by the configuration
func (c *Config) NewProject() (*project.Project, error) {
	p := project.New(c.Basedir)
	if c.pom != nil {
		p.GroupID = c.pom.GroupID
		p.ArtifactID = c.pom.ArtifactID
		p.Version = c.pom.Version
		p.Name = c.pom.Name
	}

	buildDir, err := c.expandPath(c.Project.BuildDirectory, map[string]string{
		"basedir":         c.Basedir,
		"project.basedir": c.Basedir,
	})
	if err != nil {
		return nil, err
	}
	if buildDir != "" {
		p.BuildDirectory = buildDir
	}
	if c.Project.Packaging != "" {
		p.Packaging = c.Project.Packaging
	}
	p.SourceEncoding = c.Project.SourceEncoding
	for k, v := range c.Project.Properties {
		p.Properties[k] = v
	}
	return p, nil
}

// ResolveScope returns the absolute source and output directories of scope
// for p.
func (c *Config) ResolveScope(p *project.Project, scope paths.Scope) (source, output string, err error) {
	vars := map[string]string{
		"basedir":                 p.Basedir,
		"project.basedir":         p.Basedir,
		"project.build.directory": p.BuildDirectory,
	}
	s := c.ScopeFor(scope)
	if source, err = c.expandPath(s.SourceDirectory, vars); err != nil {
		return "", "", err
	}
	if output, err = c.expandPath(s.OutputDirectory, vars); err != nil {
		return "", "", err
	}
	return source, output, nil
}

func (c *Config) expandPath(p string, vars map[string]string) (string, error) {
	expanded := render.InterpolateString(p, render.DefaultDelimiters(), "", vars)
	resolved, err := paths.Resolve(c.Basedir, expanded)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrConfig, "invalid path '%s'", p).WithPath(p)
	}
	if resolved == "" {
		return "", nil
	}
	return filepath.Clean(resolved), nil
}
