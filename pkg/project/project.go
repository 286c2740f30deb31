package project

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	DefaultBuildDirectory = "target"
	DefaultPackaging      = "jar"

	// PackagingPOM marks aggregator projects that have no sources of their own
	PackagingPOM = "pom"
)

// Project is the build project being processed
type Project struct {
	Basedir        string
	BuildDirectory string
	Packaging      string
	SourceEncoding string

	GroupID    string
	ArtifactID string
	Version    string
	Name       string

	// Properties are user-defined interpolation properties
	Properties map[string]string

	compileSourceRoots     []string
	testCompileSourceRoots []string
}

// New returns a project rooted at basedir with default build settings
func New(basedir string) *Project {
	return &Project{
		Basedir:        basedir,
		BuildDirectory: filepath.Join(basedir, DefaultBuildDirectory),
		Packaging:      DefaultPackaging,
		Properties:     make(map[string]string),
	}
}

// IsPOM reports whether the project is an aggregator without sources
func (p *Project) IsPOM() bool {
	return p.Packaging == PackagingPOM
}

// AddCompileSourceRoot registers dir as a main source root. Duplicates are ignored.
func (p *Project) AddCompileSourceRoot(dir string) {
	p.compileSourceRoots = appendUnique(p.compileSourceRoots, dir)
}

// AddTestCompileSourceRoot registers dir as a test source root. Duplicates are ignored.
func (p *Project) AddTestCompileSourceRoot(dir string) {
	p.testCompileSourceRoots = appendUnique(p.testCompileSourceRoots, dir)
}

// CompileSourceRoots returns the registered main source roots in order
func (p *Project) CompileSourceRoots() []string {
	return append([]string(nil), p.compileSourceRoots...)
}

// TestCompileSourceRoots returns the registered test source roots in order
func (p *Project) TestCompileSourceRoots() []string {
	return append([]string(nil), p.testCompileSourceRoots...)
}

// InterpolationProperties returns the values templates may reference:
// environment variables as env.NAME, the project.* built-ins, and the user
// properties, later entries winning.
func (p *Project) InterpolationProperties() map[string]string {
	props := make(map[string]string)

	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok && k != "" {
			props["env."+k] = v
		}
	}

	builtins := map[string]string{
		"basedir":                      p.Basedir,
		"project.basedir":              p.Basedir,
		"project.build.directory":      p.BuildDirectory,
		"project.packaging":            p.Packaging,
		"project.build.sourceEncoding": p.SourceEncoding,
		"project.groupId":              p.GroupID,
		"project.artifactId":           p.ArtifactID,
		"project.version":              p.Version,
		"project.name":                 p.Name,
	}
	for k, v := range builtins {
		if v != "" {
			props[k] = v
		}
	}

	for k, v := range p.Properties {
		props[k] = v
	}
	return props
}

func appendUnique(list []string, dir string) []string {
	for _, existing := range list {
		if existing == dir {
			return list
		}
	}
	return append(list, dir)
}
