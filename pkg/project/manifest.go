package project

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/templating/pkg/errors"
	"github.com/arthur-debert/templating/pkg/logging"
)

// ManifestPath returns where the source-roots manifest of a build directory lives
func ManifestPath(buildDir string) string {
	return filepath.Join(buildDir, "templating", "source-roots.yaml")
}

// Manifest lists the source roots registered for downstream compilation
type Manifest struct {
	CompileSourceRoots     []string `yaml:"compileSourceRoots"`
	TestCompileSourceRoots []string `yaml:"testCompileSourceRoots"`
}

// LoadManifest reads the manifest under buildDir. A missing manifest is empty.
func LoadManifest(fs afero.Fs, buildDir string) (*Manifest, error) {
	path := ManifestPath(buildDir)
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Manifest{}, nil
		}
		return nil, errors.Wrapf(err, errors.ErrIO, "cannot read manifest '%s'", path).WithPath(path)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "invalid manifest '%s'", path).WithPath(path)
	}
	return &m, nil
}

// SaveManifest merges the roots registered on p into the manifest under its
// build directory.
func SaveManifest(fs afero.Fs, p *Project) error {
	logger := logging.GetLogger("project")

	m, err := LoadManifest(fs, p.BuildDirectory)
	if err != nil {
		return err
	}
	for _, dir := range p.CompileSourceRoots() {
		m.CompileSourceRoots = appendUnique(m.CompileSourceRoots, dir)
	}
	for _, dir := range p.TestCompileSourceRoots() {
		m.TestCompileSourceRoots = appendUnique(m.TestCompileSourceRoots, dir)
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "cannot encode manifest")
	}

	path := ManifestPath(p.BuildDirectory)
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "cannot create '%s'", filepath.Dir(path)).WithPath(path)
	}
	if err := afero.WriteFile(fs, path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "cannot write manifest '%s'", path).WithPath(path)
	}

	logger.Debug().
		Str("path", path).
		Int("compile", len(m.CompileSourceRoots)).
		Int("testCompile", len(m.TestCompileSourceRoots)).
		Msg("Saved source-roots manifest")
	return nil
}
