package config

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/templating/pkg/delimiters"
	"github.com/arthur-debert/templating/pkg/errors"
	"github.com/arthur-debert/templating/pkg/paths"
)

func load(t *testing.T, fs afero.Fs, opts LoadOptions) *Config {
	t.Helper()
	opts.FS = fs
	if opts.Basedir == "" {
		opts.Basedir = "/app"
	}
	cfg, err := Load(opts)
	require.NoError(t, err)
	return cfg
}

func TestLoadDefaults(t *testing.T) {
	cfg := load(t, afero.NewMemMapFs(), LoadOptions{})

	assert.Equal(t, "/app", cfg.Basedir)
	assert.Equal(t, "", cfg.Encoding)
	assert.Empty(t, cfg.Delimiters)
	assert.True(t, cfg.UseDefaultDelimiters)
	assert.False(t, cfg.Overwrite)
	assert.True(t, cfg.SkipPoms)
	assert.Equal(t, []string{"jpg", "jpeg", "gif", "bmp", "png"}, cfg.NonFilteredExtensions)
	assert.Equal(t, "src/main/java-templates", cfg.Main.SourceDirectory)
	assert.Equal(t, "${project.build.directory}/generated-sources/java-templates", cfg.Main.OutputDirectory)
	assert.Equal(t, "src/test/java-templates", cfg.Test.SourceDirectory)
	assert.Equal(t, "target", cfg.Project.BuildDirectory)
	assert.Equal(t, "jar", cfg.Project.Packaging)
	assert.NotNil(t, cfg.Project.Properties)
}

func TestLoadProjectFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/app/templating.toml", []byte(`
encoding = "UTF-8"
escape_string = "\\"
delimiters = ["#*#", ""]
use_default_delimiters = false

[main]
source_directory = "templates"

[project.properties]
greeting = "hi"
count = 3
`), 0644))

	cfg := load(t, fs, LoadOptions{})

	assert.Equal(t, "UTF-8", cfg.Encoding)
	assert.Equal(t, `\`, cfg.EscapeString)
	assert.Equal(t, []string{"#*#", ""}, cfg.Delimiters)
	assert.False(t, cfg.UseDefaultDelimiters)
	assert.Equal(t, "templates", cfg.Main.SourceDirectory)
	assert.Equal(t, "${project.build.directory}/generated-sources/java-templates", cfg.Main.OutputDirectory, "untouched keys keep defaults")
	assert.Equal(t, map[string]string{"greeting": "hi", "count": "3"}, cfg.Project.Properties)

	specs, err := cfg.DelimiterSpecs()
	require.NoError(t, err)
	require.Len(t, specs, 2)
	assert.Equal(t, delimiters.KindAbsent, specs[1].Kind())
}

func TestLoadExplicitConfigFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/app/templating.toml", []byte(`overwrite = false`), 0644))
	require.NoError(t, afero.WriteFile(fs, "/etc/custom.toml", []byte(`overwrite = true`), 0644))

	cfg := load(t, fs, LoadOptions{ConfigFile: "/etc/custom.toml"})
	assert.True(t, cfg.Overwrite)

	_, err := Load(LoadOptions{FS: fs, Basedir: "/app", ConfigFile: "missing.toml"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestLoadInvalidFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/app/templating.toml", []byte(`delimiters = [`), 0644))

	_, err := Load(LoadOptions{FS: fs, Basedir: "/app"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
	assert.Equal(t, filepath.Join("/app", "templating.toml"), errors.Path(err))
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("TEMPLATING_OVERWRITE", "true")
	t.Setenv("TEMPLATING_DELIMITERS", "#*#,%")
	t.Setenv("TEMPLATING_MAIN__SOURCE_DIRECTORY", "env-templates")
	t.Setenv("TEMPLATING_PROJECT__PROPERTIES__Greeting", "from-env")

	cfg := load(t, afero.NewMemMapFs(), LoadOptions{})

	assert.True(t, cfg.Overwrite)
	assert.Equal(t, []string{"#*#", "%"}, cfg.Delimiters)
	assert.Equal(t, "env-templates", cfg.Main.SourceDirectory)
	assert.Equal(t, "from-env", cfg.Project.Properties["Greeting"])
}

func TestLoadOverridesWin(t *testing.T) {
	t.Setenv("TEMPLATING_SKIP_POMS", "true")
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/app/templating.toml", []byte(`encoding = "UTF-8"`), 0644))

	cfg := load(t, fs, LoadOptions{Overrides: map[string]interface{}{
		"skip_poms": false,
		"encoding":  "ISO-8859-1",
	}})

	assert.False(t, cfg.SkipPoms)
	assert.Equal(t, "ISO-8859-1", cfg.Encoding)
}

func TestLoadPOMLayer(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/app/pom.xml", []byte(`<project>
  <artifactId>app</artifactId>
  <version>3.1</version>
  <packaging>pom</packaging>
  <properties>
    <project.build.sourceEncoding>UTF-8</project.build.sourceEncoding>
    <greeting>pom</greeting>
  </properties>
  <build><directory>${project.basedir}/build</directory></build>
</project>`), 0644))
	require.NoError(t, afero.WriteFile(fs, "/app/templating.toml", []byte(`
[project.properties]
greeting = "toml"
`), 0644))

	cfg := load(t, fs, LoadOptions{})

	assert.Equal(t, "pom", cfg.Project.Packaging)
	assert.Equal(t, "UTF-8", cfg.Project.SourceEncoding)
	assert.Equal(t, "UTF-8", cfg.EffectiveEncoding())
	assert.Equal(t, "toml", cfg.Project.Properties["greeting"], "templating.toml overrides pom.xml")

	p, err := cfg.NewProject()
	require.NoError(t, err)
	assert.Equal(t, "app", p.ArtifactID)
	assert.Equal(t, "3.1", p.Version)
	assert.Equal(t, "/app/build", p.BuildDirectory)
	assert.True(t, p.IsPOM())
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    errors.ErrorCode
	}{
		{"bad delimiter", `delimiters = ["*}"]`, errors.ErrInvalidInput},
		{"bad encoding", `encoding = "klingon"`, errors.ErrConfig},
		{"missing source", "[main]\nsource_directory = \"\"", errors.ErrConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, "/app/templating.toml", []byte(tt.content), 0644))

			_, err := Load(LoadOptions{FS: fs, Basedir: "/app"})
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code), "got %v", err)
		})
	}
}

func TestResolveScope(t *testing.T) {
	cfg := load(t, afero.NewMemMapFs(), LoadOptions{})
	p, err := cfg.NewProject()
	require.NoError(t, err)
	assert.Equal(t, "/app/target", p.BuildDirectory)

	src, out, err := cfg.ResolveScope(p, paths.ScopeMain)
	require.NoError(t, err)
	assert.Equal(t, "/app/src/main/java-templates", src)
	assert.Equal(t, "/app/target/generated-sources/java-templates", out)

	src, out, err = cfg.ResolveScope(p, paths.ScopeTest)
	require.NoError(t, err)
	assert.Equal(t, "/app/src/test/java-templates", src)
	assert.Equal(t, "/app/target/generated-test-sources/java-templates", out)
}

func TestEnvKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"TEMPLATING_ENCODING", "encoding"},
		{"TEMPLATING_USE_DEFAULT_DELIMITERS", "use_default_delimiters"},
		{"TEMPLATING_TEST__OUTPUT_DIRECTORY", "test.output_directory"},
		{"TEMPLATING_PROJECT__PROPERTIES__appName", "project.properties.appName"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, envKey(tt.in))
		})
	}
}
