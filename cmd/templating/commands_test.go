package templating

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/templating/pkg/errors"
)

// newProject lays out a project directory with the given files
func newProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return dir
}

// execute runs the CLI with args and returns what it wrote to stdout
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

const versionTemplate = "package demo;\n\nclass Version {\n  String V = \"${version}\";\n  String N = \"@name@\";\n}\n"

const projectConfig = `[project.properties]
version = "1.4.2"
name = "demo"
`

func TestFilterSourcesCmd(t *testing.T) {
	t.Run("renders and registers the output directory", func(t *testing.T) {
		dir := newProject(t, map[string]string{
			"templating.toml": projectConfig,
			"src/main/java-templates/demo/Version.java": versionTemplate,
		})

		out, err := execute(t, "filter-sources", "-C", dir, "--format", "text")
		require.NoError(t, err)

		generated := filepath.Join(dir, "target", "generated-sources", "java-templates")
		assert.Equal(t,
			"package demo;\n\nclass Version {\n  String V = \"1.4.2\";\n  String N = \"demo\";\n}\n",
			readFile(t, filepath.Join(generated, "demo", "Version.java")))
		assert.Contains(t, out, "copied 1, up to date 0")
		assert.Contains(t, out, "demo/Version.java")

		var manifest struct {
			CompileSourceRoots []string `yaml:"compileSourceRoots"`
		}
		data := readFile(t, filepath.Join(dir, "target", "templating", "source-roots.yaml"))
		require.NoError(t, yaml.Unmarshal([]byte(data), &manifest))
		require.Len(t, manifest.CompileSourceRoots, 1)
		assert.True(t, strings.HasSuffix(manifest.CompileSourceRoots[0], filepath.Join("target", "generated-sources", "java-templates")))

		_, err = os.Stat(filepath.Join(dir, "target", "templates-tmp"))
		assert.True(t, os.IsNotExist(err), "staging directory should be removed")
	})

	t.Run("second run is up to date", func(t *testing.T) {
		dir := newProject(t, map[string]string{
			"templating.toml": projectConfig,
			"src/main/java-templates/demo/Version.java": versionTemplate,
		})

		_, err := execute(t, "filter-sources", "-C", dir)
		require.NoError(t, err)
		out, err := execute(t, "filter-sources", "-C", dir, "--format", "text")
		require.NoError(t, err)

		assert.Contains(t, out, "up to date (1 files)")
	})

	t.Run("missing source directory is skipped", func(t *testing.T) {
		dir := newProject(t, map[string]string{"templating.toml": projectConfig})

		out, err := execute(t, "filter-sources", "-C", dir, "--format", "text")
		require.NoError(t, err)

		assert.Equal(t, "main: skipped (source directory does not exist)\n", out)
		_, err = os.Stat(filepath.Join(dir, "target", "templating", "source-roots.yaml"))
		assert.True(t, os.IsNotExist(err), "nothing should be registered")
	})

	t.Run("pom projects are skipped", func(t *testing.T) {
		dir := newProject(t, map[string]string{
			"pom.xml": "<project><packaging>pom</packaging></project>",
			"src/main/java-templates/A.java": "class A {}",
		})

		out, err := execute(t, "filter-sources", "-C", dir, "--format", "json")
		require.NoError(t, err)

		var report map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(out), &report))
		assert.Equal(t, true, report["skipped"])
		assert.Equal(t, "project packaging is pom", report["reason"])
	})

	t.Run("flags override configuration", func(t *testing.T) {
		dir := newProject(t, map[string]string{
			"templating.toml": projectConfig,
			"templates/A.txt": "[[version]] ${version} \\${version}",
		})

		_, err := execute(t, "filter-sources", "-C", dir,
			"--source-directory", "templates",
			"--output-directory", "out",
			"--delimiter", "[[*]]",
			"--escape-string", "\\")
		require.NoError(t, err)

		assert.Equal(t, "1.4.2 1.4.2 ${version}", readFile(t, filepath.Join(dir, "out", "A.txt")))
	})

	t.Run("json report", func(t *testing.T) {
		dir := newProject(t, map[string]string{
			"templating.toml": projectConfig,
			"src/main/java-templates/demo/Version.java": versionTemplate,
		})

		out, err := execute(t, "filter-sources", "-C", dir, "--format", "json")
		require.NoError(t, err)

		var report map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(out), &report))
		assert.Equal(t, "filter-sources", report["command"])
		assert.Equal(t, "main", report["scope"])
		assert.Equal(t, float64(1), report["copied"])
		assert.Equal(t, []interface{}{"${*}", "@"}, report["delimiters"])
	})

	t.Run("invalid delimiter is rejected", func(t *testing.T) {
		dir := newProject(t, map[string]string{"src/main/java-templates/A.java": "class A {}"})

		_, err := execute(t, "filter-sources", "-C", dir, "--delimiter", "*}")
		assert.Error(t, err)
	})
}

func TestFilterTestSourcesCmd(t *testing.T) {
	dir := newProject(t, map[string]string{
		"templating.toml": projectConfig,
		"src/test/java-templates/demo/Fixture.java": "String V = \"${version}\";",
	})

	out, err := execute(t, "filter-test-sources", "-C", dir, "--format", "text")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "test: "))
	assert.Equal(t, "String V = \"1.4.2\";",
		readFile(t, filepath.Join(dir, "target", "generated-test-sources", "java-templates", "demo", "Fixture.java")))

	var manifest struct {
		TestCompileSourceRoots []string `yaml:"testCompileSourceRoots"`
	}
	data := readFile(t, filepath.Join(dir, "target", "templating", "source-roots.yaml"))
	require.NoError(t, yaml.Unmarshal([]byte(data), &manifest))
	assert.Len(t, manifest.TestCompileSourceRoots, 1)
}

func TestDelimitersCmd(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "defaults",
			want: "${\t}\tdefault\n@\t@\tdefault\n",
		},
		{
			name: "custom appended",
			args: []string{"--delimiter", "[[*]]"},
			want: "${\t}\tdefault\n@\t@\tdefault\n[[\t]]\tcustom\n",
		},
		{
			name: "defaults disabled",
			args: []string{"--no-default-delimiters", "--delimiter", "[[*]]"},
			want: "[[\t]]\tcustom\n",
		},
		{
			name: "empty entry is the standard pair",
			args: []string{"--no-default-delimiters", "--delimiter", ""},
			want: "${\t}\tdefault\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := newProject(t, nil)
			args := append([]string{"delimiters", "-C", dir, "--format", "text"}, tt.args...)

			out, err := execute(t, args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestGenConfigCmd(t *testing.T) {
	t.Run("prints to stdout", func(t *testing.T) {
		dir := newProject(t, nil)

		out, err := execute(t, "gen-config", "-C", dir)
		require.NoError(t, err)

		assert.Contains(t, out, "[main]")
		assert.Contains(t, out, "src/main/java-templates")
	})

	t.Run("commented output", func(t *testing.T) {
		dir := newProject(t, nil)

		out, err := execute(t, "gen-config", "-C", dir, "--commented")
		require.NoError(t, err)

		assert.Contains(t, out, "# source_directory = ")
	})

	t.Run("write refuses to replace without force", func(t *testing.T) {
		dir := newProject(t, nil)
		path := filepath.Join(dir, "templating.toml")

		_, err := execute(t, "gen-config", "-C", dir, "-w")
		require.NoError(t, err)
		assert.Contains(t, readFile(t, path), "[main]")

		_, err = execute(t, "gen-config", "-C", dir, "-w")
		assert.Error(t, err)

		_, err = execute(t, "gen-config", "-C", dir, "-w", "--force")
		assert.NoError(t, err)
	})
}

func TestRootCmd(t *testing.T) {
	t.Run("commands are grouped", func(t *testing.T) {
		cmd := NewRootCmd()
		groups := map[string]string{}
		for _, c := range cmd.Commands() {
			if c.IsAvailableCommand() {
				groups[c.Name()] = c.GroupID
			}
		}

		assert.Equal(t, "core", groups["filter-sources"])
		assert.Equal(t, "core", groups["filter-test-sources"])
		assert.Equal(t, "core", groups["delimiters"])
		assert.Equal(t, "core", groups["watch"])
		assert.Equal(t, "misc", groups["gen-config"])
		assert.Equal(t, "misc", groups["help"])
	})

	t.Run("no command is an error", func(t *testing.T) {
		_, err := execute(t)
		assert.Error(t, err)
	})

	t.Run("unknown format is rejected", func(t *testing.T) {
		_, err := execute(t, "delimiters", "--format", "yaml")
		assert.Error(t, err)
	})

	t.Run("version", func(t *testing.T) {
		out, err := execute(t, "version")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out, "templating version "))
	})

	t.Run("topics are embedded", func(t *testing.T) {
		out, err := execute(t, "topics")
		require.NoError(t, err)
		assert.Contains(t, out, "delimiters")
		assert.Contains(t, out, "--escape-string")
	})

	t.Run("completion", func(t *testing.T) {
		out, err := execute(t, "completion", "bash")
		require.NoError(t, err)
		assert.Contains(t, out, "templating")
	})
}

func TestFilterFlagsOverrides(t *testing.T) {
	cmd := &cobra.Command{Use: "x", Run: func(*cobra.Command, []string) {}}
	f := &filterFlags{}
	addFilterFlags(cmd, f)
	require.NoError(t, cmd.ParseFlags([]string{"--delimiter", "@", "--delimiter", "[[*]]", "--skip-poms=false", "--source-directory", "tpl"}))

	assert.Equal(t, map[string]interface{}{
		"delimiters":            []string{"@", "[[*]]"},
		"skip_poms":             false,
		"test.source_directory": "tpl",
	}, f.overrides(cmd, "test"))
}

func TestReportError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		want    []string
		notWant []string
	}{
		{
			name:    "io failure names the path",
			err:     errors.New(errors.ErrIO, "cannot write file").WithPath("/out/a.txt"),
			want:    []string{"cannot write file", "path: /out/a.txt"},
			notWant: []string{MsgUsageHint},
		},
		{
			name:    "unsupported entry names the path",
			err:     errors.New(errors.ErrUnsupportedEntry, "symlink").WithPath("/stage/link"),
			want:    []string{"path: /stage/link"},
			notWant: []string{MsgUsageHint},
		},
		{
			name:    "invalid input points at help",
			err:     errors.New(errors.ErrInvalidInput, "unknown format: yaml"),
			want:    []string{"unknown format: yaml", MsgUsageHint},
			notWant: []string{"path:"},
		},
		{
			name:    "config errors keep the path to themselves",
			err:     errors.New(errors.ErrConfig, "bad").WithPath("/app/templating.toml"),
			want:    []string{"bad"},
			notWant: []string{"path:", MsgUsageHint},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			ReportError(&buf, tt.err)
			for _, s := range tt.want {
				assert.Contains(t, buf.String(), s)
			}
			for _, s := range tt.notWant {
				assert.NotContains(t, buf.String(), s)
			}
		})
	}
}
