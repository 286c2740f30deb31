package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/templating/pkg/errors"
)

func TestResolve(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	homedir.Reset()
	t.Cleanup(homedir.Reset)

	tests := []struct {
		name string
		base string
		in   string
		want string
	}{
		{"empty stays empty", "/project", "", ""},
		{"absolute is cleaned", "/project", "/out//gen/../gen", "/out/gen"},
		{"relative joins base", "/project", "src/main/java-templates", "/project/src/main/java-templates"},
		{"tilde expands", "/project", "~/templates", filepath.Join(home, "templates")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.base, tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveRejectsOtherUsersHome(t *testing.T) {
	_, err := Resolve("/project", "~someone/templates")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestCanonical(t *testing.T) {
	t.Run("resolves symlinks when path exists", func(t *testing.T) {
		dir := t.TempDir()
		real := filepath.Join(dir, "real")
		require.NoError(t, os.Mkdir(real, 0755))
		link := filepath.Join(dir, "link")
		if err := os.Symlink(real, link); err != nil {
			t.Skipf("symlinks unavailable: %v", err)
		}

		got, err := Canonical(link)
		require.NoError(t, err)
		want, err := filepath.EvalSymlinks(real)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("missing path is only made absolute", func(t *testing.T) {
		got, err := Canonical("/does/not/../exist")
		require.NoError(t, err)
		assert.Equal(t, "/does/exist", got)
	})

	t.Run("empty path is invalid", func(t *testing.T) {
		_, err := Canonical("")
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})
}

func TestStagingDir(t *testing.T) {
	assert.Equal(t, filepath.Join("/p/target", "templates-tmp"), StagingDir("/p/target", ScopeMain))
	assert.Equal(t, filepath.Join("/p/target", "test-templates-tmp"), StagingDir("/p/target", ScopeTest))
}

func TestSame(t *testing.T) {
	assert.True(t, Same("/a/b", "/a/b/"))
	assert.True(t, Same("/a/./b", "/a/c/../b"))
	assert.False(t, Same("/a/b", "/a/c"))

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.True(t, Same("rel", filepath.Join(wd, "rel")))
}

func TestWithin(t *testing.T) {
	tests := []struct {
		root, p string
		want    bool
	}{
		{"/app/target/templates-tmp", "/app/target/templates-tmp/out", true},
		{"/app/target/templates-tmp", "/app/target/templates-tmp/a/b", true},
		{"/app/target/templates-tmp", "/app/target/templates-tmp", false},
		{"/app/target/templates-tmp", "/app/target/generated-sources", false},
		{"/app/target/templates-tmp", "/app/target", false},
		{"/app/target", "/app/target/..cache", true},
	}

	for _, tt := range tests {
		t.Run(tt.p, func(t *testing.T) {
			assert.Equal(t, tt.want, Within(tt.root, tt.p))
		})
	}
}
