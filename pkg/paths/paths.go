package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/templating/pkg/errors"
	"github.com/mitchellh/go-homedir"
)

// Scope names a source set: main sources or test sources
type Scope string

const (
	ScopeMain Scope = "main"
	ScopeTest Scope = "test"
)

const (
	mainStagingDir = "templates-tmp"
	testStagingDir = "test-templates-tmp"
)

// Expand expands a leading ~ to the user's home directory
func Expand(p string) (string, error) {
	expanded, err := homedir.Expand(p)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "cannot expand path '%s'", p).WithPath(p)
	}
	return expanded, nil
}

// Resolve expands p and makes it absolute against base when relative.
// An empty p resolves to "".
func Resolve(base, p string) (string, error) {
	if p == "" {
		return "", nil
	}
	expanded, err := Expand(p)
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(expanded) {
		expanded = filepath.Join(base, expanded)
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "cannot make '%s' absolute", p).WithPath(p)
	}
	return filepath.Clean(abs), nil
}

// Canonical returns the absolute, cleaned form of p with symlinks resolved
// when the path exists.
func Canonical(p string) (string, error) {
	if p == "" {
		return "", errors.New(errors.ErrInvalidInput, "empty path")
	}
	abs, err := Resolve("", p)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return abs, nil
		}
		return "", errors.Wrapf(err, errors.ErrIO, "cannot resolve '%s'", p).WithPath(p)
	}
	return resolved, nil
}

// StagingDir returns the scratch directory a scope renders into
func StagingDir(buildDir string, scope Scope) string {
	if scope == ScopeTest {
		return filepath.Join(buildDir, testStagingDir)
	}
	return filepath.Join(buildDir, mainStagingDir)
}

// Same reports whether a and b name the same location after making both
// absolute and clean. Paths that cannot be made absolute never match.
func Same(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return false
	}
	return filepath.Clean(absA) == filepath.Clean(absB)
}

// Within reports whether p lies strictly below root. Both are made absolute
// and clean first.
func Within(root, p string) bool {
	absRoot, errRoot := filepath.Abs(root)
	absP, errP := filepath.Abs(p)
	if errRoot != nil || errP != nil {
		return false
	}
	rel, err := filepath.Rel(absRoot, absP)
	if err != nil || rel == "." {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
