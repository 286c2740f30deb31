package config

import (
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/templating/pkg/errors"
)

const generatedHeader = `# templating configuration
# Generated by "templating gen-config". See "templating help configuration".

`

// Generate renders cfg as a templating.toml document
func Generate(cfg *Config) (string, error) {
	out, err := toml.Marshal(cfg)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to encode configuration")
	}
	return generatedHeader + string(out), nil
}

// GenerateCommented renders cfg with every value commented out, as a
// starting point that changes nothing until edited.
func GenerateCommented(cfg *Config) (string, error) {
	content, err := Generate(cfg)
	if err != nil {
		return "", err
	}
	return commentOutConfigValues(content), nil
}

// commentOutConfigValues takes the TOML content and comments out all non-comment, non-blank lines
// that contain configuration values (assignments)
func commentOutConfigValues(content string) string {
	lines := strings.Split(content, "\n")
	var result []string

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			result = append(result, line)
			continue
		}

		// Keep section headers (e.g., [main], [project.properties]) as-is
		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") && !strings.Contains(trimmed, "=") {
			result = append(result, line)
			continue
		}

		result = append(result, "# "+line)
	}

	return strings.Join(result, "\n")
}
