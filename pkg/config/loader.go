package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/afero"

	"github.com/arthur-debert/templating/pkg/errors"
	"github.com/arthur-debert/templating/pkg/logging"
	"github.com/arthur-debert/templating/pkg/paths"
	"github.com/arthur-debert/templating/pkg/project"
)

// EnvPrefix prefixes every environment variable read as configuration
const EnvPrefix = "TEMPLATING_"

const propertiesEnvKey = "project__properties__"

// LoadOptions controls where configuration is read from
type LoadOptions struct {
	FS      afero.Fs
	Basedir string
	// ConfigFile replaces <basedir>/templating.toml and must exist when set
	ConfigFile string
	// Overrides are dotted keys set from the command line
	Overrides map[string]interface{}
}

// Load reads every configuration layer for the project in opts.Basedir
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")

	fs := opts.FS
	if fs == nil {
		fs = afero.NewOsFs()
	}
	basedir := opts.Basedir
	if basedir == "" {
		basedir = "."
	}
	basedir, err := paths.Canonical(basedir)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfig, "invalid project directory")
	}

	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. pom.xml
	pom, err := project.LoadPOM(fs, filepath.Join(basedir, project.POMFile))
	if err != nil {
		return nil, err
	}
	if pom != nil {
		if err := k.Load(confmap.Provider(pomLayer(pom), "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply pom.xml")
		}
	}

	// 3. Project config file
	path, required := opts.ConfigFile, true
	if path == "" {
		path, required = filepath.Join(basedir, FileName), false
	} else if path, err = paths.Resolve(basedir, path); err != nil {
		return nil, err
	}
	if err := loadFile(k, fs, path, required); err != nil {
		return nil, err
	}

	// 4. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment variables")
	}

	// 5. Command-line overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply command-line overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}
	cfg.Basedir = basedir
	cfg.pom = pom
	if cfg.Project.Properties == nil {
		cfg.Project.Properties = make(map[string]string)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Debug().
		Str("basedir", basedir).
		Str("configFile", path).
		Bool("pom", pom != nil).
		Strs("delimiters", cfg.Delimiters).
		Msg("Configuration loaded")
	return &cfg, nil
}

func loadFile(k *koanf.Koanf, fs afero.Fs, path string, required bool) error {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		return errors.Wrapf(err, errors.ErrConfigLoad, "failed to read config file '%s'", path).WithPath(path)
	}
	if err := k.Load(&rawBytesProvider{bytes: data}, toml.Parser()); err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "failed to parse config file '%s'", path).WithPath(path)
	}
	return nil
}

// envKey maps TEMPLATING_MAIN__SOURCE_DIRECTORY to main.source_directory.
// Property names keep their case.
func envKey(s string) string {
	key := strings.TrimPrefix(s, EnvPrefix)
	lower := strings.ToLower(key)
	if strings.HasPrefix(lower, propertiesEnvKey) {
		return "project.properties." + key[len(propertiesEnvKey):]
	}
	return strings.ReplaceAll(lower, "__", ".")
}

func pomLayer(pom *project.POM) map[string]interface{} {
	layer := make(map[string]interface{})
	if pom.BuildDirectory != "" {
		layer["project.build_directory"] = pom.BuildDirectory
	}
	if pom.Packaging != "" {
		layer["project.packaging"] = pom.Packaging
	}
	if pom.SourceEncoding != "" {
		layer["project.source_encoding"] = pom.SourceEncoding
	}
	if len(pom.Properties) > 0 {
		props := make(map[string]interface{}, len(pom.Properties))
		for k, v := range pom.Properties {
			props[k] = v
		}
		layer["project.properties"] = props
	}
	return layer
}
