package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/homebrew-automation/pkg/errors"
	"github.com/arthur-debert/homebrew-automation/pkg/logging"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes configuration environment variables. A double
// underscore separates sections: HOMEBREW_AUTOMATION_BOTTLE__KEEP_TMP.
const EnvPrefix = "HOMEBREW_AUTOMATION_"

// Config is the effective configuration.
type Config struct {
	Brew   BrewConfig   `koanf:"brew" toml:"brew" json:"brew" yaml:"brew"`
	Bottle BottleConfig `koanf:"bottle" toml:"bottle" json:"bottle" yaml:"bottle"`
	Output OutputConfig `koanf:"output" toml:"output" json:"output" yaml:"output"`
}

type BrewConfig struct {
	Path         string `koanf:"path" toml:"path" json:"path" yaml:"path"`
	StreamOutput bool   `koanf:"stream_output" toml:"stream_output" json:"stream_output" yaml:"stream_output"`
}

type BottleConfig struct {
	TapName   string `koanf:"tap_name" toml:"tap_name" json:"tap_name" yaml:"tap_name"`
	TapURL    string `koanf:"tap_url" toml:"tap_url" json:"tap_url" yaml:"tap_url"`
	Formula   string `koanf:"formula" toml:"formula" json:"formula" yaml:"formula"`
	OS        string `koanf:"os" toml:"os" json:"os" yaml:"os"`
	KeepTmp   bool   `koanf:"keep_tmp" toml:"keep_tmp" json:"keep_tmp" yaml:"keep_tmp"`
	WorkDir   string `koanf:"work_dir" toml:"work_dir" json:"work_dir" yaml:"work_dir"`
	OutputDir string `koanf:"output_dir" toml:"output_dir" json:"output_dir" yaml:"output_dir"`
}

type OutputConfig struct {
	Format string `koanf:"format" toml:"format" json:"format" yaml:"format"`
}

// Options controls where Load reads from.
type Options struct {
	// Path is an explicit config file. When empty the default location is
	// used if a file exists there.
	Path string
	// Overrides are explicitly set values keyed by dotted path, e.g.
	// "bottle.os".
	Overrides map[string]interface{}
}

// Load builds the effective configuration.
func Load(opts Options) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	path, explicit := opts.Path, opts.Path != ""
	if !explicit {
		path = findDefaultConfigFile()
	}
	if path != "" {
		if err := loadFile(k, path); err != nil {
			if explicit || !os.IsNotExist(err) {
				return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", path)
			}
		} else {
			logger.Debug().Str("path", path).Msg("Loaded config file")
		}
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply flags")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to unmarshal configuration")
	}

	return &cfg, nil
}

func loadFile(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return k.Load(file.Provider(path), toml.Parser())
	case ".yaml", ".yml":
		return k.Load(file.Provider(path), yaml.Parser())
	default:
		return errors.Newf(errors.ErrConfigLoad, "unsupported config file type: %s", path)
	}
}

// DefaultConfigDir is where the config file is looked up. It respects
// XDG_CONFIG_HOME if set.
func DefaultConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = xdg.ConfigHome
	}
	return filepath.Join(configHome, logging.AppName)
}

func findDefaultConfigFile() string {
	dir := DefaultConfigDir()
	for _, name := range []string{"config.toml", "config.yaml", "config.yml"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ValidateInputs checks the settings that cannot be derived: the tap name
// and the formula.
func (c BottleConfig) ValidateInputs() error {
	return requireSettings(
		setting{"bottle.tap_name", c.TapName},
		setting{"bottle.formula", c.Formula},
	)
}

// Validate checks that a bottle can be built from c. TapURL and OS are
// expected to have been derived already when the user left them empty.
func (c BottleConfig) Validate() error {
	return requireSettings(
		setting{"bottle.tap_name", c.TapName},
		setting{"bottle.tap_url", c.TapURL},
		setting{"bottle.formula", c.Formula},
		setting{"bottle.os", c.OS},
	)
}

type setting struct {
	key, value string
}

func requireSettings(settings ...setting) error {
	var missing []string
	for _, s := range settings {
		if strings.TrimSpace(s.value) == "" {
			missing = append(missing, s.key)
		}
	}
	if len(missing) > 0 {
		return errors.Newf(errors.ErrConfigValid, "missing required settings: %s", strings.Join(missing, ", ")).
			WithDetail("missing", missing)
	}
	return nil
}
