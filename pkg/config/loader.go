package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/libtour/libtour/pkg/errors"
	"github.com/libtour/libtour/pkg/logging"
	"github.com/libtour/libtour/pkg/paths"
)

const (
	// ProjectFileName is looked up in the working directory.
	ProjectFileName = "libtour.toml"
	// EnvPrefix marks environment overrides: LIBTOUR_RANDOM_SEED=7 sets random.seed.
	EnvPrefix = "LIBTOUR_"
)

// Options selects the configuration sources.
type Options struct {
	// File is an explicit config file. It must exist.
	File string
	// WorkDir is searched for libtour.toml when File is empty. Defaults to ".".
	WorkDir string
	// SkipUserConfig ignores the file under the XDG config directory.
	SkipUserConfig bool
	// Overrides are applied last, keyed by dotted path ("random.seed").
	Overrides map[string]interface{}
}

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New(errors.ErrInternal, "not implemented")
}

// UserConfigPath returns $XDG_CONFIG_HOME/libtour/config.toml.
func UserConfigPath() string {
	return paths.UserConfigFile()
}

// LoadKoanf merges every source into a koanf instance without unmarshalling.
func LoadKoanf(opts Options) (*koanf.Koanf, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User config if it exists
	if !opts.SkipUserConfig {
		if err := loadFileIfExists(k, UserConfigPath()); err != nil {
			return nil, err
		}
	}

	// 3. Explicit file, else the project file if it exists
	if opts.File != "" {
		if _, err := os.Stat(opts.File); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file %s", opts.File).
				WithDetail("path", opts.File)
		}
		if err := loadFile(k, opts.File); err != nil {
			return nil, err
		}
	} else {
		workDir := opts.WorkDir
		if workDir == "" {
			workDir = "."
		}
		if err := loadFileIfExists(k, filepath.Join(workDir, ProjectFileName)); err != nil {
			return nil, err
		}
	}

	// 4. Environment
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 5. Flag overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
		logger.Debug().Interface("overrides", opts.Overrides).Msg("Applied flag overrides")
	}

	return k, nil
}

func loadFileIfExists(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	return loadFile(k, path)
}

func loadFile(k *koanf.Koanf, path string) error {
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path).
			WithDetail("path", path)
	}
	logger := logging.GetLogger("config")
	logger.Debug().Str("path", path).Msg("Loaded config file")
	return nil
}

// Load merges every source and returns the validated configuration.
func Load(opts Options) (*Config, error) {
	k, err := LoadKoanf(opts)
	if err != nil {
		return nil, err
	}
	return Unmarshal(k)
}

// Unmarshal decodes and validates a merged koanf instance.
func Unmarshal(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	cfg.Archive.Path = paths.ExpandHome(cfg.Archive.Path)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the embedded defaults, ignoring every other source.
func Default() *Config {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		panic("embedded defaults do not parse: " + err.Error())
	}
	cfg, err := Unmarshal(k)
	if err != nil {
		panic("embedded defaults are invalid: " + err.Error())
	}
	return cfg
}
