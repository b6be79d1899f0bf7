package config

import (
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/NolinearTang/data-correct/pkg/errors"
)

const envPrefix = "DATACORRECT"

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Registering defaults makes the keys visible to Unmarshal, which is
	// what lets environment-only overrides take effect.
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.format", DefaultLogFormat)
	v.SetDefault("log.output_paths", []string{})
	v.SetDefault("resolver.class.custom_chars", DefaultCustomChars)
	v.SetDefault("resolver.class.forbidden_start_chars", "")
	v.SetDefault("resolver.class.forbidden_end_chars", "")
	v.SetDefault("resolver.class.start_anchored", false)
	v.SetDefault("resolver.class.end_anchored", false)
	v.SetDefault("chatlog.delimiter", DefaultChatlogDelimiter)
	v.SetDefault("chatlog.max_rounds", DefaultChatlogMaxRounds)
	v.SetDefault("chatlog.time_layouts", DefaultTimeLayouts)
	v.SetDefault("chatlog.annotate", false)
	v.SetDefault("metrics.enabled", false)
	return v
}

// Load reads configuration from path (YAML, TOML or JSON by extension) and
// the environment. An empty path loads the environment on top of defaults.
func Load(path string) (*Config, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeValidation, "read config file")
		}
	}
	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds a config from defaults and DATACORRECT_* variables
// only.
func LoadFromEnv() (*Config, error) {
	return unmarshalAndFinalize(newViper())
}

func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeValidation, "unmarshal config")
	}
	ApplyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Watch reloads the file at path on change and hands each valid new config
// to onChange. Invalid updates are dropped.
func Watch(path string, onChange func(*Config)) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeValidation, "read config file")
	}

	cfg, err := unmarshalAndFinalize(v)
	if err != nil {
		return nil, err
	}

	v.OnConfigChange(func(_ fsnotify.Event) {
		next, err := unmarshalAndFinalize(v)
		if err != nil {
			return
		}
		onChange(next)
	})
	v.WatchConfig()
	return cfg, nil
}

// MustLoad is Load for program start paths where a broken config is fatal.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}
