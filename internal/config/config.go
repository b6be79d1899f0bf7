// Package config loads and validates the application configuration from
// files and DATACORRECT_* environment variables.
package config

import (
	"github.com/NolinearTang/data-correct/internal/infrastructure/monitoring/logging"
	"github.com/NolinearTang/data-correct/pkg/entity"
	"github.com/NolinearTang/data-correct/pkg/errors"
)

// Config is the application configuration tree.
type Config struct {
	Log      logging.Config `mapstructure:"log"`
	Resolver ResolverConfig `mapstructure:"resolver"`
	Chatlog  ChatlogConfig  `mapstructure:"chatlog"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// ResolverConfig holds the character-class parameters for span resolution.
type ResolverConfig struct {
	Class entity.ClassConfig `mapstructure:"class"`
}

// ChatlogConfig controls the chat log pipeline.
type ChatlogConfig struct {
	// Delimiter is "," or "\t"; a single rune.
	Delimiter string `mapstructure:"delimiter"`
	// MaxRounds drops whole sessions with more question rounds than this.
	MaxRounds int `mapstructure:"max_rounds"`
	// TimeLayouts are tried in order when parsing the create_time column.
	TimeLayouts []string `mapstructure:"time_layouts"`
	// Annotate runs span resolution over each question when set.
	Annotate bool `mapstructure:"annotate"`
}

// MetricsConfig toggles metric collection.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Validate rejects configurations the pipelines cannot run with.
func (c *Config) Validate() error {
	if err := c.Resolver.Class.Validate(); err != nil {
		return err
	}
	if c.Chatlog.MaxRounds < 0 {
		return errors.Newf(errors.ErrCodeValidation,
			"chatlog.max_rounds must be >= 0, got %d", c.Chatlog.MaxRounds)
	}
	if n := len([]rune(c.Chatlog.Delimiter)); n != 1 {
		return errors.Newf(errors.ErrCodeValidation,
			"chatlog.delimiter must be a single rune, got %q", c.Chatlog.Delimiter)
	}
	if len(c.Chatlog.TimeLayouts) == 0 {
		return errors.New(errors.ErrCodeValidation,
			"chatlog.time_layouts must not be empty")
	}
	return nil
}
