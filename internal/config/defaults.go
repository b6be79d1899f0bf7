package config

// Default values applied when a key is absent from every source.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultCustomChars = "_-"

	DefaultChatlogDelimiter = ","
	DefaultChatlogMaxRounds = 50
)

// DefaultTimeLayouts are tried in order when parsing chat-log timestamps.
var DefaultTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006/01/02 15:04:05",
	"2006-01-02",
}

// ApplyDefaults fills zero-valued fields so a partially specified config is
// still runnable.
func ApplyDefaults(cfg *Config) {
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
	if cfg.Resolver.Class.CustomChars == "" {
		cfg.Resolver.Class.CustomChars = DefaultCustomChars
	}
	if cfg.Chatlog.Delimiter == "" {
		cfg.Chatlog.Delimiter = DefaultChatlogDelimiter
	}
	if cfg.Chatlog.MaxRounds == 0 {
		cfg.Chatlog.MaxRounds = DefaultChatlogMaxRounds
	}
	if len(cfg.Chatlog.TimeLayouts) == 0 {
		cfg.Chatlog.TimeLayouts = append([]string(nil), DefaultTimeLayouts...)
	}
}

// NewDefaultConfig returns a config with every default applied.
func NewDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
