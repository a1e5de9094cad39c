// Package config provides the configuration schema and loader for the
// starbot Discord bot.
package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// LogLevel controls log verbosity for the bot.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Duration wraps time.Duration so YAML values can be written as "24h" or
// "90s" instead of nanosecond integers.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config is the root configuration structure for starbot.
// It is typically loaded from a YAML file using [Load] or [LoadFromReader].
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Discord DiscordConfig `yaml:"discord"`
	API     APIConfig     `yaml:"api"`
	Cache   CacheConfig   `yaml:"cache"`
}

// ServerConfig holds logging and observability settings.
type ServerConfig struct {
	// LogLevel controls verbosity.
	LogLevel LogLevel `yaml:"log_level"`

	// MetricsAddr is the TCP address serving /metrics, /healthz and /readyz
	// (e.g., ":9090"). Empty disables the observability listener.
	MetricsAddr string `yaml:"metrics_addr"`
}

// DiscordConfig holds the Discord session settings.
type DiscordConfig struct {
	// Token is the bot token. Required.
	Token string `yaml:"token"`

	// GuildID scopes slash command registration to one guild. Empty registers
	// the commands globally (global registration can take up to an hour to
	// propagate).
	GuildID string `yaml:"guild_id"`

	// UseEmbeds switches command replies from plain text lines to rich embeds
	// with sprite thumbnails.
	UseEmbeds bool `yaml:"use_embeds"`
}

// APIConfig holds the game server client settings.
type APIConfig struct {
	// BaseURL is the game server root. Empty selects the production server.
	BaseURL string `yaml:"base_url"`

	// Timeout bounds each HTTP request. Zero selects the client default.
	Timeout Duration `yaml:"timeout"`

	// RequestsPerSecond limits the outbound request rate. Zero disables
	// limiting.
	RequestsPerSecond float64 `yaml:"requests_per_second"`

	// Burst is the rate limiter burst size.
	Burst int `yaml:"burst"`
}

// CacheConfig holds the reference-data refresh policy.
type CacheConfig struct {
	// RefreshInterval applies to every entity family without an override.
	// Zero selects the built-in default (24h).
	RefreshInterval Duration `yaml:"refresh_interval"`

	// PurchaseRefreshInterval applies to the purchase catalog, which rotates
	// much faster than design data. Zero selects the built-in default (1h).
	PurchaseRefreshInterval Duration `yaml:"purchase_refresh_interval"`

	// Overrides maps an entity family name to its refresh interval.
	Overrides map[string]Duration `yaml:"overrides"`
}

// IntervalFor returns the refresh interval for a family: its override when
// present, otherwise the default interval.
func (c CacheConfig) IntervalFor(family string) time.Duration {
	if d, ok := c.Overrides[family]; ok {
		return d.Std()
	}
	return c.RefreshInterval.Std()
}
