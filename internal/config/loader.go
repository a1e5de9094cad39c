package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML configuration file at path and returns a validated
// [Config]. It is a convenience wrapper around [LoadFromReader] and
// [Validate].
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r and validates the result.
// Useful in tests where configs are constructed from string literals.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Server.LogLevel != "" && !cfg.Server.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("server.log_level %q is invalid; valid values: debug, info, warn, error", cfg.Server.LogLevel))
	}

	if cfg.Discord.Token == "" {
		errs = append(errs, errors.New("discord.token is required"))
	}

	if cfg.API.RequestsPerSecond < 0 {
		errs = append(errs, fmt.Errorf("api.requests_per_second %v must not be negative", cfg.API.RequestsPerSecond))
	}
	if cfg.API.Burst < 0 {
		errs = append(errs, fmt.Errorf("api.burst %d must not be negative", cfg.API.Burst))
	}
	if cfg.API.Timeout < 0 {
		errs = append(errs, fmt.Errorf("api.timeout %v must not be negative", cfg.API.Timeout.Std()))
	}

	if cfg.Cache.RefreshInterval < 0 {
		errs = append(errs, fmt.Errorf("cache.refresh_interval %v must not be negative", cfg.Cache.RefreshInterval.Std()))
	}
	if cfg.Cache.PurchaseRefreshInterval < 0 {
		errs = append(errs, fmt.Errorf("cache.purchase_refresh_interval %v must not be negative", cfg.Cache.PurchaseRefreshInterval.Std()))
	}
	for family, d := range cfg.Cache.Overrides {
		if d < 0 {
			errs = append(errs, fmt.Errorf("cache.overrides[%s] %v must not be negative", family, d.Std()))
		}
	}

	return errors.Join(errs...)
}
