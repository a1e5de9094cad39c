package config_test

import (
	"strings"
	"testing"
	"time"

	"github.com/pssfleet/starbot/internal/config"
)

const fullYAML = `
server:
  log_level: warn
  metrics_addr: ":9090"
discord:
  token: "abc123"
  guild_id: "555"
  use_embeds: true
api:
  base_url: "https://api.example.test"
  timeout: 20s
  requests_per_second: 4.5
  burst: 2
cache:
  refresh_interval: 24h
  purchase_refresh_interval: 1h
  overrides:
    characters: 12h
`

func TestLoadFromReader(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadFromReader(strings.NewReader(fullYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.LogLevel != config.LogWarn {
		t.Errorf("log_level = %q, want warn", cfg.Server.LogLevel)
	}
	if cfg.Server.MetricsAddr != ":9090" {
		t.Errorf("metrics_addr = %q", cfg.Server.MetricsAddr)
	}
	if cfg.Discord.Token != "abc123" || cfg.Discord.GuildID != "555" || !cfg.Discord.UseEmbeds {
		t.Errorf("discord section = %+v", cfg.Discord)
	}
	if cfg.API.Timeout.Std() != 20*time.Second {
		t.Errorf("api.timeout = %v, want 20s", cfg.API.Timeout.Std())
	}
	if cfg.API.RequestsPerSecond != 4.5 || cfg.API.Burst != 2 {
		t.Errorf("api rate = %v/%d", cfg.API.RequestsPerSecond, cfg.API.Burst)
	}
	if cfg.Cache.RefreshInterval.Std() != 24*time.Hour {
		t.Errorf("cache.refresh_interval = %v", cfg.Cache.RefreshInterval.Std())
	}
	if cfg.Cache.PurchaseRefreshInterval.Std() != time.Hour {
		t.Errorf("cache.purchase_refresh_interval = %v", cfg.Cache.PurchaseRefreshInterval.Std())
	}
}

func TestLoadFromReader_UnknownField(t *testing.T) {
	t.Parallel()

	_, err := config.LoadFromReader(strings.NewReader(`
discord:
  token: "abc"
  shoesize: 44
`))
	if err == nil {
		t.Fatal("expected error for unknown field, got nil")
	}
}

func TestLoadFromReader_InvalidDuration(t *testing.T) {
	t.Parallel()

	_, err := config.LoadFromReader(strings.NewReader(`
discord:
  token: "abc"
api:
  timeout: "twenty seconds"
`))
	if err == nil || !strings.Contains(err.Error(), "invalid duration") {
		t.Errorf("err = %v, want invalid duration", err)
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}
	cfg.Server.LogLevel = "bananas"
	cfg.API.RequestsPerSecond = -1
	cfg.API.Burst = -2

	err := config.Validate(cfg)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	for _, want := range []string{"log_level", "discord.token is required", "requests_per_second", "burst"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}

func TestValidate_NegativeOverride(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}
	cfg.Discord.Token = "abc"
	cfg.Cache.Overrides = map[string]config.Duration{"rooms": config.Duration(-time.Hour)}

	err := config.Validate(cfg)
	if err == nil || !strings.Contains(err.Error(), "overrides[rooms]") {
		t.Errorf("err = %v, want overrides[rooms] failure", err)
	}
}

func TestCacheConfig_IntervalFor(t *testing.T) {
	t.Parallel()

	c := config.CacheConfig{
		RefreshInterval: config.Duration(24 * time.Hour),
		Overrides:       map[string]config.Duration{"characters": config.Duration(12 * time.Hour)},
	}
	if got := c.IntervalFor("characters"); got != 12*time.Hour {
		t.Errorf("IntervalFor(characters) = %v, want 12h", got)
	}
	if got := c.IntervalFor("rooms"); got != 24*time.Hour {
		t.Errorf("IntervalFor(rooms) = %v, want 24h", got)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	if _, err := config.Load("/nonexistent/starbot.yaml"); err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}
