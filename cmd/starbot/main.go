// Command starbot is the Pixel Starships reference-data Discord bot.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/pssfleet/starbot/internal/config"
	"github.com/pssfleet/starbot/internal/crew"
	discordbot "github.com/pssfleet/starbot/internal/discord"
	"github.com/pssfleet/starbot/internal/discord/commands"
	"github.com/pssfleet/starbot/internal/entity"
	"github.com/pssfleet/starbot/internal/health"
	"github.com/pssfleet/starbot/internal/observe"
	"github.com/pssfleet/starbot/internal/pssapi"
	"github.com/pssfleet/starbot/internal/rooms"
)

func main() {
	os.Exit(run())
}

func run() int {
	// ── CLI flags ──────────────────────────────────────────────────────────────
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration file")
	flag.Parse()

	// ── Logger ────────────────────────────────────────────────────────────────
	levelVar := new(slog.LevelVar)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: levelVar}))
	slog.SetDefault(logger)

	// ── Load configuration, watch for changes ─────────────────────────────────
	watcher, err := config.NewWatcher(*configPath, func(old, updated *config.Config) {
		if old.Server.LogLevel != updated.Server.LogLevel {
			levelVar.Set(slogLevel(updated.Server.LogLevel))
			slog.Info("log level updated", "log_level", updated.Server.LogLevel)
		}
	})
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "starbot: config file %q not found — copy configs/example.yaml to get started\n", *configPath)
		} else {
			fmt.Fprintf(os.Stderr, "starbot: %v\n", err)
		}
		return 1
	}
	defer watcher.Stop()

	cfg := watcher.Current()
	levelVar.Set(slogLevel(cfg.Server.LogLevel))

	slog.Info("starbot starting",
		"config", *configPath,
		"log_level", cfg.Server.LogLevel,
		"metrics_addr", cfg.Server.MetricsAddr,
	)

	// ── Metrics provider ──────────────────────────────────────────────────────
	metricsShutdown, err := observe.InitProvider(observe.ProviderConfig{})
	if err != nil {
		slog.Error("failed to initialise metrics provider", "err", err)
		return 1
	}

	// ── Game API client and services ──────────────────────────────────────────
	client := pssapi.NewClient(pssapi.Config{
		BaseURL:           cfg.API.BaseURL,
		Timeout:           cfg.API.Timeout.Std(),
		RequestsPerSecond: cfg.API.RequestsPerSecond,
		Burst:             cfg.API.Burst,
	})

	roomsSvc := rooms.NewService(client, rooms.Config{
		RefreshInterval:         cfg.Cache.IntervalFor(rooms.Family),
		PurchaseRefreshInterval: cfg.Cache.PurchaseRefreshInterval.Std(),
	})
	crewSvc := crew.NewService(client, crew.Config{
		RefreshInterval: cfg.Cache.IntervalFor(crew.Family),
	})

	// ── Signal context ────────────────────────────────────────────────────────
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── Warm caches ───────────────────────────────────────────────────────────
	caches := append(roomsSvc.Caches(), crewSvc.Caches()...)
	warmCaches(ctx, caches)

	// ── Discord bot ───────────────────────────────────────────────────────────
	bot, err := discordbot.New(ctx, discordbot.Config{
		Token:   cfg.Discord.Token,
		GuildID: cfg.Discord.GuildID,
	})
	if err != nil {
		slog.Error("failed to create Discord bot", "err", err)
		return 1
	}

	commands.NewRoomCommands(roomsSvc, client, cfg.Discord.UseEmbeds).Register(bot.Router())
	commands.NewCrewCommands(crewSvc, client, cfg.Discord.UseEmbeds).Register(bot.Router())
	commands.NewCollectionCommands(crewSvc).Register(bot.Router())
	slog.Info("discord bot connected", "guild_id", cfg.Discord.GuildID)

	// ── Observability listener ────────────────────────────────────────────────
	var obsServer *http.Server
	if cfg.Server.MetricsAddr != "" {
		obsServer = newObservabilityServer(cfg.Server.MetricsAddr, bot, caches)
		go func() {
			if err := obsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("observability listener error", "err", err)
			}
		}()
	}

	printStartupSummary(cfg, len(caches))
	slog.Info("bot ready — press Ctrl+C to shut down")

	if err := bot.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("discord bot error", "err", err)
	}

	// ── Graceful shutdown ─────────────────────────────────────────────────────
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	slog.Info("shutdown signal received, stopping…")

	if err := bot.Close(); err != nil {
		slog.Warn("discord bot close error", "err", err)
	}
	if obsServer != nil {
		if err := obsServer.Shutdown(shutdownCtx); err != nil {
			slog.Warn("observability listener shutdown error", "err", err)
		}
	}
	if err := metricsShutdown(shutdownCtx); err != nil {
		slog.Warn("metrics shutdown error", "err", err)
	}

	slog.Info("goodbye")
	return 0
}

// warmCaches fetches every reference-data family concurrently. Failures are
// logged, not fatal: the bot comes up anyway and /readyz reports the gap
// until a later refresh succeeds.
func warmCaches(ctx context.Context, caches []*entity.Cache) {
	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	for _, c := range caches {
		g.Go(func() error {
			if _, err := c.Data(gctx); err != nil {
				slog.Warn("cache warmup failed", "family", c.Family(), "err", err)
			}
			return nil
		})
	}
	_ = g.Wait()
	slog.Info("cache warmup finished", "families", len(caches), "took", time.Since(start).Round(time.Millisecond))
}

// newObservabilityServer builds the /metrics, /healthz and /readyz listener.
func newObservabilityServer(addr string, bot *discordbot.Bot, caches []*entity.Cache) *http.Server {
	checkers := make([]health.Checker, 0, len(caches)+1)
	for _, c := range caches {
		checkers = append(checkers, health.CacheChecker(c.Family(), c.FetchedAt))
	}
	checkers = append(checkers, health.Checker{
		Name: "discord",
		Check: func(_ context.Context) error {
			if !bot.Connected() {
				return errors.New("gateway session not connected")
			}
			return nil
		},
	})

	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.Handler())
	health.New(checkers...).Register(mux)

	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// ── Startup summary ───────────────────────────────────────────────────────────

func printStartupSummary(cfg *config.Config, cacheCount int) {
	fmt.Println("╔═══════════════════════════════════════╗")
	fmt.Println("║         starbot — startup summary     ║")
	fmt.Println("╠═══════════════════════════════════════╣")
	guild := cfg.Discord.GuildID
	if guild == "" {
		guild = "(global)"
	}
	fmt.Printf("║  Guild           : %-19s║\n", truncate(guild, 19))
	output := "text lines"
	if cfg.Discord.UseEmbeds {
		output = "embeds"
	}
	fmt.Printf("║  Output          : %-19s║\n", output)
	fmt.Printf("║  Cached families : %-19d║\n", cacheCount)
	metricsAddr := cfg.Server.MetricsAddr
	if metricsAddr == "" {
		metricsAddr = "(disabled)"
	}
	fmt.Printf("║  Metrics addr    : %-19s║\n", truncate(metricsAddr, 19))
	fmt.Println("╚═══════════════════════════════════════╝")
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max-1] + "…"
	}
	return s
}

// ── Logger ─────────────────────────────────────────────────────────────────────

func slogLevel(level config.LogLevel) slog.Level {
	switch level {
	case config.LogDebug:
		return slog.LevelDebug
	case config.LogWarn:
		return slog.LevelWarn
	case config.LogError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
