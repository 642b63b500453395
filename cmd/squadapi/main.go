package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/strikesquad/squadapi/internal/alerts"
	"github.com/strikesquad/squadapi/internal/apisports"
	"github.com/strikesquad/squadapi/internal/cache"
	"github.com/strikesquad/squadapi/internal/config"
	"github.com/strikesquad/squadapi/internal/footballdata"
	"github.com/strikesquad/squadapi/internal/logger"
	"github.com/strikesquad/squadapi/internal/ratelimit"
	"github.com/strikesquad/squadapi/internal/server"
	"github.com/strikesquad/squadapi/internal/sportsdb"
	"github.com/strikesquad/squadapi/internal/storage"
	"github.com/strikesquad/squadapi/internal/topstrike"
)

var configPath = flag.String("config", "configs/config.yaml", "Path to configuration file")

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	lg := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	lg.Info("Configuration loaded from %s", *configPath)

	// Initialize storage
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		lg.Fatal("Failed to open storage: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			lg.Error("Failed to close storage: %v", err)
		}
	}()

	// Fixture caches: one per provider, each with its own TTL
	footballCache := newCache(cfg, cfg.FootballData.CacheTTL, "fd", lg)
	sportsCache := newCache(cfg, cfg.APISports.CacheTTL, "as", lg)

	// Both free tiers allow 10 requests per minute
	footballLimiter, err := ratelimit.New(10, time.Minute)
	if err != nil {
		lg.Fatal("Failed to create limiter: %v", err)
	}
	sportsLimiter, err := ratelimit.New(10, time.Minute)
	if err != nil {
		lg.Fatal("Failed to create limiter: %v", err)
	}

	// Optional Telegram live-match alerts
	var notifier footballdata.LiveNotifier
	if cfg.Telegram.Enabled {
		tg, err := alerts.NewNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, 3, time.Second, cfg.Telegram.AlertCooldown, lg)
		if err != nil {
			lg.Fatal("Failed to initialize Telegram notifier: %v", err)
		}
		notifier = tg
		lg.Info("Telegram alerts enabled")
	} else {
		lg.Debug("Telegram alerts disabled")
	}

	footballSvc := footballdata.NewService(
		footballdata.NewClient(cfg.FootballData.APIBaseURL, cfg.FootballData.APIToken, cfg.FootballData.Timeout),
		footballLimiter, footballCache, lg, notifier,
		cfg.FootballData.WindowDays, cfg.FootballData.MaxUpcoming)

	dashboardSvc := apisports.NewService(
		apisports.NewClient(cfg.APISports.APIBaseURL, cfg.APISports.APIKey, cfg.APISports.Timeout),
		sportsLimiter, sportsCache, lg,
		cfg.APISports.TeamFetchCap, cfg.APISports.PerTeamLimit, cfg.APISports.MaxUpcoming)

	resolver := sportsdb.NewResolver(
		sportsdb.NewClient(cfg.SportsDB.APIBaseURL, cfg.SportsDB.Timeout), store, lg)

	fixtures := topstrike.NewClient(
		cfg.TopStrike.FixturesURL, cfg.TopStrike.Origin, cfg.TopStrike.Cookies, cfg.TopStrike.Timeout)

	srv := server.New(footballSvc, dashboardSvc, resolver, fixtures, store, lg)

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      srv.Router(cfg.Server.AllowedOrigins),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		lg.Info("Listening on %s", cfg.Server.Addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal("Server error: %v", err)
		}

	case sig := <-shutdown:
		lg.Info("Shutdown signal received: %v", sig)

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(ctx); err != nil {
			lg.Error("Graceful shutdown failed: %v", err)
			if err := httpServer.Close(); err != nil {
				lg.Fatal("Could not stop server: %v", err)
			}
		}
	}

	lg.Info("Shutdown complete")
}

// newCache builds the configured fixture cache backend.
func newCache(cfg *config.Config, ttl time.Duration, prefix string, lg *logger.Logger) cache.Store {
	if cfg.Cache.Backend == "redis" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Cache.RedisAddr})
		return cache.NewRedis(rdb, cfg.Cache.RedisPrefix+":"+prefix, ttl, lg)
	}
	return cache.NewMemory(ttl)
}
