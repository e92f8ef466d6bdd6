// Copyright (c) 2025-2026 Avetra Media
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/avetra/avetra-go/internal/cache"
	"github.com/avetra/avetra-go/internal/config"
	"github.com/avetra/avetra-go/internal/handler/api"
	"github.com/avetra/avetra-go/internal/logging"
	"github.com/avetra/avetra-go/internal/middleware"
	"github.com/avetra/avetra-go/internal/scheduler"
	"github.com/avetra/avetra-go/internal/service"
	"github.com/avetra/avetra-go/internal/store"
	"github.com/avetra/avetra-go/internal/version"
	"github.com/avetra/avetra-go/internal/webhook"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Avetra - Video Content Admin API\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AVETRA_API_KEY          API key for admin access (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AVETRA_DB_PATH          SQLite database path (default: ./data/avetra.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AVETRA_SERVER_PORT      Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AVETRA_ENV              Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AVETRA_UPLOADS_DIR      Uploaded media directory (default: ./uploads)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AVETRA_REDIS_URL        Redis URL for distributed caching (optional)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}
	if *showVersion {
		_, _ = fmt.Printf("avetra %s\n", version.Get().String())
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Setup logger
	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Ensure data directory exists
	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	if err := os.MkdirAll(cfg.UploadsDir, 0755); err != nil {
		return fmt.Errorf("creating uploads directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Upgrade logger to also write WARN and ERROR logs to the events table
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewEventLogHandler(textHandler, db))
	slog.SetDefault(logger)
	slog.Info("event log integration enabled", "min_level", "warn")

	ctx := context.Background()
	if cfg.DoSeed {
		if err := store.Seed(ctx, db); err != nil {
			return fmt.Errorf("seeding database: %w", err)
		}
	}

	st := store.NewStore(db)

	// Cache: Redis when configured, memory otherwise. The settings bag
	// loads straight from the store.
	backend := cache.New(cache.Options{
		RedisURL:   cfg.RedisURL,
		Prefix:     cfg.CachePrefix,
		DefaultTTL: time.Duration(cfg.CacheTTL) * time.Second,
		MaxItems:   cfg.CacheMaxSize,
	})
	cacheManager := cache.NewManager(backend, st, time.Duration(cfg.CacheTTL)*time.Second)
	defer func() {
		if err := cacheManager.Close(); err != nil {
			slog.Error("error closing cache", "error", err)
		}
	}()
	if err := cacheManager.Preload(ctx); err != nil {
		slog.Warn("failed to preload settings cache", "error", err)
	}

	// Webhook dispatcher delivers content change events to subscribers.
	dispatcher := webhook.NewDispatcher(db, logger, webhook.Config{
		Workers: cfg.WebhookWorkers,
	})
	dispatcher.Start(ctx)
	defer dispatcher.Stop()
	slog.Info("webhook dispatcher started", "workers", cfg.WebhookWorkers)

	// Content emits funnel through the debouncer so rapid re-saves of
	// the same entity coalesce into one delivery. Stopped before the
	// dispatcher so pending events flush into running workers.
	debouncer := webhook.NewDebouncer(dispatcher, webhook.DefaultDebounceConfig())
	defer debouncer.Stop()

	// Services
	contentService := service.NewContent(st, debouncer)
	settingsService := service.NewSettings(st, dispatcher, func(ctx context.Context) {
		cacheManager.InvalidateSettings()
	})

	// Scheduler: delivery retries, stale transcode sweeps, row pruning.
	sched := scheduler.New(db, logger, dispatcher, scheduler.Options{
		EventRetention: time.Duration(cfg.EventRetentionDays) * 24 * time.Hour,
	})
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	apiHandler := api.NewHandler(st, contentService, settingsService, cacheManager, api.Options{
		DefaultPerPage: cfg.DefaultPerPage,
		MaxPerPage:     cfg.MaxPerPage,
	})
	healthHandler := api.NewHealthHandler(db, cacheManager)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.StripTrailingSlash)

	// Liveness probe, no auth
	r.Get("/healthz", healthHandler.Public)

	// Uploaded media, cached for a week
	uploadsHandler := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir)))
	r.Handle("/uploads/*", uploadsHandler)

	// Admin API: rate limited per client IP, API key required
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(rateLimiter.Middleware())
		r.Use(middleware.APIKeyAuth(cfg.APIKey))
		r.Get("/health", healthHandler.Detailed)
		apiHandler.Routes(r)
	})
	slog.Info("REST API v1 mounted at /api/v1")

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
