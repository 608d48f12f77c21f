// Package main is the entry point for the link page server. It loads
// configuration, opens the configured content backend, sets up caching and
// routing, and starts the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"linkpage/internal/auth"
	"linkpage/internal/cache"
	"linkpage/internal/config"
	"linkpage/internal/database"
	"linkpage/internal/handlers"
	"linkpage/internal/metrics"
	"linkpage/internal/middleware"
	"linkpage/internal/render"
	"linkpage/internal/router"
	"linkpage/internal/storage"
	"linkpage/internal/store"
	"linkpage/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	config.NewLogger(cfg.Log, os.Stdout)

	slog.Info("configuration loaded",
		"env", cfg.Server.Env,
		"addr", cfg.Addr(),
		"store", cfg.Store.Backend,
	)

	// Connect to Valkey when the store or the page cache needs it.
	var valkeyClient *redis.Client
	if cfg.NeedsValkey() {
		valkeyClient, err = cache.ConnectValkey(cfg.Valkey.Host, cfg.Valkey.Port, cfg.Valkey.Password, cfg.Valkey.DB)
		if err != nil {
			slog.Error("failed to connect to valkey", "error", err)
			os.Exit(1)
		}
		defer valkeyClient.Close()
	}

	backend, closeBackend, err := openBackend(cfg, valkeyClient)
	if err != nil {
		slog.Error("failed to open content backend", "backend", cfg.Store.Backend, "error", err)
		os.Exit(1)
	}
	defer closeBackend()

	contentStore := store.NewContentStore(backend)

	if cfg.Store.SeedOnStart {
		seeded, err := contentStore.Seed(context.Background())
		if err != nil {
			slog.Error("failed to seed content", "error", err)
			os.Exit(1)
		}
		if seeded {
			slog.Info("default content seeded", "backend", contentStore.Backend())
		}
	}

	rec := metrics.New(cfg.Metrics.Enabled)

	gate, err := auth.NewGate(cfg.Admin.Password, cfg.Admin.PasswordHash)
	if err != nil {
		slog.Error("invalid admin password configuration", "error", err)
		os.Exit(1)
	}
	if !gate.Hashed() && cfg.Admin.Password == auth.DefaultPassword {
		slog.Warn("admin password is the built-in default, set ADMIN_PASSWORD or ADMIN_PASSWORD_HASH")
	}

	renderer, err := render.New()
	if err != nil {
		slog.Error("failed to initialize template renderer", "error", err)
		os.Exit(1)
	}

	// L1 in-process cache in front of the optional L2 Valkey page cache.
	var l2 cache.Pages
	if cfg.Cache.PageEnabled {
		l2 = cache.NewPageCache(valkeyClient, cfg.Cache.PageTTL)
	}
	pages := cache.NewLayered(cache.NewLocalCache(cfg.Cache.LocalMB, cfg.Cache.LocalTTL), l2)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	revalidator := cache.NewRevalidator(pages, cache.WithFailureHook(func(error) {
		rec.IncInvalidationFailure()
	}))
	go revalidator.Run(ctx)

	limiter := middleware.NewRateLimiter(cfg.Admin.RateLimit, cfg.Admin.RateWindow)
	defer limiter.Stop()

	static, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		slog.Error("failed to open static assets", "error", err)
		os.Exit(1)
	}

	public := handlers.NewPublic(contentStore, renderer, pages, rec)
	public.SetGenerations(revalidator)

	r := router.New(router.Deps{
		Content:     handlers.NewContent(contentStore, cfg.Store.StrictValidation, revalidator, rec),
		Public:      public,
		Gate:        gate,
		RateLimiter: limiter,
		Metrics:     rec,
		Static:      static,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr(), "store", contentStore.Backend())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	stop()

	slog.Info("server stopped gracefully")
}

// openBackend builds the content backend named by the configuration. The
// returned func releases anything the backend opened.
func openBackend(cfg *config.Config, valkeyClient *redis.Client) (store.Backend, func(), error) {
	noop := func() {}

	switch cfg.Store.Backend {
	case config.BackendMemory:
		slog.Warn("memory backend selected, content is lost on restart")
		return store.NewMemoryBackend(), noop, nil

	case config.BackendFile:
		return store.NewFileBackend(cfg.Store.FilePath), noop, nil

	case config.BackendValkey:
		return store.NewValkeyBackend(valkeyClient, cfg.Store.Key), noop, nil

	case config.BackendPostgres:
		db, err := database.Connect(cfg.DSN())
		if err != nil {
			return nil, nil, err
		}
		if err := database.Migrate(db); err != nil {
			db.Close()
			return nil, nil, err
		}
		return store.NewPostgresBackend(db, cfg.Store.Key), closer(db), nil

	case config.BackendS3:
		client, err := storage.New(cfg.S3.Endpoint, cfg.S3.Region, cfg.S3.AccessKey, cfg.S3.SecretKey, cfg.S3.Bucket)
		if err != nil {
			return nil, nil, err
		}
		if client == nil {
			return nil, nil, fmt.Errorf("s3 backend requires S3_ENDPOINT and credentials")
		}
		slog.Info("s3 storage connected", "endpoint", client.Endpoint(), "bucket", client.Bucket())
		return store.NewS3Backend(client, cfg.S3.ObjectKey), noop, nil
	}

	return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
}

func closer(db *sql.DB) func() {
	return func() {
		if err := db.Close(); err != nil {
			slog.Warn("closing database", "error", err)
		}
	}
}
