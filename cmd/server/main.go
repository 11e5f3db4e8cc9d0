package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/JonMunkholm/sheetcart/internal/cart"
	"github.com/JonMunkholm/sheetcart/internal/catalog"
	"github.com/JonMunkholm/sheetcart/internal/config"
	"github.com/JonMunkholm/sheetcart/internal/logging"
	"github.com/JonMunkholm/sheetcart/internal/observability"
	"github.com/JonMunkholm/sheetcart/internal/storage"
	"github.com/JonMunkholm/sheetcart/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("configuration loaded", "config", cfg.String())

	ctx := context.Background()

	kv, err := storage.Open(ctx, storage.Options{
		Backend:     cfg.Store.Backend,
		Path:        cfg.Store.Path,
		DatabaseURL: cfg.Store.DatabaseURL,
		MaxConns:    cfg.Store.MaxConns,
		RedisURL:    cfg.Store.RedisURL,
	})
	if err != nil {
		slog.Error("failed to open cart store", "backend", cfg.Store.Backend, "error", err)
		os.Exit(1)
	}
	defer kv.Close()
	slog.Info("cart store opened", "backend", cfg.Store.Backend)

	metrics := observability.NewMetrics()

	store := cart.NewStore(kv, cart.Keys{Cart: cfg.Store.CartKey, Total: cfg.Store.TotalKey})
	store.Subscribe(metrics.CartChanged)
	if _, err := store.Rehydrate(ctx); err != nil {
		// Keep serving with an empty cart; the next mutation overwrites the snapshot.
		slog.Error("cart rehydrate failed", "error", err)
	}

	fetcher := catalog.NewHTTPFetcher(cfg.Sheet.URL, cfg.Sheet.FetchTimeout, cfg.Sheet.MaxBytes)
	loader := catalog.NewLoader(fetcher, metrics)
	slog.Info("catalog source", "url", fetcher.URL)

	// Background jobs stop with jobCtx
	jobCtx, cancelJobs := context.WithCancel(context.Background())

	if cfg.Sheet.LoadOnStart {
		go func() {
			if _, err := loader.Load(jobCtx); err != nil {
				slog.Warn("initial catalog load failed, serving an empty catalog", "error", err)
			}
		}()
	}
	go loader.StartRefresh(jobCtx, cfg.Sheet.RefreshInterval)

	var metricsHandler http.Handler
	if cfg.Metrics.Enabled {
		metricsHandler = metrics.Handler()
	}
	server := web.NewServer(cfg, loader, store, metricsHandler)

	// Graceful shutdown; main waits on drained before closing the store
	drained := make(chan struct{})
	go func() {
		defer close(drained)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")
		cancelJobs()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if loader.Loading() {
			slog.Info("waiting for catalog load to finish")
			if err := loader.WaitIdle(shutdownCtx); err != nil {
				slog.Warn("catalog load did not finish in time", "error", err)
			}
		}

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		cancelJobs()
		return
	}
	<-drained
	slog.Info("server stopped")
}
