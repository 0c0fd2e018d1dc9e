// main is the entry point of the Records API.
//
// STARTUP SEQUENCE:
//  1. Load configuration (environment, optionally a YAML file)
//  2. Initialise the logger
//  3. Start connecting to the datastore in the background
//  4. Register all HTTP routes
//  5. Start the HTTP server in a separate goroutine
//  6. Block until an OS signal (Ctrl+C / kill) arrives
//  7. Gracefully shut down: finish in-flight requests, close the datastore
//
// The server accepts traffic before the datastore is reachable. Until the
// connect step succeeds, /api/data answers 503. If it fails the error is
// logged and the API stays unavailable until the process is restarted.
//
// RUNNING THE SERVER:
//
//	MONGO_HOST=localhost go run ./cmd/records-api
//
// or with a config file:
//
//	go run ./cmd/records-api --config=config/local.yaml
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aanand-mishra/records-api/internal/config"
	"github.com/aanand-mishra/records-api/internal/http/router"
	"github.com/aanand-mishra/records-api/internal/storage"
	"github.com/aanand-mishra/records-api/internal/storage/memory"
	"github.com/aanand-mishra/records-api/internal/storage/mongodb"
	"github.com/aanand-mishra/records-api/internal/storage/sqlite"
)

func main() {
	// ── 1. Load Config ────────────────────────────────────────────────────
	cfg := config.MustLoad()

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	log := setupLogger(cfg.Env)
	slog.SetDefault(log)

	log.Info("starting records-api",
		slog.String("env", cfg.Env),
		slog.String("storage", cfg.Storage.Driver),
		slog.String("version", "1.0.0"),
	)

	// ── 3. Connect to the Datastore ───────────────────────────────────────
	// The handle starts empty; the connection guard rejects API calls
	// until connect publishes the store into it.
	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	handle := storage.NewHandle()
	connected := make(chan struct{})

	go func() {
		defer close(connected)
		connect(ctx, log, cfg, handle)
	}()

	// ── 4. Register HTTP Routes ───────────────────────────────────────────
	//   GET  /add        → add.html form
	//   GET  /api/data   → list all records
	//   POST /api/data   → insert one record
	//   GET  /*          → static assets from cfg.StaticDir
	r := router.New(router.Options{
		Log:       log,
		Handle:    handle,
		StaticDir: cfg.StaticDir,
		OpTimeout: cfg.Storage.OpTimeout,
	})

	// ── 5. Create and Start the HTTP Server ───────────────────────────────
	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: r,

		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server started", slog.String("address", cfg.Addr))

		if err := server.ListenAndServe(); err != nil &&
			!errors.Is(err, http.ErrServerClosed) {
			log.Error("server encountered an error",
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// ── 6. Wait for Shutdown Signal ───────────────────────────────────────
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info("shutdown signal received, stopping server...")

	// ── 7. Graceful Shutdown ──────────────────────────────────────────────
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shutdown server gracefully",
			slog.String("error", err.Error()))
	}

	// Abort a connect still in flight, then release the store if it landed.
	stop()
	<-connected

	if s := handle.Get(); s != nil {
		if err := s.Close(shutdownCtx); err != nil {
			log.Error("failed to close storage", slog.String("error", err.Error()))
		}
	}

	log.Info("server stopped gracefully")
}

// connect opens the configured backend once and publishes it into handle.
// A failure is logged and leaves the handle empty; there is no retry.
func connect(ctx context.Context, log *slog.Logger, cfg *config.Config, handle *storage.Handle) {
	s, err := openStorage(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to storage, API requests will be rejected",
			slog.String("driver", cfg.Storage.Driver),
			slog.String("error", err.Error()))
		return
	}

	if err := handle.Set(s); err != nil {
		log.Error("failed to publish storage handle", slog.String("error", err.Error()))
		_ = s.Close(context.Background())
		return
	}

	log.Info("storage connected", slog.String("driver", cfg.Storage.Driver))
}

// openStorage picks the backend. Each branch returns explicitly so a
// failed constructor never hands back a typed nil inside the interface.
func openStorage(ctx context.Context, cfg *config.Config) (storage.Storage, error) {
	switch cfg.Storage.Driver {
	case config.DriverMongo:
		s, err := mongodb.New(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.DriverSQLite:
		s, err := sqlite.New(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.DriverMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Production (prod): machine-readable JSON output at INFO level.
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default:
		return slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	}
}
