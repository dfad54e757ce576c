// Package cli consolidates the initialization steps shared by
// cmd/finadvisor and cmd/finadvisor-worker.
package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"finadvisor/internal/backend"
	"finadvisor/internal/config"
	applog "finadvisor/internal/log"
)

// SetupLogger initializes structured logging and installs it as the
// process default.
func SetupLogger(component string) *applog.Logger {
	logger := applog.New(component, slog.LevelInfo)
	applog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development. Errors are
// ignored; the file is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and exits the process on
// validation failure.
func LoadAndValidateConfig(logger *applog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// InitBackend builds the configured data backend, falling back to demo
// data when the store is unreachable.
func InitBackend(ctx context.Context, logger *applog.Logger, cfg *config.Config) *backend.Result {
	factory := backend.NewFactory(logger.Logger)
	result := factory.CreateBackendOrDemo(ctx, cfg.BackendConfig())
	if result.Cleanup == nil {
		result.Cleanup = func() error { return nil }
	}
	return result
}

// GracefulShutdown returns a context cancelled on SIGINT/SIGTERM and a
// channel closed once cleanup has run.
func GracefulShutdown(logger *applog.Logger, timeout time.Duration, cleanup func()) (context.Context, <-chan struct{}) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
		defer shutdownCancel()

		if cleanup != nil {
			cleanup()
		}
		cancel()

		select {
		case <-shutdownCtx.Done():
			logger.Warn("Shutdown timeout reached")
		case <-time.After(2 * time.Second):
			logger.Info("Shutdown complete")
		}
		close(done)
	}()

	return ctx, done
}

// WaitForShutdown blocks until the context ends and cleanup finishes.
func WaitForShutdown(ctx context.Context, done <-chan struct{}) {
	<-ctx.Done()
	<-done
}
