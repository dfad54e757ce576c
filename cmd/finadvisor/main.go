package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"finadvisor/internal/cli"
	apphttp "finadvisor/internal/http"
	applog "finadvisor/internal/log"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(applog.ComponentApp)

	logger.Info("Starting finadvisor server")

	cfg := cli.LoadAndValidateConfig(logger)

	result := cli.InitBackend(context.Background(), logger, cfg)
	defer result.Cleanup()

	srv := apphttp.NewServer(":"+cfg.Port, result.Backend, cfg.DemoSeed)

	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", applog.FieldError, err)
		}
	})

	logger.Info("Listening", "port", cfg.Port, applog.FieldBackend, cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", applog.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
