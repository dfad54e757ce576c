package main

import (
	"context"
	"errors"
	"os"
	"time"

	"finadvisor/internal/amqp"
	"finadvisor/internal/cli"
	applog "finadvisor/internal/log"
	"finadvisor/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(applog.ComponentWorker)

	logger.Info("Starting finadvisor-worker")

	cfg := cli.LoadAndValidateConfig(logger)

	result := cli.InitBackend(context.Background(), logger, cfg)
	defer result.Cleanup()

	// The broker is optional. Without it alerts are only logged.
	var publisher worker.Publisher = worker.LogPublisher{}
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", applog.FieldError, err)
			os.Exit(1)
		}
		defer amqpClient.Close()
		publisher = amqpClient
		logger.Info("AMQP publisher initialized",
			"exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		logger.Info("AMQP disabled - no AMQP_URL provided, alerts are logged only")
	}

	alertWorker := worker.NewAlertWorker(result.Backend, publisher, cfg.EvalInterval)

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, nil)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// With ALERT_NOTIFY the worker also drains the queue and dispatches
	// the notifications itself instead of leaving them to an external
	// consumer.
	if cfg.NotifyAlerts {
		amqpClient, ok := publisher.(*amqp.Client)
		if !ok {
			logger.Error("ALERT_NOTIFY requires an AMQP broker")
			os.Exit(1)
		}
		notifier := worker.NewNotifier(amqpClient, nil)
		go func() {
			if err := notifier.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("Alert notification failed", applog.FieldError, err)
				cancel()
			}
		}()
		logger.Info("Alert notifier started", "queue", cfg.AMQPQueue)
	}

	logger.Info("Evaluation loop starting", "interval", cfg.EvalInterval.String())
	if err := alertWorker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Evaluation loop failed", applog.FieldError, err)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Worker stopped gracefully")
}
