package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"finadvisor/internal/analysis"
	"finadvisor/internal/backend"
	"finadvisor/internal/core"
)

// Publisher sends generated alerts to a message broker.
type Publisher interface {
	PublishAlert(ctx context.Context, alert core.Alert, period string) error
}

// AlertWorker periodically evaluates the previous month's finances and
// publishes high severity alerts. Medium and low alerts are logged only.
type AlertWorker struct {
	backend   backend.Backend
	publisher Publisher
	interval  time.Duration

	published map[string]bool
}

func NewAlertWorker(b backend.Backend, p Publisher, interval time.Duration) *AlertWorker {
	return &AlertWorker{
		backend:   b,
		publisher: p,
		interval:  interval,
		published: make(map[string]bool),
	}
}

// Evaluate runs a single evaluation pass for the window before ref.
func (w *AlertWorker) Evaluate(ctx context.Context, ref time.Time) error {
	var (
		txs   []core.Transaction
		goals []core.Goal
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		txs, err = w.backend.ListTransactions(gctx)
		if err != nil {
			return fmt.Errorf("list transactions: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		goals, err = w.backend.ListGoals(gctx)
		if err != nil {
			// Goals only feed recommendations, alerts do not need them.
			slog.WarnContext(gctx, "Goal fetch failed, evaluating without goals", "error", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	window := analysis.PreviousMonth(ref)
	period := window.Label()
	metrics := analysis.ComputeMetricsWindow(txs, window)

	slog.InfoContext(ctx, "Evaluation pass completed",
		"period", period,
		"transactions", len(txs),
		"savings_rate", metrics.SavingsRate,
		"alerts", len(metrics.Alerts))

	for _, rec := range analysis.Recommend(metrics, goals) {
		slog.InfoContext(ctx, "Recommendation",
			"period", period,
			"type", string(rec.Type),
			"priority", string(rec.Priority),
			"title", rec.Title)
	}

	for _, alert := range metrics.Alerts {
		if alert.Severity != core.SeverityHigh {
			slog.InfoContext(ctx, "Alert below publish threshold",
				"period", period,
				"type", string(alert.Type),
				"severity", string(alert.Severity),
				"message", alert.Message)
			continue
		}

		// Each alert type is published once per period.
		key := period + "/" + string(alert.Type)
		if w.published[key] {
			continue
		}

		if err := w.publisher.PublishAlert(ctx, alert, period); err != nil {
			slog.ErrorContext(ctx, "Alert publish failed",
				"period", period,
				"type", string(alert.Type),
				"error", err)
			continue
		}
		w.published[key] = true

		slog.InfoContext(ctx, "Alert published",
			"period", period,
			"type", string(alert.Type),
			"message", alert.Message)
	}

	return nil
}

// Run evaluates immediately and then on every interval tick until ctx
// is cancelled.
func (w *AlertWorker) Run(ctx context.Context) error {
	if err := w.Evaluate(ctx, time.Now()); err != nil {
		slog.ErrorContext(ctx, "Initial evaluation failed", "error", err)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.Evaluate(ctx, time.Now()); err != nil {
				slog.ErrorContext(ctx, "Evaluation failed", "error", err)
			}
		}
	}
}
