package worker

import (
	"context"
	"log/slog"

	"finadvisor/internal/core"
)

// LogPublisher writes alerts to the log instead of a broker. It stands
// in for AMQP when no broker is configured.
type LogPublisher struct{}

func (LogPublisher) PublishAlert(ctx context.Context, alert core.Alert, period string) error {
	slog.InfoContext(ctx, "Alert",
		"period", period,
		"alert_type", string(alert.Type),
		"severity", string(alert.Severity),
		"message", alert.Message)
	return nil
}
