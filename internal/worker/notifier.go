package worker

import (
	"context"
	"fmt"
	"log/slog"

	"finadvisor/internal/amqp"
)

// Consumer delivers published alert messages to a handler until the
// context ends.
type Consumer interface {
	ConsumeAlerts(ctx context.Context, handler func(*amqp.AlertMessage) error) error
}

// DispatchFunc delivers one alert message to its destination.
type DispatchFunc func(ctx context.Context, msg *amqp.AlertMessage) error

// Notifier consumes published alerts from the broker and dispatches
// them. The default dispatch writes the alert to the log; deployments
// plug in mail or chat delivery through the dispatch function.
type Notifier struct {
	consumer Consumer
	dispatch DispatchFunc
}

func NewNotifier(c Consumer, dispatch DispatchFunc) *Notifier {
	if dispatch == nil {
		dispatch = LogDispatch
	}
	return &Notifier{consumer: c, dispatch: dispatch}
}

// LogDispatch writes the alert to the log.
func LogDispatch(ctx context.Context, msg *amqp.AlertMessage) error {
	slog.InfoContext(ctx, "Alert notification",
		"period", msg.Period,
		"alert_type", msg.Type,
		"severity", msg.Severity,
		"message", msg.Message)
	return nil
}

// Run consumes alert messages until ctx is cancelled. A dispatch error
// is returned to the consumer so the message is redelivered.
func (n *Notifier) Run(ctx context.Context) error {
	err := n.consumer.ConsumeAlerts(ctx, func(msg *amqp.AlertMessage) error {
		if err := n.dispatch(ctx, msg); err != nil {
			return fmt.Errorf("dispatch alert: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("consume alerts: %w", err)
	}
	return nil
}
