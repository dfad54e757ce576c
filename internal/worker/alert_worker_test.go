package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"finadvisor/internal/core"
)

type fakeBackend struct {
	txs      []core.Transaction
	goals    []core.Goal
	txErr    error
	goalsErr error
}

func (f *fakeBackend) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	return f.txs, f.txErr
}

func (f *fakeBackend) AddTransaction(ctx context.Context, tx core.Transaction) (string, error) {
	return "", errors.New("read only")
}

func (f *fakeBackend) ListGoals(ctx context.Context) ([]core.Goal, error) {
	return f.goals, f.goalsErr
}

func (f *fakeBackend) AddGoal(ctx context.Context, g core.Goal) (string, error) {
	return "", errors.New("read only")
}

func (f *fakeBackend) Close() error { return nil }

type stubPublisher struct {
	mu        sync.Mutex
	published []core.Alert
	periods   []string
	err       error
}

func (p *stubPublisher) PublishAlert(ctx context.Context, alert core.Alert, period string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, alert)
	p.periods = append(p.periods, period)
	return nil
}

var evalRef = time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)

func deficitLedger() []core.Transaction {
	// March: 1000 income, 1200 expenses. Fires the low savings rate and
	// deficit alerts, both high severity.
	return []core.Transaction{
		{
			Date: core.NewDate(2024, 3, 1), Description: "Salary", Category: "Salary",
			Type: core.Income, Amount: core.Money{Cents: 100000},
		},
		{
			Date: core.NewDate(2024, 3, 10), Description: "Rent", Category: "Housing",
			Type: core.Expense, Amount: core.Money{Cents: 120000},
		},
	}
}

func TestEvaluatePublishesHighSeverity(t *testing.T) {
	pub := &stubPublisher{}
	w := NewAlertWorker(&fakeBackend{txs: deficitLedger()}, pub, time.Hour)

	if err := w.Evaluate(context.Background(), evalRef); err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	if len(pub.published) != 2 {
		t.Fatalf("published = %d, want 2: %+v", len(pub.published), pub.published)
	}
	for _, a := range pub.published {
		if a.Severity != core.SeverityHigh {
			t.Errorf("published severity %q", a.Severity)
		}
	}
	for _, p := range pub.periods {
		if p != "2024-03" {
			t.Errorf("period = %q, want 2024-03", p)
		}
	}
}

func TestEvaluateSkipsMediumSeverity(t *testing.T) {
	// 15% savings rate with one dominant category: only a medium alert.
	txs := []core.Transaction{
		{
			Date: core.NewDate(2024, 3, 1), Description: "Salary", Category: "Salary",
			Type: core.Income, Amount: core.Money{Cents: 100000},
		},
		{
			Date: core.NewDate(2024, 3, 10), Description: "Rent", Category: "Housing",
			Type: core.Expense, Amount: core.Money{Cents: 85000},
		},
	}
	pub := &stubPublisher{}
	w := NewAlertWorker(&fakeBackend{txs: txs}, pub, time.Hour)

	if err := w.Evaluate(context.Background(), evalRef); err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(pub.published) != 0 {
		t.Errorf("medium alerts published: %+v", pub.published)
	}
}

func TestEvaluatePublishesOncePerPeriod(t *testing.T) {
	pub := &stubPublisher{}
	w := NewAlertWorker(&fakeBackend{txs: deficitLedger()}, pub, time.Hour)

	for i := 0; i < 3; i++ {
		if err := w.Evaluate(context.Background(), evalRef); err != nil {
			t.Fatalf("evaluate %d: %v", i, err)
		}
	}
	if len(pub.published) != 2 {
		t.Errorf("published = %d, want 2 despite repeated passes", len(pub.published))
	}
}

func TestEvaluateRetriesFailedPublish(t *testing.T) {
	pub := &stubPublisher{err: errors.New("broker down")}
	w := NewAlertWorker(&fakeBackend{txs: deficitLedger()}, pub, time.Hour)

	if err := w.Evaluate(context.Background(), evalRef); err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(pub.published) != 0 {
		t.Fatalf("published despite broker error")
	}

	// Failed publishes are not marked done; the next pass retries them.
	pub.mu.Lock()
	pub.err = nil
	pub.mu.Unlock()
	if err := w.Evaluate(context.Background(), evalRef); err != nil {
		t.Fatalf("second evaluate: %v", err)
	}
	if len(pub.published) != 2 {
		t.Errorf("published = %d after broker recovery, want 2", len(pub.published))
	}
}

func TestEvaluateTransactionFetchError(t *testing.T) {
	pub := &stubPublisher{}
	w := NewAlertWorker(&fakeBackend{txErr: errors.New("store down")}, pub, time.Hour)

	if err := w.Evaluate(context.Background(), evalRef); err == nil {
		t.Fatalf("expected error on transaction fetch failure")
	}
	if len(pub.published) != 0 {
		t.Errorf("published without data")
	}
}

func TestEvaluateGoalFetchErrorIsNotFatal(t *testing.T) {
	pub := &stubPublisher{}
	b := &fakeBackend{txs: deficitLedger(), goalsErr: errors.New("sheet down")}
	w := NewAlertWorker(b, pub, time.Hour)

	if err := w.Evaluate(context.Background(), evalRef); err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(pub.published) != 2 {
		t.Errorf("published = %d, want 2", len(pub.published))
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	pub := &stubPublisher{}
	w := NewAlertWorker(&fakeBackend{txs: deficitLedger()}, pub, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run returned %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("Run did not stop on cancel")
	}
}

func TestLogPublisherNeverFails(t *testing.T) {
	alert := core.Alert{Type: core.AlertDeficit, Severity: core.SeverityHigh, Message: "x"}
	if err := (LogPublisher{}).PublishAlert(context.Background(), alert, "2024-03"); err != nil {
		t.Errorf("log publisher error: %v", err)
	}
}
