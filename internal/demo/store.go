package demo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"finadvisor/internal/core"
)

// Store is the in-memory demo backend. It starts seeded with sample data
// and accepts writes, which live only for the process lifetime.
type Store struct {
	mu    sync.Mutex
	txs   []core.Transaction
	goals []core.Goal
}

// NewStore seeds a store with the sample ledger and goals for ref.
func NewStore(ref time.Time, seed int64) *Store {
	return &Store{
		txs:   SampleTransactions(ref, seed),
		goals: SampleGoals(ref),
	}
}

// ListTransactions returns a copy of the current ledger.
func (s *Store) ListTransactions(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Transaction, len(s.txs))
	copy(out, s.txs)
	return out, nil
}

// AddTransaction appends the transaction and returns a synthetic reference.
func (s *Store) AddTransaction(_ context.Context, tx core.Transaction) (string, error) {
	if err := tx.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if tx.ID == "" {
		tx.ID = fmt.Sprintf("mem_%d", len(s.txs)+1)
	}
	s.txs = append(s.txs, tx)
	return tx.ID, nil
}

// AddGoal appends the goal and returns a synthetic reference.
func (s *Store) AddGoal(_ context.Context, g core.Goal) (string, error) {
	if err := g.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if g.ID == "" {
		g.ID = fmt.Sprintf("mem_goal_%d", len(s.goals)+1)
	}
	s.goals = append(s.goals, g)
	return g.ID, nil
}

// ListGoals returns a copy of the seeded goals.
func (s *Store) ListGoals(_ context.Context) ([]core.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Goal, len(s.goals))
	copy(out, s.goals)
	return out, nil
}

func (s *Store) Close() error { return nil }
