// Package backend defines the ports between the engine and whatever
// supplies transaction and goal records, plus a factory that builds the
// configured implementation.
package backend

import (
	"context"
	"errors"

	"finadvisor/internal/core"
)

// ErrReadOnly is returned by backends that cannot accept writes.
var ErrReadOnly = errors.New("backend is read-only")

type (
	TransactionReader interface {
		ListTransactions(ctx context.Context) ([]core.Transaction, error)
	}

	TransactionWriter interface {
		AddTransaction(ctx context.Context, tx core.Transaction) (ref string, err error)
	}

	GoalReader interface {
		ListGoals(ctx context.Context) ([]core.Goal, error)
	}

	GoalWriter interface {
		AddGoal(ctx context.Context, g core.Goal) (ref string, err error)
	}
)

// Backend bundles every port the dashboard and worker need.
type Backend interface {
	TransactionReader
	TransactionWriter
	GoalReader
	GoalWriter
}

// CleanupFunc releases backend resources on shutdown.
type CleanupFunc func() error

// Result carries a constructed backend and its optional cleanup.
type Result struct {
	Backend Backend
	Cleanup CleanupFunc
}

// Type selects the backing store.
type Type string

const (
	SQLiteBackend   Type = "sqlite"
	PostgresBackend Type = "postgres"
	SheetsBackend   Type = "sheets"
	DemoBackend     Type = "demo"
)

func (t Type) String() string { return string(t) }

func (t Type) IsValid() bool {
	switch t {
	case SQLiteBackend, PostgresBackend, SheetsBackend, DemoBackend:
		return true
	}
	return false
}

// Config holds what the factory needs to build any backend type.
type Config struct {
	Type Type

	// sqlite
	SQLiteDBPath string

	// postgres
	PostgresDSN string

	// sheets
	GoogleSpreadsheetID   string
	GoogleCredentialsJSON string
	GoogleCredentialsFile string

	// demo
	DemoSeed int64
}
