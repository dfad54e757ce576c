// Package sqlite persists transactions and goals in an embedded SQLite
// database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"finadvisor/internal/core"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// AddTransaction implements backend.TransactionWriter.
func (r *Repository) AddTransaction(ctx context.Context, tx core.Transaction) (string, error) {
	if err := tx.Validate(); err != nil {
		return "", fmt.Errorf("validate transaction: %w", err)
	}
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (id, date, description, category, type, amount_cents)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		tx.ID, tx.Date.ISO(), tx.Description, tx.Category, string(tx.Type), tx.Amount.Cents)
	if err != nil {
		return "", fmt.Errorf("insert transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", tx.ID,
		"type", string(tx.Type),
		"category", tx.Category,
		"amount_cents", tx.Amount.Cents)

	return tx.ID, nil
}

// ListTransactions implements backend.TransactionReader.
func (r *Repository) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, date, description, category, type, amount_cents
		 FROM transactions ORDER BY date`)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var txs []core.Transaction
	for rows.Next() {
		var (
			tx    core.Transaction
			date  string
			ttype string
		)
		if err := rows.Scan(&tx.ID, &date, &tx.Description, &tx.Category, &ttype, &tx.Amount.Cents); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		tx.Type = core.TransactionType(ttype)
		tx.Date = parseISODate(date)
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

// AddGoal implements backend.GoalWriter.
func (r *Repository) AddGoal(ctx context.Context, g core.Goal) (string, error) {
	if err := g.Validate(); err != nil {
		return "", fmt.Errorf("validate goal: %w", err)
	}
	if g.ID == "" {
		g.ID = uuid.NewString()
	}

	var deadline any
	if !g.Deadline.IsEmpty() {
		deadline = g.Deadline.ISO()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO goals (id, title, target_cents, current_cents, category, priority, deadline)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.Title, g.TargetAmount.Cents, g.CurrentAmount.Cents, g.Category, string(g.Priority), deadline)
	if err != nil {
		return "", fmt.Errorf("insert goal: %w", err)
	}
	return g.ID, nil
}

// ListGoals implements backend.GoalReader.
func (r *Repository) ListGoals(ctx context.Context) ([]core.Goal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, target_cents, current_cents, category, priority, deadline
		 FROM goals ORDER BY deadline IS NULL, deadline`)
	if err != nil {
		return nil, fmt.Errorf("query goals: %w", err)
	}
	defer rows.Close()

	var goals []core.Goal
	for rows.Next() {
		var (
			g        core.Goal
			priority string
			deadline sql.NullString
		)
		if err := rows.Scan(&g.ID, &g.Title, &g.TargetAmount.Cents, &g.CurrentAmount.Cents,
			&g.Category, &priority, &deadline); err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		g.Priority = core.GoalPriority(priority)
		if deadline.Valid {
			g.Deadline = parseISODate(deadline.String)
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func parseISODate(s string) core.Date {
	var y, m, d int
	if _, err := fmt.Sscanf(s, "%d-%d-%d", &y, &m, &d); err != nil {
		return core.Date{}
	}
	return core.NewDate(y, m, d)
}
