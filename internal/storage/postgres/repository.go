// Package postgres persists transactions and goals in PostgreSQL, for
// deployments where the dashboard shares a database with other services.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"finadvisor/internal/core"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

type Repository struct {
	db *sql.DB
}

func NewRepository(dsn string) (*Repository, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres database: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	driver, err := pgmigrate.WithInstance(db, &pgmigrate.Config{})
	if err != nil {
		return fmt.Errorf("create postgres driver: %w", err)
	}

	d, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", d, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
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
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		tx.ID, tx.Date.ISO(), tx.Description, tx.Category, string(tx.Type), tx.Amount.Cents)
	if err != nil {
		return "", fmt.Errorf("insert transaction: %w", err)
	}
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
			date  time.Time
			ttype string
		)
		if err := rows.Scan(&tx.ID, &date, &tx.Description, &tx.Category, &ttype, &tx.Amount.Cents); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		tx.Type = core.TransactionType(ttype)
		tx.Date = core.DateOf(date)
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
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
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
		 FROM goals ORDER BY deadline NULLS LAST`)
	if err != nil {
		return nil, fmt.Errorf("query goals: %w", err)
	}
	defer rows.Close()

	var goals []core.Goal
	for rows.Next() {
		var (
			g        core.Goal
			priority string
			deadline sql.NullTime
		)
		if err := rows.Scan(&g.ID, &g.Title, &g.TargetAmount.Cents, &g.CurrentAmount.Cents,
			&g.Category, &priority, &deadline); err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		g.Priority = core.GoalPriority(priority)
		if deadline.Valid {
			g.Deadline = core.DateOf(deadline.Time)
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}
