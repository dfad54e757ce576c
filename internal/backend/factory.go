package backend

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"finadvisor/internal/demo"
	"finadvisor/internal/sheets"
	"finadvisor/internal/storage/postgres"
	"finadvisor/internal/storage/sqlite"
)

// Factory builds backends from configuration.
type Factory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) *Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Factory{logger: logger}
}

// CreateBackend builds the configured backend. Any failure falls through
// to the caller; use CreateBackendOrDemo for the fall-back-to-sample-data
// behavior of the dashboard.
func (f *Factory) CreateBackend(ctx context.Context, cfg Config) (*Result, error) {
	if !cfg.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", cfg.Type)
	}

	switch cfg.Type {
	case SQLiteBackend:
		repo, err := sqlite.NewRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite backend: %w", err)
		}
		f.logger.Info("Initialized SQLite backend", "db_path", cfg.SQLiteDBPath)
		return &Result{Backend: repo, Cleanup: repo.Close}, nil

	case PostgresBackend:
		repo, err := postgres.NewRepository(cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("initialize postgres backend: %w", err)
		}
		f.logger.Info("Initialized Postgres backend")
		return &Result{Backend: repo, Cleanup: repo.Close}, nil

	case SheetsBackend:
		cli, err := sheets.NewClient(ctx, sheets.Config{
			SpreadsheetID:   cfg.GoogleSpreadsheetID,
			CredentialsJSON: cfg.GoogleCredentialsJSON,
			CredentialsFile: cfg.GoogleCredentialsFile,
		})
		if err != nil {
			return nil, fmt.Errorf("initialize sheets backend: %w", err)
		}
		f.logger.Info("Initialized Google Sheets backend", "spreadsheet_id", cfg.GoogleSpreadsheetID)
		return &Result{Backend: cli, Cleanup: nil}, nil

	case DemoBackend:
		store := demo.NewStore(time.Now(), cfg.DemoSeed)
		f.logger.Info("Initialized demo backend", "seed", cfg.DemoSeed)
		return &Result{Backend: store, Cleanup: nil}, nil

	default:
		return nil, fmt.Errorf("unsupported backend type: %s", cfg.Type)
	}
}

// CreateBackendOrDemo tries the configured backend and falls back to the
// seeded demo store when construction fails. The dashboard must always
// have data to show; the fallback is logged loudly so nobody mistakes
// sample figures for real ones.
func (f *Factory) CreateBackendOrDemo(ctx context.Context, cfg Config) *Result {
	result, err := f.CreateBackend(ctx, cfg)
	if err == nil {
		return result
	}
	f.logger.Warn("Backend unavailable, falling back to demo data",
		"backend", cfg.Type, "error", err)
	store := demo.NewStore(time.Now(), cfg.DemoSeed)
	return &Result{Backend: store, Cleanup: nil}
}
