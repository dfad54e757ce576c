// Package sheets backs the dashboard with a Google Sheets ledger: one
// sheet of transaction rows, one of goal rows. Useful for households that
// already keep their ledger in a spreadsheet.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"finadvisor/internal/core"
)

// Config selects the spreadsheet and the credentials used to reach it.
// CredentialsJSON takes precedence over CredentialsFile.
type Config struct {
	SpreadsheetID     string
	CredentialsJSON   string
	CredentialsFile   string
	TransactionsSheet string // default "Transactions"
	GoalsSheet        string // default "Goals"
}

type Client struct {
	svc               *gsheet.Service
	spreadsheetID     string
	transactionsSheet string
	goalsSheet        string
}

// NewClient builds a Sheets-backed ledger client using Service Account
// credentials.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.SpreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet ID")
	}
	if cfg.TransactionsSheet == "" {
		cfg.TransactionsSheet = "Transactions"
	}
	if cfg.GoalsSheet == "" {
		cfg.GoalsSheet = "Goals"
	}

	credentials := []byte(cfg.CredentialsJSON)
	if len(credentials) == 0 && cfg.CredentialsFile != "" {
		var err error
		credentials, err = os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read credentials file: %w", err)
		}
	}
	if len(credentials) == 0 {
		return nil, errors.New("missing service account credentials")
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentials),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Client{
		svc:               svc,
		spreadsheetID:     cfg.SpreadsheetID,
		transactionsSheet: cfg.TransactionsSheet,
		goalsSheet:        cfg.GoalsSheet,
	}, nil
}

// ListTransactions reads the transaction sheet. Expected columns, first
// row being a header: date, description, category, type, amount. Rows
// that cannot be parsed are skipped with a warning; the ledger is
// user-maintained and a stray row must not take the dashboard down.
func (c *Client) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	readRange := c.transactionsSheet + "!A2:E"
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read range %s: %w", readRange, err)
	}

	var txs []core.Transaction
	for i, row := range resp.Values {
		tx, err := parseTransactionRow(row)
		if err != nil {
			slog.WarnContext(ctx, "Skipping unparsable ledger row",
				"sheet", c.transactionsSheet, "row", i+2, "error", err)
			continue
		}
		tx.ID = fmt.Sprintf("%s:%d", c.transactionsSheet, i+2)
		txs = append(txs, tx)
	}
	return txs, nil
}

// AddTransaction appends a row to the transaction sheet and returns its
// reference.
func (c *Client) AddTransaction(ctx context.Context, tx core.Transaction) (string, error) {
	if err := tx.Validate(); err != nil {
		return "", fmt.Errorf("validate transaction: %w", err)
	}

	values := &gsheet.ValueRange{
		Values: [][]any{{
			tx.Date.ISO(), tx.Description, tx.Category, string(tx.Type), tx.Amount.String(),
		}},
	}
	resp, err := c.svc.Spreadsheets.Values.
		Append(c.spreadsheetID, c.transactionsSheet+"!A:E", values).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("append transaction row: %w", err)
	}

	ref := c.transactionsSheet
	if resp.Updates != nil && resp.Updates.UpdatedRange != "" {
		ref = resp.Updates.UpdatedRange
	}
	slog.InfoContext(ctx, "Transaction appended to sheet", "ref", ref)
	return ref, nil
}

// AddGoal appends a row to the goal sheet and returns its reference.
func (c *Client) AddGoal(ctx context.Context, g core.Goal) (string, error) {
	if err := g.Validate(); err != nil {
		return "", fmt.Errorf("validate goal: %w", err)
	}

	values := &gsheet.ValueRange{
		Values: [][]any{{
			g.Title, g.TargetAmount.String(), g.CurrentAmount.String(),
			g.Category, string(g.Priority), g.Deadline.ISO(),
		}},
	}
	resp, err := c.svc.Spreadsheets.Values.
		Append(c.spreadsheetID, c.goalsSheet+"!A:F", values).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("append goal row: %w", err)
	}

	ref := c.goalsSheet
	if resp.Updates != nil && resp.Updates.UpdatedRange != "" {
		ref = resp.Updates.UpdatedRange
	}
	slog.InfoContext(ctx, "Goal appended to sheet", "ref", ref)
	return ref, nil
}

// ListGoals reads the goal sheet. Expected columns: title, target,
// current, category, priority, deadline.
func (c *Client) ListGoals(ctx context.Context) ([]core.Goal, error) {
	readRange := c.goalsSheet + "!A2:F"
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read range %s: %w", readRange, err)
	}

	var goals []core.Goal
	for i, row := range resp.Values {
		g, err := parseGoalRow(row)
		if err != nil {
			slog.WarnContext(ctx, "Skipping unparsable goal row",
				"sheet", c.goalsSheet, "row", i+2, "error", err)
			continue
		}
		g.ID = fmt.Sprintf("%s:%d", c.goalsSheet, i+2)
		goals = append(goals, g)
	}
	return goals, nil
}
