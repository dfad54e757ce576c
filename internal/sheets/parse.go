package sheets

import (
	"fmt"
	"strings"
	"time"

	"finadvisor/internal/core"
)

func cell(row []any, i int) string {
	if i >= len(row) {
		return ""
	}
	s, _ := row[i].(string)
	return strings.TrimSpace(s)
}

func parseDateCell(s string) (core.Date, error) {
	for _, layout := range []string{"2006-01-02", "02/01/2006", "2/1/2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return core.DateOf(t), nil
		}
	}
	return core.Date{}, fmt.Errorf("unparsable date %q", s)
}

func parseTransactionRow(row []any) (core.Transaction, error) {
	date, err := parseDateCell(cell(row, 0))
	if err != nil {
		return core.Transaction{}, err
	}

	var ttype core.TransactionType
	switch strings.ToLower(cell(row, 3)) {
	case "income", "ingreso":
		ttype = core.Income
	case "expense", "gasto":
		ttype = core.Expense
	default:
		return core.Transaction{}, fmt.Errorf("unknown type %q", cell(row, 3))
	}

	cents, err := core.ParseDecimalToCents(cell(row, 4))
	if err != nil {
		return core.Transaction{}, fmt.Errorf("amount: %w", err)
	}

	return core.Transaction{
		Date:        date,
		Description: cell(row, 1),
		Category:    cell(row, 2),
		Type:        ttype,
		Amount:      core.Money{Cents: cents},
	}, nil
}

func parseGoalRow(row []any) (core.Goal, error) {
	title := cell(row, 0)
	if title == "" {
		return core.Goal{}, fmt.Errorf("empty title")
	}

	target, err := core.ParseDecimalToCents(cell(row, 1))
	if err != nil {
		return core.Goal{}, fmt.Errorf("target: %w", err)
	}
	current := int64(0)
	if c := cell(row, 2); c != "" {
		if current, err = core.ParseDecimalToCents(c); err != nil {
			return core.Goal{}, fmt.Errorf("current: %w", err)
		}
	}

	priority := core.PriorityMedium
	switch strings.ToLower(cell(row, 4)) {
	case "high", "alta":
		priority = core.PriorityHigh
	case "low", "baja":
		priority = core.PriorityLow
	}

	g := core.Goal{
		Title:         title,
		TargetAmount:  core.Money{Cents: target},
		CurrentAmount: core.Money{Cents: current},
		Category:      cell(row, 3),
		Priority:      priority,
	}
	if d := cell(row, 5); d != "" {
		if deadline, err := parseDateCell(d); err == nil {
			g.Deadline = deadline
		}
	}
	return g, nil
}
