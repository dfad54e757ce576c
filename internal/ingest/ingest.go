// Package ingest normalizes heterogeneous raw records into the canonical
// domain types. Upstream sources use two parallel field spellings for the
// same attributes; all of that is resolved here, at the boundary, so the
// analysis engine never branches on field names.
package ingest

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"finadvisor/internal/core"
)

// ErrInvalidInput signals input that is not usable at all, e.g. a request
// body that is not a list of records. Individual malformed fields never
// trigger it; those are coerced to defaults instead.
var ErrInvalidInput = errors.New("ingest: input is not a record list")

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"02/01/2006",
}

// Transactions normalizes raw transaction records. Records with an
// unusable amount keep amount zero; records with an unusable date default
// to the reference date. Nothing here fails per record.
func Transactions(records []map[string]any, ref time.Time) []core.Transaction {
	txs := make([]core.Transaction, 0, len(records))
	for _, rec := range records {
		txs = append(txs, core.Transaction{
			ID:          stringField(rec, "id"),
			Date:        dateField(rec, ref, "date", "fecha"),
			Description: stringField(rec, "description", "descripcion"),
			Category:    stringField(rec, "category", "categoria"),
			Type:        typeField(rec),
			Amount:      amountField(rec, "amount", "monto"),
		})
	}
	return txs
}

// TransactionsJSON decodes a JSON array of records and normalizes it.
// A body that does not decode to a list returns ErrInvalidInput so that
// integration bugs surface instead of yielding a silent empty result.
func TransactionsJSON(data []byte, ref time.Time) ([]core.Transaction, error) {
	var records []map[string]any
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return Transactions(records, ref), nil
}

// Goals normalizes raw goal records, accepting both field spellings and
// the Alta/Media/Baja priority labels.
func Goals(records []map[string]any) []core.Goal {
	goals := make([]core.Goal, 0, len(records))
	for _, rec := range records {
		goals = append(goals, core.Goal{
			ID:            stringField(rec, "id"),
			Title:         stringField(rec, "title", "titulo"),
			TargetAmount:  amountField(rec, "target_amount", "monto_objetivo"),
			CurrentAmount: amountField(rec, "current_amount", "monto_actual"),
			Category:      stringField(rec, "category", "categoria"),
			Priority:      priorityField(rec),
			Deadline:      deadlineField(rec),
		})
	}
	return goals
}

// GoalsJSON decodes and normalizes a JSON array of goal records.
func GoalsJSON(data []byte) ([]core.Goal, error) {
	var records []map[string]any
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return Goals(records), nil
}

func stringField(rec map[string]any, names ...string) string {
	for _, name := range names {
		if v, ok := rec[name]; ok {
			if s, ok := v.(string); ok {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}

func amountField(rec map[string]any, names ...string) core.Money {
	for _, name := range names {
		v, ok := rec[name]
		if !ok {
			continue
		}
		switch n := v.(type) {
		case float64:
			if n >= 0 {
				return core.Money{Cents: core.CentsOf(n)}
			}
		case int:
			if n >= 0 {
				return core.Money{Cents: int64(n) * 100}
			}
		case int64:
			if n >= 0 {
				return core.Money{Cents: n * 100}
			}
		case json.Number:
			if f, err := n.Float64(); err == nil && f >= 0 {
				return core.Money{Cents: core.CentsOf(f)}
			}
		case string:
			if cents, err := core.ParseDecimalToCents(n); err == nil {
				return core.Money{Cents: cents}
			}
		}
	}
	// Unusable amounts become zero rather than dropping the record.
	return core.Money{}
}

func dateField(rec map[string]any, ref time.Time, names ...string) core.Date {
	for _, name := range names {
		s, ok := rec[name].(string)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return core.DateOf(t)
			}
		}
	}
	// Missing or unparsable dates default to the reference date.
	return core.DateOf(ref)
}

func typeField(rec map[string]any) core.TransactionType {
	raw := strings.ToLower(stringField(rec, "transaction_type", "tipo", "type"))
	switch raw {
	case "income", "ingreso":
		return core.Income
	case "expense", "gasto":
		return core.Expense
	}
	// Unknown types are kept verbatim; aggregates ignore them.
	return core.TransactionType(raw)
}

func priorityField(rec map[string]any) core.GoalPriority {
	raw := strings.ToLower(stringField(rec, "priority", "prioridad"))
	switch raw {
	case "high", "alta":
		return core.PriorityHigh
	case "low", "baja":
		return core.PriorityLow
	case "medium", "media":
		return core.PriorityMedium
	}
	return core.PriorityMedium
}

func deadlineField(rec map[string]any) core.Date {
	s := stringField(rec, "deadline", "fecha_limite")
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return core.DateOf(t)
		}
	}
	return core.Date{}
}
