package ingest

import (
	"errors"
	"testing"
	"time"

	"finadvisor/internal/core"
)

var ref = time.Date(2024, 4, 10, 12, 0, 0, 0, time.UTC)

func TestTransactionsBothSpellings(t *testing.T) {
	records := []map[string]any{
		{
			"date":             "2024-03-15",
			"description":      "Groceries",
			"category":         "Food",
			"transaction_type": "expense",
			"amount":           42.50,
		},
		{
			"fecha":       "2024-03-01",
			"descripcion": "Salario",
			"categoria":   "Salary",
			"tipo":        "ingreso",
			"monto":       2000,
		},
	}

	txs := Transactions(records, ref)
	if len(txs) != 2 {
		t.Fatalf("txs = %d, want 2", len(txs))
	}

	first := txs[0]
	if first.Date.ISO() != "2024-03-15" || first.Description != "Groceries" ||
		first.Category != "Food" || first.Type != core.Expense || first.Amount.Cents != 4250 {
		t.Errorf("first = %+v", first)
	}

	second := txs[1]
	if second.Date.ISO() != "2024-03-01" || second.Description != "Salario" ||
		second.Type != core.Income || second.Amount.Cents != 200000 {
		t.Errorf("second = %+v", second)
	}
}

func TestTransactionsEnglishSpellingWins(t *testing.T) {
	records := []map[string]any{{
		"description": "English",
		"descripcion": "Spanish",
		"amount":      10.0,
		"monto":       99.0,
		"type":        "expense",
		"date":        "2024-03-01",
	}}

	tx := Transactions(records, ref)[0]
	if tx.Description != "English" {
		t.Errorf("description = %q, want the English field", tx.Description)
	}
	if tx.Amount.Cents != 1000 {
		t.Errorf("amount = %d, want 1000", tx.Amount.Cents)
	}
}

func TestTransactionsFieldCoercion(t *testing.T) {
	cases := []struct {
		name      string
		record    map[string]any
		wantCents int64
		wantDate  string
		wantType  core.TransactionType
	}{
		{
			name:      "string amount with comma",
			record:    map[string]any{"amount": "12,34", "type": "expense", "date": "2024-03-01"},
			wantCents: 1234, wantDate: "2024-03-01", wantType: core.Expense,
		},
		{
			name:      "negative amount becomes zero",
			record:    map[string]any{"amount": -5.0, "type": "expense", "date": "2024-03-01"},
			wantCents: 0, wantDate: "2024-03-01", wantType: core.Expense,
		},
		{
			name:      "missing amount becomes zero",
			record:    map[string]any{"type": "income", "date": "2024-03-01"},
			wantCents: 0, wantDate: "2024-03-01", wantType: core.Income,
		},
		{
			name:      "bad date falls back to reference",
			record:    map[string]any{"amount": 1.0, "type": "expense", "date": "not-a-date"},
			wantCents: 100, wantDate: "2024-04-10", wantType: core.Expense,
		},
		{
			name:      "missing date falls back to reference",
			record:    map[string]any{"amount": 1.0, "type": "expense"},
			wantCents: 100, wantDate: "2024-04-10", wantType: core.Expense,
		},
		{
			name:      "slash date layout",
			record:    map[string]any{"amount": 1.0, "type": "expense", "date": "15/03/2024"},
			wantCents: 100, wantDate: "2024-03-15", wantType: core.Expense,
		},
		{
			name:      "timestamp date layout",
			record:    map[string]any{"amount": 1.0, "type": "expense", "date": "2024-03-15 08:30:00"},
			wantCents: 100, wantDate: "2024-03-15", wantType: core.Expense,
		},
		{
			name:      "unknown type kept verbatim",
			record:    map[string]any{"amount": 1.0, "type": "Transfer", "date": "2024-03-01"},
			wantCents: 100, wantDate: "2024-03-01", wantType: "transfer",
		},
	}

	for _, tc := range cases {
		tx := Transactions([]map[string]any{tc.record}, ref)[0]
		if tx.Amount.Cents != tc.wantCents {
			t.Errorf("%s: amount = %d, want %d", tc.name, tx.Amount.Cents, tc.wantCents)
		}
		if tx.Date.ISO() != tc.wantDate {
			t.Errorf("%s: date = %q, want %q", tc.name, tx.Date.ISO(), tc.wantDate)
		}
		if tx.Type != tc.wantType {
			t.Errorf("%s: type = %q, want %q", tc.name, tx.Type, tc.wantType)
		}
	}
}

func TestTransactionsJSON(t *testing.T) {
	body := []byte(`[{"fecha":"2024-03-02","descripcion":"Cena","categoria":"Food","tipo":"gasto","monto":"45,90"}]`)

	txs, err := TransactionsJSON(body, ref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(txs) != 1 || txs[0].Amount.Cents != 4590 || txs[0].Type != core.Expense {
		t.Errorf("txs = %+v", txs)
	}

	for _, bad := range []string{`{"not":"a list"}`, `"scalar"`, `{{`} {
		if _, err := TransactionsJSON([]byte(bad), ref); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("%q: err = %v, want ErrInvalidInput", bad, err)
		}
	}
}

func TestGoalsNormalization(t *testing.T) {
	records := []map[string]any{
		{
			"title":          "Emergency Fund",
			"target_amount":  10000.0,
			"current_amount": 3500.0,
			"category":       "Savings",
			"priority":       "High",
			"deadline":       "2024-12-31",
		},
		{
			"titulo":         "Vacaciones",
			"monto_objetivo": 2500,
			"monto_actual":   800,
			"categoria":      "Leisure",
			"prioridad":      "Media",
		},
		{
			"title":    "No priority given",
			"priority": "whatever",
		},
	}

	goals := Goals(records)
	if len(goals) != 3 {
		t.Fatalf("goals = %d, want 3", len(goals))
	}

	if goals[0].Priority != core.PriorityHigh || goals[0].Deadline.ISO() != "2024-12-31" {
		t.Errorf("first = %+v", goals[0])
	}
	if goals[0].TargetAmount.Cents != 1000000 || goals[0].CurrentAmount.Cents != 350000 {
		t.Errorf("first amounts = %+v", goals[0])
	}

	if goals[1].Title != "Vacaciones" || goals[1].Priority != core.PriorityMedium {
		t.Errorf("second = %+v", goals[1])
	}
	if !goals[1].Deadline.IsEmpty() {
		t.Errorf("missing deadline should stay empty, got %q", goals[1].Deadline.ISO())
	}

	if goals[2].Priority != core.PriorityMedium {
		t.Errorf("unknown priority = %q, want default medium", goals[2].Priority)
	}
}

func TestGoalsJSONSpanishPriorities(t *testing.T) {
	body := []byte(`[
		{"titulo":"A","prioridad":"Alta"},
		{"titulo":"B","prioridad":"Baja"}
	]`)

	goals, err := GoalsJSON(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if goals[0].Priority != core.PriorityHigh {
		t.Errorf("Alta = %q", goals[0].Priority)
	}
	if goals[1].Priority != core.PriorityLow {
		t.Errorf("Baja = %q", goals[1].Priority)
	}
}
