package core

import (
	"errors"
	"strings"
	"testing"
)

func TestTransactionValidate(t *testing.T) {
	valid := Transaction{
		Date:        NewDate(2024, 3, 15),
		Description: "Groceries",
		Category:    "Food",
		Type:        Expense,
		Amount:      Money{Cents: 4250},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid transaction rejected: %v", err)
	}

	cases := []struct {
		name    string
		mutate  func(tx *Transaction)
		wantErr error
	}{
		{"zero date", func(tx *Transaction) { tx.Date = Date{} }, ErrInvalidDate},
		{"bad type", func(tx *Transaction) { tx.Type = "transfer" }, ErrInvalidType},
		{"negative amount", func(tx *Transaction) { tx.Amount = Money{Cents: -1} }, ErrNegativeAmount},
	}
	for _, tc := range cases {
		tx := valid
		tc.mutate(&tx)
		if err := tx.Validate(); !errors.Is(err, tc.wantErr) {
			t.Errorf("%s: got %v, want %v", tc.name, err, tc.wantErr)
		}
	}

	long := valid
	long.Description = strings.Repeat("x", 201)
	if err := long.Validate(); err == nil {
		t.Errorf("overlong description accepted")
	}
}

func TestGoalValidate(t *testing.T) {
	valid := Goal{
		Title:         "Emergency Fund",
		TargetAmount:  Money{Cents: 1000000},
		CurrentAmount: Money{Cents: 350000},
		Category:      "Savings",
		Priority:      PriorityHigh,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid goal rejected: %v", err)
	}

	cases := []struct {
		name    string
		mutate  func(g *Goal)
		wantErr error
	}{
		{"blank title", func(g *Goal) { g.Title = "  " }, ErrEmptyTitle},
		{"zero target", func(g *Goal) { g.TargetAmount = Money{} }, ErrInvalidTarget},
		{"negative current", func(g *Goal) { g.CurrentAmount = Money{Cents: -1} }, ErrNegativeAmount},
		{"bad priority", func(g *Goal) { g.Priority = "urgent" }, ErrInvalidPriority},
	}
	for _, tc := range cases {
		g := valid
		tc.mutate(&g)
		if err := g.Validate(); !errors.Is(err, tc.wantErr) {
			t.Errorf("%s: got %v, want %v", tc.name, err, tc.wantErr)
		}
	}
}

func TestGoalProgress(t *testing.T) {
	g := Goal{TargetAmount: Money{Cents: 1000000}, CurrentAmount: Money{Cents: 350000}}
	if got := g.Progress(); got != 0.35 {
		t.Errorf("Progress = %v, want 0.35", got)
	}
	if g.Met() {
		t.Errorf("goal at 35%% reported met")
	}

	g.CurrentAmount = Money{Cents: 1200000}
	if got := g.Progress(); got != 1.2 {
		t.Errorf("overfunded Progress = %v, want 1.2", got)
	}
	if !g.Met() {
		t.Errorf("overfunded goal not met")
	}

	if got := (Goal{}).Progress(); got != 0 {
		t.Errorf("zero-target Progress = %v, want 0", got)
	}
}

func TestDateHelpers(t *testing.T) {
	d := NewDate(2024, 3, 5)
	if d.ISO() != "2024-03-05" {
		t.Errorf("ISO = %q", d.ISO())
	}
	if d.Period() != "2024-03" {
		t.Errorf("Period = %q", d.Period())
	}
	if (Date{}).ISO() != "" {
		t.Errorf("zero date ISO should be empty")
	}
	if !(Date{}).IsEmpty() {
		t.Errorf("zero date not reported empty")
	}
}
