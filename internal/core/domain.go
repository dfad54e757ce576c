package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

const (
	PriorityLow    GoalPriority = "Low"
	PriorityMedium GoalPriority = "Medium"
	PriorityHigh   GoalPriority = "High"
)

type (
	TransactionType string

	GoalPriority string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Transaction is a single income or expense movement. Amounts are
	// always non-negative; the Type field decides the sign in aggregates.
	Transaction struct {
		ID          string
		Date        Date
		Description string
		Category    string
		Type        TransactionType
		Amount      Money
	}

	// Goal is a savings target. Deadline may be empty.
	Goal struct {
		ID            string
		Title         string
		TargetAmount  Money
		CurrentAmount Money
		Category      string
		Priority      GoalPriority
		Deadline      Date
	}
)

var (
	ErrInvalidDate     = errors.New("invalid date")
	ErrNegativeAmount  = errors.New("negative amount")
	ErrInvalidType     = errors.New("invalid transaction type")
	ErrEmptyTitle      = errors.New("empty goal title")
	ErrInvalidTarget   = errors.New("goal target must be positive")
	ErrInvalidPriority = errors.New("invalid goal priority")
)

// NewDate creates a Date from year, month, day at midnight UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a time to its calendar date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// IsEmpty reports whether the date is unset (used for optional deadlines).
func (d Date) IsEmpty() bool {
	return d.IsZero()
}

// ISO returns the date as YYYY-MM-DD, or the empty string when unset.
func (d Date) ISO() string {
	if d.IsZero() {
		return ""
	}
	return d.Format("2006-01-02")
}

// Period returns the calendar year-month label, e.g. "2024-03".
func (d Date) Period() string {
	return d.Format("2006-01")
}

func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

func (p GoalPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

func (m Money) Validate() error {
	if m.Cents < 0 {
		return ErrNegativeAmount
	}
	return nil
}

func (tx Transaction) Validate() error {
	if err := tx.Date.Validate(); err != nil {
		return err
	}
	if !tx.Type.Valid() {
		return ErrInvalidType
	}
	if err := tx.Amount.Validate(); err != nil {
		return err
	}
	if len(tx.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	return nil
}

func (g Goal) Validate() error {
	if len(strings.TrimSpace(g.Title)) == 0 {
		return ErrEmptyTitle
	}
	if g.TargetAmount.Cents <= 0 {
		return ErrInvalidTarget
	}
	if err := g.CurrentAmount.Validate(); err != nil {
		return err
	}
	if !g.Priority.Valid() {
		return ErrInvalidPriority
	}
	return nil
}

// Progress returns current/target as a fraction. A full goal returns 1.0,
// overfunded goals return values above 1.0.
func (g Goal) Progress() float64 {
	if g.TargetAmount.Cents <= 0 {
		return 0
	}
	return float64(g.CurrentAmount.Cents) / float64(g.TargetAmount.Cents)
}

// Met reports whether the goal reached its target.
func (g Goal) Met() bool {
	return g.CurrentAmount.Cents >= g.TargetAmount.Cents
}
