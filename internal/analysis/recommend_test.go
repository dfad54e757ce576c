package analysis

import (
	"strings"
	"testing"

	"finadvisor/internal/core"
)

func metricsWith(rate float64, incomeCents int64, byCategory map[string]core.Money) core.MetricsResult {
	return core.MetricsResult{
		SavingsRate:        rate,
		MonthlyIncome:      core.Money{Cents: incomeCents},
		ExpensesByCategory: byCategory,
	}
}

func TestRecommendLowSavingsRate(t *testing.T) {
	recs := Recommend(metricsWith(5, 100000, nil), nil)

	if len(recs) < minRecommendations {
		t.Fatalf("recs = %d, want at least %d", len(recs), minRecommendations)
	}
	first := recs[0]
	if first.Type != core.RecommendSavings || first.Priority != core.SeverityHigh {
		t.Errorf("first rec = %+v", first)
	}
	if first.Title != "Increase your savings rate" {
		t.Errorf("title = %q", first.Title)
	}
	if first.Action != "Review discretionary spending" {
		t.Errorf("action = %q", first.Action)
	}
	if !strings.Contains(first.Description, "5.0%") {
		t.Errorf("description = %q", first.Description)
	}
}

func TestRecommendInvestSurplus(t *testing.T) {
	recs := Recommend(metricsWith(35, 100000, nil), nil)

	if recs[0].Type != core.RecommendInvestment || recs[0].Priority != core.SeverityMedium {
		t.Errorf("first rec = %+v", recs[0])
	}

	// The two rate rules are exclusive.
	for _, r := range recs {
		if r.Type == core.RecommendSavings {
			t.Errorf("savings rule fired at 35%% rate")
		}
	}

	// Between the thresholds neither rate rule fires.
	between := Recommend(metricsWith(20, 100000, nil), nil)
	for _, r := range between {
		if r.Type == core.RecommendSavings || r.Type == core.RecommendInvestment {
			t.Errorf("rate rule fired at 20%%: %+v", r)
		}
	}
}

func TestRecommendDominantCategory(t *testing.T) {
	byCategory := map[string]core.Money{
		"Housing": {Cents: 40000},
		"Food":    {Cents: 10000},
	}
	recs := Recommend(metricsWith(15, 100000, byCategory), nil)

	var spending *core.Recommendation
	for i := range recs {
		if recs[i].Type == core.RecommendSpending {
			spending = &recs[i]
		}
	}
	if spending == nil {
		t.Fatalf("spending rec missing: %+v", recs)
	}
	if !strings.Contains(spending.Title, "Housing") {
		t.Errorf("title = %q", spending.Title)
	}
	if spending.Priority != core.SeverityMedium {
		t.Errorf("priority = %q", spending.Priority)
	}

	// Exactly 30% of income does not trigger; the rule is strict.
	at := Recommend(metricsWith(15, 100000, map[string]core.Money{"Housing": {Cents: 30000}}), nil)
	for _, r := range at {
		if r.Type == core.RecommendSpending {
			t.Errorf("30%% boundary fired: %+v", r)
		}
	}
}

func TestRecommendGoalUrgency(t *testing.T) {
	goals := []core.Goal{
		{
			Title:         "Vacation",
			TargetAmount:  core.Money{Cents: 250000},
			CurrentAmount: core.Money{Cents: 80000},
			Priority:      core.PriorityMedium,
			Deadline:      core.NewDate(2024, 8, 31),
		},
		{
			Title:         "Emergency Fund",
			TargetAmount:  core.Money{Cents: 1000000},
			CurrentAmount: core.Money{Cents: 350000},
			Priority:      core.PriorityHigh,
			Deadline:      core.NewDate(2024, 12, 31),
		},
		{
			Title:         "Done",
			TargetAmount:  core.Money{Cents: 1000},
			CurrentAmount: core.Money{Cents: 1000},
			Priority:      core.PriorityHigh,
			Deadline:      core.NewDate(2024, 1, 1),
		},
	}

	recs := Recommend(metricsWith(15, 100000, nil), goals)

	var goalRec *core.Recommendation
	for i := range recs {
		if recs[i].Type == core.RecommendGoals {
			goalRec = &recs[i]
		}
	}
	if goalRec == nil {
		t.Fatalf("goal rec missing: %+v", recs)
	}
	// Met goal excluded; earliest-deadline unmet goal wins.
	if !strings.Contains(goalRec.Title, "Vacation") {
		t.Errorf("title = %q, want the Vacation goal", goalRec.Title)
	}
	if goalRec.Priority != core.SeverityMedium {
		t.Errorf("priority = %q, want medium for a medium-priority goal", goalRec.Priority)
	}
}

func TestRecommendGoalPriorityEscalation(t *testing.T) {
	goals := []core.Goal{{
		Title:         "Emergency Fund",
		TargetAmount:  core.Money{Cents: 1000000},
		CurrentAmount: core.Money{Cents: 100000},
		Priority:      core.PriorityHigh,
	}}

	recs := Recommend(metricsWith(15, 100000, nil), goals)
	for _, r := range recs {
		if r.Type == core.RecommendGoals && r.Priority != core.SeverityHigh {
			t.Errorf("high-priority goal produced %q rec", r.Priority)
		}
	}
}

func TestRecommendFallback(t *testing.T) {
	// Healthy finances, no goals: only the fallback applies.
	recs := Recommend(metricsWith(15, 100000, nil), nil)

	if len(recs) != 1 {
		t.Fatalf("recs = %d, want only the fallback: %+v", len(recs), recs)
	}
	if recs[0].Type != core.RecommendIncome || recs[0].Priority != core.SeverityLow {
		t.Errorf("fallback rec = %+v", recs[0])
	}
	if recs[0].Title != "Diversify your income sources" {
		t.Errorf("fallback title = %q", recs[0].Title)
	}

	// With two rules already firing the fallback stays out.
	byCategory := map[string]core.Money{"Housing": {Cents: 50000}}
	full := Recommend(metricsWith(5, 100000, byCategory), nil)
	if len(full) < minRecommendations {
		t.Fatalf("recs = %d, want at least %d", len(full), minRecommendations)
	}
	for _, r := range full {
		if r.Type == core.RecommendIncome {
			t.Errorf("fallback fired alongside %d other recs", len(full)-1)
		}
	}
}

func TestRecommendEmptyMetricsYieldsTwo(t *testing.T) {
	// Zero-value metrics have a zero savings rate, so the savings rule
	// fires and the fallback joins it.
	recs := Recommend(core.MetricsResult{}, nil)

	if len(recs) != minRecommendations {
		t.Fatalf("recs = %d, want %d: %+v", len(recs), minRecommendations, recs)
	}
	if recs[0].Type != core.RecommendSavings {
		t.Errorf("first rec = %+v", recs[0])
	}
	if recs[1].Type != core.RecommendIncome {
		t.Errorf("second rec = %+v", recs[1])
	}
}

func TestDeadlineOrdering(t *testing.T) {
	early := core.NewDate(2024, 6, 1)
	late := core.NewDate(2024, 9, 1)
	none := core.Date{}

	cases := []struct {
		a, b core.Date
		want bool
	}{
		{early, late, true},
		{late, early, false},
		{early, none, true},
		{none, early, false},
		{none, none, false},
	}
	for _, tc := range cases {
		if got := deadlineBefore(tc.a, tc.b); got != tc.want {
			t.Errorf("deadlineBefore(%v, %v) = %v, want %v", tc.a.ISO(), tc.b.ISO(), got, tc.want)
		}
	}
}
