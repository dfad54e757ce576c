package analysis

import (
	"fmt"
	"sort"

	"finadvisor/internal/core"
)

const (
	// investSurplusRate: above this savings rate the engine suggests
	// investing the surplus instead of raising the rate further.
	investSurplusRate = 30.0

	// dominantCategoryShare of monthly income: the single largest expense
	// category above this fraction triggers a review suggestion.
	dominantCategoryShare = 0.3

	// minRecommendations: below this count the generic fallback fires.
	minRecommendations = 2
)

// Recommend evaluates the recommendation rules in a fixed sequence; the
// returned order is the ranking. Rules do not de-duplicate. When fewer
// than two rules fire, a generic fallback is appended so the list is
// never empty.
func Recommend(m core.MetricsResult, goals []core.Goal) []core.Recommendation {
	var recs []core.Recommendation

	if m.SavingsRate < savingsRateAlertFloor {
		recs = append(recs, core.Recommendation{
			Title: "Increase your savings rate",
			Description: fmt.Sprintf(
				"Your current savings rate is %.1f%%. Aim for %.0f%% by cutting non-essential spending.",
				m.SavingsRate, savingsRateTarget),
			Type:     core.RecommendSavings,
			Priority: core.SeverityHigh,
			Action:   "Review discretionary spending",
		})
	} else if m.SavingsRate > investSurplusRate {
		recs = append(recs, core.Recommendation{
			Title:       "Consider investing your savings",
			Description: "Excellent savings rate. Investment options could put the surplus to work.",
			Type:        core.RecommendInvestment,
			Priority:    core.SeverityMedium,
			Action:      "Explore investment options",
		})
	}

	if cat, amount, ok := largestCategory(m.ExpensesByCategory); ok {
		if float64(amount.Cents) > float64(m.MonthlyIncome.Cents)*dominantCategoryShare {
			recs = append(recs, core.Recommendation{
				Title: fmt.Sprintf("Review spending in %s", cat),
				Description: fmt.Sprintf(
					"You are spending %s on %s, a significant share of your income.",
					amount, cat),
				Type:     core.RecommendSpending,
				Priority: core.SeverityMedium,
				Action:   fmt.Sprintf("Analyze %s expenses", cat),
			})
		}
	}

	if goal, ok := mostUrgentUnmetGoal(goals); ok {
		priority := core.SeverityMedium
		if goal.Priority == core.PriorityHigh {
			priority = core.SeverityHigh
		}
		deadline := goal.Deadline.ISO()
		if deadline == "" {
			deadline = "the deadline"
		}
		recs = append(recs, core.Recommendation{
			Title: fmt.Sprintf("Focus on your goal: %s", goal.Title),
			Description: fmt.Sprintf("You have %s of %s saved for %s.",
				goal.CurrentAmount, goal.TargetAmount, deadline),
			Type:     core.RecommendGoals,
			Priority: priority,
			Action:   fmt.Sprintf("Increase contributions to %s", goal.Title),
		})
	}

	if len(recs) < minRecommendations {
		recs = append(recs, core.Recommendation{
			Title:       "Diversify your income sources",
			Description: "Additional income streams improve financial resilience.",
			Type:        core.RecommendIncome,
			Priority:    core.SeverityLow,
			Action:      "Research passive income opportunities",
		})
	}

	return recs
}

// largestCategory returns the category with the highest summed amount,
// ties breaking toward the lexicographically smallest name.
func largestCategory(byCategory map[string]core.Money) (string, core.Money, bool) {
	if len(byCategory) == 0 {
		return "", core.Money{}, false
	}
	categories := make([]string, 0, len(byCategory))
	for cat := range byCategory {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	best := categories[0]
	for _, cat := range categories[1:] {
		if byCategory[cat].Cents > byCategory[best].Cents {
			best = cat
		}
	}
	return best, byCategory[best], true
}

// mostUrgentUnmetGoal picks the unmet goal with the earliest deadline.
// Goals without a deadline sort last; ties keep the earlier list entry.
func mostUrgentUnmetGoal(goals []core.Goal) (core.Goal, bool) {
	var urgent core.Goal
	found := false
	for _, g := range goals {
		if g.Met() {
			continue
		}
		if !found || deadlineBefore(g.Deadline, urgent.Deadline) {
			urgent = g
			found = true
		}
	}
	return urgent, found
}

func deadlineBefore(a, b core.Date) bool {
	if a.IsEmpty() {
		return false
	}
	if b.IsEmpty() {
		return true
	}
	return a.Before(b.Time)
}
