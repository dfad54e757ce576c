package analysis

import (
	"time"

	"finadvisor/internal/core"
)

// ComputeMetrics derives the full monthly summary from a transaction list.
// The reporting window is the calendar month before ref. Patterns and
// trends look at the whole transaction history; the scalar aggregates and
// the category breakdown only at the window.
//
// An empty input yields a zeroed result labeled "No data"; this is not an
// error condition.
func ComputeMetrics(txs []core.Transaction, ref time.Time) core.MetricsResult {
	return ComputeMetricsWindow(txs, PreviousMonth(ref))
}

// ComputeMetricsWindow is ComputeMetrics with an explicit reporting window.
func ComputeMetricsWindow(txs []core.Transaction, w Window) core.MetricsResult {
	if len(txs) == 0 {
		return core.MetricsResult{
			FinancialHealth:    core.HealthNoData,
			ExpensesByCategory: map[string]core.Money{},
		}
	}

	var income, expenses core.Money
	byCategory := map[string]core.Money{}
	for _, tx := range txs {
		if !w.Contains(tx.Date) {
			continue
		}
		switch tx.Type {
		case core.Income:
			income = income.Add(tx.Amount)
		case core.Expense:
			expenses = expenses.Add(tx.Amount)
			byCategory[tx.Category] = byCategory[tx.Category].Add(tx.Amount)
		}
	}

	net := income.Sub(expenses)
	rate := SavingsRate(income, expenses)
	health, trend := healthBand(rate)

	return core.MetricsResult{
		MonthlyIncome:      income,
		MonthlyExpenses:    expenses,
		NetSavings:         net,
		SavingsRate:        rate,
		FinancialHealth:    health,
		HealthTrend:        trend,
		ExpensesByCategory: byCategory,
		MonthlyTrends:      ComputeTrends(txs),
		SpendingPatterns:   DetectPatterns(txs),
		Alerts:             GenerateAlerts(income, expenses, byCategory),
	}
}

// SavingsRate returns (income-expenses)/income as a percentage, or zero
// when there is no income.
func SavingsRate(income, expenses core.Money) float64 {
	if income.Cents <= 0 {
		return 0
	}
	return float64(income.Cents-expenses.Cents) / float64(income.Cents) * 100
}

// healthBand maps a savings rate to its qualitative label and the static
// display trend for that band. The trend strings are fixed hints shown
// next to the label, not computed deltas.
func healthBand(rate float64) (health, trend string) {
	switch {
	case rate >= 20:
		return core.HealthExcellent, "+5%"
	case rate >= 10:
		return core.HealthGood, "+2%"
	case rate > 0:
		return core.HealthFair, "-1%"
	default:
		return core.HealthPoor, "-5%"
	}
}
