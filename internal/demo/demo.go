// Package demo fabricates sample financial data for demonstrations and
// as the fallback when no persistence backend is reachable. Everything
// produced here is synthetic; production code paths must only reach this
// package through the demo backend or an explicit trend fallback.
package demo

import (
	"fmt"
	"math/rand"
	"time"

	"finadvisor/internal/core"
)

const (
	sampleIncomes  = 15
	sampleExpenses = 30
	historyDays    = 90

	// Synthetic trend series parameters: net savings drawn around this
	// mean with this spread, one point per month.
	trendMean   = 500.0
	trendSpread = 200.0
	trendMonths = 6
)

var incomeSources = []string{"Salary", "Freelance", "Investments", "Bonuses"}

var expenseCategories = []string{
	"Food", "Transport", "Housing", "Entertainment", "Health", "Education",
}

// SampleTransactions generates a deterministic sample ledger spread over
// the 90 days before ref: 15 income records between 800 and 2000 and 30
// expense records between 10 and 300.
func SampleTransactions(ref time.Time, seed int64) []core.Transaction {
	rng := rand.New(rand.NewSource(seed))
	txs := make([]core.Transaction, 0, sampleIncomes+sampleExpenses)

	for i := 0; i < sampleIncomes; i++ {
		date := ref.AddDate(0, 0, -rng.Intn(historyDays+1))
		txs = append(txs, core.Transaction{
			ID:          fmt.Sprintf("inc_%d", i),
			Date:        core.DateOf(date),
			Description: incomeSources[rng.Intn(len(incomeSources))],
			Category:    "Income",
			Type:        core.Income,
			Amount:      core.Money{Cents: core.CentsOf(800 + rng.Float64()*1200)},
		})
	}

	for i := 0; i < sampleExpenses; i++ {
		date := ref.AddDate(0, 0, -rng.Intn(historyDays+1))
		category := expenseCategories[rng.Intn(len(expenseCategories))]
		txs = append(txs, core.Transaction{
			ID:          fmt.Sprintf("exp_%d", i),
			Date:        core.DateOf(date),
			Description: fmt.Sprintf("Spending on %s", category),
			Category:    category,
			Type:        core.Expense,
			Amount:      core.Money{Cents: core.CentsOf(10 + rng.Float64()*290)},
		})
	}

	return txs
}

// SampleGoals returns two canned savings goals.
func SampleGoals(ref time.Time) []core.Goal {
	year := ref.Year()
	return []core.Goal{
		{
			ID:            "goal_1",
			Title:         "Emergency Fund",
			TargetAmount:  core.Money{Cents: 10000_00},
			CurrentAmount: core.Money{Cents: 3500_00},
			Category:      "Emergency Savings",
			Priority:      core.PriorityHigh,
			Deadline:      core.NewDate(year, 12, 31),
		},
		{
			ID:            "goal_2",
			Title:         "Beach Vacation",
			TargetAmount:  core.Money{Cents: 2500_00},
			CurrentAmount: core.Money{Cents: 800_00},
			Category:      "Vacation",
			Priority:      core.PriorityMedium,
			Deadline:      core.NewDate(year, 8, 31),
		},
	}
}

// SyntheticTrend fabricates a six-month net-savings series ending at the
// month of ref, normally distributed around the trend mean. The series is
// placeholder display data, never real figures.
func SyntheticTrend(ref time.Time, seed int64) []core.TrendPoint {
	rng := rand.New(rand.NewSource(seed))
	points := make([]core.TrendPoint, trendMonths)
	for i := 0; i < trendMonths; i++ {
		month := ref.AddDate(0, -(trendMonths - 1 - i), 0)
		points[i] = core.TrendPoint{
			Period:     core.DateOf(month).Period(),
			NetSavings: core.Money{Cents: core.CentsOf(rng.NormFloat64()*trendSpread + trendMean)},
		}
	}
	return points
}
