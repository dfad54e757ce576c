package analysis

import (
	"sort"

	"finadvisor/internal/core"
)

// trendPeriods is how many months of history the trend series covers.
const trendPeriods = 6

// ComputeTrends groups the whole transaction history by calendar
// year-month and returns the net savings of the most recent periods,
// oldest first. Months without transactions do not appear. An empty input
// yields an empty series; callers that need placeholder figures for a
// demo view use the synthetic generator instead.
func ComputeTrends(txs []core.Transaction) []core.TrendPoint {
	net := map[string]int64{}
	for _, tx := range txs {
		period := tx.Date.Period()
		switch tx.Type {
		case core.Income:
			net[period] += tx.Amount.Cents
		case core.Expense:
			net[period] -= tx.Amount.Cents
		}
	}
	if len(net) == 0 {
		return nil
	}

	// ISO period labels sort chronologically.
	periods := make([]string, 0, len(net))
	for p := range net {
		periods = append(periods, p)
	}
	sort.Strings(periods)
	if len(periods) > trendPeriods {
		periods = periods[len(periods)-trendPeriods:]
	}

	points := make([]core.TrendPoint, len(periods))
	for i, p := range periods {
		points[i] = core.TrendPoint{Period: p, NetSavings: core.Money{Cents: net[p]}}
	}
	return points
}
