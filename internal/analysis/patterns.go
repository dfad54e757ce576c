package analysis

import (
	"fmt"
	"math"
	"sort"

	"finadvisor/internal/core"
)

// stableExpenseStdDev is the low-variance threshold, in currency units,
// under which grouped expense amounts count as stable recurring spending.
const stableExpenseStdDev = 50.0

// patternFallback replaces the observation list when detection fails.
const patternFallback = "Pattern analysis unavailable"

// DetectPatterns produces short human-readable observations over the whole
// transaction history. It never fails: any internal panic is swallowed and
// replaced by a single fallback message.
func DetectPatterns(txs []core.Transaction) (patterns []string) {
	defer func() {
		if r := recover(); r != nil {
			patterns = []string{patternFallback}
		}
	}()

	var expenses []core.Transaction
	for _, tx := range txs {
		if tx.Type == core.Expense {
			expenses = append(expenses, tx)
		}
	}

	if msg, ok := recurringStability(expenses); ok {
		patterns = append(patterns, msg)
	}
	if day, ok := topGroup(expenses, func(tx core.Transaction) string {
		return tx.Date.Weekday().String()
	}); ok {
		patterns = append(patterns, fmt.Sprintf("Highest spending occurs on %s", day))
	}
	if cat, ok := topGroup(expenses, func(tx core.Transaction) string {
		return tx.Category
	}); ok {
		patterns = append(patterns, fmt.Sprintf("Top spending category is %s", cat))
	}
	return patterns
}

// recurringStability groups expenses by description and checks whether the
// mean of the per-description sample standard deviations stays under the
// stability threshold. Single-occurrence descriptions carry no variance
// information and are skipped.
func recurringStability(expenses []core.Transaction) (string, bool) {
	amounts := map[string][]float64{}
	for _, tx := range expenses {
		amounts[tx.Description] = append(amounts[tx.Description], tx.Amount.Units())
	}
	if len(amounts) == 0 {
		return "", false
	}

	var sum float64
	var n int
	for _, vals := range amounts {
		if len(vals) < 2 {
			continue
		}
		sum += sampleStdDev(vals)
		n++
	}
	if n == 0 || sum/float64(n) >= stableExpenseStdDev {
		return "", false
	}
	return "Stable recurring expenses", true
}

// topGroup sums expense amounts per key and returns the key with the
// largest total. Ties break toward the lexicographically smallest key so
// results stay deterministic.
func topGroup(expenses []core.Transaction, keyOf func(core.Transaction) string) (string, bool) {
	totals := map[string]int64{}
	for _, tx := range expenses {
		totals[keyOf(tx)] += tx.Amount.Cents
	}
	if len(totals) == 0 {
		return "", false
	}

	keys := make([]string, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	best := keys[0]
	for _, k := range keys[1:] {
		if totals[k] > totals[best] {
			best = k
		}
	}
	return best, true
}

// sampleStdDev computes the n-1 standard deviation. Callers must pass at
// least two values.
func sampleStdDev(vals []float64) float64 {
	var mean float64
	for _, v := range vals {
		mean += v
	}
	mean /= float64(len(vals))

	var ss float64
	for _, v := range vals {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(vals)-1))
}
