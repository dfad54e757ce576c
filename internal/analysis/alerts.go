package analysis

import (
	"fmt"
	"sort"

	"finadvisor/internal/core"
)

const (
	// savingsRateAlertFloor is the savings rate below which the low-rate
	// alert fires; savingsRateTarget is the value named in its message.
	savingsRateAlertFloor = 10.0
	savingsRateTarget     = 20.0

	// categoryShareAlertPct: a category whose share of total expenses is
	// strictly greater than this fires a medium alert. Exactly at the
	// boundary does not fire.
	categoryShareAlertPct = 40.0
)

// GenerateAlerts evaluates the alert rules for one reporting window. The
// rules are independent; any combination may fire, in a fixed order:
// savings rate, per-category concentration, deficit.
func GenerateAlerts(income, expenses core.Money, byCategory map[string]core.Money) []core.Alert {
	var alerts []core.Alert

	rate := SavingsRate(income, expenses)
	if rate < savingsRateAlertFloor {
		alerts = append(alerts, core.Alert{
			Type:     core.AlertSavingsRate,
			Severity: core.SeverityHigh,
			Message:  fmt.Sprintf("Low savings rate (%.1f%%). Target: %.0f%%", rate, savingsRateTarget),
		})
	}

	var total int64
	for _, amount := range byCategory {
		total += amount.Cents
	}
	if total > 0 {
		categories := make([]string, 0, len(byCategory))
		for cat := range byCategory {
			categories = append(categories, cat)
		}
		sort.Strings(categories)
		for _, cat := range categories {
			share := float64(byCategory[cat].Cents) / float64(total) * 100
			if share > categoryShareAlertPct {
				alerts = append(alerts, core.Alert{
					Type:     core.AlertCategorySpending,
					Severity: core.SeverityMedium,
					Message:  fmt.Sprintf("High spending in %s (%.1f%% of total)", cat, share),
				})
			}
		}
	}

	if expenses.Cents > income.Cents {
		alerts = append(alerts, core.Alert{
			Type:     core.AlertDeficit,
			Severity: core.SeverityHigh,
			Message:  "Expenses exceed income this month",
		})
	}

	return alerts
}
