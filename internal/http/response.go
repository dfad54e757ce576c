package http

import (
	"encoding/json"
	"net/http"

	"finadvisor/internal/core"
)

// Wire representations: amounts leave the API as currency units with two
// implied decimals, not cents.

type alertJSON struct {
	Type     string `json:"type"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

type recommendationJSON struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Priority    string `json:"priority"`
	Action      string `json:"action,omitempty"`
}

type trendPointJSON struct {
	Period     string  `json:"period"`
	NetSavings float64 `json:"net_savings"`
}

type metricsJSON struct {
	Period             string             `json:"period"`
	MonthlyIncome      float64            `json:"monthly_income"`
	MonthlyExpenses    float64            `json:"monthly_expenses"`
	NetSavings         float64            `json:"net_savings"`
	SavingsRate        float64            `json:"savings_rate"`
	FinancialHealth    string             `json:"financial_health"`
	HealthTrend        string             `json:"health_trend"`
	ExpensesByCategory map[string]float64 `json:"expenses_by_category"`
	MonthlyTrends      []trendPointJSON   `json:"monthly_trends"`
	SpendingPatterns   []string           `json:"spending_patterns"`
	Alerts             []alertJSON        `json:"alerts"`
}

func metricsResponse(period string, m core.MetricsResult) metricsJSON {
	byCategory := make(map[string]float64, len(m.ExpensesByCategory))
	for cat, amount := range m.ExpensesByCategory {
		byCategory[cat] = amount.Units()
	}

	resp := metricsJSON{
		Period:             period,
		MonthlyIncome:      m.MonthlyIncome.Units(),
		MonthlyExpenses:    m.MonthlyExpenses.Units(),
		NetSavings:         m.NetSavings.Units(),
		SavingsRate:        m.SavingsRate,
		FinancialHealth:    m.FinancialHealth,
		HealthTrend:        m.HealthTrend,
		ExpensesByCategory: byCategory,
		MonthlyTrends:      trendPoints(m.MonthlyTrends),
		SpendingPatterns:   m.SpendingPatterns,
		Alerts:             make([]alertJSON, 0, len(m.Alerts)),
	}
	if resp.SpendingPatterns == nil {
		resp.SpendingPatterns = []string{}
	}
	for _, a := range m.Alerts {
		resp.Alerts = append(resp.Alerts, alertJSON{
			Type:     string(a.Type),
			Severity: string(a.Severity),
			Message:  a.Message,
		})
	}
	return resp
}

func trendPoints(points []core.TrendPoint) []trendPointJSON {
	out := make([]trendPointJSON, 0, len(points))
	for _, p := range points {
		out = append(out, trendPointJSON{Period: p.Period, NetSavings: p.NetSavings.Units()})
	}
	return out
}

func recommendations(recs []core.Recommendation) []recommendationJSON {
	out := make([]recommendationJSON, 0, len(recs))
	for _, r := range recs {
		out = append(out, recommendationJSON{
			Title:       r.Title,
			Description: r.Description,
			Type:        string(r.Type),
			Priority:    string(r.Priority),
			Action:      r.Action,
		})
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
