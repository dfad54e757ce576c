package core

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

const (
	AlertSavingsRate      AlertType = "savings_rate"
	AlertCategorySpending AlertType = "category_spending"
	AlertDeficit          AlertType = "deficit"
)

const (
	RecommendSavings    RecommendationType = "savings"
	RecommendInvestment RecommendationType = "investment"
	RecommendSpending   RecommendationType = "spending"
	RecommendGoals      RecommendationType = "goals"
	RecommendIncome     RecommendationType = "income"
)

// Financial health labels derived from savings-rate bands.
const (
	HealthExcellent = "Excellent"
	HealthGood      = "Good"
	HealthFair      = "Fair"
	HealthPoor      = "Needs Improvement"
	HealthNoData    = "No data"
)

type (
	Severity string

	AlertType string

	RecommendationType string

	// Alert is a rule-triggered warning about the financial condition of
	// the reporting window.
	Alert struct {
		Type     AlertType
		Severity Severity
		Message  string
	}

	// Recommendation is a rule-triggered suggestion. Order of generation
	// is the ranking; there is no stored score.
	Recommendation struct {
		Title       string
		Description string
		Type        RecommendationType
		Priority    Severity
		Action      string
	}

	// TrendPoint is the net savings of one calendar month.
	TrendPoint struct {
		Period     string // "2006-01"
		NetSavings Money
	}

	// MetricsResult is the full derived summary for one reporting window.
	// It is recomputed fresh on every call and carries no identity.
	MetricsResult struct {
		MonthlyIncome      Money
		MonthlyExpenses    Money
		NetSavings         Money
		SavingsRate        float64 // percent
		FinancialHealth    string
		HealthTrend        string
		ExpensesByCategory map[string]Money
		MonthlyTrends      []TrendPoint
		SpendingPatterns   []string
		Alerts             []Alert
	}
)
