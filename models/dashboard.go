package models

// MonthTotal is one point of the monthly trend.
type MonthTotal struct {
	Month string  `json:"month"`
	Total float64 `json:"total"`
}

// DashboardSummary is the payload of GET /api/dashboard.
type DashboardSummary struct {
	TotalSpent        float64            `json:"total_spent"`
	CategoryBreakdown map[string]float64 `json:"category_breakdown"`
	MonthlyTrend      []MonthTotal       `json:"monthly_trend"`
	RemainingBudget   map[string]float64 `json:"remaining_budget"`
	TopExpenses       []Expense          `json:"top_expenses"`
}
