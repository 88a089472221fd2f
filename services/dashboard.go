package services

import (
	"context"
	"fmt"

	"github.com/LovationAdmin/spendwise-api/models"
	"github.com/LovationAdmin/spendwise-api/store"
)

const (
	trendMonths     = 6
	topExpenseCount = 5
)

type DashboardService struct {
	expenses store.ExpenseStore
	budgets  store.BudgetStore
	clock    Clock
}

func NewDashboardService(expenses store.ExpenseStore, budgets store.BudgetStore, clock Clock) *DashboardService {
	return &DashboardService{expenses: expenses, budgets: budgets, clock: clock}
}

// Summary aggregates the user's spending for the dashboard. It only reads.
func (s *DashboardService) Summary(ctx context.Context, userID string) (*models.DashboardSummary, error) {
	now := s.clock()
	current := currentMonth(now)

	total, err := s.expenses.SumExpenses(ctx, userID, "", current)
	if err != nil {
		return nil, fmt.Errorf("total spent: %w", err)
	}

	totals, err := s.expenses.CategoryTotals(ctx, userID, current)
	if err != nil {
		return nil, fmt.Errorf("category breakdown: %w", err)
	}
	breakdown := make(map[string]float64, len(totals))
	for category, amount := range totals {
		breakdown[category.String()] = amount.InexactFloat64()
	}

	trend := make([]models.MonthTotal, 0, trendMonths)
	for offset := trendMonths; offset >= 1; offset-- {
		start := monthStart(now, offset)
		monthTotal, err := s.expenses.SumExpenses(ctx, userID, "", monthRange(start))
		if err != nil {
			return nil, fmt.Errorf("monthly trend %s: %w", monthLabel(start), err)
		}
		trend = append(trend, models.MonthTotal{
			Month: monthLabel(start),
			Total: monthTotal.InexactFloat64(),
		})
	}

	top, err := s.expenses.ListExpenses(ctx, userID, store.ExpenseFilter{Limit: topExpenseCount})
	if err != nil {
		return nil, fmt.Errorf("top expenses: %w", err)
	}

	budgets, err := s.budgets.ListBudgets(ctx, userID, store.BudgetFilter{Month: int(now.Month()), Year: now.Year()})
	if err != nil {
		return nil, fmt.Errorf("budgets: %w", err)
	}
	remaining := make(map[string]float64, len(budgets))
	for _, budget := range budgets {
		spent, err := s.expenses.SumExpenses(ctx, userID, budget.Category, current)
		if err != nil {
			return nil, fmt.Errorf("spent in %s: %w", budget.Category, err)
		}
		remaining[budget.Category.String()] = budget.Amount.Sub(spent).InexactFloat64()
	}

	return &models.DashboardSummary{
		TotalSpent:        total.InexactFloat64(),
		CategoryBreakdown: breakdown,
		MonthlyTrend:      trend,
		RemainingBudget:   remaining,
		TopExpenses:       top,
	}, nil
}
