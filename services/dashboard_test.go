package services

import (
	"context"
	"testing"
	"time"

	"github.com/LovationAdmin/spendwise-api/models"
	"github.com/LovationAdmin/spendwise-api/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDashboard(now time.Time) (*store.Memory, *DashboardService) {
	mem := store.NewMemory()
	return mem, NewDashboardService(mem, mem, fixedClock(now))
}

func TestDashboardEmpty(t *testing.T) {
	_, svc := newDashboard(testNow)

	summary, err := svc.Summary(context.Background(), "u1")
	require.NoError(t, err)

	assert.Zero(t, summary.TotalSpent)
	assert.Empty(t, summary.CategoryBreakdown)
	assert.Empty(t, summary.RemainingBudget)
	assert.Empty(t, summary.TopExpenses)
	require.Len(t, summary.MonthlyTrend, 6)
	for _, point := range summary.MonthlyTrend {
		assert.Zero(t, point.Total)
	}
}

func TestDashboardCurrentMonthTotals(t *testing.T) {
	mem, svc := newDashboard(testNow)
	addExpense(t, mem, "u1", 850, models.CategoryFood, testNow.AddDate(0, 0, -2))
	addExpense(t, mem, "u1", 2000, models.CategoryTransportation, testNow.AddDate(0, 0, -1))

	summary, err := svc.Summary(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, 2850.0, summary.TotalSpent)
	assert.Equal(t, map[string]float64{"Food": 850, "Transportation": 2000}, summary.CategoryBreakdown)
}

func TestDashboardBreakdownSumsToTotal(t *testing.T) {
	mem, svc := newDashboard(testNow)
	addExpense(t, mem, "u1", 120, models.CategoryFood, date(2026, time.March, 1))
	addExpense(t, mem, "u1", 80, models.CategoryFood, date(2026, time.March, 3))
	addExpense(t, mem, "u1", 45, models.CategoryShopping, date(2026, time.March, 9))
	addExpense(t, mem, "u1", 300, models.CategoryHousing, date(2026, time.March, 14))

	summary, err := svc.Summary(context.Background(), "u1")
	require.NoError(t, err)

	var sum float64
	for _, v := range summary.CategoryBreakdown {
		sum += v
	}
	assert.InDelta(t, summary.TotalSpent, sum, 0.001)
	assert.Equal(t, 545.0, summary.TotalSpent)
}

func TestDashboardExcludesOtherMonthsFromTotal(t *testing.T) {
	mem, svc := newDashboard(testNow)
	addExpense(t, mem, "u1", 100, models.CategoryFood, date(2026, time.March, 2))
	addExpense(t, mem, "u1", 70, models.CategoryFood, time.Date(2026, time.February, 28, 23, 30, 0, 0, time.UTC))
	// dated after now within the current month
	addExpense(t, mem, "u1", 999, models.CategoryFood, date(2026, time.March, 20))

	summary, err := svc.Summary(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, 100.0, summary.TotalSpent)
	assert.Equal(t, map[string]float64{"Food": 100}, summary.CategoryBreakdown)
}

func TestDashboardMonthlyTrend(t *testing.T) {
	mem, svc := newDashboard(testNow)
	addExpense(t, mem, "u1", 70, models.CategoryFood, time.Date(2026, time.February, 28, 23, 30, 0, 0, time.UTC))
	addExpense(t, mem, "u1", 30, models.CategoryOther, date(2026, time.February, 1))
	addExpense(t, mem, "u1", 500, models.CategoryHousing, date(2025, time.September, 15))
	// outside the window on both sides
	addExpense(t, mem, "u1", 1, models.CategoryOther, date(2025, time.August, 31))
	addExpense(t, mem, "u1", 2, models.CategoryOther, date(2026, time.March, 1))

	summary, err := svc.Summary(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, []models.MonthTotal{
		{Month: "Sep 2025", Total: 500},
		{Month: "Oct 2025", Total: 0},
		{Month: "Nov 2025", Total: 0},
		{Month: "Dec 2025", Total: 0},
		{Month: "Jan 2026", Total: 0},
		{Month: "Feb 2026", Total: 100},
	}, summary.MonthlyTrend)
}

func TestDashboardTrendAcrossYearBoundary(t *testing.T) {
	_, svc := newDashboard(time.Date(2026, time.January, 10, 9, 0, 0, 0, time.UTC))

	summary, err := svc.Summary(context.Background(), "u1")
	require.NoError(t, err)

	labels := make([]string, 0, len(summary.MonthlyTrend))
	for _, point := range summary.MonthlyTrend {
		labels = append(labels, point.Month)
	}
	assert.Equal(t, []string{"Jul 2025", "Aug 2025", "Sep 2025", "Oct 2025", "Nov 2025", "Dec 2025"}, labels)
}

func TestDashboardTopExpensesAreMostRecent(t *testing.T) {
	mem, svc := newDashboard(testNow)
	for day := 1; day <= 7; day++ {
		addExpense(t, mem, "u1", int64(day*10), models.CategoryFood, date(2026, time.March, day))
	}

	summary, err := svc.Summary(context.Background(), "u1")
	require.NoError(t, err)

	require.Len(t, summary.TopExpenses, 5)
	for i, e := range summary.TopExpenses {
		assert.Equal(t, 7-i, e.Date.Day())
	}
}

func TestDashboardRemainingBudget(t *testing.T) {
	mem, svc := newDashboard(testNow)
	addBudget(t, mem, "u1", models.CategoryFood, 1000, 3, 2026)
	addBudget(t, mem, "u1", models.CategoryShopping, 50, 3, 2026)
	addBudget(t, mem, "u1", models.CategoryHousing, 700, 2, 2026)
	addBudget(t, mem, "u1", models.CategoryHealthcare, 200, 3, 2025)

	addExpense(t, mem, "u1", 850, models.CategoryFood, date(2026, time.March, 5))
	addExpense(t, mem, "u1", 80, models.CategoryShopping, date(2026, time.March, 6))
	addExpense(t, mem, "u1", 2000, models.CategoryTransportation, date(2026, time.March, 7))

	summary, err := svc.Summary(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, map[string]float64{"Food": 150, "Shopping": -30}, summary.RemainingBudget)
}

func TestDashboardLaterBudgetWinsForSameCategory(t *testing.T) {
	mem, svc := newDashboard(testNow)
	addBudget(t, mem, "u1", models.CategoryFood, 100, 3, 2026)
	addBudget(t, mem, "u1", models.CategoryFood, 400, 3, 2026)
	addExpense(t, mem, "u1", 150, models.CategoryFood, date(2026, time.March, 5))

	summary, err := svc.Summary(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, map[string]float64{"Food": 250}, summary.RemainingBudget)
}

func TestDashboardIsolatesUsers(t *testing.T) {
	mem, svc := newDashboard(testNow)
	addExpense(t, mem, "u1", 40, models.CategoryFood, date(2026, time.March, 5))
	addExpense(t, mem, "u2", 900, models.CategoryFood, date(2026, time.March, 5))
	addBudget(t, mem, "u2", models.CategoryFood, 1000, 3, 2026)

	summary, err := svc.Summary(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, 40.0, summary.TotalSpent)
	assert.Empty(t, summary.RemainingBudget)
	require.Len(t, summary.TopExpenses, 1)
	assert.Equal(t, "u1", summary.TopExpenses[0].UserID)
}

func TestDashboardDoesNotMutateStore(t *testing.T) {
	mem, svc := newDashboard(testNow)
	addExpense(t, mem, "u1", 40, models.CategoryFood, date(2026, time.March, 5))

	first, err := svc.Summary(context.Background(), "u1")
	require.NoError(t, err)
	second, err := svc.Summary(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
