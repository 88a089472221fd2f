package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/LovationAdmin/spendwise-api/models"
	"github.com/LovationAdmin/spendwise-api/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// testNow sits mid-month so both neighbouring months are easy to reach.
var testNow = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

type recordingPublisher struct {
	mu     sync.Mutex
	alerts []models.BudgetAlert
}

func (p *recordingPublisher) PublishBudgetAlert(ctx context.Context, alert models.BudgetAlert) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.alerts = append(p.alerts, alert)
	return nil
}

func (p *recordingPublisher) published() []models.BudgetAlert {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]models.BudgetAlert(nil), p.alerts...)
}

type notification struct {
	userID, resource, action string
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []notification
}

func (n *recordingNotifier) NotifyDashboardChanged(userID, resource, action string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, notification{userID, resource, action})
}

func addExpense(t *testing.T, s store.ExpenseStore, userID string, amount int64, category models.Category, when time.Time) models.Expense {
	t.Helper()
	e := &models.Expense{
		UserID:   userID,
		Amount:   decimal.NewFromInt(amount),
		Category: category,
		Date:     when,
	}
	require.NoError(t, s.CreateExpense(context.Background(), e))
	return *e
}

func addBudget(t *testing.T, s store.BudgetStore, userID string, category models.Category, amount int64, month, year int) {
	t.Helper()
	require.NoError(t, s.CreateBudget(context.Background(), &models.Budget{
		UserID:   userID,
		Category: category,
		Amount:   decimal.NewFromInt(amount),
		Month:    month,
		Year:     year,
	}))
}
