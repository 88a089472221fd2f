package services

import (
	"context"
	"fmt"

	"github.com/LovationAdmin/spendwise-api/logger"
	"github.com/LovationAdmin/spendwise-api/models"
	"github.com/LovationAdmin/spendwise-api/store"

	"go.uber.org/zap"
)

type BudgetService struct {
	budgets  store.BudgetStore
	notifier Notifier
}

func NewBudgetService(budgets store.BudgetStore, notifier Notifier) *BudgetService {
	if notifier == nil {
		notifier = NoopNotifier{}
	}
	return &BudgetService{budgets: budgets, notifier: notifier}
}

// Create stores a budget. Several budgets for the same category and month are allowed.
func (s *BudgetService) Create(ctx context.Context, userID string, req models.CreateBudgetRequest) (*models.Budget, error) {
	amount := req.Amount.Round(2)
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	budget := &models.Budget{
		UserID:   userID,
		Category: req.Category,
		Amount:   amount,
		Month:    req.Month,
		Year:     req.Year,
	}

	if err := s.budgets.CreateBudget(ctx, budget); err != nil {
		return nil, fmt.Errorf("create budget: %w", err)
	}

	logger.Named("budget").Info("Budget created",
		logger.UserID(userID),
		zap.String("category", budget.Category.String()),
		zap.Int("month", budget.Month),
		zap.Int("year", budget.Year))

	s.notifier.NotifyDashboardChanged(userID, "budget", "created")
	return budget, nil
}

func (s *BudgetService) List(ctx context.Context, userID string, filter store.BudgetFilter) ([]models.Budget, error) {
	return s.budgets.ListBudgets(ctx, userID, filter)
}

func (s *BudgetService) Delete(ctx context.Context, userID, id string) (bool, error) {
	deleted, err := s.budgets.DeleteBudget(ctx, id, userID)
	if err != nil {
		return false, fmt.Errorf("delete budget: %w", err)
	}
	if deleted {
		s.notifier.NotifyDashboardChanged(userID, "budget", "deleted")
	}
	return deleted, nil
}
