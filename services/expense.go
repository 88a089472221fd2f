package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/LovationAdmin/spendwise-api/logger"
	"github.com/LovationAdmin/spendwise-api/models"
	"github.com/LovationAdmin/spendwise-api/store"

	"go.uber.org/zap"
)

// ErrInvalidAmount rejects amounts that are not positive once rounded to cents.
var ErrInvalidAmount = errors.New("amount must be positive after rounding to cents")

type ExpenseService struct {
	expenses store.ExpenseStore
	budgets  store.BudgetStore
	alerts   AlertPublisher
	notifier Notifier
	clock    Clock
}

func NewExpenseService(expenses store.ExpenseStore, budgets store.BudgetStore, alerts AlertPublisher, notifier Notifier, clock Clock) *ExpenseService {
	if notifier == nil {
		notifier = NoopNotifier{}
	}
	return &ExpenseService{
		expenses: expenses,
		budgets:  budgets,
		alerts:   alerts,
		notifier: notifier,
		clock:    clock,
	}
}

// Create records an expense dated now unless the request carries a date.
func (s *ExpenseService) Create(ctx context.Context, userID string, req models.CreateExpenseRequest) (*models.Expense, error) {
	amount := req.Amount.Round(2)
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	expense := &models.Expense{
		UserID:      userID,
		Amount:      amount,
		Category:    req.Category,
		Description: cleanDescription(req.Description),
		Date:        s.clock(),
	}
	if req.Date != nil {
		expense.Date = *req.Date
	}

	if err := s.expenses.CreateExpense(ctx, expense); err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}

	logger.Named("expense").Info("Expense created",
		logger.UserID(userID),
		logger.Amount(expense.Amount),
		zap.String("category", expense.Category.String()))

	s.checkBudget(ctx, userID, expense)
	s.notifier.NotifyDashboardChanged(userID, "expense", "created")
	return expense, nil
}

func (s *ExpenseService) List(ctx context.Context, userID string, filter store.ExpenseFilter) ([]models.Expense, error) {
	return s.expenses.ListExpenses(ctx, userID, filter)
}

func (s *ExpenseService) Get(ctx context.Context, userID, id string) (*models.Expense, error) {
	return s.expenses.GetExpense(ctx, id, userID)
}

func (s *ExpenseService) Update(ctx context.Context, userID, id string, req models.UpdateExpenseRequest) (*models.Expense, error) {
	expense, err := s.expenses.GetExpense(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	// a present but blank description clears the stored one
	clearDescription := req.Description != nil && strings.TrimSpace(*req.Description) == ""
	req.Description = cleanDescription(req.Description)
	req.Apply(expense)
	if clearDescription {
		expense.Description = nil
	}
	expense.Amount = expense.Amount.Round(2)
	if !expense.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	if err := s.expenses.UpdateExpense(ctx, expense); err != nil {
		return nil, err
	}

	s.checkBudget(ctx, userID, expense)
	s.notifier.NotifyDashboardChanged(userID, "expense", "updated")
	return expense, nil
}

// Delete reports false, leaving the store untouched, when the expense does not
// exist or belongs to another user.
func (s *ExpenseService) Delete(ctx context.Context, userID, id string) (bool, error) {
	deleted, err := s.expenses.DeleteExpense(ctx, id, userID)
	if err != nil {
		return false, fmt.Errorf("delete expense: %w", err)
	}
	if deleted {
		s.notifier.NotifyDashboardChanged(userID, "expense", "deleted")
	}
	return deleted, nil
}

// checkBudget publishes an alert when the expense pushes its category past the
// current month's budget. Failures are logged only.
func (s *ExpenseService) checkBudget(ctx context.Context, userID string, expense *models.Expense) {
	log := logger.Named("expense")

	now := s.clock()
	current := currentMonth(now)
	if !current.Contains(expense.Date) {
		return
	}

	budgets, err := s.budgets.ListBudgets(ctx, userID, store.BudgetFilter{Month: int(now.Month()), Year: now.Year()})
	if err != nil {
		log.Error("Failed to load budgets for alert check", zap.Error(err))
		return
	}

	var budget *models.Budget
	for i := range budgets {
		if budgets[i].Category == expense.Category {
			budget = &budgets[i]
		}
	}
	if budget == nil {
		return
	}

	spent, err := s.expenses.SumExpenses(ctx, userID, expense.Category, current)
	if err != nil {
		log.Error("Failed to sum category spending", zap.Error(err))
		return
	}
	if !spent.GreaterThan(budget.Amount) {
		return
	}

	alert := models.BudgetAlert{
		UserID:    userID,
		Category:  expense.Category,
		Month:     budget.Month,
		Year:      budget.Year,
		Budget:    budget.Amount,
		Spent:     spent,
		OverBy:    spent.Sub(budget.Amount),
		CreatedAt: now,
	}
	if err := s.alerts.PublishBudgetAlert(ctx, alert); err != nil {
		log.Warn("Failed to publish budget alert", logger.UserID(userID), zap.Error(err))
	}
}

func cleanDescription(description *string) *string {
	if description == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*description)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
