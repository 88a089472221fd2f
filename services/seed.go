package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/LovationAdmin/spendwise-api/logger"
	"github.com/LovationAdmin/spendwise-api/models"
	"github.com/LovationAdmin/spendwise-api/store"

	"github.com/shopspring/decimal"
)

const (
	DemoUsername = "demo"
	DemoPassword = "demo123"
	DemoEmail    = "demo@spendwise.com"
)

var demoExpenses = []struct {
	description string
	category    models.Category
	amount      int64
}{
	{"Groceries", models.CategoryFood, 850},
	{"Petrol", models.CategoryTransportation, 2000},
	{"Movie Tickets", models.CategoryEntertainment, 500},
	{"Internet Bill", models.CategoryUtilities, 1200},
	{"Medicine", models.CategoryHealthcare, 750},
}

// SeedDemo creates the demo account with a handful of expenses. It does nothing
// when the account already exists.
func SeedDemo(ctx context.Context, auth *AuthService, expenses *ExpenseService) error {
	user, err := auth.Register(ctx, models.SignupRequest{
		Email:    DemoEmail,
		Username: DemoUsername,
		Password: DemoPassword,
	})
	if errors.Is(err, store.ErrConflict) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("create demo user: %w", err)
	}

	for _, sample := range demoExpenses {
		description := sample.description
		_, err := expenses.Create(ctx, user.ID, models.CreateExpenseRequest{
			Amount:      decimal.NewFromInt(sample.amount),
			Category:    sample.category,
			Description: &description,
		})
		if err != nil {
			return fmt.Errorf("create demo expense: %w", err)
		}
	}

	logger.Named("seed").Info("Demo data seeded", logger.UserID(user.ID))
	return nil
}
