// Package store persists users, expenses and budgets.
//
// Two implementations share the Store interface: Postgres, the system of record,
// and Memory, used for demos and tests.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/LovationAdmin/spendwise-api/models"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")
)

const (
	DefaultLimit = 100
	MaxLimit     = 500
)

// TimeRange bounds a query. Both ends are inclusive; a zero value leaves that side open.
type TimeRange struct {
	From time.Time
	To   time.Time
}

func (r TimeRange) Contains(t time.Time) bool {
	if !r.From.IsZero() && t.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && t.After(r.To) {
		return false
	}
	return true
}

type ExpenseFilter struct {
	Category models.Category
	Range    TimeRange
	Skip     int
	Limit    int
}

// Normalize applies paging defaults.
func (f ExpenseFilter) Normalize() ExpenseFilter {
	if f.Skip < 0 {
		f.Skip = 0
	}
	if f.Limit <= 0 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
	return f
}

// BudgetFilter selects budgets by period. Zero fields match everything.
type BudgetFilter struct {
	Month int
	Year  int
}

type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
}

type ExpenseStore interface {
	CreateExpense(ctx context.Context, e *models.Expense) error
	GetExpense(ctx context.Context, id, userID string) (*models.Expense, error)
	UpdateExpense(ctx context.Context, e *models.Expense) error
	// DeleteExpense reports false when no expense with id belongs to userID.
	DeleteExpense(ctx context.Context, id, userID string) (bool, error)
	// ListExpenses orders by date, most recent first, then by id.
	ListExpenses(ctx context.Context, userID string, f ExpenseFilter) ([]models.Expense, error)
	// SumExpenses totals amounts in r, restricted to category when it is non-empty.
	SumExpenses(ctx context.Context, userID string, category models.Category, r TimeRange) (decimal.Decimal, error)
	CategoryTotals(ctx context.Context, userID string, r TimeRange) (map[models.Category]decimal.Decimal, error)
}

type BudgetStore interface {
	CreateBudget(ctx context.Context, b *models.Budget) error
	ListBudgets(ctx context.Context, userID string, f BudgetFilter) ([]models.Budget, error)
	DeleteBudget(ctx context.Context, id, userID string) (bool, error)
}

type Store interface {
	UserStore
	ExpenseStore
	BudgetStore
	Ping(ctx context.Context) error
	Close() error
}
