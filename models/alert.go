package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetAlert is published when a category's spending for the month exceeds its budget.
type BudgetAlert struct {
	UserID    string          `json:"user_id"`
	Category  Category        `json:"category"`
	Month     int             `json:"month"`
	Year      int             `json:"year"`
	Budget    decimal.Decimal `json:"budget"`
	Spent     decimal.Decimal `json:"spent"`
	OverBy    decimal.Decimal `json:"over_by"`
	CreatedAt time.Time       `json:"created_at"`
}
