package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Expense struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Amount      decimal.Decimal `json:"amount"`
	Category    Category        `json:"category"`
	Description *string         `json:"description"`
	Date        time.Time       `json:"date"`
}

type CreateExpenseRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required,money"`
	Category    Category        `json:"category" binding:"required,category"`
	Description *string         `json:"description" binding:"omitempty,max=255"`
	Date        *time.Time      `json:"date"`
}

// UpdateExpenseRequest only touches the fields that are present.
type UpdateExpenseRequest struct {
	Amount      *decimal.Decimal `json:"amount" binding:"omitempty,money"`
	Category    *Category        `json:"category" binding:"omitempty,category"`
	Description *string          `json:"description" binding:"omitempty,max=255"`
	Date        *time.Time       `json:"date"`
}

// Apply copies the present fields onto e.
func (r UpdateExpenseRequest) Apply(e *Expense) {
	if r.Amount != nil {
		e.Amount = *r.Amount
	}
	if r.Category != nil {
		e.Category = *r.Category
	}
	if r.Description != nil {
		e.Description = r.Description
	}
	if r.Date != nil {
		e.Date = *r.Date
	}
}
