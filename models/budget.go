package models

import "github.com/shopspring/decimal"

// Budget caps spending in one category for one calendar month.
type Budget struct {
	ID       string          `json:"id"`
	UserID   string          `json:"user_id"`
	Category Category        `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Month    int             `json:"month"`
	Year     int             `json:"year"`
}

type CreateBudgetRequest struct {
	Category Category        `json:"category" binding:"required,category"`
	Amount   decimal.Decimal `json:"amount" binding:"required,money"`
	Month    int             `json:"month" binding:"required,min=1,max=12"`
	Year     int             `json:"year" binding:"required,min=1900,max=9999"`
}
