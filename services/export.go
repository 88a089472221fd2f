package services

import (
	"context"
	"fmt"

	"github.com/LovationAdmin/spendwise-api/models"
	"github.com/LovationAdmin/spendwise-api/store"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	expensesSheet = "Expenses"
	summarySheet  = "Summary"
)

// ExportService renders expenses as an Excel workbook.
type ExportService struct {
	expenses store.ExpenseStore
}

func NewExportService(expenses store.ExpenseStore) *ExportService {
	return &ExportService{expenses: expenses}
}

// ExportExpenses writes every matching expense (newest first) and per-category
// totals. Paging fields of filter are ignored.
func (s *ExportService) ExportExpenses(ctx context.Context, userID string, filter store.ExpenseFilter) ([]byte, error) {
	expenses, err := s.listAll(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", expensesSheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#6C5CE7"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}
	amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return nil, err
	}

	if err := f.SetSheetRow(expensesSheet, "A1", &[]any{"Date", "Category", "Description", "Amount"}); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(expensesSheet, "A1", "D1", headerStyle); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}

	totals := make(map[models.Category]decimal.Decimal)
	grand := decimal.Zero
	for i, e := range expenses {
		description := ""
		if e.Description != nil {
			description = *e.Description
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []any{e.Date.Format("2006-01-02"), e.Category.String(), description, e.Amount.InexactFloat64()}
		if err := f.SetSheetRow(expensesSheet, cell, &row); err != nil {
			return nil, err
		}
		totals[e.Category] = totals[e.Category].Add(e.Amount)
		grand = grand.Add(e.Amount)
	}
	if len(expenses) > 0 {
		last, err := excelize.CoordinatesToCellName(4, len(expenses)+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(expensesSheet, "D2", last, amountStyle); err != nil {
			return nil, fmt.Errorf("style amounts: %w", err)
		}
	}
	if err := f.SetColWidth(expensesSheet, "A", "B", 16); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(expensesSheet, "C", "C", 40); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(summarySheet, "A1", &[]any{"Category", "Total"}); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(summarySheet, "A1", "B1", headerStyle); err != nil {
		return nil, fmt.Errorf("style summary header: %w", err)
	}

	row := 2
	for _, category := range models.Categories {
		total, ok := totals[category]
		if !ok {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(summarySheet, cell, &[]any{category.String(), total.InexactFloat64()}); err != nil {
			return nil, err
		}
		row++
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(summarySheet, cell, &[]any{"Total", grand.InexactFloat64()}); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// listAll pages through the store until a short page comes back.
func (s *ExportService) listAll(ctx context.Context, userID string, filter store.ExpenseFilter) ([]models.Expense, error) {
	filter.Limit = store.MaxLimit

	var expenses []models.Expense
	for skip := 0; ; skip += store.MaxLimit {
		filter.Skip = skip
		page, err := s.expenses.ListExpenses(ctx, userID, filter)
		if err != nil {
			return nil, fmt.Errorf("list expenses: %w", err)
		}
		expenses = append(expenses, page...)
		if len(page) < store.MaxLimit {
			return expenses, nil
		}
	}
}
