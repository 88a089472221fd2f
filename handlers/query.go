package handlers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/LovationAdmin/spendwise-api/models"
	"github.com/LovationAdmin/spendwise-api/store"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

// parseExpenseFilter reads category, start_date, end_date, skip and limit.
// A date-only end_date includes that whole day.
func parseExpenseFilter(c *gin.Context) (store.ExpenseFilter, error) {
	var filter store.ExpenseFilter

	if raw := c.Query("category"); raw != "" {
		category, ok := models.ParseCategory(raw)
		if !ok {
			return filter, fmt.Errorf("unknown category %q", raw)
		}
		filter.Category = category
	}

	if raw := c.Query("start_date"); raw != "" {
		t, _, err := parseTime(raw)
		if err != nil {
			return filter, fmt.Errorf("invalid start_date: %w", err)
		}
		filter.Range.From = t
	}

	if raw := c.Query("end_date"); raw != "" {
		t, dateOnly, err := parseTime(raw)
		if err != nil {
			return filter, fmt.Errorf("invalid end_date: %w", err)
		}
		if dateOnly {
			t = t.AddDate(0, 0, 1).Add(-time.Microsecond)
		}
		filter.Range.To = t
	}

	var err error
	if filter.Skip, err = queryInt(c, "skip", 0); err != nil {
		return filter, err
	}
	if filter.Limit, err = queryInt(c, "limit", store.DefaultLimit); err != nil {
		return filter, err
	}
	if filter.Skip < 0 || filter.Limit < 1 {
		return filter, fmt.Errorf("skip must be >= 0 and limit >= 1")
	}

	return filter, nil
}

// parseBudgetFilter reads optional month and year.
func parseBudgetFilter(c *gin.Context) (store.BudgetFilter, error) {
	var (
		filter store.BudgetFilter
		err    error
	)
	if filter.Month, err = queryInt(c, "month", 0); err != nil {
		return filter, err
	}
	if filter.Month < 0 || filter.Month > 12 {
		return filter, fmt.Errorf("month must be between 1 and 12")
	}
	if filter.Year, err = queryInt(c, "year", 0); err != nil {
		return filter, err
	}
	return filter, nil
}

func parseTime(raw string) (time.Time, bool, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return t, true, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	return t, false, err
}

func queryInt(c *gin.Context, key string, fallback int) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: must be a number", key)
	}
	return v, nil
}
