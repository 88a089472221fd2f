package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/LovationAdmin/spendwise-api/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Memory keeps everything in process. Budgets keep insertion order.
type Memory struct {
	mu       sync.RWMutex
	users    map[string]models.User
	expenses map[string]models.Expense
	budgets  []models.Budget
}

func NewMemory() *Memory {
	return &Memory{
		users:    make(map[string]models.User),
		expenses: make(map[string]models.Expense),
	}
}

func (m *Memory) Ping(ctx context.Context) error { return ctx.Err() }

func (m *Memory) Close() error { return nil }

// ============================================================================
// USERS
// ============================================================================

func (m *Memory) CreateUser(ctx context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if strings.EqualFold(existing.Email, u.Email) || existing.Username == u.Username {
			return ErrConflict
		}
	}
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	m.users[u.ID] = *u
	return nil
}

func (m *Memory) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (m *Memory) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return m.findUser(func(u models.User) bool { return u.Username == username })
}

func (m *Memory) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.findUser(func(u models.User) bool { return strings.EqualFold(u.Email, email) })
}

func (m *Memory) findUser(match func(models.User) bool) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if match(u) {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[userID]
	if !ok {
		return ErrNotFound
	}
	u.PasswordHash = passwordHash
	m.users[userID] = u
	return nil
}

// ============================================================================
// EXPENSES
// ============================================================================

func (m *Memory) CreateExpense(ctx context.Context, e *models.Expense) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	m.expenses[e.ID] = *e
	return nil
}

func (m *Memory) GetExpense(ctx context.Context, id, userID string) (*models.Expense, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.expenses[id]
	if !ok || e.UserID != userID {
		return nil, ErrNotFound
	}
	return &e, nil
}

func (m *Memory) UpdateExpense(ctx context.Context, e *models.Expense) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.expenses[e.ID]
	if !ok || existing.UserID != e.UserID {
		return ErrNotFound
	}
	m.expenses[e.ID] = *e
	return nil
}

func (m *Memory) DeleteExpense(ctx context.Context, id, userID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.expenses[id]
	if !ok || e.UserID != userID {
		return false, nil
	}
	delete(m.expenses, id)
	return true, nil
}

func (m *Memory) ListExpenses(ctx context.Context, userID string, f ExpenseFilter) ([]models.Expense, error) {
	f = f.Normalize()
	matched := m.matching(userID, f.Category, f.Range)

	// id breaks ties so paging is stable
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].Date.Equal(matched[j].Date) {
			return matched[i].Date.After(matched[j].Date)
		}
		return matched[i].ID < matched[j].ID
	})

	if f.Skip >= len(matched) {
		return []models.Expense{}, nil
	}
	matched = matched[f.Skip:]
	if len(matched) > f.Limit {
		matched = matched[:f.Limit]
	}
	return matched, nil
}

func (m *Memory) SumExpenses(ctx context.Context, userID string, category models.Category, r TimeRange) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, e := range m.matching(userID, category, r) {
		total = total.Add(e.Amount)
	}
	return total, nil
}

func (m *Memory) CategoryTotals(ctx context.Context, userID string, r TimeRange) (map[models.Category]decimal.Decimal, error) {
	totals := make(map[models.Category]decimal.Decimal)
	for _, e := range m.matching(userID, "", r) {
		totals[e.Category] = totals[e.Category].Add(e.Amount)
	}
	return totals, nil
}

func (m *Memory) matching(userID string, category models.Category, r TimeRange) []models.Expense {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []models.Expense{}
	for _, e := range m.expenses {
		if e.UserID != userID {
			continue
		}
		if category != "" && e.Category != category {
			continue
		}
		if !r.Contains(e.Date) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// ============================================================================
// BUDGETS
// ============================================================================

func (m *Memory) CreateBudget(ctx context.Context, b *models.Budget) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	m.budgets = append(m.budgets, *b)
	return nil
}

func (m *Memory) ListBudgets(ctx context.Context, userID string, f BudgetFilter) ([]models.Budget, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []models.Budget{}
	for _, b := range m.budgets {
		if b.UserID != userID {
			continue
		}
		if f.Month != 0 && b.Month != f.Month {
			continue
		}
		if f.Year != 0 && b.Year != f.Year {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (m *Memory) DeleteBudget(ctx context.Context, id, userID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, b := range m.budgets {
		if b.ID == id && b.UserID == userID {
			m.budgets = append(m.budgets[:i], m.budgets[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}
