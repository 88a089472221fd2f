package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/LovationAdmin/spendwise-api/models"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

const uniqueViolation = "23505"

type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

func (p *Postgres) Close() error {
	return p.db.Close()
}

// parseID canonicalizes id for the UUID columns. Anything else cannot match a row.
func parseID(id string) (string, bool) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", false
	}
	return parsed.String(), true
}

// ============================================================================
// USERS
// ============================================================================

func (p *Postgres) CreateUser(ctx context.Context, u *models.User) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}

	err := p.db.QueryRowContext(ctx, `
		INSERT INTO users (id, email, username, hashed_password)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`, u.ID, u.Email, u.Username, u.PasswordHash).Scan(&u.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return ErrConflict
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (p *Postgres) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	id, ok := parseID(id)
	if !ok {
		return nil, ErrNotFound
	}
	return p.getUser(ctx, "id = $1", id)
}

func (p *Postgres) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return p.getUser(ctx, "username = $1", username)
}

func (p *Postgres) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return p.getUser(ctx, "LOWER(email) = LOWER($1)", email)
}

func (p *Postgres) getUser(ctx context.Context, where string, arg string) (*models.User, error) {
	var u models.User
	err := p.db.QueryRowContext(ctx, `
		SELECT id, email, username, hashed_password, created_at
		FROM users
		WHERE `+where, arg).Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select user: %w", err)
	}
	return &u, nil
}

func (p *Postgres) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	userID, ok := parseID(userID)
	if !ok {
		return ErrNotFound
	}
	result, err := p.db.ExecContext(ctx, `UPDATE users SET hashed_password = $1 WHERE id = $2`, passwordHash, userID)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

// ============================================================================
// EXPENSES
// ============================================================================

const expenseColumns = `id, user_id, amount, category, description, date`

func scanExpense(row interface{ Scan(...any) error }) (models.Expense, error) {
	var (
		e           models.Expense
		category    string
		description sql.NullString
	)
	if err := row.Scan(&e.ID, &e.UserID, &e.Amount, &category, &description, &e.Date); err != nil {
		return models.Expense{}, err
	}
	e.Category = models.Category(category)
	if description.Valid {
		e.Description = &description.String
	}
	return e, nil
}

func (p *Postgres) CreateExpense(ctx context.Context, e *models.Expense) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}

	_, err := p.db.ExecContext(ctx, `
		INSERT INTO expenses (`+expenseColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, e.ID, e.UserID, e.Amount, string(e.Category), e.Description, e.Date)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

func (p *Postgres) GetExpense(ctx context.Context, id, userID string) (*models.Expense, error) {
	id, ok := parseID(id)
	if !ok {
		return nil, ErrNotFound
	}
	row := p.db.QueryRowContext(ctx, `
		SELECT `+expenseColumns+`
		FROM expenses
		WHERE id = $1 AND user_id = $2
	`, id, userID)

	e, err := scanExpense(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select expense: %w", err)
	}
	return &e, nil
}

func (p *Postgres) UpdateExpense(ctx context.Context, e *models.Expense) error {
	id, ok := parseID(e.ID)
	if !ok {
		return ErrNotFound
	}
	result, err := p.db.ExecContext(ctx, `
		UPDATE expenses
		SET amount = $1, category = $2, description = $3, date = $4
		WHERE id = $5 AND user_id = $6
	`, e.Amount, string(e.Category), e.Description, e.Date, id, e.UserID)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) DeleteExpense(ctx context.Context, id, userID string) (bool, error) {
	id, ok := parseID(id)
	if !ok {
		return false, nil
	}
	result, err := p.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, fmt.Errorf("delete expense: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete expense: %w", err)
	}
	return rows > 0, nil
}

// expenseWhere builds the shared WHERE clause; placeholders start at $1.
func expenseWhere(userID string, category models.Category, r TimeRange) (string, []any) {
	conds := []string{"user_id = $1"}
	args := []any{userID}

	if category != "" {
		args = append(args, string(category))
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if !r.From.IsZero() {
		args = append(args, r.From)
		conds = append(conds, fmt.Sprintf("date >= $%d", len(args)))
	}
	if !r.To.IsZero() {
		args = append(args, r.To)
		conds = append(conds, fmt.Sprintf("date <= $%d", len(args)))
	}
	return strings.Join(conds, " AND "), args
}

func (p *Postgres) ListExpenses(ctx context.Context, userID string, f ExpenseFilter) ([]models.Expense, error) {
	f = f.Normalize()
	where, args := expenseWhere(userID, f.Category, f.Range)
	args = append(args, f.Limit, f.Skip)

	query := fmt.Sprintf(`
		SELECT %s
		FROM expenses
		WHERE %s
		ORDER BY date DESC, id
		LIMIT $%d OFFSET $%d
	`, expenseColumns, where, len(args)-1, len(args))

	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	expenses := []models.Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}

func (p *Postgres) SumExpenses(ctx context.Context, userID string, category models.Category, r TimeRange) (decimal.Decimal, error) {
	where, args := expenseWhere(userID, category, r)

	var total decimal.Decimal
	err := p.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE `+where, args...).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum expenses: %w", err)
	}
	return total, nil
}

func (p *Postgres) CategoryTotals(ctx context.Context, userID string, r TimeRange) (map[models.Category]decimal.Decimal, error) {
	where, args := expenseWhere(userID, "", r)

	rows, err := p.db.QueryContext(ctx, `
		SELECT category, SUM(amount)
		FROM expenses
		WHERE `+where+`
		GROUP BY category
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("category totals: %w", err)
	}
	defer rows.Close()

	totals := make(map[models.Category]decimal.Decimal)
	for rows.Next() {
		var (
			category string
			total    decimal.Decimal
		)
		if err := rows.Scan(&category, &total); err != nil {
			return nil, fmt.Errorf("scan category total: %w", err)
		}
		totals[models.Category(category)] = total
	}
	return totals, rows.Err()
}

// ============================================================================
// BUDGETS
// ============================================================================

func (p *Postgres) CreateBudget(ctx context.Context, b *models.Budget) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}

	_, err := p.db.ExecContext(ctx, `
		INSERT INTO budgets (id, user_id, category, amount, month, year)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, b.ID, b.UserID, string(b.Category), b.Amount, b.Month, b.Year)
	if err != nil {
		return fmt.Errorf("insert budget: %w", err)
	}
	return nil
}

func (p *Postgres) ListBudgets(ctx context.Context, userID string, f BudgetFilter) ([]models.Budget, error) {
	conds := []string{"user_id = $1"}
	args := []any{userID}
	if f.Month != 0 {
		args = append(args, f.Month)
		conds = append(conds, fmt.Sprintf("month = $%d", len(args)))
	}
	if f.Year != 0 {
		args = append(args, f.Year)
		conds = append(conds, fmt.Sprintf("year = $%d", len(args)))
	}

	rows, err := p.db.QueryContext(ctx, `
		SELECT id, user_id, category, amount, month, year
		FROM budgets
		WHERE `+strings.Join(conds, " AND ")+`
		ORDER BY created_at
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	budgets := []models.Budget{}
	for rows.Next() {
		var (
			b        models.Budget
			category string
		)
		if err := rows.Scan(&b.ID, &b.UserID, &category, &b.Amount, &b.Month, &b.Year); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		b.Category = models.Category(category)
		budgets = append(budgets, b)
	}
	return budgets, rows.Err()
}

func (p *Postgres) DeleteBudget(ctx context.Context, id, userID string) (bool, error) {
	id, ok := parseID(id)
	if !ok {
		return false, nil
	}
	result, err := p.db.ExecContext(ctx, `DELETE FROM budgets WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, fmt.Errorf("delete budget: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete budget: %w", err)
	}
	return rows > 0, nil
}
