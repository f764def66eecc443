package insights

import (
	"database/sql"
	"fmt"

	"github.com/finobai/finobai/internal/domain"
	"github.com/rs/zerolog"
)

// BudgetRepository stores per-category monthly limits on finance.db
type BudgetRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewBudgetRepository creates the repository and ensures its schema
func NewBudgetRepository(db *sql.DB, log zerolog.Logger) (*BudgetRepository, error) {
	r := &BudgetRepository{
		db:  db,
		log: log.With().Str("repo", "budgets").Logger(),
	}

	schema := `
	CREATE TABLE IF NOT EXISTS budgets (
		category TEXT PRIMARY KEY,
		monthly_limit REAL NOT NULL
	);`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create budgets schema: %w", err)
	}

	return r, nil
}

// List returns all configured budgets
func (r *BudgetRepository) List() ([]Budget, error) {
	rows, err := r.db.Query(`SELECT category, monthly_limit FROM budgets ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets: %w", err)
	}
	defer rows.Close()

	var budgets []Budget
	for rows.Next() {
		var b Budget
		var category string
		if err := rows.Scan(&category, &b.MonthlyLimit); err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		b.Category = domain.ExpenseCategory(category)
		budgets = append(budgets, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budgets: %w", err)
	}
	return budgets, nil
}

// Set creates or replaces the budget for a category
func (r *BudgetRepository) Set(budget Budget) error {
	if !budget.Category.Valid() {
		return fmt.Errorf("unknown category %q", budget.Category)
	}
	if budget.MonthlyLimit <= 0 {
		return fmt.Errorf("monthly limit must be positive")
	}

	_, err := r.db.Exec(`
		INSERT INTO budgets (category, monthly_limit) VALUES (?, ?)
		ON CONFLICT(category) DO UPDATE SET monthly_limit = excluded.monthly_limit`,
		string(budget.Category), budget.MonthlyLimit,
	)
	if err != nil {
		return fmt.Errorf("failed to set budget: %w", err)
	}
	return nil
}

// Delete removes the budget for a category
func (r *BudgetRepository) Delete(category domain.ExpenseCategory) error {
	_, err := r.db.Exec(`DELETE FROM budgets WHERE category = ?`, string(category))
	if err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}
	return nil
}
