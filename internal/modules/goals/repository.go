package goals

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/finobai/finobai/internal/database"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrNotFound is returned when a goal does not exist.
var ErrNotFound = errors.New("goal not found")

// Repository handles goal and contribution persistence on finance.db
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new goal repository and ensures its schema
func NewRepository(db *sql.DB, log zerolog.Logger) (*Repository, error) {
	r := &Repository{
		db:  db,
		log: log.With().Str("repo", "goals").Logger(),
	}
	if err := r.ensureSchema(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Repository) ensureSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS goals (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		target_amount REAL NOT NULL,
		current_amount REAL NOT NULL DEFAULT 0,
		monthly_contribution REAL NOT NULL DEFAULT 0,
		priority INTEGER NOT NULL DEFAULT 3,
		target_date TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS contributions (
		id TEXT PRIMARY KEY,
		goal_id TEXT NOT NULL REFERENCES goals(id) ON DELETE CASCADE,
		amount REAL NOT NULL,
		note TEXT,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_contributions_goal ON contributions(goal_id);
	`
	if _, err := r.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create goals schema: %w", err)
	}
	return nil
}

// Create persists a new goal
func (r *Repository) Create(goal *FinancialGoal) error {
	if goal.ID == "" {
		goal.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	goal.CreatedAt = now
	goal.UpdatedAt = now

	_, err := r.db.Exec(`
		INSERT INTO goals (id, name, category, target_amount, current_amount, monthly_contribution, priority, target_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		goal.ID, goal.Name, string(goal.Category), goal.TargetAmount,
		goal.CurrentAmount, goal.MonthlyContribution, goal.Priority,
		goal.TargetDate.Format("2006-01-02"),
		now.Format(time.RFC3339), now.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert goal: %w", err)
	}
	return nil
}

// Update rewrites a goal's editable fields
func (r *Repository) Update(goal *FinancialGoal) error {
	goal.UpdatedAt = time.Now().UTC()

	res, err := r.db.Exec(`
		UPDATE goals SET name = ?, category = ?, target_amount = ?, monthly_contribution = ?, priority = ?, target_date = ?, updated_at = ?
		WHERE id = ?`,
		goal.Name, string(goal.Category), goal.TargetAmount,
		goal.MonthlyContribution, goal.Priority,
		goal.TargetDate.Format("2006-01-02"),
		goal.UpdatedAt.Format(time.RFC3339), goal.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a goal and its contributions
func (r *Repository) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM goals WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Get returns one goal
func (r *Repository) Get(id string) (*FinancialGoal, error) {
	row := r.db.QueryRow(`
		SELECT id, name, category, target_amount, current_amount, monthly_contribution, priority, target_date, created_at, updated_at
		FROM goals WHERE id = ?`, id)

	goal, err := scanGoal(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}
	return &goal, nil
}

// List returns all goals ordered by priority then target date
func (r *Repository) List() ([]FinancialGoal, error) {
	rows, err := r.db.Query(`
		SELECT id, name, category, target_amount, current_amount, monthly_contribution, priority, target_date, created_at, updated_at
		FROM goals ORDER BY priority ASC, target_date ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query goals: %w", err)
	}
	defer rows.Close()

	var goals []FinancialGoal
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, goal)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating goals: %w", err)
	}
	return goals, nil
}

// Contribute applies a contribution atomically: the contribution row and
// the goal balance move in one transaction, so concurrent contributions
// to the same goal serialize instead of losing updates.
func (r *Repository) Contribute(goalID string, amount float64, note string) (*FinancialGoal, *Contribution, error) {
	if amount <= 0 {
		return nil, nil, fmt.Errorf("contribution amount must be positive")
	}

	contribution := &Contribution{
		ID:        uuid.New().String(),
		GoalID:    goalID,
		Amount:    amount,
		Note:      note,
		CreatedAt: time.Now().UTC(),
	}

	err := database.WithTransaction(r.db, func(tx *sql.Tx) error {
		res, err := tx.Exec(`
			UPDATE goals SET current_amount = current_amount + ?, updated_at = ?
			WHERE id = ?`,
			amount, contribution.CreatedAt.Format(time.RFC3339), goalID,
		)
		if err != nil {
			return fmt.Errorf("failed to update goal balance: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return ErrNotFound
		}

		_, err = tx.Exec(`
			INSERT INTO contributions (id, goal_id, amount, note, created_at)
			VALUES (?, ?, ?, ?, ?)`,
			contribution.ID, goalID, amount, note,
			contribution.CreatedAt.Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("failed to insert contribution: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	goal, err := r.Get(goalID)
	if err != nil {
		return nil, nil, err
	}
	return goal, contribution, nil
}

// Contributions returns a goal's contribution history, newest first
func (r *Repository) Contributions(goalID string) ([]Contribution, error) {
	rows, err := r.db.Query(`
		SELECT id, goal_id, amount, note, created_at
		FROM contributions WHERE goal_id = ? ORDER BY created_at DESC`, goalID)
	if err != nil {
		return nil, fmt.Errorf("failed to query contributions: %w", err)
	}
	defer rows.Close()

	var contributions []Contribution
	for rows.Next() {
		var c Contribution
		var note sql.NullString
		var created string
		if err := rows.Scan(&c.ID, &c.GoalID, &c.Amount, &note, &created); err != nil {
			return nil, fmt.Errorf("failed to scan contribution: %w", err)
		}
		c.Note = note.String
		if t, err := time.Parse(time.RFC3339, created); err == nil {
			c.CreatedAt = t
		}
		contributions = append(contributions, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contributions: %w", err)
	}
	return contributions, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanGoal(row rowScanner) (FinancialGoal, error) {
	var goal FinancialGoal
	var category, targetDate, created, updated string

	err := row.Scan(&goal.ID, &goal.Name, &category, &goal.TargetAmount,
		&goal.CurrentAmount, &goal.MonthlyContribution, &goal.Priority,
		&targetDate, &created, &updated)
	if err != nil {
		return FinancialGoal{}, err
	}

	goal.Category = Category(category)
	if t, err := time.Parse("2006-01-02", targetDate); err == nil {
		goal.TargetDate = t
	}
	if t, err := time.Parse(time.RFC3339, created); err == nil {
		goal.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, updated); err == nil {
		goal.UpdatedAt = t
	}
	return goal, nil
}
