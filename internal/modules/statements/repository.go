package statements

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/finobai/finobai/internal/database"
	"github.com/finobai/finobai/internal/domain"
	"github.com/rs/zerolog"
)

// Repository handles statement and transaction persistence on finance.db
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new statement repository and ensures its schema
func NewRepository(db *sql.DB, log zerolog.Logger) (*Repository, error) {
	r := &Repository{
		db:  db,
		log: log.With().Str("repo", "statements").Logger(),
	}
	if err := r.ensureSchema(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Repository) ensureSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS statements (
		id TEXT PRIMARY KEY,
		filename TEXT NOT NULL,
		uploaded_at TEXT NOT NULL,
		transaction_count INTEGER NOT NULL,
		total_amount REAL NOT NULL,
		period_start TEXT,
		period_end TEXT
	);
	CREATE TABLE IF NOT EXISTS transactions (
		id TEXT PRIMARY KEY,
		statement_id TEXT NOT NULL REFERENCES statements(id) ON DELETE CASCADE,
		date TEXT NOT NULL,
		description TEXT NOT NULL,
		amount REAL NOT NULL,
		merchant TEXT,
		raw_type TEXT,
		category TEXT NOT NULL,
		confidence REAL NOT NULL,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date);
	CREATE INDEX IF NOT EXISTS idx_transactions_statement ON transactions(statement_id);
	`
	if _, err := r.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create statements schema: %w", err)
	}
	return nil
}

// Save persists a statement header with its transactions atomically
func (r *Repository) Save(stmt Statement, txns []domain.Transaction) error {
	return database.WithTransaction(r.db, func(tx *sql.Tx) error {
		var start, end interface{}
		if stmt.PeriodStart != nil {
			start = stmt.PeriodStart.Format(time.RFC3339)
		}
		if stmt.PeriodEnd != nil {
			end = stmt.PeriodEnd.Format(time.RFC3339)
		}

		_, err := tx.Exec(`
			INSERT INTO statements (id, filename, uploaded_at, transaction_count, total_amount, period_start, period_end)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			stmt.ID, stmt.Filename, stmt.UploadedAt.Format(time.RFC3339),
			stmt.TransactionCount, stmt.TotalAmount, start, end,
		)
		if err != nil {
			return fmt.Errorf("failed to insert statement: %w", err)
		}

		insert, err := tx.Prepare(`
			INSERT INTO transactions (id, statement_id, date, description, amount, merchant, raw_type, category, confidence, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare transaction insert: %w", err)
		}
		defer insert.Close()

		for _, txn := range txns {
			_, err := insert.Exec(
				txn.ID, stmt.ID, txn.Date.Format("2006-01-02"), txn.Description,
				txn.Amount, txn.Merchant, txn.RawType, string(txn.Category),
				txn.Confidence, txn.CreatedAt.Format(time.RFC3339),
			)
			if err != nil {
				return fmt.Errorf("failed to insert transaction: %w", err)
			}
		}

		return nil
	})
}

// List returns all statements, newest first
func (r *Repository) List() ([]Statement, error) {
	rows, err := r.db.Query(`
		SELECT id, filename, uploaded_at, transaction_count, total_amount, period_start, period_end
		FROM statements ORDER BY uploaded_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query statements: %w", err)
	}
	defer rows.Close()

	var statements []Statement
	for rows.Next() {
		stmt, err := scanStatement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan statement: %w", err)
		}
		statements = append(statements, stmt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating statements: %w", err)
	}

	return statements, nil
}

// Get returns a statement with its transactions, or nil when not found
func (r *Repository) Get(id string) (*Statement, []domain.Transaction, error) {
	row := r.db.QueryRow(`
		SELECT id, filename, uploaded_at, transaction_count, total_amount, period_start, period_end
		FROM statements WHERE id = ?`, id)

	stmt, err := scanStatement(row)
	if err == sql.ErrNoRows {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get statement: %w", err)
	}

	txns, err := r.transactionsFor("statement_id = ?", id)
	if err != nil {
		return nil, nil, err
	}

	return &stmt, txns, nil
}

// TransactionsForMonth returns all transactions dated within the given month
func (r *Repository) TransactionsForMonth(year int, month time.Month) ([]domain.Transaction, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	return r.transactionsFor(
		"date >= ? AND date < ?",
		start.Format("2006-01-02"), end.Format("2006-01-02"),
	)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanStatement(row rowScanner) (Statement, error) {
	var stmt Statement
	var uploaded string
	var start, end sql.NullString

	err := row.Scan(&stmt.ID, &stmt.Filename, &uploaded, &stmt.TransactionCount,
		&stmt.TotalAmount, &start, &end)
	if err != nil {
		return Statement{}, err
	}

	if t, err := time.Parse(time.RFC3339, uploaded); err == nil {
		stmt.UploadedAt = t
	}
	if start.Valid {
		if t, err := time.Parse(time.RFC3339, start.String); err == nil {
			stmt.PeriodStart = &t
		}
	}
	if end.Valid {
		if t, err := time.Parse(time.RFC3339, end.String); err == nil {
			stmt.PeriodEnd = &t
		}
	}

	return stmt, nil
}

func (r *Repository) transactionsFor(where string, args ...interface{}) ([]domain.Transaction, error) {
	query := fmt.Sprintf(`
		SELECT id, statement_id, date, description, amount, merchant, raw_type, category, confidence, created_at
		FROM transactions WHERE %s ORDER BY date ASC`, where)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		var txn domain.Transaction
		var date, created string
		var merchant, rawType sql.NullString
		var category string

		err := rows.Scan(&txn.ID, &txn.StatementID, &date, &txn.Description,
			&txn.Amount, &merchant, &rawType, &category, &txn.Confidence, &created)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}

		if t, err := time.Parse("2006-01-02", date); err == nil {
			txn.Date = t
		}
		if t, err := time.Parse(time.RFC3339, created); err == nil {
			txn.CreatedAt = t
		}
		txn.Merchant = merchant.String
		txn.RawType = rawType.String
		txn.Category = domain.ExpenseCategory(category)

		txns = append(txns, txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return txns, nil
}
