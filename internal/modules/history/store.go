package history

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/finobai/finobai/internal/domain"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
	"github.com/rs/zerolog"
)

// Store caches OHLCV candles per symbol on history.db so repeated
// analyses do not refetch the provider.
type Store struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewStore creates a new candle store and ensures its schema
func NewStore(db *sql.DB, log zerolog.Logger) (*Store, error) {
	s := &Store{
		db:  db,
		log: log.With().Str("component", "history_store").Logger(),
	}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS daily_candles (
		symbol TEXT NOT NULL,
		date INTEGER NOT NULL,
		open REAL NOT NULL,
		high REAL NOT NULL,
		low REAL NOT NULL,
		close REAL NOT NULL,
		volume REAL,
		PRIMARY KEY (symbol, date)
	);
	CREATE INDEX IF NOT EXISTS idx_daily_candles_symbol ON daily_candles(symbol, date DESC);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create history schema: %w", err)
	}
	return nil
}

// Sync upserts a batch of candles for one symbol in a single
// transaction.
func (s *Store) Sync(symbol string, candles []domain.Candle) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // Will be no-op if Commit succeeds

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO daily_candles (symbol, date, open, high, low, close, volume)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, candle := range candles {
		_, err = stmt.Exec(
			symbol,
			candle.Time.UTC().Unix(),
			candle.Open,
			candle.High,
			candle.Low,
			candle.Close,
			candle.Volume,
		)
		if err != nil {
			return fmt.Errorf("failed to insert candle for %s: %w",
				candle.Time.Format("2006-01-02"), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.log.Info().
		Str("symbol", symbol).
		Int("count", len(candles)).
		Msg("Synced candles")
	return nil
}

// Candles returns up to limit candles for a symbol, oldest first, the
// ordering the indicator engine expects.
func (s *Store) Candles(symbol string, limit int) ([]domain.Candle, error) {
	rows, err := s.db.Query(`
		SELECT date, open, high, low, close, volume
		FROM (
			SELECT date, open, high, low, close, volume
			FROM daily_candles
			WHERE symbol = ?
			ORDER BY date DESC
			LIMIT ?
		)
		ORDER BY date ASC`, symbol, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query candles: %w", err)
	}
	defer rows.Close()

	var candles []domain.Candle
	for rows.Next() {
		var c domain.Candle
		var dateUnix int64
		var volume sql.NullFloat64

		if err := rows.Scan(&dateUnix, &c.Open, &c.High, &c.Low, &c.Close, &volume); err != nil {
			return nil, fmt.Errorf("failed to scan candle: %w", err)
		}
		c.Time = time.Unix(dateUnix, 0).UTC()
		c.Volume = volume.Float64
		candles = append(candles, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating candles: %w", err)
	}
	return candles, nil
}

// LatestTime returns the newest stored candle time for a symbol, or
// the zero time when the symbol has no history.
func (s *Store) LatestTime(symbol string) (time.Time, error) {
	var dateUnix sql.NullInt64
	err := s.db.QueryRow(
		`SELECT MAX(date) FROM daily_candles WHERE symbol = ?`, symbol,
	).Scan(&dateUnix)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to query latest candle: %w", err)
	}
	if !dateUnix.Valid {
		return time.Time{}, nil
	}
	return time.Unix(dateUnix.Int64, 0).UTC(), nil
}

// PruneOlderThan removes candles before the cutoff. Used by the
// nightly cleanup job to keep history.db bounded.
func (s *Store) PruneOlderThan(cutoff time.Time) (int64, error) {
	result, err := s.db.Exec(`DELETE FROM daily_candles WHERE date < ?`, cutoff.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to prune candles: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected > 0 {
		s.log.Info().
			Int64("rows_deleted", rowsAffected).
			Time("older_than", cutoff).
			Msg("Pruned old candles")
	}
	return rowsAffected, nil
}
