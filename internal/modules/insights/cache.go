package insights

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"
)

// SummaryCache stores msgpack-encoded monthly summaries in cache.db.
// Entries expire by TTL and are invalidated when new transactions land
// for their month.
type SummaryCache struct {
	db  *sql.DB
	ttl time.Duration
	log zerolog.Logger
}

// NewSummaryCache creates the cache and ensures its schema
func NewSummaryCache(db *sql.DB, ttl time.Duration, log zerolog.Logger) (*SummaryCache, error) {
	c := &SummaryCache{
		db:  db,
		ttl: ttl,
		log: log.With().Str("component", "summary_cache").Logger(),
	}

	schema := `
	CREATE TABLE IF NOT EXISTS summary_cache (
		year INTEGER NOT NULL,
		month INTEGER NOT NULL,
		payload BLOB NOT NULL,
		expires_at INTEGER NOT NULL,
		PRIMARY KEY (year, month)
	);`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create summary cache schema: %w", err)
	}

	return c, nil
}

// Get returns the cached summary for a month, if present and fresh
func (c *SummaryCache) Get(year int, month time.Month) (*MonthlySummary, bool) {
	var payload []byte
	var expiresAt int64

	err := c.db.QueryRow(
		`SELECT payload, expires_at FROM summary_cache WHERE year = ? AND month = ?`,
		year, int(month),
	).Scan(&payload, &expiresAt)
	if err == sql.ErrNoRows {
		return nil, false
	}
	if err != nil {
		c.log.Warn().Err(err).Msg("Summary cache read failed")
		return nil, false
	}

	if time.Now().Unix() > expiresAt {
		return nil, false
	}

	var summary MonthlySummary
	if err := msgpack.Unmarshal(payload, &summary); err != nil {
		c.log.Warn().Err(err).Msg("Summary cache payload corrupt, dropping")
		_ = c.Invalidate(year, month)
		return nil, false
	}

	return &summary, true
}

// Put stores a summary for a month
func (c *SummaryCache) Put(year int, month time.Month, summary MonthlySummary) error {
	payload, err := msgpack.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}

	expiresAt := time.Now().Add(c.ttl).Unix()
	_, err = c.db.Exec(`
		INSERT INTO summary_cache (year, month, payload, expires_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(year, month) DO UPDATE SET payload = excluded.payload, expires_at = excluded.expires_at`,
		year, int(month), payload, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to write summary cache: %w", err)
	}
	return nil
}

// Invalidate drops the cached summary for a month
func (c *SummaryCache) Invalidate(year int, month time.Month) error {
	_, err := c.db.Exec(
		`DELETE FROM summary_cache WHERE year = ? AND month = ?`,
		year, int(month),
	)
	if err != nil {
		return fmt.Errorf("failed to invalidate summary cache: %w", err)
	}
	return nil
}

// PurgeExpired removes every expired entry, returning the number dropped.
// Run by the nightly maintenance job.
func (c *SummaryCache) PurgeExpired() (int64, error) {
	res, err := c.db.Exec(`DELETE FROM summary_cache WHERE expires_at < ?`, time.Now().Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to purge summary cache: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
