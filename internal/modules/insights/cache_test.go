package insights

import (
	"database/sql"
	"testing"
	"time"

	"github.com/finobai/finobai/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupCache(t *testing.T, ttl time.Duration) *SummaryCache {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	cache, err := NewSummaryCache(db, ttl, logger.New(logger.Config{Level: "error"}))
	require.NoError(t, err)
	return cache
}

func TestSummaryCacheRoundTrip(t *testing.T) {
	cache := setupCache(t, time.Hour)

	summary := MonthlySummary{
		Year:             2024,
		Month:            5,
		TotalAmount:      1234.56,
		TransactionCount: 7,
	}

	_, ok := cache.Get(2024, time.May)
	assert.False(t, ok)

	require.NoError(t, cache.Put(2024, time.May, summary))

	got, ok := cache.Get(2024, time.May)
	require.True(t, ok)
	assert.Equal(t, summary.TotalAmount, got.TotalAmount)
	assert.Equal(t, summary.TransactionCount, got.TransactionCount)

	require.NoError(t, cache.Invalidate(2024, time.May))
	_, ok = cache.Get(2024, time.May)
	assert.False(t, ok)
}

func TestSummaryCacheExpiry(t *testing.T) {
	cache := setupCache(t, -time.Second) // already expired on write

	require.NoError(t, cache.Put(2024, time.May, MonthlySummary{Year: 2024, Month: 5}))

	_, ok := cache.Get(2024, time.May)
	assert.False(t, ok)

	purged, err := cache.PurgeExpired()
	require.NoError(t, err)
	assert.EqualValues(t, 1, purged)
}
