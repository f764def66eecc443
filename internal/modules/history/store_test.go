package history

import (
	"database/sql"
	"testing"
	"time"

	"github.com/finobai/finobai/internal/domain"
	"github.com/finobai/finobai/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	store, err := NewStore(db, logger.New(logger.Config{Level: "error"}))
	require.NoError(t, err)
	return store
}

func day(offset int) time.Time {
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	return base.AddDate(0, 0, offset)
}

func TestSyncAndCandlesRoundTrip(t *testing.T) {
	store := newTestStore(t)

	candles := []domain.Candle{
		{Time: day(0), Open: 100, High: 102, Low: 99, Close: 101, Volume: 1000},
		{Time: day(1), Open: 101, High: 104, Low: 100, Close: 103, Volume: 1200},
		{Time: day(2), Open: 103, High: 105, Low: 102, Close: 104, Volume: 900},
	}
	require.NoError(t, store.Sync("THYAO", candles))

	got, err := store.Candles("THYAO", 10)
	require.NoError(t, err)
	require.Len(t, got, 3)

	// oldest first for the indicator engine
	assert.True(t, got[0].Time.Equal(day(0)))
	assert.True(t, got[2].Time.Equal(day(2)))
	assert.Equal(t, 101.0, got[0].Close)
	assert.Equal(t, 1200.0, got[1].Volume)
}

func TestSyncUpsertsExistingDay(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Sync("GARAN", []domain.Candle{
		{Time: day(0), Open: 50, High: 51, Low: 49, Close: 50},
	}))
	require.NoError(t, store.Sync("GARAN", []domain.Candle{
		{Time: day(0), Open: 50, High: 53, Low: 49, Close: 52},
	}))

	got, err := store.Candles("GARAN", 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 52.0, got[0].Close)
}

func TestCandlesLimitKeepsNewest(t *testing.T) {
	store := newTestStore(t)

	var candles []domain.Candle
	for i := 0; i < 10; i++ {
		candles = append(candles, domain.Candle{Time: day(i), Close: float64(100 + i)})
	}
	require.NoError(t, store.Sync("EREGL", candles))

	got, err := store.Candles("EREGL", 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, 107.0, got[0].Close) // window starts at the 8th day
	assert.Equal(t, 109.0, got[2].Close)
}

func TestLatestTime(t *testing.T) {
	store := newTestStore(t)

	latest, err := store.LatestTime("THYAO")
	require.NoError(t, err)
	assert.True(t, latest.IsZero())

	require.NoError(t, store.Sync("THYAO", []domain.Candle{
		{Time: day(0), Close: 100},
		{Time: day(5), Close: 105},
	}))

	latest, err = store.LatestTime("THYAO")
	require.NoError(t, err)
	assert.True(t, latest.Equal(day(5)))
}

func TestPruneOlderThan(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Sync("THYAO", []domain.Candle{
		{Time: day(0), Close: 100},
		{Time: day(10), Close: 110},
		{Time: day(20), Close: 120},
	}))

	deleted, err := store.PruneOlderThan(day(10))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	got, err := store.Candles("THYAO", 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].Time.Equal(day(10)))
}
