package insights

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finobai/finobai/internal/domain"
	"github.com/finobai/finobai/pkg/logger"

	_ "modernc.org/sqlite"
)

type stubSource struct {
	txns map[time.Month][]domain.Transaction
}

func (s *stubSource) TransactionsForMonth(year int, month time.Month) ([]domain.Transaction, error) {
	return s.txns[month], nil
}

func expense(month time.Month, day int, amount float64) domain.Transaction {
	return domain.Transaction{
		Date:     time.Date(2024, month, day, 0, 0, 0, 0, time.UTC),
		Amount:   amount,
		Category: domain.CategoryFood,
	}
}

func setupTestService(t *testing.T, source *stubSource) *Service {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1) // in-memory db lives on one connection
	t.Cleanup(func() { _ = db.Close() })

	log := logger.New(logger.Config{Level: "error"})

	cache, err := NewSummaryCache(db, time.Hour, log)
	require.NoError(t, err)
	budgets, err := NewBudgetRepository(db, log)
	require.NoError(t, err)

	return NewService(source, cache, budgets, nil, log)
}

func TestReportCachesSummary(t *testing.T) {
	source := &stubSource{txns: map[time.Month][]domain.Transaction{
		time.March: {expense(time.March, 5, 100)},
	}}
	svc := setupTestService(t, source)

	first, err := svc.Report(2024, time.March)
	require.NoError(t, err)
	assert.False(t, first.Cached)
	assert.InDelta(t, 100, first.Summary.TotalAmount, 1e-9)

	second, err := svc.Report(2024, time.March)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.InDelta(t, 100, second.Summary.TotalAmount, 1e-9)
}

func TestInvalidateMonthRebuildsReport(t *testing.T) {
	source := &stubSource{txns: map[time.Month][]domain.Transaction{
		time.March: {expense(time.March, 5, 100)},
	}}
	svc := setupTestService(t, source)

	first, err := svc.Report(2024, time.March)
	require.NoError(t, err)
	assert.InDelta(t, 100, first.Summary.TotalAmount, 1e-9)

	// New statement lands for March; the cached total is stale.
	source.txns[time.March] = append(source.txns[time.March], expense(time.March, 20, 900))
	svc.InvalidateMonth(2024, time.March)

	second, err := svc.Report(2024, time.March)
	require.NoError(t, err)
	assert.False(t, second.Cached)
	assert.InDelta(t, 1000, second.Summary.TotalAmount, 1e-9)
	assert.Equal(t, 2, second.Summary.TransactionCount)
}
