package statements

import (
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/finobai/finobai/internal/events"
	"github.com/finobai/finobai/internal/modules/categorizer"
	"github.com/finobai/finobai/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupTestService(t *testing.T) (*Service, *Repository) {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1) // in-memory db lives on one connection
	t.Cleanup(func() { _ = db.Close() })

	log := logger.New(logger.Config{Level: "error"})

	repo, err := NewRepository(db, log)
	require.NoError(t, err)

	svc := NewService(
		NewParser(log),
		categorizer.NewService(log),
		repo,
		nil,
		events.NewBus(),
		log,
	)
	return svc, repo
}

type recordingInvalidator struct {
	months []time.Time
}

func (r *recordingInvalidator) InvalidateMonth(year int, month time.Month) {
	r.months = append(r.months, time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
}

const sampleCSV = `Tarih,Tip,Aciklama,Kart,Ref,Tutar
2024-05-02,Harcama,MIGROS MARKET,,,"1.200,00"
2024-05-05,Harcama,SHELL BENZIN,,,"400,00"
2024-05-09,Harcama,NETFLIX ABONELIK,,,"150,00"
2024-05-11,Harcama,ECZANE X,,,"250,00"
2024-05-15,Ödeme,KART ODEME,,,"2.000,00"
`

func TestAnalyzeUploadPersistsAndAggregates(t *testing.T) {
	svc, _ := setupTestService(t)

	analysis, err := svc.AnalyzeUpload("mayis.csv", strings.NewReader(sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, 4, analysis.Statement.TransactionCount)
	assert.InDelta(t, 2000.0, analysis.Statement.TotalAmount, 1e-9)
	assert.Equal(t, 1, analysis.RowsSkipped) // payment row filtered

	// Percentages sum to 100 when total > 0
	var pctSum float64
	for _, cat := range analysis.Categories {
		pctSum += cat.Percentage
	}
	assert.InDelta(t, 100.0, pctSum, 1e-6)

	// Largest category first
	require.NotEmpty(t, analysis.TopCategories)
	assert.InDelta(t, 1200.0, analysis.TopCategories[0].Total, 1e-9)

	require.NotNil(t, analysis.Statement.PeriodStart)
	require.NotNil(t, analysis.Statement.PeriodEnd)
	assert.Equal(t, 2, int(analysis.Statement.PeriodStart.Day()))
	assert.Equal(t, 11, int(analysis.Statement.PeriodEnd.Day()))

	// Round trip through the repository
	statements, err := svc.List()
	require.NoError(t, err)
	require.Len(t, statements, 1)
	assert.Equal(t, "mayis.csv", statements[0].Filename)

	stmt, txns, err := svc.Get(statements[0].ID)
	require.NoError(t, err)
	require.NotNil(t, stmt)
	assert.Len(t, txns, 4)
	for _, txn := range txns {
		assert.NotEmpty(t, txn.Category)
		assert.Positive(t, txn.Amount)
	}
}

func TestAnalyzeUploadInvalidatesCoveredMonths(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	log := logger.New(logger.Config{Level: "error"})
	repo, err := NewRepository(db, log)
	require.NoError(t, err)

	invalidator := &recordingInvalidator{}
	svc := NewService(NewParser(log), categorizer.NewService(log), repo, invalidator, events.NewBus(), log)

	// Rows span April and May; each month is invalidated exactly once.
	csv := `Tarih,Tip,Aciklama,Kart,Ref,Tutar
2024-04-28,Harcama,MIGROS MARKET,,,"300,00"
2024-04-30,Harcama,SHELL BENZIN,,,"200,00"
2024-05-02,Harcama,NETFLIX ABONELIK,,,"150,00"
`
	_, err = svc.AnalyzeUpload("nisan-mayis.csv", strings.NewReader(csv))
	require.NoError(t, err)

	require.Len(t, invalidator.months, 2)
	assert.Contains(t, invalidator.months, time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC))
	assert.Contains(t, invalidator.months, time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC))
}

func TestTransactionsForMonth(t *testing.T) {
	svc, repo := setupTestService(t)

	_, err := svc.AnalyzeUpload("mayis.csv", strings.NewReader(sampleCSV))
	require.NoError(t, err)

	may, err := repo.TransactionsForMonth(2024, time.May)
	require.NoError(t, err)
	assert.Len(t, may, 4)

	june, err := repo.TransactionsForMonth(2024, time.June)
	require.NoError(t, err)
	assert.Empty(t, june)
}

func TestGetMissingStatementReturnsNil(t *testing.T) {
	svc, _ := setupTestService(t)

	stmt, txns, err := svc.Get("does-not-exist")
	require.NoError(t, err)
	assert.Nil(t, stmt)
	assert.Nil(t, txns)
}
