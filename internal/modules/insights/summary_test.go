package insights

import (
	"testing"
	"time"

	"github.com/finobai/finobai/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func txn(day int, category domain.ExpenseCategory, amount float64) domain.Transaction {
	return domain.Transaction{
		Date:     time.Date(2024, 2, day, 0, 0, 0, 0, time.UTC),
		Amount:   amount,
		Category: category,
	}
}

func TestBuildMonthlySummary(t *testing.T) {
	txns := []domain.Transaction{
		txn(1, domain.CategoryFood, 600),
		txn(5, domain.CategoryFood, 400),
		txn(10, domain.CategoryTransport, 300),
		txn(15, domain.CategoryBills, 200),
	}

	summary := BuildMonthlySummary(txns, 2024, time.February)

	assert.Equal(t, 2024, summary.Year)
	assert.Equal(t, 2, summary.Month)
	assert.InDelta(t, 1500, summary.TotalAmount, 1e-9)
	assert.Equal(t, 4, summary.TransactionCount)

	// 2024 is a leap year, February has 29 days
	assert.InDelta(t, 1500.0/29.0, summary.AveragePerDay, 1e-9)
	assert.InDelta(t, 375, summary.AverageTransaction, 1e-9)

	assert.Equal(t, domain.CategoryFood, summary.TopCategory)
	assert.InDelta(t, 1000.0/1500.0*100, summary.TopCategoryShare, 1e-9)

	var pctSum float64
	for _, breakdown := range summary.Categories {
		pctSum += breakdown.Percentage
	}
	assert.InDelta(t, 100.0, pctSum, 1e-6)

	// Sorted by amount descending
	require.Len(t, summary.Categories, 3)
	assert.Equal(t, domain.CategoryFood, summary.Categories[0].Category)
	assert.Equal(t, domain.CategoryTransport, summary.Categories[1].Category)
	assert.Equal(t, domain.CategoryBills, summary.Categories[2].Category)
}

func TestBuildMonthlySummaryEmpty(t *testing.T) {
	summary := BuildMonthlySummary(nil, 2024, time.June)

	assert.Zero(t, summary.TotalAmount)
	assert.Zero(t, summary.TransactionCount)
	assert.Empty(t, summary.Categories)
	assert.Empty(t, summary.TopCategory)
	assert.Zero(t, summary.AveragePerDay)
	assert.Zero(t, summary.AverageTransaction)
}
