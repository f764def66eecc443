package categorizer

import (
	"testing"

	"github.com/finobai/finobai/internal/domain"
	"github.com/finobai/finobai/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *Service {
	return NewService(logger.New(logger.Config{Level: "error"}))
}

func TestCategorize(t *testing.T) {
	svc := newTestService()

	tests := []struct {
		name          string
		description   string
		amount        float64
		wantCategory  domain.ExpenseCategory
		wantConf      float64
		wantNecessary bool
	}{
		{
			name:          "grocery store with two keyword hits",
			description:   "Migros market alışverişi",
			amount:        250,
			wantCategory:  domain.CategoryFood,
			wantConf:      0.7, // 0.4 + 2*0.15
			wantNecessary: true,
		},
		{
			name:          "fuel purchase",
			description:   "Shell akaryakıt istasyonu",
			amount:        900,
			wantCategory:  domain.CategoryTransport,
			wantConf:      0.7,
			wantNecessary: true,
		},
		{
			name:          "no keyword falls through to other",
			description:   "XYZ 123456",
			amount:        50,
			wantCategory:  domain.CategoryOther,
			wantConf:      0.4,
			wantNecessary: false,
		},
		{
			name:          "large amount caps confidence at 0.7",
			description:   "migros market gıda",
			amount:        2500,
			wantCategory:  domain.CategoryFood,
			wantConf:      0.7, // three hits would give 0.85
			wantNecessary: true,
		},
		{
			name:          "subscription with extra keyword goes to bills",
			description:   "Netflix aylık abonelik",
			amount:        150,
			wantCategory:  domain.CategoryBills,
			wantConf:      0.7,
			wantNecessary: true,
		},
		{
			name:          "tie resolves to earlier table entry",
			description:   "netflix",
			amount:        150,
			wantCategory:  domain.CategoryEntertainment,
			wantConf:      0.55,
			wantNecessary: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Categorize(tt.description, tt.amount)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCategory, got.Category)
			assert.InDelta(t, tt.wantConf, got.Confidence, 1e-9)
			assert.Equal(t, tt.wantNecessary, got.IsNecessary)
		})
	}
}

func TestCategorizeInvalidInput(t *testing.T) {
	svc := newTestService()

	_, err := svc.Categorize("", 100)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Categorize("   ", 100)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Categorize("migros", 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Categorize("migros", -5)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCategorizeTagsAndRationale(t *testing.T) {
	svc := newTestService()

	got, err := svc.Categorize("migros market süt ekmek et", 180)
	require.NoError(t, err)

	assert.Equal(t, domain.CategoryFood, got.Category)
	// Tags keep declaration order and cap at three
	assert.Equal(t, []string{"market", "migros", "süt"}, got.Tags)
	assert.Contains(t, got.Rationale, "market")
	assert.Contains(t, got.Rationale, "migros")

	got, err = svc.Categorize("QR 77 ODEME", 60)
	require.NoError(t, err)
	assert.Empty(t, got.Tags)
	assert.Contains(t, got.Rationale, "other")
}

func TestCategorizeBatchPreservesOrder(t *testing.T) {
	svc := newTestService()

	requests := []Request{
		{Description: "migros", Amount: 100},
		{Description: "", Amount: 100},
		{Description: "shell benzin", Amount: 400},
	}

	results := svc.CategorizeBatch(requests)
	require.Len(t, results, 3)

	assert.Equal(t, domain.CategoryFood, results[0].Assignment.Category)
	assert.ErrorIs(t, results[1].Err, ErrInvalidInput)
	assert.Equal(t, domain.CategoryTransport, results[2].Assignment.Category)
}
