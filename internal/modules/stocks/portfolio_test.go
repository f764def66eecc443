package stocks

import (
	"testing"

	"github.com/finobai/finobai/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptimalWeights(t *testing.T) {
	candidates := []PortfolioCandidate{
		{Symbol: "THYAO", Rec: domain.StrongBuy, Confidence: 80, Suitability: 100},
		{Symbol: "GARAN", Rec: domain.Buy, Confidence: 80, Suitability: 100},
		{Symbol: "XU100", Rec: domain.Hold, Confidence: 50, Suitability: 100},
	}

	weights := OptimalWeights(candidates)
	require.Len(t, weights, 3)

	var total float64
	for _, w := range weights {
		total += w.Weight
	}
	assert.InDelta(t, 1, total, 1e-9)

	// raw scores: 0.8, 0.64, 0.25
	assert.Greater(t, weights[0].Weight, weights[1].Weight)
	assert.Greater(t, weights[1].Weight, weights[2].Weight)
	assert.InDelta(t, 0.8/1.69, weights[0].Weight, 1e-9)
}

func TestOptimalWeightsAllZero(t *testing.T) {
	assert.Nil(t, OptimalWeights([]PortfolioCandidate{
		{Symbol: "DEAD", Rec: domain.Sell, Confidence: 0, Suitability: 50},
	}))
	assert.Nil(t, OptimalWeights(nil))
}

func TestComputePortfolioMetrics(t *testing.T) {
	candidates := []PortfolioCandidate{
		{Symbol: "A", Confidence: 80, Risk: domain.RiskLow},
		{Symbol: "B", Confidence: 60, Risk: domain.RiskHigh},
	}
	weights := []PortfolioWeight{
		{Symbol: "A", Weight: 0.75},
		{Symbol: "B", Weight: 0.25},
	}

	metrics := ComputePortfolioMetrics(candidates, weights)
	assert.InDelta(t, 75, metrics.AverageConfidence, 1e-9) // 80*.75 + 60*.25
	assert.InDelta(t, 37.5, metrics.RiskScore, 1e-9)       // 25*.75 + 75*.25
}

func TestAnalyzeConcentrationTiers(t *testing.T) {
	build := func(bankingWeight float64) ([]PortfolioCandidate, []PortfolioWeight) {
		candidates := []PortfolioCandidate{
			{Symbol: "GARAN", Sector: "banking"},
			{Symbol: "THYAO", Sector: "aviation"},
			{Symbol: "EREGL", Sector: "steel"},
		}
		rest := (1 - bankingWeight) / 2
		weights := []PortfolioWeight{
			{Symbol: "GARAN", Weight: bankingWeight},
			{Symbol: "THYAO", Weight: rest},
			{Symbol: "EREGL", Weight: rest},
		}
		return candidates, weights
	}

	weak := AnalyzeConcentration(build(0.6))
	assert.Equal(t, "weak", weak.Grade)
	assert.InDelta(t, 30, weak.Score, 1e-9)
	assert.Equal(t, "banking", weak.TopSector)
	assert.NotEmpty(t, weak.Recommendations)

	medium := AnalyzeConcentration(build(0.4))
	assert.Equal(t, "medium", medium.Grade)
	assert.InDelta(t, 60, medium.Score, 1e-9)

	good := AnalyzeConcentration(
		[]PortfolioCandidate{
			{Symbol: "GARAN", Sector: "banking"},
			{Symbol: "THYAO", Sector: "aviation"},
			{Symbol: "EREGL", Sector: "steel"},
			{Symbol: "BIMAS", Sector: "retail"},
		},
		[]PortfolioWeight{
			{Symbol: "GARAN", Weight: 0.25},
			{Symbol: "THYAO", Weight: 0.25},
			{Symbol: "EREGL", Weight: 0.25},
			{Symbol: "BIMAS", Weight: 0.25},
		},
	)
	assert.Equal(t, "good", good.Grade)
	assert.InDelta(t, 90, good.Score, 1e-9)
	assert.Empty(t, good.Recommendations)
}

func TestRebalancingCadence(t *testing.T) {
	assert.Equal(t, "every_6_months", RebalancingCadence(domain.RiskConservative))
	assert.Equal(t, "quarterly", RebalancingCadence(domain.RiskModerate))
	assert.Equal(t, "monthly", RebalancingCadence(domain.RiskAggressive))
}
