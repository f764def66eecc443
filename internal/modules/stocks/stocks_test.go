package stocks

import (
	"testing"

	"github.com/finobai/finobai/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func TestScoreFundamentals(t *testing.T) {
	strong := ScoreFundamentals(&domain.Fundamentals{
		PERatio:       ptr(8),
		PBRatio:       ptr(0.9),
		ROE:           ptr(0.22),
		DebtToEquity:  ptr(0.2),
		ProfitMargin:  ptr(0.18),
		RevenueGrowth: ptr(25),
	})
	assert.InDelta(t, 100, strong.Valuation, 1e-9) // 50+20+15+15
	assert.InDelta(t, 100, strong.FinancialHealth, 1e-9)
	assert.InDelta(t, 90, strong.Growth, 1e-9)
	assert.InDelta(t, 100, strong.Profitability, 1e-9) // 50+50

	weak := ScoreFundamentals(&domain.Fundamentals{
		PERatio:      ptr(35),
		PBRatio:      ptr(6),
		ROE:          ptr(-0.05),
		DebtToEquity: ptr(2.0),
		ProfitMargin: ptr(-0.02),
	})
	assert.InDelta(t, 10, weak.Valuation, 1e-9) // 50-15-10-15
	assert.InDelta(t, 0, weak.FinancialHealth, 1e-9)
	assert.InDelta(t, 20, weak.Growth, 1e-9) // negative growth tier
	assert.Zero(t, weak.Profitability)

	neutral := ScoreFundamentals(nil)
	assert.InDelta(t, 50, neutral.Valuation, 1e-9)
	assert.InDelta(t, 50, neutral.FinancialHealth, 1e-9)
	assert.InDelta(t, 30, neutral.Growth, 1e-9) // no data default
}

func TestBlendSentiment(t *testing.T) {
	positive := BlendSentiment(SentimentInputs{News: 1, Social: 0.5, Analyst: 0.5})
	assert.InDelta(t, 0.7, positive.Score, 1e-9)
	assert.Equal(t, "POSITIVE", positive.Label)

	negative := BlendSentiment(SentimentInputs{News: -1, Social: -1, Analyst: -1})
	assert.InDelta(t, -1, negative.Score, 1e-9)
	assert.Equal(t, "NEGATIVE", negative.Label)

	neutral := BlendSentiment(SentimentInputs{News: 0.5, Social: -0.5, Analyst: 0})
	assert.InDelta(t, 0.05, neutral.Score, 1e-9)
	assert.Equal(t, "NEUTRAL", neutral.Label)
}

func TestFallbackRecommendation(t *testing.T) {
	cases := []struct {
		name      string
		signal    domain.Signal
		valuation float64
		health    float64
		wantRec   domain.Recommendation
		wantConf  float64
	}{
		{"buy on strong fundamentals", domain.SignalBuy, 70, 60, domain.Buy, 70},
		{"hold when buy lacks fundamentals", domain.SignalBuy, 50, 50, domain.Hold, 55},
		{"sell on technical sell", domain.SignalSell, 80, 80, domain.Sell, 65},
		{"sell on weak fundamentals", domain.SignalHold, 30, 40, domain.Sell, 65},
		{"hold by default", domain.SignalHold, 50, 60, domain.Hold, 55},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := FallbackRecommendation(tc.signal, FundamentalScores{
				Valuation:       tc.valuation,
				FinancialHealth: tc.health,
			})
			assert.Equal(t, tc.wantRec, result.Recommendation)
			assert.Equal(t, tc.wantConf, result.Confidence)
			assert.Equal(t, SourceFallback, result.Source)
		})
	}
}

func TestBuildTargets(t *testing.T) {
	buy := BuildTargets(domain.Buy, 70, 100, 95)
	assert.InDelta(t, 122, buy.Optimistic, 1e-9)   // 1.15 + 0.07
	assert.InDelta(t, 111.5, buy.Moderate, 1e-9)   // 1.08 + 0.035
	assert.InDelta(t, 104.4, buy.Conservative, 1e-9)
	assert.InDelta(t, 90.25, buy.StopLoss, 1e-9) // support*0.95 < price*0.92
	assert.InDelta(t, 22, buy.UpsidePercent, 1e-9)

	sell := BuildTargets(domain.Sell, 65, 100, 95)
	assert.InDelta(t, 78.5, sell.Optimistic, 1e-9) // 0.85 - 0.065
	assert.InDelta(t, 95, sell.StopLoss, 1e-9)

	hold := BuildTargets(domain.Hold, 55, 100, 95)
	assert.InDelta(t, 105, hold.Optimistic, 1e-9)
	assert.InDelta(t, 102, hold.Moderate, 1e-9)
	assert.InDelta(t, 98, hold.Conservative, 1e-9)
}

func TestComputeRiskMetrics(t *testing.T) {
	flat := ComputeRiskMetrics([]float64{100, 100, 100, 100}, 0.12)
	assert.Zero(t, flat.AnnualizedVolatility)
	assert.Zero(t, flat.SharpeRatio) // zero sigma guards the division
	assert.Equal(t, domain.RiskLow, flat.Level)

	choppy := ComputeRiskMetrics([]float64{100, 95, 105, 90, 110, 85}, 0.12)
	assert.Greater(t, choppy.AnnualizedVolatility, 40.0)
	assert.Equal(t, domain.RiskVeryHigh, choppy.Level)
	assert.Negative(t, choppy.VaR95)
	assert.Negative(t, choppy.MaxDrawdown)

	empty := ComputeRiskMetrics(nil, 0.12)
	assert.Equal(t, domain.RiskMedium, empty.Level)
}

func TestMaxDrawdown(t *testing.T) {
	// peak 120, trough 90: drawdown -25%
	dd := maxDrawdown([]float64{100, 120, 110, 90, 115})
	assert.InDelta(t, -0.25, dd, 1e-9)

	assert.Zero(t, maxDrawdown([]float64{100, 105, 110}))
}

func TestRiskLevelTiers(t *testing.T) {
	assert.Equal(t, domain.RiskLow, riskLevel(10))
	assert.Equal(t, domain.RiskMedium, riskLevel(20))
	assert.Equal(t, domain.RiskHigh, riskLevel(30))
	assert.Equal(t, domain.RiskVeryHigh, riskLevel(45))
}

func TestEvaluateSuitability(t *testing.T) {
	assert.Nil(t, EvaluateSuitability(nil, domain.RiskLow))

	conservative := EvaluateSuitability(&domain.UserRiskProfile{
		RiskTolerance: domain.RiskConservative,
		Goal:          domain.GoalCapitalPreservation,
		MonthlyBudget: 20000,
	}, domain.RiskLow)
	require.NotNil(t, conservative)
	assert.InDelta(t, 85, conservative.Score, 1e-9) // 50+20+15
	assert.Equal(t, HighlySuitable, conservative.Label)
	assert.InDelta(t, 15, conservative.AllocationPercent, 1e-9) // capped from 40
	assert.Empty(t, conservative.Warnings)

	mismatch := EvaluateSuitability(&domain.UserRiskProfile{
		RiskTolerance: domain.RiskConservative,
		Goal:          domain.GoalCapitalPreservation,
		MonthlyBudget: 5000,
	}, domain.RiskVeryHigh)
	require.NotNil(t, mismatch)
	assert.InDelta(t, 20, mismatch.Score, 1e-9) // 50-30
	assert.Equal(t, NotSuitable, mismatch.Label)
	assert.Zero(t, mismatch.AllocationPercent)
	assert.Len(t, mismatch.Warnings, 2) // poor fit + no experience

	aggressive := EvaluateSuitability(&domain.UserRiskProfile{
		RiskTolerance: domain.RiskAggressive,
		Goal:          domain.GoalAggressiveGrowth,
		MonthlyBudget: 3000,
	}, domain.RiskHigh)
	require.NotNil(t, aggressive)
	assert.InDelta(t, 95, aggressive.Score, 1e-9) // 50+25+20
	assert.Equal(t, HighlySuitable, aggressive.Label)
	assert.InDelta(t, 6, aggressive.AllocationPercent, 1e-9) // 3 * 2

	// Growth-goal bonus covers the very-high risk tier too
	volatile := EvaluateSuitability(&domain.UserRiskProfile{
		RiskTolerance:   domain.RiskAggressive,
		Goal:            domain.GoalAggressiveGrowth,
		ExperienceYears: 5,
	}, domain.RiskVeryHigh)
	require.NotNil(t, volatile)
	assert.InDelta(t, 95, volatile.Score, 1e-9) // 50+25+20
}

func TestSuitabilityVeryAggressiveHasNoToleranceAdjustment(t *testing.T) {
	result := EvaluateSuitability(&domain.UserRiskProfile{
		RiskTolerance:   domain.RiskVeryAggressive,
		Goal:            domain.GoalBalancedGrowth,
		ExperienceYears: 10,
	}, domain.RiskVeryHigh)
	require.NotNil(t, result)
	assert.InDelta(t, 50, result.Score, 1e-9)
	assert.Equal(t, ModeratelySuitable, result.Label)
	assert.Empty(t, result.Warnings)
}

func TestSuitabilityExperienceWarning(t *testing.T) {
	novice := EvaluateSuitability(&domain.UserRiskProfile{
		RiskTolerance:   domain.RiskModerate,
		Goal:            domain.GoalBalancedGrowth,
		ExperienceYears: 1,
	}, domain.RiskHigh)
	require.NotNil(t, novice)
	assert.InDelta(t, 50, novice.Score, 1e-9)
	require.Len(t, novice.Warnings, 1)
	assert.Contains(t, novice.Warnings[0], "experience")

	seasoned := EvaluateSuitability(&domain.UserRiskProfile{
		RiskTolerance:   domain.RiskModerate,
		Goal:            domain.GoalBalancedGrowth,
		ExperienceYears: 8,
	}, domain.RiskHigh)
	require.NotNil(t, seasoned)
	assert.Empty(t, seasoned.Warnings)
}

func TestSuitabilityAllocationScalesWithBudget(t *testing.T) {
	profile := &domain.UserRiskProfile{
		RiskTolerance: domain.RiskConservative,
		Goal:          domain.GoalBalancedGrowth,
	}

	profile.MonthlyBudget = 2000
	small := EvaluateSuitability(profile, domain.RiskLow) // score 70, SUITABLE tier
	require.NotNil(t, small)
	assert.InDelta(t, 3, small.AllocationPercent, 1e-9) // 2 * 1.5

	profile.MonthlyBudget = 50000
	large := EvaluateSuitability(profile, domain.RiskLow)
	require.NotNil(t, large)
	assert.InDelta(t, 10, large.AllocationPercent, 1e-9) // tier cap
}
