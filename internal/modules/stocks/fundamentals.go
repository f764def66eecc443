package stocks

import (
	"github.com/finobai/finobai/internal/domain"
)

// ScoreFundamentals turns raw ratios into the four sub-scores.
// Missing figures simply skip their adjustments; a fully empty input
// lands on the neutral baselines.
func ScoreFundamentals(f *domain.Fundamentals) FundamentalScores {
	if f == nil {
		f = &domain.Fundamentals{}
	}
	return FundamentalScores{
		Valuation:       valuationScore(f),
		FinancialHealth: healthScore(f),
		Growth:          growthScore(f),
		Profitability:   profitabilityScore(f),
	}
}

func valuationScore(f *domain.Fundamentals) float64 {
	score := 50.0

	if f.PERatio != nil {
		switch pe := *f.PERatio; {
		case pe < 10:
			score += 20
		case pe < 15:
			score += 10
		case pe > 30:
			score -= 15
		case pe > 25:
			score -= 5
		}
	}
	if f.PBRatio != nil {
		switch pb := *f.PBRatio; {
		case pb < 1:
			score += 15
		case pb < 2:
			score += 5
		case pb > 5:
			score -= 10
		}
	}
	if f.ROE != nil {
		switch roe := *f.ROE; {
		case roe > 0.20:
			score += 15
		case roe > 0.15:
			score += 10
		case roe < 0.05:
			score -= 15
		}
	}

	return clampScore(score)
}

func healthScore(f *domain.Fundamentals) float64 {
	score := 50.0

	if f.DebtToEquity != nil {
		switch de := *f.DebtToEquity; {
		case de < 0.3:
			score += 20
		case de < 0.6:
			score += 10
		case de > 1.5:
			score -= 20
		case de > 1.0:
			score -= 10
		}
	}
	if f.ROE != nil {
		if *f.ROE > 0.15 {
			score += 15
		} else if *f.ROE < 0 {
			score -= 25
		}
	}
	if f.ProfitMargin != nil {
		if *f.ProfitMargin > 0.10 {
			score += 15
		} else if *f.ProfitMargin < 0 {
			score -= 20
		}
	}

	return clampScore(score)
}

func growthScore(f *domain.Fundamentals) float64 {
	if f.RevenueGrowth == nil {
		return 30
	}
	switch growth := *f.RevenueGrowth; {
	case growth > 20:
		return 90
	case growth > 10:
		return 75
	case growth > 5:
		return 60
	case growth > 0:
		return 45
	default:
		return 20
	}
}

func profitabilityScore(f *domain.Fundamentals) float64 {
	var score float64

	if f.ROE != nil {
		switch roe := *f.ROE; {
		case roe > 0.20:
			score += 50
		case roe > 0.15:
			score += 40
		case roe > 0.10:
			score += 25
		case roe > 0:
			score += 10
		}
	}
	if f.ProfitMargin != nil {
		switch margin := *f.ProfitMargin; {
		case margin > 0.15:
			score += 50
		case margin > 0.10:
			score += 35
		case margin > 0.05:
			score += 20
		case margin > 0:
			score += 10
		}
	}

	return clampScore(score)
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
