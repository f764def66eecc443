package stocks

import (
	"math"

	"github.com/finobai/finobai/internal/domain"
)

// Suitability labels.
const (
	HighlySuitable     = "HIGHLY_SUITABLE"
	SuitableLabel      = "SUITABLE"
	ModeratelySuitable = "MODERATELY_SUITABLE"
	NotSuitable        = "NOT_SUITABLE"
)

// EvaluateSuitability scores the fit between the stock's risk tier and
// the investor's declared tolerance and goal, then sizes an allocation
// from the monthly budget. Nil profiles skip suitability entirely.
func EvaluateSuitability(profile *domain.UserRiskProfile, risk domain.RiskLevel) *Suitability {
	if profile == nil {
		return nil
	}

	calm := risk == domain.RiskLow || risk == domain.RiskMedium
	score := 50.0

	// MODERATE and VERY_AGGRESSIVE carry no tolerance adjustment.
	switch profile.RiskTolerance {
	case domain.RiskConservative:
		if calm {
			score += 20
		} else {
			score -= 30
		}
	case domain.RiskAggressive:
		if !calm {
			score += 25
		} else {
			score += 5
		}
	}

	if profile.Goal == domain.GoalCapitalPreservation && calm {
		score += 15
	}
	if profile.Goal == domain.GoalAggressiveGrowth && !calm {
		score += 20
	}
	score = clampScore(score)

	result := &Suitability{Score: score}
	budget := profile.MonthlyBudget / 1000
	switch {
	case score >= 80:
		result.Label = HighlySuitable
		result.AllocationPercent = math.Min(15, budget*2)
	case score >= 65:
		result.Label = SuitableLabel
		result.AllocationPercent = math.Min(10, budget*1.5)
	case score >= 45:
		result.Label = ModeratelySuitable
		result.AllocationPercent = math.Min(5, budget)
	default:
		result.Label = NotSuitable
	}

	if score < 50 {
		result.Warnings = append(result.Warnings,
			"This stock may not match your risk profile")
	}
	if profile.ExperienceYears < 2 && score < 70 {
		result.Warnings = append(result.Warnings,
			"Limited investing experience, be cautious with position size")
	}

	return result
}
