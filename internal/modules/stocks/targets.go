package stocks

import (
	"math"

	"github.com/finobai/finobai/internal/domain"
)

// BuildTargets derives the price objectives from the recommendation
// and its confidence. Buy-side multipliers grow with confidence, the
// sell side mirrors them down, and HOLD uses fixed bands.
func BuildTargets(rec domain.Recommendation, confidence, price, support float64) TargetPrices {
	c := confidence / 100

	var targets TargetPrices
	switch rec {
	case domain.StrongBuy, domain.Buy:
		targets = TargetPrices{
			Optimistic:   price * (1.15 + 0.10*c),
			Moderate:     price * (1.08 + 0.05*c),
			Conservative: price * (1.03 + 0.02*c),
			StopLoss:     math.Min(support*0.95, price*0.92),
		}
	case domain.StrongSell, domain.Sell:
		targets = TargetPrices{
			Optimistic:   price * (0.85 - 0.10*c),
			Moderate:     price * (0.92 - 0.05*c),
			Conservative: price * (0.97 - 0.02*c),
			StopLoss:     price * 0.95,
		}
	default:
		targets = TargetPrices{
			Optimistic:   price * 1.05,
			Moderate:     price * 1.02,
			Conservative: price * 0.98,
			StopLoss:     price * 0.95,
		}
	}

	if price > 0 {
		targets.UpsidePercent = (targets.Optimistic - price) / price * 100
		targets.DownsidePercent = (targets.StopLoss - price) / price * 100
	}
	return targets
}
