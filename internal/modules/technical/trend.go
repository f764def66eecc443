package technical

import (
	"math"

	"github.com/finobai/finobai/internal/domain"
)

// AnalyzeTrend labels each horizon by comparing adjacent moving
// averages and takes the overall direction by majority vote.
func AnalyzeTrend(ind *Indicators) TrendAnalysis {
	analysis := TrendAnalysis{
		ShortTerm:  horizonTrend("short_term", ind.LastPrice, ind.SMA20),
		MediumTerm: horizonTrend("medium_term", ind.SMA20, ind.SMA50),
		LongTerm:   horizonTrend("long_term", ind.SMA50, ind.SMA200),
	}

	var bullish, bearish int
	for _, h := range []HorizonTrend{analysis.ShortTerm, analysis.MediumTerm, analysis.LongTerm} {
		switch h.Direction {
		case domain.TrendBullish:
			bullish++
		case domain.TrendBearish:
			bearish++
		}
	}

	switch {
	case bullish >= 2:
		analysis.Overall = domain.TrendBullish
	case bearish >= 2:
		analysis.Overall = domain.TrendBearish
	default:
		analysis.Overall = domain.TrendNeutral
	}
	return analysis
}

func horizonTrend(horizon string, fast, slow float64) HorizonTrend {
	trend := HorizonTrend{Horizon: horizon, Direction: domain.TrendNeutral}
	if slow == 0 {
		return trend
	}

	trend.Strength = math.Abs(fast-slow) / slow * 100
	if fast > slow {
		trend.Direction = domain.TrendBullish
	} else if fast < slow {
		trend.Direction = domain.TrendBearish
	}
	return trend
}
