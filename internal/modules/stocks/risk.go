package stocks

import (
	"math"
	"sort"

	"github.com/finobai/finobai/internal/domain"
	"gonum.org/v1/gonum/stat"
)

const tradingDays = 252

// ComputeRiskMetrics derives the risk profile from a daily close
// series. riskFreeRate is annual; it is scaled to daily for Sharpe.
func ComputeRiskMetrics(closes []float64, riskFreeRate float64) RiskMetrics {
	returns := dailyReturns(closes)
	if len(returns) == 0 {
		return RiskMetrics{Level: domain.RiskMedium}
	}

	mean := stat.Mean(returns, nil)
	sigma := stat.PopStdDev(returns, nil)

	metrics := RiskMetrics{
		AnnualizedVolatility: sigma * math.Sqrt(tradingDays) * 100,
		VaR95:                percentile(returns, 0.05) * 100,
		MaxDrawdown:          maxDrawdown(closes) * 100,
	}
	if sigma > 0 {
		daily := riskFreeRate / tradingDays
		metrics.SharpeRatio = (mean - daily) / sigma * math.Sqrt(tradingDays)
	}
	metrics.Level = riskLevel(metrics.AnnualizedVolatility)
	return metrics
}

func dailyReturns(closes []float64) []float64 {
	var returns []float64
	for i := 1; i < len(closes); i++ {
		if closes[i-1] == 0 {
			continue
		}
		returns = append(returns, (closes[i]-closes[i-1])/closes[i-1])
	}
	return returns
}

func percentile(values []float64, p float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// maxDrawdown is the deepest peak-to-trough fall, as a negative
// fraction of the running peak.
func maxDrawdown(closes []float64) float64 {
	var peak, worst float64
	for _, price := range closes {
		if price > peak {
			peak = price
		}
		if peak > 0 {
			drawdown := price/peak - 1
			if drawdown < worst {
				worst = drawdown
			}
		}
	}
	return worst
}

func riskLevel(annualizedVolatility float64) domain.RiskLevel {
	switch {
	case annualizedVolatility < 15:
		return domain.RiskLow
	case annualizedVolatility < 25:
		return domain.RiskMedium
	case annualizedVolatility < 40:
		return domain.RiskHigh
	default:
		return domain.RiskVeryHigh
	}
}
