package technical

import (
	"github.com/finobai/finobai/internal/domain"
)

const (
	rsiWeight        = 0.7
	rsiNeutralWeight = 0.3
	macdWeight       = 0.6
	maWeight         = 0.8
	oversoldRSI      = 30
	overboughtRSI    = 70
)

// ComposeSignal folds the weighted indicator votes into one signal.
// The heavier side wins; its strength is that side's share of the
// decisive weight. A tie, including no votes at all, is HOLD at 50.
func ComposeSignal(ind *Indicators) SignalAnalysis {
	var components []SignalComponent

	switch {
	case ind.RSI < oversoldRSI:
		components = append(components, SignalComponent{"rsi", domain.SignalBuy, rsiWeight})
	case ind.RSI > overboughtRSI:
		components = append(components, SignalComponent{"rsi", domain.SignalSell, rsiWeight})
	default:
		components = append(components, SignalComponent{"rsi", domain.SignalNeutral, rsiNeutralWeight})
	}

	if ind.MACD > 0 {
		components = append(components, SignalComponent{"macd", domain.SignalBuy, macdWeight})
	} else if ind.MACD < 0 {
		components = append(components, SignalComponent{"macd", domain.SignalSell, macdWeight})
	}

	if ind.LastPrice > ind.SMA20 && ind.SMA20 > ind.SMA50 {
		components = append(components, SignalComponent{"moving_averages", domain.SignalBuy, maWeight})
	} else if ind.LastPrice < ind.SMA20 && ind.SMA20 < ind.SMA50 {
		components = append(components, SignalComponent{"moving_averages", domain.SignalSell, maWeight})
	}

	var buy, sell float64
	for _, c := range components {
		switch c.Signal {
		case domain.SignalBuy:
			buy += c.Weight
		case domain.SignalSell:
			sell += c.Weight
		}
	}

	analysis := SignalAnalysis{Components: components}
	switch {
	case buy > sell:
		analysis.Signal = domain.SignalBuy
		analysis.Strength = buy / (buy + sell) * 100
	case sell > buy:
		analysis.Signal = domain.SignalSell
		analysis.Strength = sell / (buy + sell) * 100
	default:
		analysis.Signal = domain.SignalHold
		analysis.Strength = 50
	}
	return analysis
}

// Analyze runs the full pipeline over one candle series.
func Analyze(candles []domain.Candle) (*Analysis, error) {
	ind, err := ComputeIndicators(candles)
	if err != nil {
		return nil, err
	}
	return &Analysis{
		Indicators: *ind,
		Trend:      AnalyzeTrend(ind),
		Signal:     ComposeSignal(ind),
	}, nil
}
