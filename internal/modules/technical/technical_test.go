package technical

import (
	"testing"

	"github.com/finobai/finobai/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candlesFromCloses(closes ...float64) []domain.Candle {
	candles := make([]domain.Candle, len(closes))
	for i, c := range closes {
		candles[i] = domain.Candle{
			Open:  c,
			High:  c + 1,
			Low:   c - 1,
			Close: c,
		}
	}
	return candles
}

func risingSeries(n int) []domain.Candle {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	return candlesFromCloses(closes...)
}

func fallingSeries(n int) []domain.Candle {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = 500 - float64(i)
	}
	return candlesFromCloses(closes...)
}

func TestAnalyzeEmptySeries(t *testing.T) {
	_, err := Analyze(nil)
	assert.ErrorIs(t, err, ErrNoData)

	_, err = ComputeIndicators([]domain.Candle{})
	assert.ErrorIs(t, err, ErrNoData)
}

func TestRSIExtremes(t *testing.T) {
	rising, err := ComputeIndicators(risingSeries(60))
	require.NoError(t, err)
	assert.InDelta(t, 100, rising.RSI, 1e-6) // no losing day

	falling, err := ComputeIndicators(fallingSeries(60))
	require.NoError(t, err)
	assert.InDelta(t, 0, falling.RSI, 1e-6) // no winning day

	short, err := ComputeIndicators(risingSeries(10))
	require.NoError(t, err)
	assert.InDelta(t, 50, short.RSI, 1e-9) // under 15 points stays neutral
}

func TestShortSeriesFallbacks(t *testing.T) {
	ind, err := ComputeIndicators(candlesFromCloses(100, 102, 104, 106, 108))
	require.NoError(t, err)

	assert.Zero(t, ind.MACD)
	assert.Zero(t, ind.MACDSignal)

	// bands collapse to a flat envelope around the last price
	assert.InDelta(t, 108, ind.Bollinger.Middle, 1e-9)
	assert.InDelta(t, 108*1.02, ind.Bollinger.Upper, 1e-9)
	assert.InDelta(t, 108*0.98, ind.Bollinger.Lower, 1e-9)

	// window shrinks to available history, then the chain cascades
	assert.InDelta(t, 104, ind.SMA20, 1e-9)
	assert.Equal(t, ind.SMA20, ind.SMA50)
	assert.Equal(t, ind.SMA50, ind.SMA200)
}

func TestBollingerBandsOrdering(t *testing.T) {
	ind, err := ComputeIndicators(risingSeries(60))
	require.NoError(t, err)

	assert.Greater(t, ind.Bollinger.Upper, ind.Bollinger.Middle)
	assert.Less(t, ind.Bollinger.Lower, ind.Bollinger.Middle)
	assert.InDelta(t, 149.5, ind.Bollinger.Middle, 1e-9) // mean of last 20 closes
}

func TestSupportResistance(t *testing.T) {
	ind, err := ComputeIndicators(risingSeries(60))
	require.NoError(t, err)

	// trailing 50 candles close 110..159; lows are close-1, highs close+1
	assert.InDelta(t, 111, ind.Support, 1e-9)    // mean of 109..113
	assert.InDelta(t, 158, ind.Resistance, 1e-9) // mean of 156..160
	assert.Less(t, ind.Support, ind.Resistance)
}

func TestRisingSeriesFullAnalysis(t *testing.T) {
	analysis, err := Analyze(risingSeries(252))
	require.NoError(t, err)

	assert.Greater(t, analysis.Indicators.RSI, 60.0)
	assert.Greater(t, analysis.Indicators.MACD, 0.0)

	assert.Equal(t, domain.TrendBullish, analysis.Trend.ShortTerm.Direction)
	assert.Equal(t, domain.TrendBullish, analysis.Trend.MediumTerm.Direction)
	assert.Equal(t, domain.TrendBullish, analysis.Trend.LongTerm.Direction)
	assert.Equal(t, domain.TrendBullish, analysis.Trend.Overall)

	// overbought RSI votes sell, but MACD and the MA ordering outweigh it
	assert.Equal(t, domain.SignalBuy, analysis.Signal.Signal)
	assert.InDelta(t, 1.4/2.1*100, analysis.Signal.Strength, 1e-6)
}

func TestFallingSeriesAnalysis(t *testing.T) {
	analysis, err := Analyze(fallingSeries(252))
	require.NoError(t, err)

	assert.Equal(t, domain.TrendBearish, analysis.Trend.Overall)

	// oversold RSI votes buy, but MACD and the MA ordering outweigh it
	assert.Equal(t, domain.SignalSell, analysis.Signal.Signal)
	assert.InDelta(t, 1.4/2.1*100, analysis.Signal.Strength, 1e-6)
}

func TestComposeSignalTie(t *testing.T) {
	ind := &Indicators{
		RSI:       50, // neutral vote only
		MACD:      0,
		LastPrice: 100,
		SMA20:     100,
		SMA50:     100,
	}

	signal := ComposeSignal(ind)
	assert.Equal(t, domain.SignalHold, signal.Signal)
	assert.Equal(t, 50.0, signal.Strength)
	require.Len(t, signal.Components, 1)
	assert.Equal(t, domain.SignalNeutral, signal.Components[0].Signal)
}

func TestTrendStrength(t *testing.T) {
	trend := horizonTrend("short_term", 110, 100)
	assert.Equal(t, domain.TrendBullish, trend.Direction)
	assert.InDelta(t, 10, trend.Strength, 1e-9)

	flat := horizonTrend("short_term", 100, 0)
	assert.Equal(t, domain.TrendNeutral, flat.Direction)
	assert.Zero(t, flat.Strength)
}
