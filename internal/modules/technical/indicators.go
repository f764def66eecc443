package technical

import (
	"errors"
	"math"
	"sort"

	"github.com/finobai/finobai/internal/domain"
	"github.com/markcheno/go-talib"
	"gonum.org/v1/gonum/stat"
)

// ErrNoData is returned when the candle series is empty. Short series
// degrade to documented fallback values; an empty one is a caller bug.
var ErrNoData = errors.New("price series is empty")

const (
	rsiPeriod       = 14
	neutralRSI      = 50
	bollingerPeriod = 20
	bollingerWidth  = 2.0
	extremeWindow   = 50
	extremeCount    = 5
)

// ComputeIndicators derives the indicator snapshot from chronological
// candles, oldest first.
func ComputeIndicators(candles []domain.Candle) (*Indicators, error) {
	if len(candles) == 0 {
		return nil, ErrNoData
	}

	closes := domain.Closes(candles)
	last := closes[len(closes)-1]

	ind := &Indicators{
		LastPrice: last,
		RSI:       rsi(closes),
		SMA20:     sma(closes, 20),
		EMA12:     ema(closes, 12),
		EMA26:     ema(closes, 26),
		Bollinger: bollinger(closes),
	}
	ind.SMA50 = smaOr(closes, 50, ind.SMA20)
	ind.SMA200 = smaOr(closes, 200, ind.SMA50)
	ind.MACD, ind.MACDSignal = macd(closes)
	ind.Support, ind.Resistance = supportResistance(candles)

	return ind, nil
}

// rsi returns the 14 period RSI, or the neutral 50 when the series is
// too short for a single reading.
func rsi(closes []float64) float64 {
	if len(closes) < rsiPeriod+1 {
		return neutralRSI
	}
	values := talib.Rsi(closes, rsiPeriod)
	value := values[len(values)-1]
	if math.IsNaN(value) {
		return neutralRSI
	}
	return value
}

// sma averages the trailing n closes, shrinking the window to whatever
// history exists.
func sma(closes []float64, n int) float64 {
	if len(closes) < n {
		n = len(closes)
	}
	return stat.Mean(closes[len(closes)-n:], nil)
}

// smaOr returns the n period SMA, or the shorter-window fallback when
// the series cannot fill the window.
func smaOr(closes []float64, n int, fallback float64) float64 {
	if len(closes) < n {
		return fallback
	}
	return sma(closes, n)
}

// ema walks the whole series seeded at the first price with the
// standard 2/(n+1) multiplier.
func ema(closes []float64, n int) float64 {
	series := emaSeries(closes, n)
	if len(series) == 0 {
		return 0
	}
	return series[len(series)-1]
}

func emaSeries(values []float64, n int) []float64 {
	if len(values) == 0 {
		return nil
	}
	mult := 2.0 / float64(n+1)
	out := make([]float64, len(values))
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = values[i]*mult + out[i-1]*(1-mult)
	}
	return out
}

// macd returns the MACD line (EMA12 - EMA26) and its EMA9 signal.
// Under 26 points both are 0; under 9 MACD values the signal tracks
// the MACD line itself.
func macd(closes []float64) (line, signal float64) {
	if len(closes) < 26 {
		return 0, 0
	}

	ema12 := emaSeries(closes, 12)
	ema26 := emaSeries(closes, 26)
	macdLine := make([]float64, 0, len(closes)-25)
	for i := 25; i < len(closes); i++ {
		macdLine = append(macdLine, ema12[i]-ema26[i])
	}

	line = macdLine[len(macdLine)-1]
	if len(macdLine) < 9 {
		return line, line
	}
	signalSeries := emaSeries(macdLine, 9)
	return line, signalSeries[len(signalSeries)-1]
}

// bollinger returns the 20 period bands, or a flat ±2% envelope around
// the last price when the window cannot fill.
func bollinger(closes []float64) BollingerBands {
	last := closes[len(closes)-1]
	if len(closes) < bollingerPeriod {
		return BollingerBands{
			Upper:  last * 1.02,
			Middle: last,
			Lower:  last * 0.98,
		}
	}

	window := closes[len(closes)-bollingerPeriod:]
	middle := stat.Mean(window, nil)
	sigma := stat.PopStdDev(window, nil)
	return BollingerBands{
		Upper:  middle + bollingerWidth*sigma,
		Middle: middle,
		Lower:  middle - bollingerWidth*sigma,
	}
}

// supportResistance averages the 5 lowest lows and 5 highest highs
// over the trailing 50 candles.
func supportResistance(candles []domain.Candle) (support, resistance float64) {
	window := candles
	if len(window) > extremeWindow {
		window = window[len(window)-extremeWindow:]
	}

	lows := make([]float64, len(window))
	highs := make([]float64, len(window))
	for i, c := range window {
		lows[i] = c.Low
		highs[i] = c.High
	}
	sort.Float64s(lows)
	sort.Sort(sort.Reverse(sort.Float64Slice(highs)))

	n := extremeCount
	if len(window) < n {
		n = len(window)
	}
	return stat.Mean(lows[:n], nil), stat.Mean(highs[:n], nil)
}
