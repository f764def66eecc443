package technical

import (
	"github.com/finobai/finobai/internal/domain"
)

// BollingerBands holds the three band values around the 20 period mean.
type BollingerBands struct {
	Upper  float64 `json:"upper"`
	Middle float64 `json:"middle"`
	Lower  float64 `json:"lower"`
}

// Indicators is the full indicator snapshot for one price series.
type Indicators struct {
	LastPrice  float64        `json:"last_price"`
	RSI        float64        `json:"rsi"`
	SMA20      float64        `json:"sma_20"`
	SMA50      float64        `json:"sma_50"`
	SMA200     float64        `json:"sma_200"`
	EMA12      float64        `json:"ema_12"`
	EMA26      float64        `json:"ema_26"`
	MACD       float64        `json:"macd"`
	MACDSignal float64        `json:"macd_signal"`
	Bollinger  BollingerBands `json:"bollinger"`
	Support    float64        `json:"support"`
	Resistance float64        `json:"resistance"`
}

// HorizonTrend labels one comparison horizon.
type HorizonTrend struct {
	Horizon   string       `json:"horizon"` // short_term | medium_term | long_term
	Direction domain.Trend `json:"direction"`
	Strength  float64      `json:"strength"` // percent distance between the two averages
}

// TrendAnalysis holds the per-horizon trends and the overall vote.
type TrendAnalysis struct {
	ShortTerm  HorizonTrend `json:"short_term"`
	MediumTerm HorizonTrend `json:"medium_term"`
	LongTerm   HorizonTrend `json:"long_term"`
	Overall    domain.Trend `json:"overall"`
}

// SignalComponent is one weighted vote feeding the composite signal.
type SignalComponent struct {
	Name   string        `json:"name"` // rsi | macd | moving_averages
	Signal domain.Signal `json:"signal"`
	Weight float64       `json:"weight"`
}

// SignalAnalysis is the composite trade signal.
type SignalAnalysis struct {
	Signal     domain.Signal     `json:"signal"`
	Strength   float64           `json:"strength"` // 0..100
	Components []SignalComponent `json:"components"`
}

// Analysis bundles everything the engine derives from one candle series.
type Analysis struct {
	Indicators Indicators     `json:"indicators"`
	Trend      TrendAnalysis  `json:"trend"`
	Signal     SignalAnalysis `json:"signal"`
}
