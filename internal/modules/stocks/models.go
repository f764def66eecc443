package stocks

import (
	"github.com/finobai/finobai/internal/domain"
	"github.com/finobai/finobai/internal/modules/technical"
)

// FundamentalScores are the four 0-100 sub-scores derived from ratios.
type FundamentalScores struct {
	Valuation       float64 `json:"valuation"`
	FinancialHealth float64 `json:"financial_health"`
	Growth          float64 `json:"growth"`
	Profitability   float64 `json:"profitability"`
}

// Average is the valuation/health blend feeding the fallback
// recommendation.
func (s FundamentalScores) Average() float64 {
	return (s.Valuation + s.FinancialHealth) / 2
}

// SentimentInputs are the externally supplied sentiment components.
type SentimentInputs struct {
	News    float64 `json:"news"`    // [-1, 1]
	Social  float64 `json:"social"`  // [-1, 1]
	Analyst float64 `json:"analyst"` // [-1, 1]
}

// SentimentScore is the blended sentiment verdict.
type SentimentScore struct {
	Score float64 `json:"score"` // [-1, 1]
	Label string  `json:"label"` // POSITIVE | NEGATIVE | NEUTRAL
}

// RiskMetrics summarizes the return-series risk of a symbol.
type RiskMetrics struct {
	AnnualizedVolatility float64          `json:"annualized_volatility"` // percent
	VaR95                float64          `json:"var_95"`                // percent, daily
	MaxDrawdown          float64          `json:"max_drawdown"`          // percent, negative
	SharpeRatio          float64          `json:"sharpe_ratio"`
	Level                domain.RiskLevel `json:"level"`
}

// TargetPrices are the price objectives attached to a recommendation.
type TargetPrices struct {
	Optimistic      float64 `json:"optimistic"`
	Moderate        float64 `json:"moderate"`
	Conservative    float64 `json:"conservative"`
	StopLoss        float64 `json:"stop_loss"`
	UpsidePercent   float64 `json:"upside_percent"`
	DownsidePercent float64 `json:"downside_percent"`
}

// RecommendationResult is the final verdict with its provenance.
type RecommendationResult struct {
	Recommendation domain.Recommendation `json:"recommendation"`
	Confidence     float64               `json:"confidence"` // 0..100
	Rationale      string                `json:"rationale,omitempty"`
	Source         string                `json:"source"` // narrative | fallback
}

// Suitability relates a stock's risk to an investor's profile.
type Suitability struct {
	Score             float64  `json:"score"` // 0..100
	Label             string   `json:"label"`
	AllocationPercent float64  `json:"allocation_percent"` // of portfolio, capped
	Warnings          []string `json:"warnings,omitempty"`
}

// Analysis is the complete scoring output for one symbol.
type Analysis struct {
	Symbol         string               `json:"symbol"`
	Price          float64              `json:"price"`
	Technical      *technical.Analysis  `json:"technical"`
	Fundamentals   FundamentalScores    `json:"fundamental_scores"`
	Sentiment      *SentimentScore      `json:"sentiment,omitempty"`
	Risk           RiskMetrics          `json:"risk"`
	Recommendation RecommendationResult `json:"recommendation"`
	Targets        TargetPrices         `json:"targets"`
	Suitability    *Suitability         `json:"suitability,omitempty"`
}
