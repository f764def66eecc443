package stocks

import (
	"context"

	"github.com/finobai/finobai/internal/domain"
)

// Provenance tags for RecommendationResult.Source.
const (
	SourceNarrative = "narrative"
	SourceFallback  = "fallback"
)

// NarrativeRequest carries the scored context handed to the external
// narrative generator.
type NarrativeRequest struct {
	Symbol       string            `json:"symbol"`
	Price        float64           `json:"price"`
	Signal       domain.Signal     `json:"signal"`
	Trend        domain.Trend      `json:"trend"`
	Fundamentals FundamentalScores `json:"fundamental_scores"`
	Risk         RiskMetrics       `json:"risk"`
	Sentiment    *SentimentScore   `json:"sentiment,omitempty"`
}

// NarrativeResponse is the structured part of the generator's reply.
type NarrativeResponse struct {
	Recommendation domain.Recommendation `json:"recommendation"`
	Confidence     float64               `json:"confidence"`
	Rationale      string                `json:"rationale"`
}

// NarrativeAdvisor generates a free-text backed recommendation.
// Implemented by the advisor HTTP client; nil means not configured.
type NarrativeAdvisor interface {
	Recommend(ctx context.Context, req NarrativeRequest) (*NarrativeResponse, error)
}

// Recommend asks the narrative advisor first and falls back to the
// deterministic rule when the advisor is missing, failing, or replies
// with an unusable verdict. The Source field records which path ran.
func Recommend(ctx context.Context, advisor NarrativeAdvisor, req NarrativeRequest) RecommendationResult {
	if advisor != nil {
		resp, err := advisor.Recommend(ctx, req)
		if err == nil && resp != nil && validRecommendation(resp.Recommendation) {
			return RecommendationResult{
				Recommendation: resp.Recommendation,
				Confidence:     resp.Confidence,
				Rationale:      resp.Rationale,
				Source:         SourceNarrative,
			}
		}
	}
	return FallbackRecommendation(req.Signal, req.Fundamentals)
}

// FallbackRecommendation derives a verdict from the technical signal
// and the valuation/health average alone.
func FallbackRecommendation(signal domain.Signal, scores FundamentalScores) RecommendationResult {
	avg := scores.Average()

	result := RecommendationResult{Source: SourceFallback}
	switch {
	case signal == domain.SignalBuy && avg > 60:
		result.Recommendation = domain.Buy
		result.Confidence = 70
	case signal == domain.SignalSell || avg < 40:
		result.Recommendation = domain.Sell
		result.Confidence = 65
	default:
		result.Recommendation = domain.Hold
		result.Confidence = 55
	}
	return result
}

func validRecommendation(rec domain.Recommendation) bool {
	switch rec {
	case domain.StrongBuy, domain.Buy, domain.Hold, domain.Sell, domain.StrongSell:
		return true
	}
	return false
}
