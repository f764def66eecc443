package stocks

import (
	"fmt"
	"sort"

	"github.com/finobai/finobai/internal/domain"
)

// PortfolioCandidate is one scored symbol entering the weighting.
type PortfolioCandidate struct {
	Symbol      string                `json:"symbol"`
	Rec         domain.Recommendation `json:"recommendation"`
	Confidence  float64               `json:"confidence"`  // 0..100
	Suitability float64               `json:"suitability"` // 0..100
	Risk        domain.RiskLevel      `json:"risk"`
	Sector      string                `json:"sector,omitempty"`
}

// PortfolioWeight is one symbol's share of the suggested portfolio.
type PortfolioWeight struct {
	Symbol string  `json:"symbol"`
	Weight float64 `json:"weight"` // 0..1, sums to 1
}

// PortfolioMetrics aggregates the weighted candidates.
type PortfolioMetrics struct {
	AverageConfidence float64 `json:"average_confidence"`
	RiskScore         float64 `json:"risk_score"` // 0..100, weighted
}

// ConcentrationReport grades sector diversification.
type ConcentrationReport struct {
	Score           float64  `json:"score"` // 0..100
	Grade           string   `json:"grade"` // weak | medium | good
	TopSector       string   `json:"top_sector"`
	TopSectorShare  float64  `json:"top_sector_share"` // percent
	Recommendations []string `json:"recommendations,omitempty"`
}

func recommendationScore(rec domain.Recommendation) float64 {
	switch rec {
	case domain.StrongBuy:
		return 1.0
	case domain.Buy:
		return 0.8
	case domain.Hold:
		return 0.5
	case domain.Sell:
		return 0.2
	case domain.StrongSell:
		return 0.1
	}
	return 0.5
}

func riskScore(level domain.RiskLevel) float64 {
	switch level {
	case domain.RiskLow:
		return 25
	case domain.RiskMedium:
		return 50
	case domain.RiskHigh:
		return 75
	case domain.RiskVeryHigh:
		return 90
	}
	return 50
}

// OptimalWeights sizes positions proportionally to recommendation
// strength, confidence, and suitability. Weights sum to 1; an all-zero
// input yields no weights.
func OptimalWeights(candidates []PortfolioCandidate) []PortfolioWeight {
	raw := make([]float64, len(candidates))
	var total float64
	for i, c := range candidates {
		raw[i] = recommendationScore(c.Rec) * (c.Confidence / 100) * (c.Suitability / 100)
		total += raw[i]
	}
	if total == 0 {
		return nil
	}

	weights := make([]PortfolioWeight, len(candidates))
	for i, c := range candidates {
		weights[i] = PortfolioWeight{Symbol: c.Symbol, Weight: raw[i] / total}
	}
	return weights
}

// ComputePortfolioMetrics aggregates confidence and risk across the
// weighted candidates.
func ComputePortfolioMetrics(candidates []PortfolioCandidate, weights []PortfolioWeight) PortfolioMetrics {
	byWeight := make(map[string]float64, len(weights))
	for _, w := range weights {
		byWeight[w.Symbol] = w.Weight
	}

	var metrics PortfolioMetrics
	for _, c := range candidates {
		w := byWeight[c.Symbol]
		metrics.AverageConfidence += c.Confidence * w
		metrics.RiskScore += riskScore(c.Risk) * w
	}
	return metrics
}

// AnalyzeConcentration grades sector exposure by the heaviest sector's
// share of the portfolio.
func AnalyzeConcentration(candidates []PortfolioCandidate, weights []PortfolioWeight) ConcentrationReport {
	byWeight := make(map[string]float64, len(weights))
	for _, w := range weights {
		byWeight[w.Symbol] = w.Weight
	}

	sectorShare := make(map[string]float64)
	for _, c := range candidates {
		sector := c.Sector
		if sector == "" {
			sector = "unknown"
		}
		sectorShare[sector] += byWeight[c.Symbol] * 100
	}

	sectors := make([]string, 0, len(sectorShare))
	for sector := range sectorShare {
		sectors = append(sectors, sector)
	}
	sort.Strings(sectors)

	var report ConcentrationReport
	for _, sector := range sectors {
		if sectorShare[sector] > report.TopSectorShare {
			report.TopSector = sector
			report.TopSectorShare = sectorShare[sector]
		}
	}

	switch {
	case report.TopSectorShare > 50:
		report.Score = 30
		report.Grade = "weak"
		report.Recommendations = append(report.Recommendations, fmt.Sprintf(
			"Over half the portfolio sits in %s; spread across more sectors", report.TopSector))
	case report.TopSectorShare > 30:
		report.Score = 60
		report.Grade = "medium"
		report.Recommendations = append(report.Recommendations, fmt.Sprintf(
			"%s is the heaviest sector at %.0f%%; consider trimming it", report.TopSector, report.TopSectorShare))
	default:
		report.Score = 90
		report.Grade = "good"
	}
	return report
}

// RebalancingCadence maps risk tolerance to a review interval.
func RebalancingCadence(tolerance domain.RiskTolerance) string {
	switch tolerance {
	case domain.RiskConservative:
		return "every_6_months"
	case domain.RiskModerate:
		return "quarterly"
	default:
		return "monthly"
	}
}
