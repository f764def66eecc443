package stocks

import (
	"context"

	"github.com/finobai/finobai/internal/domain"
	"github.com/finobai/finobai/internal/events"
	"github.com/finobai/finobai/internal/modules/technical"
	"github.com/rs/zerolog"
)

// MarketData supplies price history and fundamentals for a symbol.
// Implemented by the marketdata HTTP client.
type MarketData interface {
	Candles(ctx context.Context, symbol string) ([]domain.Candle, error)
	Fundamentals(ctx context.Context, symbol string) (*domain.Fundamentals, error)
}

// Service runs the full scoring pipeline for one symbol.
type Service struct {
	market       MarketData
	advisor      NarrativeAdvisor
	bus          *events.Bus
	riskFreeRate float64
	log          zerolog.Logger
}

// NewService creates a new stock scoring service
func NewService(
	market MarketData,
	advisor NarrativeAdvisor,
	bus *events.Bus,
	riskFreeRate float64,
	log zerolog.Logger,
) *Service {
	return &Service{
		market:       market,
		advisor:      advisor,
		bus:          bus,
		riskFreeRate: riskFreeRate,
		log:          log.With().Str("component", "stocks").Logger(),
	}
}

// Analyze fetches market data for the symbol and scores it. A nil
// profile skips suitability; nil sentiment skips the sentiment blend.
// Fundamentals failures degrade to neutral scores; a missing price
// series is a hard error.
func (s *Service) Analyze(
	ctx context.Context,
	symbol string,
	profile *domain.UserRiskProfile,
	sentiment *SentimentInputs,
) (*Analysis, error) {
	candles, err := s.market.Candles(ctx, symbol)
	if err != nil {
		return nil, err
	}

	tech, err := technical.Analyze(candles)
	if err != nil {
		return nil, err
	}

	fundamentals, err := s.market.Fundamentals(ctx, symbol)
	if err != nil {
		s.log.Warn().Err(err).Str("symbol", symbol).Msg("Fundamentals unavailable, scoring on neutral baselines")
		fundamentals = nil
	}

	analysis := &Analysis{
		Symbol:       symbol,
		Price:        tech.Indicators.LastPrice,
		Technical:    tech,
		Fundamentals: ScoreFundamentals(fundamentals),
		Risk:         ComputeRiskMetrics(domain.Closes(candles), s.riskFreeRate),
	}
	if sentiment != nil {
		blended := BlendSentiment(*sentiment)
		analysis.Sentiment = &blended
	}

	analysis.Recommendation = Recommend(ctx, s.advisor, NarrativeRequest{
		Symbol:       symbol,
		Price:        analysis.Price,
		Signal:       tech.Signal.Signal,
		Trend:        tech.Trend.Overall,
		Fundamentals: analysis.Fundamentals,
		Risk:         analysis.Risk,
		Sentiment:    analysis.Sentiment,
	})
	analysis.Targets = BuildTargets(
		analysis.Recommendation.Recommendation,
		analysis.Recommendation.Confidence,
		analysis.Price,
		tech.Indicators.Support,
	)
	analysis.Suitability = EvaluateSuitability(profile, analysis.Risk.Level)

	if s.bus != nil {
		s.bus.Publish(&events.StockAnalyzedData{
			Symbol:         symbol,
			Recommendation: string(analysis.Recommendation.Recommendation),
			Confidence:     analysis.Recommendation.Confidence,
			Source:         analysis.Recommendation.Source,
		})
	}

	s.log.Info().
		Str("symbol", symbol).
		Str("recommendation", string(analysis.Recommendation.Recommendation)).
		Str("source", analysis.Recommendation.Source).
		Msg("Stock analysis complete")
	return analysis, nil
}
