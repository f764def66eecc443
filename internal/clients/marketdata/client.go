// Package marketdata fetches OHLCV series and fundamentals from the
// configured market data provider, caching candles on history.db.
package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/finobai/finobai/internal/domain"
	"github.com/finobai/finobai/internal/modules/history"
	"github.com/rs/zerolog"
)

// freshFor is how long cached candles satisfy a request before the
// provider is consulted again.
const freshFor = 12 * time.Hour

// Client talks to the market data provider. Implements the stocks
// engine's MarketData interface.
type Client struct {
	baseURL string
	client  *http.Client
	store   *history.Store
	log     zerolog.Logger
}

// NewClient creates a new market data client.
// store is optional - if nil, candle caching is disabled.
func NewClient(baseURL string, store *history.Store, log zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
		store:   store,
		log:     log.With().Str("client", "marketdata").Logger(),
	}
}

type candlePayload struct {
	Date   string  `json:"date"` // YYYY-MM-DD
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`
}

type candlesResponse struct {
	Symbol  string          `json:"symbol"`
	Candles []candlePayload `json:"candles"`
}

// Candles returns up to a year of daily candles for the symbol,
// oldest first. Fresh cache hits skip the provider; provider failures
// fall back to stale cached candles when any exist.
func (c *Client) Candles(ctx context.Context, symbol string) ([]domain.Candle, error) {
	if cached, ok := c.freshFromStore(symbol); ok {
		c.log.Debug().Str("symbol", symbol).Int("count", len(cached)).Msg("Candle cache hit")
		return cached, nil
	}

	candles, err := c.fetchCandles(ctx, symbol)
	if err != nil {
		if stale, ok := c.staleFromStore(symbol); ok {
			c.log.Warn().Err(err).Str("symbol", symbol).Msg("Provider failed, using stale cached candles")
			return stale, nil
		}
		return nil, err
	}

	if c.store != nil && len(candles) > 0 {
		if err := c.store.Sync(symbol, candles); err != nil {
			c.log.Warn().Err(err).Str("symbol", symbol).Msg("Failed to cache candles")
		}
	}
	return candles, nil
}

func (c *Client) fetchCandles(ctx context.Context, symbol string) ([]domain.Candle, error) {
	endpoint := fmt.Sprintf("%s/v1/ohlcv/%s?range=1y", c.baseURL, url.PathEscape(symbol))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	var payload candlesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to parse provider response: %w", err)
	}

	candles := make([]domain.Candle, 0, len(payload.Candles))
	for _, p := range payload.Candles {
		day, err := time.Parse("2006-01-02", p.Date)
		if err != nil {
			c.log.Warn().Str("symbol", symbol).Str("date", p.Date).Msg("Skipping candle with bad date")
			continue
		}
		candles = append(candles, domain.Candle{
			Time:   day,
			Open:   p.Open,
			High:   p.High,
			Low:    p.Low,
			Close:  p.Close,
			Volume: p.Volume,
		})
	}

	c.log.Info().Str("symbol", symbol).Int("count", len(candles)).Msg("Fetched candles")
	return candles, nil
}

// Fundamentals returns the fundamental figures for a symbol. Absent
// figures stay nil; callers score around them.
func (c *Client) Fundamentals(ctx context.Context, symbol string) (*domain.Fundamentals, error) {
	endpoint := fmt.Sprintf("%s/v1/fundamentals/%s", c.baseURL, url.PathEscape(symbol))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("no fundamentals for %s", symbol)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	var fundamentals domain.Fundamentals
	if err := json.NewDecoder(resp.Body).Decode(&fundamentals); err != nil {
		return nil, fmt.Errorf("failed to parse provider response: %w", err)
	}
	fundamentals.Symbol = symbol
	return &fundamentals, nil
}

func (c *Client) freshFromStore(symbol string) ([]domain.Candle, bool) {
	if c.store == nil {
		return nil, false
	}
	latest, err := c.store.LatestTime(symbol)
	if err != nil || latest.IsZero() || time.Since(latest) > freshFor {
		return nil, false
	}
	return c.staleFromStore(symbol)
}

// staleFromStore returns whatever candles are cached, regardless of
// age. Stale data beats no data when the provider is down.
func (c *Client) staleFromStore(symbol string) ([]domain.Candle, bool) {
	if c.store == nil {
		return nil, false
	}
	candles, err := c.store.Candles(symbol, 400)
	if err != nil || len(candles) == 0 {
		return nil, false
	}
	return candles, true
}
