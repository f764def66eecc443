// Package advisor calls the external narrative generator service.
// The stocks engine treats any failure here as a signal to use its
// deterministic fallback, so this client parses strictly and never
// invents a verdict.
package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/finobai/finobai/internal/domain"
	"github.com/finobai/finobai/internal/modules/stocks"
	"github.com/rs/zerolog"
)

// Client talks to the narrative generator endpoint. Implements the
// stocks engine's NarrativeAdvisor interface.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
	log     zerolog.Logger
}

// NewClient creates a new advisor client
func NewClient(baseURL, apiKey string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
		log:     log.With().Str("client", "advisor").Logger(),
	}
}

// Recommend posts the scored context and parses the structured verdict.
func (c *Client) Recommend(ctx context.Context, req stocks.NarrativeRequest) (*stocks.NarrativeResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/recommendations", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("advisor request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("advisor returned status %d", resp.StatusCode)
	}

	var parsed stocks.NarrativeResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to parse advisor response: %w", err)
	}

	if !knownRecommendation(parsed.Recommendation) {
		return nil, fmt.Errorf("advisor returned unknown recommendation %q", parsed.Recommendation)
	}
	if parsed.Confidence < 0 || parsed.Confidence > 100 {
		return nil, fmt.Errorf("advisor confidence %.1f out of range", parsed.Confidence)
	}

	c.log.Debug().
		Str("symbol", req.Symbol).
		Str("recommendation", string(parsed.Recommendation)).
		Msg("Advisor verdict")
	return &parsed, nil
}

func knownRecommendation(rec domain.Recommendation) bool {
	switch rec {
	case domain.StrongBuy, domain.Buy, domain.Hold, domain.Sell, domain.StrongSell:
		return true
	}
	return false
}
