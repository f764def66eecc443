package advisor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/finobai/finobai/internal/domain"
	"github.com/finobai/finobai/internal/modules/stocks"
	"github.com/finobai/finobai/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(serverURL string) *Client {
	return NewClient(serverURL, "test-key", 5*time.Second, logger.New(logger.Config{Level: "error"}))
}

func sampleRequest() stocks.NarrativeRequest {
	return stocks.NarrativeRequest{
		Symbol: "THYAO",
		Price:  280,
		Signal: domain.SignalBuy,
		Trend:  domain.TrendBullish,
	}
}

func TestRecommendParsesVerdict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/recommendations", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req stocks.NarrativeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "THYAO", req.Symbol)

		_ = json.NewEncoder(w).Encode(stocks.NarrativeResponse{
			Recommendation: domain.Buy,
			Confidence:     78,
			Rationale:      "uptrend with cheap valuation",
		})
	}))
	defer server.Close()

	resp, err := newTestClient(server.URL).Recommend(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, domain.Buy, resp.Recommendation)
	assert.Equal(t, 78.0, resp.Confidence)
}

func TestRecommendRejectsBadPayloads(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"not json", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("I think you should buy"))
		}},
		{"unknown recommendation", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"recommendation": "MOON", "confidence": 99,
			})
		}},
		{"confidence out of range", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"recommendation": "BUY", "confidence": 140,
			})
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(tc.handler)
			defer server.Close()

			_, err := newTestClient(server.URL).Recommend(context.Background(), sampleRequest())
			assert.Error(t, err)
		})
	}
}

func TestRecommendUnreachableServer(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "", time.Second, logger.New(logger.Config{Level: "error"}))
	_, err := client.Recommend(context.Background(), sampleRequest())
	assert.Error(t, err)
}
