package categorizer

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handlers contains HTTP handlers for expense categorization
type Handlers struct {
	service *Service
	log     zerolog.Logger
}

// NewHandlers creates a new categorizer handlers instance
func NewHandlers(service *Service, log zerolog.Logger) *Handlers {
	return &Handlers{
		service: service,
		log:     log.With().Str("component", "categorizer_handlers").Logger(),
	}
}

// RegisterRoutes mounts categorizer routes on the router
func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Post("/api/expenses/analyze", h.Analyze)
	r.Get("/api/expenses/categories", h.Categories)
}

// Analyze handles POST /api/expenses/analyze
func (h *Handlers) Analyze(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Description string    `json:"description"`
		Amount      float64   `json:"amount"`
		Batch       []Request `json:"batch,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if len(req.Batch) > 0 {
		results := h.service.CategorizeBatch(req.Batch)
		out := make([]map[string]interface{}, len(results))
		for i, res := range results {
			item := map[string]interface{}{}
			if res.Err != nil {
				item["error"] = res.Err.Error()
			} else {
				item["assignment"] = res.Assignment
			}
			out[i] = item
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"results": out})
		return
	}

	assignment, err := h.service.Categorize(req.Description, req.Amount)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.log.Error().Err(err).Msg("Categorization failed")
		http.Error(w, "Categorization failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(assignment)
}

// Categories handles GET /api/expenses/categories
func (h *Handlers) Categories(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"categories": CategoryCatalog(),
	})
}
