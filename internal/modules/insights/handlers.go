package insights

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/finobai/finobai/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handlers contains HTTP handlers for summaries, insights and budgets
type Handlers struct {
	service *Service
	log     zerolog.Logger
}

// NewHandlers creates a new insights handlers instance
func NewHandlers(service *Service, log zerolog.Logger) *Handlers {
	return &Handlers{
		service: service,
		log:     log.With().Str("component", "insights_handlers").Logger(),
	}
}

// RegisterRoutes mounts insights routes on the router
func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Get("/api/expenses/summary", h.Summary)
	r.Get("/api/expenses/budgets", h.ListBudgets)
	r.Put("/api/expenses/budgets", h.SetBudget)
	r.Delete("/api/expenses/budgets/{category}", h.DeleteBudget)
}

// Summary handles GET /api/expenses/summary?year=&month=
// Defaults to the current month.
func (h *Handlers) Summary(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	year := now.Year()
	month := now.Month()

	if v := r.URL.Query().Get("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "Invalid year", http.StatusBadRequest)
			return
		}
		year = parsed
	}
	if v := r.URL.Query().Get("month"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > 12 {
			http.Error(w, "Invalid month", http.StatusBadRequest)
			return
		}
		month = time.Month(parsed)
	}

	report, err := h.service.Report(year, month)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to build monthly report")
		http.Error(w, "Failed to build monthly report", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(report)
}

// ListBudgets handles GET /api/expenses/budgets
func (h *Handlers) ListBudgets(w http.ResponseWriter, r *http.Request) {
	budgets, err := h.service.Budgets().List()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list budgets")
		http.Error(w, "Failed to list budgets", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"budgets": budgets})
}

// SetBudget handles PUT /api/expenses/budgets
func (h *Handlers) SetBudget(w http.ResponseWriter, r *http.Request) {
	var budget Budget
	if err := json.NewDecoder(r.Body).Decode(&budget); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.Budgets().Set(budget); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(budget)
}

// DeleteBudget handles DELETE /api/expenses/budgets/{category}
func (h *Handlers) DeleteBudget(w http.ResponseWriter, r *http.Request) {
	category := domain.ExpenseCategory(chi.URLParam(r, "category"))
	if !category.Valid() {
		http.Error(w, "Unknown category", http.StatusBadRequest)
		return
	}

	if err := h.service.Budgets().Delete(category); err != nil {
		h.log.Error().Err(err).Msg("Failed to delete budget")
		http.Error(w, "Failed to delete budget", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
