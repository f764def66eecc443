package stocks

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/finobai/finobai/internal/domain"
	"github.com/finobai/finobai/internal/modules/technical"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handlers contains HTTP handlers for stock analysis
type Handlers struct {
	service *Service
	log     zerolog.Logger
}

// NewHandlers creates a new stocks handlers instance
func NewHandlers(service *Service, log zerolog.Logger) *Handlers {
	return &Handlers{
		service: service,
		log:     log.With().Str("component", "stock_handlers").Logger(),
	}
}

// RegisterRoutes mounts stock routes on the router
func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Get("/api/stocks/{symbol}/analysis", h.Analyze)
}

// Analyze handles GET /api/stocks/{symbol}/analysis
//
// Optional query parameters risk_tolerance, investment_goal and
// monthly_budget enable the suitability section.
func (h *Handlers) Analyze(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(chi.URLParam(r, "symbol"))
	if symbol == "" {
		http.Error(w, "Symbol is required", http.StatusBadRequest)
		return
	}

	profile, err := profileFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	analysis, err := h.service.Analyze(r.Context(), symbol, profile, nil)
	if err != nil {
		if errors.Is(err, technical.ErrNoData) {
			http.Error(w, "No price history for symbol", http.StatusNotFound)
			return
		}
		h.log.Error().Err(err).Str("symbol", symbol).Msg("Stock analysis failed")
		http.Error(w, "Market data unavailable", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(analysis)
}

func profileFromQuery(r *http.Request) (*domain.UserRiskProfile, error) {
	tolerance := r.URL.Query().Get("risk_tolerance")
	if tolerance == "" {
		return nil, nil
	}

	profile := &domain.UserRiskProfile{
		RiskTolerance:   domain.RiskTolerance(strings.ToUpper(tolerance)),
		Goal:            domain.GoalBalancedGrowth,
		HorizonMonths:   12,
		ExperienceYears: 1,
	}
	switch profile.RiskTolerance {
	case domain.RiskConservative, domain.RiskModerate,
		domain.RiskAggressive, domain.RiskVeryAggressive:
	default:
		return nil, errors.New("unknown risk_tolerance")
	}

	if goal := r.URL.Query().Get("investment_goal"); goal != "" {
		profile.Goal = domain.InvestmentGoal(strings.ToUpper(goal))
		switch profile.Goal {
		case domain.GoalCapitalPreservation, domain.GoalBalancedGrowth,
			domain.GoalAggressiveGrowth, domain.GoalIncome:
		default:
			return nil, errors.New("unknown investment_goal")
		}
	}
	if budget := r.URL.Query().Get("monthly_budget"); budget != "" {
		value, err := strconv.ParseFloat(budget, 64)
		if err != nil || value < 0 {
			return nil, errors.New("monthly_budget must be a non-negative number")
		}
		profile.MonthlyBudget = value
	}
	if horizon := r.URL.Query().Get("investment_horizon_months"); horizon != "" {
		value, err := strconv.Atoi(horizon)
		if err != nil || value < 0 {
			return nil, errors.New("investment_horizon_months must be a non-negative integer")
		}
		profile.HorizonMonths = value
	}
	if experience := r.URL.Query().Get("experience_years"); experience != "" {
		value, err := strconv.Atoi(experience)
		if err != nil || value < 0 {
			return nil, errors.New("experience_years must be a non-negative integer")
		}
		profile.ExperienceYears = value
	}
	return profile, nil
}
