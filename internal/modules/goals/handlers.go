package goals

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handlers contains HTTP handlers for goal management and analysis
type Handlers struct {
	service *Service
	log     zerolog.Logger
}

// NewHandlers creates a new goals handlers instance
func NewHandlers(service *Service, log zerolog.Logger) *Handlers {
	return &Handlers{
		service: service,
		log:     log.With().Str("component", "goal_handlers").Logger(),
	}
}

// RegisterRoutes mounts goal routes on the router
func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Route("/api/goals", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/plan", h.Plan)
		r.Get("/compatibility", h.Compatibility)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.Get)
			r.Put("/", h.Update)
			r.Delete("/", h.Delete)
			r.Get("/analysis", h.Analyze)
			r.Post("/contributions", h.Contribute)
			r.Get("/contributions", h.Contributions)
		})
	})
}

type goalRequest struct {
	Name                string   `json:"name"`
	Category            Category `json:"category"`
	TargetAmount        float64  `json:"target_amount"`
	CurrentAmount       float64  `json:"current_amount"`
	MonthlyContribution float64  `json:"monthly_contribution"`
	Priority            int      `json:"priority"`
	TargetDate          string   `json:"target_date"` // YYYY-MM-DD
}

func (req *goalRequest) validate() (*FinancialGoal, error) {
	if req.Name == "" {
		return nil, errors.New("name is required")
	}
	if req.TargetAmount <= 0 {
		return nil, errors.New("target amount must be positive")
	}
	if req.CurrentAmount < 0 {
		return nil, errors.New("current amount cannot be negative")
	}
	category := req.Category
	if category == "" {
		category = GoalCustom
	}
	if !category.Valid() {
		return nil, errors.New("unknown goal category")
	}

	targetDate, err := time.Parse("2006-01-02", req.TargetDate)
	if err != nil {
		return nil, errors.New("target_date must be YYYY-MM-DD")
	}

	priority := req.Priority
	if priority <= 0 {
		priority = 3
	}

	return &FinancialGoal{
		Name:                req.Name,
		Category:            category,
		TargetAmount:        req.TargetAmount,
		CurrentAmount:       req.CurrentAmount,
		MonthlyContribution: req.MonthlyContribution,
		Priority:            priority,
		TargetDate:          targetDate,
	}, nil
}

// Create handles POST /api/goals
func (h *Handlers) Create(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	goal, err := req.validate()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.service.Repo().Create(goal); err != nil {
		h.log.Error().Err(err).Msg("Failed to create goal")
		http.Error(w, "Failed to create goal", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(goal)
}

// List handles GET /api/goals
func (h *Handlers) List(w http.ResponseWriter, r *http.Request) {
	goals, err := h.service.Repo().List()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list goals")
		http.Error(w, "Failed to list goals", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"goals": goals})
}

// Get handles GET /api/goals/{id}
func (h *Handlers) Get(w http.ResponseWriter, r *http.Request) {
	goal, err := h.service.Repo().Get(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "Goal not found", http.StatusNotFound)
			return
		}
		h.log.Error().Err(err).Msg("Failed to get goal")
		http.Error(w, "Failed to get goal", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(goal)
}

// Update handles PUT /api/goals/{id}
func (h *Handlers) Update(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	goal, err := req.validate()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	goal.ID = chi.URLParam(r, "id")

	if err := h.service.Repo().Update(goal); err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "Goal not found", http.StatusNotFound)
			return
		}
		h.log.Error().Err(err).Msg("Failed to update goal")
		http.Error(w, "Failed to update goal", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(goal)
}

// Delete handles DELETE /api/goals/{id}
func (h *Handlers) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Repo().Delete(chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "Goal not found", http.StatusNotFound)
			return
		}
		h.log.Error().Err(err).Msg("Failed to delete goal")
		http.Error(w, "Failed to delete goal", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Contribute handles POST /api/goals/{id}/contributions
func (h *Handlers) Contribute(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount float64 `json:"amount"`
		Note   string  `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Amount <= 0 {
		http.Error(w, "Amount must be positive", http.StatusBadRequest)
		return
	}

	goal, contribution, err := h.service.Contribute(chi.URLParam(r, "id"), req.Amount, req.Note)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "Goal not found", http.StatusNotFound)
			return
		}
		h.log.Error().Err(err).Msg("Failed to apply contribution")
		http.Error(w, "Failed to apply contribution", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"goal":         goal,
		"contribution": contribution,
	})
}

// Contributions handles GET /api/goals/{id}/contributions
func (h *Handlers) Contributions(w http.ResponseWriter, r *http.Request) {
	contributions, err := h.service.Repo().Contributions(chi.URLParam(r, "id"))
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list contributions")
		http.Error(w, "Failed to list contributions", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"contributions": contributions})
}

// Analyze handles GET /api/goals/{id}/analysis
func (h *Handlers) Analyze(w http.ResponseWriter, r *http.Request) {
	var profile *Profile
	if ageStr := r.URL.Query().Get("age"); ageStr != "" || r.URL.Query().Get("risk_tolerance") != "" {
		p := DefaultProfile()
		if ageStr != "" {
			if age, err := strconv.Atoi(ageStr); err == nil && age > 0 {
				p.Age = age
			}
		}
		if rt := r.URL.Query().Get("risk_tolerance"); rt != "" {
			p.RiskTolerance = rt
		}
		profile = &p
	}

	analysis, err := h.service.Analyze(chi.URLParam(r, "id"), profile)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "Goal not found", http.StatusNotFound)
			return
		}
		h.log.Error().Err(err).Msg("Goal analysis failed")
		http.Error(w, "Goal analysis failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(analysis)
}

// Plan handles GET /api/goals/plan
func (h *Handlers) Plan(w http.ResponseWriter, r *http.Request) {
	plan, err := h.service.Plan()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to build savings plan")
		http.Error(w, "Failed to build savings plan", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(plan)
}

// Compatibility handles GET /api/goals/compatibility
func (h *Handlers) Compatibility(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.Compatibility()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to build compatibility report")
		http.Error(w, "Failed to build compatibility report", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(report)
}
