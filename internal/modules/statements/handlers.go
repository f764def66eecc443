package statements

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const maxUploadBytes = 5 << 20 // 5MB

// Handlers contains HTTP handlers for statement upload and retrieval
type Handlers struct {
	service *Service
	log     zerolog.Logger
}

// NewHandlers creates a new statements handlers instance
func NewHandlers(service *Service, log zerolog.Logger) *Handlers {
	return &Handlers{
		service: service,
		log:     log.With().Str("component", "statement_handlers").Logger(),
	}
}

// RegisterRoutes mounts statement routes on the router
func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Post("/api/statements", h.Upload)
	r.Get("/api/statements", h.List)
	r.Get("/api/statements/{id}", h.Get)
}

// Upload handles POST /api/statements (multipart file upload)
func (h *Handlers) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "Invalid multipart upload", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Missing statement file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	analysis, err := h.service.AnalyzeUpload(header.Filename, file)
	if err != nil {
		if errors.Is(err, ErrUnreadable) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		h.log.Error().Err(err).Str("filename", header.Filename).Msg("Statement analysis failed")
		http.Error(w, "Statement analysis failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(analysis)
}

// List handles GET /api/statements
func (h *Handlers) List(w http.ResponseWriter, r *http.Request) {
	statements, err := h.service.List()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list statements")
		http.Error(w, "Failed to list statements", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"statements": statements})
}

// Get handles GET /api/statements/{id}
func (h *Handlers) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	stmt, txns, err := h.service.Get(id)
	if err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("Failed to get statement")
		http.Error(w, "Failed to get statement", http.StatusInternalServerError)
		return
	}
	if stmt == nil {
		http.Error(w, "Statement not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"statement":    stmt,
		"transactions": txns,
	})
}
