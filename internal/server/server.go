// Package server provides the HTTP server and routing for Finobai.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/finobai/finobai/internal/config"
	"github.com/finobai/finobai/internal/database"
	"github.com/finobai/finobai/internal/events"
	"github.com/finobai/finobai/internal/modules/categorizer"
	"github.com/finobai/finobai/internal/modules/goals"
	"github.com/finobai/finobai/internal/modules/insights"
	"github.com/finobai/finobai/internal/modules/statements"
	"github.com/finobai/finobai/internal/modules/stocks"
)

// Config holds server configuration
type Config struct {
	Log       zerolog.Logger
	Cfg       *config.Config
	FinanceDB *database.DB
	CacheDB   *database.DB
	HistoryDB *database.DB
	Bus       *events.Bus

	Categorizer *categorizer.Handlers
	Statements  *statements.Handlers
	Insights    *insights.Handlers
	Goals       *goals.Handlers
	Stocks      *stocks.Handlers
}

// Server represents the HTTP server
type Server struct {
	router         *chi.Mux
	server         *http.Server
	log            zerolog.Logger
	cfg            *config.Config
	systemHandlers *SystemHandlers
	eventsHandler  *EventsHandler
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	s := &Server{
		router: chi.NewRouter(),
		log:    cfg.Log.With().Str("component", "server").Logger(),
		cfg:    cfg.Cfg,
		systemHandlers: NewSystemHandlers(
			cfg.Log,
			cfg.Cfg,
			cfg.FinanceDB,
			cfg.CacheDB,
			cfg.HistoryDB,
			cfg.Bus,
		),
		eventsHandler: NewEventsHandler(cfg.Bus, cfg.Log),
	}

	s.setupMiddleware(cfg.Cfg.DevMode)
	s.setupRoutes(cfg)

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware(devMode bool) {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Timeout(60 * time.Second))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(cfg Config) {
	s.router.Get("/health", s.systemHandlers.HandleHealth)

	cfg.Categorizer.RegisterRoutes(s.router)
	cfg.Statements.RegisterRoutes(s.router)
	cfg.Insights.RegisterRoutes(s.router)
	cfg.Goals.RegisterRoutes(s.router)
	cfg.Stocks.RegisterRoutes(s.router)

	s.router.Route("/api/system", func(r chi.Router) {
		r.Get("/health", s.systemHandlers.HandleHealth)
		r.Get("/info", s.systemHandlers.HandleInfo)
		r.Get("/database/stats", s.systemHandlers.HandleDatabaseStats)
	})

	s.router.Get("/api/events/ws", s.eventsHandler.HandleWebSocket)
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Int("port", s.cfg.Port).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}
