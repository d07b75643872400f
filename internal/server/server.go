package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/claude/liftlog/internal/analytics"
	"github.com/claude/liftlog/internal/engine"
	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/storage"
	"github.com/go-chi/chi/v5"
)

// PlanStore is the plan persistence the HTTP layer needs. Plans are
// immutable, so there is no update operation.
type PlanStore interface {
	InsertPlan(ctx context.Context, plan models.TrainingPlan) error
	ListPlans(ctx context.Context) ([]models.TrainingPlan, error)
	GetPlan(ctx context.Context, planID string) (*models.TrainingPlan, error)
	DeletePlan(ctx context.Context, planID string) error
}

// Compile-time checks: *storage.DB backs both store boundaries.
var (
	_ PlanStore           = (*storage.DB)(nil)
	_ engine.HistoryStore = (*storage.DB)(nil)
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	plans   PlanStore
	history engine.HistoryStore
	manager *engine.Manager
	stats   *analytics.Service
	log     *slog.Logger
	apiKey  string
	router  chi.Router
}

// New creates a new Server with all routes configured.
func New(plans PlanStore, history engine.HistoryStore, manager *engine.Manager, stats *analytics.Service, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		plans:   plans,
		history: history,
		manager: manager,
		stats:   stats,
		log:     log,
		apiKey:  apiKey,
		router:  chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	// Bulk ingest of finished workouts (API key required)
	s.router.Route("/api/v1/ingest", func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Post("/", s.handleIngestHistory)
	})

	// Plan catalog (no auth — tsnet handles access)
	s.router.Get("/api/v1/plans", s.handleListPlans)
	s.router.Post("/api/v1/plans", s.handleCreatePlan)
	s.router.Get("/api/v1/plans/{id}", s.handleGetPlan)
	s.router.Delete("/api/v1/plans/{id}", s.handleDeletePlan)

	// Live session lifecycle
	s.router.Post("/api/v1/session", s.handleStartSession)
	s.router.Get("/api/v1/session", s.handleCurrentSession)
	s.router.Delete("/api/v1/session", s.handleCancelSession)
	s.router.Post("/api/v1/session/finish", s.handleFinishSession)

	// In-session set mutations
	s.router.Post("/api/v1/session/sets", s.handleUpdateSet)
	s.router.Post("/api/v1/session/sets/toggle", s.handleToggleSet)
	s.router.Post("/api/v1/session/sets/add", s.handleAddSet)
	s.router.Post("/api/v1/session/sets/remove", s.handleRemoveSet)

	// History and analytics
	s.router.Get("/api/v1/history", s.handleHistory)
	s.router.Get("/api/v1/analytics/progression", s.handleProgression)
	s.router.Get("/api/v1/analytics/weekly", s.handleWeeklyActivity)
	s.router.Get("/api/v1/analytics/summary", s.handleSummary)
}
