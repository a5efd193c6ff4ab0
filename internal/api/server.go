// Package api is the HTTP surface of the context store service.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/google/uuid"

	"github.com/contextbridge/bridge/internal/events"
	"github.com/contextbridge/bridge/internal/llm"
	"github.com/contextbridge/bridge/internal/store"
)

const (
	serviceName    = "context-bridge"
	serviceVersion = "1.0.0"
)

// Store is the persistence surface the handlers need.
type Store interface {
	CreateContext(ctx context.Context, nc store.NewContext) (store.ContextRecord, error)
	GetContext(ctx context.Context, id uuid.UUID) (*store.ContextRecord, error)
	ListContexts(ctx context.Context, platform string, limit, offset int) ([]store.ListItem, int, error)
	DeleteContext(ctx context.Context, id uuid.UUID) (bool, error)
	CleanupExpired(ctx context.Context) (int, error)
	RecordUsage(ctx context.Context, u store.Usage) error
	Ping(ctx context.Context) error
}

// Summarizer generates model-backed summaries; *llm.Client satisfies it.
type Summarizer interface {
	Available() bool
	SummarizeConversation(ctx context.Context, turns []llm.Turn, maxTokens int) (llm.Summary, error)
}

// Config carries the server's runtime settings.
type Config struct {
	Port              int
	CORSOrigins       []string
	RateLimitRequests int
	RateLimitWindow   time.Duration
	Retention         time.Duration
	SummaryMaxTokens  int
	MaxBodyBytes      int64
}

type Server struct {
	router     *chi.Mux
	cfg        Config
	db         Store
	summarizer Summarizer
	events     *events.Publisher
}

// NewServer wires routes and middleware. The events publisher may be nil,
// in which case lifecycle notifications are skipped.
func NewServer(cfg Config, db Store, summarizer Summarizer, pub *events.Publisher) *Server {
	s := &Server{
		router:     chi.NewRouter(),
		cfg:        cfg,
		db:         db,
		summarizer: summarizer,
		events:     pub,
	}

	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))
	if cfg.RateLimitRequests > 0 {
		s.router.Use(httprate.LimitByIP(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}
	s.router.Use(s.recordUsage)

	s.router.Get("/", s.root)
	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.health)
		r.Post("/contexts", s.createContext)
		r.Get("/contexts", s.listContexts)
		r.Get("/contexts/{id}", s.getContext)
		r.Delete("/contexts/{id}", s.deleteContext)
		r.Post("/summarize", s.summarize)
	})

	return s
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	slog.Info("API server starting", "addr", addr)
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) root(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"name":    serviceName,
		"version": serviceVersion,
		"status":  "running",
		"health":  "/api/v1/health",
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	database := "connected"
	status := "healthy"
	if err := s.db.Ping(r.Context()); err != nil {
		database = fmt.Sprintf("error: %v", err)
		status = "unhealthy"
	}

	anthropic := "not_configured"
	if s.summarizer != nil && s.summarizer.Available() {
		anthropic = "configured"
	}

	respondJSON(w, http.StatusOK, HealthResponse{
		Status:    status,
		Database:  database,
		Anthropic: anthropic,
		Timestamp: time.Now().UTC(),
	})
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, detail string) {
	respondJSON(w, status, ErrorResponse{Detail: detail, StatusCode: status})
}
