// Package handler implements the HTTP listener for the status bot.
// All handlers are methods on Server. Methods are split into endpoint files
// (status.go, update.go, history.go, health.go) but share the same Server
// struct so they can access its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/status-bot/internal/domain"
	"github.com/pkordes/status-bot/internal/integration"
	"github.com/pkordes/status-bot/internal/service"
)

// AdHocPoster publishes caller-specified statuses.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without any HTTP collaborators.
type AdHocPoster interface {
	Post(ctx context.Context, req service.AdHocRequest) (domain.ComputedStatus, error)
}

// Updater runs integrations by name.
type Updater interface {
	RunAll(ctx context.Context, names []string, opts integration.Options) ([]integration.Result, error)
}

// HistoryLister reads recorded decisions.
type HistoryLister interface {
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.StatusUpdate, int64, error)
	Get(ctx context.Context, id uuid.UUID) (domain.StatusUpdate, error)
}

// Server holds the dependencies of every endpoint.
type Server struct {
	adhoc        AdHocPoster
	updater      Updater
	history      HistoryLister
	integrations []string
}

// NewServer constructs the Server. integrations is the ordered list of
// integration names POST /update runs.
func NewServer(adhoc AdHocPoster, updater Updater, history HistoryLister, integrations []string) *Server {
	return &Server{adhoc: adhoc, updater: updater, history: history, integrations: integrations}
}

// Routes returns the listener's endpoints. Cross-cutting middleware (logging,
// CORS, rate limiting) is applied by the caller.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", s.GetHealth)
	r.Post("/status", s.PostStatus)
	r.Post("/update", s.PostUpdate)
	r.Get("/history", s.ListHistory)
	r.Get("/history/{id}", s.GetHistoryEntry)
	r.Get("/openapi.yaml", s.GetOpenAPI)
	return r
}
