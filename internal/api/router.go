package api

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/lzjever/fabric-mdr/internal/api/middleware"
	"github.com/lzjever/fabric-mdr/internal/auth"
	"github.com/lzjever/fabric-mdr/internal/jobs"
)

type API struct {
	registry *jobs.Registry
	runner   *jobs.Runner
	tokens   auth.TokenProvider
	audience string
	log      *zap.Logger
}

func NewAPI(registry *jobs.Registry, runner *jobs.Runner, tokens auth.TokenProvider, audience string, log *zap.Logger) *API {
	return &API{
		registry: registry,
		runner:   runner,
		tokens:   tokens,
		audience: audience,
		log:      log,
	}
}

func (a *API) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Metrics)
	r.Use(middleware.Recoverer(a.log))
	r.Use(middleware.Logger)

	// Health endpoints
	r.Get("/healthz", a.HealthHandler)
	r.Get("/readyz", a.ReadyHandler)

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		r.Post("/workspaces/{workspace_id}/lakehouses/{lakehouse}/refresh", a.StartRefresh)

		r.Get("/jobs", a.ListJobs)
		r.Get("/jobs/{job_id}", a.GetJob)
	})

	return r
}
