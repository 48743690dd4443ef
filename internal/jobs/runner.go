package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/lzjever/fabric-mdr/internal/core"
	"github.com/lzjever/fabric-mdr/internal/fabric"
	"github.com/lzjever/fabric-mdr/internal/observability"
)

// Runner executes refresh jobs against the Fabric API: resolve the
// lakehouse to its SQL endpoint, trigger the refresh, wait for it.
type Runner struct {
	registry *Registry
	resolver *fabric.Resolver
	orch     *fabric.Orchestrator
	maxWait  time.Duration
	log      *zap.Logger
}

func NewRunner(registry *Registry, resolver *fabric.Resolver, orch *fabric.Orchestrator, maxWait time.Duration, log *zap.Logger) *Runner {
	if maxWait <= 0 {
		maxWait = fabric.DefaultMaxWait
	}
	return &Runner{
		registry: registry,
		resolver: resolver,
		orch:     orch,
		maxWait:  maxWait,
		log:      log,
	}
}

// Start launches the job in a background goroutine and returns
// immediately. Jobs outlive the HTTP request that created them, so the
// goroutine runs under its own deadline, not the request context.
func (r *Runner) Start(job core.Job) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), r.maxWait+time.Minute)
		defer cancel()
		r.run(ctx, job.JobID, job.WorkspaceID, job.Lakehouse)
	}()
}

func (r *Runner) run(ctx context.Context, jobID, workspaceID, lakehouse string) {
	log := observability.JobLogger(r.log, jobID, workspaceID, lakehouse)
	start := time.Now()

	r.registry.MarkRunning(jobID)
	log.Info("refresh job started")

	endpointID, err := r.resolver.Resolve(ctx, workspaceID, lakehouse)
	if err != nil {
		log.Error("endpoint resolution failed", zap.Error(err))
		r.registry.Complete(jobID, err)
		return
	}
	r.registry.SetEndpoint(jobID, endpointID)

	err = r.orch.RefreshAndWait(ctx, workspaceID, endpointID, r.maxWait)
	observability.RefreshDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		log.Error("refresh failed", zap.Error(err))
	} else {
		log.Info("refresh job finished", zap.Duration("duration", time.Since(start)))
	}
	r.registry.Complete(jobID, err)
}
