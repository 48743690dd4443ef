package jobs

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/lzjever/fabric-mdr/internal/core"
	"github.com/lzjever/fabric-mdr/internal/observability"
)

// Registry holds refresh jobs for the lifetime of the process. There
// is no persistence; a restart forgets all jobs, which is acceptable
// because the refresh itself is idempotent and re-triggerable.
type Registry struct {
	mu   sync.RWMutex
	jobs map[string]*core.Job
	log  *zap.Logger
}

func NewRegistry(log *zap.Logger) *Registry {
	return &Registry{jobs: make(map[string]*core.Job), log: log}
}

// Create registers a new pending job and returns a copy of it.
func (r *Registry) Create(workspaceID, lakehouse string) core.Job {
	job := &core.Job{
		JobID:       core.NewID(),
		WorkspaceID: workspaceID,
		Lakehouse:   lakehouse,
		Status:      core.JobPending,
		CreatedAt:   time.Now().UTC(),
	}
	r.mu.Lock()
	r.jobs[job.JobID] = job
	r.mu.Unlock()
	observability.ActiveJobs.Inc()
	return *job
}

// Get returns a copy of the job, if present.
func (r *Registry) Get(jobID string) (core.Job, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	job, ok := r.jobs[jobID]
	if !ok {
		return core.Job{}, false
	}
	return *job, true
}

// List returns copies of all jobs, newest first.
func (r *Registry) List() []core.Job {
	r.mu.RLock()
	out := make([]core.Job, 0, len(r.jobs))
	for _, job := range r.jobs {
		out = append(out, *job)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// MarkRunning transitions a pending job to RUNNING.
func (r *Registry) MarkRunning(jobID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[jobID]
	if !ok || job.Status != core.JobPending {
		return
	}
	now := time.Now().UTC()
	job.Status = core.JobRunning
	job.StartedAt = &now
}

// SetEndpoint records the resolved SQL endpoint id on the job.
func (r *Registry) SetEndpoint(jobID, endpointID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if job, ok := r.jobs[jobID]; ok {
		job.EndpointID = endpointID
	}
}

// Complete moves a job to its terminal state. A nil error means
// SUCCEEDED; a refresh-timeout error maps to TIMED_OUT, everything
// else to FAILED.
func (r *Registry) Complete(jobID string, jobErr error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[jobID]
	if !ok || job.IsTerminal() {
		return
	}
	now := time.Now().UTC()
	job.EndedAt = &now
	switch {
	case jobErr == nil:
		job.Status = core.JobSucceeded
	case core.CodeOf(jobErr) == core.ErrRefreshTimeout:
		job.Status = core.JobTimedOut
		job.Error = core.AsAppError(jobErr)
	default:
		job.Status = core.JobFailed
		job.Error = core.AsAppError(jobErr)
	}
	observability.ActiveJobs.Dec()
	observability.RefreshJobsTotal.WithLabelValues(string(job.Status)).Inc()
}

// Run sweeps terminal jobs older than retention every interval, until
// ctx is canceled.
func (r *Registry) Run(ctx context.Context, interval, retention time.Duration) {
	r.log.Info("job sweeper started",
		zap.Duration("interval", interval),
		zap.Duration("retention", retention))
	for {
		select {
		case <-ctx.Done():
			r.log.Info("job sweeper stopping")
			return
		case <-time.After(interval):
		}
		if n := r.sweep(time.Now().UTC().Add(-retention)); n > 0 {
			r.log.Info("terminal jobs swept", zap.Int("count", n))
		}
	}
}

func (r *Registry) sweep(cutoff time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, job := range r.jobs {
		if job.IsTerminal() && job.EndedAt != nil && job.EndedAt.Before(cutoff) {
			delete(r.jobs, id)
			n++
		}
	}
	if n > 0 {
		observability.JobsSweptTotal.Add(float64(n))
	}
	return n
}
