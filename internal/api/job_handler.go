package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lzjever/fabric-mdr/internal/core"
)

type JobListResponse struct {
	Jobs []core.Job `json:"jobs"`
}

// ListJobs returns all jobs known to this process, newest first.
func (a *API) ListJobs(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, JobListResponse{Jobs: a.registry.List()})
}

// GetJob returns job details.
func (a *API) GetJob(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "job_id")
	job, ok := a.registry.Get(jobID)
	if !ok {
		WriteError(w, core.NewAppError(core.ErrNotFound, "job "+jobID+" not found"))
		return
	}
	WriteJSON(w, http.StatusOK, job)
}
