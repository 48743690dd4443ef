package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/lzjever/fabric-mdr/internal/api/middleware"
	"github.com/lzjever/fabric-mdr/internal/core"
)

// StartRefresh accepts a metadata-refresh request for a lakehouse and
// returns 202 with a job reference. Resolution and the refresh itself
// run in the background; poll the status_href for the outcome.
func (a *API) StartRefresh(w http.ResponseWriter, r *http.Request) {
	workspaceID := chi.URLParam(r, "workspace_id")
	lakehouse := chi.URLParam(r, "lakehouse")
	if workspaceID == "" || lakehouse == "" {
		WriteError(w, core.NewAppError(core.ErrBadRequest, "workspace_id and lakehouse are required"))
		return
	}

	job := a.registry.Create(workspaceID, lakehouse)
	a.runner.Start(job)

	a.log.Info("refresh job accepted",
		zap.String("job_id", job.JobID),
		zap.String("workspace_id", workspaceID),
		zap.String("lakehouse", lakehouse),
		zap.String("request_id", middleware.GetRequestID(r)),
	)
	WriteAccepted(w, job.JobID, "/v1/jobs/")
}
