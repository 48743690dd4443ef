package core

import "time"

type JobStatus string

const (
	JobPending   JobStatus = "PENDING"
	JobRunning   JobStatus = "RUNNING"
	JobSucceeded JobStatus = "SUCCEEDED"
	JobFailed    JobStatus = "FAILED"
	JobTimedOut  JobStatus = "TIMED_OUT"
)

// Job is one refresh request from acceptance to terminal state. Jobs
// live only in process memory; nothing survives a restart.
type Job struct {
	JobID       string     `json:"job_id"`
	WorkspaceID string     `json:"workspace_id"`
	Lakehouse   string     `json:"lakehouse"`
	EndpointID  string     `json:"endpoint_id,omitempty"`
	Status      JobStatus  `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	EndedAt     *time.Time `json:"ended_at,omitempty"`
	Error       *AppError  `json:"error,omitempty"`
}

// IsTerminal returns true if the job is in a final state.
func (j *Job) IsTerminal() bool {
	switch j.Status {
	case JobSucceeded, JobFailed, JobTimedOut:
		return true
	}
	return false
}
