package jobs

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/lzjever/fabric-mdr/internal/core"
)

func TestCreateAndGet(t *testing.T) {
	reg := NewRegistry(zap.NewNop())
	job := reg.Create("ws1", "sales")

	if job.Status != core.JobPending {
		t.Errorf("expected PENDING, got %s", job.Status)
	}
	if job.JobID == "" {
		t.Error("expected a job id")
	}

	got, ok := reg.Get(job.JobID)
	if !ok {
		t.Fatal("job not found after create")
	}
	if got.WorkspaceID != "ws1" || got.Lakehouse != "sales" {
		t.Errorf("unexpected job contents: %+v", got)
	}

	// Get returns a copy; mutating it must not leak into the registry.
	got.Status = core.JobFailed
	again, _ := reg.Get(job.JobID)
	if again.Status != core.JobPending {
		t.Errorf("registry job mutated through a copy: %s", again.Status)
	}
}

func TestGetUnknownJob(t *testing.T) {
	reg := NewRegistry(zap.NewNop())
	if _, ok := reg.Get("nope"); ok {
		t.Error("expected miss for unknown job id")
	}
}

func TestCompleteStatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want core.JobStatus
	}{
		{"success", nil, core.JobSucceeded},
		{"timeout", core.NewAppError(core.ErrRefreshTimeout, "refresh timed out after 30m0s"), core.JobTimedOut},
		{"trigger failure", core.NewAppError(core.ErrTriggerFailed, "refresh failed to start: 500 - boom"), core.JobFailed},
		{"plain error", errors.New("network down"), core.JobFailed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reg := NewRegistry(zap.NewNop())
			job := reg.Create("ws1", "sales")
			reg.MarkRunning(job.JobID)
			reg.Complete(job.JobID, tc.err)

			got, _ := reg.Get(job.JobID)
			if got.Status != tc.want {
				t.Errorf("expected %s, got %s", tc.want, got.Status)
			}
			if got.EndedAt == nil {
				t.Error("expected EndedAt to be set")
			}
			if tc.err != nil && got.Error == nil {
				t.Error("expected error details on the job")
			}
		})
	}
}

func TestCompleteIsIdempotent(t *testing.T) {
	reg := NewRegistry(zap.NewNop())
	job := reg.Create("ws1", "sales")
	reg.Complete(job.JobID, nil)
	reg.Complete(job.JobID, errors.New("late failure"))

	got, _ := reg.Get(job.JobID)
	if got.Status != core.JobSucceeded {
		t.Errorf("terminal state overwritten: %s", got.Status)
	}
}

func TestSetEndpoint(t *testing.T) {
	reg := NewRegistry(zap.NewNop())
	job := reg.Create("ws1", "sales")
	reg.SetEndpoint(job.JobID, "ep1")

	got, _ := reg.Get(job.JobID)
	if got.EndpointID != "ep1" {
		t.Errorf("expected ep1, got %s", got.EndpointID)
	}
}

func TestListNewestFirst(t *testing.T) {
	reg := NewRegistry(zap.NewNop())
	first := reg.Create("ws1", "sales")
	time.Sleep(2 * time.Millisecond)
	second := reg.Create("ws1", "finance")

	jobs := reg.List()
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}
	if jobs[0].JobID != second.JobID || jobs[1].JobID != first.JobID {
		t.Error("expected newest job first")
	}
}

func TestSweepRemovesOnlyOldTerminalJobs(t *testing.T) {
	reg := NewRegistry(zap.NewNop())
	done := reg.Create("ws1", "sales")
	reg.Complete(done.JobID, nil)
	pending := reg.Create("ws1", "finance")

	n := reg.sweep(time.Now().UTC().Add(time.Second))
	if n != 1 {
		t.Errorf("expected 1 swept job, got %d", n)
	}
	if _, ok := reg.Get(done.JobID); ok {
		t.Error("terminal job should have been swept")
	}
	if _, ok := reg.Get(pending.JobID); !ok {
		t.Error("pending job must survive the sweep")
	}
}
