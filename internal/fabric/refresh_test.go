package fabric

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/lzjever/fabric-mdr/internal/core"
)

const refreshPath = "POST /workspaces/ws1/sqlEndpoints/ep1/refreshMetadata"

func newTestOrchestrator(client *Client) *Orchestrator {
	return NewOrchestrator(client, 5*time.Millisecond, zap.NewNop())
}

func TestRefreshSynchronousCompletion(t *testing.T) {
	client, mux, _ := testServer(t)
	polls := 0
	mux.HandleFunc(refreshPath, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("GET /operations/", func(w http.ResponseWriter, r *http.Request) {
		polls++
	})

	orch := newTestOrchestrator(client)
	if err := orch.RefreshAndWait(context.Background(), "ws1", "ep1", time.Minute); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if polls != 0 {
		t.Errorf("expected no polling on synchronous completion, got %d polls", polls)
	}
}

func TestRefreshAsyncPollsUntilDone(t *testing.T) {
	client, mux, srv := testServer(t)
	polls := 0
	mux.HandleFunc(refreshPath, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Location", srv.URL+"/operations/op1")
		w.WriteHeader(http.StatusAccepted)
	})
	mux.HandleFunc("GET /operations/op1", func(w http.ResponseWriter, r *http.Request) {
		polls++
		if polls < 2 {
			w.WriteHeader(http.StatusAccepted)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	orch := newTestOrchestrator(client)
	if err := orch.RefreshAndWait(context.Background(), "ws1", "ep1", time.Minute); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if polls != 2 {
		t.Errorf("expected 2 polls (one pending, one done), got %d", polls)
	}
}

func TestRefreshAcceptedWithoutLocationAssumesCompletion(t *testing.T) {
	client, mux, _ := testServer(t)
	mux.HandleFunc(refreshPath, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	orch := newTestOrchestrator(client)
	if err := orch.RefreshAndWait(context.Background(), "ws1", "ep1", time.Minute); err != nil {
		t.Fatalf("expected optimistic success, got %v", err)
	}
}

func TestRefreshTriggerFailed(t *testing.T) {
	client, mux, _ := testServer(t)
	mux.HandleFunc(refreshPath, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "endpoint is busy", http.StatusConflict)
	})

	orch := newTestOrchestrator(client)
	err := orch.RefreshAndWait(context.Background(), "ws1", "ep1", time.Minute)
	if code := appErrCode(t, err); code != core.ErrTriggerFailed {
		t.Errorf("expected %s, got %s", core.ErrTriggerFailed, code)
	}
	if !strings.Contains(err.Error(), "409") || !strings.Contains(err.Error(), "endpoint is busy") {
		t.Errorf("error should carry status code and body, got: %v", err)
	}
}

func TestRefreshPollFailed(t *testing.T) {
	client, mux, srv := testServer(t)
	mux.HandleFunc(refreshPath, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Location", srv.URL+"/operations/op1")
		w.WriteHeader(http.StatusAccepted)
	})
	mux.HandleFunc("GET /operations/op1", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "operation store unavailable", http.StatusInternalServerError)
	})

	orch := newTestOrchestrator(client)
	err := orch.RefreshAndWait(context.Background(), "ws1", "ep1", time.Minute)
	if code := appErrCode(t, err); code != core.ErrPollFailed {
		t.Errorf("expected %s, got %s", core.ErrPollFailed, code)
	}
	if !strings.Contains(err.Error(), "500") || !strings.Contains(err.Error(), "operation store unavailable") {
		t.Errorf("error should carry status code and body, got: %v", err)
	}
}

func TestRefreshTimesOutWhilePending(t *testing.T) {
	client, mux, srv := testServer(t)
	mux.HandleFunc(refreshPath, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Location", srv.URL+"/operations/op1")
		w.WriteHeader(http.StatusAccepted)
	})
	mux.HandleFunc("GET /operations/op1", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	orch := newTestOrchestrator(client)
	err := orch.RefreshAndWait(context.Background(), "ws1", "ep1", 30*time.Millisecond)
	if code := appErrCode(t, err); code != core.ErrRefreshTimeout {
		t.Errorf("expected %s, got %s", core.ErrRefreshTimeout, code)
	}
}

func TestRefreshHonorsContextCancellation(t *testing.T) {
	client, mux, srv := testServer(t)
	mux.HandleFunc(refreshPath, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Location", srv.URL+"/operations/op1")
		w.WriteHeader(http.StatusAccepted)
	})
	mux.HandleFunc("GET /operations/op1", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	orch := NewOrchestrator(client, time.Second, zap.NewNop())
	err := orch.RefreshAndWait(ctx, "ws1", "ep1", time.Minute)
	if err == nil {
		t.Fatal("expected error from canceled context")
	}
}
