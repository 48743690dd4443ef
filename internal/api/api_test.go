package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/lzjever/fabric-mdr/internal/auth"
	"github.com/lzjever/fabric-mdr/internal/core"
	"github.com/lzjever/fabric-mdr/internal/fabric"
	"github.com/lzjever/fabric-mdr/internal/jobs"
)

// Tests for the API surface against a stubbed Fabric upstream.

func newTestAPI(t *testing.T, upstream http.Handler) *API {
	t.Helper()
	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	log := zap.NewNop()
	tokens := auth.Static("test-token")
	client := fabric.NewClient(srv.URL, fabric.DefaultAudience, tokens, log)
	registry := jobs.NewRegistry(log)
	runner := jobs.NewRunner(
		registry,
		fabric.NewResolver(client, log),
		fabric.NewOrchestrator(client, time.Millisecond, log),
		time.Second,
		log,
	)
	return NewAPI(registry, runner, tokens, fabric.DefaultAudience, log)
}

func TestHealthHandler(t *testing.T) {
	api := &API{}
	r := chi.NewRouter()
	r.Get("/healthz", api.HealthHandler)

	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "OK" {
		t.Errorf("expected body OK, got %s", w.Body.String())
	}
}

func TestReadyHandler(t *testing.T) {
	api := &API{tokens: auth.Static("test-token"), audience: fabric.DefaultAudience}
	req := httptest.NewRequest("GET", "/readyz", nil)
	w := httptest.NewRecorder()

	api.ReadyHandler(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
}

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, core.NewAppError(core.ErrBadRequest, "test error"))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %s", err)
	}
	if resp.Code != "MDR_BAD_REQUEST" {
		t.Errorf("expected code MDR_BAD_REQUEST, got %s", resp.Code)
	}
}

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()
	data := map[string]string{"key": "value"}
	WriteJSON(w, http.StatusOK, data)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %s", err)
	}
	if resp["key"] != "value" {
		t.Errorf("expected key=value, got %v", resp)
	}
}

func TestWriteAccepted(t *testing.T) {
	w := httptest.NewRecorder()
	WriteAccepted(w, "job-123", "/v1/jobs/")

	if w.Code != http.StatusAccepted {
		t.Errorf("expected status 202, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/v1/jobs/job-123" {
		t.Errorf("expected Location header, got %q", loc)
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %s", err)
	}
	if resp["job_id"] != "job-123" {
		t.Errorf("expected job_id job-123, got %v", resp["job_id"])
	}
	if resp["status"] != "PENDING" {
		t.Errorf("expected status PENDING, got %v", resp["status"])
	}
	if resp["status_href"] != "/v1/jobs/job-123" {
		t.Errorf("expected status_href /v1/jobs/job-123, got %v", resp["status_href"])
	}
}

func TestStartRefreshAcceptsJob(t *testing.T) {
	api := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Empty workspace; the background job fails, acceptance must not.
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"value": []}`))
	}))
	r := api.Router()

	req := httptest.NewRequest("POST", "/v1/workspaces/ws1/lakehouses/sales/refresh", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusAccepted {
		t.Fatalf("expected status 202, got %d", w.Code)
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %s", err)
	}
	jobID, _ := resp["job_id"].(string)
	if jobID == "" {
		t.Fatal("expected a job_id in the response")
	}
	if _, ok := api.registry.Get(jobID); !ok {
		t.Error("accepted job not present in registry")
	}
}

func TestGetJobNotFound(t *testing.T) {
	api := newTestAPI(t, http.NotFoundHandler())
	r := api.Router()

	req := httptest.NewRequest("GET", "/v1/jobs/unknown-id", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %s", err)
	}
	if resp.Code != "MDR_NOT_FOUND" {
		t.Errorf("expected code MDR_NOT_FOUND, got %s", resp.Code)
	}
}

func TestListJobs(t *testing.T) {
	api := newTestAPI(t, http.NotFoundHandler())
	api.registry.Create("ws1", "sales")
	r := api.Router()

	req := httptest.NewRequest("GET", "/v1/jobs", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp JobListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %s", err)
	}
	if len(resp.Jobs) != 1 {
		t.Errorf("expected 1 job, got %d", len(resp.Jobs))
	}
}
