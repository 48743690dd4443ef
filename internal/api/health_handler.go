package api

import (
	"context"
	"net/http"
	"time"
)

// HealthHandler returns 200 if service is healthy.
func (a *API) HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// ReadyHandler returns 200 if the service can obtain a Fabric token.
// A refresh accepted without a usable credential would only fail
// later, so readiness gates on token acquisition.
func (a *API) ReadyHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	if _, err := a.tokens.GetToken(ctx, a.audience); err != nil {
		WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "credential unavailable"})
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
