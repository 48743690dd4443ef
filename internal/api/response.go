package api

import (
	"encoding/json"
	"net/http"

	"github.com/lzjever/fabric-mdr/internal/core"
)

// ErrorResponse represents an MDR error response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WriteError writes an MDR error response.
func WriteError(w http.ResponseWriter, err *core.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.Code.HTTPStatus())
	json.NewEncoder(w).Encode(ErrorResponse{
		Code:    string(err.Code),
		Message: err.Message,
	})
}

// WriteJSON writes a JSON response.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// WriteAccepted writes a 202 Accepted response with a job reference.
func WriteAccepted(w http.ResponseWriter, jobID string, path string) {
	w.Header().Set("Location", path+jobID)
	WriteJSON(w, http.StatusAccepted, map[string]interface{}{
		"job_id":      jobID,
		"status":      "PENDING",
		"status_href": path + jobID,
	})
}
