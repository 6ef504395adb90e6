package web

import (
	"encoding/json"
	"net/http"

	"erp-admin/internal/logger"
)

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

// writeError writes a structured JSON error response.
func writeError(w http.ResponseWriter, r *http.Request, message, code string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := errorResponse{
		Error:     message,
		Code:      code,
		RequestID: requestIDFromContext(r.Context()),
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// writeJSON writes a JSON response with status 200.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// serverErrorPage logs err and writes a plain 500 HTML response.
func serverErrorPage(w http.ResponseWriter, r *http.Request, err error) {
	logger.From(r.Context()).Error("request failed", logger.Err(err))
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte(`<!DOCTYPE html><html><body style="font-family:sans-serif;padding:2rem">
<h2>Something went wrong</h2><p>Request ID: ` + requestIDFromContext(r.Context()) + `</p>
<a href="/admin/" style="color:#1e293b">← Back to Dashboard</a>
</body></html>`))
}
