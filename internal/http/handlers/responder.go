package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"wasup-chucks/internal/http/requestutil"
	"wasup-chucks/internal/logging"
)

type errorBody struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

// writeJSON marshals before touching the response so an encode failure becomes a 500.
func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	data, err := json.Marshal(payload)
	if err != nil {
		logging.Error(logger, "failed to encode response", err)
		status = http.StatusInternalServerError
		data = []byte(`{"error":"internal error"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(data, '\n'))
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	id := requestutil.ID(r.Context())
	if id == "" {
		id = w.Header().Get(requestutil.HeaderRequestID)
	}
	writeJSON(w, status, errorBody{Error: message, RequestID: id}, logger)
}

// requireMethod answers 405 unless r uses one of methods. HEAD is accepted wherever GET is.
func requireMethod(w http.ResponseWriter, r *http.Request, logger *slog.Logger, methods ...string) bool {
	for _, m := range methods {
		if r.Method == m || (m == http.MethodGet && r.Method == http.MethodHead) {
			return true
		}
	}
	w.Header().Set("Allow", strings.Join(methods, ", "))
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", logger)
	return false
}

func requestLogger(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}
