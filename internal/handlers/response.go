package handlers

import (
	"encoding/json"
	"net/http"
)

// writeJSON writes v as a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeRawJSON writes an already-encoded JSON document, e.g. an agent reply
// that must pass through unmodified.
func writeRawJSON(w http.ResponseWriter, status int, raw json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(raw)
}

// writeError writes the JSON error envelope used by all endpoints.
func writeError(w http.ResponseWriter, status int, msg string, err error) {
	resp := map[string]any{"error": msg}
	if err != nil {
		resp["details"] = err.Error()
	}
	writeJSON(w, status, resp)
}
