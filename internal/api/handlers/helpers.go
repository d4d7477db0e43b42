package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"visit-routing-service/internal/platform/obs"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

// writeError echoes the request id, when present, so a client can quote it
// when reporting a failed solve.
func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	body := map[string]string{"error": msg}
	if reqID, ok := r.Context().Value(obs.RequestIDKey).(string); ok && reqID != "" {
		body["request_id"] = reqID
	}
	writeJSON(w, r, status, body)
}
