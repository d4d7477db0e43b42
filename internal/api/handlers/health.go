package handlers

import (
	"net/http"
)

// Health reports liveness. It deliberately checks nothing downstream: the
// solver is in-process and the travel-time caches are optional, so a
// reachable process is a healthy one.
func Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	res := map[string]string{
		"status":  "ok",
		"service": "visit-routing-service",
	}
	writeJSON(w, r, http.StatusOK, res)
}
