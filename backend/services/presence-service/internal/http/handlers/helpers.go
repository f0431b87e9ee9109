package handlers

import (
	"encoding/json"
	"net/http"
	"time"
)

const dateQueryLayout = "2006-01-02"

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// parseDateParam reads an optional YYYY-MM-DD query parameter. Absent means
// the zero time, which the service resolves to its default range.
func parseDateParam(r *http.Request, name string) (time.Time, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return time.Time{}, true
	}
	parsed, err := time.Parse(dateQueryLayout, raw)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}
