package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/arthurarakelov/burlington-ballers/models"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			log.Printf("❌ Failed to encode response: %v", err)
		}
	}
}

// writeError maps service errors onto HTTP statuses. Anything
// unrecognized is treated as a backend outage rather than leaked to the
// client.
func writeError(w http.ResponseWriter, err error) {
	var vErr *models.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": vErr.Error()})
	case errors.Is(err, models.ErrNotOrganizer):
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "only the organizer can do that"})
	case errors.Is(err, models.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	default:
		log.Printf("❌ Request failed: %v", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "service temporarily unavailable"})
	}
}
