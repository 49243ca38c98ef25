package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"playdates_server/models"
)

// writeJSON sends a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeError sends a JSON error body.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeServiceError maps service-layer sentinel errors to HTTP statuses.
// Unrecognized errors are logged and reported as 500 without leaking
// internals.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrItemNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, models.ErrInvalidState):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, models.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, "not signed in")
	case errors.Is(err, models.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, "rate limited, try again later")
	case errors.Is(err, models.ErrTransactionConflict):
		writeError(w, http.StatusConflict, "conflicting update, try again")
	case errors.Is(err, models.ErrTimeout):
		writeError(w, http.StatusGatewayTimeout, "upstream timeout")
	case errors.Is(err, models.ErrDecodeFailure):
		log.Printf("Decode failure: %v", err)
		writeError(w, http.StatusInternalServerError, "corrupt record")
	default:
		log.Printf("Internal error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// decodeBody parses a JSON request body into dst.
func decodeBody(r *http.Request, dst interface{}) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
