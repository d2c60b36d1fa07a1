package utils

import (
	"encoding/json"
	"net/http"

	"safeplate/apperr"
)

type M map[string]any

// RespondWithJSON sends a JSON response.
func RespondWithJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func RespondWithError(w http.ResponseWriter, code int, msg string) {
	RespondWithJSON(w, code, M{"status": "failure", "error": msg})
}

// RespondAppError maps the error taxonomy onto HTTP codes. Store failures
// surface as a generic retryable message; validation failures carry the
// specific reason.
func RespondAppError(w http.ResponseWriter, err error) {
	switch {
	case apperr.IsValidation(err):
		RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
	case apperr.IsUnauthorized(err):
		RespondWithError(w, http.StatusUnauthorized, "unauthorized")
	case apperr.IsNotFound(err):
		RespondWithError(w, http.StatusNotFound, "not found")
	default:
		RespondWithError(w, http.StatusInternalServerError, "something went wrong, try again later")
	}
}
