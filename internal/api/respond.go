// Package api provides the HTTP handlers for the mrooms API
package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/navikt/mrooms/internal/models"
)

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeError maps a domain error kind to a status code and writes the
// message under the "error" key. Message texts are the contract; status
// codes carry the kind.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch models.KindOf(err) {
	case models.ErrorKindValidation:
		status = http.StatusBadRequest
	case models.ErrorKindNotFound:
		status = http.StatusNotFound
	case models.ErrorKindConflict, models.ErrorKindAllocation:
		status = http.StatusConflict
	}

	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// splitPath returns the non-empty segments of a request path
func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}
