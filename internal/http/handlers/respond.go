package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dentalia/clinic-registry/internal/clinic"
)

// mutationResult is the wire shape for deletes, appointment upserts and
// availability verdicts.
type mutationResult struct {
	OK     bool   `json:"ok"`
	Reason string `json:"reason,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeRegistryError maps a registry error to a status code and the
// {ok,reason} result shape. Business-rule failures carry the human-readable
// reason; unexpected storage failures are masked.
func writeRegistryError(w http.ResponseWriter, err error) {
	var (
		conflict *clinic.ConflictError
		valErr   *clinic.ValidationError
		refErr   *clinic.ReferenceError
		notFound *clinic.NotFoundError
	)
	switch {
	case errors.As(err, &conflict):
		writeJSON(w, http.StatusConflict, mutationResult{OK: false, Reason: conflict.Reason})
	case errors.As(err, &valErr):
		writeJSON(w, http.StatusUnprocessableEntity, mutationResult{OK: false, Reason: err.Error()})
	case errors.As(err, &refErr):
		writeJSON(w, http.StatusUnprocessableEntity, mutationResult{OK: false, Reason: err.Error()})
	case errors.As(err, &notFound):
		writeJSON(w, http.StatusNotFound, mutationResult{OK: false, Reason: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, mutationResult{OK: false, Reason: "internal server error"})
	}
}
