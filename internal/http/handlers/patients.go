package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dentalia/clinic-registry/internal/clinic"
	"github.com/dentalia/clinic-registry/pkg/logging"
)

// PatientHandler exposes patient CRUD over HTTP.
type PatientHandler struct {
	registry *clinic.Registry
	logger   *logging.Logger
}

// NewPatientHandler creates a patient HTTP handler.
func NewPatientHandler(registry *clinic.Registry, logger *logging.Logger) *PatientHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &PatientHandler{registry: registry, logger: logger}
}

// Routes returns a chi router with patient routes.
func (h *PatientHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Upsert)
	r.Delete("/{id}", h.Delete)
	return r
}

// List returns all patients sorted by name.
// GET /patients
func (h *PatientHandler) List(w http.ResponseWriter, r *http.Request) {
	patients, err := h.registry.ListPatients(r.Context())
	if err != nil {
		h.logger.Error("failed to list patients", "error", err)
		writeRegistryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, patients)
}

// Upsert creates or replaces a patient and returns the saved record.
// POST /patients
func (h *PatientHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var p clinic.Patient
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeJSON(w, http.StatusBadRequest, mutationResult{OK: false, Reason: "invalid JSON body"})
		return
	}

	saved, err := h.registry.UpsertPatient(r.Context(), p)
	if err != nil {
		writeRegistryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// Delete removes a patient unless it has future appointments.
// DELETE /patients/{id}
func (h *PatientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.registry.DeletePatient(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeRegistryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mutationResult{OK: true})
}
