package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dentalia/clinic-registry/internal/clinic"
	"github.com/dentalia/clinic-registry/pkg/logging"
)

// ProviderHandler exposes provider CRUD, the provider agenda view and the
// availability pre-check over HTTP. All rules are enforced by the registry;
// this layer only maps results to JSON.
type ProviderHandler struct {
	registry *clinic.Registry
	logger   *logging.Logger
}

// NewProviderHandler creates a provider HTTP handler.
func NewProviderHandler(registry *clinic.Registry, logger *logging.Logger) *ProviderHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &ProviderHandler{registry: registry, logger: logger}
}

// Routes returns a chi router with provider routes.
func (h *ProviderHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Upsert)
	r.Delete("/{id}", h.Delete)
	r.Get("/{id}/appointments", h.Agenda)
	r.Get("/{id}/availability", h.Availability)
	return r
}

// List returns all providers sorted by name.
// GET /providers
func (h *ProviderHandler) List(w http.ResponseWriter, r *http.Request) {
	providers, err := h.registry.ListProviders(r.Context())
	if err != nil {
		h.logger.Error("failed to list providers", "error", err)
		writeRegistryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, providers)
}

// Upsert creates or replaces a provider and returns the saved record.
// POST /providers
func (h *ProviderHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var p clinic.Provider
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeJSON(w, http.StatusBadRequest, mutationResult{OK: false, Reason: "invalid JSON body"})
		return
	}

	saved, err := h.registry.UpsertProvider(r.Context(), p)
	if err != nil {
		writeRegistryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// Delete removes a provider unless it has future appointments.
// DELETE /providers/{id}
func (h *ProviderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.registry.DeleteProvider(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeRegistryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mutationResult{OK: true})
}

// Agenda returns one provider's appointments sorted by start time.
// GET /providers/{id}/appointments
func (h *ProviderHandler) Agenda(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.registry.ListAppointmentsByProvider(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeRegistryError(w, err)
		return
	}
	if appointments == nil {
		appointments = []clinic.Appointment{}
	}
	writeJSON(w, http.StatusOK, appointments)
}

// Availability answers the standalone slot pre-check used by the UI before
// committing an appointment.
// GET /providers/{id}/availability?start=RFC3339[&exclude=appointmentID]
func (h *ProviderHandler) Availability(w http.ResponseWriter, r *http.Request) {
	start, err := time.Parse(time.RFC3339, r.URL.Query().Get("start"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, mutationResult{OK: false, Reason: "start must be an RFC3339 timestamp"})
		return
	}

	err = h.registry.CheckAvailability(r.Context(), chi.URLParam(r, "id"), start, r.URL.Query().Get("exclude"))
	var conflict *clinic.ConflictError
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, mutationResult{OK: true})
	case errors.As(err, &conflict):
		// A conflict is a verdict here, not a failure.
		writeJSON(w, http.StatusOK, mutationResult{OK: false, Reason: conflict.Reason})
	default:
		writeRegistryError(w, err)
	}
}
