package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dentalia/clinic-registry/internal/clinic"
	"github.com/dentalia/clinic-registry/pkg/logging"
)

// AppointmentHandler exposes appointment CRUD over HTTP.
type AppointmentHandler struct {
	registry *clinic.Registry
	logger   *logging.Logger
}

// NewAppointmentHandler creates an appointment HTTP handler.
func NewAppointmentHandler(registry *clinic.Registry, logger *logging.Logger) *AppointmentHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &AppointmentHandler{registry: registry, logger: logger}
}

// Routes returns a chi router with appointment routes.
func (h *AppointmentHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Upsert)
	r.Delete("/{id}", h.Delete)
	return r
}

// upsertAppointmentResult is the structured result for appointment upserts:
// the outcome plus the saved record when booking succeeded.
type upsertAppointmentResult struct {
	OK          bool                `json:"ok"`
	Reason      string              `json:"reason,omitempty"`
	Appointment *clinic.Appointment `json:"appointment,omitempty"`
}

// List returns all appointments sorted by start time.
// GET /appointments
func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.registry.ListAppointments(r.Context())
	if err != nil {
		h.logger.Error("failed to list appointments", "error", err)
		writeRegistryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, appointments)
}

// Upsert books or reschedules an appointment. Reference and overlap rules are
// enforced by the registry; any failure leaves state untouched.
// POST /appointments
func (h *AppointmentHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var a clinic.Appointment
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		writeJSON(w, http.StatusBadRequest, mutationResult{OK: false, Reason: "invalid JSON body"})
		return
	}

	saved, err := h.registry.UpsertAppointment(r.Context(), a)
	if err != nil {
		writeRegistryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, upsertAppointmentResult{OK: true, Appointment: &saved})
}

// Delete cancels an appointment unconditionally.
// DELETE /appointments/{id}
func (h *AppointmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.registry.DeleteAppointment(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeRegistryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mutationResult{OK: true})
}
