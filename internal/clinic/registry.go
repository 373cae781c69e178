// Package clinic implements the scheduling core: providers, patients and
// appointments held in memory and mirrored to a key-value blob store, with
// referential integrity and double-booking rules enforced at write time.
package clinic

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/dentalia/clinic-registry/internal/blobstore"
	"github.com/dentalia/clinic-registry/internal/observability/metrics"
	"github.com/dentalia/clinic-registry/pkg/logging"
)

// Blob store keys, one per collection.
const (
	providersKey    = "providers"
	patientsKey     = "patients"
	appointmentsKey = "appointments"
)

// Options configures a Registry.
type Options struct {
	// Store is the backing blob store. Required.
	Store blobstore.Store

	// Seed provides cold-start fixtures for collections absent from the store.
	Seed Seed

	// Locale selects the collation used for name sorting. Defaults to "es".
	Locale string

	// Now is the clock used for future-appointment guards. Defaults to time.Now.
	Now func() time.Time

	Logger  *logging.Logger
	Metrics *metrics.RegistryMetrics
}

// Registry owns the three entity collections and is their sole mutator.
// Construct one per process and pass it by reference; all mutations are
// serialized by an internal mutex.
type Registry struct {
	mu           sync.Mutex
	providers    *collection[Provider]
	patients     *collection[Patient]
	appointments *collection[Appointment]

	collator *collate.Collator
	now      func() time.Time
	logger   *logging.Logger
	metrics  *metrics.RegistryMetrics
}

// NewRegistry loads all three collections from the store. A missing blob
// falls back to the seed; a malformed blob fails construction.
func NewRegistry(ctx context.Context, opts Options) (*Registry, error) {
	if opts.Store == nil {
		return nil, errors.New("clinic: store is required")
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Default()
	}
	locale := opts.Locale
	if locale == "" {
		locale = "es"
	}

	r := &Registry{
		collator: collate.New(language.Make(locale)),
		now:      now,
		logger:   logger,
		metrics:  opts.Metrics,
	}

	var err error
	if r.providers, err = loadCollection(ctx, opts.Store, providersKey, opts.Seed.Providers, opts.Metrics); err != nil {
		return nil, err
	}
	if r.patients, err = loadCollection(ctx, opts.Store, patientsKey, opts.Seed.Patients, opts.Metrics); err != nil {
		return nil, err
	}
	if r.appointments, err = loadCollection(ctx, opts.Store, appointmentsKey, opts.Seed.Appointments, opts.Metrics); err != nil {
		return nil, err
	}

	logger.Info("clinic registry loaded",
		"providers", len(r.providers.items),
		"patients", len(r.patients.items),
		"appointments", len(r.appointments.items),
	)
	return r, nil
}

// sortByName sorts records ascending by name using locale-aware collation.
// The sort is stable so equal names keep their stored order.
func sortByName[T record](c *collate.Collator, items []T, name func(T) string) {
	sort.SliceStable(items, func(i, j int) bool {
		return c.CompareString(name(items[i]), name(items[j])) < 0
	})
}

// ListProviders returns a snapshot of all providers sorted by name.
func (r *Registry) ListProviders(ctx context.Context) ([]Provider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.providers.snapshot()
	sortByName(r.collator, out, func(p Provider) string { return p.Name })
	return out, nil
}

// UpsertProvider creates the provider when its id is empty, minting a fresh
// id, or fully replaces the record with the matching id. The stored record is
// returned with its id populated.
func (r *Registry) UpsertProvider(ctx context.Context, p Provider) (Provider, error) {
	if err := p.Validate(); err != nil {
		r.metrics.ObserveMutation("provider", "upsert", "invalid")
		return Provider{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var next []Provider
	if p.ID == "" {
		p.ID = uuid.NewString()
		next = append(r.providers.snapshot(), p)
	} else {
		var found bool
		if next, found = r.providers.replaced(p.ID, p); !found {
			r.metrics.ObserveMutation("provider", "upsert", "not_found")
			return Provider{}, &NotFoundError{Entity: "provider", ID: p.ID}
		}
	}

	if err := r.providers.apply(ctx, next); err != nil {
		r.metrics.ObserveMutation("provider", "upsert", "error")
		return Provider{}, err
	}
	r.metrics.ObserveMutation("provider", "upsert", "ok")
	r.logger.Info("provider saved", "provider_id", p.ID)
	return p, nil
}

// DeleteProvider removes the provider unless any appointment referencing it
// starts strictly after the current instant. Past appointments never block
// deletion and are left dangling.
func (r *Registry) DeleteProvider(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.hasFutureAppointments(func(a Appointment) bool { return a.ProviderID == id }) {
		r.metrics.ObserveMutation("provider", "delete", "conflict")
		r.metrics.ObserveConflict("delete_guard")
		return &ConflictError{Reason: "provider has future appointments"}
	}

	next, found := r.providers.removed(id)
	if !found {
		r.metrics.ObserveMutation("provider", "delete", "not_found")
		return &NotFoundError{Entity: "provider", ID: id}
	}
	if err := r.providers.apply(ctx, next); err != nil {
		r.metrics.ObserveMutation("provider", "delete", "error")
		return err
	}
	r.metrics.ObserveMutation("provider", "delete", "ok")
	r.logger.Info("provider deleted", "provider_id", id)
	return nil
}

// ListPatients returns a snapshot of all patients sorted by name.
func (r *Registry) ListPatients(ctx context.Context) ([]Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.patients.snapshot()
	sortByName(r.collator, out, func(p Patient) string { return p.Name })
	return out, nil
}

// UpsertPatient mirrors UpsertProvider for patient records.
func (r *Registry) UpsertPatient(ctx context.Context, p Patient) (Patient, error) {
	if err := p.Validate(); err != nil {
		r.metrics.ObserveMutation("patient", "upsert", "invalid")
		return Patient{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var next []Patient
	if p.ID == "" {
		p.ID = uuid.NewString()
		next = append(r.patients.snapshot(), p)
	} else {
		var found bool
		if next, found = r.patients.replaced(p.ID, p); !found {
			r.metrics.ObserveMutation("patient", "upsert", "not_found")
			return Patient{}, &NotFoundError{Entity: "patient", ID: p.ID}
		}
	}

	if err := r.patients.apply(ctx, next); err != nil {
		r.metrics.ObserveMutation("patient", "upsert", "error")
		return Patient{}, err
	}
	r.metrics.ObserveMutation("patient", "upsert", "ok")
	r.logger.Info("patient saved", "patient_id", p.ID)
	return p, nil
}

// DeletePatient removes the patient unless a future appointment references it.
func (r *Registry) DeletePatient(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.hasFutureAppointments(func(a Appointment) bool { return a.PatientID == id }) {
		r.metrics.ObserveMutation("patient", "delete", "conflict")
		r.metrics.ObserveConflict("delete_guard")
		return &ConflictError{Reason: "patient has future appointments"}
	}

	next, found := r.patients.removed(id)
	if !found {
		r.metrics.ObserveMutation("patient", "delete", "not_found")
		return &NotFoundError{Entity: "patient", ID: id}
	}
	if err := r.patients.apply(ctx, next); err != nil {
		r.metrics.ObserveMutation("patient", "delete", "error")
		return err
	}
	r.metrics.ObserveMutation("patient", "delete", "ok")
	r.logger.Info("patient deleted", "patient_id", id)
	return nil
}

// ListAppointments returns a snapshot of all appointments sorted ascending by
// start time.
func (r *Registry) ListAppointments(ctx context.Context) ([]Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.appointments.snapshot()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}

// ListAppointmentsByProvider is the agenda view: one provider's appointments
// sorted ascending by start time.
func (r *Registry) ListAppointmentsByProvider(ctx context.Context, providerID string) ([]Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Appointment
	for _, a := range r.appointments.items {
		if a.ProviderID == providerID {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}

// CheckAvailability tests whether a 2-hour slot starting at start is free for
// the provider. excludeID skips one appointment, used when re-validating an
// edit against itself. It returns nil when the slot is free, or the first
// conflict found as a *ConflictError. Read-only: safe for UI pre-validation.
func (r *Registry) CheckAvailability(ctx context.Context, providerID string, start time.Time, excludeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.checkAvailabilityLocked(providerID, start, excludeID)
}

func (r *Registry) checkAvailabilityLocked(providerID string, start time.Time, excludeID string) error {
	newStart := start.UTC()
	newEnd := newStart.Add(AppointmentDuration)

	for _, a := range r.appointments.items {
		if a.ProviderID != providerID || (excludeID != "" && a.ID == excludeID) {
			continue
		}
		existingStart := a.Start.UTC()
		existingEnd := existingStart.Add(AppointmentDuration)

		// Open-interval overlap: touching endpoints do not conflict.
		if newStart.Before(existingEnd) && newEnd.After(existingStart) {
			return &ConflictError{
				Reason: fmt.Sprintf("provider already has an appointment from %s to %s",
					existingStart.Format("15:04"), existingEnd.Format("15:04")),
				Start: existingStart,
				End:   existingEnd,
			}
		}
	}
	return nil
}

// UpsertAppointment validates the provider and patient references, then the
// availability of the slot (excluding the appointment's own id when editing),
// and only then commits. Either every check passes and the write persists, or
// nothing changes.
func (r *Registry) UpsertAppointment(ctx context.Context, a Appointment) (Appointment, error) {
	if err := a.Validate(); err != nil {
		r.metrics.ObserveMutation("appointment", "upsert", "invalid")
		return Appointment{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.providers.find(a.ProviderID); !ok {
		r.metrics.ObserveMutation("appointment", "upsert", "bad_reference")
		return Appointment{}, &ReferenceError{Entity: "provider", ID: a.ProviderID}
	}
	if _, ok := r.patients.find(a.PatientID); !ok {
		r.metrics.ObserveMutation("appointment", "upsert", "bad_reference")
		return Appointment{}, &ReferenceError{Entity: "patient", ID: a.PatientID}
	}

	a.Start = a.Start.UTC()
	if err := r.checkAvailabilityLocked(a.ProviderID, a.Start, a.ID); err != nil {
		r.metrics.ObserveMutation("appointment", "upsert", "conflict")
		r.metrics.ObserveConflict("overlap")
		return Appointment{}, err
	}

	var next []Appointment
	if a.ID == "" {
		a.ID = uuid.NewString()
		next = append(r.appointments.snapshot(), a)
	} else {
		var found bool
		if next, found = r.appointments.replaced(a.ID, a); !found {
			r.metrics.ObserveMutation("appointment", "upsert", "not_found")
			return Appointment{}, &NotFoundError{Entity: "appointment", ID: a.ID}
		}
	}

	if err := r.appointments.apply(ctx, next); err != nil {
		r.metrics.ObserveMutation("appointment", "upsert", "error")
		return Appointment{}, err
	}
	r.metrics.ObserveMutation("appointment", "upsert", "ok")
	r.logger.Info("appointment saved",
		"appointment_id", a.ID,
		"provider_id", a.ProviderID,
		"start", a.Start,
	)
	return a, nil
}

// DeleteAppointment removes the appointment unconditionally; nothing
// references an appointment.
func (r *Registry) DeleteAppointment(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next, found := r.appointments.removed(id)
	if !found {
		r.metrics.ObserveMutation("appointment", "delete", "not_found")
		return &NotFoundError{Entity: "appointment", ID: id}
	}
	if err := r.appointments.apply(ctx, next); err != nil {
		r.metrics.ObserveMutation("appointment", "delete", "error")
		return err
	}
	r.metrics.ObserveMutation("appointment", "delete", "ok")
	r.logger.Info("appointment deleted", "appointment_id", id)
	return nil
}

func (r *Registry) hasFutureAppointments(match func(Appointment) bool) bool {
	now := r.now()
	for _, a := range r.appointments.items {
		if match(a) && a.Start.After(now) {
			return true
		}
	}
	return false
}
