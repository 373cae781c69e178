package clinic

import (
	"strings"
	"time"
)

// AppointmentDuration is the fixed length of every appointment. It is derived
// at validation time and never stored.
const AppointmentDuration = 2 * time.Hour

// Appointment links one provider, one patient, a start instant and the fixed
// duration. Start is normalized to UTC on write.
type Appointment struct {
	ID         string    `json:"id"`
	ProviderID string    `json:"providerId"`
	PatientID  string    `json:"patientId"`
	Start      time.Time `json:"startTime"`
	Reason     string    `json:"reason"`
}

func (a Appointment) RecordID() string { return a.ID }

// End returns the appointment's end instant.
func (a Appointment) End() time.Time { return a.Start.Add(AppointmentDuration) }

// Validate checks the locally verifiable fields. Referential existence of the
// provider and patient is the registry's responsibility.
func (a Appointment) Validate() error {
	if a.ProviderID == "" {
		return &ValidationError{Field: "providerId", Message: "provider is required"}
	}
	if a.PatientID == "" {
		return &ValidationError{Field: "patientId", Message: "patient is required"}
	}
	if a.Start.IsZero() {
		return &ValidationError{Field: "startTime", Message: "start time is required"}
	}
	if strings.TrimSpace(a.Reason) == "" {
		return &ValidationError{Field: "reason", Message: "reason is required"}
	}
	return nil
}
