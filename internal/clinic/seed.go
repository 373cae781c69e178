package clinic

import "time"

// Seed holds the cold-start fixture records for each collection. A zero Seed
// starts every collection empty.
type Seed struct {
	Providers    []Provider
	Patients     []Patient
	Appointments []Appointment
}

// DefaultSeed returns the demo dataset: three providers, two patients, and
// one appointment at 10:00 UTC on the day of now.
func DefaultSeed(now time.Time) Seed {
	day := now.UTC().Truncate(24 * time.Hour)
	return Seed{
		Providers: []Provider{
			{ID: "1", Name: "Dr. Juan Pérez", Specialty: SpecialtyGeneral, Email: "juan.perez@clinica.com"},
			{ID: "2", Name: "Dra. Ana López", Specialty: SpecialtyOrthodontics, Email: "ana.lopez@clinica.com"},
			{ID: "3", Name: "Dr. Roberto Gómez", Specialty: SpecialtyOralSurgery, Email: "roberto.gomez@clinica.com"},
		},
		Patients: []Patient{
			{ID: "1", Name: "Carlos García", BirthDate: "1985-04-12", Phone: "555-1234", Email: "carlos@mail.com", Subscriber: true},
			{ID: "2", Name: "María Rodríguez", BirthDate: "1992-08-23", Phone: "555-5678", Subscriber: false},
		},
		Appointments: []Appointment{
			{ID: "1", ProviderID: "1", PatientID: "1", Start: day.Add(10 * time.Hour), Reason: "Annual cleaning"},
		},
	}
}
