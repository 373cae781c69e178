package clinic

import (
	"regexp"
	"strings"
)

// Specialty is one of the fixed set of practitioner specialties.
type Specialty string

const (
	SpecialtyGeneral      Specialty = "General Dentistry"
	SpecialtyOrthodontics Specialty = "Orthodontics"
	SpecialtyEndodontics  Specialty = "Endodontics"
	SpecialtyOralSurgery  Specialty = "Maxillofacial Surgery"
	SpecialtyPediatric    Specialty = "Pediatric Dentistry"
)

// Specialties lists every valid specialty, in display order.
var Specialties = []Specialty{
	SpecialtyGeneral,
	SpecialtyOrthodontics,
	SpecialtyEndodontics,
	SpecialtyOralSurgery,
	SpecialtyPediatric,
}

// Valid reports whether s is a member of the fixed specialty set.
func (s Specialty) Valid() bool {
	for _, known := range Specialties {
		if s == known {
			return true
		}
	}
	return false
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Provider is a practitioner record.
type Provider struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Specialty Specialty `json:"specialty"`
	Email     string    `json:"email"`
}

func (p Provider) RecordID() string { return p.ID }

// Validate checks the required fields and the email address pattern.
func (p Provider) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	if !p.Specialty.Valid() {
		return &ValidationError{Field: "specialty", Message: "unknown specialty"}
	}
	if !emailPattern.MatchString(p.Email) {
		return &ValidationError{Field: "email", Message: "malformed email address"}
	}
	return nil
}
