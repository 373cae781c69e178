package clinic

import (
	"regexp"
	"strings"
	"time"
)

const birthDateLayout = "2006-01-02"

// phonePattern is deliberately loose: at least seven characters drawn from
// digits, plus, dash, spaces and parentheses.
var phonePattern = regexp.MustCompile(`^[0-9+\-\s()]{7,}$`)

// Patient is a person receiving care, optionally a subscriber.
type Patient struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	BirthDate  string `json:"birthDate"`
	Phone      string `json:"phone"`
	Email      string `json:"email,omitempty"`
	Subscriber bool   `json:"subscriber"`
}

func (p Patient) RecordID() string { return p.ID }

// Validate checks the required fields, the birth date format, the phone
// pattern, and the email pattern when an email is present.
func (p Patient) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	if p.BirthDate == "" {
		return &ValidationError{Field: "birthDate", Message: "birth date is required"}
	}
	if _, err := time.Parse(birthDateLayout, p.BirthDate); err != nil {
		return &ValidationError{Field: "birthDate", Message: "must be a YYYY-MM-DD date"}
	}
	if !phonePattern.MatchString(p.Phone) {
		return &ValidationError{Field: "phone", Message: "must be at least 7 characters of digits, +, -, spaces or parentheses"}
	}
	if p.Email != "" && !emailPattern.MatchString(p.Email) {
		return &ValidationError{Field: "email", Message: "malformed email address"}
	}
	return nil
}
