package models

import "strings"

// Profile is the locally stored personal record of the signed-in veteran.
// Every field is a plain display string; the zero value is the empty
// profile and doubles as the safe reset value.
type Profile struct {
	FullName string `json:"fullName" validate:"required"`
	SSN      string `json:"ssn" validate:"required,ssn"`
	DOB      string `json:"dob" validate:"required,datetime=2006-01-02"`
	Address  string `json:"address" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
}

// EmptyProfile returns the all-empty profile value.
func EmptyProfile() Profile {
	return Profile{}
}

// IsEmpty reports whether every field of the profile is empty.
func (p Profile) IsEmpty() bool {
	return p == Profile{}
}

// Sanitized returns a copy of the profile with every field trimmed of
// surrounding whitespace. Sanitization always runs before validation and
// before persisting, so the stored form never carries stray whitespace.
func (p Profile) Sanitized() Profile {
	return Profile{
		FullName: strings.TrimSpace(p.FullName),
		SSN:      strings.TrimSpace(p.SSN),
		DOB:      strings.TrimSpace(p.DOB),
		Address:  strings.TrimSpace(p.Address),
		Phone:    strings.TrimSpace(p.Phone),
		Email:    strings.TrimSpace(p.Email),
	}
}

// Redacted returns a display-safe copy of the profile: the SSN keeps only
// its last four digits, email and phone are partially masked, and the
// address is replaced with a placeholder. The redacted form is for logs
// and debug surfaces only and must never be persisted.
func (p Profile) Redacted() Profile {
	out := p

	if p.SSN != "" {
		digits := strings.NewReplacer("-", "", " ", "").Replace(p.SSN)
		if len(digits) >= 4 {
			out.SSN = "***-**-" + digits[len(digits)-4:]
		} else {
			out.SSN = strings.Repeat("*", len(p.SSN))
		}
	}

	if p.Email != "" {
		out.Email = maskLeading(p.Email, strings.IndexByte(p.Email, '@'))
	}

	if p.Phone != "" {
		out.Phone = maskLeading(p.Phone, len(p.Phone)-4)
	}

	if p.Address != "" {
		out.Address = "[REDACTED ADDRESS]"
	}

	return out
}

// maskLeading replaces the first n characters of s with asterisks. A
// negative n, or one covering the whole string, masks everything: values
// too short or too odd to split get no visible part.
func maskLeading(s string, n int) string {
	if n < 0 || n >= len(s) {
		return strings.Repeat("*", len(s))
	}
	return strings.Repeat("*", n) + s[n:]
}
