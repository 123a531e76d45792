// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks user input before it reaches storage.
package validators

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/MKhiriev/vetfinder/models"
)

// SSN accepts the dashed and undashed forms: 123-45-6789, 123456789.
var ssnPattern = regexp.MustCompile(`^\d{3}-?\d{2}-?\d{4}$`)

// ValidationError describes the first field of a profile that failed
// validation, with a human-readable reason suitable for the UI.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ProfileValidator validates [models.Profile] values against the rules
// declared in their struct tags plus the custom "ssn" rule.
type ProfileValidator struct {
	validate *validator.Validate
}

func NewProfileValidator() *ProfileValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Registration only fails for a nil func or empty tag.
	_ = v.RegisterValidation("ssn", func(fl validator.FieldLevel) bool {
		return ssnPattern.MatchString(fl.Field().String())
	})

	return &ProfileValidator{validate: v}
}

// ValidateProfile returns nil for a valid profile, or a *ValidationError
// describing the first violation.
func (pv *ProfileValidator) ValidateProfile(profile models.Profile) error {
	err := pv.validate.Struct(profile)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
		first := fieldErrors[0]
		return &ValidationError{
			Field:  fieldLabel(first.Field()),
			Reason: reasonFor(first),
		}
	}

	return fmt.Errorf("validate profile: %w", err)
}

func fieldLabel(structField string) string {
	switch structField {
	case "FullName":
		return "full name"
	case "SSN":
		return "social security number"
	case "DOB":
		return "date of birth"
	case "Address":
		return "address"
	case "Phone":
		return "phone number"
	case "Email":
		return "email address"
	default:
		return structField
	}
}

func reasonFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be empty"
	case "ssn":
		return "must look like 123-45-6789"
	case "datetime":
		return "must use the YYYY-MM-DD format"
	case "email":
		return "must be a valid email address"
	default:
		return "is invalid"
	}
}
