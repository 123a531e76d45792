package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/vetfinder/models"
)

func validProfile() models.Profile {
	return models.Profile{
		FullName: "Jordan Reyes",
		SSN:      "123-45-6789",
		DOB:      "1985-04-12",
		Address:  "12 Sukhumvit Rd, Bangkok",
		Phone:    "+66-2-310-3000",
		Email:    "jordan@example.com",
	}
}

func TestProfileValidator_ValidProfile(t *testing.T) {
	pv := NewProfileValidator()
	require.NoError(t, pv.ValidateProfile(validProfile()))
}

func TestProfileValidator_SSNForms(t *testing.T) {
	pv := NewProfileValidator()

	valid := []string{"123-45-6789", "123456789", "12345-6789", "123-456789"}
	for _, ssn := range valid {
		p := validProfile()
		p.SSN = ssn
		assert.NoError(t, pv.ValidateProfile(p), ssn)
	}

	invalid := []string{"123-45-678", "123-45-67890", "abc-de-fghi", "123 45 6789", ""}
	for _, ssn := range invalid {
		p := validProfile()
		p.SSN = ssn
		assert.Error(t, pv.ValidateProfile(p), ssn)
	}
}

func TestProfileValidator_ReportsFirstViolation(t *testing.T) {
	pv := NewProfileValidator()

	p := validProfile()
	p.FullName = ""

	err := pv.ValidateProfile(p)
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "full name", verr.Field)
	assert.Equal(t, "must not be empty", verr.Reason)
	assert.Equal(t, "invalid full name: must not be empty", verr.Error())
}

func TestProfileValidator_DOBFormat(t *testing.T) {
	pv := NewProfileValidator()

	p := validProfile()
	p.DOB = "12/04/1985"

	err := pv.ValidateProfile(p)
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "date of birth", verr.Field)
	assert.Equal(t, "must use the YYYY-MM-DD format", verr.Reason)
}

func TestProfileValidator_Email(t *testing.T) {
	pv := NewProfileValidator()

	p := validProfile()
	p.Email = "not-an-email"

	err := pv.ValidateProfile(p)
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "email address", verr.Field)
}
