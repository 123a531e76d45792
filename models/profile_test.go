package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfile_Redacted_MasksSensitiveFields(t *testing.T) {
	got := Profile{
		FullName: "Jordan Reyes",
		SSN:      "123-45-6789",
		DOB:      "1985-04-12",
		Address:  "12 Sukhumvit Rd",
		Phone:    "+66-2-310-3000",
		Email:    "jordan@example.com",
	}.Redacted()

	assert.Equal(t, "Jordan Reyes", got.FullName)
	assert.Equal(t, "***-**-6789", got.SSN)
	assert.Equal(t, "1985-04-12", got.DOB)
	assert.Equal(t, "[REDACTED ADDRESS]", got.Address)
	assert.Equal(t, "**********3000", got.Phone)
	assert.Equal(t, "******@example.com", got.Email)
}

func TestProfile_Redacted_MasksUnsplittableValuesEntirely(t *testing.T) {
	// Redacted works on arbitrary input, not just validated profiles: a
	// value with no visible split point must not pass through unmasked.
	got := Profile{
		SSN:   "12",
		Phone: "911",
		Email: "not-an-address",
	}.Redacted()

	assert.Equal(t, "**", got.SSN)
	assert.Equal(t, "***", got.Phone)
	assert.Equal(t, "**************", got.Email)
}
