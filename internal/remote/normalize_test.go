package remote

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/vetfinder/models"
)

func TestNormalizeProvider_CanonicalDocument(t *testing.T) {
	p := normalizeProvider("doc-1", map[string]any{
		"name":      "Bangkok Hospital",
		"city":      "Bangkok",
		"country":   "TH",
		"regionTag": "Bangkok",
		"billing":   "Direct",
		"phone":     "+66-2-310-3000",
		"mapsUrl":   "https://maps.app.goo.gl/abc",
		"placeId":   "ChIJabc",
		"lat":       13.75,
		"lng":       100.5,
	})

	assert.Equal(t, "doc-1", p.ID)
	assert.Equal(t, "Bangkok Hospital", p.Name)
	assert.Equal(t, models.BillingDirect, p.Billing)
	assert.Equal(t, "https://maps.app.goo.gl/abc", p.MapsURL)
	assert.Equal(t, "ChIJabc", p.PlaceID)
	assert.True(t, p.HasCoords)
	assert.Equal(t, 13.75, p.Lat)
	assert.Nil(t, p.Extra)
}

func TestNormalizeProvider_EmbeddedIDOverridesDocID(t *testing.T) {
	p := normalizeProvider("doc-1", map[string]any{
		"id":   "legacy-7",
		"name": "St. Luke's",
	})

	assert.Equal(t, "legacy-7", p.ID)
}

func TestNormalizeProvider_LegacyMapsURLPrecedence(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
		want string
	}{
		{
			name: "googleMapsUrl wins over mapsUrl",
			raw: map[string]any{
				"googleMapsUrl": "https://maps.app.goo.gl/legacy",
				"mapsUrl":       "https://maps.app.goo.gl/canonical",
			},
			want: "https://maps.app.goo.gl/legacy",
		},
		{
			name: "mapsUrl wins over mapUrl",
			raw: map[string]any{
				"mapsUrl": "https://maps.app.goo.gl/canonical",
				"mapUrl":  "https://maps.app.goo.gl/oldest",
			},
			want: "https://maps.app.goo.gl/canonical",
		},
		{
			name: "mapUrl used when nothing newer exists",
			raw:  map[string]any{"mapUrl": "https://maps.app.goo.gl/oldest"},
			want: "https://maps.app.goo.gl/oldest",
		},
		{
			name: "empty legacy value falls through",
			raw: map[string]any{
				"googleMapsUrl": "",
				"mapsUrl":       "https://maps.app.goo.gl/canonical",
			},
			want: "https://maps.app.goo.gl/canonical",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.raw["name"] = "X"
			p := normalizeProvider("doc-1", tt.raw)
			assert.Equal(t, tt.want, p.MapsURL)
			assert.NotContains(t, p.Extra, "googleMapsUrl")
			assert.NotContains(t, p.Extra, "mapUrl")
		})
	}
}

func TestNormalizeProvider_LegacyBillingAndPlaceID(t *testing.T) {
	p := normalizeProvider("doc-1", map[string]any{
		"name":          "Bumrungrad",
		"billingType":   "reimbursement",
		"googlePlaceId": "ChIJlegacy",
	})

	assert.Equal(t, models.BillingReimbursement, p.Billing)
	assert.Equal(t, "ChIJlegacy", p.PlaceID)
}

func TestNormalizeProvider_UnknownFieldsLandInExtra(t *testing.T) {
	p := normalizeProvider("doc-1", map[string]any{
		"name": "Clinic",
		"tags": []any{"va", "tricare"},
		"note": "walk-ins ok",
	})

	assert.Equal(t, []any{"va", "tricare"}, p.Extra["tags"])
	assert.Equal(t, "walk-ins ok", p.Extra["note"])
}

func TestNormalizeProvider_MissingCoords(t *testing.T) {
	p := normalizeProvider("doc-1", map[string]any{"name": "Clinic", "lat": 13.75})
	assert.False(t, p.HasCoords)

	_, ok := p.MapsLocator()
	assert.False(t, ok)
}

func TestCountryAllowed_TolerantMatching(t *testing.T) {
	allowed := []string{"TH", "PH"}

	assert.True(t, countryAllowed("TH", allowed))
	assert.True(t, countryAllowed("th", allowed))
	assert.True(t, countryAllowed("Thailand", allowed))
	assert.True(t, countryAllowed(" Philippines ", allowed))
	assert.True(t, countryAllowed("the Philippines", allowed))
	assert.True(t, countryAllowed("Kingdom of Thailand", allowed))

	assert.False(t, countryAllowed("KR", allowed))
	assert.False(t, countryAllowed("South Korea", allowed))
	assert.False(t, countryAllowed("", allowed))
}

func TestCountryAllowed_EmptyListAdmitsAll(t *testing.T) {
	assert.True(t, countryAllowed("KR", nil))
	assert.True(t, countryAllowed("", []string{}))
}
