// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package remote

import (
	"strings"

	"github.com/MKhiriev/vetfinder/models"
)

// Canonical and legacy field names seen in provider documents. The dataset
// predates the client, so normalization must absorb every historical shape
// still present in production.
const (
	fieldID            = "id"
	fieldName          = "name"
	fieldCity          = "city"
	fieldCountry       = "country"
	fieldRegionTag     = "regionTag"
	fieldBilling       = "billing"
	fieldBillingLegacy = "billingType"
	fieldPhone         = "phone"
	fieldEmail         = "email"
	fieldWebsite       = "website"
	fieldAddress       = "address"
	fieldMapsURL       = "mapsUrl"
	fieldMapsURLLegacy = "googleMapsUrl"
	fieldMapsURLOldest = "mapUrl"
	fieldPlaceID       = "placeId"
	fieldPlaceIDLegacy = "googlePlaceId"
	fieldLat           = "lat"
	fieldLng           = "lng"
)

// normalizeProvider converts a raw provider document into the canonical
// [models.Provider] shape.
//
// Rules, in order:
//   - an "id" field inside the document overrides the document id;
//   - the legacy "googleMapsUrl" wins over "mapsUrl", which wins over the
//     oldest "mapUrl"; legacy keys never survive into Extra;
//   - "googlePlaceId" fills "placeId" when the canonical key is absent;
//   - billing accepts both "billing" and the older "billingType" and is
//     folded onto the canonical spellings;
//   - unrecognized fields are preserved in Extra.
func normalizeProvider(docID string, raw map[string]any) models.Provider {
	p := models.Provider{ID: docID}

	if id := stringField(raw, fieldID); id != "" {
		p.ID = id
	}

	p.Name = stringField(raw, fieldName)
	p.City = stringField(raw, fieldCity)
	p.Country = stringField(raw, fieldCountry)
	p.RegionTag = stringField(raw, fieldRegionTag)
	p.Phone = stringField(raw, fieldPhone)
	p.Email = stringField(raw, fieldEmail)
	p.Website = stringField(raw, fieldWebsite)
	p.Address = stringField(raw, fieldAddress)

	p.Billing = models.NormalizeBilling(stringField(raw, fieldBilling))
	if p.Billing == "" {
		p.Billing = models.NormalizeBilling(stringField(raw, fieldBillingLegacy))
	}

	// Legacy maps URL takes precedence when present. "mapUrl" is the
	// oldest spelling, still found on documents the migrate tool has not
	// visited yet.
	p.MapsURL = stringField(raw, fieldMapsURLLegacy)
	if p.MapsURL == "" {
		p.MapsURL = stringField(raw, fieldMapsURL)
	}
	if p.MapsURL == "" {
		p.MapsURL = stringField(raw, fieldMapsURLOldest)
	}

	p.PlaceID = stringField(raw, fieldPlaceID)
	if p.PlaceID == "" {
		p.PlaceID = stringField(raw, fieldPlaceIDLegacy)
	}

	var latOK, lngOK bool
	p.Lat, latOK = floatField(raw, fieldLat)
	p.Lng, lngOK = floatField(raw, fieldLng)
	p.HasCoords = latOK && lngOK

	p.Extra = collectExtra(raw)

	return p
}

// knownFields are the keys consumed by normalization; everything else
// lands in Extra. The legacy keys are consumed too: once normalized they
// must not resurface on a later write.
var knownFields = map[string]struct{}{
	fieldID: {}, fieldName: {}, fieldCity: {}, fieldCountry: {},
	fieldRegionTag: {}, fieldBilling: {}, fieldBillingLegacy: {},
	fieldPhone: {}, fieldEmail: {}, fieldWebsite: {}, fieldAddress: {},
	fieldMapsURL: {}, fieldMapsURLLegacy: {}, fieldMapsURLOldest: {}, fieldPlaceID: {},
	fieldPlaceIDLegacy: {}, fieldLat: {}, fieldLng: {},
}

func collectExtra(raw map[string]any) map[string]any {
	var extra map[string]any
	for key, value := range raw {
		if _, known := knownFields[key]; known {
			continue
		}
		if extra == nil {
			extra = make(map[string]any)
		}
		extra[key] = value
	}
	return extra
}

func stringField(raw map[string]any, key string) string {
	value, _ := raw[key].(string)
	return strings.TrimSpace(value)
}

// floatField tolerates the numeric encodings JSON decoding and the
// firestore SDK produce.
func floatField(raw map[string]any, key string) (float64, bool) {
	switch value := raw[key].(type) {
	case float64:
		return value, true
	case float32:
		return float64(value), true
	case int64:
		return float64(value), true
	case int:
		return float64(value), true
	default:
		return 0, false
	}
}

// countryNames expands ISO codes on the allow-list to the full country
// names found in free-text country fields.
var countryNames = map[string]string{
	"th": "thailand",
	"ph": "philippines",
	"vn": "vietnam",
	"kr": "south korea",
}

// countryAllowed applies the tolerant country filter. The country field is
// free text ("TH", "Thailand", "the Philippines"), so a provider passes
// when its lowercased country equals an allowed entry, starts with it, or
// contains the entry's full country name. An empty allow-list admits
// everything.
func countryAllowed(country string, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}

	c := strings.ToLower(strings.TrimSpace(country))
	for _, entry := range allowed {
		e := strings.ToLower(strings.TrimSpace(entry))
		if e == "" {
			continue
		}
		if c == e || strings.HasPrefix(c, e) {
			return true
		}
		if name, ok := countryNames[e]; ok && strings.Contains(c, name) {
			return true
		}
		if len(e) > 3 && strings.Contains(c, e) {
			return true
		}
	}

	return false
}
