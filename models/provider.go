package models

import (
	"strconv"
	"strings"
)

// Billing classifications historically used by the provider dataset. The
// field is free text in storage; NormalizeBilling maps known spellings
// onto these two values and leaves anything else empty.
const (
	BillingDirect        = "Direct"
	BillingReimbursement = "Reimbursement"
)

// Provider is one healthcare provider record as consumed by the client.
// The remote documents evolved their field names over time, so a Provider
// is only ever produced by the gateway's normalization step; raw remote
// maps never travel past that boundary.
//
// Extra carries every remote field the client does not recognize. It is
// preserved verbatim so that writes through the gateway never discard
// data added by newer admin tooling.
type Provider struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	City      string  `json:"city,omitempty"`
	Country   string  `json:"country,omitempty"`
	RegionTag string  `json:"regionTag,omitempty"`
	Billing   string  `json:"billing,omitempty"`
	Phone     string  `json:"phone,omitempty"`
	Email     string  `json:"email,omitempty"`
	Website   string  `json:"website,omitempty"`
	Address   string  `json:"address,omitempty"`
	MapsURL   string  `json:"mapsUrl,omitempty"`
	PlaceID   string  `json:"placeId,omitempty"`
	Lat       float64 `json:"lat,omitempty"`
	Lng       float64 `json:"lng,omitempty"`
	HasCoords bool    `json:"-"`

	Extra map[string]any `json:"-"`
}

// MapsLocator returns the first available maps locator for the provider:
// the normalized maps URL, then the place id, then a lat/lng pair. The
// boolean reports whether any locator exists.
func (p Provider) MapsLocator() (string, bool) {
	switch {
	case p.MapsURL != "":
		return p.MapsURL, true
	case p.PlaceID != "":
		return "place:" + p.PlaceID, true
	case p.HasCoords:
		return "geo:" + formatCoord(p.Lat) + "," + formatCoord(p.Lng), true
	default:
		return "", false
	}
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// NormalizeBilling maps known spellings of the billing classification onto
// the canonical constants. Unrecognized values normalize to "".
func NormalizeBilling(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "direct":
		return BillingDirect
	case "reimbursement":
		return BillingReimbursement
	default:
		return ""
	}
}

// Usable reports whether the record carries the minimum fields the UI
// needs to render it.
func (p Provider) Usable() bool {
	return p.Name != ""
}
