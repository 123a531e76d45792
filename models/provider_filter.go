package models

import (
	"sort"
	"strings"
)

// ProviderFilter narrows a provider list for display. Empty fields match
// everything. Country and billing compare exactly (both already come from
// normalized records); city compares case-insensitively because it is
// free text in storage.
type ProviderFilter struct {
	Country string
	City    string
	Billing string
}

// FilterProviders returns the providers matching every set field of f,
// preserving order.
func FilterProviders(providers []Provider, f ProviderFilter) []Provider {
	out := make([]Provider, 0, len(providers))
	for _, p := range providers {
		if f.Country != "" && p.Country != f.Country {
			continue
		}
		if f.City != "" && !strings.EqualFold(p.City, f.City) {
			continue
		}
		if f.Billing != "" && p.Billing != f.Billing {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Facets holds the distinct filter values present in a provider list,
// for building filter menus.
type Facets struct {
	Countries []string

	citiesByCountry map[string][]string
}

// DeriveFacets collects the distinct countries and, per country, the
// distinct cities, each sorted. Providers without a country contribute
// nothing.
func DeriveFacets(providers []Provider) Facets {
	countries := map[string]struct{}{}
	cities := map[string]map[string]struct{}{}

	for _, p := range providers {
		if p.Country == "" {
			continue
		}
		countries[p.Country] = struct{}{}
		if p.City == "" {
			continue
		}
		if cities[p.Country] == nil {
			cities[p.Country] = map[string]struct{}{}
		}
		cities[p.Country][p.City] = struct{}{}
	}

	facets := Facets{
		Countries:       sortedKeys(countries),
		citiesByCountry: make(map[string][]string, len(cities)),
	}
	for country, set := range cities {
		facets.citiesByCountry[country] = sortedKeys(set)
	}

	return facets
}

// CitiesFor returns the sorted distinct cities of country; empty when the
// country is unknown or unset.
func (f Facets) CitiesFor(country string) []string {
	if country == "" {
		return nil
	}
	return f.citiesByCountry[country]
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
