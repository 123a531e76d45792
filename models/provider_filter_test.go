package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleProviders() []Provider {
	return []Provider{
		{ID: "p1", Name: "Bangkok International", Country: "Thailand", City: "Bangkok", Billing: BillingDirect},
		{ID: "p2", Name: "Bumrungrad", Country: "Thailand", City: "Bangkok", Billing: BillingReimbursement},
		{ID: "p3", Name: "Chiang Mai Ram", Country: "Thailand", City: "Chiang Mai"},
		{ID: "p4", Name: "St. Luke's", Country: "Philippines", City: "Taguig", Billing: BillingDirect},
		{ID: "p5", Name: "No Country Clinic", City: "Nowhere"},
	}
}

func TestFilterProviders_EmptyFilterMatchesAll(t *testing.T) {
	providers := sampleProviders()
	assert.Equal(t, providers, FilterProviders(providers, ProviderFilter{}))
}

func TestFilterProviders_ByCountryAndBilling(t *testing.T) {
	got := FilterProviders(sampleProviders(), ProviderFilter{Country: "Thailand", Billing: BillingDirect})

	assert.Len(t, got, 1)
	assert.Equal(t, "p1", got[0].ID)
}

func TestFilterProviders_CityIsCaseInsensitive(t *testing.T) {
	got := FilterProviders(sampleProviders(), ProviderFilter{City: "bangkok"})

	assert.Len(t, got, 2)
}

func TestDeriveFacets_SortedDistinctValues(t *testing.T) {
	facets := DeriveFacets(sampleProviders())

	assert.Equal(t, []string{"Philippines", "Thailand"}, facets.Countries)
	assert.Equal(t, []string{"Bangkok", "Chiang Mai"}, facets.CitiesFor("Thailand"))
	assert.Empty(t, facets.CitiesFor("Vietnam"))
	assert.Empty(t, facets.CitiesFor(""))
}
