// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package remote

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/MKhiriev/vetfinder/internal/logger"
	"github.com/MKhiriev/vetfinder/models"
)

const (
	providersCollection = "providers"
	usersCollection     = "users"
	favoritesCollection = "favorites"

	favoriteCreatedAtField = "createdAt"
)

// gateway is the private implementation of [Gateway].
type gateway struct {
	store     DocumentStore
	countries []string
	log       *logger.Logger
}

// NewGateway builds a [Gateway] over store. countries is the provider
// country allow-list applied to listings; an empty list disables the
// filter.
func NewGateway(store DocumentStore, countries []string, log *logger.Logger) Gateway {
	return &gateway{store: store, countries: countries, log: log}
}

func (g *gateway) ListProviders(ctx context.Context) ([]models.Provider, error) {
	documents, err := g.store.ListCollection(ctx, providersCollection)
	if err != nil {
		return nil, fmt.Errorf("list providers: %w", err)
	}

	providers := make([]models.Provider, 0, len(documents))
	for _, doc := range documents {
		provider := normalizeProvider(doc.ID, doc.Data)
		if !provider.Usable() {
			g.log.Warn().Str("doc_id", doc.ID).Msg("skipping provider without a name")
			continue
		}
		if !countryAllowed(provider.Country, g.countries) {
			continue
		}
		providers = append(providers, provider)
	}

	sort.Slice(providers, func(i, j int) bool {
		return providers[i].Name < providers[j].Name
	})

	return providers, nil
}

func (g *gateway) GetProvider(ctx context.Context, id string) (models.Provider, error) {
	data, err := g.store.GetDocument(ctx, providersCollection+"/"+id)
	if err != nil {
		return models.Provider{}, fmt.Errorf("get provider %s: %w", id, err)
	}

	return normalizeProvider(id, data), nil
}

func (g *gateway) UpdateProvider(ctx context.Context, id string, fields map[string]any) error {
	patch := make(map[string]any, len(fields))
	for key, value := range fields {
		if key == fieldID {
			// The document id is authoritative.
			continue
		}
		patch[key] = value
	}
	if len(patch) == 0 {
		return nil
	}

	if err := g.store.SetDocument(ctx, providersCollection+"/"+id, patch, true); err != nil {
		return fmt.Errorf("update provider %s: %w", id, err)
	}

	return nil
}

func (g *gateway) ListFavorites(ctx context.Context, uid string) ([]models.Favorite, error) {
	documents, err := g.store.ListCollection(ctx, favoritesPath(uid))
	if err != nil {
		return nil, fmt.Errorf("list favorites of %s: %w", uid, err)
	}

	favorites := make([]models.Favorite, 0, len(documents))
	for _, doc := range documents {
		favorites = append(favorites, models.Favorite{
			ProviderID: doc.ID,
			CreatedAt:  timeField(doc.Data, favoriteCreatedAtField),
		})
	}

	sort.Slice(favorites, func(i, j int) bool {
		return favorites[i].ProviderID < favorites[j].ProviderID
	})

	return favorites, nil
}

func (g *gateway) AddFavorite(ctx context.Context, uid string, providerID string) error {
	data := map[string]any{favoriteCreatedAtField: ServerTimestamp}
	path := favoritesPath(uid) + "/" + providerID

	if err := g.store.SetDocument(ctx, path, data, true); err != nil {
		return fmt.Errorf("add favorite %s: %w", providerID, err)
	}

	return nil
}

func (g *gateway) RemoveFavorite(ctx context.Context, uid string, providerID string) error {
	if err := g.store.DeleteDocument(ctx, favoritesPath(uid)+"/"+providerID); err != nil {
		return fmt.Errorf("remove favorite %s: %w", providerID, err)
	}

	return nil
}

func favoritesPath(uid string) string {
	return usersCollection + "/" + uid + "/" + favoritesCollection
}

// timeField tolerates both encodings of a timestamp: the firestore SDK
// yields time.Time, the emulator yields an RFC 3339 string.
func timeField(raw map[string]any, key string) time.Time {
	switch value := raw[key].(type) {
	case time.Time:
		return value
	case string:
		if parsed, err := time.Parse(time.RFC3339Nano, value); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
