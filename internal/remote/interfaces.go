// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package remote talks to the document database that holds provider and
// favorite data. Two interchangeable backends exist: a real Firestore
// project and a local HTTP emulator.
package remote

import (
	"context"

	"github.com/MKhiriev/vetfinder/models"
)

// Document is a single record returned from a collection listing.
type Document struct {
	ID   string
	Data map[string]any
}

// DocumentStore is a minimal document-database abstraction. Paths use the
// Firestore convention: an even number of slash-separated segments names a
// document ("providers/p1"), an odd number names a collection
// ("users/u1/favorites").
//
//go:generate mockgen -source=interfaces.go -destination=../mock/remote_mock.go -package=mock
type DocumentStore interface {
	// GetDocument returns the data of the document at path, or
	// ErrDocumentNotFound when it does not exist.
	GetDocument(ctx context.Context, path string) (map[string]any, error)

	// ListCollection returns every document in the collection at path.
	// A missing collection yields an empty slice, not an error.
	ListCollection(ctx context.Context, path string) ([]Document, error)

	// SetDocument writes data to the document at path. With merge, fields
	// absent from data are left untouched; otherwise the document is
	// replaced. Sentinel values (ServerTimestamp, Delete) are resolved by
	// the backend.
	SetDocument(ctx context.Context, path string, data map[string]any, merge bool) error

	// DeleteDocument removes the document at path. Deleting an absent
	// document is not an error.
	DeleteDocument(ctx context.Context, path string) error

	// Close releases the underlying connection.
	Close() error
}

// Gateway exposes the domain operations the client and the admin tool run
// against the document store: provider listing with normalization and
// policy filtering, and per-user favorite management.
type Gateway interface {
	// ListProviders returns all usable providers that pass the country
	// allow-list, normalized into the canonical shape.
	ListProviders(ctx context.Context) ([]models.Provider, error)

	// GetProvider returns one provider by id, normalized. The country
	// filter does not apply to direct lookups.
	GetProvider(ctx context.Context, id string) (models.Provider, error)

	// UpdateProvider merge-writes fields into the provider document.
	// A stray "id" field inside fields is discarded: the document id is
	// authoritative.
	UpdateProvider(ctx context.Context, id string, fields map[string]any) error

	// ListFavorites returns the authoritative favorite set for uid.
	ListFavorites(ctx context.Context, uid string) ([]models.Favorite, error)

	// AddFavorite records providerID as a favorite of uid. The server
	// assigns the creation timestamp.
	AddFavorite(ctx context.Context, uid string, providerID string) error

	// RemoveFavorite deletes the favorite record.
	RemoveFavorite(ctx context.Context, uid string, providerID string) error
}
