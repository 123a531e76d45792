// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service implements the client-side application logic: the local
// veteran profile, the remote-backed favorites set, and session handling.
package service

import (
	"context"

	"github.com/MKhiriev/vetfinder/models"
)

// ProfileService stores the veteran's personal profile on the device. The
// profile never leaves the device; the remote backend sees none of it.
type ProfileService interface {
	// Load returns the stored profile. A missing, legacy, or corrupt
	// record degrades to an empty profile, never to an error.
	Load(ctx context.Context) models.Profile

	// Save sanitizes and validates profile, persists it, and returns the
	// sanitized form. On a validation failure nothing is written and the
	// returned error is a *validators.ValidationError.
	Save(ctx context.Context, profile models.Profile) (models.Profile, error)

	// Reset removes the stored profile.
	Reset(ctx context.Context)

	// Wipe removes everything the secure store holds, the profile
	// included.
	Wipe(ctx context.Context)
}

// FavoritesService maintains the signed-in user's favorite providers. The
// remote set is authoritative; a local cache answers reads and is updated
// optimistically on toggles.
type FavoritesService interface {
	// Favorites returns the cached favorite provider ids, sorted.
	Favorites(ctx context.Context) []string

	// IsFavorite reports whether providerID is in the cached set.
	IsFavorite(ctx context.Context, providerID string) bool

	// Toggle flips the favorite state of providerID. The cache is updated
	// before the remote write; if the write fails the cache is rolled
	// back to its pre-toggle snapshot. Returns ErrNotSignedIn without a
	// session.
	Toggle(ctx context.Context, providerID string) error

	// Refresh replaces the cache with the authoritative remote set.
	Refresh(ctx context.Context) error

	// Invalidate drops the cache, e.g. when the session ends.
	Invalidate(ctx context.Context)
}

// AuthService owns the device's anonymous session and broadcasts session
// changes to interested components.
type AuthService interface {
	// Session returns the current session; zero when signed out.
	Session(ctx context.Context) models.Session

	// Initializing reports whether the startup session restore has not
	// finished yet. Until it flips false, a zero session means "still
	// resolving", not "signed out".
	Initializing(ctx context.Context) bool

	// Restore loads a previously persisted session at startup and
	// notifies subscribers when one exists.
	Restore(ctx context.Context)

	// SignIn establishes an anonymous session, persists it, and notifies
	// subscribers.
	SignIn(ctx context.Context) (models.Session, error)

	// SignOut tears the session down. Subscribers are notified with the
	// zero session even when the backend call fails.
	SignOut(ctx context.Context) error

	// Subscribe registers observer for session changes and returns an
	// unsubscribe func. The observer is invoked synchronously.
	Subscribe(observer func(models.Session)) (unsubscribe func())
}
