// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/MKhiriev/vetfinder/internal/logger"
	"github.com/MKhiriev/vetfinder/internal/remote"
)

// favoritesService is the private implementation of [FavoritesService].
//
// The mutex serializes toggles: two concurrent toggles of the same
// provider must resolve to a consistent cache and remote state, so each
// toggle holds the lock across its remote write.
type favoritesService struct {
	gateway remote.Gateway
	auth    AuthService
	log     *logger.Logger

	mu    sync.Mutex
	cache map[string]struct{}
}

// NewFavoritesService builds a [FavoritesService] over gateway. auth
// supplies the identity favorites belong to.
func NewFavoritesService(gateway remote.Gateway, auth AuthService, log *logger.Logger) FavoritesService {
	return &favoritesService{
		gateway: gateway,
		auth:    auth,
		log:     log,
		cache:   map[string]struct{}{},
	}
}

func (s *favoritesService) Favorites(_ context.Context) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.cache))
	for id := range s.cache {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}

func (s *favoritesService) IsFavorite(_ context.Context, providerID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.cache[providerID]
	return ok
}

func (s *favoritesService) Toggle(ctx context.Context, providerID string) error {
	session := s.auth.Session(ctx)
	if !session.SignedIn() {
		return ErrNotSignedIn
	}

	err := s.applyToggle(ctx, session.UID, providerID)

	// The cache is stale once the write settles, success or not: a fresh
	// fetch picks up concurrent updates made from another device.
	if refreshErr := s.Refresh(ctx); refreshErr != nil {
		s.log.Warn().Err(refreshErr).Msg("post-toggle favorites reconcile failed")
	}

	return err
}

func (s *favoritesService) applyToggle(ctx context.Context, uid, providerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Snapshot before the optimistic update so a failed write can roll
	// the cache back to exactly this state.
	snapshot := make(map[string]struct{}, len(s.cache))
	for id := range s.cache {
		snapshot[id] = struct{}{}
	}

	_, wasFavorite := s.cache[providerID]

	var err error
	if wasFavorite {
		delete(s.cache, providerID)
		err = s.gateway.RemoveFavorite(ctx, uid, providerID)
	} else {
		s.cache[providerID] = struct{}{}
		err = s.gateway.AddFavorite(ctx, uid, providerID)
	}

	if err != nil {
		s.cache = snapshot
		s.log.Error().Err(err).Str("provider_id", providerID).Msg("favorite toggle rolled back")
		return fmt.Errorf("toggle favorite: %w", err)
	}

	return nil
}

func (s *favoritesService) Refresh(ctx context.Context) error {
	session := s.auth.Session(ctx)
	if !session.SignedIn() {
		return ErrNotSignedIn
	}

	favorites, err := s.gateway.ListFavorites(ctx, session.UID)
	if err != nil {
		return fmt.Errorf("refresh favorites: %w", err)
	}

	fresh := make(map[string]struct{}, len(favorites))
	for _, favorite := range favorites {
		fresh[favorite.ProviderID] = struct{}{}
	}

	s.mu.Lock()
	s.cache = fresh
	s.mu.Unlock()

	return nil
}

func (s *favoritesService) Invalidate(_ context.Context) {
	s.mu.Lock()
	s.cache = map[string]struct{}{}
	s.mu.Unlock()

	s.log.Debug().Msg("favorites cache invalidated")
}
