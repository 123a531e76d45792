// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package securestore

import (
	"context"

	"github.com/MKhiriev/vetfinder/internal/logger"
)

// dualStore is the private implementation of [Store]. Every write goes to
// the keychain and the fallback independently: a failure in one backend
// never blocks the other, and no failure surfaces to the caller.
type dualStore struct {
	keychain Backend
	fallback Backend
	log      *logger.Logger
}

// NewStore builds a [Store] over the encrypted keychain and the
// unencrypted fallback backend.
func NewStore(keychain, fallback Backend, log *logger.Logger) Store {
	return &dualStore{keychain: keychain, fallback: fallback, log: log}
}

func (s *dualStore) Set(ctx context.Context, key string, value string) {
	if err := s.keychain.Set(ctx, key, value); err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("keychain set failed")
	}
	if err := s.fallback.Set(ctx, key, value); err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("fallback set failed")
	}
}

func (s *dualStore) Get(ctx context.Context, key string) (string, bool) {
	value, ok, err := s.keychain.Get(ctx, key)
	if err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("keychain get failed")
	}
	if ok {
		return value, true
	}

	value, ok, err = s.fallback.Get(ctx, key)
	if err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("fallback get failed")
		return "", false
	}

	return value, ok
}

func (s *dualStore) Delete(ctx context.Context, key string) {
	if err := s.keychain.Delete(ctx, key); err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("keychain delete failed")
	}
	if err := s.fallback.Delete(ctx, key); err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("fallback delete failed")
	}
}

func (s *dualStore) WipeAll(ctx context.Context) {
	if err := s.keychain.WipeAll(ctx); err != nil {
		s.log.Error().Err(err).Msg("keychain wipe failed")
	}
	if err := s.fallback.WipeAll(ctx); err != nil {
		s.log.Error().Err(err).Msg("fallback wipe failed")
	}
}
