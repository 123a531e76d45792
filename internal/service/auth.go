// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/MKhiriev/vetfinder/internal/logger"
	"github.com/MKhiriev/vetfinder/internal/remote"
	"github.com/MKhiriev/vetfinder/internal/securestore"
	"github.com/MKhiriev/vetfinder/models"
)

const sessionKey = "session"

// authService is the private implementation of [AuthService].
type authService struct {
	backend remote.AuthBackend
	store   securestore.Store
	log     *logger.Logger

	mu           sync.Mutex
	session      models.Session
	initializing bool
	subscribers  map[int]func(models.Session)
	nextSubID    int
}

// NewAuthService builds an [AuthService] over backend. The session is
// persisted in store so a restart keeps the identity.
func NewAuthService(backend remote.AuthBackend, store securestore.Store, log *logger.Logger) AuthService {
	return &authService{
		backend:      backend,
		store:        store,
		log:          log,
		initializing: true,
		subscribers:  map[int]func(models.Session){},
	}
}

func (s *authService) Session(_ context.Context) models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

func (s *authService) Initializing(_ context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initializing
}

func (s *authService) Restore(ctx context.Context) {
	defer func() {
		s.mu.Lock()
		s.initializing = false
		s.mu.Unlock()
	}()

	raw, ok := s.store.Get(ctx, sessionKey)
	if !ok {
		return
	}

	session := models.Session{}
	if err := json.Unmarshal([]byte(raw), &session); err != nil || !session.SignedIn() {
		s.log.Warn().Msg("stored session is unusable, discarding")
		s.store.Delete(ctx, sessionKey)
		return
	}

	// A session the backend cannot resume would look signed in while every
	// document call fails, so it is discarded and the sign-in flow runs.
	if err := s.backend.Resume(ctx, session); err != nil {
		s.log.Warn().Err(err).Str("uid", session.UID).Msg("stored session cannot be resumed, discarding")
		s.store.Delete(ctx, sessionKey)
		return
	}

	s.log.Info().Str("uid", session.UID).Msg("session restored")
	s.setSession(ctx, session, false)
}

func (s *authService) SignIn(ctx context.Context) (models.Session, error) {
	session, err := s.backend.SignInAnonymously(ctx)
	if err != nil {
		return models.Session{}, fmt.Errorf("sign in: %w", err)
	}

	s.log.Info().Str("uid", session.UID).Msg("signed in anonymously")
	s.setSession(ctx, session, true)

	return session, nil
}

func (s *authService) SignOut(ctx context.Context) error {
	s.mu.Lock()
	session := s.session
	s.mu.Unlock()

	err := s.backend.SignOut(ctx, session)
	if err != nil {
		s.log.Error().Err(err).Msg("backend sign-out failed")
	}

	// Local state is cleared regardless: the user asked to leave.
	s.store.Delete(ctx, sessionKey)
	s.setSession(ctx, models.Session{}, false)

	if err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	return nil
}

func (s *authService) Subscribe(observer func(models.Session)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = observer

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

// setSession swaps the current session, optionally persists it, and
// notifies subscribers outside the lock.
func (s *authService) setSession(ctx context.Context, session models.Session, persist bool) {
	s.mu.Lock()
	s.session = session
	observers := make([]func(models.Session), 0, len(s.subscribers))
	for _, observer := range s.subscribers {
		observers = append(observers, observer)
	}
	s.mu.Unlock()

	if persist {
		raw, err := json.Marshal(session)
		if err == nil {
			s.store.Set(ctx, sessionKey, string(raw))
		}
	}

	for _, observer := range observers {
		observer(session)
	}
}
