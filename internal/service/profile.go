// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"

	"github.com/MKhiriev/vetfinder/internal/logger"
	"github.com/MKhiriev/vetfinder/internal/securestore"
	"github.com/MKhiriev/vetfinder/internal/validators"
	"github.com/MKhiriev/vetfinder/models"
)

const (
	profileKey = "profile"

	// profileSchemaVersion is bumped whenever the stored shape changes.
	// Version 1 wraps the profile in a {"v":1,"data":{...}} envelope;
	// before versioning the profile was stored as a bare object.
	profileSchemaVersion = 1
)

// profileEnvelope is the on-disk shape of a stored profile.
type profileEnvelope struct {
	V    int            `json:"v"`
	Data models.Profile `json:"data"`
}

// profileService is the private implementation of [ProfileService].
type profileService struct {
	store     securestore.Store
	validator *validators.ProfileValidator
	log       *logger.Logger
}

// NewProfileService builds a [ProfileService] over store.
func NewProfileService(store securestore.Store, validator *validators.ProfileValidator, log *logger.Logger) ProfileService {
	return &profileService{store: store, validator: validator, log: log}
}

func (s *profileService) Load(ctx context.Context) models.Profile {
	raw, ok := s.store.Get(ctx, profileKey)
	if !ok {
		return models.EmptyProfile()
	}

	envelope := profileEnvelope{}
	if err := json.Unmarshal([]byte(raw), &envelope); err == nil && envelope.V >= profileSchemaVersion {
		return envelope.Data
	}

	// Records written before versioning are bare profile objects.
	legacy := models.Profile{}
	if err := json.Unmarshal([]byte(raw), &legacy); err == nil {
		if !legacy.IsEmpty() {
			s.log.Info().Msg("migrating legacy profile record")
		}
		return legacy
	}

	s.log.Warn().Msg("stored profile is corrupt, starting empty")
	return models.EmptyProfile()
}

func (s *profileService) Save(ctx context.Context, profile models.Profile) (models.Profile, error) {
	sanitized := profile.Sanitized()

	if err := s.validator.ValidateProfile(sanitized); err != nil {
		return models.Profile{}, err
	}

	raw, err := json.Marshal(profileEnvelope{V: profileSchemaVersion, Data: sanitized})
	if err != nil {
		return models.Profile{}, err
	}

	s.store.Set(ctx, profileKey, string(raw))
	s.log.Debug().Msg("profile saved")

	return sanitized, nil
}

func (s *profileService) Reset(ctx context.Context) {
	s.store.Delete(ctx, profileKey)
	s.log.Info().Msg("profile reset")
}

func (s *profileService) Wipe(ctx context.Context) {
	s.store.WipeAll(ctx)
	s.log.Info().Msg("secure storage wiped")
}
