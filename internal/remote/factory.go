// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package remote

import (
	"context"
	"fmt"

	"github.com/MKhiriev/vetfinder/internal/config"
)

// NewBackends builds the document store and auth backend selected by cfg.
// The http backend shares one HTTPStore between both so the bearer token
// installed at sign-in covers document calls too.
func NewBackends(ctx context.Context, cfg config.Remote) (DocumentStore, AuthBackend, error) {
	switch cfg.Backend {
	case config.RemoteBackendFirestore:
		store, err := NewFirestoreStore(ctx, cfg.ProjectID, cfg.CredentialsFile)
		if err != nil {
			return nil, nil, fmt.Errorf("create firestore store: %w", err)
		}

		auth, err := NewFirebaseAuthBackend(ctx, cfg.ProjectID, cfg.CredentialsFile)
		if err != nil {
			_ = store.Close()
			return nil, nil, fmt.Errorf("create firebase auth backend: %w", err)
		}

		return store, auth, nil
	case config.RemoteBackendHTTP:
		store := NewHTTPStore(cfg.HTTPAddress, cfg.RequestTimeout)
		return store, NewHTTPAuthBackend(store), nil
	default:
		return nil, nil, fmt.Errorf("unknown remote backend %q", cfg.Backend)
	}
}
