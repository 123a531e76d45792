// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

func validateConfig(cfg *StructuredConfig) error {
	switch cfg.Remote.Backend {
	case RemoteBackendFirestore:
		if cfg.Remote.ProjectID == "" && cfg.Remote.CredentialsFile == "" {
			return ErrFirestoreProjectRequired
		}
	case RemoteBackendHTTP:
		if cfg.Remote.HTTPAddress == "" {
			return ErrHTTPAddressRequired
		}
	default:
		return ErrUnknownRemoteBackend
	}

	return nil
}
