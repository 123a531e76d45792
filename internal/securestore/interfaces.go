// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package securestore provides local key-value persistence for sensitive
// client data. Values are written to two backends: an encrypted file
// keychain and an unencrypted SQLite fallback that keeps data reachable
// when the keychain is unavailable.
package securestore

import "context"

// Backend is a single key-value storage engine.
type Backend interface {
	// Get returns the stored value and true, or "" and false when the key
	// is absent.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// WipeAll removes every stored key.
	WipeAll(ctx context.Context) error
}

// Store is the client-facing secure storage facade. Write operations never
// return errors: persistence failures are logged and swallowed so that a
// broken storage layer degrades the app instead of crashing it.
type Store interface {
	// Set writes value under key to every backend that will take it.
	Set(ctx context.Context, key string, value string)

	// Get returns the value for key, preferring the encrypted backend and
	// falling back to the unencrypted one. The second result reports
	// whether a value was found.
	Get(ctx context.Context, key string) (string, bool)

	// Delete removes key from all backends.
	Delete(ctx context.Context, key string)

	// WipeAll removes every key from all backends.
	WipeAll(ctx context.Context)
}
