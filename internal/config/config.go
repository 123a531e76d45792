// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// Remote backend identifiers accepted by [Remote.Backend].
const (
	RemoteBackendFirestore = "firestore"
	RemoteBackendHTTP      = "http"
)

// StructuredConfig is the top-level configuration container for the
// vetfinder application. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line
// flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the version string.
	App App `envPrefix:"APP_"`

	// SecureStore holds settings for the local secure key-value store:
	// the keychain directory and the SQLite fallback database.
	SecureStore SecureStore `envPrefix:"SECURE_STORE_"`

	// Remote holds settings for the remote document store: which backend
	// to use and how to reach it.
	Remote Remote `envPrefix:"REMOTE_"`

	// Policy holds business-rule settings layered on top of the remote
	// gateway, such as the provider country allow-list.
	Policy Policy `envPrefix:"POLICY_"`

	// Workers holds configuration for background jobs.
	Workers Workers `envPrefix:"WORKERS_"`

	// Server holds settings for the local document-store emulator server.
	Server Server `envPrefix:"SERVER_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Version is the semantic version string of the running application
	// (e.g. "1.2.3").
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// SecureStore groups the configuration of both local storage backends.
type SecureStore struct {
	// Dir is the directory holding the encrypted keychain files and the
	// device secret. Defaults to <user-config-dir>/vetfinder.
	// Env: SECURE_STORE_DIR
	Dir string `env:"DIR"`

	// FallbackDSN is the SQLite connection string for the unencrypted
	// fallback store. Defaults to fallback.db inside Dir.
	// Env: SECURE_STORE_FALLBACK_DSN
	FallbackDSN string `env:"FALLBACK_DSN"`
}

// Remote holds connection settings for the remote document store.
type Remote struct {
	// Backend selects the document-store implementation: "firestore" for
	// a real Firebase project, "http" for the local emulator server.
	// Env: REMOTE_BACKEND
	Backend string `env:"BACKEND"`

	// ProjectID is the Firebase project id (firestore backend only).
	// Env: REMOTE_PROJECT_ID
	ProjectID string `env:"PROJECT_ID"`

	// CredentialsFile is the path to a service-account JSON credentials
	// file (firestore backend only). When empty, application default
	// credentials are used.
	// Env: REMOTE_CREDENTIALS_FILE
	CredentialsFile string `env:"CREDENTIALS_FILE"`

	// HTTPAddress is the base URL of the emulator server (http backend).
	// Env: REMOTE_HTTP_ADDRESS
	HTTPAddress string `env:"HTTP_ADDRESS"`

	// RequestTimeout bounds every outbound document-store call.
	// Env: REMOTE_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Policy holds configurable business rules applied by the client.
type Policy struct {
	// Countries is the provider country allow-list. Matching is tolerant:
	// a provider passes when its country equals, starts with, or contains
	// one of these values (case-insensitive). An empty list disables the
	// filter.
	// Env: POLICY_COUNTRIES (comma-separated)
	Countries []string `env:"COUNTRIES" envSeparator:","`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// ReconcileInterval defines how often the favorites reconcile job
	// re-fetches the authoritative favorite set.
	// Env: WORKERS_RECONCILE_INTERVAL
	ReconcileInterval time.Duration `env:"RECONCILE_INTERVAL"`
}

// Server holds network and token settings for the emulator server.
type Server struct {
	// HTTPAddress is the TCP address the emulator listens on, in
	// "host:port" format.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// TokenSignKey is the secret key used to sign and verify the JWTs the
	// emulator issues for anonymous sessions.
	// Env: SERVER_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued token.
	// Env: SERVER_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long an issued token remains valid.
	// Env: SERVER_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
