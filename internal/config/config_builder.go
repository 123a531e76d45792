// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"dario.cat/mergo"
)

// Source precedence: env < flags < JSON file. Each step overwrites
// previously filled values with its own non-zero values.
type configBuilder struct {
	config *StructuredConfig
	err    error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{config: &StructuredConfig{}}
}

func (b *configBuilder) withEnv() *configBuilder {
	if b.err != nil {
		return b
	}

	envConfig, err := getConfigFromEnv()
	if err != nil {
		b.err = fmt.Errorf("load config from environment: %w", err)
		return b
	}

	b.merge(envConfig)
	return b
}

func (b *configBuilder) withFlags() *configBuilder {
	if b.err != nil {
		return b
	}

	flagConfig, err := getConfigFromFlags()
	if err != nil {
		b.err = fmt.Errorf("load config from flags: %w", err)
		return b
	}

	b.merge(flagConfig)
	return b
}

func (b *configBuilder) withJSON() *configBuilder {
	if b.err != nil {
		return b
	}

	// JSON file path comes from the sources merged before this step.
	if b.config.JSONFilePath == "" {
		return b
	}

	jsonConfig, err := getConfigFromJSONFile(b.config.JSONFilePath)
	if err != nil {
		b.err = fmt.Errorf("load config from JSON file %s: %w", b.config.JSONFilePath, err)
		return b
	}

	b.merge(jsonConfig)
	return b
}

func (b *configBuilder) merge(overrides *StructuredConfig) {
	if err := mergo.Merge(b.config, overrides, mergo.WithOverride); err != nil {
		b.err = fmt.Errorf("merge config sources: %w", err)
	}
}

func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, b.err
	}

	applyDefaults(b.config)

	if err := validateConfig(b.config); err != nil {
		return nil, err
	}

	return b.config, nil
}

func applyDefaults(cfg *StructuredConfig) {
	if cfg.SecureStore.Dir == "" {
		cfg.SecureStore.Dir = defaultSecureStoreDir()
	}
	if cfg.SecureStore.FallbackDSN == "" {
		cfg.SecureStore.FallbackDSN = filepath.Join(cfg.SecureStore.Dir, "fallback.db")
	}
	if cfg.Remote.Backend == "" {
		cfg.Remote.Backend = RemoteBackendHTTP
	}
	if cfg.Remote.HTTPAddress == "" {
		cfg.Remote.HTTPAddress = "http://localhost:8080"
	}
	if cfg.Remote.RequestTimeout == 0 {
		cfg.Remote.RequestTimeout = 15 * time.Second
	}
	if len(cfg.Policy.Countries) == 0 {
		cfg.Policy.Countries = []string{"TH", "PH"}
	}
	if cfg.Workers.ReconcileInterval == 0 {
		cfg.Workers.ReconcileInterval = 5 * time.Minute
	}
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = "localhost:8080"
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = 30 * time.Second
	}
	if cfg.Server.TokenSignKey == "" {
		// Emulator-only secret, never used against a real project.
		cfg.Server.TokenSignKey = "vetfinder-local-dev"
	}
	if cfg.Server.TokenIssuer == "" {
		cfg.Server.TokenIssuer = "vetfinder-emulator"
	}
	if cfg.Server.TokenDuration == 0 {
		cfg.Server.TokenDuration = 24 * time.Hour
	}
}

func defaultSecureStoreDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	return filepath.Join(base, "vetfinder")
}
