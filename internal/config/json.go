// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Duration wraps time.Duration to accept human-readable strings
// ("15s", "5m") in JSON config files.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch value := raw.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("parse duration %q: %w", value, err)
		}
		d.Duration = parsed
		return nil
	default:
		return fmt.Errorf("duration must be a number or a string, got %T", raw)
	}
}

// jsonConfig mirrors StructuredConfig with JSON tags and Duration wrappers.
type jsonConfig struct {
	App struct {
		Version string `json:"version"`
	} `json:"app"`
	SecureStore struct {
		Dir         string `json:"dir"`
		FallbackDSN string `json:"fallback_dsn"`
	} `json:"secure_store"`
	Remote struct {
		Backend         string   `json:"backend"`
		ProjectID       string   `json:"project_id"`
		CredentialsFile string   `json:"credentials_file"`
		HTTPAddress     string   `json:"http_address"`
		RequestTimeout  Duration `json:"request_timeout"`
	} `json:"remote"`
	Policy struct {
		Countries []string `json:"countries"`
	} `json:"policy"`
	Workers struct {
		ReconcileInterval Duration `json:"reconcile_interval"`
	} `json:"workers"`
	Server struct {
		HTTPAddress    string   `json:"address"`
		RequestTimeout Duration `json:"request_timeout"`
		TokenSignKey   string   `json:"token_sign_key"`
		TokenIssuer    string   `json:"token_issuer"`
		TokenDuration  Duration `json:"token_duration"`
	} `json:"server"`
}

func getConfigFromJSONFile(path string) (*StructuredConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	parsed := &jsonConfig{}
	if err := json.Unmarshal(data, parsed); err != nil {
		return nil, fmt.Errorf("unmarshal config file: %w", err)
	}

	cfg := &StructuredConfig{}
	cfg.App.Version = parsed.App.Version
	cfg.SecureStore.Dir = parsed.SecureStore.Dir
	cfg.SecureStore.FallbackDSN = parsed.SecureStore.FallbackDSN
	cfg.Remote.Backend = parsed.Remote.Backend
	cfg.Remote.ProjectID = parsed.Remote.ProjectID
	cfg.Remote.CredentialsFile = parsed.Remote.CredentialsFile
	cfg.Remote.HTTPAddress = parsed.Remote.HTTPAddress
	cfg.Remote.RequestTimeout = parsed.Remote.RequestTimeout.Duration
	cfg.Policy.Countries = parsed.Policy.Countries
	cfg.Workers.ReconcileInterval = parsed.Workers.ReconcileInterval.Duration
	cfg.Server.HTTPAddress = parsed.Server.HTTPAddress
	cfg.Server.RequestTimeout = parsed.Server.RequestTimeout.Duration
	cfg.Server.TokenSignKey = parsed.Server.TokenSignKey
	cfg.Server.TokenIssuer = parsed.Server.TokenIssuer
	cfg.Server.TokenDuration = parsed.Server.TokenDuration.Duration

	return cfg, nil
}
