// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

// NetAddress is a flag.Value holding a "host:port" pair.
type NetAddress struct {
	Host string
	Port string
}

func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == "" {
		return ""
	}
	return a.Host + ":" + a.Port
}

func (a *NetAddress) Set(s string) error {
	host, port, found := strings.Cut(s, ":")
	if !found || port == "" {
		return fmt.Errorf("address %q must be in host:port format", s)
	}
	a.Host = host
	a.Port = port
	return nil
}

func getConfigFromFlags() (*StructuredConfig, error) {
	cfg := &StructuredConfig{}

	serverAddress := &NetAddress{}

	flags := flag.NewFlagSet("vetfinder", flag.ContinueOnError)

	flags.StringVar(&cfg.JSONFilePath, "c", "", "path to JSON config file (shorthand)")
	flags.StringVar(&cfg.JSONFilePath, "config", "", "path to JSON config file")

	flags.StringVar(&cfg.SecureStore.Dir, "secure-dir", "", "directory for the encrypted keychain and device secret")
	flags.StringVar(&cfg.SecureStore.FallbackDSN, "fallback-dsn", "", "SQLite DSN of the fallback key-value store")

	flags.StringVar(&cfg.Remote.Backend, "remote-backend", "", `remote document store backend: "firestore" or "http"`)
	flags.StringVar(&cfg.Remote.ProjectID, "project-id", "", "Firebase project id (firestore backend)")
	flags.StringVar(&cfg.Remote.CredentialsFile, "credentials-file", "", "path to service-account credentials JSON (firestore backend)")
	flags.StringVar(&cfg.Remote.HTTPAddress, "remote-address", "", "base URL of the emulator server (http backend)")
	flags.DurationVar(&cfg.Remote.RequestTimeout, "request-timeout", 0, "timeout for remote document store calls")

	countries := flags.String("countries", "", "comma-separated provider country allow-list")

	flags.DurationVar(&cfg.Workers.ReconcileInterval, "reconcile-interval", 0, "interval between favorites reconcile runs")

	flags.Var(serverAddress, "a", "emulator server listen address host:port")
	flags.StringVar(&cfg.Server.TokenSignKey, "token-sign-key", "", "JWT signing key for the emulator server")
	flags.StringVar(&cfg.Server.TokenIssuer, "token-issuer", "", "JWT issuer for the emulator server")
	flags.DurationVar(&cfg.Server.TokenDuration, "token-duration", 0, "lifetime of tokens issued by the emulator server")

	if err := flags.Parse(argsFromCommandLine()); err != nil {
		return nil, fmt.Errorf("parse command-line flags: %w", err)
	}

	if *countries != "" {
		cfg.Policy.Countries = splitAndTrim(*countries)
	}
	cfg.Server.HTTPAddress = serverAddress.String()

	return cfg, nil
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Recognized flags vary per binary; unknown-flag errors from a shared
// FlagSet would make binaries reject each other's flags, so warm the
// set with os.Args minus the subcommand words used by the admin tool.
func argsFromCommandLine() []string {
	args := commandLineArgs()
	out := make([]string, 0, len(args))
	for _, a := range args {
		if !strings.HasPrefix(a, "-") && len(out) == 0 {
			continue // leading subcommand word (seed, migrate-maps, audit)
		}
		out = append(out, a)
	}
	return out
}

var commandLineArgs = func() []string { return os.Args[1:] }
