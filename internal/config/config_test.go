package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStructuredConfig_Defaults(t *testing.T) {
	commandLineArgs = func() []string { return nil }

	cfg, err := GetStructuredConfig()
	require.NoError(t, err)

	assert.Equal(t, RemoteBackendHTTP, cfg.Remote.Backend)
	assert.Equal(t, "http://localhost:8080", cfg.Remote.HTTPAddress)
	assert.Equal(t, 15*time.Second, cfg.Remote.RequestTimeout)
	assert.Equal(t, []string{"TH", "PH"}, cfg.Policy.Countries)
	assert.Equal(t, 5*time.Minute, cfg.Workers.ReconcileInterval)
	assert.NotEmpty(t, cfg.SecureStore.Dir)
	assert.Equal(t, filepath.Join(cfg.SecureStore.Dir, "fallback.db"), cfg.SecureStore.FallbackDSN)
	assert.NotEmpty(t, cfg.Server.TokenSignKey)
}

func TestGetStructuredConfig_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("REMOTE_HTTP_ADDRESS", "http://env-host:9000")
	t.Setenv("POLICY_COUNTRIES", "TH,PH,US")
	commandLineArgs = func() []string {
		return []string{"-remote-address", "http://flag-host:9001", "-request-timeout", "3s"}
	}

	cfg, err := GetStructuredConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://flag-host:9001", cfg.Remote.HTTPAddress)
	assert.Equal(t, 3*time.Second, cfg.Remote.RequestTimeout)
	assert.Equal(t, []string{"TH", "PH", "US"}, cfg.Policy.Countries)
}

func TestGetStructuredConfig_JSONFileWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	writeFile(t, path, `{
		"remote": {"backend": "http", "http_address": "http://json-host:7000", "request_timeout": "7s"},
		"workers": {"reconcile_interval": "90s"},
		"policy": {"countries": ["PH"]}
	}`)

	t.Setenv("CONFIG", path)
	t.Setenv("REMOTE_HTTP_ADDRESS", "http://env-host:9000")
	commandLineArgs = func() []string { return nil }

	cfg, err := GetStructuredConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://json-host:7000", cfg.Remote.HTTPAddress)
	assert.Equal(t, 7*time.Second, cfg.Remote.RequestTimeout)
	assert.Equal(t, 90*time.Second, cfg.Workers.ReconcileInterval)
	assert.Equal(t, []string{"PH"}, cfg.Policy.Countries)
}

func TestGetStructuredConfig_FirestoreBackendRequiresProject(t *testing.T) {
	t.Setenv("REMOTE_BACKEND", "firestore")
	commandLineArgs = func() []string { return nil }

	_, err := GetStructuredConfig()
	require.ErrorIs(t, err, ErrFirestoreProjectRequired)
}

func TestGetStructuredConfig_UnknownBackend(t *testing.T) {
	t.Setenv("REMOTE_BACKEND", "carrier-pigeon")
	commandLineArgs = func() []string { return nil }

	_, err := GetStructuredConfig()
	require.ErrorIs(t, err, ErrUnknownRemoteBackend)
}

func TestNetAddress_Set(t *testing.T) {
	addr := &NetAddress{}
	require.NoError(t, addr.Set("localhost:8080"))
	assert.Equal(t, "localhost:8080", addr.String())

	require.Error(t, addr.Set("no-port"))
	require.Error(t, addr.Set("host:"))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}
