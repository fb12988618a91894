package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflyair/cargofit/internal/feasibility"
)

// isolate points HOME at an empty directory so a developer's own
// ~/.cargofit/cargofit.yaml cannot leak into the tests.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("CARGOFIT_CONFIG_PATH", "")
	t.Setenv("USER", "tester")
	return home
}

func TestLoad_Defaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "data/aircraft.csv", cfg.Data.Aircraft)
	assert.Equal(t, "data/parts.csv", cfg.Data.Parts)
	assert.Equal(t, 10*time.Minute, cfg.Data.CacheTTL)
	assert.Equal(t, filepath.Join(home, ".cargofit", "cache"), cfg.Data.CacheDir)
	assert.Equal(t, 30*time.Second, cfg.Data.Timeout)
	assert.Equal(t, filepath.Join(home, ".cargofit", "parts.db"), cfg.Store.Path)
	assert.Equal(t, "tester", cfg.Store.Owner)
	assert.Equal(t, feasibility.DefaultMechanicWeight, cfg.Payload.MechanicWeight)
	assert.Equal(t, feasibility.SeatWeightPropagate, cfg.Payload.MissingSeatWeight)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoad_FileAndEnv(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	content := `
data:
  aircraft: https://example.com/fleet.csv
  cache_ttl: 1m
store:
  path: /tmp/parts.db
  owner: hangar-3
payload:
  mechanic_weight: 200
  missing_seat_weight: zero
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("CARGOFIT_LOG_FORMAT", "json")
	t.Setenv("CARGOFIT_STORE_OWNER", "ops")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/fleet.csv", cfg.Data.Aircraft)
	assert.Equal(t, "data/parts.csv", cfg.Data.Parts)
	assert.Equal(t, time.Minute, cfg.Data.CacheTTL)
	assert.Equal(t, "/tmp/parts.db", cfg.Store.Path)
	assert.Equal(t, "ops", cfg.Store.Owner, "env wins over file")
	assert.Equal(t, 200.0, cfg.Payload.MechanicWeight)
	assert.Equal(t, feasibility.SeatWeightAsZero, cfg.Payload.MissingSeatWeight)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_ConfigPathEnv(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "env.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data:\n  parts: parts.xlsx\n"), 0o644))
	t.Setenv("CARGOFIT_CONFIG_PATH", path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "parts.xlsx", cfg.Data.Parts)
}

func TestLoad_Errors(t *testing.T) {
	isolate(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err, "explicit file must exist")

	tests := []struct {
		name string
		env  string
		val  string
	}{
		{"bad policy", "CARGOFIT_PAYLOAD_MISSING_SEAT_WEIGHT", "guess"},
		{"bad level", "CARGOFIT_LOG_LEVEL", "verbose"},
		{"bad format", "CARGOFIT_LOG_FORMAT", "xml"},
		{"negative mechanic", "CARGOFIT_PAYLOAD_MECHANIC_WEIGHT", "-5"},
		{"zero ttl", "CARGOFIT_DATA_CACHE_TTL", "0s"},
		{"blank owner", "CARGOFIT_STORE_OWNER", " "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.env, tt.val)
			_, err := Load("")
			assert.Error(t, err)
		})
	}
}
