package util

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DaanHessen/streamer-sim/internal/engine"
)

func TestLoadSettingsDefaults(t *testing.T) {
	s, err := LoadSettings("")
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)
}

func TestLoadSettingsOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	body := `
balance:
  work_payout: 60
  genre_multipliers:
    Prank: 2.0
timing:
  tick: 250ms
  watchdog: 3s
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	s, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, 60.0, s.Balance.WorkPayout)
	assert.Equal(t, 2.0, s.Balance.GenreMultipliers[engine.GenrePrank])
	assert.Equal(t, 1.0, s.Balance.GenreMultipliers[engine.GenreGaming], "untouched keys keep defaults")
	assert.Equal(t, 250*time.Millisecond, s.Timing.Tick)
	assert.Equal(t, 3*time.Second, s.Timing.Watchdog)
	assert.Equal(t, 100, s.Balance.MaxEnergy)
}

func TestLoadSettingsRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"unknown key":    "balance:\n  no_such_field: 1\n",
		"bad balance":    "balance:\n  max_energy: 0\n",
		"watchdog short": "timing:\n  watchdog: 100ms\n",
		"not yaml":       "balance: [",
	}
	for name, body := range cases {
		path := filepath.Join(dir, name+".yaml")
		require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
		_, err := LoadSettings(path)
		assert.Error(t, err, name)
	}

	_, err := LoadSettings(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestParseSettingsEmpty(t *testing.T) {
	s := DefaultSettings()
	require.NoError(t, ParseSettings(nil, &s))
	assert.Equal(t, DefaultSettings(), s)
}

func TestEnvOr(t *testing.T) {
	t.Setenv("STREAMERSIM_TEST_KEY", "set")
	assert.Equal(t, "set", EnvOr("STREAMERSIM_TEST_KEY", "def"))
	assert.Equal(t, "def", EnvOr("STREAMERSIM_TEST_UNSET", "def"))
}
