package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "traveltime.yml"))
	require.NoError(t, err)

	require.Equal(t, "Travel time", cfg.CalendarName)
	require.Equal(t, "driving", cfg.Transport)
	require.Equal(t, 4*time.Hour, time.Duration(cfg.LocationStaleness))
	require.Equal(t, 5*time.Hour, time.Duration(cfg.MaxCommute))
	require.Equal(t, 30*24*time.Hour, time.Duration(cfg.CacheTTL))
}

func TestLoad_ParsesDurations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traveltime.yml")
	err := os.WriteFile(path, []byte(`
calendar_name: Commutes
transport: transit
location_staleness: 2h30m
max_commute: 3h
cache_ttl: 168h
cron: "0 6 * * *"
skip_calendars:
  - Birthdays
maps:
  api_key: secret
`), 0o600)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "Commutes", cfg.CalendarName)
	require.Equal(t, "transit", cfg.Transport)
	require.Equal(t, 2*time.Hour+30*time.Minute, time.Duration(cfg.LocationStaleness))
	require.Equal(t, 3*time.Hour, time.Duration(cfg.MaxCommute))
	require.Equal(t, 7*24*time.Hour, time.Duration(cfg.CacheTTL))
	require.Equal(t, "0 6 * * *", cfg.Cron)
	require.Equal(t, []string{"Birthdays"}, cfg.SkipCalendars)
	require.Equal(t, "secret", cfg.Maps.APIKey)
}

func TestLoad_BadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traveltime.yml")
	err := os.WriteFile(path, []byte("max_commute: five hours\n"), 0o600)
	require.NoError(t, err)

	_, err = Load(path)
	require.Error(t, err)
}

func TestLoad_PartialFileGetsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traveltime.yml")
	err := os.WriteFile(path, []byte("transport: walking\n"), 0o600)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "walking", cfg.Transport)
	require.Equal(t, "Travel time", cfg.CalendarName)
	require.Equal(t, 5*time.Hour, time.Duration(cfg.MaxCommute))
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traveltime.yml")

	cfg := Default()
	cfg.Transport = "bicycling"
	cfg.MaxCommute = Duration(90 * time.Minute)
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "bicycling", got.Transport)
	require.Equal(t, 90*time.Minute, time.Duration(got.MaxCommute))
}
