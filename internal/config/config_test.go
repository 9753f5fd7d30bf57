package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chtemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chtemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.DBPath)
	assert.Equal(t, "Local", cfg.Timezone)
	assert.Equal(t, "main", cfg.ProfileKey)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoadFromYAML(t *testing.T) {
	dir := chtemp(t)

	yaml := `
db_path: /tmp/rituals-test.db
timezone: America/New_York
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ritualist.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/rituals-test.db", cfg.DBPath)
	assert.Equal(t, "America/New_York", cfg.Timezone)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Defaults still apply for unset values
	assert.Equal(t, "main", cfg.ProfileKey)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := chtemp(t)

	yaml := `
profile_key: alice
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ritualist.yaml"), []byte(yaml), 0644))

	t.Setenv("RIT_PROFILE_KEY", "bob")
	t.Setenv("RIT_LOG_LEVEL", "error")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "bob", cfg.ProfileKey)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestLocation(t *testing.T) {
	cfg := &Config{Timezone: "America/New_York"}
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/New_York", loc.String())

	cfg.Timezone = "Local"
	loc, err = cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	cfg.Timezone = "Atlantis/Nowhere"
	_, err = cfg.Location()
	assert.Error(t, err)
}

func TestInitLogger(t *testing.T) {
	logger, err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, logger)

	logger, err = InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, logger)

	_, err = InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}
