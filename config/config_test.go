package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(viper.New(), t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "sqlite3", cfg.Database.Driver)
	assert.Equal(t, 2*time.Second, cfg.Store.ReadTimeout)
	assert.Equal(t, 1, cfg.Store.Retries)
	assert.Equal(t, 5*time.Second, cfg.Achievements.Cooldown)
	assert.True(t, cfg.Achievements.SerializePerUser)
	assert.Equal(t, 10, cfg.Notifications.ShownRetention)
	assert.Equal(t, 50, cfg.Activity.Retention)
	assert.False(t, cfg.Auth.Enabled)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadWith_FileAndLocalOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(`
server:
  port: "9090"
achievements:
  cooldown: 30s
database:
  driver: postgres
  url: postgres://localhost/achievements
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.local.yaml"), []byte(`
achievements:
  cooldown: 1s
`), 0o644))

	cfg, err := LoadWith(viper.New(), dir)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, time.Second, cfg.Achievements.Cooldown)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "postgres://localhost/achievements", cfg.Database.URL)
}

func TestLoadWith_EnvOverride(t *testing.T) {
	t.Setenv("CAPSULE_LOG_LEVEL", "debug")
	t.Setenv("CAPSULE_NOTIFICATIONS_SHOWN_RETENTION", "3")

	cfg, err := LoadWith(viper.New(), t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 3, cfg.Notifications.ShownRetention)
}

func TestLoadWith_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server: [unclosed"), 0o644))

	_, err := LoadWith(viper.New(), dir)
	assert.Error(t, err)
}
