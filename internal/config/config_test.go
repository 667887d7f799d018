package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "no-such.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultBackend, cfg.Storage.Backend)
	assert.Equal(t, DefaultDBPath, cfg.Storage.Path)
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
	assert.Equal(t, DefaultTokenTTL, cfg.Admin.TokenTTL.Std())
	assert.NotEmpty(t, cfg.Admin.TokenSecret)

	// Дефолтные хеши реально проверяют исторические секреты
	assert.NoError(t, bcrypt.CompareHashAndPassword(
		[]byte(cfg.Admin.PrimaryPINHash), []byte("1234")))
	assert.NoError(t, bcrypt.CompareHashAndPassword(
		[]byte(cfg.Admin.SecurityPINHash), []byte("5678")))
	assert.NoError(t, bcrypt.CompareHashAndPassword(
		[]byte(cfg.Admin.SecurityAnswerHash), []byte("blue")))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
storage:
  backend: sqlite
  path: /tmp/store.db
log:
  level: debug
admin:
  token_secret: super-secret
  token_ttl: 30m
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, "/tmp/store.db", cfg.Storage.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "super-secret", cfg.Admin.TokenSecret)
	assert.Equal(t, 30*time.Minute, cfg.Admin.TokenTTL.Std())

	// Незаданные секреты добиты дефолтами
	assert.NotEmpty(t, cfg.Admin.PrimaryPINHash)
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  backend: redis\n"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis")
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage: [broken"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}
