package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "atelier.db", cfg.DSN())
	assert.Equal(t, ":8083", cfg.HTTPAddr)
	assert.True(t, cfg.StoreCache)
	assert.Equal(t, 5*time.Second, cfg.ImageEncodeTimeout)
}

func TestLoadFromEnvFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("DB_DRIVER", "")
	os.Unsetenv("DB_DRIVER")
	t.Setenv("POSTGRES_DSN", "")
	os.Unsetenv("POSTGRES_DSN")

	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("DB_DRIVER=postgres\nPOSTGRES_DSN=postgres://a:b@localhost/atelier\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, "postgres://a:b@localhost/atelier", cfg.DSN())
}

func TestValidateRejectsBadDriver(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DB_DRIVER", "mongo")

	_, err := Load()
	assert.ErrorContains(t, err, "unknown DB_DRIVER")
}

func TestValidatePostgresNeedsDSN(t *testing.T) {
	cfg := Config{DBDriver: DriverPostgres, ImageMaxBytes: 1}
	assert.Error(t, cfg.Validate())
}
