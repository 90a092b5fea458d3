package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, 5*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.True(t, cfg.Storage.AutoMigrate)
	assert.Equal(t, 10, cfg.Pagination.PageSize)
	assert.Equal(t, "exact", cfg.Reconcile.UpdateMatch)
}

func TestLoad_LegacyEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DSN", "postgres://localhost/pets?sslmode=disable")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, DriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, "postgres://localhost/pets?sslmode=disable", cfg.Storage.DSN)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_PrefixedEnv(t *testing.T) {
	t.Setenv("PETS_STORAGE_DRIVER", "SQLite")
	t.Setenv("PETS_STORAGE_DSN", "file:pets.db")
	t.Setenv("PETS_RECONCILE_UPDATE_MATCH", "contains")
	t.Setenv("PETS_PAGINATION_PAGE_SIZE", "25")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "file:pets.db", cfg.Storage.DSN)
	assert.Equal(t, "contains", cfg.Reconcile.UpdateMatch)
	assert.Equal(t, 25, cfg.Pagination.PageSize)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pets.toml")
	content := `
[http]
addr = ":7000"
write_timeout = "30s"

[storage]
driver = "sqlite"
dsn = "pets.db"
auto_migrate = false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.HTTP.Addr)
	assert.Equal(t, 30*time.Second, cfg.HTTP.WriteTimeout)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.False(t, cfg.Storage.AutoMigrate)
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("missing dsn", func(t *testing.T) {
		t.Setenv("PETS_STORAGE_DRIVER", "postgres")
		_, err := Load("")
		require.Error(t, err)
	})
	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("PETS_STORAGE_DRIVER", "mongo")
		_, err := Load("")
		require.Error(t, err)
	})
	t.Run("unknown match policy", func(t *testing.T) {
		t.Setenv("PETS_RECONCILE_UPDATE_MATCH", "fuzzy")
		_, err := Load("")
		require.Error(t, err)
	})
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})
}
