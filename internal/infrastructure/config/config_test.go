package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "app:\n  name: Test Catalog\n"))
	require.NoError(t, err)

	assert.Equal(t, "Test Catalog", cfg.App.Name)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "catalog.db", cfg.Database.DSN())
	assert.Equal(t, ChartBackendGoChart, cfg.Charts.Backend)
	assert.True(t, cfg.Charts.IsolateFailures)
	assert.True(t, cfg.Recipes.EnforceNonNegativeCookingTime)
	assert.Equal(t, 24*time.Hour, cfg.Auth.JWTExpiration)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Address())
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	path := writeConfig(t, `
charts:
  isolate_failures: false
  backend: noop
database:
  driver: postgres
  host: db
  username: catalog
  password: secret
`)
	t.Setenv("CATALOG_SERVER_PORT", "9191")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.False(t, cfg.Charts.IsolateFailures)
	assert.Equal(t, ChartBackendNoop, cfg.Charts.Backend)
	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, "host=db port=5432 user=catalog password=secret dbname=catalog sslmode=disable", cfg.Database.DSN())
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"unknown driver":  "database:\n  driver: oracle\n",
		"unknown backend": "charts:\n  backend: matplotlib\n",
		"bad port":        "server:\n  port: 70000\n",
		"prod secret":     "app:\n  environment: production\n",
		"redis addr":      "redis:\n  enabled: true\n  addr: \"\"\n",
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	path := writeConfig(t, "app:\n  log_level: info\n")
	cfg, v, err := LoadWithViper(path)
	require.NoError(t, err)
	require.Equal(t, "info", cfg.App.LogLevel)

	changes := make(chan *Config, 4)
	Watch(v, func(c *Config) { changes <- c }, nil)

	require.NoError(t, os.WriteFile(path, []byte("app:\n  log_level: debug\n"), 0o600))

	select {
	case c := <-changes:
		assert.Equal(t, "debug", c.App.LogLevel)
	case <-time.After(5 * time.Second):
		t.Fatal("config change was not observed")
	}
}
