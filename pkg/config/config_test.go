package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-ledger/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "almacen-ledger", cfg.App.Name)
	assert.Equal(t, config.StoreBackendPostgres, cfg.DB.Backend)
	assert.Equal(t, "GEN", cfg.Ledger.DefaultSeries)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.True(t, cfg.DB.MigrateOnStart)
}

func TestLoad_LeeVariablesDeEntorno(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("STORE_BACKEND", "MEMORY")
	t.Setenv("LEDGER_DEFAULT_SERIES", "ALM")
	t.Setenv("DB_EMBEDDED", "true")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, config.StoreBackendMemory, cfg.DB.Backend)
	assert.Equal(t, "ALM", cfg.Ledger.DefaultSeries)
	assert.True(t, cfg.DB.Embedded)
}

func TestLoad_BackendInvalido(t *testing.T) {
	t.Setenv("STORE_BACKEND", "mysql")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "ledger", Password: "p@ss:word", DBName: "almacen", SSLMode: "disable"}
	assert.Equal(t, "postgres://ledger:p%40ss%3Aword@db:5432/almacen?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
