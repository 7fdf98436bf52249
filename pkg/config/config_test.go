package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "almacen-api", cfg.App.Name)
	assert.Equal(t, float64(10), cfg.Warehouse.CriticalThreshold)
	assert.Equal(t, 15, cfg.Warehouse.SweepIntervalMin)
	assert.Equal(t, 3, cfg.Warehouse.ApplyRetries)
}

func TestLoad_EnvVarsSobreescriben(t *testing.T) {
	t.Setenv("WAREHOUSE_CRITICAL_THRESHOLD", "25.5")
	t.Setenv("WAREHOUSE_SWEEP_INTERVAL_MIN", "0")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 25.5, cfg.Warehouse.CriticalThreshold)
	assert.Equal(t, 0, cfg.Warehouse.SweepIntervalMin)
	assert.Contains(t, cfg.HTTP.Addr(), "9090")
}

func TestLoad_ProduccionExigeSecretoJWT(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := config.Load()
	assert.Error(t, err, "en producción el secreto JWT es obligatorio")
}

func TestDSN(t *testing.T) {
	t.Setenv("DB_HOST", "db.example.com")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_USER", "almacen")
	t.Setenv("DB_PASSWORD", "p4ss")
	t.Setenv("DB_NAME", "almacen_db")
	t.Setenv("DB_SSLMODE", "require")

	cfg, err := config.Load()
	require.NoError(t, err)

	dsn := cfg.DB.ConnectionString()
	assert.Contains(t, dsn, "db.example.com:5433")
	assert.Contains(t, dsn, "almacen_db")
	assert.Contains(t, dsn, "sslmode=require")
}
