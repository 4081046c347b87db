package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("ORG_ID", "")
	t.Setenv("HTTP_PORT", "")
	t.Setenv("DB_MAX_CONNS", "")
	t.Setenv("DB_FORCE_IPV4", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sucursales-pos", cfg.App.Name)
	assert.Equal(t, int64(1), cfg.Org.ID, "ORG_ID vacío o inválido usa el valor por defecto")
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, 30*time.Second, cfg.Redis.DashboardTTL())
	assert.Equal(t, 25, cfg.DB.MaxConns)
	assert.True(t, cfg.DB.ForceIPv4)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "staging")
	t.Setenv("ORG_ID", "7")
	t.Setenv("DEFAULT_PASSWORD", "cambiar123")
	t.Setenv("DB_PASSWORD", "p@ss:word")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_NAME", "pos")
	t.Setenv("DATABASE_URL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, int64(7), cfg.Org.ID)
	assert.Equal(t, "cambiar123", cfg.Org.DefaultPassword)
	assert.Equal(t, "postgres://postgres:p%40ss%3Aword@db:6543/pos?sslmode=disable", cfg.DB.ConnectionString())
}

func TestLoad_ProductionRequiresJWTSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestAppConfig_LocationFallsBackToUTC(t *testing.T) {
	assert.Equal(t, time.UTC, AppConfig{Timezone: "No/Existe"}.Location())
	assert.Equal(t, time.UTC, AppConfig{}.Location())
}
