package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://report@localhost:5432/erp")
	t.Setenv("APP_ENV", "development")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Addr())
	assert.Equal(t, int32(10), cfg.DB.MaxConns)
	assert.Equal(t, int32(2), cfg.DB.MinConns)
	assert.Equal(t, 30*time.Second, cfg.DB.StatementTimeout)
	assert.Equal(t, "sbreport", cfg.JWT.Issuer)
	assert.Equal(t, devJWTSecret, cfg.JWT.Secret)
	assert.Equal(t, "true", cfg.Report.AccessRule)
	assert.True(t, cfg.Report.ItemCacheEnabled)
	assert.True(t, cfg.App.IsDevelopment())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://report@db:5432/erp")
	t.Setenv("APP_ENV", "production")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_MAX_CONNS", "40")
	t.Setenv("DB_STATEMENT_TIMEOUT", "5s")
	t.Setenv("ITEM_CACHE_ENABLED", "false")
	t.Setenv("REPORT_ACCESS_RULE", "user.is_admin")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTP.Addr())
	assert.Equal(t, "s3cret", cfg.JWT.Secret)
	assert.Equal(t, int32(40), cfg.DB.MaxConns)
	assert.Equal(t, 5*time.Second, cfg.DB.StatementTimeout)
	assert.False(t, cfg.Report.ItemCacheEnabled)
	assert.Equal(t, "user.is_admin", cfg.Report.AccessRule)
	assert.False(t, cfg.App.IsDevelopment())
}

func TestLoad_ProductionRequiresSecrets(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestValidate_PoolBounds(t *testing.T) {
	cfg := &Config{
		DB:  DBConfig{URL: "postgres://x", MaxConns: 2, MinConns: 5},
		JWT: JWTConfig{Secret: "x"},
	}
	assert.ErrorContains(t, cfg.Validate(), "DB_MIN_CONNS")
}

func TestLoadJWT_NeedsNoDatabase(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("JWT_TTL", "1h")

	cfg, err := LoadJWT()
	require.NoError(t, err)
	assert.Equal(t, devJWTSecret, cfg.Secret)
	assert.Equal(t, time.Hour, cfg.TTL)

	t.Setenv("APP_ENV", "production")
	_, err = LoadJWT()
	assert.Error(t, err)
}
