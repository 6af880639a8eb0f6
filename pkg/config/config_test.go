package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platinummonkey/orgmaster/pkg/observability"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ORGMASTER_JWT_SECRET", "test-secret")
}

func TestLoadConfigDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "9090", cfg.Server.OpsPort)
	assert.Equal(t, "memory", cfg.Storage.Type)
	assert.Equal(t, 168*time.Hour, cfg.Auth.TokenTTL)
	assert.True(t, cfg.Janitor.Enabled)
	assert.Equal(t, "@hourly", cfg.Janitor.Schedule)
	assert.Equal(t, observability.InfoLevel, cfg.Observability.LogLevel)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("ORGMASTER_PORT", "8888")
	t.Setenv("ORGMASTER_STORAGE_TYPE", "postgres")
	t.Setenv("ORGMASTER_POSTGRES_URL", "postgres://localhost/orgmaster")
	t.Setenv("ORGMASTER_POSTGRES_MAX_CONNS", "50")
	t.Setenv("ORGMASTER_TOKEN_TTL", "24h")
	t.Setenv("ORGMASTER_LOG_LEVEL", "debug")
	t.Setenv("ORGMASTER_CACHE_ENABLED", "true")
	t.Setenv("ORGMASTER_REDIS_URL", "redis://localhost:6379")
	t.Setenv("ORGMASTER_CACHE_TTL", "90s")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8888", cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Storage.Type)
	assert.Equal(t, 50, cfg.Storage.PostgresMaxConns)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, observability.DebugLevel, cfg.Observability.LogLevel)
	assert.True(t, cfg.Storage.CacheEnabled)
	assert.Equal(t, 90*time.Second, cfg.Storage.CacheTTL)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*testing.T)
		wantErr string
	}{
		{
			name:    "missing jwt secret",
			mutate:  func(t *testing.T) { t.Setenv("ORGMASTER_JWT_SECRET", "") },
			wantErr: "JWT secret",
		},
		{
			name: "postgres without url",
			mutate: func(t *testing.T) {
				t.Setenv("ORGMASTER_STORAGE_TYPE", "postgres")
			},
			wantErr: "postgres URL",
		},
		{
			name: "unknown storage type",
			mutate: func(t *testing.T) {
				t.Setenv("ORGMASTER_STORAGE_TYPE", "cassandra")
			},
			wantErr: "invalid storage type",
		},
		{
			name: "cache without redis",
			mutate: func(t *testing.T) {
				t.Setenv("ORGMASTER_CACHE_ENABLED", "true")
			},
			wantErr: "redis URL",
		},
		{
			name: "port collision",
			mutate: func(t *testing.T) {
				t.Setenv("ORGMASTER_PORT", "9090")
			},
			wantErr: "must be different",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setBaseEnv(t)
			tt.mutate(t)

			_, err := LoadConfig()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, observability.DebugLevel, parseLogLevel("debug"))
	assert.Equal(t, observability.WarnLevel, parseLogLevel("WARNING"))
	assert.Equal(t, observability.ErrorLevel, parseLogLevel("error"))
	assert.Equal(t, observability.InfoLevel, parseLogLevel("bogus"))
}
