package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	unsetEnv(t, "PORT", "DATA_SOURCE", "MONGO_URI", "GEMINI_MODEL", "RATE_LIMIT_REQUESTS",
		"RATE_LIMIT_WINDOW", "CORS_ORIGINS", "OTEL_ENABLED", "ADVISOR_CACHE_TTL")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, SourceMemory, cfg.DataSource)
	assert.Equal(t, "gemini-2.0-flash", cfg.GeminiModel)
	assert.Equal(t, 100, cfg.RateLimitRequests)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, time.Hour, cfg.AdvisorCacheTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.False(t, cfg.OTelEnabled)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATA_SOURCE", "Mongo")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("ADVISOR_CACHE_TTL", "90")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")
	t.Setenv("RATE_LIMIT_REQUESTS", "5")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test ,")
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("APP_ENV", "Production")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, SourceMongo, cfg.DataSource)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, 90*time.Second, cfg.AdvisorCacheTTL)
	assert.Equal(t, 30*time.Second, cfg.RateLimitWindow)
	assert.Equal(t, 5, cfg.RateLimitRequests)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.True(t, cfg.OTelEnabled)
	assert.True(t, cfg.IsProduction())
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown data source", map[string]string{"DATA_SOURCE": "postgres"}},
		{"mongo without uri", map[string]string{"DATA_SOURCE": "mongo", "MONGO_URI": ""}},
		{"bad redis db", map[string]string{"REDIS_DB": "x"}},
		{"bad window", map[string]string{"RATE_LIMIT_WINDOW": "soon"}},
		{"zero requests", map[string]string{"RATE_LIMIT_REQUESTS": "0"}},
		{"bad bool", map[string]string{"OTEL_ENABLED": "maybe"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DATA_SOURCE", "memory")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}
