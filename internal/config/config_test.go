package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg := FromEnv()

	assert.Equal(t, "Store Pilot", cfg.App.Name)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.False(t, cfg.Database.Enabled)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, CatalogSourceFile, cfg.Catalog.Source)
	assert.Equal(t, 2, cfg.LLM.MaxFunctionCalls)
	assert.False(t, cfg.Haggle.Seeded)
	assert.Equal(t, "session_id", cfg.Session.CookieName)
	require.NoError(t, cfg.Validate())
	assert.True(t, cfg.IsDevelopment())
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("HAGGLE_SEED", "42")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("SESSION_IDLE_TIMEOUT", "5m")
	t.Setenv("OPENAI_TEMPERATURE", "0.2")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "6380")

	cfg := FromEnv()

	assert.True(t, cfg.IsProduction())
	assert.True(t, cfg.Haggle.Seeded)
	assert.Equal(t, uint64(42), cfg.Haggle.Seed)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 5*time.Minute, cfg.Session.IdleTimeout)
	assert.InDelta(t, 0.2, cfg.LLM.Temperature, 1e-9)
	assert.Equal(t, "cache:6380", cfg.GetRedisAddr())
}

func TestFromEnv_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("HAGGLE_SEED", "-3")
	t.Setenv("LLM_MAX_FUNCTION_CALLS", "two")

	cfg := FromEnv()

	assert.False(t, cfg.Haggle.Seeded)
	assert.Equal(t, 2, cfg.LLM.MaxFunctionCalls)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"short secret", func(c *Config) { c.JWT.Secret = "short" }, "JWT_SECRET"},
		{"missing port", func(c *Config) { c.Server.Port = "" }, "APP_PORT"},
		{"database host", func(c *Config) { c.Database.Enabled = true; c.Database.Host = "" }, "DB_HOST"},
		{"postgres catalog needs database", func(c *Config) { c.Catalog.Source = CatalogSourcePostgres }, "DB_ENABLED"},
		{"unknown catalog source", func(c *Config) { c.Catalog.Source = "s3" }, "CATALOG_SOURCE"},
		{"function budget", func(c *Config) { c.LLM.MaxFunctionCalls = 0 }, "LLM_MAX_FUNCTION_CALLS"},
		{"kafka brokers", func(c *Config) { c.Kafka.Enabled = true; c.Kafka.Brokers = nil }, "KAFKA_BROKERS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := FromEnv()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestGetDatabaseDSN(t *testing.T) {
	cfg := FromEnv()
	assert.Equal(t, "host=localhost port=5432 user=storepilot password=storepilot dbname=storepilot sslmode=disable", cfg.GetDatabaseDSN())
}
