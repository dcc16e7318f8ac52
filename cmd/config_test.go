package cmd

import (
	"testing"
	"time"

	"dispatch/internal/core/ports"
	"dispatch/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(env(nil))

	require.NoError(t, err)
	assert.Equal(t, "51544", cfg.HTTPPort)
	assert.Equal(t, 10*time.Second, cfg.HTTPShutdownTimeout)
	assert.Equal(t, StoreMemory, cfg.OrderStore)
	assert.Equal(t, ports.CreatePolicyOverwrite, cfg.OrderCreatePolicy)
	assert.Equal(t, jobs.DefaultOrderStatsSchedule, cfg.StatsJobSchedule)
	assert.Empty(t, cfg.KafkaBrokers())
}

func TestLoadConfig_Overrides(t *testing.T) {
	cfg, err := LoadConfig(env(map[string]string{
		"HTTP_PORT":             "8080",
		"HTTP_SHUTDOWN_TIMEOUT": "3s",
		"ORDER_STORE":           "Redis",
		"ORDER_CREATE_POLICY":   "reject",
		"REDIS_ADDR":            "cache:6379",
		"REDIS_DB":              "2",
		"KAFKA_HOST":            "k1:9092, k2:9092,",
	}))

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 3*time.Second, cfg.HTTPShutdownTimeout)
	assert.Equal(t, StoreRedis, cfg.OrderStore)
	assert.Equal(t, ports.CreatePolicyReject, cfg.OrderCreatePolicy)
	assert.Equal(t, "cache:6379", cfg.RedisAddr)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers())
}

func TestLoadConfig_MalformedValuesReportedTogether(t *testing.T) {
	_, err := LoadConfig(env(map[string]string{
		"HTTP_SHUTDOWN_TIMEOUT": "soon",
		"ORDER_CREATE_POLICY":   "merge",
		"REDIS_DB":              "one",
	}))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP_SHUTDOWN_TIMEOUT")
	assert.Contains(t, err.Error(), "ORDER_CREATE_POLICY")
	assert.Contains(t, err.Error(), "REDIS_DB")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{name: "bad port", mutate: func(c *Config) { c.HTTPPort = "http" }, wantErr: "HTTP_PORT"},
		{name: "unknown store", mutate: func(c *Config) { c.OrderStore = "mongo" }, wantErr: "ORDER_STORE"},
		{name: "postgres without host", mutate: func(c *Config) { c.OrderStore = StorePostgres }, wantErr: "DB_HOST"},
		{
			name: "postgres complete",
			mutate: func(c *Config) {
				c.OrderStore = StorePostgres
				c.DBHost, c.DBName, c.DBUser = "db", "dispatch", "app"
			},
		},
		{name: "redis without addr", mutate: func(c *Config) { c.OrderStore, c.RedisAddr = StoreRedis, "" }, wantErr: "REDIS_ADDR"},
		{
			name:    "kafka without topic",
			mutate:  func(c *Config) { c.KafkaHost, c.KafkaOrderChangedTopic = "k:9092", "" },
			wantErr: "KAFKA_ORDER_CHANGED_TOPIC",
		},
		{name: "zero shutdown timeout", mutate: func(c *Config) { c.HTTPShutdownTimeout = 0 }, wantErr: "HTTP_SHUTDOWN_TIMEOUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()

			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_PostgresDSN(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DBHost, cfg.DBName, cfg.DBUser, cfg.DBPassword = "db", "dispatch", "app", "p@ss"

	assert.Equal(t, "postgres://app:p%40ss@db:5432/dispatch?sslmode=disable", cfg.PostgresDSN())
}
