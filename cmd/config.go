package cmd

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"dispatch/internal/core/ports"
	"dispatch/internal/jobs"
)

// StoreKind selects the OrderStore backend.
type StoreKind string

const (
	StoreMemory   StoreKind = "memory"
	StorePostgres StoreKind = "postgres"
	StoreRedis    StoreKind = "redis"
)

type Config struct {
	HTTPPort            string
	HTTPShutdownTimeout time.Duration
	LogLevel            string

	OrderStore        StoreKind
	OrderCreatePolicy ports.CreatePolicy

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	RedisKeyPrefix string

	KafkaHost              string
	KafkaOrderChangedTopic string

	StatsJobSchedule string
}

// DefaultConfig returns the configuration used when no variable is set:
// in-memory storage, overwrite on duplicate ids, no event publishing.
func DefaultConfig() Config {
	return Config{
		HTTPPort:               "51544",
		HTTPShutdownTimeout:    10 * time.Second,
		LogLevel:               "info",
		OrderStore:             StoreMemory,
		OrderCreatePolicy:      ports.CreatePolicyOverwrite,
		DBPort:                 "5432",
		DBSslMode:              "disable",
		RedisAddr:              "localhost:6379",
		RedisKeyPrefix:         "dispatch:",
		KafkaOrderChangedTopic: "order.changed",
		StatsJobSchedule:       jobs.DefaultOrderStatsSchedule,
	}
}

// LoadConfig reads the configuration through getenv, typically os.Getenv
// after the .env file has been loaded. Unset variables keep their defaults.
// Malformed values are reported together.
func LoadConfig(getenv func(string) string) (Config, error) {
	cfg := DefaultConfig()
	var problems []error

	str := func(key string, dst *string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}

	str("HTTP_PORT", &cfg.HTTPPort)
	str("LOG_LEVEL", &cfg.LogLevel)
	str("DB_HOST", &cfg.DBHost)
	str("DB_PORT", &cfg.DBPort)
	str("DB_USER", &cfg.DBUser)
	str("DB_PASSWORD", &cfg.DBPassword)
	str("DB_NAME", &cfg.DBName)
	str("DB_SSLMODE", &cfg.DBSslMode)
	str("REDIS_ADDR", &cfg.RedisAddr)
	str("REDIS_PASSWORD", &cfg.RedisPassword)
	str("REDIS_KEY_PREFIX", &cfg.RedisKeyPrefix)
	str("KAFKA_HOST", &cfg.KafkaHost)
	str("KAFKA_ORDER_CHANGED_TOPIC", &cfg.KafkaOrderChangedTopic)
	str("STATS_JOB_SCHEDULE", &cfg.StatsJobSchedule)

	if v := getenv("HTTP_SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			problems = append(problems, fmt.Errorf("HTTP_SHUTDOWN_TIMEOUT: %w", err))
		} else {
			cfg.HTTPShutdownTimeout = d
		}
	}

	if v := getenv("ORDER_STORE"); v != "" {
		cfg.OrderStore = StoreKind(strings.ToLower(strings.TrimSpace(v)))
	}

	if v := getenv("ORDER_CREATE_POLICY"); v != "" {
		policy, err := ports.ParseCreatePolicy(strings.ToLower(strings.TrimSpace(v)))
		if err != nil {
			problems = append(problems, fmt.Errorf("ORDER_CREATE_POLICY: %w", err))
		} else {
			cfg.OrderCreatePolicy = policy
		}
	}

	if v := getenv("REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			problems = append(problems, fmt.Errorf("REDIS_DB: %w", err))
		} else {
			cfg.RedisDB = db
		}
	}

	if err := errors.Join(problems...); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// Validate checks the settings the selected backends depend on.
func (c Config) Validate() error {
	var problems []error

	if port, err := strconv.Atoi(c.HTTPPort); err != nil || port < 1 || port > 65535 {
		problems = append(problems, fmt.Errorf("HTTP_PORT %q is not a valid port", c.HTTPPort))
	}
	if c.HTTPShutdownTimeout <= 0 {
		problems = append(problems, errors.New("HTTP_SHUTDOWN_TIMEOUT must be positive"))
	}

	switch c.OrderStore {
	case StoreMemory:
	case StorePostgres:
		if c.DBHost == "" {
			problems = append(problems, errors.New("DB_HOST is required for the postgres store"))
		}
		if c.DBName == "" {
			problems = append(problems, errors.New("DB_NAME is required for the postgres store"))
		}
		if c.DBUser == "" {
			problems = append(problems, errors.New("DB_USER is required for the postgres store"))
		}
	case StoreRedis:
		if c.RedisAddr == "" {
			problems = append(problems, errors.New("REDIS_ADDR is required for the redis store"))
		}
		if c.RedisDB < 0 {
			problems = append(problems, errors.New("REDIS_DB must not be negative"))
		}
	default:
		problems = append(problems, fmt.Errorf("ORDER_STORE %q is not one of memory, postgres, redis", c.OrderStore))
	}

	if c.KafkaHost != "" && c.KafkaOrderChangedTopic == "" {
		problems = append(problems, errors.New("KAFKA_ORDER_CHANGED_TOPIC is required when KAFKA_HOST is set"))
	}

	return errors.Join(problems...)
}

// PostgresDSN renders the libpq connection string for the DB_* settings.
func (c Config) PostgresDSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     c.DBName,
		RawQuery: url.Values{"sslmode": []string{c.DBSslMode}}.Encode(),
	}
	return u.String()
}

// KafkaBrokers splits KAFKA_HOST into broker addresses. Empty means event
// publishing is disabled.
func (c Config) KafkaBrokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaHost, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
