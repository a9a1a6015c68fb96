package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

const (
	StoreBackendPostgres = "postgres"
	StoreBackendMemory   = "memory"

	defaultHTTPPort       = "8080"
	defaultGatewayTimeout = 5 * time.Second
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// StoreBackend selects postgres (default) or the in-process memory store.
	StoreBackend string

	// GatewayURL is the API gateway base URL. Empty disables HTTP notifications.
	GatewayURL            string
	GatewayTimeout        time.Duration
	GatewayMaxFailures    uint32
	GatewayBreakerTimeout time.Duration

	// ProgressionSchedule is a cron spec with seconds. Empty disables the job.
	ProgressionSchedule string

	KafkaHost              string
	KafkaOrderChangedTopic string

	LogLevel slog.Level
}

// NewConfigFromEnv reads the configuration through lookup, normally os.Getenv.
func NewConfigFromEnv(lookup func(string) string) (Config, error) {
	config := Config{
		HTTPPort:               valueOr(lookup("HTTP_PORT"), defaultHTTPPort),
		DBHost:                 lookup("DB_HOST"),
		DBPort:                 lookup("DB_PORT"),
		DBUser:                 lookup("DB_USER"),
		DBPassword:             lookup("DB_PASSWORD"),
		DBName:                 lookup("DB_NAME"),
		DBSslMode:              valueOr(lookup("DB_SSLMODE"), "disable"),
		StoreBackend:           strings.ToLower(valueOr(lookup("STORE_BACKEND"), StoreBackendPostgres)),
		GatewayURL:             strings.TrimRight(lookup("GATEWAY_URL"), "/"),
		ProgressionSchedule:    strings.TrimSpace(lookup("PROGRESSION_SCHEDULE")),
		KafkaHost:              lookup("KAFKA_HOST"),
		KafkaOrderChangedTopic: lookup("KAFKA_ORDER_CHANGED_TOPIC"),
	}

	var errList []error

	if config.StoreBackend != StoreBackendPostgres && config.StoreBackend != StoreBackendMemory {
		errList = append(errList, fmt.Errorf("STORE_BACKEND: unsupported backend %q", config.StoreBackend))
	}

	var err error
	if config.GatewayTimeout, err = durationOr(lookup("GATEWAY_TIMEOUT"), defaultGatewayTimeout); err != nil {
		errList = append(errList, fmt.Errorf("GATEWAY_TIMEOUT: %w", err))
	}
	if config.GatewayBreakerTimeout, err = durationOr(lookup("GATEWAY_BREAKER_TIMEOUT"), 0); err != nil {
		errList = append(errList, fmt.Errorf("GATEWAY_BREAKER_TIMEOUT: %w", err))
	}
	if raw := lookup("GATEWAY_MAX_FAILURES"); raw != "" {
		maxFailures, parseErr := strconv.ParseUint(raw, 10, 32)
		if parseErr != nil {
			errList = append(errList, fmt.Errorf("GATEWAY_MAX_FAILURES: %w", parseErr))
		}
		config.GatewayMaxFailures = uint32(maxFailures)
	}
	if raw := lookup("LOG_LEVEL"); raw != "" {
		if err = config.LogLevel.UnmarshalText([]byte(raw)); err != nil {
			errList = append(errList, fmt.Errorf("LOG_LEVEL: %w", err))
		}
	}

	return config, errors.Join(errList...)
}

// DatabaseDSN renders the lib/pq connection string.
func (c Config) DatabaseDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func durationOr(raw string, fallback time.Duration) (time.Duration, error) {
	if raw == "" {
		return fallback, nil
	}
	return time.ParseDuration(raw)
}
