package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	HTTP  HTTPConfig
	DB    DBConfig
	Redis RedisConfig
	Log   LogConfig
	OTLP  OTLPConfig
}

type HTTPConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DBConfig struct {
	Driver    string
	Host      string
	Port      string
	User      string
	Password  string
	Name      string
	SSLMode   string
	SQLiteDSN string
}

// DSN returns the postgres connection string in key=value form. Values are
// quoted so spaces, quotes and backslashes survive.
func (c DBConfig) DSN() string {
	pairs := []struct{ key, value string }{
		{"host", c.Host},
		{"port", c.Port},
		{"user", c.User},
		{"password", c.Password},
		{"dbname", c.Name},
		{"sslmode", c.SSLMode},
	}

	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = p.key + "=" + quoteDSNValue(p.value)
	}
	return strings.Join(parts, " ")
}

func quoteDSNValue(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}

// URL returns the postgres connection string in URL form, as expected by
// the migration driver.
func (c DBConfig) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, c.Port),
		Path:     "/" + c.Name,
		RawQuery: url.Values{"sslmode": {c.SSLMode}}.Encode(),
	}
	return u.String()
}

// RedisConfig configures the product cache. An empty Addr disables it.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

type LogConfig struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// OTLPConfig configures trace export. An empty Endpoint keeps traces local.
type OTLPConfig struct {
	Endpoint    string
	ServiceName string
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	httpCfg, err := loadHTTPConfig()
	if err != nil {
		return nil, fmt.Errorf("http config: %w", err)
	}

	dbCfg, err := loadDBConfig()
	if err != nil {
		return nil, fmt.Errorf("db config: %w", err)
	}

	redisCfg, err := loadRedisConfig()
	if err != nil {
		return nil, fmt.Errorf("redis config: %w", err)
	}

	logCfg, err := loadLogConfig()
	if err != nil {
		return nil, fmt.Errorf("log config: %w", err)
	}

	return &Config{
		HTTP:  *httpCfg,
		DB:    *dbCfg,
		Redis: *redisCfg,
		Log:   *logCfg,
		OTLP: OTLPConfig{
			Endpoint:    os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
			ServiceName: getEnvOrDefault("OTEL_SERVICE_NAME", "catalog"),
		},
	}, nil
}

func loadHTTPConfig() (*HTTPConfig, error) {
	const (
		defaultPort         = "8080"
		defaultReadTimeout  = 5 * time.Second
		defaultWriteTimeout = 10 * time.Second
		defaultIdleTimeout  = 60 * time.Second
	)

	readTimeout, err := parseDurationEnv("HTTP_READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		return nil, err
	}
	writeTimeout, err := parseDurationEnv("HTTP_WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		return nil, err
	}
	idleTimeout, err := parseDurationEnv("HTTP_IDLE_TIMEOUT", defaultIdleTimeout)
	if err != nil {
		return nil, err
	}

	return &HTTPConfig{
		Port:         getEnvOrDefault("HTTP_PORT", defaultPort),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}, nil
}

func loadDBConfig() (*DBConfig, error) {
	const (
		defaultHost      = "localhost"
		defaultPort      = "5432"
		defaultSSLMode   = "disable"
		defaultSQLiteDSN = "file::memory:?cache=shared"
	)

	cfg := &DBConfig{
		Driver:    getEnvOrDefault("DB_DRIVER", DriverPostgres),
		Host:      getEnvOrDefault("POSTGRES_HOST", defaultHost),
		Port:      getEnvOrDefault("POSTGRES_PORT", defaultPort),
		User:      os.Getenv("POSTGRES_USER"),
		Password:  os.Getenv("POSTGRES_PASSWORD"),
		Name:      os.Getenv("POSTGRES_DB"),
		SSLMode:   getEnvOrDefault("POSTGRES_SSLMODE", defaultSSLMode),
		SQLiteDSN: getEnvOrDefault("SQLITE_DSN", defaultSQLiteDSN),
	}

	switch cfg.Driver {
	case DriverPostgres:
		var missing []error
		for _, required := range []struct{ key, value string }{
			{"POSTGRES_USER", cfg.User},
			{"POSTGRES_PASSWORD", cfg.Password},
			{"POSTGRES_DB", cfg.Name},
		} {
			if required.value == "" {
				missing = append(missing, fmt.Errorf("%s is required", required.key))
			}
		}
		if err := errors.Join(missing...); err != nil {
			return nil, err
		}
	case DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}

	return cfg, nil
}

func loadRedisConfig() (*RedisConfig, error) {
	const (
		defaultDB  = 0
		defaultTTL = 3 * time.Minute
	)

	db, err := parseIntEnv("REDIS_DB", defaultDB)
	if err != nil {
		return nil, err
	}
	ttl, err := parseDurationEnv("CACHE_TTL", defaultTTL)
	if err != nil {
		return nil, err
	}

	return &RedisConfig{
		Addr:     os.Getenv("REDIS_ADDR"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       db,
		TTL:      ttl,
	}, nil
}

func loadLogConfig() (*LogConfig, error) {
	const (
		defaultLevel      = "info"
		defaultMaxSizeMB  = 10
		defaultMaxBackups = 3
		defaultMaxAgeDays = 28
	)

	maxSize, err := parseIntEnv("LOG_MAX_SIZE_MB", defaultMaxSizeMB)
	if err != nil {
		return nil, err
	}
	maxBackups, err := parseIntEnv("LOG_MAX_BACKUPS", defaultMaxBackups)
	if err != nil {
		return nil, err
	}
	maxAge, err := parseIntEnv("LOG_MAX_AGE_DAYS", defaultMaxAgeDays)
	if err != nil {
		return nil, err
	}

	return &LogConfig{
		Level:      getEnvOrDefault("LOG_LEVEL", defaultLevel),
		File:       os.Getenv("LOG_FILE"),
		MaxSizeMB:  maxSize,
		MaxBackups: maxBackups,
		MaxAgeDays: maxAge,
	}, nil
}

// getEnvOrDefault returns the variable's value, or defaultValue when it is unset or empty.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
