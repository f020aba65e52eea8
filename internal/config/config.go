package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Supported warehouse drivers.
const (
	DriverDatabricks = "databricks"
	DriverPostgres   = "postgres"
	DriverSQLite     = "sqlite"
)

// DefaultTable is the gold table written by the danger-zone batch job.
const DefaultTable = "workspace.default.gold_danger_zones"

var tablePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*){0,2}$`)

// Config holds all service settings, populated from environment variables.
type Config struct {
	// Warehouse connectivity. Host and path may be empty: the service still
	// starts and reports the missing configuration on every request.
	WarehouseDriver string
	WarehouseHost   string
	WarehousePath   string
	WarehouseToken  string
	WarehouseUser   string
	WarehouseTable  string

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
	APITimeout      time.Duration

	RateLimitRPS       float64
	RateLimitBurst     int
	CORSAllowedOrigins []string

	// Mapbox geocoding configuration.
	MapboxToken   string
	MapboxEnabled bool
	MapboxTimeout time.Duration
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}
	apiTimeout, err := parsePositiveDuration("API_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}
	mapboxTimeout, err := parsePositiveDuration("MAPBOX_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}

	rps, err := strconv.ParseFloat(sharedcfg.EnvOrDefault("RATE_LIMIT_RPS", "5"), 64)
	if err != nil || rps < 0 {
		return nil, errors.New("invalid RATE_LIMIT_RPS")
	}
	burst, err := strconv.Atoi(sharedcfg.EnvOrDefault("RATE_LIMIT_BURST", "10"))
	if err != nil || burst < 1 {
		return nil, errors.New("invalid RATE_LIMIT_BURST")
	}

	host := os.Getenv("DATABRICKS_HOST")
	if host == "" {
		host = os.Getenv("DATABRICKS_SERVER_HOSTNAME")
	}

	mapboxToken := os.Getenv("MAPBOX_TOKEN")
	mapboxEnabled := mapboxToken != ""
	if v := os.Getenv("MAPBOX_ENABLED"); v != "" {
		mapboxEnabled = v == "true"
	}

	cfg := &Config{
		WarehouseDriver: strings.ToLower(sharedcfg.EnvOrDefault("WAREHOUSE_DRIVER", DriverDatabricks)),
		WarehouseHost:   host,
		WarehousePath:   os.Getenv("DATABRICKS_HTTP_PATH"),
		WarehouseToken:  os.Getenv("DATABRICKS_TOKEN"),
		WarehouseUser:   os.Getenv("WAREHOUSE_USER"),
		WarehouseTable:  sharedcfg.EnvOrDefault("WAREHOUSE_TABLE", DefaultTable),

		HTTPAddr:        httpAddr(),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		APITimeout:      apiTimeout,

		RateLimitRPS:       rps,
		RateLimitBurst:     burst,
		CORSAllowedOrigins: sharedcfg.ParseBrokers(os.Getenv("CORS_ALLOWED_ORIGINS")),

		MapboxToken:   mapboxToken,
		MapboxEnabled: mapboxEnabled,
		MapboxTimeout: mapboxTimeout,
	}

	switch cfg.WarehouseDriver {
	case DriverDatabricks, DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("WAREHOUSE_DRIVER %q is not one of databricks, postgres, sqlite", cfg.WarehouseDriver)
	}
	if !tablePattern.MatchString(cfg.WarehouseTable) {
		return nil, fmt.Errorf("WAREHOUSE_TABLE %q is not a valid table name", cfg.WarehouseTable)
	}
	if cfg.MapboxEnabled && cfg.MapboxToken == "" {
		return nil, errors.New("MAPBOX_ENABLED is true but MAPBOX_TOKEN is not set")
	}

	return cfg, nil
}

// WarehouseConfigured reports whether enough connectivity settings are present
// to attempt a connection. SQLite files need no host.
func (c *Config) WarehouseConfigured() bool {
	if c.WarehousePath == "" {
		return false
	}
	return c.WarehouseDriver == DriverSQLite || c.WarehouseHost != ""
}

func httpAddr() string {
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		return v
	}
	if port := os.Getenv("PORT"); port != "" {
		return ":" + port
	}
	return ":5000"
}

func parsePositiveDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}
