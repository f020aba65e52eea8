package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testHost        = "adb-1234.5.azuredatabricks.net"
	testHTTPPath    = "/sql/1.0/warehouses/abc123"
	testMapboxToken = "pk.test-token"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverDatabricks, cfg.WarehouseDriver)
	assert.Empty(t, cfg.WarehouseHost)
	assert.Empty(t, cfg.WarehousePath)
	assert.Empty(t, cfg.WarehouseToken)
	assert.Equal(t, DefaultTable, cfg.WarehouseTable)
	assert.Equal(t, ":5000", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 30*time.Second, cfg.APITimeout)
	assert.InDelta(t, 5.0, cfg.RateLimitRPS, 1e-9)
	assert.Equal(t, 10, cfg.RateLimitBurst)
	assert.Empty(t, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.MapboxEnabled)
	assert.Equal(t, 5*time.Second, cfg.MapboxTimeout)
	assert.False(t, cfg.WarehouseConfigured())
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("WAREHOUSE_DRIVER", "Postgres")
	t.Setenv("DATABRICKS_HOST", testHost)
	t.Setenv("DATABRICKS_HTTP_PATH", testHTTPPath)
	t.Setenv("DATABRICKS_TOKEN", "dapi-secret")
	t.Setenv("WAREHOUSE_USER", "reader")
	t.Setenv("WAREHOUSE_TABLE", "analytics.gold_danger_zones")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("API_TIMEOUT", "2s")
	t.Setenv("RATE_LIMIT_RPS", "0.5")
	t.Setenv("RATE_LIMIT_BURST", "3")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://maps.example.com, http://localhost:5173")
	t.Setenv("MAPBOX_TOKEN", testMapboxToken)
	t.Setenv("MAPBOX_TIMEOUT", "10s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.WarehouseDriver)
	assert.Equal(t, testHost, cfg.WarehouseHost)
	assert.Equal(t, testHTTPPath, cfg.WarehousePath)
	assert.Equal(t, "dapi-secret", cfg.WarehouseToken)
	assert.Equal(t, "reader", cfg.WarehouseUser)
	assert.Equal(t, "analytics.gold_danger_zones", cfg.WarehouseTable)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 2*time.Second, cfg.APITimeout)
	assert.InDelta(t, 0.5, cfg.RateLimitRPS, 1e-9)
	assert.Equal(t, 3, cfg.RateLimitBurst)
	assert.Equal(t, []string{"https://maps.example.com", "http://localhost:5173"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.MapboxEnabled)
	assert.Equal(t, testMapboxToken, cfg.MapboxToken)
	assert.Equal(t, 10*time.Second, cfg.MapboxTimeout)
	assert.True(t, cfg.WarehouseConfigured())
}

func TestLoad_ServerHostnameFallback(t *testing.T) {
	t.Setenv("DATABRICKS_SERVER_HOSTNAME", testHost)
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, testHost, cfg.WarehouseHost)

	t.Setenv("DATABRICKS_HOST", "preferred.example.com")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "preferred.example.com", cfg.WarehouseHost)
}

func TestLoad_PortFallback(t *testing.T) {
	t.Setenv("PORT", "8081")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8081", cfg.HTTPAddr)
}

func TestLoad_InvalidDriver(t *testing.T) {
	t.Setenv("WAREHOUSE_DRIVER", "oracle")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WAREHOUSE_DRIVER")
}

func TestLoad_InvalidTable(t *testing.T) {
	t.Setenv("WAREHOUSE_TABLE", "zones; DROP TABLE zones")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WAREHOUSE_TABLE")
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_NegativeAPITimeout(t *testing.T) {
	t.Setenv("API_TIMEOUT", "-1s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API_TIMEOUT")
}

func TestLoad_InvalidMapboxTimeout(t *testing.T) {
	t.Setenv("MAPBOX_TIMEOUT", "bad")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAPBOX_TIMEOUT")
}

func TestLoad_InvalidRateLimit(t *testing.T) {
	t.Setenv("RATE_LIMIT_RPS", "-2")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RATE_LIMIT_RPS")
}

func TestLoad_InvalidRateLimitBurst(t *testing.T) {
	t.Setenv("RATE_LIMIT_BURST", "0")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RATE_LIMIT_BURST")
}

func TestLoad_MapboxEnabledWithoutToken(t *testing.T) {
	t.Setenv("MAPBOX_ENABLED", "true")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAPBOX_TOKEN")
}

func TestLoad_MapboxExplicitlyDisabled(t *testing.T) {
	t.Setenv("MAPBOX_TOKEN", testMapboxToken)
	t.Setenv("MAPBOX_ENABLED", "false")
	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.MapboxEnabled)
}

func TestWarehouseConfigured(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want bool
	}{
		{"host and path", Config{WarehouseDriver: DriverDatabricks, WarehouseHost: testHost, WarehousePath: testHTTPPath}, true},
		{"missing host", Config{WarehouseDriver: DriverDatabricks, WarehousePath: testHTTPPath}, false},
		{"missing path", Config{WarehouseDriver: DriverPostgres, WarehouseHost: testHost}, false},
		{"sqlite file only", Config{WarehouseDriver: DriverSQLite, WarehousePath: "zones.db"}, true},
		{"sqlite without file", Config{WarehouseDriver: DriverSQLite}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.WarehouseConfigured())
		})
	}
}
