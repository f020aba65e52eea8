// Command dangerzones serves the latest danger-zone snapshot from the
// analytics warehouse, or prints it once for inspection.
//
// Usage:
//
//	dangerzones serve
//	dangerzones snapshot [--pretty]
//
// Configuration comes from the environment (see internal/config). A .env file
// in the working directory is loaded first when present.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/couchcryptid/danger-zones/internal/adapter/mapbox"
	"github.com/couchcryptid/danger-zones/internal/adapter/warehouse"
	"github.com/couchcryptid/danger-zones/internal/config"
	"github.com/couchcryptid/danger-zones/internal/domain"
	"github.com/couchcryptid/danger-zones/internal/observability"
	"github.com/couchcryptid/danger-zones/internal/pipeline"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:           "dangerzones",
		Short:         "Serve the latest danger-zone snapshot and its top zones",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newSnapshotCmd())

	if err := root.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

// setup loads configuration and wires the snapshot service. Logs go to logOut.
func setup(logOut io.Writer) (*config.Config, *slog.Logger, *observability.Metrics, *pipeline.Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger := observability.NewLogger(logOut, cfg)
	metrics := observability.NewMetrics()

	connector, err := warehouse.NewConnector(cfg)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	fetcher := warehouse.NewFetcher(connector, cfg.WarehouseTable, logger)

	// Initialize geocoder (feature-flagged via MAPBOX_ENABLED / MAPBOX_TOKEN).
	var geocoder domain.Geocoder
	if cfg.MapboxEnabled {
		geocoder = mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, metrics, logger)
		metrics.GeocodeEnabled.Set(1)
		logger.Info("mapbox geocoding enabled", "timeout", cfg.MapboxTimeout)
	} else {
		logger.Info("mapbox geocoding disabled")
	}

	if !cfg.WarehouseConfigured() {
		logger.Warn("warehouse configuration incomplete; snapshot requests will fail",
			"driver", cfg.WarehouseDriver,
			"host_set", cfg.WarehouseHost != "",
			"path_set", cfg.WarehousePath != "",
		)
	}

	svc := pipeline.New(cfg, fetcher, geocoder, logger, metrics)
	return cfg, logger, metrics, svc, nil
}
