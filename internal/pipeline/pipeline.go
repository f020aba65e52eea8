package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/danger-zones/internal/config"
	"github.com/couchcryptid/danger-zones/internal/domain"
	"github.com/couchcryptid/danger-zones/internal/observability"
)

// SnapshotFetcher reads every report of the latest warehouse run.
type SnapshotFetcher interface {
	FetchLatestPoints(ctx context.Context) ([]domain.RawPoint, error)
}

// Service produces the danger-zone payload: fetch the snapshot, summarize
// it, and optionally name the top zones. One request maps to exactly one
// fetch attempt; there are no retries and no shared state between calls.
type Service struct {
	cfg      *config.Config
	fetcher  SnapshotFetcher
	geocoder domain.Geocoder
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// New creates a Service. Pass a nil geocoder to disable place names.
func New(cfg *config.Config, fetcher SnapshotFetcher, geocoder domain.Geocoder, logger *slog.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		cfg:      cfg,
		fetcher:  fetcher,
		geocoder: geocoder,
		logger:   logger,
		metrics:  metrics,
	}
}

// CheckReadiness reports the service as not ready while the warehouse
// connection settings are incomplete. It never contacts the warehouse.
func (s *Service) CheckReadiness(_ context.Context) error {
	if !s.cfg.WarehouseConfigured() {
		return domain.ErrConfigMissing
	}
	return nil
}

// GetDangerData returns the latest snapshot with its top zones, or nil when
// configuration is missing or any step fails. Failures are logged and counted
// here and never reach the caller as errors; the result is all or nothing.
func (s *Service) GetDangerData(ctx context.Context) *domain.DangerData {
	data, err := s.load(ctx)
	if err != nil {
		outcome := classify(err)
		s.metrics.SnapshotRequests.WithLabelValues(outcome).Inc()
		if outcome == observability.OutcomeConfigMissing {
			s.logger.Warn("danger zone snapshot skipped", "outcome", outcome, "error", err)
		} else {
			s.logger.Error("danger zone snapshot failed", "outcome", outcome, "error", err)
		}
		return nil
	}

	s.metrics.SnapshotRequests.WithLabelValues(observability.OutcomeSuccess).Inc()
	s.metrics.SnapshotPoints.Set(float64(len(data.Points)))
	s.metrics.SnapshotTopZones.Set(float64(len(data.TopZones)))
	s.logger.Info("danger zone snapshot served",
		"points", len(data.Points),
		"top_zones", len(data.TopZones),
	)
	return data
}

func (s *Service) load(ctx context.Context) (*domain.DangerData, error) {
	if !s.cfg.WarehouseConfigured() {
		return nil, fmt.Errorf("%w: host and path are required for driver %s",
			domain.ErrConfigMissing, s.cfg.WarehouseDriver)
	}

	start := clock.Now()
	points, err := s.fetcher.FetchLatestPoints(ctx)
	s.metrics.FetchDuration.Observe(clock.Since(start).Seconds())
	if err != nil {
		if !errors.Is(err, domain.ErrDataUnavailable) {
			err = fmt.Errorf("%w: %w", domain.ErrDataUnavailable, err)
		}
		return nil, err
	}

	topZones, err := domain.Summarize(points)
	if err != nil {
		return nil, fmt.Errorf("summarize snapshot: %w", err)
	}
	topZones = domain.EnrichTopZones(ctx, topZones, s.geocoder, s.logger)

	return domain.NewDangerData(points, topZones), nil
}

func classify(err error) string {
	switch {
	case errors.Is(err, domain.ErrConfigMissing):
		return observability.OutcomeConfigMissing
	case errors.Is(err, domain.ErrInvalidInput):
		return observability.OutcomeInvalidInput
	default:
		return observability.OutcomeDataUnavailable
	}
}
