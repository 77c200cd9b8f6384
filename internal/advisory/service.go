// Package advisory turns location queries into UV risk reports by running
// the geocode, current-weather, UV, and classification stages in order.
package advisory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/chriswiesanjaya/sun-protection/internal/domain"
	"github.com/chriswiesanjaya/sun-protection/internal/observability"
)

// ErrLocationNotFound reports a location query that matched no place.
var ErrLocationNotFound = errors.New("location not found")

// Publisher delivers completed advisory reports to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, report domain.Report) error
}

// Service runs the advisory stage sequence. Stages run in order, each
// depending on the previous one, and the first failure aborts the rest.
type Service struct {
	geocoder  domain.Geocoder
	provider  domain.WeatherProvider
	publisher Publisher
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// New creates a Service. Pass a nil publisher to disable event publishing.
func New(geocoder domain.Geocoder, provider domain.WeatherProvider, publisher Publisher, logger *slog.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		geocoder:  geocoder,
		provider:  provider,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
	}
}

// CheckReadiness returns nil when the advisory dependencies are wired, or an
// error describing why the service cannot issue advisories yet.
func (s *Service) CheckReadiness(_ context.Context) error {
	if s.geocoder == nil || s.provider == nil {
		return errors.New("weather provider not configured")
	}
	return nil
}

// AdviseByLocation resolves a free-text location and issues a full report:
// geocode, then current weather, then UV index, then classification. A
// query that matches no place fails with ErrLocationNotFound. On success
// the report is also handed to the publisher, best effort.
func (s *Service) AdviseByLocation(ctx context.Context, query string) (domain.Report, error) {
	place, err := s.geocoder.Geocode(ctx, query)
	if err != nil {
		s.metrics.AdvisoryErrors.WithLabelValues("geocode").Inc()
		return domain.Report{}, fmt.Errorf("geocode %q: %w", query, err)
	}
	if !place.Found() {
		s.metrics.AdvisoryErrors.WithLabelValues("geocode").Inc()
		return domain.Report{}, fmt.Errorf("%w: %q", ErrLocationNotFound, query)
	}

	conditions, err := s.provider.CurrentConditions(ctx, place.Lat, place.Lon)
	if err != nil {
		s.metrics.AdvisoryErrors.WithLabelValues("weather").Inc()
		return domain.Report{}, fmt.Errorf("current conditions for %s: %w", place.Name, err)
	}

	uvIndex, err := s.provider.UVIndex(ctx, place.Lat, place.Lon)
	if err != nil {
		s.metrics.AdvisoryErrors.WithLabelValues("uv").Inc()
		return domain.Report{}, fmt.Errorf("uv index for %s: %w", place.Name, err)
	}

	advisory, err := domain.ClassifyUVIndex(uvIndex)
	if err != nil {
		s.metrics.AdvisoryErrors.WithLabelValues("classify").Inc()
		return domain.Report{}, fmt.Errorf("classify uv index %g: %w", uvIndex, err)
	}

	report := domain.NewReport(uuid.NewString(), query, place, conditions, advisory)
	s.metrics.AdvisoriesIssued.WithLabelValues(string(advisory.Tier)).Inc()
	s.logger.Info("advisory issued",
		"report_id", report.ID,
		"query", query,
		"place", place.Name,
		"uv_index", uvIndex,
		"tier", advisory.Tier,
	)

	s.publish(ctx, report)

	return report, nil
}

// AdviseByUVIndex classifies a reading the caller already has. Nothing is
// published; the caller sees exactly what the classifier produced.
func (s *Service) AdviseByUVIndex(uvIndex float64) (domain.UVAdvisory, error) {
	advisory, err := domain.ClassifyUVIndex(uvIndex)
	if err != nil {
		s.metrics.AdvisoryErrors.WithLabelValues("classify").Inc()
		return domain.UVAdvisory{}, err
	}

	s.metrics.AdvisoriesIssued.WithLabelValues(string(advisory.Tier)).Inc()
	return advisory, nil
}

// publish hands the report to the publisher. Failures are logged and
// counted, never surfaced to the caller.
func (s *Service) publish(ctx context.Context, report domain.Report) {
	if s.publisher == nil {
		return
	}

	if err := s.publisher.Publish(ctx, report); err != nil {
		s.logger.Warn("publish advisory failed", "report_id", report.ID, "error", err)
		s.metrics.PublishErrors.Inc()
		return
	}
	s.metrics.EventsPublished.Inc()
}
