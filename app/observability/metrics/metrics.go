package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	PlanRequestsTotal      metric.Int64Counter
	PlanDurationSeconds    metric.Float64Histogram
	PlaceSearchErrorsTotal metric.Int64Counter
	GeocodeErrorsTotal     metric.Int64Counter
	AIErrorsTotal          metric.Int64Counter
	CandidatesFound        metric.Int64Histogram
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metric instruments ONLY ONCE.
// It gets the Meter from the globally configured MeterProvider.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("DateMapz")
		var err error
		m := &AppMetrics{}

		m.PlanRequestsTotal, err = meter.Int64Counter(
			"plan_requests_total",
			metric.WithDescription("Total number of date-plan requests completed"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create plan_requests_total: %v", err)
		}

		m.PlanDurationSeconds, err = meter.Float64Histogram(
			"plan_duration_seconds",
			metric.WithDescription("End-to-end duration of date-plan requests in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create plan_duration_seconds: %v", err)
		}

		m.PlaceSearchErrorsTotal, err = meter.Int64Counter(
			"place_search_errors_total",
			metric.WithDescription("Total number of swallowed nearby-search provider errors"),
			metric.WithUnit("{error}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create place_search_errors_total: %v", err)
		}

		m.GeocodeErrorsTotal, err = meter.Int64Counter(
			"geocode_errors_total",
			metric.WithDescription("Total number of geocoding provider errors"),
			metric.WithUnit("{error}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create geocode_errors_total: %v", err)
		}

		m.AIErrorsTotal, err = meter.Int64Counter(
			"ai_errors_total",
			metric.WithDescription("Total number of AI generation or parsing failures"),
			metric.WithUnit("{error}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create ai_errors_total: %v", err)
		}

		m.CandidatesFound, err = meter.Int64Histogram(
			"candidates_found",
			metric.WithDescription("Number of unique candidate venues found per curated request"),
			metric.WithUnit("{place}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create candidates_found: %v", err)
		}

		appMetrics = m
	})
}

// Get returns the initialized metrics instance, or nil before InitAppMetrics.
func Get() *AppMetrics {
	return appMetrics
}
