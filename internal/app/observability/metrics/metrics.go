package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	HTTPRequestsTotal        metric.Int64Counter
	HTTPRequestDuration      metric.Float64Histogram
	AuthRequestsTotal        metric.Int64Counter
	GenerationAttemptsTotal  metric.Int64Counter
	ConflictsDetectedTotal   metric.Int64Counter
	ActivitiesCommittedTotal metric.Int64Counter
	ExternalRequestDuration  metric.Float64Histogram
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metric instruments once, using the
// globally configured MeterProvider.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("tastetrails-web")
		var err error
		m := &AppMetrics{}

		m.HTTPRequestsTotal, err = meter.Int64Counter(
			"http_requests_total",
			metric.WithDescription("Total number of HTTP requests completed"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create http_requests_total: %v", err)
		}

		m.HTTPRequestDuration, err = meter.Float64Histogram(
			"http_request_duration_seconds",
			metric.WithDescription("Duration of HTTP requests in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create http_request_duration_seconds: %v", err)
		}

		m.AuthRequestsTotal, err = meter.Int64Counter(
			"auth_requests_total",
			metric.WithDescription("Total number of authentication requests"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create auth_requests_total: %v", err)
		}

		m.GenerationAttemptsTotal, err = meter.Int64Counter(
			"generation_attempts_total",
			metric.WithDescription("Total number of activity option generation attempts"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create generation_attempts_total: %v", err)
		}

		m.ConflictsDetectedTotal, err = meter.Int64Counter(
			"conflicts_detected_total",
			metric.WithDescription("Total number of time-slot conflicts detected"),
			metric.WithUnit("{conflict}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create conflicts_detected_total: %v", err)
		}

		m.ActivitiesCommittedTotal, err = meter.Int64Counter(
			"activities_committed_total",
			metric.WithDescription("Total number of activities committed to itineraries"),
			metric.WithUnit("{activity}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create activities_committed_total: %v", err)
		}

		m.ExternalRequestDuration, err = meter.Float64Histogram(
			"external_request_duration_seconds",
			metric.WithDescription("Duration of calls to external collaborator services"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create external_request_duration_seconds: %v", err)
		}

		appMetrics = m
	})
}

// Get returns the global metrics instance, nil before InitAppMetrics.
func Get() *AppMetrics {
	return appMetrics
}
