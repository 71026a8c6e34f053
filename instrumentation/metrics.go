package instrumentation

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Profile fetch results recorded by RecordProfileFetch.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// Metrics holds all metric instruments for the strategy
type Metrics struct {
	// Provider Metrics
	ProviderAPICallsTotal metric.Int64Counter
	ProviderAPIDuration   metric.Float64Histogram
	ProviderAPIErrors     metric.Int64Counter

	// Profile Metrics
	ProfileFetchTotal    metric.Int64Counter
	ProfileFetchDuration metric.Float64Histogram
}

// newMetrics creates and registers all metric instruments
func newMetrics(inst *Instrumentation) (*Metrics, error) {
	m := &Metrics{}
	providerMeter := inst.Meter("provider")
	strategyMeter := inst.Meter("strategy")

	var err error
	m.ProviderAPICallsTotal, err = providerMeter.Int64Counter(
		"provider.api.calls.total",
		metric.WithDescription("Total number of provider API calls"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider.api.calls.total counter: %w", err)
	}

	m.ProviderAPIDuration, err = providerMeter.Float64Histogram(
		"provider.api.duration",
		metric.WithDescription("Provider API call duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider.api.duration histogram: %w", err)
	}

	m.ProviderAPIErrors, err = providerMeter.Int64Counter(
		"provider.api.errors.total",
		metric.WithDescription("Total number of failed provider API calls"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider.api.errors.total counter: %w", err)
	}

	m.ProfileFetchTotal, err = strategyMeter.Int64Counter(
		"profile.fetch.total",
		metric.WithDescription("Total number of user profile retrievals"),
		metric.WithUnit("{fetch}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile.fetch.total counter: %w", err)
	}

	m.ProfileFetchDuration, err = strategyMeter.Float64Histogram(
		"profile.fetch.duration",
		metric.WithDescription("User profile retrieval duration in milliseconds, including the emails call"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile.fetch.duration histogram: %w", err)
	}

	return m, nil
}

// RecordProviderAPICall records a provider API call
func (m *Metrics) RecordProviderAPICall(ctx context.Context, provider, operation string, statusCode int, durationMs float64, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("provider", provider),
		attribute.String("operation", operation),
		attribute.Int("status", statusCode),
	}

	m.ProviderAPICallsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.ProviderAPIDuration.Record(ctx, durationMs, metric.WithAttributes(
		attribute.String("provider", provider),
		attribute.String("operation", operation),
	))

	if err != nil {
		m.ProviderAPIErrors.Add(ctx, 1, metric.WithAttributes(
			attribute.String("provider", provider),
			attribute.String("operation", operation),
			attribute.String("error_type", providerErrorType(statusCode)),
		))
	}
}

// RecordProfileFetch records one completed profile retrieval.
// errorKind is empty on success.
func (m *Metrics) RecordProfileFetch(ctx context.Context, result, errorKind string, emails bool, durationMs float64) {
	attrs := []attribute.KeyValue{
		attribute.String("result", result),
		attribute.Bool("emails", emails),
	}
	if errorKind != "" {
		attrs = append(attrs, attribute.String("error_kind", errorKind))
	}

	m.ProfileFetchTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.ProfileFetchDuration.Record(ctx, durationMs, metric.WithAttributes(
		attribute.String("result", result),
		attribute.Bool("emails", emails),
	))
}

// providerErrorType buckets a failed call by HTTP status; 0 means no response.
func providerErrorType(statusCode int) string {
	switch {
	case statusCode == 0:
		return "transport_error"
	case statusCode >= 400 && statusCode < 500:
		return "client_error"
	case statusCode >= 500:
		return "server_error"
	default:
		return "unknown"
	}
}
