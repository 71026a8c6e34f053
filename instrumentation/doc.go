// Package instrumentation provides OpenTelemetry (OTEL) instrumentation for the
// GitHub strategy and its provider.
//
// # Quick Start
//
//	inst, err := instrumentation.New(instrumentation.Config{
//		ServiceName:    "my-app",
//		ServiceVersion: "1.0.0",
//		Enabled:        true,
//		TracerProvider: sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter)),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer inst.Shutdown(context.Background())
//
//	s.SetInstrumentation(inst)
//
// When Enabled is false, or no providers are supplied, no-op providers are
// used and recording has no cost.
//
// # Available Metrics
//
// Provider:
//   - provider.api.calls.total{provider, operation, status} - Provider API calls
//   - provider.api.duration{provider, operation} - API call duration in milliseconds
//   - provider.api.errors.total{provider, operation, error_type} - Failed provider API calls
//
// Strategy:
//   - profile.fetch.total{result, error_kind, emails} - User profile retrievals
//   - profile.fetch.duration{result, emails} - Retrieval duration in milliseconds
//
// All labels have a small fixed set of values.
//
// # Distributed Tracing
//
//	strategy.authenticate
//	└── strategy.user_profile
//	    ├── provider.github.fetch_user
//	    └── provider.github.fetch_emails
//
// # Security Considerations
//
// Access tokens and authorization codes are never recorded. A short one-way
// fingerprint of the token can be attached to spans when
// Config.RecordTokenFingerprints is set. Strategy logs carry the fingerprint
// unless it is disabled in the strategy's Config.
package instrumentation
