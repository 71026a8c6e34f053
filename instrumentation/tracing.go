package instrumentation

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Common span attribute keys
//
// SECURITY WARNING: Never record actual access tokens or authorization codes in
// traces or metrics. AttrTokenFingerprint carries a truncated one-way hash only.
const (
	// Strategy attributes
	AttrAttemptID        = "strategy.attempt_id"
	AttrTokenFingerprint = "strategy.token_fingerprint" //nolint:gosec // hash prefix, not a credential
	AttrEmailsRequested  = "strategy.emails_requested"
	AttrErrorKind        = "strategy.error_kind"
	AttrUserID           = "strategy.user_id"
	AttrPKCEUsed         = "oauth.pkce.used"

	// Provider attributes
	AttrProviderName      = "provider.name"
	AttrProviderOperation = "provider.operation"
	AttrProviderStatus    = "provider.status"
	AttrProviderErrorType = "provider.error_type"
)

// RecordError records an error on a span with proper status codes (nil-safe)
func RecordError(span trace.Span, err error) {
	if span != nil && err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// SetSpanSuccess marks a span as successful (nil-safe)
func SetSpanSuccess(span trace.Span) {
	if span != nil {
		span.SetStatus(codes.Ok, "")
	}
}

// SetSpanError sets an error status on a span (nil-safe)
func SetSpanError(span trace.Span, message string) {
	if span != nil {
		span.SetStatus(codes.Error, message)
	}
}

// SetSpanAttributes sets attributes on a span (nil-safe)
func SetSpanAttributes(span trace.Span, attrs ...attribute.KeyValue) {
	if span != nil {
		span.SetAttributes(attrs...)
	}
}

// AddProviderAttributes adds provider attributes to a span (nil-safe)
func AddProviderAttributes(span trace.Span, providerName, operation string) {
	SetSpanAttributes(span,
		attribute.String(AttrProviderName, providerName),
		attribute.String(AttrProviderOperation, operation),
	)
}

// AddProfileFetchAttributes adds profile retrieval attributes to a span (nil-safe).
// tokenFingerprint is omitted when empty; callers pass it only when
// Instrumentation.ShouldRecordTokenFingerprints allows it.
func AddProfileFetchAttributes(span trace.Span, attemptID, tokenFingerprint string, emails bool) {
	SetSpanAttributes(span,
		attribute.String(AttrAttemptID, attemptID),
		attribute.Bool(AttrEmailsRequested, emails),
	)
	if tokenFingerprint != "" {
		SetSpanAttributes(span, attribute.String(AttrTokenFingerprint, tokenFingerprint))
	}
}
