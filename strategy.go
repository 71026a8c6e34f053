package strategy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/oauth2"

	"github.com/giantswarm/github-strategy/instrumentation"
	"github.com/giantswarm/github-strategy/internal/util"
	"github.com/giantswarm/github-strategy/profile"
	"github.com/giantswarm/github-strategy/providers"
)

// Strategy retrieves normalized GitHub user profiles for access tokens and
// drives the OAuth2 handshake through its provider.
// It is safe for concurrent use once configured.
type Strategy struct {
	provider    providers.Provider
	config      Config
	fetchEmails bool
	logger      *slog.Logger

	instrumentation *instrumentation.Instrumentation
	tracer          trace.Tracer
}

// ProfileResult is the single value delivered by UserProfile.
// Exactly one of Profile and Err is set.
type ProfileResult struct {
	Profile *profile.Profile
	Err     error
}

// Result is the outcome of Authenticate.
type Result struct {
	Token *oauth2.Token

	// Profile is nil when Config.SkipUserProfile is set.
	Profile *profile.Profile
}

// instrumentable is implemented by providers that record their own API calls.
type instrumentable interface {
	SetInstrumentation(*instrumentation.Instrumentation)
}

// New creates a strategy for provider. A nil config uses the defaults and a
// nil logger uses slog.Default().
func New(provider providers.Provider, config *Config, logger *slog.Logger) (*Strategy, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}
	if config == nil {
		config = &Config{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	fetchEmails, err := config.fetchEmails(provider.DefaultScopes())
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	cfg := *config
	if config.FetchEmails != nil {
		v := *config.FetchEmails
		cfg.FetchEmails = &v
	}

	return &Strategy{
		provider:    provider,
		config:      cfg,
		fetchEmails: fetchEmails,
		logger:      logger.With("strategy", provider.Name()),
	}, nil
}

// SetInstrumentation sets OpenTelemetry instrumentation for the strategy and,
// when supported, its provider. Call before the strategy is shared between
// goroutines.
func (s *Strategy) SetInstrumentation(inst *instrumentation.Instrumentation) {
	s.instrumentation = inst
	s.tracer = nil
	if inst != nil {
		s.tracer = inst.Tracer("strategy")
	}
	if p, ok := s.provider.(instrumentable); ok {
		p.SetInstrumentation(inst)
	}
}

// Name returns the strategy name, "github".
func (s *Strategy) Name() string {
	return s.provider.Name()
}

// FetchesEmails reports whether profile retrieval reads /user/emails.
func (s *Strategy) FetchesEmails() bool {
	return s.fetchEmails
}

// AuthorizationURL returns the provider URL to redirect the user to.
// Pass empty codeChallenge and codeChallengeMethod to disable PKCE.
func (s *Strategy) AuthorizationURL(state, codeChallenge, codeChallengeMethod string) string {
	return s.provider.AuthorizationURL(state, codeChallenge, codeChallengeMethod, nil)
}

// Authenticate exchanges an authorization code for a token and, unless
// Config.SkipUserProfile is set, retrieves the user's profile with it.
// Exchange failures are internal errors with MessageExchangeCode; profile
// failures are classified as by FetchProfile.
func (s *Strategy) Authenticate(ctx context.Context, code, codeVerifier string) (*Result, error) {
	var span trace.Span
	if s.tracer != nil {
		ctx, span = s.tracer.Start(ctx, "strategy.authenticate")
		defer span.End()
	}
	instrumentation.SetSpanAttributes(span, attribute.Bool(instrumentation.AttrPKCEUsed, codeVerifier != ""))

	token, err := s.provider.ExchangeCode(ctx, code, codeVerifier)
	if err != nil {
		s.logger.Warn("Authorization code exchange failed", "error", err)
		classified := NewInternalError(MessageExchangeCode, err)
		instrumentation.RecordError(span, classified)
		return nil, classified
	}

	result := &Result{Token: token}
	if s.config.SkipUserProfile {
		instrumentation.SetSpanSuccess(span)
		return result, nil
	}

	p, err := s.FetchProfile(ctx, token.AccessToken)
	if err != nil {
		instrumentation.RecordError(span, err)
		return nil, err
	}
	result.Profile = p

	instrumentation.SetSpanSuccess(span)
	return result, nil
}

// HealthCheck reports whether the provider API is reachable.
func (s *Strategy) HealthCheck(ctx context.Context) error {
	return s.provider.HealthCheck(ctx)
}

// UserProfile retrieves the profile for accessToken without blocking the
// caller. The returned channel delivers exactly one ProfileResult and is then
// closed. Cancellation and deadlines come from ctx.
func (s *Strategy) UserProfile(ctx context.Context, accessToken string) <-chan ProfileResult {
	results := make(chan ProfileResult, 1)

	go func() {
		defer close(results)
		p, err := s.FetchProfile(ctx, accessToken)
		results <- ProfileResult{Profile: p, Err: err}
	}()

	return results
}

// FetchProfile retrieves and normalizes the profile for accessToken.
// Every failure is returned as *Error: ErrorKindAPI when GitHub rejected the
// user request with a structured error, ErrorKindInternal otherwise. When
// emails are fetched, any failure of that second request is internal and no
// partial profile is returned.
func (s *Strategy) FetchProfile(ctx context.Context, accessToken string) (*profile.Profile, error) {
	attemptID := uuid.NewString()
	fingerprint := util.TokenFingerprint(accessToken)

	logger := s.logger.With("attempt_id", attemptID)
	if !s.config.DisableTokenFingerprints {
		logger = logger.With("token_fp", fingerprint)
	}

	var span trace.Span
	if s.tracer != nil {
		ctx, span = s.tracer.Start(ctx, "strategy.user_profile")
		defer span.End()
	}
	spanFingerprint := ""
	if s.instrumentation != nil && s.instrumentation.ShouldRecordTokenFingerprints() {
		spanFingerprint = fingerprint
	}
	instrumentation.AddProfileFetchAttributes(span, attemptID, spanFingerprint, s.fetchEmails)

	start := time.Now()
	p, err := s.fetchProfile(ctx, accessToken)
	s.recordProfileFetch(ctx, start, err)

	if err != nil {
		var classified *Error
		if errors.As(err, &classified) {
			instrumentation.SetSpanAttributes(span, attribute.String(instrumentation.AttrErrorKind, string(classified.Kind)))
			if classified.Kind == ErrorKindAPI {
				logger.Warn("GitHub rejected profile request",
					"status", classified.StatusCode,
					"message", classified.Message)
			} else {
				logger.Error("Failed to retrieve user profile",
					"message", classified.Message,
					"status", classified.StatusCode,
					"error", classified.Cause)
			}
		}
		instrumentation.RecordError(span, err)
		return nil, err
	}

	instrumentation.SetSpanAttributes(span, attribute.String(instrumentation.AttrUserID, p.ID))
	instrumentation.SetSpanSuccess(span)
	logger.Debug("Retrieved user profile",
		"user_id", p.ID,
		"username", p.Username,
		"emails", len(p.Emails))

	return p, nil
}

// fetchProfile runs the sequential pipeline: user request, parse, then the
// optional emails request and parse.
func (s *Strategy) fetchProfile(ctx context.Context, accessToken string) (*profile.Profile, error) {
	raw, err := s.provider.FetchUser(ctx, accessToken)
	if err != nil {
		return nil, classifyPrimary(err)
	}

	p, err := profile.Parse(raw)
	if err != nil {
		return nil, NewInternalError(MessageFetchProfile, err)
	}

	if !s.fetchEmails {
		return p, nil
	}

	emailsRaw, err := s.provider.FetchEmails(ctx, accessToken)
	if err != nil {
		return nil, classifySecondary(err)
	}

	emails, err := profile.ParseEmails(emailsRaw)
	if err != nil {
		return nil, classifySecondary(err)
	}
	p.Emails = emails

	return p, nil
}

func (s *Strategy) recordProfileFetch(ctx context.Context, start time.Time, err error) {
	if s.instrumentation == nil {
		return
	}

	result := instrumentation.ResultSuccess
	errorKind := ""
	if err != nil {
		result = instrumentation.ResultError
		if e, ok := AsError(err); ok {
			errorKind = string(e.Kind)
		}
	}

	durationMs := float64(time.Since(start).Microseconds()) / 1000
	s.instrumentation.Metrics().RecordProfileFetch(ctx, result, errorKind, s.fetchEmails, durationMs)
}
