package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/oauth2"
	oauthgithub "golang.org/x/oauth2/github"
	"golang.org/x/time/rate"

	"github.com/giantswarm/github-strategy/instrumentation"
	"github.com/giantswarm/github-strategy/internal/util"
	"github.com/giantswarm/github-strategy/providers"
	"github.com/giantswarm/github-strategy/providers/validate"
)

// Compile-time check that Provider implements the providers.Provider interface.
var _ providers.Provider = (*Provider)(nil)

// providerName is the name returned by Provider.Name().
const providerName = "github"

// GitHub API defaults
const (
	DefaultUserProfileURL = "https://api.github.com/user"
	DefaultUserAgent      = "github-strategy"

	acceptHeader = "application/vnd.github.v3+json"

	// maxResponseSize caps how much of a response body is read.
	maxResponseSize = 1 << 20

	// maxErrorBodyLog caps how much of a non-JSON error body is kept.
	maxErrorBodyLog = 512
)

// Operation names used for spans and metrics.
const (
	OperationFetchUser   = "fetch_user"
	OperationFetchEmails = "fetch_emails"
	OperationHealthCheck = "health_check"
)

var (
	// ErrMissingClientID is returned by NewProvider when Config.ClientID is empty.
	ErrMissingClientID = errors.New("client ID is required")

	// ErrMissingClientSecret is returned by NewProvider when Config.ClientSecret is empty.
	ErrMissingClientSecret = errors.New("client secret is required")

	// ErrMissingAccessToken is returned by fetch methods called without a token.
	ErrMissingAccessToken = errors.New("access token is required")

	// ErrResponseTooLarge is returned when a response body exceeds the read limit.
	ErrResponseTooLarge = errors.New("response body exceeds size limit")
)

// APIError is a structured error payload returned by the GitHub API,
// e.g. {"message":"Bad credentials","documentation_url":"..."}.
type APIError struct {
	StatusCode       int
	Message          string
	DocumentationURL string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("github api error (status %d): %s", e.StatusCode, e.Message)
}

// StatusError is a non-2xx response without a structured error payload.
type StatusError struct {
	StatusCode int

	// Body is the beginning of the response body, for diagnostics only.
	Body string
}

// Error implements the error interface
func (e *StatusError) Error() string {
	return fmt.Sprintf("github api request failed with status %d", e.StatusCode)
}

// Provider implements the providers.Provider interface for GitHub OAuth.
type Provider struct {
	*oauth2.Config
	httpClient     *http.Client
	requestTimeout time.Duration
	userProfileURL string
	userEmailsURL  string
	rateLimitURL   string
	userAgent      string
	customHeaders  map[string]string
	limiter        *rate.Limiter
	logger         *slog.Logger

	instrumentation *instrumentation.Instrumentation
	tracer          trace.Tracer
}

// RateLimitConfig limits outbound GitHub API calls made by one Provider.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained call rate. Zero disables limiting.
	RequestsPerSecond float64

	// Burst is the maximum burst size (default: 1 when limiting is enabled).
	Burst int
}

// Config holds GitHub OAuth configuration.
type Config struct {
	// ClientID is the GitHub OAuth App client ID.
	ClientID string

	// ClientSecret is the GitHub OAuth App client secret.
	ClientSecret string

	// RedirectURL is the OAuth callback URL.
	RedirectURL string

	// Scopes requested during authorization. No scopes are requested by default.
	// Including "user:email" makes the strategy read /user/emails.
	Scopes []string

	// AuthURL overrides the authorization endpoint (GitHub Enterprise Server).
	AuthURL string

	// TokenURL overrides the token endpoint (GitHub Enterprise Server).
	TokenURL string

	// UserProfileURL overrides the user endpoint (default: https://api.github.com/user).
	UserProfileURL string

	// UserEmailsURL overrides the emails endpoint (default: UserProfileURL + "/emails").
	UserEmailsURL string

	// UserAgent is sent on every API call; GitHub rejects requests without one.
	UserAgent string

	// CustomHeaders are added to every API call.
	CustomHeaders map[string]string

	// HTTPClient is an optional custom HTTP client.
	HTTPClient *http.Client

	// RequestTimeout is the timeout for GitHub API calls (default: 30s).
	RequestTimeout time.Duration

	// RateLimit throttles outbound API calls.
	RateLimit RateLimitConfig

	// AllowInsecureHTTP permits http:// and loopback endpoint overrides.
	// Development and testing only.
	AllowInsecureHTTP bool

	// Logger for structured logging (optional, uses default if not provided)
	Logger *slog.Logger
}

// NewProvider creates a new GitHub OAuth provider.
func NewProvider(cfg *Config) (*Provider, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.ClientID == "" {
		return nil, ErrMissingClientID
	}
	if cfg.ClientSecret == "" {
		return nil, ErrMissingClientSecret
	}

	scopes := providers.CopyScopes(cfg.Scopes)
	if err := validate.Scopes(scopes); err != nil {
		return nil, fmt.Errorf("invalid scopes: %w", err)
	}

	endpoint := oauthgithub.Endpoint
	if cfg.AuthURL != "" {
		endpoint.AuthURL = cfg.AuthURL
	}
	if cfg.TokenURL != "" {
		endpoint.TokenURL = cfg.TokenURL
	}

	userProfileURL := cfg.UserProfileURL
	if userProfileURL == "" {
		userProfileURL = DefaultUserProfileURL
	}
	userProfileURL = util.NormalizeURL(userProfileURL)

	userEmailsURL := cfg.UserEmailsURL
	if userEmailsURL == "" {
		userEmailsURL = userProfileURL + "/emails"
	}

	endpoints := map[string]string{
		"authorization": endpoint.AuthURL,
		"token":         endpoint.TokenURL,
		"user profile":  userProfileURL,
		"user emails":   userEmailsURL,
	}
	for name, u := range endpoints {
		if err := validate.EndpointURL(u, cfg.AllowInsecureHTTP); err != nil {
			return nil, fmt.Errorf("invalid %s URL: %w", name, err)
		}
	}

	if err := validate.Headers(cfg.CustomHeaders); err != nil {
		return nil, fmt.Errorf("invalid custom headers: %w", err)
	}
	var headers map[string]string
	if len(cfg.CustomHeaders) > 0 {
		headers = make(map[string]string, len(cfg.CustomHeaders))
		for k, v := range cfg.CustomHeaders {
			headers[k] = v
		}
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	// Set request timeout (default: 30 seconds)
	requestTimeout := cfg.RequestTimeout
	if requestTimeout == 0 {
		requestTimeout = 30 * time.Second
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: requestTimeout,
		}
	}

	var limiter *rate.Limiter
	if cfg.RateLimit.RequestsPerSecond < 0 {
		return nil, fmt.Errorf("rate limit must not be negative")
	}
	if cfg.RateLimit.RequestsPerSecond > 0 {
		burst := cfg.RateLimit.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), burst)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Provider{
		Config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       scopes,
			Endpoint:     endpoint,
		},
		httpClient:     httpClient,
		requestTimeout: requestTimeout,
		userProfileURL: userProfileURL,
		userEmailsURL:  userEmailsURL,
		rateLimitURL:   strings.TrimSuffix(userProfileURL, "/user") + "/rate_limit",
		userAgent:      userAgent,
		customHeaders:  headers,
		limiter:        limiter,
		logger:         logger,
	}, nil
}

// SetInstrumentation sets OpenTelemetry instrumentation for API calls.
// Call before the provider is shared between goroutines.
func (p *Provider) SetInstrumentation(inst *instrumentation.Instrumentation) {
	p.instrumentation = inst
	p.tracer = nil
	if inst != nil {
		p.tracer = inst.Tracer("provider")
	}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return providerName
}

// DefaultScopes returns the provider's configured scopes.
// Returns a deep copy to prevent external modification.
func (p *Provider) DefaultScopes() []string {
	return providers.CopyScopes(p.Scopes)
}

// UserProfileURL returns the configured user endpoint.
func (p *Provider) UserProfileURL() string {
	return p.userProfileURL
}

// UserEmailsURL returns the configured emails endpoint.
func (p *Provider) UserEmailsURL() string {
	return p.userEmailsURL
}

// AuthorizationURL generates the GitHub OAuth authorization URL with optional PKCE.
// If scopes is empty, the provider's configured scopes are used.
func (p *Provider) AuthorizationURL(state string, codeChallenge string, codeChallengeMethod string, scopes []string) string {
	var opts []oauth2.AuthCodeOption

	if codeChallenge != "" && codeChallengeMethod != "" {
		opts = append(opts,
			oauth2.SetAuthURLParam("code_challenge", codeChallenge),
			oauth2.SetAuthURLParam("code_challenge_method", codeChallengeMethod),
		)
	}

	config := *p.Config
	if len(scopes) > 0 {
		config.Scopes = providers.CopyScopes(scopes)
	} else {
		config.Scopes = providers.CopyScopes(p.Scopes)
	}
	return config.AuthCodeURL(state, opts...)
}

// ensureContextTimeout ensures the context has a deadline, adding one if needed.
// If the context already has a deadline, returns the original context with a no-op cancel.
func (p *Provider) ensureContextTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, p.requestTimeout)
}

// ExchangeCode exchanges an authorization code for tokens with optional PKCE verification.
// GitHub OAuth Apps don't return refresh tokens.
func (p *Provider) ExchangeCode(ctx context.Context, code string, verifier string) (*oauth2.Token, error) {
	ctx, cancel := p.ensureContextTimeout(ctx)
	defer cancel()

	return providers.ExchangeCodeWithPKCE(ctx, p.Config, p.httpClient, code, verifier)
}

// FetchUser returns the verbatim body of the user endpoint.
func (p *Provider) FetchUser(ctx context.Context, accessToken string) ([]byte, error) {
	return p.get(ctx, OperationFetchUser, p.userProfileURL, accessToken)
}

// FetchEmails returns the verbatim body of the emails endpoint.
// Requires the "user:email" scope to have been granted.
func (p *Provider) FetchEmails(ctx context.Context, accessToken string) ([]byte, error) {
	return p.get(ctx, OperationFetchEmails, p.userEmailsURL, accessToken)
}

// HealthCheck verifies that the GitHub API is reachable.
// It performs a lightweight unauthenticated call to the rate limit endpoint.
//
// Security Considerations:
//   - DO NOT expose error details to untrusted clients
func (p *Provider) HealthCheck(ctx context.Context) error {
	ctx, cancel := p.ensureContextTimeout(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.rateLimitURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create health check request: %w", err)
	}
	p.setHeaders(req)

	start := time.Now()
	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.recordCall(ctx, OperationHealthCheck, 0, start, err)
		return fmt.Errorf("github api unreachable: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// GitHub returns 200 for rate limit endpoint even without auth
	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("github health check failed with status %d", resp.StatusCode)
		p.recordCall(ctx, OperationHealthCheck, resp.StatusCode, start, err)
		return err
	}

	p.recordCall(ctx, OperationHealthCheck, resp.StatusCode, start, nil)
	return nil
}

// get performs an authenticated GET through the oauth2 client and returns the body.
// Non-2xx responses yield *APIError when GitHub sent a structured payload,
// *StatusError otherwise.
func (p *Provider) get(ctx context.Context, operation, endpoint, accessToken string) ([]byte, error) {
	if accessToken == "" {
		return nil, ErrMissingAccessToken
	}

	ctx, cancel := p.ensureContextTimeout(ctx)
	defer cancel()

	var span trace.Span
	if p.tracer != nil {
		ctx, span = p.tracer.Start(ctx, "provider.github."+operation)
		defer span.End()
	}
	instrumentation.AddProviderAttributes(span, providerName, operation)

	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			err = fmt.Errorf("rate limit wait: %w", err)
			instrumentation.RecordError(span, err)
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		instrumentation.RecordError(span, err)
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	p.setHeaders(req)

	// The oauth2 transport attaches "Authorization: Bearer <token>" on top of
	// the configured base client.
	client := p.Client(
		context.WithValue(ctx, oauth2.HTTPClient, p.httpClient),
		&oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"},
	)

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		p.recordCall(ctx, operation, 0, start, err)
		instrumentation.RecordError(span, err)
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	instrumentation.SetSpanAttributes(span, attribute.Int(instrumentation.AttrProviderStatus, resp.StatusCode))

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize+1))
	if err == nil && len(body) > maxResponseSize {
		err = ErrResponseTooLarge
	}
	if err != nil {
		p.recordCall(ctx, operation, resp.StatusCode, start, err)
		instrumentation.RecordError(span, err)
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respErr := newResponseError(resp.StatusCode, body)
		p.recordCall(ctx, operation, resp.StatusCode, start, respErr)
		instrumentation.RecordError(span, respErr)
		p.logger.Debug("GitHub API returned an error",
			"operation", operation,
			"status", resp.StatusCode,
			"error", respErr)
		return nil, respErr
	}

	p.recordCall(ctx, operation, resp.StatusCode, start, nil)
	instrumentation.SetSpanSuccess(span)
	return body, nil
}

func (p *Provider) setHeaders(req *http.Request) {
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("User-Agent", p.userAgent)
	for k, v := range p.customHeaders {
		req.Header.Set(k, v)
	}
}

func (p *Provider) recordCall(ctx context.Context, operation string, statusCode int, start time.Time, err error) {
	if p.instrumentation == nil {
		return
	}
	durationMs := float64(time.Since(start).Microseconds()) / 1000
	p.instrumentation.Metrics().RecordProviderAPICall(ctx, providerName, operation, statusCode, durationMs, err)
}

// newResponseError classifies a non-2xx response body.
func newResponseError(statusCode int, body []byte) error {
	var payload struct {
		Message          string `json:"message"`
		DocumentationURL string `json:"documentation_url"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return &APIError{
			StatusCode:       statusCode,
			Message:          payload.Message,
			DocumentationURL: payload.DocumentationURL,
		}
	}
	return &StatusError{
		StatusCode: statusCode,
		Body:       util.SafeTruncate(string(body), maxErrorBodyLog),
	}
}
