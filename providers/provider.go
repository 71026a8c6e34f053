package providers

import (
	"context"

	"golang.org/x/oauth2"
)

// Provider defines the interface for OAuth identity providers.
// Fetch methods return the verbatim response body; interpreting it is left to
// the profile package so the raw material stays available to callers.
type Provider interface {
	// Name returns the provider name (e.g., "github")
	Name() string

	// DefaultScopes returns a copy of the configured scopes
	DefaultScopes() []string

	// AuthorizationURL generates the URL to redirect users for authentication
	// codeChallenge and codeChallengeMethod are for PKCE (pass empty strings to disable)
	// If scopes is empty, the configured scopes are used
	AuthorizationURL(state string, codeChallenge string, codeChallengeMethod string, scopes []string) string

	// ExchangeCode exchanges an authorization code for tokens
	// codeVerifier is for PKCE verification (pass empty string if not using PKCE)
	ExchangeCode(ctx context.Context, code string, codeVerifier string) (*oauth2.Token, error)

	// FetchUser returns the body of the authenticated user endpoint
	FetchUser(ctx context.Context, accessToken string) ([]byte, error)

	// FetchEmails returns the body of the authenticated user's email list endpoint
	FetchEmails(ctx context.Context, accessToken string) ([]byte, error)

	// HealthCheck verifies that the provider is reachable and functioning correctly.
	// Returns nil if the provider is healthy, or an error describing the issue.
	HealthCheck(ctx context.Context) error
}
