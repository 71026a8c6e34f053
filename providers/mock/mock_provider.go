// Package mock provides mock implementations of the Provider interface for testing.
package mock

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/oauth2"

	"github.com/giantswarm/github-strategy/providers"
)

// Compile-time check that MockProvider implements the providers.Provider interface.
var _ providers.Provider = (*MockProvider)(nil)

// Default bodies returned by a MockProvider created with NewMockProvider.
const (
	DefaultUserBody   = `{"login":"mockuser","id":123,"name":"Mock User","email":"mock@example.com","html_url":"https://github.com/mockuser"}`
	DefaultEmailsBody = `[{"email":"mock@example.com","primary":true,"verified":true}]`
)

// MockProvider is a mock implementation of the Provider interface for testing
type MockProvider struct {
	// NameFunc is called when Name() is invoked
	NameFunc func() string

	// DefaultScopesFunc is called when DefaultScopes() is invoked
	DefaultScopesFunc func() []string

	// AuthorizationURLFunc is called when AuthorizationURL() is invoked
	AuthorizationURLFunc func(state string, codeChallenge string, codeChallengeMethod string, scopes []string) string

	// ExchangeCodeFunc is called when ExchangeCode() is invoked
	ExchangeCodeFunc func(ctx context.Context, code string, codeVerifier string) (*oauth2.Token, error)

	// FetchUserFunc is called when FetchUser() is invoked
	FetchUserFunc func(ctx context.Context, accessToken string) ([]byte, error)

	// FetchEmailsFunc is called when FetchEmails() is invoked
	FetchEmailsFunc func(ctx context.Context, accessToken string) ([]byte, error)

	// HealthCheckFunc is called when HealthCheck() is invoked
	HealthCheckFunc func(ctx context.Context) error

	// CallCounts tracks how many times each method was called
	CallCounts map[string]int

	// Tokens records the access tokens passed to FetchUser and FetchEmails, in call order
	Tokens []string

	// mu protects CallCounts and Tokens from concurrent access
	mu sync.RWMutex
}

// NewMockProvider creates a new mock provider with default implementations
func NewMockProvider() *MockProvider {
	return &MockProvider{
		CallCounts: make(map[string]int),
		NameFunc: func() string {
			return "github"
		},
		DefaultScopesFunc: func() []string {
			return nil
		},
		AuthorizationURLFunc: func(state string, codeChallenge string, codeChallengeMethod string, scopes []string) string {
			return fmt.Sprintf("https://mock.example.com/authorize?state=%s&code_challenge=%s&code_challenge_method=%s", state, codeChallenge, codeChallengeMethod)
		},
		ExchangeCodeFunc: func(ctx context.Context, code string, codeVerifier string) (*oauth2.Token, error) {
			return &oauth2.Token{
				AccessToken: "mock-access-token",
				TokenType:   "Bearer",
			}, nil
		},
		FetchUserFunc: func(ctx context.Context, accessToken string) ([]byte, error) {
			return []byte(DefaultUserBody), nil
		},
		FetchEmailsFunc: func(ctx context.Context, accessToken string) ([]byte, error) {
			return []byte(DefaultEmailsBody), nil
		},
		HealthCheckFunc: func(ctx context.Context) error {
			return nil
		},
	}
}

// Name returns the provider name
func (m *MockProvider) Name() string {
	// LOCK PATTERN: Lock only to update counter and read function reference
	// Release lock BEFORE calling user function to prevent deadlocks
	// (user function might call other mock methods)
	m.mu.Lock()
	m.CallCounts["Name"]++
	fn := m.NameFunc
	m.mu.Unlock()

	// Call user function WITHOUT holding lock (deadlock prevention)
	if fn == nil {
		return "github" // Safe default
	}
	return fn()
}

// DefaultScopes returns the configured scopes
func (m *MockProvider) DefaultScopes() []string {
	m.mu.Lock()
	m.CallCounts["DefaultScopes"]++
	fn := m.DefaultScopesFunc
	m.mu.Unlock()
	if fn == nil {
		return nil
	}
	return providers.CopyScopes(fn())
}

// AuthorizationURL generates the URL to redirect users for authentication
func (m *MockProvider) AuthorizationURL(state string, codeChallenge string, codeChallengeMethod string, scopes []string) string {
	m.mu.Lock()
	m.CallCounts["AuthorizationURL"]++
	fn := m.AuthorizationURLFunc
	m.mu.Unlock()
	if fn == nil {
		return "https://mock.example.com/authorize?state=" + state // Safe default
	}
	return fn(state, codeChallenge, codeChallengeMethod, scopes)
}

// ExchangeCode exchanges an authorization code for tokens
func (m *MockProvider) ExchangeCode(ctx context.Context, code string, codeVerifier string) (*oauth2.Token, error) {
	m.mu.Lock()
	m.CallCounts["ExchangeCode"]++
	fn := m.ExchangeCodeFunc
	m.mu.Unlock()
	if fn == nil {
		return nil, fmt.Errorf("ExchangeCodeFunc not configured")
	}
	return fn(ctx, code, codeVerifier)
}

// FetchUser returns the configured user body
func (m *MockProvider) FetchUser(ctx context.Context, accessToken string) ([]byte, error) {
	m.mu.Lock()
	m.CallCounts["FetchUser"]++
	m.Tokens = append(m.Tokens, accessToken)
	fn := m.FetchUserFunc
	m.mu.Unlock()
	if fn == nil {
		return nil, fmt.Errorf("FetchUserFunc not configured")
	}
	return fn(ctx, accessToken)
}

// FetchEmails returns the configured emails body
func (m *MockProvider) FetchEmails(ctx context.Context, accessToken string) ([]byte, error) {
	m.mu.Lock()
	m.CallCounts["FetchEmails"]++
	m.Tokens = append(m.Tokens, accessToken)
	fn := m.FetchEmailsFunc
	m.mu.Unlock()
	if fn == nil {
		return nil, fmt.Errorf("FetchEmailsFunc not configured")
	}
	return fn(ctx, accessToken)
}

// HealthCheck reports the configured health
func (m *MockProvider) HealthCheck(ctx context.Context) error {
	m.mu.Lock()
	m.CallCounts["HealthCheck"]++
	fn := m.HealthCheckFunc
	m.mu.Unlock()
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// ResetCallCounts resets all call counters
func (m *MockProvider) ResetCallCounts() {
	m.mu.Lock()
	m.CallCounts = make(map[string]int)
	m.Tokens = nil
	m.mu.Unlock()
}

// GetCallCount returns the number of times a method was called
func (m *MockProvider) GetCallCount(method string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.CallCounts[method]
}

// GetTokens returns a copy of the access tokens seen by the fetch methods
func (m *MockProvider) GetTokens() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return providers.CopyScopes(m.Tokens)
}
