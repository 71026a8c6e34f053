package strategy

import (
	"errors"
	"fmt"

	"github.com/giantswarm/github-strategy/providers/github"
)

// ErrorKind discriminates the closed set of failures delivered to callers.
type ErrorKind string

const (
	// ErrorKindAPI is a failure reported by GitHub with a structured error
	// payload, typically a credential problem such as "Bad credentials".
	ErrorKindAPI ErrorKind = "api"

	// ErrorKindInternal is an infrastructure failure: transport errors,
	// unstructured error responses and unparseable bodies.
	ErrorKindInternal ErrorKind = "internal"
)

// Fixed messages of internal errors.
const (
	MessageFetchProfile = "Failed to fetch user profile"
	MessageFetchEmails  = "Failed to fetch user emails"
	MessageExchangeCode = "Failed to obtain access token"
)

// ErrNilProvider is returned by New when no provider is given.
var ErrNilProvider = errors.New("provider is required")

// Error is the error returned by profile retrieval and authentication.
// Use Kind to choose between "invalid credentials" and "try again" handling.
type Error struct {
	Kind ErrorKind

	// Message is the provider's message for API errors, or one of the fixed
	// Message* constants for internal errors.
	Message string

	// StatusCode is the HTTP status of the provider response, when there was one.
	StatusCode int

	// DocumentationURL is the provider's documentation link for API errors.
	DocumentationURL string

	// Cause is the underlying failure.
	Cause error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Kind == ErrorKindInternal && e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying failure.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewAPIError creates an API error from a structured GitHub error response.
func NewAPIError(apiErr *github.APIError) *Error {
	return &Error{
		Kind:             ErrorKindAPI,
		Message:          apiErr.Message,
		StatusCode:       apiErr.StatusCode,
		DocumentationURL: apiErr.DocumentationURL,
		Cause:            apiErr,
	}
}

// NewInternalError creates an internal error with a fixed message wrapping cause.
func NewInternalError(message string, cause error) *Error {
	e := &Error{
		Kind:    ErrorKindInternal,
		Message: message,
		Cause:   cause,
	}
	var statusErr *github.StatusError
	if errors.As(cause, &statusErr) {
		e.StatusCode = statusErr.StatusCode
	}
	return e
}

// AsError returns the *Error in err's chain, if any.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsAPIError reports whether err is an API error.
func IsAPIError(err error) bool {
	e, ok := AsError(err)
	return ok && e.Kind == ErrorKindAPI
}

// IsInternalError reports whether err is an internal error.
func IsInternalError(err error) bool {
	e, ok := AsError(err)
	return ok && e.Kind == ErrorKindInternal
}

// classifyPrimary maps a failure of the user request, or of parsing its
// body, onto the error taxonomy.
func classifyPrimary(err error) *Error {
	var apiErr *github.APIError
	if errors.As(err, &apiErr) {
		return NewAPIError(apiErr)
	}
	return NewInternalError(MessageFetchProfile, err)
}

// classifySecondary maps any failure of the emails request. It is always
// internal since the profile the caller asked for cannot be completed.
func classifySecondary(err error) *Error {
	e := NewInternalError(MessageFetchEmails, err)
	var apiErr *github.APIError
	if errors.As(err, &apiErr) {
		e.StatusCode = apiErr.StatusCode
		e.DocumentationURL = apiErr.DocumentationURL
	}
	return e
}
