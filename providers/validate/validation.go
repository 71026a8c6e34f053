package validate

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/giantswarm/github-strategy/internal/util"
)

// EndpointURL validates a configured API or OAuth endpoint URL.
// HTTPS is required unless allowInsecure is set; loopback hosts are only
// accepted together with allowInsecure. Private ranges stay allowed since
// GitHub Enterprise Server commonly runs on internal networks.
//
// Security Considerations:
//   - HTTPS Enforcement: Prevents access token interception
//   - Link-local Blocking: Prevents metadata service attacks (169.254.169.254)
//   - Loopback Blocking: "localhost" and 127.0.0.0/8 need allowInsecure
//
// Example:
//
//	if err := validate.EndpointURL("https://github.example.com/api/v3/user", false); err != nil {
//	    return fmt.Errorf("invalid user profile URL: %w", err)
//	}
func EndpointURL(endpoint string, allowInsecure bool) error {
	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("invalid endpoint URL: %w", err)
	}

	switch {
	case u.Scheme == "https":
	case u.Scheme == "http" && allowInsecure:
	default:
		return fmt.Errorf("endpoint URL must use HTTPS, got %q", u.Scheme)
	}

	host := u.Hostname()
	if host == "" {
		return fmt.Errorf("endpoint URL must have a hostname")
	}

	switch util.ClassifyHost(host) {
	case util.HostClassLinkLocal:
		return fmt.Errorf("endpoint URL must not point to link-local addresses")
	case util.HostClassUnspecified:
		return fmt.Errorf("endpoint URL must not point to unspecified addresses")
	case util.HostClassLoopback:
		if !allowInsecure {
			return fmt.Errorf("endpoint URL must not point to loopback addresses")
		}
	}

	return nil
}

// Scopes validates OAuth scopes.
//
// Security Considerations:
//   - Array Size Limit: Prevents DoS from excessive scopes
//   - String Length Limit: Prevents memory exhaustion
//   - Empty Scope Detection: Prevents malformed requests
func Scopes(scopes []string) error {
	if len(scopes) > 50 {
		return fmt.Errorf("too many scopes (max 50, got %d)", len(scopes))
	}

	for i, scope := range scopes {
		if scope == "" {
			return fmt.Errorf("scope at index %d is empty", i)
		}
		if len(scope) > 256 {
			return fmt.Errorf("scope at index %d exceeds maximum length of 256 characters", i)
		}
		if strings.ContainsAny(scope, " \t\r\n") {
			return fmt.Errorf("scope at index %d contains whitespace", i)
		}
	}

	return nil
}

// Headers validates custom request headers.
// Names must be non-empty tokens and neither names nor values may contain CR or LF.
func Headers(headers map[string]string) error {
	for name, value := range headers {
		if name == "" {
			return fmt.Errorf("header name cannot be empty")
		}
		if strings.ContainsAny(name, " \t\r\n:") {
			return fmt.Errorf("header name %q contains invalid characters", name)
		}
		if strings.ContainsAny(value, "\r\n") {
			return fmt.Errorf("header %q value contains line breaks", name)
		}
	}
	return nil
}
