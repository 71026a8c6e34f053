// Package providers defines the OAuth provider interface consumed by the strategy.
//
// A Provider owns everything that talks to the identity provider: the OAuth2
// handshake (authorization URL, code exchange) and the authenticated REST
// calls that return raw profile material. Normalizing that material is the
// job of the profile package.
//
// Implementations are provided in subpackages:
//   - providers/github: GitHub and GitHub Enterprise Server
//   - providers/mock: Mock provider for testing
//   - providers/validate: Shared configuration validation
//
// Example usage:
//
//	provider, err := github.NewProvider(&github.Config{
//	    ClientID:     "your-client-id",
//	    ClientSecret: "your-client-secret",
//	    RedirectURL:  "http://localhost:8080/auth/github/callback",
//	    Scopes:       []string{"user:email"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	s, _ := strategy.New(provider, nil, logger)
package providers
