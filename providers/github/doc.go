// Package github implements the OAuth provider interface for GitHub OAuth Apps
// and GitHub Enterprise Server.
//
// The provider issues authenticated GET requests to the user and emails
// endpoints through an oauth2 client and hands back the verbatim response
// bodies. It does not interpret successful responses; see the profile package.
//
// GitHub OAuth differs from OIDC providers in several key ways:
//   - No OIDC discovery: Endpoints are hardcoded (overridable for Enterprise)
//   - Non-expiring tokens: Standard OAuth Apps issue tokens that don't expire
//   - Email privacy: User emails may be private, requiring a separate API call
//     that needs the "user:email" scope
//
// # Errors
//
// A non-2xx response carrying GitHub's error payload
// ({"message": ..., "documentation_url": ...}) is returned as *APIError.
// Any other non-2xx response is returned as *StatusError. Transport failures
// are returned wrapped, with the original error reachable via errors.Unwrap.
//
// # Rate Limiting
//
// GitHub API has rate limits (5,000 requests/hour for authenticated requests).
// Config.RateLimit throttles calls made by a single Provider; waiting honours
// context cancellation.
//
// # Example Usage
//
//	provider, err := github.NewProvider(&github.Config{
//	    ClientID:     os.Getenv("GITHUB_CLIENT_ID"),
//	    ClientSecret: os.Getenv("GITHUB_CLIENT_SECRET"),
//	    RedirectURL:  "http://localhost:8080/auth/github/callback",
//	    Scopes:       []string{"user:email"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// GitHub Enterprise Server
//	provider, err := github.NewProvider(&github.Config{
//	    ClientID:       os.Getenv("GHE_CLIENT_ID"),
//	    ClientSecret:   os.Getenv("GHE_CLIENT_SECRET"),
//	    AuthURL:        "https://github.example.com/login/oauth/authorize",
//	    TokenURL:       "https://github.example.com/login/oauth/access_token",
//	    UserProfileURL: "https://github.example.com/api/v3/user",
//	})
package github
