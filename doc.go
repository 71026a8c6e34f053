// Package strategy is a GitHub OAuth2 authentication strategy: it turns an
// access token into a normalized user profile read from GitHub's REST API.
//
// The OAuth2 handshake itself is delegated to golang.org/x/oauth2 through a
// providers.Provider; the strategy adds thin pass-throughs so a host can drive
// the whole flow, while sessions and routing stay with the host.
//
// # Profile retrieval
//
// UserProfile is the asynchronous entry point. It returns a channel that
// delivers exactly one ProfileResult and is then closed:
//
//	res := <-s.UserProfile(ctx, token.AccessToken)
//	if res.Err != nil {
//	    if strategy.IsAPIError(res.Err) {
//	        // GitHub rejected the token: ask the user to sign in again
//	    }
//	    return res.Err
//	}
//	fmt.Println(res.Profile.Username)
//
// FetchProfile is the blocking equivalent.
//
// The user is read from GET /user. When the provider is configured with the
// "user:email" scope, GET /user/emails is read afterwards and its list
// replaces the single address from the user record.
//
// # Errors
//
// Failures are returned as *Error with a Kind:
//   - ErrorKindAPI: GitHub answered with a structured error such as
//     {"message":"Bad credentials"}; Message holds GitHub's message.
//   - ErrorKindInternal: transport failures, unstructured error responses and
//     unparseable bodies; Message is fixed (MessageFetchProfile,
//     MessageFetchEmails or MessageExchangeCode) and Cause holds the original
//     error.
//
// Any failure of the emails request is internal. No partial profile is
// returned and nothing is retried.
//
// # Example
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
//	s, err := strategy.New(provider, nil, logger)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// In the callback handler:
//	result, err := s.Authenticate(r.Context(), r.URL.Query().Get("code"), verifier)
package strategy
