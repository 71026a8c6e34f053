package strategy

import (
	"fmt"

	"github.com/giantswarm/github-strategy/providers"
)

// EmailScope is the GitHub scope that grants read access to all of a user's
// email addresses. When it is among the provider's configured scopes the
// strategy also reads /user/emails.
const EmailScope = "user:email"

// Config holds strategy configuration. The zero value is usable.
type Config struct {
	// SkipUserProfile makes Authenticate return the token without fetching
	// the profile.
	SkipUserProfile bool

	// FetchEmails overrides whether /user/emails is read.
	// Nil derives it from the provider's scopes (EmailScope present).
	// It may only be forced on when EmailScope is configured.
	FetchEmails *bool

	// DisableTokenFingerprints omits the token_fp attribute from log records.
	DisableTokenFingerprints bool
}

// fetchEmails resolves whether the emails request is made for a provider
// configured with scopes.
func (c *Config) fetchEmails(scopes []string) (bool, error) {
	hasScope := providers.HasScope(scopes, EmailScope)
	if c.FetchEmails == nil {
		return hasScope, nil
	}
	if *c.FetchEmails && !hasScope {
		return false, fmt.Errorf("fetching emails requires the %q scope to be configured", EmailScope)
	}
	return *c.FetchEmails, nil
}
