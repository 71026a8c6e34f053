package profile

// ProviderName is the value of Profile.Provider for every profile built by this package.
const ProviderName = "github"

// Profile is the canonical, provider-agnostic user identity built from a
// GitHub /user response.
type Profile struct {
	// Provider is always ProviderName.
	Provider string `json:"provider"`

	// ID is the GitHub user ID in string form.
	ID string `json:"id"`

	// Username is the GitHub login handle.
	Username string `json:"username"`

	// DisplayName is the optional human-readable name.
	DisplayName string `json:"displayName,omitempty"`

	// ProfileURL is the public profile page (html_url).
	ProfileURL string `json:"profileUrl,omitempty"`

	// Emails holds either the single public email from /user or, when the
	// emails endpoint was queried, its full list in source order.
	Emails []Email `json:"emails"`

	// Photos holds the avatar URL when present.
	Photos []Photo `json:"photos,omitempty"`

	// Raw is the verbatim body of the /user response.
	Raw string `json:"_raw"`

	// JSON is the parsed body of the /user response. Numbers are kept as json.Number.
	JSON map[string]any `json:"_json"`
}

// Email is a single address attached to a profile.
// Primary and Verified are nil when the source did not report them.
type Email struct {
	Value    string `json:"value"`
	Primary  *bool  `json:"primary,omitempty"`
	Verified *bool  `json:"verified,omitempty"`
}

// Photo is a profile picture reference.
type Photo struct {
	Value string `json:"value"`
}

// PrimaryEmail returns the address flagged primary, falling back to the first
// address. Returns "" when the profile has no emails.
func (p *Profile) PrimaryEmail() string {
	if p == nil || len(p.Emails) == 0 {
		return ""
	}
	for _, e := range p.Emails {
		if e.Primary != nil && *e.Primary {
			return e.Value
		}
	}
	return p.Emails[0].Value
}
