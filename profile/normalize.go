package profile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Response sources reported by ParseError.
const (
	SourceUser   = "user"
	SourceEmails = "emails"
)

// ErrMissingID is wrapped by ParseError when the /user body carries no usable id.
var ErrMissingID = errors.New("user id is missing")

// ParseError reports a response body that could not be decoded.
type ParseError struct {
	// Source is SourceUser or SourceEmails.
	Source string
	Err    error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s response: %v", e.Source, e.Err)
}

// Unwrap returns the underlying decode error
func (e *ParseError) Unwrap() error {
	return e.Err
}

// userID accepts both numeric and string ids. Numbers keep their exact digits.
type userID string

func (id *userID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = userID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a number or a string: %w", err)
	}
	*id = userID(n.String())
	return nil
}

// userRecord is the subset of the /user response that is mapped into a Profile.
type userRecord struct {
	ID        *userID `json:"id"`
	Login     string  `json:"login"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	HTMLURL   string  `json:"html_url"`
	AvatarURL string  `json:"avatar_url"`
}

type emailRecord struct {
	Email    string `json:"email"`
	Primary  *bool  `json:"primary"`
	Verified *bool  `json:"verified"`
}

// Parse builds a Profile from a /user response body.
// The body must be a JSON object with an id.
func Parse(raw []byte) (*Profile, error) {
	fields, err := decodeObject(raw)
	if err != nil {
		return nil, &ParseError{Source: SourceUser, Err: err}
	}

	var rec userRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, &ParseError{Source: SourceUser, Err: err}
	}
	if rec.ID == nil || *rec.ID == "" {
		return nil, &ParseError{Source: SourceUser, Err: ErrMissingID}
	}

	p := &Profile{
		Provider:    ProviderName,
		ID:          string(*rec.ID),
		Username:    rec.Login,
		DisplayName: rec.Name,
		ProfileURL:  rec.HTMLURL,
		Emails:      []Email{},
		Raw:         string(raw),
		JSON:        fields,
	}
	if rec.Email != "" {
		p.Emails = []Email{{Value: rec.Email}}
	}
	if rec.AvatarURL != "" {
		p.Photos = []Photo{{Value: rec.AvatarURL}}
	}

	return p, nil
}

// ParseEmails decodes a /user/emails response body. Order is preserved.
// A JSON null yields an empty list.
func ParseEmails(raw []byte) ([]Email, error) {
	var recs []emailRecord
	if err := json.Unmarshal(raw, &recs); err != nil {
		return nil, &ParseError{Source: SourceEmails, Err: err}
	}

	emails := make([]Email, 0, len(recs))
	for _, r := range recs {
		emails = append(emails, Email{
			Value:    r.Email,
			Primary:  r.Primary,
			Verified: r.Verified,
		})
	}
	return emails, nil
}

// Normalize parses the /user body and, when emailsRaw is non-nil, replaces the
// profile's emails with the /user/emails list.
func Normalize(raw, emailsRaw []byte) (*Profile, error) {
	p, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	if emailsRaw == nil {
		return p, nil
	}

	emails, err := ParseEmails(emailsRaw)
	if err != nil {
		return nil, err
	}
	p.Emails = emails
	return p, nil
}

// decodeObject decodes raw into a map, rejecting non-objects and trailing data.
func decodeObject(raw []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, errors.New("response is not a JSON object")
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after JSON object")
	}
	return fields, nil
}
