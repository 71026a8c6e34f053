// Package profile maps GitHub REST API responses into a canonical user profile.
//
// Parse handles the /user response, ParseEmails handles /user/emails, and
// Normalize combines the two. The emails list, when supplied, replaces the
// single public email taken from /user. Raw and JSON always describe the
// /user response.
//
// Display names and logins are passed through unchanged.
//
// Example:
//
//	p, err := profile.Normalize(userBody, emailsBody)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(p.ID, p.Username, p.PrimaryEmail())
package profile
