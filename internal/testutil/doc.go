// Package testutil provides test fixtures and fakes for the strategy: an
// httptest-backed fake of the GitHub API, octocat response bodies, a log
// capture helper and PKCE helpers.
package testutil
