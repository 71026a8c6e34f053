// Package validate provides input validation shared by provider constructors.
//
// # Security Features
//
//   - HTTPS enforcement for configured endpoints (GitHub Enterprise URLs)
//   - Link-local blocking to prevent metadata service SSRF
//   - Scope list size and length limits
//   - Header injection checks for custom request headers
package validate
