// Package util provides small helpers shared by the strategy and its provider.
//
// Key utilities:
//   - SafeTruncate: Bounds provider response bodies kept for diagnostics
//   - NormalizeURL: Trailing-slash normalization for endpoint overrides
//   - TokenFingerprint: Non-reversible access-token identifier for logs and traces
//   - ClassifyHost: Security classification of endpoint hosts
package util
