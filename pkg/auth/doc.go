// Package auth implements credential authentication and signed session
// tokens for the locus API.
//
// Principals are statically provisioned: an immutable UserStore is built
// once at startup and injected into the Service. Authentication is an
// exact (username, password) match against that table and fails
// uniformly with ErrInvalidCredentials, never revealing which field was
// wrong.
//
// Session tokens are self-contained HMAC-SHA256 signed credentials
// carrying {username, sub, role} claims with a bounded validity window
// (24h by default). Nothing is stored server-side; expiry is the only
// destruction mechanism. Verification is pure CPU work and happens on
// every request to the protected surface.
package auth
