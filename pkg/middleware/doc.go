// Package middleware provides HTTP middleware for authentication.
//
// # Overview
//
// AuthMiddleware validates the Authorization bearer token on protected
// routes and places the resolved claims on the request context for
// handlers to consume.
//
// # Usage
//
//	authMW := middleware.NewAuthMiddleware(authService, metrics)
//	router.Handle("/api/v1/locus", authMW.Handler(locusHandler))
//
// Handlers read the caller back out of the context:
//
//	claims := middleware.GetPrincipal(r.Context())
//	if claims == nil {
//		httputil.WriteUnauthorized(w, "authentication required")
//		return
//	}
//
// # Related Packages
//
//   - pkg/auth: Token issuing and verification
//   - pkg/contextkeys: Context key definitions
package middleware
