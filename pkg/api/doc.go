// Package api exposes the locus service over HTTP.
//
// # Routes
//
//	POST /api/v1/auth/login   public, exchanges credentials for a token
//	GET  /api/v1/locus        bearer token required
//
// The locus route accepts the filters id, assemblyId, regionId
// (repeatable), membershipStatus and sideload (repeatable, admin only),
// plus page, limit, sortBy and sortOrder. Invalid parameters fail with
// 400 before any query runs.
//
// # Error Responses
//
// All errors are JSON objects of the form {"error": "..."}:
//
//	400  invalid query parameter or request body
//	401  missing, malformed or expired token; bad credentials on login
//	403  sideload requested by a non-admin role
//	500  database or internal failure, details stay server-side
package api
