// Package middleware provides the HTTP request guards and plumbing:
// JWT session verification for the member and admin surfaces, request
// ID tagging, structured access logging, panic recovery, and a token
// bucket rate limiter for credential endpoints.
//
//	guard := middleware.NewAuthMiddleware(tokens)
//	router.Handle("/users/profile", guard.RequireUser(profileHandler))
//	router.Handle("/admin/seed", guard.RequireAdmin(seedHandler))
//
// # Related Packages
//
//   - pkg/auth: token issuance and verification
//   - pkg/contextkeys: claims context key definitions
package middleware
