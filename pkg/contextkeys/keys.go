// Package contextkeys provides centralized context key definitions
//
// All context keys shared across packages are defined here so key usage
// stays discoverable. Request ID and logger plumbing lives in
// pkg/observability; this package carries the authenticated principal.
package contextkeys

import (
	"context"

	"github.com/studyatlas/studyatlas/pkg/auth"
)

// Key is the type for context keys to prevent collisions
type Key string

const (
	// ClaimsKey contains *auth.Claims
	// Set by: middleware.RequireUser / middleware.RequireAdmin
	// Required by: member and admin endpoints
	ClaimsKey Key = "auth_claims"
)

// WithClaims adds the verified session claims to the context
func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, ClaimsKey, claims)
}

// GetClaims retrieves session claims from context, nil when absent
func GetClaims(ctx context.Context) *auth.Claims {
	claims, ok := ctx.Value(ClaimsKey).(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}
