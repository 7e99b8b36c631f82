package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/studyatlas/studyatlas/pkg/auth"
	"github.com/studyatlas/studyatlas/pkg/contextkeys"
	"github.com/studyatlas/studyatlas/pkg/httputil"
)

// AuthMiddleware guards routes with JWT session verification. Member
// and admin routes use separate guards so a member token can never
// reach an admin surface.
type AuthMiddleware struct {
	tokens *auth.TokenManager
}

// NewAuthMiddleware creates the auth guards.
func NewAuthMiddleware(tokens *auth.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func (m *AuthMiddleware) guard(verify func(string) (*auth.Claims, error), next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			httputil.WriteUnauthorized(w, "missing or malformed authorization header")
			return
		}
		claims, err := verify(token)
		if err != nil {
			if errors.Is(err, auth.ErrNoSecret) {
				httputil.WriteServiceUnavailable(w, "authentication not configured")
				return
			}
			httputil.WriteUnauthorized(w, "invalid or expired token")
			return
		}
		ctx := contextkeys.WithClaims(r.Context(), claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireUser wraps a handler so only authenticated site members pass.
func (m *AuthMiddleware) RequireUser(next http.Handler) http.Handler {
	return m.guard(m.tokens.VerifyUser, next)
}

// RequireAdmin wraps a handler so only authenticated admins pass.
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return m.guard(m.tokens.VerifyAdmin, next)
}

// UserID extracts the authenticated principal's ID from the request.
// Returns false when the guard did not run or the subject is malformed.
func UserID(r *http.Request) (int64, bool) {
	claims := contextkeys.GetClaims(r.Context())
	if claims == nil {
		return 0, false
	}
	id, err := claims.UserID()
	if err != nil {
		return 0, false
	}
	return id, true
}
