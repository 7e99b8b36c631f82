package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyatlas/studyatlas/pkg/auth"
)

func okHandler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := UserID(r)
		require.True(t, ok)
		assert.NotZero(t, id)
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireUserAcceptsUserToken(t *testing.T) {
	tm := auth.NewTokenManager("user-secret", "admin-secret", time.Hour)
	guard := NewAuthMiddleware(tm)

	token, err := tm.IssueUser(42, "reader@example.com")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/users/profile", nil)
	r.Header.Set("Authorization", "Bearer "+token)

	guard.RequireUser(okHandler(t)).ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAdminRejectsUserToken(t *testing.T) {
	tm := auth.NewTokenManager("user-secret", "admin-secret", time.Hour)
	guard := NewAuthMiddleware(tm)

	token, err := tm.IssueUser(42, "reader@example.com")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/admin/seed", nil)
	r.Header.Set("Authorization", "Bearer "+token)

	guard.RequireAdmin(okHandler(t)).ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireUserMissingHeader(t *testing.T) {
	tm := auth.NewTokenManager("user-secret", "admin-secret", time.Hour)
	guard := NewAuthMiddleware(tm)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/users/profile", nil)

	guard.RequireUser(okHandler(t)).ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireUserMalformedHeader(t *testing.T) {
	tm := auth.NewTokenManager("user-secret", "admin-secret", time.Hour)
	guard := NewAuthMiddleware(tm)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/users/profile", nil)
	r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

	guard.RequireUser(okHandler(t)).ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireUserWithoutSecretReturns503(t *testing.T) {
	tm := auth.NewTokenManager("", "admin-secret", time.Hour)
	guard := NewAuthMiddleware(tm)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/users/profile", nil)
	r.Header.Set("Authorization", "Bearer some-token")

	guard.RequireUser(okHandler(t)).ServeHTTP(w, r)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
