package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerifyUser(t *testing.T) {
	tm := NewTokenManager("user-secret", "admin-secret", time.Hour)

	token, err := tm.IssueUser(42, "reader@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tm.VerifyUser(token)
	require.NoError(t, err)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, "reader@example.com", claims.Email)
}

func TestIssueAndVerifyAdmin(t *testing.T) {
	tm := NewTokenManager("user-secret", "admin-secret", time.Hour)

	token, err := tm.IssueAdmin(1)
	require.NoError(t, err)

	claims, err := tm.VerifyAdmin(token)
	require.NoError(t, err)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	assert.Empty(t, claims.Email)
}

func TestAudiencesAreNotInterchangeable(t *testing.T) {
	tm := NewTokenManager("user-secret", "admin-secret", time.Hour)

	userToken, err := tm.IssueUser(42, "reader@example.com")
	require.NoError(t, err)
	adminToken, err := tm.IssueAdmin(1)
	require.NoError(t, err)

	_, err = tm.VerifyAdmin(userToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = tm.VerifyUser(adminToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestMissingSecretRefusesService(t *testing.T) {
	tm := NewTokenManager("", "admin-secret", time.Hour)

	_, err := tm.IssueUser(42, "reader@example.com")
	assert.ErrorIs(t, err, ErrNoSecret)

	_, err = tm.VerifyUser("whatever")
	assert.ErrorIs(t, err, ErrNoSecret)
}

func TestExpiredTokenRejected(t *testing.T) {
	tm := NewTokenManager("user-secret", "admin-secret", time.Minute)

	token, err := tm.IssueUser(42, "reader@example.com")
	require.NoError(t, err)

	tm.now = func() time.Time { return time.Now().Add(2 * time.Minute) }

	_, err = tm.VerifyUser(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTamperedTokenRejected(t *testing.T) {
	tm := NewTokenManager("user-secret", "admin-secret", time.Hour)
	other := NewTokenManager("different-secret", "admin-secret", time.Hour)

	token, err := other.IssueUser(42, "reader@example.com")
	require.NoError(t, err)

	_, err = tm.VerifyUser(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestBadSubject(t *testing.T) {
	claims := &Claims{}
	claims.Subject = "not-a-number"

	_, err := claims.UserID()
	assert.True(t, errors.Is(err, ErrInvalidToken))
}
