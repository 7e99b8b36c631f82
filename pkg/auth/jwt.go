package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Audience values embedded in issued tokens. Each audience is signed
// with its own secret, so a token is only ever valid for the guard it
// was issued for.
const (
	AudienceUser  = "user"
	AudienceAdmin = "admin"
)

// ErrNoSecret is returned when the secret for the requested audience was
// not configured. Handlers translate it to 503 rather than 401: the
// deployment cannot verify anyone, which is not the caller's fault.
var ErrNoSecret = errors.New("signing secret not configured")

// ErrInvalidToken covers expired, malformed, or wrong-audience tokens.
var ErrInvalidToken = errors.New("invalid token")

// Claims carries the authenticated principal. Subject holds the numeric
// user ID; Email is set for site members, empty for admins.
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// UserID parses the numeric subject.
func (c *Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}
	return id, nil
}

// TokenManager issues and verifies HS256 session tokens. Either secret
// may be empty; the corresponding surface then refuses service instead
// of accepting unsigned tokens.
type TokenManager struct {
	userSecret  []byte
	adminSecret []byte
	ttl         time.Duration
	now         func() time.Time
}

// NewTokenManager creates a token manager. ttl bounds the lifetime of
// every issued token.
func NewTokenManager(userSecret, adminSecret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenManager{
		userSecret:  []byte(userSecret),
		adminSecret: []byte(adminSecret),
		ttl:         ttl,
		now:         time.Now,
	}
}

func (tm *TokenManager) secretFor(audience string) ([]byte, error) {
	var secret []byte
	switch audience {
	case AudienceUser:
		secret = tm.userSecret
	case AudienceAdmin:
		secret = tm.adminSecret
	default:
		return nil, fmt.Errorf("%w: unknown audience %q", ErrInvalidToken, audience)
	}
	if len(secret) == 0 {
		return nil, ErrNoSecret
	}
	return secret, nil
}

func (tm *TokenManager) issue(audience string, userID int64, email string) (string, error) {
	secret, err := tm.secretFor(audience)
	if err != nil {
		return "", err
	}
	now := tm.now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			Audience:  jwt.ClaimStrings{audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (tm *TokenManager) verify(audience, raw string) (*Claims, error) {
	secret, err := tm.secretFor(audience)
	if err != nil {
		return nil, err
	}
	claims := &Claims{}
	_, err = jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	}, jwt.WithAudience(audience), jwt.WithTimeFunc(tm.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claims, nil
}

// IssueUser issues a member session token.
func (tm *TokenManager) IssueUser(userID int64, email string) (string, error) {
	return tm.issue(AudienceUser, userID, email)
}

// IssueAdmin issues an admin session token.
func (tm *TokenManager) IssueAdmin(userID int64) (string, error) {
	return tm.issue(AudienceAdmin, userID, "")
}

// VerifyUser verifies a member session token.
func (tm *TokenManager) VerifyUser(raw string) (*Claims, error) {
	return tm.verify(AudienceUser, raw)
}

// VerifyAdmin verifies an admin session token.
func (tm *TokenManager) VerifyAdmin(raw string) (*Claims, error) {
	return tm.verify(AudienceAdmin, raw)
}
