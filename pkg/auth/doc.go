// Package auth provides credential handling for the two login surfaces:
// admin users (username and password) and site members (email/password or
// a Google ID token). Sessions are stateless JWTs signed with a secret
// per audience, so admin tokens never pass the member guard and vice
// versa.
//
// # Issuing and verifying tokens
//
//	tm := auth.NewTokenManager(cfg.UserSecret, cfg.AdminSecret, cfg.TokenTTL)
//	token, err := tm.IssueUser(user.ID, user.Email)
//	claims, err := tm.VerifyUser(token)
//
// # Related Packages
//
//   - pkg/middleware: request guards built on TokenManager
package auth
