package server

import (
	"errors"
	"net/http"

	"github.com/studyatlas/studyatlas/pkg/api"
	"github.com/studyatlas/studyatlas/pkg/auth"
	"github.com/studyatlas/studyatlas/pkg/httputil"
)

type registerRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type googleLoginRequest struct {
	IDToken string `json:"idToken"`
}

type adminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token string          `json:"token"`
	User  *api.ActiveUser `json:"user,omitempty"`
}

// writeAuthError maps token issuance failures. A missing secret is a
// deployment problem, not a credential problem.
func writeAuthError(w http.ResponseWriter, err error) {
	if errors.Is(err, auth.ErrNoSecret) {
		httputil.WriteServiceUnavailable(w, "authentication not configured")
		return
	}
	httputil.WriteUnauthorized(w, "invalid credentials")
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}
	if req.Password == "" {
		httputil.WriteBadRequest(w, "password is required")
		return
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}
	user, err := s.store.CreateActiveUser(r.Context(), &api.ActiveUser{
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: hash,
	})
	if err != nil {
		httputil.WriteStoreError(w, err)
		return
	}
	token, err := s.tokens.IssueUser(user.ID, user.Email)
	if err != nil {
		writeAuthError(w, err)
		return
	}
	httputil.WriteCreated(w, sessionResponse{Token: token, User: user})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}
	user, err := s.store.GetActiveUserByEmail(r.Context(), req.Email)
	if err != nil {
		// Unknown email and bad password are reported identically.
		if errors.Is(err, api.ErrNotFound) {
			httputil.WriteUnauthorized(w, "invalid credentials")
			return
		}
		httputil.WriteStoreError(w, err)
		return
	}
	if user.PasswordHash == "" {
		// Google-linked account with no password set.
		httputil.WriteUnauthorized(w, "invalid credentials")
		return
	}
	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		httputil.WriteUnauthorized(w, "invalid credentials")
		return
	}
	token, err := s.tokens.IssueUser(user.ID, user.Email)
	if err != nil {
		writeAuthError(w, err)
		return
	}
	httputil.WriteSuccess(w, sessionResponse{Token: token, User: user})
}

func (s *Server) googleLogin(w http.ResponseWriter, r *http.Request) {
	if s.google == nil {
		httputil.WriteServiceUnavailable(w, "google sign-in not configured")
		return
	}
	var req googleLoginRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}
	profile, err := s.google.Verify(r.Context(), req.IDToken)
	if err != nil {
		httputil.WriteUnauthorized(w, "invalid google token")
		return
	}

	user, err := s.store.GetActiveUserByEmail(r.Context(), profile.Email)
	if errors.Is(err, api.ErrNotFound) {
		user, err = s.store.CreateActiveUser(r.Context(), &api.ActiveUser{
			FullName:     profile.Name,
			Email:        profile.Email,
			GoogleID:     profile.Subject,
			ProfileImage: profile.Picture,
		})
	}
	if err != nil {
		httputil.WriteStoreError(w, err)
		return
	}

	token, err := s.tokens.IssueUser(user.ID, user.Email)
	if err != nil {
		writeAuthError(w, err)
		return
	}
	httputil.WriteSuccess(w, sessionResponse{Token: token, User: user})
}

func (s *Server) adminLogin(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}
	user, err := s.store.GetUserByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			httputil.WriteUnauthorized(w, "invalid credentials")
			return
		}
		httputil.WriteStoreError(w, err)
		return
	}
	if !user.IsAdmin {
		httputil.WriteForbidden(w, "not an admin account")
		return
	}
	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		httputil.WriteUnauthorized(w, "invalid credentials")
		return
	}
	token, err := s.tokens.IssueAdmin(user.ID)
	if err != nil {
		writeAuthError(w, err)
		return
	}
	httputil.WriteSuccess(w, sessionResponse{Token: token})
}
