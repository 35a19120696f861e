package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// credentialsRequest is the body of POST /auth/register and POST /auth/login.
type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// changePasswordRequest is the body of PUT /auth/password.
type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// sessionResponse is returned by POST /auth/login.
type sessionResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

// Register handles POST /auth/register.
func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}

	user, err := s.auth.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		writeDomainError(w, err, "user")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{
		"id":    user.ID.String(),
		"email": user.Email,
	})
}

// Login handles POST /auth/login.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}

	sess, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeDomainError(w, err, "user")
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{
		Token:     sess.Token.String(),
		ExpiresAt: sess.ExpiresAt.Format(time.RFC3339),
	})
}

// Logout handles POST /auth/logout. The auth middleware has already verified
// the session; the raw token is re-read from the header to know which session
// to close.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := tokenFromHeader(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "a valid session token is required")
		return
	}

	if err := s.auth.Logout(r.Context(), token); err != nil {
		writeDomainError(w, err, "session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ChangePassword handles PUT /auth/password: re-authenticates with the
// current password, then updates to the new one. On failure nothing was
// mutated, so the client keeps its form state.
func (s *Server) ChangePassword(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromContext(w, r)
	if !ok {
		return
	}

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}

	if err := s.auth.ChangePassword(r.Context(), ownerID, req.CurrentPassword, req.NewPassword); err != nil {
		writeDomainError(w, err, "user")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// tokenFromHeader parses the bearer token out of the Authorization header.
func tokenFromHeader(r *http.Request) (uuid.UUID, bool) {
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return uuid.Nil, false
	}
	token, err := uuid.Parse(strings.TrimSpace(parts[1]))
	if err != nil {
		return uuid.Nil, false
	}
	return token, true
}
