package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/carrotnotes/backend/internal/domain"
	"github.com/carrotnotes/backend/internal/repo"
)

// SessionTTL is how long a login session stays valid.
const SessionTTL = 7 * 24 * time.Hour

// AuthService implements account and session operations. Failures the user
// can act on are returned as *domain.AuthError so handlers can surface the
// translated message directly.
type AuthService struct {
	users    repo.UserRepo
	sessions repo.SessionRepo
}

// NewAuthService constructs an AuthService backed by the provided repos.
func NewAuthService(users repo.UserRepo, sessions repo.SessionRepo) *AuthService {
	return &AuthService{users: users, sessions: sessions}
}

// Register creates a new account. Email is lowercased before storage;
// passwords shorter than domain.MinPasswordLen are rejected as weak.
func (s *AuthService) Register(ctx context.Context, email, password string) (domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return domain.User{}, domain.NewAuthError(domain.AuthCodeInvalidEmail)
	}
	if password == "" {
		return domain.User{}, domain.NewAuthError(domain.AuthCodeMissingPassword)
	}
	if len(password) < domain.MinPasswordLen {
		return domain.User{}, domain.NewAuthError(domain.AuthCodeWeakPassword)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.Register: %w", err)
	}

	user, err := s.users.Create(ctx, email, string(hash))
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return domain.User{}, domain.NewAuthError(domain.AuthCodeEmailInUse)
		}
		return domain.User{}, fmt.Errorf("service.AuthService.Register: %w", err)
	}
	return user, nil
}

// Login verifies the credentials and opens a new session.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if password == "" {
		return domain.Session{}, domain.NewAuthError(domain.AuthCodeMissingPassword)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Session{}, domain.NewAuthError(domain.AuthCodeUserNotFound)
		}
		return domain.Session{}, fmt.Errorf("service.AuthService.Login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return domain.Session{}, domain.NewAuthError(domain.AuthCodeInvalidCredential)
	}

	sess, err := s.sessions.Create(ctx, user.ID, SessionTTL)
	if err != nil {
		return domain.Session{}, fmt.Errorf("service.AuthService.Login: %w", err)
	}
	return sess, nil
}

// Logout closes the session for the given token. Idempotent.
func (s *AuthService) Logout(ctx context.Context, token uuid.UUID) error {
	if err := s.sessions.Delete(ctx, token); err != nil {
		return fmt.Errorf("service.AuthService.Logout: %w", err)
	}
	return nil
}

// CurrentUser resolves a bearer token to the owner identity it belongs to.
// Returns domain.ErrUnauthorized for unknown or expired tokens.
func (s *AuthService) CurrentUser(ctx context.Context, token uuid.UUID) (uuid.UUID, error) {
	sess, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return uuid.Nil, domain.ErrUnauthorized
		}
		return uuid.Nil, fmt.Errorf("service.AuthService.CurrentUser: %w", err)
	}
	return sess.UserID, nil
}

// ChangePassword re-authenticates the owner with the current password, then
// updates to the new one. Nothing is mutated when re-authentication fails, so
// the caller's form state can stay intact.
func (s *AuthService) ChangePassword(ctx context.Context, ownerID uuid.UUID, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return domain.NewAuthError(domain.AuthCodeMissingPassword)
	}
	if len(newPassword) < domain.MinPasswordLen {
		return domain.NewAuthError(domain.AuthCodeWeakPassword)
	}

	user, err := s.users.GetByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewAuthError(domain.AuthCodeUserNotFound)
		}
		return fmt.Errorf("service.AuthService.ChangePassword: %w", err)
	}

	// Re-authenticate before touching anything.
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return domain.NewAuthError(domain.AuthCodeInvalidCredential)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("service.AuthService.ChangePassword: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return fmt.Errorf("service.AuthService.ChangePassword: %w", err)
	}
	return nil
}
