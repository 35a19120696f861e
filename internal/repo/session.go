package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/carrotnotes/backend/internal/domain"
)

// SessionRepo defines the persistence operations for login sessions.
type SessionRepo interface {
	// Create inserts a new session for userID expiring after ttl and returns it.
	Create(ctx context.Context, userID uuid.UUID, ttl time.Duration) (domain.Session, error)

	// GetByToken retrieves a live session by token.
	// Returns domain.ErrNotFound for unknown or expired tokens.
	GetByToken(ctx context.Context, token uuid.UUID) (domain.Session, error)

	// Delete removes a session by token. Deleting an unknown token is not an
	// error — logout is idempotent.
	Delete(ctx context.Context, token uuid.UUID) error
}

// pgSessionRepo is the Postgres implementation of SessionRepo.
type pgSessionRepo struct {
	db db
}

// NewSessionRepo constructs a SessionRepo backed by the provided db connection.
func NewSessionRepo(db db) SessionRepo {
	return &pgSessionRepo{db: db}
}

// Create inserts a session row with a store-assigned token.
func (r *pgSessionRepo) Create(ctx context.Context, userID uuid.UUID, ttl time.Duration) (domain.Session, error) {
	const q = `
		INSERT INTO sessions (user_id, expires_at)
		VALUES (@user_id, @expires_at)
		RETURNING token, user_id, created_at, expires_at`

	args := pgx.NamedArgs{"user_id": userID, "expires_at": time.Now().UTC().Add(ttl)}
	row := r.db.QueryRow(ctx, q, args)
	result, err := scanSession(row)
	if err != nil {
		return domain.Session{}, fmt.Errorf("repo.SessionRepo.Create: %w", err)
	}
	return result, nil
}

// GetByToken retrieves a session, treating expired rows as missing.
func (r *pgSessionRepo) GetByToken(ctx context.Context, token uuid.UUID) (domain.Session, error) {
	const q = `
		SELECT token, user_id, created_at, expires_at
		FROM sessions
		WHERE token = @token AND expires_at > now()`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"token": token})
	result, err := scanSession(row)
	if err != nil {
		return domain.Session{}, fmt.Errorf("repo.SessionRepo.GetByToken: %w", err)
	}
	return result, nil
}

// Delete removes a session row if present.
func (r *pgSessionRepo) Delete(ctx context.Context, token uuid.UUID) error {
	const q = `DELETE FROM sessions WHERE token = @token`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"token": token}); err != nil {
		return fmt.Errorf("repo.SessionRepo.Delete: %w", err)
	}
	return nil
}

// scanSession maps a single database row into a domain.Session.
func scanSession(s scanner) (domain.Session, error) {
	var (
		sess   domain.Session
		token  pgtype.UUID
		userID pgtype.UUID
	)
	err := s.Scan(&token, &userID, &sess.CreatedAt, &sess.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Session{}, domain.ErrNotFound
		}
		return domain.Session{}, err
	}
	sess.Token = uuid.UUID(token.Bytes)
	sess.UserID = uuid.UUID(userID.Bytes)
	return sess, nil
}
