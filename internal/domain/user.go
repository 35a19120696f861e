package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an account in the notes backend. Email is stored lowercased and is
// unique. PasswordHash is a bcrypt hash and never leaves the service layer.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Session is a bearer-token login session. The token is the session's
// identity; anything holding it acts as UserID until ExpiresAt.
type Session struct {
	Token     uuid.UUID
	UserID    uuid.UUID
	CreatedAt time.Time
	ExpiresAt time.Time
}

// MinPasswordLen is the minimum accepted password length.
const MinPasswordLen = 6
