package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carrotnotes/backend/internal/domain"
	"github.com/carrotnotes/backend/internal/repo"
)

// ---- UserRepo --------------------------------------------------------------

func TestUserRepo_Create_And_GetByEmail(t *testing.T) {
	tx := newTestTx(t)
	userRepo := repo.NewUserRepo(tx)
	ctx := context.Background()

	created, err := userRepo.Create(ctx, "alice@example.com", "hash123")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "alice@example.com", created.Email)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := userRepo.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "hash123", got.PasswordHash)
}

func TestUserRepo_Create_DuplicateEmail(t *testing.T) {
	tx := newTestTx(t)
	userRepo := repo.NewUserRepo(tx)
	ctx := context.Background()

	_, err := userRepo.Create(ctx, "bob@example.com", "h1")
	require.NoError(t, err)

	_, err = userRepo.Create(ctx, "bob@example.com", "h2")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUserRepo_GetByEmail_NotFound(t *testing.T) {
	tx := newTestTx(t)
	userRepo := repo.NewUserRepo(tx)

	_, err := userRepo.GetByEmail(context.Background(), "nobody@example.com")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserRepo_UpdatePassword(t *testing.T) {
	tx := newTestTx(t)
	userRepo := repo.NewUserRepo(tx)
	ctx := context.Background()

	created, err := userRepo.Create(ctx, "carol@example.com", "old-hash")
	require.NoError(t, err)

	require.NoError(t, userRepo.UpdatePassword(ctx, created.ID, "new-hash"))

	got, err := userRepo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", got.PasswordHash)
}

func TestUserRepo_UpdatePassword_NotFound(t *testing.T) {
	tx := newTestTx(t)
	userRepo := repo.NewUserRepo(tx)

	err := userRepo.UpdatePassword(context.Background(), uuid.New(), "hash")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- SessionRepo -----------------------------------------------------------

func TestSessionRepo_Create_And_GetByToken(t *testing.T) {
	tx := newTestTx(t)
	sessRepo := repo.NewSessionRepo(tx)
	owner := createTestUser(t, tx, "session-owner@example.com")
	ctx := context.Background()

	created, err := sessRepo.Create(ctx, owner, time.Hour)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.Token)
	assert.Equal(t, owner, created.UserID)
	assert.True(t, created.ExpiresAt.After(created.CreatedAt))

	got, err := sessRepo.GetByToken(ctx, created.Token)
	require.NoError(t, err)
	assert.Equal(t, owner, got.UserID)
}

func TestSessionRepo_GetByToken_Expired(t *testing.T) {
	tx := newTestTx(t)
	sessRepo := repo.NewSessionRepo(tx)
	owner := createTestUser(t, tx, "expired@example.com")
	ctx := context.Background()

	created, err := sessRepo.Create(ctx, owner, -time.Minute)
	require.NoError(t, err)

	_, err = sessRepo.GetByToken(ctx, created.Token)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSessionRepo_Delete_Idempotent(t *testing.T) {
	tx := newTestTx(t)
	sessRepo := repo.NewSessionRepo(tx)
	owner := createTestUser(t, tx, "logout@example.com")
	ctx := context.Background()

	created, err := sessRepo.Create(ctx, owner, time.Hour)
	require.NoError(t, err)

	require.NoError(t, sessRepo.Delete(ctx, created.Token))

	_, err = sessRepo.GetByToken(ctx, created.Token)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Deleting again is not an error.
	assert.NoError(t, sessRepo.Delete(ctx, created.Token))
}
