package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/carrotnotes/backend/internal/repo"
	"github.com/carrotnotes/backend/testutil"
)

// newTestTx opens a transaction against the test database that is rolled
// back when the test finishes, giving free per-test isolation without any
// manual cleanup. Skips when TEST_DATABASE_URL is not set.
func newTestTx(t *testing.T) pgx.Tx {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		_ = tx.Rollback(context.Background())
	})
	return tx
}

// createTestUser inserts a user with a throwaway hash and returns its ID.
// Todos, categories, and sessions all carry a foreign key to users, so most
// repo tests need one.
func createTestUser(t *testing.T, tx pgx.Tx, email string) uuid.UUID {
	t.Helper()
	user, err := repo.NewUserRepo(tx).Create(context.Background(), email, "x")
	require.NoError(t, err, "create test user")
	return user.ID
}
