package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/carrotnotes/backend/internal/domain"
)

// CategoryRepo defines the persistence operations for Categories.
// Category identity is case-insensitive per owner: the unique index on
// (user_id, lower(name)) is the source of truth, and every name-matching
// query here compares on lower(name).
type CategoryRepo interface {
	// ListNames returns the owner's distinct category names, case-preserving,
	// ordered case-insensitively ascending.
	ListNames(ctx context.Context, ownerID uuid.UUID) ([]string, error)

	// Count returns how many categories the owner currently has.
	Count(ctx context.Context, ownerID uuid.UUID) (int, error)

	// AddBatch inserts the given names for the owner, skipping any that
	// already exist case-insensitively. Safe under concurrent calls — the
	// unique index makes the skip atomic. Returns the names actually inserted.
	AddBatch(ctx context.Context, ownerID uuid.UUID, names []string) ([]string, error)

	// Rename updates every category record matching (ownerID, oldName) to
	// newName, matching oldName case-insensitively.
	// Returns domain.ErrNotFound if no record matched.
	Rename(ctx context.Context, ownerID uuid.UUID, oldName, newName string) error

	// Remove deletes every category record matching (ownerID, name),
	// matching case-insensitively.
	// Returns domain.ErrNotFound if no record matched.
	Remove(ctx context.Context, ownerID uuid.UUID, name string) error

	// RelabelTodos rewrites the category field of the owner's todos from
	// oldName to newName. Used by the rename cascade; zero matches is not an
	// error because a category may legitimately have no todos.
	RelabelTodos(ctx context.Context, ownerID uuid.UUID, oldName, newName string) error
}

// pgCategoryRepo is the Postgres implementation of CategoryRepo.
type pgCategoryRepo struct {
	db db
}

// NewCategoryRepo constructs a CategoryRepo backed by the provided db connection.
func NewCategoryRepo(db db) CategoryRepo {
	return &pgCategoryRepo{db: db}
}

// ListNames returns the owner's category names ordered case-insensitively.
// Display casing is whatever the user typed when the category was created.
func (r *pgCategoryRepo) ListNames(ctx context.Context, ownerID uuid.UUID) ([]string, error) {
	const q = `
		SELECT name
		FROM categories
		WHERE user_id = @user_id
		ORDER BY lower(name), name`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": ownerID})
	if err != nil {
		return nil, fmt.Errorf("repo.CategoryRepo.ListNames: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("repo.CategoryRepo.ListNames: scan: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.CategoryRepo.ListNames: rows: %w", err)
	}
	return names, nil
}

// Count returns the owner's current category count.
func (r *pgCategoryRepo) Count(ctx context.Context, ownerID uuid.UUID) (int, error) {
	const q = `SELECT count(*) FROM categories WHERE user_id = @user_id`

	var n int
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"user_id": ownerID}).Scan(&n); err != nil {
		return 0, fmt.Errorf("repo.CategoryRepo.Count: %w", err)
	}
	return n, nil
}

// AddBatch inserts names one at a time with ON CONFLICT DO NOTHING against
// the (user_id, lower(name)) index, collecting the names that actually landed.
func (r *pgCategoryRepo) AddBatch(ctx context.Context, ownerID uuid.UUID, names []string) ([]string, error) {
	const q = `
		INSERT INTO categories (user_id, name)
		VALUES (@user_id, @name)
		ON CONFLICT (user_id, lower(name)) DO NOTHING`

	inserted := []string{}
	for _, name := range names {
		tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"user_id": ownerID, "name": name})
		if err != nil {
			return inserted, fmt.Errorf("repo.CategoryRepo.AddBatch: %w", err)
		}
		if tag.RowsAffected() > 0 {
			inserted = append(inserted, name)
		}
	}
	return inserted, nil
}

// Rename updates all category rows matching oldName case-insensitively.
func (r *pgCategoryRepo) Rename(ctx context.Context, ownerID uuid.UUID, oldName, newName string) error {
	const q = `
		UPDATE categories
		SET name = @new_name
		WHERE user_id = @user_id AND lower(name) = lower(@old_name)`

	args := pgx.NamedArgs{"user_id": ownerID, "old_name": oldName, "new_name": newName}
	tag, err := r.db.Exec(ctx, q, args)
	if err != nil {
		return fmt.Errorf("repo.CategoryRepo.Rename: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.CategoryRepo.Rename: %w", domain.ErrNotFound)
	}
	return nil
}

// Remove deletes all category rows matching name case-insensitively.
// Todos tagged with the name are left untouched.
func (r *pgCategoryRepo) Remove(ctx context.Context, ownerID uuid.UUID, name string) error {
	const q = `
		DELETE FROM categories
		WHERE user_id = @user_id AND lower(name) = lower(@name)`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"user_id": ownerID, "name": name})
	if err != nil {
		return fmt.Errorf("repo.CategoryRepo.Remove: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.CategoryRepo.Remove: %w", domain.ErrNotFound)
	}
	return nil
}

// RelabelTodos moves the owner's todos from oldName to newName.
func (r *pgCategoryRepo) RelabelTodos(ctx context.Context, ownerID uuid.UUID, oldName, newName string) error {
	const q = `
		UPDATE todos
		SET category = @new_name
		WHERE user_id = @user_id AND lower(category) = lower(@old_name)`

	args := pgx.NamedArgs{"user_id": ownerID, "old_name": oldName, "new_name": newName}
	if _, err := r.db.Exec(ctx, q, args); err != nil {
		return fmt.Errorf("repo.CategoryRepo.RelabelTodos: %w", err)
	}
	return nil
}
