// Package repo contains all database access logic for the notes backend.
// Each record kind has its own file with an interface and a Postgres
// implementation. No business logic lives here — only SQL and type mapping.
// Every read and write is scoped by owner; a row belonging to another owner
// behaves exactly like a missing row.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/carrotnotes/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TodoRepo defines the persistence operations for Todos.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type TodoRepo interface {
	// Create inserts a new todo and returns the persisted record (with
	// store-assigned id and created_at populated).
	Create(ctx context.Context, todo domain.Todo) (domain.Todo, error)

	// GetByID retrieves a single todo by ID, scoped to ownerID.
	// Returns domain.ErrNotFound if no such todo exists for that owner.
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (domain.Todo, error)

	// List returns all of an owner's todos ordered by created_at descending,
	// ties broken by id descending so the order is deterministic.
	List(ctx context.Context, ownerID uuid.UUID) ([]domain.Todo, error)

	// UpdateText overwrites the text of a todo.
	// Returns domain.ErrNotFound if the todo does not exist for that owner.
	UpdateText(ctx context.Context, ownerID, id uuid.UUID, text string) error

	// SetCompleted sets the completion flag of a todo.
	// Returns domain.ErrNotFound if the todo does not exist for that owner.
	SetCompleted(ctx context.Context, ownerID, id uuid.UUID, completed bool) error

	// Delete removes a todo by ID.
	// Returns domain.ErrNotFound if the todo does not exist for that owner.
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

// pgTodoRepo is the Postgres implementation of TodoRepo.
type pgTodoRepo struct {
	db db
}

// NewTodoRepo constructs a TodoRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTodoRepo(db db) TodoRepo {
	return &pgTodoRepo{db: db}
}

// Create inserts a new todo row and returns the full persisted record.
func (r *pgTodoRepo) Create(ctx context.Context, todo domain.Todo) (domain.Todo, error) {
	const q = `
		INSERT INTO todos (user_id, todo, completed, category)
		VALUES (@user_id, @todo, @completed, @category)
		RETURNING id, user_id, todo, completed, category, created_at`

	args := pgx.NamedArgs{
		"user_id":   todo.OwnerID,
		"todo":      todo.Text,
		"completed": todo.Completed,
		"category":  nullIfEmpty(todo.Category),
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTodo(row)
	if err != nil {
		return domain.Todo{}, fmt.Errorf("repo.TodoRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a todo by primary key, scoped to its owner.
func (r *pgTodoRepo) GetByID(ctx context.Context, ownerID, id uuid.UUID) (domain.Todo, error) {
	const q = `
		SELECT id, user_id, todo, completed, category, created_at
		FROM todos
		WHERE id = @id AND user_id = @user_id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "user_id": ownerID})
	result, err := scanTodo(row)
	if err != nil {
		return domain.Todo{}, fmt.Errorf("repo.TodoRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns all of an owner's todos, newest first. The id tie-break keeps
// the order stable for rows created in the same instant.
func (r *pgTodoRepo) List(ctx context.Context, ownerID uuid.UUID) ([]domain.Todo, error) {
	const q = `
		SELECT id, user_id, todo, completed, category, created_at
		FROM todos
		WHERE user_id = @user_id
		ORDER BY created_at DESC, id DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": ownerID})
	if err != nil {
		return nil, fmt.Errorf("repo.TodoRepo.List: %w", err)
	}
	defer rows.Close()

	todos := []domain.Todo{}
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TodoRepo.List: scan: %w", err)
		}
		todos = append(todos, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TodoRepo.List: rows: %w", err)
	}
	return todos, nil
}

// UpdateText overwrites the text body of a todo.
func (r *pgTodoRepo) UpdateText(ctx context.Context, ownerID, id uuid.UUID, text string) error {
	const q = `
		UPDATE todos
		SET todo = @todo
		WHERE id = @id AND user_id = @user_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "user_id": ownerID, "todo": text})
	if err != nil {
		return fmt.Errorf("repo.TodoRepo.UpdateText: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TodoRepo.UpdateText: %w", domain.ErrNotFound)
	}
	return nil
}

// SetCompleted sets the completion flag of a todo.
func (r *pgTodoRepo) SetCompleted(ctx context.Context, ownerID, id uuid.UUID, completed bool) error {
	const q = `
		UPDATE todos
		SET completed = @completed
		WHERE id = @id AND user_id = @user_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "user_id": ownerID, "completed": completed})
	if err != nil {
		return fmt.Errorf("repo.TodoRepo.SetCompleted: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TodoRepo.SetCompleted: %w", domain.ErrNotFound)
	}
	return nil
}

// Delete removes a todo by primary key, scoped to its owner.
func (r *pgTodoRepo) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	const q = `DELETE FROM todos WHERE id = @id AND user_id = @user_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "user_id": ownerID})
	if err != nil {
		return fmt.Errorf("repo.TodoRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TodoRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan
// helpers to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanTodo maps a single database row into a domain.Todo.
// It handles the UUID and nullable category conversions.
func scanTodo(s scanner) (domain.Todo, error) {
	var (
		t        domain.Todo
		id       pgtype.UUID
		ownerID  pgtype.UUID
		category pgtype.Text
	)

	err := s.Scan(&id, &ownerID, &t.Text, &t.Completed, &category, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Todo{}, domain.ErrNotFound
		}
		return domain.Todo{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.OwnerID = uuid.UUID(ownerID.Bytes)
	if category.Valid {
		t.Category = category.String
	}
	return t, nil
}

// nullIfEmpty maps "" to NULL so uncategorized todos store NULL, not "".
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
