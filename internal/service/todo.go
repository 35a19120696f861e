// Package service contains the business logic for the notes backend.
// Services validate inputs, enforce business rules, and orchestrate repo
// calls. No SQL lives here — services depend on repo interfaces, not
// implementations. Every operation takes the owner identity as an explicit
// parameter; there are no ambient current-user reads below the HTTP layer.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/carrotnotes/backend/internal/domain"
	"github.com/carrotnotes/backend/internal/repo"
)

// TodoService implements business logic for Todo operations.
type TodoService struct {
	todos repo.TodoRepo
}

// NewTodoService constructs a TodoService backed by the provided TodoRepo.
func NewTodoService(todos repo.TodoRepo) *TodoService {
	return &TodoService{todos: todos}
}

// List returns all of the owner's todos, newest first.
// Always returns a non-nil slice so callers can safely range over it.
// Fetch failures propagate; presenting a failed fetch as an empty list is the
// view layer's call to make, not this one's.
func (s *TodoService) List(ctx context.Context, ownerID uuid.UUID) ([]domain.Todo, error) {
	todos, err := s.todos.List(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("service.TodoService.List: %w", err)
	}
	if todos == nil {
		return []domain.Todo{}, nil
	}
	return todos, nil
}

// Create validates and persists a new todo. Text is trimmed before storage;
// the completion flag always starts false and the store assigns id and
// created_at. Returns domain.ErrValidation for empty or over-long text.
func (s *TodoService) Create(ctx context.Context, ownerID uuid.UUID, text, category string) (domain.Todo, error) {
	text = strings.TrimSpace(text)
	if err := validateTodoText(text); err != nil {
		return domain.Todo{}, err
	}

	todo := domain.Todo{
		OwnerID:  ownerID,
		Text:     text,
		Category: strings.TrimSpace(category),
	}
	result, err := s.todos.Create(ctx, todo)
	if err != nil {
		return domain.Todo{}, fmt.Errorf("service.TodoService.Create: %w", err)
	}
	return result, nil
}

// UpdateText overwrites a todo's text body.
// Returns domain.ErrValidation for empty or over-long text,
// domain.ErrNotFound if the todo does not exist for that owner.
func (s *TodoService) UpdateText(ctx context.Context, ownerID, id uuid.UUID, text string) error {
	text = strings.TrimSpace(text)
	if err := validateTodoText(text); err != nil {
		return err
	}
	if err := s.todos.UpdateText(ctx, ownerID, id, text); err != nil {
		return fmt.Errorf("service.TodoService.UpdateText: %w", err)
	}
	return nil
}

// SetCompleted sets a todo's completion flag.
// Returns domain.ErrNotFound if the todo does not exist for that owner.
func (s *TodoService) SetCompleted(ctx context.Context, ownerID, id uuid.UUID, completed bool) error {
	if err := s.todos.SetCompleted(ctx, ownerID, id, completed); err != nil {
		return fmt.Errorf("service.TodoService.SetCompleted: %w", err)
	}
	return nil
}

// Delete removes a todo. The "only completed todos may be deleted" rule is a
// presentation-layer affordance — the delete swipe is disabled for incomplete
// todos — so no completion check is repeated here.
// Returns domain.ErrNotFound if the todo does not exist for that owner.
func (s *TodoService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.todos.Delete(ctx, ownerID, id); err != nil {
		return fmt.Errorf("service.TodoService.Delete: %w", err)
	}
	return nil
}

// validateTodoText enforces the rules common to Create and UpdateText.
// Text must be non-empty after trimming and at most MaxTodoTextLen characters.
func validateTodoText(text string) error {
	if text == "" {
		return fmt.Errorf("%w: todo text is required", domain.ErrValidation)
	}
	if len([]rune(text)) > domain.MaxTodoTextLen {
		return fmt.Errorf("%w: todo text must be at most %d characters", domain.ErrValidation, domain.MaxTodoTextLen)
	}
	return nil
}
