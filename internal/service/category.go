package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/carrotnotes/backend/internal/domain"
	"github.com/carrotnotes/backend/internal/repo"
)

// CategoryService implements business logic for Category operations:
// the per-owner cap, comma-separated batch input, and the canonical
// case rule (case-insensitive uniqueness, case-preserving display).
type CategoryService struct {
	categories repo.CategoryRepo

	// renameCascade controls whether renaming a category also relabels the
	// owner's todos. Off by default: todos keep the old label and fall out of
	// filters on the new name, matching the original client's behavior.
	renameCascade bool
}

// CategoryOption configures a CategoryService.
type CategoryOption func(*CategoryService)

// WithRenameCascade makes Rename relabel the owner's todos from the old
// category name to the new one, instead of leaving them on the old label.
func WithRenameCascade() CategoryOption {
	return func(s *CategoryService) { s.renameCascade = true }
}

// NewCategoryService constructs a CategoryService backed by the provided repo.
func NewCategoryService(categories repo.CategoryRepo, opts ...CategoryOption) *CategoryService {
	s := &CategoryService{categories: categories}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns the owner's category names, case-preserving, ordered
// case-insensitively ascending.
// Always returns a non-nil slice so callers can safely range over it.
func (s *CategoryService) List(ctx context.Context, ownerID uuid.UUID) ([]string, error) {
	names, err := s.categories.ListNames(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("service.CategoryService.List: %w", err)
	}
	if names == nil {
		return []string{}, nil
	}
	return names, nil
}

// Add splits rawInput on commas, trims each piece, and inserts the pieces
// that do not already exist for the owner (case-insensitive compare).
// The whole batch is rejected if it would push the owner past the category
// cap — no partial add. Returns the names actually inserted.
func (s *CategoryService) Add(ctx context.Context, ownerID uuid.UUID, rawInput string) ([]string, error) {
	names := splitCategoryInput(rawInput)
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: at least one category name is required", domain.ErrValidation)
	}
	for _, name := range names {
		if len([]rune(name)) < domain.MinCategoryNameLen {
			return nil, fmt.Errorf("%w: category %q must be at least %d characters long",
				domain.ErrValidation, name, domain.MinCategoryNameLen)
		}
	}

	current, err := s.categories.Count(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("service.CategoryService.Add: %w", err)
	}
	if current+len(names) > domain.MaxCategoriesPerOwner {
		return nil, fmt.Errorf("%w: you cannot add more than %d categories",
			domain.ErrValidation, domain.MaxCategoriesPerOwner)
	}

	inserted, err := s.categories.AddBatch(ctx, ownerID, names)
	if err != nil {
		return nil, fmt.Errorf("service.CategoryService.Add: %w", err)
	}
	if inserted == nil {
		inserted = []string{}
	}
	return inserted, nil
}

// Rename changes a category's display name. The candidate is trimmed, must be
// at least MinCategoryNameLen characters, and must not collide
// case-insensitively with any other existing category — renaming a category
// to a different casing of itself is allowed.
// With the rename cascade enabled, the owner's todos are relabeled too.
func (s *CategoryService) Rename(ctx context.Context, ownerID uuid.UUID, oldName, candidate string) error {
	candidate = strings.TrimSpace(candidate)
	if len([]rune(candidate)) < domain.MinCategoryNameLen {
		return fmt.Errorf("%w: category must be at least %d characters long",
			domain.ErrValidation, domain.MinCategoryNameLen)
	}

	existing, err := s.categories.ListNames(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("service.CategoryService.Rename: %w", err)
	}
	for _, name := range existing {
		if strings.EqualFold(name, candidate) && !strings.EqualFold(name, oldName) {
			return fmt.Errorf("%w: this category already exists", domain.ErrValidation)
		}
	}

	if err := s.categories.Rename(ctx, ownerID, oldName, candidate); err != nil {
		return fmt.Errorf("service.CategoryService.Rename: %w", err)
	}
	if s.renameCascade {
		if err := s.categories.RelabelTodos(ctx, ownerID, oldName, candidate); err != nil {
			return fmt.Errorf("service.CategoryService.Rename: %w", err)
		}
	}
	return nil
}

// Remove deletes a category. Todos tagged with it keep their label and show
// up as uncategorized in filters; they are never deleted with the category.
// The are-you-sure confirmation is the client's job (see view.CategoryManager).
func (s *CategoryService) Remove(ctx context.Context, ownerID uuid.UUID, name string) error {
	if err := s.categories.Remove(ctx, ownerID, name); err != nil {
		return fmt.Errorf("service.CategoryService.Remove: %w", err)
	}
	return nil
}

// splitCategoryInput turns comma-separated user input into trimmed names,
// dropping empty pieces ("a,,b" yields ["a" "b"]).
func splitCategoryInput(raw string) []string {
	var names []string
	for _, part := range strings.Split(raw, ",") {
		if t := strings.TrimSpace(part); t != "" {
			names = append(names, t)
		}
	}
	return names
}
