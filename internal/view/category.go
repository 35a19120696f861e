package view

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/carrotnotes/backend/internal/domain"
)

// CategoryStore is the subset of category operations the manager needs.
// *service.CategoryService satisfies it.
type CategoryStore interface {
	List(ctx context.Context, ownerID uuid.UUID) ([]string, error)
	Add(ctx context.Context, ownerID uuid.UUID, rawInput string) ([]string, error)
	Rename(ctx context.Context, ownerID uuid.UUID, oldName, candidate string) error
	Remove(ctx context.Context, ownerID uuid.UUID, name string) error
}

// CategoryManager mirrors the settings screen's category list and drives the
// edit-in-place flow: Idle → Editing(name) → {Saving → Idle | Idle on cancel}.
// At most one category is in the editing state at a time; starting an edit on
// another category discards the in-progress text. Removal is two-step: a
// remove request arms a confirmation, and only ConfirmRemove executes it.
//
// The manager is meant to be driven from a single UI goroutine and is not
// safe for concurrent use.
type CategoryManager struct {
	store   CategoryStore
	ownerID uuid.UUID

	categories []string

	editing  string // category being edited, "" when idle
	editText string

	pendingRemove string // category awaiting confirmation, "" when none
}

// NewCategoryManager builds a manager bound to one owner with an empty local
// list; call Load to populate it.
func NewCategoryManager(store CategoryStore, ownerID uuid.UUID) *CategoryManager {
	return &CategoryManager{
		store:      store,
		ownerID:    ownerID,
		categories: []string{},
	}
}

// Load replaces the local list from the store. Unlike todo fetches, category
// fetch failures propagate: the settings screen has no sensible blank state.
func (m *CategoryManager) Load(ctx context.Context) error {
	names, err := m.store.List(ctx, m.ownerID)
	if err != nil {
		return fmt.Errorf("view.CategoryManager.Load: %w", err)
	}
	if names == nil {
		names = []string{}
	}
	m.categories = names
	return nil
}

// Categories returns a copy of the local list.
func (m *CategoryManager) Categories() []string {
	out := make([]string, len(m.categories))
	copy(out, m.categories)
	return out
}

// Add submits raw comma-separated input. The cap is pre-checked against the
// local list so an over-limit batch is rejected without a network call and
// the local list stays unchanged. On success the accepted names are appended.
func (m *CategoryManager) Add(ctx context.Context, rawInput string) error {
	pieces := 0
	for _, part := range strings.Split(rawInput, ",") {
		if strings.TrimSpace(part) != "" {
			pieces++
		}
	}
	if len(m.categories)+pieces > domain.MaxCategoriesPerOwner {
		return fmt.Errorf("%w: you cannot add more than %d categories",
			domain.ErrValidation, domain.MaxCategoriesPerOwner)
	}

	added, err := m.store.Add(ctx, m.ownerID, rawInput)
	if err != nil {
		return fmt.Errorf("view.CategoryManager.Add: %w", err)
	}
	m.categories = append(m.categories, added...)
	m.sortLocal()
	return nil
}

// BeginEdit puts a category into the editing state, seeding the edit text
// with its current name. An edit already in progress on another category is
// implicitly cancelled and its text discarded.
func (m *CategoryManager) BeginEdit(name string) {
	m.editing = name
	m.editText = name
}

// Editing returns the category currently being edited, or "" when idle.
func (m *CategoryManager) Editing() string {
	return m.editing
}

// SetEditText updates the in-progress edit text.
func (m *CategoryManager) SetEditText(text string) {
	m.editText = text
}

// EditText returns the in-progress edit text.
func (m *CategoryManager) EditText() string {
	return m.editText
}

// CancelEdit leaves the editing state, discarding the edit text.
func (m *CategoryManager) CancelEdit() {
	m.editing = ""
	m.editText = ""
}

// SaveEdit validates the edit text locally (length and case-insensitive
// collision against the local list, self-collision allowed), then delegates
// to the store. On success the local list is updated, re-sorted, and the
// manager returns to idle. On failure the edit stays open so the user can fix
// the text.
func (m *CategoryManager) SaveEdit(ctx context.Context) error {
	if m.editing == "" {
		return fmt.Errorf("%w: no category is being edited", domain.ErrValidation)
	}
	candidate := strings.TrimSpace(m.editText)
	if len([]rune(candidate)) < domain.MinCategoryNameLen {
		return fmt.Errorf("%w: category must be at least %d characters long",
			domain.ErrValidation, domain.MinCategoryNameLen)
	}
	for _, name := range m.categories {
		if strings.EqualFold(name, candidate) && !strings.EqualFold(name, m.editing) {
			return fmt.Errorf("%w: this category already exists", domain.ErrValidation)
		}
	}

	if err := m.store.Rename(ctx, m.ownerID, m.editing, candidate); err != nil {
		return fmt.Errorf("view.CategoryManager.SaveEdit: %w", err)
	}

	for i, name := range m.categories {
		if name == m.editing {
			m.categories[i] = candidate
		}
	}
	m.sortLocal()
	m.editing = ""
	m.editText = ""
	return nil
}

// RequestRemove arms the two-step removal for a category. The actual delete
// happens only on ConfirmRemove.
func (m *CategoryManager) RequestRemove(name string) {
	m.pendingRemove = name
}

// PendingRemove returns the category awaiting removal confirmation, or "".
func (m *CategoryManager) PendingRemove() string {
	return m.pendingRemove
}

// CancelRemove disarms a pending removal.
func (m *CategoryManager) CancelRemove() {
	m.pendingRemove = ""
}

// ConfirmRemove executes the armed removal and drops the name from the local
// list. Returns domain.ErrValidation when no removal is pending.
func (m *CategoryManager) ConfirmRemove(ctx context.Context) error {
	if m.pendingRemove == "" {
		return fmt.Errorf("%w: no removal is pending", domain.ErrValidation)
	}
	name := m.pendingRemove

	if err := m.store.Remove(ctx, m.ownerID, name); err != nil {
		return fmt.Errorf("view.CategoryManager.ConfirmRemove: %w", err)
	}

	kept := m.categories[:0]
	for _, c := range m.categories {
		if c != name {
			kept = append(kept, c)
		}
	}
	m.categories = kept
	m.pendingRemove = ""
	return nil
}

// sortLocal keeps the local list in the store's order: case-insensitive
// ascending, original casing as the tie-break.
func (m *CategoryManager) sortLocal() {
	sort.Slice(m.categories, func(i, j int) bool {
		a, b := strings.ToLower(m.categories[i]), strings.ToLower(m.categories[j])
		if a != b {
			return a < b
		}
		return m.categories[i] < m.categories[j]
	})
}
