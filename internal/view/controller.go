// Package view implements the client-side view state for the notes app: the
// todo list a screen renders (package-local snapshot, filter, per-category
// counts) and the category manager's edit-in-place bookkeeping. It talks to
// the backend only through narrow interfaces, so it works equally against the
// service layer in-process or an HTTP client wrapper.
package view

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/carrotnotes/backend/internal/domain"
)

// FilterAll is the filter value that selects every todo regardless of category.
const FilterAll = "All"

// TodoStore is the subset of todo operations the list controller needs.
// *service.TodoService satisfies it.
type TodoStore interface {
	List(ctx context.Context, ownerID uuid.UUID) ([]domain.Todo, error)
	Create(ctx context.Context, ownerID uuid.UUID, text, category string) (domain.Todo, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

// State describes the trustworthiness of the controller's snapshot.
type State int

const (
	// StateInitial means no fetch has completed yet; the snapshot is empty.
	StateInitial State = iota
	// StateLoaded means the snapshot reflects the last successful fetch.
	StateLoaded
	// StateStale means the last fetch failed; the snapshot is the previous
	// successful one and Err reports the cause. Callers can tell "no todos"
	// apart from "fetch failed" by checking State, not length.
	StateStale
)

// Controller owns the in-memory view of one owner's todos. It refreshes the
// snapshot from the store, guards against stale in-flight responses with a
// request token, and answers filter/count queries without network calls.
//
// All methods are safe for concurrent use. Refresh calls may overlap; only
// the response belonging to the most recently issued request is applied.
type Controller struct {
	store   TodoStore
	ownerID uuid.UUID

	mu     sync.Mutex
	seq    uint64 // token of the most recently issued refresh
	todos  []domain.Todo
	filter string
	state  State
	err    error
}

// NewController builds a controller bound to one owner. The owner identity is
// supplied once by the caller (obtained from the auth layer) — the controller
// never reads ambient auth state. The filter starts at FilterAll.
func NewController(store TodoStore, ownerID uuid.UUID) *Controller {
	return &Controller{
		store:   store,
		ownerID: ownerID,
		todos:   []domain.Todo{},
		filter:  FilterAll,
	}
}

// Refresh fetches the owner's todos and replaces the snapshot. It is called
// on screen entry, on every focus event, on pull-to-refresh, and after every
// successful create or delete.
//
// Each call takes a fresh token; when the store responds, the result is
// applied only if no newer refresh has been issued in the meantime, so a slow
// old response can never clobber a newer one. On failure the previous
// snapshot is kept and the state turns StateStale.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.seq++
	token := c.seq
	c.mu.Unlock()

	todos, err := c.store.List(ctx, c.ownerID)

	c.mu.Lock()
	defer c.mu.Unlock()

	if token != c.seq {
		// A newer refresh was issued while this one was in flight.
		// Its response (or its error) is the one that counts.
		return nil
	}
	if err != nil {
		c.state = StateStale
		c.err = err
		return fmt.Errorf("view.Controller.Refresh: %w", err)
	}
	if todos == nil {
		todos = []domain.Todo{}
	}
	c.todos = todos
	c.state = StateLoaded
	c.err = nil
	return nil
}

// Create validates the form input, persists the todo, and refetches the full
// list. There is no optimistic local insert: the refetch keeps the snapshot
// aligned with the store's own sort order and assigned identifiers.
func (c *Controller) Create(ctx context.Context, text, category string) error {
	if len([]rune(strings.TrimSpace(text))) < 2 {
		return fmt.Errorf("%w: todo must be at least 2 characters long", domain.ErrValidation)
	}
	if strings.TrimSpace(category) == "" {
		return fmt.Errorf("%w: a category must be chosen", domain.ErrValidation)
	}
	if _, err := c.store.Create(ctx, c.ownerID, text, category); err != nil {
		return fmt.Errorf("view.Controller.Create: %w", err)
	}
	return c.Refresh(ctx)
}

// Remove deletes a todo and refetches the full list. The "completed todos
// only" rule lives in the presentation layer (the delete affordance is
// disabled for incomplete todos); the controller does not re-check it.
func (c *Controller) Remove(ctx context.Context, id uuid.UUID) error {
	if err := c.store.Delete(ctx, c.ownerID, id); err != nil {
		return fmt.Errorf("view.Controller.Remove: %w", err)
	}
	return c.Refresh(ctx)
}

// SetFilter selects which category Visible returns. FilterAll shows
// everything. Purely local — no network call.
func (c *Controller) SetFilter(category string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filter = category
}

// Filter returns the currently selected filter.
func (c *Controller) Filter() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

// All returns a copy of the full snapshot, newest first.
func (c *Controller) All() []domain.Todo {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Todo, len(c.todos))
	copy(out, c.todos)
	return out
}

// Visible returns the snapshot filtered by the current selection, preserving
// the snapshot's order.
func (c *Controller) Visible() []domain.Todo {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.filter == FilterAll {
		out := make([]domain.Todo, len(c.todos))
		copy(out, c.todos)
		return out
	}
	out := []domain.Todo{}
	for _, t := range c.todos {
		if t.Category == c.filter {
			out = append(out, t)
		}
	}
	return out
}

// CountByCategory returns how many todos in the snapshot carry the given
// category. FilterAll counts everything. Computed in memory; the sum over
// distinct categories plus uncategorized todos equals CountByCategory(FilterAll).
func (c *Controller) CountByCategory(category string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if category == FilterAll {
		return len(c.todos)
	}
	n := 0
	for _, t := range c.todos {
		if t.Category == category {
			n++
		}
	}
	return n
}

// State reports whether the snapshot is trustworthy (see State values).
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Err returns the error from the last failed refresh, or nil when the
// snapshot is current.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}
