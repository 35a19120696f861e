// Package domain contains the core data types for the notes backend.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (repo, service, view, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Todo represents one user-authored note item.
// OwnerID is set at creation and never changes; Text, Completed, and Category
// are mutable. Category is the display name of one of the owner's categories,
// or empty when the todo is uncategorized.
type Todo struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"-"`
	Text      string    `json:"todo"`
	Completed bool      `json:"completed"`
	Category  string    `json:"category,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// MaxTodoTextLen is the maximum length of a todo's text body.
// Matches the input cap enforced by the mobile client.
const MaxTodoTextLen = 200
