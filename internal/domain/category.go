package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category represents a user-defined label for todos.
// Name preserves the casing the user typed; identity is case-insensitive,
// so "Work" and "work" are the same category for uniqueness purposes.
type Category struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Name      string
	CreatedAt time.Time
}

// MaxCategoriesPerOwner caps how many categories a single owner may have.
const MaxCategoriesPerOwner = 7

// MinCategoryNameLen is the minimum length of a trimmed category name.
const MinCategoryNameLen = 2
