package models

import (
	"time"
)

// Card lives in exactly one column. Position is 1-based and dense within the
// column. Moving a card only rewrites column_id and position; the owning
// project never changes.
type Card struct {
	ID        string    `json:"id" db:"id"`
	ColumnID  string    `json:"column_id" db:"column_id"`
	UserID    string    `json:"user_id" db:"user_id"` // creator
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	Position  int       `json:"position" db:"position"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	// Tags attached to the card. Populated by services that return card
	// detail views, not by every repository read.
	Tags []Tag `json:"tags,omitempty"`
}
