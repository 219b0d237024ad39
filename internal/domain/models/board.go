package models

import (
	"time"
)

// Board is the single kanban board of a project. A project has at most one
// board; the pairing is enforced by a unique index on project_id.
type Board struct {
	ID        string    `json:"id" db:"id"`
	ProjectID string    `json:"project_id" db:"project_id"`
	Title     string    `json:"title" db:"title"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
