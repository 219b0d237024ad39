package models

import (
	"time"
)

type Tag struct {
	ID        string    `json:"id" db:"id"`
	ProjectID string    `json:"project_id" db:"project_id"`
	Name      string    `json:"name" db:"name"`
	Color     string    `json:"color" db:"color"` // palette hex code, e.g. "#FFADAD"
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CardTag links a card to a tag of the same project. The pair is the
// identity; no duplicate link may exist.
type CardTag struct {
	CardID    string    `json:"card_id" db:"card_id"`
	TagID     string    `json:"tag_id" db:"tag_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
