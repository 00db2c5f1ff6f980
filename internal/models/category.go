package models

import "time"

// Category groups posts. Title is what posts reference.
type Category struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	User      UserRef   `json:"user"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// CategoryInput is the body for creating or renaming a category.
type CategoryInput struct {
	ID    string `json:"-"`
	Title string `json:"title"`
}
