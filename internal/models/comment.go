package models

import "time"

// Comment belongs to exactly one post.
type Comment struct {
	ID          string    `json:"_id"`
	Post        string    `json:"post"`
	Description string    `json:"description"`
	User        UserRef   `json:"user"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}

// CreateCommentInput is the body of POST /api/comments.
type CreateCommentInput struct {
	PostID      string `json:"postId"`
	Description string `json:"description"`
}

// EditCommentInput is the body of PUT /api/comments/update/:id.
type EditCommentInput struct {
	ID          string `json:"-"`
	Description string `json:"description"`
}
