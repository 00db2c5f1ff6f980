package models

import "time"

// Post is a blog post. Likes and DisLikes hold user ids and are kept disjoint by the backend.
type Post struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Image       string    `json:"image,omitempty"`
	NumViews    int       `json:"numViews,omitempty"`
	IsLiked     bool      `json:"isLiked,omitempty"`
	IsDisLiked  bool      `json:"isDisLiked,omitempty"`
	Likes       []string  `json:"likes"`
	DisLikes    []string  `json:"disLikes"`
	User        UserRef   `json:"user"`
	Comments    []Comment `json:"comments,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}

// LikedBy reports whether userID is in the like set.
func (p *Post) LikedBy(userID string) bool {
	return contains(p.Likes, userID)
}

// DislikedBy reports whether userID is in the dislike set.
func (p *Post) DislikedBy(userID string) bool {
	return contains(p.DisLikes, userID)
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// CreatePostInput is sent as multipart form data to POST /api/posts.
type CreatePostInput struct {
	Title       string
	Description string
	CategoryID  string
	Image       *ImageFile
}

// EditPostInput is the body of PUT /api/posts/:id.
type EditPostInput struct {
	ID          string `json:"-"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// ImageFile is an image selected for upload.
type ImageFile struct {
	Filename    string
	ContentType string
	Data        []byte
}
