package actions

import (
	"context"

	"github.com/bobmcallan/blog-portal/internal/models"
	"github.com/bobmcallan/blog-portal/internal/session"
	"github.com/bobmcallan/blog-portal/internal/store"
)

// CreatePost uploads a new post with an optional image.
func (d *Dispatcher) CreatePost(ctx context.Context, sess session.Session, in models.CreatePostInput) (*models.Post, error) {
	return run(d, store.OpCreatePost, func() (*models.Post, error) {
		img, err := d.prepareImage(in.Image)
		if err != nil {
			return nil, err
		}
		in.Image = img
		return d.client.CreatePost(ctx, sess, in)
	})
}

// FetchPosts lists posts; an empty category lists all.
func (d *Dispatcher) FetchPosts(ctx context.Context, sess session.Session, category string) ([]models.Post, error) {
	return run(d, store.OpFetchPosts, func() ([]models.Post, error) {
		return d.client.FetchPosts(ctx, sess, category)
	})
}

// FetchPostsByCategory loads the categories offered as post filters.
func (d *Dispatcher) FetchPostsByCategory(ctx context.Context, sess session.Session) ([]models.Category, error) {
	return run(d, store.OpFetchPostsByCategory, func() ([]models.Category, error) {
		return d.client.FetchCategories(ctx, sess)
	})
}

// FetchPost loads one post.
func (d *Dispatcher) FetchPost(ctx context.Context, sess session.Session, id string) (*models.Post, error) {
	return run(d, store.OpFetchPost, func() (*models.Post, error) {
		return d.client.FetchPost(ctx, sess, id)
	})
}

// EditPost updates a post.
func (d *Dispatcher) EditPost(ctx context.Context, sess session.Session, in models.EditPostInput) (*models.Post, error) {
	return run(d, store.OpEditPost, func() (*models.Post, error) {
		return d.client.EditPost(ctx, sess, in)
	})
}

// DeletePost deletes a post.
func (d *Dispatcher) DeletePost(ctx context.Context, sess session.Session, id string) (*models.Post, error) {
	return run(d, store.OpDeletePost, func() (*models.Post, error) {
		return d.client.DeletePost(ctx, sess, id)
	})
}

// ToggleLike toggles the session user's like on a post.
func (d *Dispatcher) ToggleLike(ctx context.Context, sess session.Session, postID string) (*models.Post, error) {
	return run(d, store.OpToggleLike, func() (*models.Post, error) {
		return d.client.ToggleLike(ctx, sess, postID)
	})
}

// ToggleDislike toggles the session user's dislike on a post.
func (d *Dispatcher) ToggleDislike(ctx context.Context, sess session.Session, postID string) (*models.Post, error) {
	return run(d, store.OpToggleDislike, func() (*models.Post, error) {
		return d.client.ToggleDislike(ctx, sess, postID)
	})
}
