package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/bobmcallan/blog-portal/internal/models"
	"github.com/bobmcallan/blog-portal/internal/session"
)

// CreatePost uploads a post as multipart form data. POST /api/posts
func (c *BlogClient) CreatePost(ctx context.Context, sess session.Session, in models.CreatePostInput) (*models.Post, error) {
	var p models.Post
	fields := []formField{
		{"title", in.Title},
		{"description", in.Description},
		{"category", in.CategoryID},
	}
	if err := c.sendMultipart(ctx, sess, http.MethodPost, "/api/posts", fields, in.Image, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// FetchPosts lists posts, optionally filtered by category. GET /api/posts?category={id}
func (c *BlogClient) FetchPosts(ctx context.Context, sess session.Session, categoryID string) ([]models.Post, error) {
	var posts []models.Post
	if err := c.authed(ctx, sess, http.MethodGet, "/api/posts?category="+url.QueryEscape(categoryID), nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// FetchPost returns one post with its comments. GET /api/posts/{id}
func (c *BlogClient) FetchPost(ctx context.Context, sess session.Session, id string) (*models.Post, error) {
	var p models.Post
	if err := c.authed(ctx, sess, http.MethodGet, "/api/posts/"+url.PathEscape(id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// EditPost updates title, description and category. PUT /api/posts/{id}
func (c *BlogClient) EditPost(ctx context.Context, sess session.Session, in models.EditPostInput) (*models.Post, error) {
	var p models.Post
	if err := c.authed(ctx, sess, http.MethodPut, "/api/posts/"+url.PathEscape(in.ID), in, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// DeletePost removes a post. DELETE /api/posts/{id}
func (c *BlogClient) DeletePost(ctx context.Context, sess session.Session, id string) (*models.Post, error) {
	var p models.Post
	if err := c.authed(ctx, sess, http.MethodDelete, "/api/posts/"+url.PathEscape(id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ToggleLike toggles the session user's like. PUT /api/posts/toggle-add-like
func (c *BlogClient) ToggleLike(ctx context.Context, sess session.Session, postID string) (*models.Post, error) {
	var p models.Post
	in := map[string]string{"postId": postID}
	if err := c.authed(ctx, sess, http.MethodPut, "/api/posts/toggle-add-like", in, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ToggleDislike toggles the session user's dislike. PUT /api/posts/toggle-add-dislike
func (c *BlogClient) ToggleDislike(ctx context.Context, sess session.Session, postID string) (*models.Post, error) {
	var p models.Post
	in := map[string]string{"postId": postID}
	if err := c.authed(ctx, sess, http.MethodPut, "/api/posts/toggle-add-dislike", in, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
