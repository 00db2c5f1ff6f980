package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/bobmcallan/blog-portal/internal/models"
	"github.com/bobmcallan/blog-portal/internal/session"
)

// CreateComment adds a comment to a post. POST /api/comments
func (c *BlogClient) CreateComment(ctx context.Context, sess session.Session, in models.CreateCommentInput) (*models.Comment, error) {
	var cm models.Comment
	if err := c.authed(ctx, sess, http.MethodPost, "/api/comments", in, &cm); err != nil {
		return nil, err
	}
	return &cm, nil
}

// FetchComment returns one comment. GET /api/comments/{id}
func (c *BlogClient) FetchComment(ctx context.Context, sess session.Session, id string) (*models.Comment, error) {
	var cm models.Comment
	if err := c.authed(ctx, sess, http.MethodGet, "/api/comments/"+url.PathEscape(id), nil, &cm); err != nil {
		return nil, err
	}
	return &cm, nil
}

// EditComment replaces a comment's text. PUT /api/comments/update/{id}
func (c *BlogClient) EditComment(ctx context.Context, sess session.Session, in models.EditCommentInput) (*models.Comment, error) {
	var cm models.Comment
	if err := c.authed(ctx, sess, http.MethodPut, "/api/comments/update/"+url.PathEscape(in.ID), in, &cm); err != nil {
		return nil, err
	}
	return &cm, nil
}

// DeleteComment removes a comment. DELETE /api/comments/delete/{id}
func (c *BlogClient) DeleteComment(ctx context.Context, sess session.Session, id string) (*models.Comment, error) {
	var cm models.Comment
	if err := c.authed(ctx, sess, http.MethodDelete, "/api/comments/delete/"+url.PathEscape(id), nil, &cm); err != nil {
		return nil, err
	}
	return &cm, nil
}
