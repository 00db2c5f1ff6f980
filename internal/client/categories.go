package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/bobmcallan/blog-portal/internal/models"
	"github.com/bobmcallan/blog-portal/internal/session"
)

// CreateCategory adds a category. POST /api/categories
func (c *BlogClient) CreateCategory(ctx context.Context, sess session.Session, title string) (*models.Category, error) {
	var cat models.Category
	if err := c.authed(ctx, sess, http.MethodPost, "/api/categories", models.CategoryInput{Title: title}, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

// FetchCategories lists all categories. GET /api/categories
func (c *BlogClient) FetchCategories(ctx context.Context, sess session.Session) ([]models.Category, error) {
	var cats []models.Category
	if err := c.authed(ctx, sess, http.MethodGet, "/api/categories", nil, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

// FetchCategory returns one category. GET /api/categories/{id}
func (c *BlogClient) FetchCategory(ctx context.Context, sess session.Session, id string) (*models.Category, error) {
	var cat models.Category
	if err := c.authed(ctx, sess, http.MethodGet, "/api/categories/"+url.PathEscape(id), nil, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

// EditCategory renames a category. PUT /api/categories/update/{id}
func (c *BlogClient) EditCategory(ctx context.Context, sess session.Session, in models.CategoryInput) (*models.Category, error) {
	var cat models.Category
	if err := c.authed(ctx, sess, http.MethodPut, "/api/categories/update/"+url.PathEscape(in.ID), in, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

// DeleteCategory removes a category. DELETE /api/categories/delete/{id}
func (c *BlogClient) DeleteCategory(ctx context.Context, sess session.Session, id string) (*models.Category, error) {
	var cat models.Category
	if err := c.authed(ctx, sess, http.MethodDelete, "/api/categories/delete/"+url.PathEscape(id), nil, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}
