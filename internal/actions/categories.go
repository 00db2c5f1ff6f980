package actions

import (
	"context"

	"github.com/bobmcallan/blog-portal/internal/models"
	"github.com/bobmcallan/blog-portal/internal/session"
	"github.com/bobmcallan/blog-portal/internal/store"
)

func (d *Dispatcher) CreateCategory(ctx context.Context, sess session.Session, title string) (*models.Category, error) {
	return run(d, store.OpCreateCategory, func() (*models.Category, error) {
		return d.client.CreateCategory(ctx, sess, title)
	})
}

func (d *Dispatcher) FetchCategories(ctx context.Context, sess session.Session) ([]models.Category, error) {
	return run(d, store.OpFetchCategories, func() ([]models.Category, error) {
		return d.client.FetchCategories(ctx, sess)
	})
}

func (d *Dispatcher) FetchCategory(ctx context.Context, sess session.Session, id string) (*models.Category, error) {
	return run(d, store.OpFetchCategory, func() (*models.Category, error) {
		return d.client.FetchCategory(ctx, sess, id)
	})
}

func (d *Dispatcher) EditCategory(ctx context.Context, sess session.Session, in models.CategoryInput) (*models.Category, error) {
	return run(d, store.OpEditCategory, func() (*models.Category, error) {
		return d.client.EditCategory(ctx, sess, in)
	})
}

func (d *Dispatcher) DeleteCategory(ctx context.Context, sess session.Session, id string) (*models.Category, error) {
	return run(d, store.OpDeleteCategory, func() (*models.Category, error) {
		return d.client.DeleteCategory(ctx, sess, id)
	})
}
