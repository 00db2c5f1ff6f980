package actions

import (
	"context"

	"github.com/bobmcallan/blog-portal/internal/models"
	"github.com/bobmcallan/blog-portal/internal/session"
	"github.com/bobmcallan/blog-portal/internal/store"
)

func (d *Dispatcher) CreateComment(ctx context.Context, sess session.Session, in models.CreateCommentInput) (*models.Comment, error) {
	return run(d, store.OpCreateComment, func() (*models.Comment, error) {
		return d.client.CreateComment(ctx, sess, in)
	})
}

func (d *Dispatcher) FetchComment(ctx context.Context, sess session.Session, id string) (*models.Comment, error) {
	return run(d, store.OpFetchComment, func() (*models.Comment, error) {
		return d.client.FetchComment(ctx, sess, id)
	})
}

func (d *Dispatcher) EditComment(ctx context.Context, sess session.Session, in models.EditCommentInput) (*models.Comment, error) {
	return run(d, store.OpEditComment, func() (*models.Comment, error) {
		return d.client.EditComment(ctx, sess, in)
	})
}

func (d *Dispatcher) DeleteComment(ctx context.Context, sess session.Session, id string) (*models.Comment, error) {
	return run(d, store.OpDeleteComment, func() (*models.Comment, error) {
		return d.client.DeleteComment(ctx, sess, id)
	})
}
