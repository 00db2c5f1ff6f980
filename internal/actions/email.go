package actions

import (
	"context"

	"github.com/bobmcallan/blog-portal/internal/models"
	"github.com/bobmcallan/blog-portal/internal/session"
	"github.com/bobmcallan/blog-portal/internal/store"
)

// SendEmail sends a message through the backend.
func (d *Dispatcher) SendEmail(ctx context.Context, sess session.Session, in models.SendEmailInput) (*models.EmailMessage, error) {
	return run(d, store.OpSendEmail, func() (*models.EmailMessage, error) {
		return d.client.SendEmail(ctx, sess, in)
	})
}

// FetchEmails lists sent messages.
func (d *Dispatcher) FetchEmails(ctx context.Context, sess session.Session) ([]models.EmailMessage, error) {
	return run(d, store.OpFetchEmails, func() ([]models.EmailMessage, error) {
		return d.client.FetchEmails(ctx, sess)
	})
}
