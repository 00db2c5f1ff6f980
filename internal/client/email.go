package client

import (
	"context"
	"net/http"

	"github.com/bobmcallan/blog-portal/internal/models"
	"github.com/bobmcallan/blog-portal/internal/session"
)

// SendEmail sends a message through the backend. POST /api/email
func (c *BlogClient) SendEmail(ctx context.Context, sess session.Session, in models.SendEmailInput) (*models.EmailMessage, error) {
	var msg models.EmailMessage
	if err := c.authed(ctx, sess, http.MethodPost, "/api/email", in, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// FetchEmails lists sent messages. GET /api/email
func (c *BlogClient) FetchEmails(ctx context.Context, sess session.Session) ([]models.EmailMessage, error) {
	var msgs []models.EmailMessage
	if err := c.authed(ctx, sess, http.MethodGet, "/api/email", nil, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}
