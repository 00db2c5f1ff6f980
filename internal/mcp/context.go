package mcp

import (
	"context"

	"github.com/bobmcallan/blog-portal/internal/session"
)

// sessionKey is the context key for a per-request session override.
type sessionKey struct{}

// WithSession attaches a session that tool calls use instead of the store login.
func WithSession(ctx context.Context, s session.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFromContext returns the session attached with WithSession, if any.
func SessionFromContext(ctx context.Context) (session.Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(session.Session)
	return s, ok
}
