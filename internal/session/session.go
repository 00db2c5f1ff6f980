// Package session carries the authenticated identity into every operation and
// persists the login response between runs.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/bobmcallan/blog-portal/internal/interfaces"
	"github.com/bobmcallan/blog-portal/internal/models"
)

// UserInfoKey is the storage key of the persisted login response.
const UserInfoKey = "userInfo"

// Session is the caller identity. The zero value is anonymous.
type Session struct {
	Token  string
	UserID string
}

// FromAuth builds a session from a login response. A nil auth yields an anonymous session.
func FromAuth(ua *models.UserAuth) Session {
	if ua == nil {
		return Session{}
	}
	return Session{Token: ua.Token, UserID: ua.ID}
}

// Authenticated reports whether a bearer token is present.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// Persister saves, loads and clears the login response.
type Persister struct {
	kv interfaces.KeyValueStorage
}

// NewPersister creates a Persister over the given key-value storage.
func NewPersister(kv interfaces.KeyValueStorage) *Persister {
	return &Persister{kv: kv}
}

// Save writes the raw login response under UserInfoKey.
func (p *Persister) Save(ctx context.Context, ua *models.UserAuth) error {
	if ua == nil || len(ua.Raw) == 0 {
		return errors.New("no login response to persist")
	}
	if err := p.kv.Set(ctx, UserInfoKey, string(ua.Raw)); err != nil {
		return fmt.Errorf("persist %s: %w", UserInfoKey, err)
	}
	return nil
}

// Load returns the persisted login response, or nil when nothing is stored.
func (p *Persister) Load(ctx context.Context) (*models.UserAuth, error) {
	raw, err := p.kv.Get(ctx, UserInfoKey)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load %s: %w", UserInfoKey, err)
	}
	ua, err := models.ParseUserAuth([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", UserInfoKey, err)
	}
	return ua, nil
}

// Clear deletes the persisted login response.
func (p *Persister) Clear(ctx context.Context) error {
	if err := p.kv.Delete(ctx, UserInfoKey); err != nil {
		return fmt.Errorf("clear %s: %w", UserInfoKey, err)
	}
	return nil
}
