package store

import (
	"sync"

	"github.com/bobmcallan/blog-portal/internal/models"
	"github.com/bobmcallan/blog-portal/internal/session"
)

// Store owns the State. All mutations go through Apply and TakeFlag and are
// serialized, so with concurrent operations the last settled one wins.
type Store struct {
	mu    sync.RWMutex
	state State
}

// New creates a store seeded with a previously persisted login, which may be nil.
func New(auth *models.UserAuth) *Store {
	s := &Store{}
	s.state.Users.UserAuth = auth
	return s
}

// Apply runs one action against the state.
func (s *Store) Apply(a Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a.apply(&s.state)
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// TakeFlag reports whether f is raised and clears it.
func (s *Store) TakeFlag(f Flag) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.state.flag(f)
	if p == nil {
		return false
	}
	v := *p
	*p = false
	return v
}

// PeekFlag reports whether f is raised without clearing it.
func (s *Store) PeekFlag(f Flag) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p := s.state.flag(f); p != nil {
		return *p
	}
	return false
}

// UserAuth returns the current login, or nil.
func (s *Store) UserAuth() *models.UserAuth {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Users.UserAuth
}

// Session returns the identity of the current login.
func (s *Store) Session() session.Session {
	return session.FromAuth(s.UserAuth())
}
