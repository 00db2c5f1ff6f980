// Package memory is a non-persistent storage backend for tests and ephemeral runs.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/bobmcallan/blog-portal/internal/interfaces"
)

// KVStorage is a map guarded by a RWMutex.
type KVStorage struct {
	mu    sync.RWMutex
	items map[string]string
}

// Manager implements interfaces.StorageManager in memory.
type Manager struct {
	kv *KVStorage
}

// NewManager returns an empty in-memory manager.
func NewManager() *Manager {
	return &Manager{kv: &KVStorage{items: make(map[string]string)}}
}

func (m *Manager) KeyValueStorage() interfaces.KeyValueStorage { return m.kv }
func (m *Manager) Backend() string                              { return "memory" }
func (m *Manager) Close() error                                 { return nil }

func (s *KVStorage) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[key]
	if !ok {
		return "", fmt.Errorf("%s: %w", key, interfaces.ErrNotFound)
	}
	return v, nil
}

func (s *KVStorage) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
	return nil
}

func (s *KVStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	return nil
}

func (s *KVStorage) GetAll(_ context.Context) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.items))
	for k, v := range s.items {
		out[k] = v
	}
	return out, nil
}
