// Package cacheprovider supplies an in-process interfaces.CacheProvider for
// single-instance deployments, filling the role the teacher's
// internal/adapters/noop.Cache() plays as the injectable default — except
// this one actually expires entries, since the commit lock and the draft
// store's CacheProviderStore both depend on TTLs being honored rather than
// discarded.
package cacheprovider

import (
	"context"
	"sync"
	"time"

	"github.com/itkodovaya/site-builder/pkg/interfaces"
)

type entry struct {
	value   any
	expires time.Time
}

// Memory is a mutex-guarded map with lazy (access-time) expiration.
type Memory struct {
	mu      sync.Mutex
	entries map[string]entry
	clock   func() time.Time
}

// New constructs an empty Memory cache provider using the wall clock.
func New() *Memory {
	return &Memory{entries: map[string]entry{}, clock: time.Now}
}

var _ interfaces.CacheProvider = (*Memory)(nil)

func (m *Memory) Get(_ context.Context, key string) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return nil, nil
	}
	if !e.expires.IsZero() && !e.expires.After(m.clock()) {
		delete(m.entries, key)
		return nil, nil
	}
	return e.value, nil
}

func (m *Memory) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var expires time.Time
	if ttl > 0 {
		expires = m.clock().Add(ttl)
	}
	m.entries[key] = entry{value: value, expires: expires}
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = map[string]entry{}
	return nil
}
