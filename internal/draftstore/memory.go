package draftstore

import (
	"context"
	"sync"
	"time"

	"github.com/itkodovaya/site-builder/internal/domain"
)

// entry pairs a stored draft with its expiry instant and a monotonically
// increasing version used for compare-and-set.
type entry struct {
	draft   domain.Draft
	expires time.Time
	version uint64
}

// MemoryStore is an in-process TTL key-value store guarded by a single
// mutex; expiration is checked lazily on access rather than via a
// background sweep, satisfying §4.B's "expiration is authoritative"
// requirement without a reaper goroutine.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]entry
	clock   func() time.Time
}

// NewMemoryStore constructs an empty MemoryStore using the wall clock.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: map[string]entry{},
		clock:   time.Now,
	}
}

func (s *MemoryStore) Save(_ context.Context, draft domain.Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[draft.DraftID]; ok && e.expires.After(s.clock()) {
		return ErrAlreadyExists
	}
	s.entries[draft.DraftID] = entry{
		draft:   draft,
		expires: s.clock().Add(ttl(draft)),
		version: 1,
	}
	return nil
}

func (s *MemoryStore) Update(_ context.Context, draft domain.Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.liveEntry(draft.DraftID)
	if !ok {
		return ErrNotFound
	}
	s.entries[draft.DraftID] = entry{
		draft:   draft,
		expires: s.clock().Add(ttl(draft)),
		version: e.version + 1,
	}
	return nil
}

func (s *MemoryStore) FindByID(_ context.Context, id string, slide bool) (*domain.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.liveEntry(id)
	if !ok {
		return nil, nil
	}
	if slide {
		e.expires = s.clock().Add(ttl(e.draft))
		e.version++
		s.entries[id] = e
	}
	draft := e.draft
	return &draft, nil
}

func (s *MemoryStore) Exists(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.liveEntry(id)
	return ok, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}

func (s *MemoryStore) GetTTL(_ context.Context, id string) (*time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.liveEntry(id)
	if !ok {
		return nil, nil
	}
	remaining := e.expires.Sub(s.clock())
	return &remaining, nil
}

func (s *MemoryStore) UpdateWithLock(ctx context.Context, id string, fn TransformFunc) (domain.Draft, error) {
	for attempt := 0; attempt < maxCASAttempts; attempt++ {
		s.mu.Lock()
		e, ok := s.liveEntry(id)
		if !ok {
			s.mu.Unlock()
			return domain.Draft{}, ErrNotFound
		}
		startVersion := e.version
		current := e.draft
		s.mu.Unlock()

		next, err := fn(current)
		if err != nil {
			return domain.Draft{}, err
		}

		s.mu.Lock()
		e, ok = s.liveEntry(id)
		if !ok {
			s.mu.Unlock()
			return domain.Draft{}, ErrNotFound
		}
		if e.version != startVersion {
			s.mu.Unlock()
			continue
		}
		s.entries[id] = entry{
			draft:   next,
			expires: s.clock().Add(ttl(next)),
			version: e.version + 1,
		}
		s.mu.Unlock()
		return next, nil
	}
	return domain.Draft{}, ErrConflict
}

// liveEntry returns the entry for id, deleting and reporting absence if it
// has expired. Callers must hold s.mu.
func (s *MemoryStore) liveEntry(id string) (entry, bool) {
	e, ok := s.entries[id]
	if !ok {
		return entry{}, false
	}
	if !e.expires.After(s.clock()) {
		delete(s.entries, id)
		return entry{}, false
	}
	return e, true
}

func ttl(d domain.Draft) time.Duration {
	return time.Duration(d.TTLSeconds) * time.Second
}
