// Package draftstore holds the TTL key-value contract (§4.B) and its
// adapters: an in-memory reference implementation and a
// pkg/interfaces.CacheProvider-backed adapter for production use.
package draftstore

import (
	"context"
	"errors"
	"time"

	"github.com/itkodovaya/site-builder/internal/domain"
)

var (
	// ErrAlreadyExists is returned by Save when the key is occupied.
	ErrAlreadyExists = errors.New("draftstore: draft already exists")
	// ErrNotFound is returned by Update/UpdateWithLock when the key is absent.
	ErrNotFound = errors.New("draftstore: draft not found")
	// ErrConflict is returned by UpdateWithLock after exhausting its
	// compare-and-set retry budget.
	ErrConflict = errors.New("draftstore: conflicting concurrent update")
)

// TransformFunc mutates a draft as part of UpdateWithLock. Returning an
// error aborts the transaction without writing.
type TransformFunc func(domain.Draft) (domain.Draft, error)

// Store is the TTL key-value mapping draft:{id} -> Draft described by §4.B.
// The adapters hold the domain.Draft value itself; neither encodes it as
// canonical JSON. Every method is safe for concurrent use across distinct
// ids; single-key operations never block another key.
type Store interface {
	// Save stores draft with TTL = draft.TTLSeconds, failing if the id exists.
	Save(ctx context.Context, draft domain.Draft) error

	// Update overwrites draft and resets its TTL, failing if the id is absent.
	Update(ctx context.Context, draft domain.Draft) error

	// FindByID returns the draft, or (nil, nil) if absent or expired. If
	// slide is true and the draft is found, its TTL is reset to TTLSeconds.
	FindByID(ctx context.Context, id string, slide bool) (*domain.Draft, error)

	// Exists reports whether id currently maps to a live draft.
	Exists(ctx context.Context, id string) (bool, error)

	// Delete removes id. It is idempotent: deleting an absent id is not an error.
	Delete(ctx context.Context, id string) error

	// GetTTL returns the remaining TTL for id, or nil if absent.
	GetTTL(ctx context.Context, id string) (*time.Duration, error)

	// UpdateWithLock applies fn atomically with compare-and-set retry
	// (at most 3 attempts), returning ErrConflict if every attempt loses
	// the race.
	UpdateWithLock(ctx context.Context, id string, fn TransformFunc) (domain.Draft, error)
}

const maxCASAttempts = 3
