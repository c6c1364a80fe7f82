package commit

import (
	"context"
	"time"

	"github.com/itkodovaya/site-builder/pkg/interfaces"
)

const lockTTL = 30 * time.Second

// Locker is the distributed mutual-exclusion primitive §4.E step 1 names:
// "set lock:commit:{draftId} = 1 IF NOT EXISTS EX 30s". Per §9's design
// note, the lock is an optimization on top of the relational store's
// UNIQUE(draft_id) constraint: correctness never depends on its fairness
// or liveness, only on reducing wasted concurrent work.
type Locker interface {
	// Acquire reports whether the caller now holds key, false if another
	// holder already does.
	Acquire(ctx context.Context, key string) (bool, error)
	// Release drops key. It is best-effort: callers must not treat a
	// failure here as blocking a successful commit (§4.E step 8, §7).
	Release(ctx context.Context, key string) error
}

// cacheLock is a marker value stored against a held lock key.
const cacheLock = "1"

// CacheProviderLocker adapts the same interfaces.CacheProvider the draft
// store uses into a Locker. CacheProvider exposes no atomic
// set-if-absent primitive, so Acquire's check-then-set has a narrow race
// window; that is acceptable here precisely because the lock is an
// optimization, not the correctness mechanism (the DB unique constraint
// is, see internal/relstore).
type CacheProviderLocker struct {
	provider interfaces.CacheProvider
}

// NewCacheProviderLocker wraps provider as a commit Locker.
func NewCacheProviderLocker(provider interfaces.CacheProvider) *CacheProviderLocker {
	return &CacheProviderLocker{provider: provider}
}

func (l *CacheProviderLocker) Acquire(ctx context.Context, key string) (bool, error) {
	existing, err := l.provider.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	if err := l.provider.Set(ctx, key, cacheLock, lockTTL); err != nil {
		return false, err
	}
	return true, nil
}

func (l *CacheProviderLocker) Release(ctx context.Context, key string) error {
	return l.provider.Delete(ctx, key)
}

// LockKey derives the lock:commit:{draftId} key from a draftId.
func LockKey(draftID string) string {
	return "lock:commit:" + draftID
}
