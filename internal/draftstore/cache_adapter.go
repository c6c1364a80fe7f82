package draftstore

import (
	"context"
	"time"

	"github.com/itkodovaya/site-builder/internal/domain"
	"github.com/itkodovaya/site-builder/pkg/interfaces"
)

// versionedBlob is the envelope value stored against draft:{id} in the
// backing cache provider (stored as-is and read back by type assertion,
// not serialized to JSON). version supports UpdateWithLock's
// compare-and-set retry over a provider that has no native CAS primitive.
type versionedBlob struct {
	Draft   domain.Draft `json:"draft"`
	Version uint64       `json:"version"`
}

// CacheProviderStore adapts a generic interfaces.CacheProvider (the same
// contract the teacher wraps around its page/theme caches) into the Store
// contract. UpdateWithLock is a best-effort optimistic retry: the provider
// offers Get/Set but no atomic compare-and-swap, so a lost race is only
// detected, never prevented, by re-checking the version after computing
// the transform.
type CacheProviderStore struct {
	provider interfaces.CacheProvider
	clock    func() time.Time
}

// NewCacheProviderStore wraps provider as a draftstore.Store.
func NewCacheProviderStore(provider interfaces.CacheProvider) *CacheProviderStore {
	return &CacheProviderStore{provider: provider, clock: time.Now}
}

func draftKey(id string) string {
	return "draft:" + id
}

func (s *CacheProviderStore) Save(ctx context.Context, draft domain.Draft) error {
	if exists, err := s.Exists(ctx, draft.DraftID); err != nil {
		return err
	} else if exists {
		return ErrAlreadyExists
	}
	return s.write(ctx, draft, 1)
}

func (s *CacheProviderStore) Update(ctx context.Context, draft domain.Draft) error {
	blob, ok, err := s.read(ctx, draft.DraftID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return s.write(ctx, draft, blob.Version+1)
}

func (s *CacheProviderStore) FindByID(ctx context.Context, id string, slide bool) (*domain.Draft, error) {
	blob, ok, err := s.read(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	if slide {
		now := s.clock().UTC().Truncate(time.Millisecond)
		blob.Draft.ExpiresAt = now.Add(time.Duration(blob.Draft.TTLSeconds) * time.Second)
		if err := s.write(ctx, blob.Draft, blob.Version+1); err != nil {
			return nil, err
		}
	}
	draft := blob.Draft
	return &draft, nil
}

func (s *CacheProviderStore) Exists(ctx context.Context, id string) (bool, error) {
	_, ok, err := s.read(ctx, id)
	return ok, err
}

func (s *CacheProviderStore) Delete(ctx context.Context, id string) error {
	return s.provider.Delete(ctx, draftKey(id))
}

func (s *CacheProviderStore) GetTTL(ctx context.Context, id string) (*time.Duration, error) {
	blob, ok, err := s.read(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	remaining := blob.Draft.ExpiresAt.Sub(s.clock())
	return &remaining, nil
}

func (s *CacheProviderStore) UpdateWithLock(ctx context.Context, id string, fn TransformFunc) (domain.Draft, error) {
	for attempt := 0; attempt < maxCASAttempts; attempt++ {
		blob, ok, err := s.read(ctx, id)
		if err != nil {
			return domain.Draft{}, err
		}
		if !ok {
			return domain.Draft{}, ErrNotFound
		}
		startVersion := blob.Version

		next, err := fn(blob.Draft)
		if err != nil {
			return domain.Draft{}, err
		}

		current, ok, err := s.read(ctx, id)
		if err != nil {
			return domain.Draft{}, err
		}
		if !ok {
			return domain.Draft{}, ErrNotFound
		}
		if current.Version != startVersion {
			continue
		}
		if err := s.write(ctx, next, current.Version+1); err != nil {
			return domain.Draft{}, err
		}
		return next, nil
	}
	return domain.Draft{}, ErrConflict
}

func (s *CacheProviderStore) read(ctx context.Context, id string) (versionedBlob, bool, error) {
	raw, err := s.provider.Get(ctx, draftKey(id))
	if err != nil {
		return versionedBlob{}, false, nil
	}
	if raw == nil {
		return versionedBlob{}, false, nil
	}
	blob, ok := raw.(versionedBlob)
	if !ok {
		// Corrupt or incompatible blob: the key is considered corrupt and
		// deleted; callers observe "not found" rather than an error.
		_ = s.provider.Delete(ctx, draftKey(id))
		return versionedBlob{}, false, nil
	}
	if blob.Draft.IsExpired(s.clock()) {
		_ = s.provider.Delete(ctx, draftKey(id))
		return versionedBlob{}, false, nil
	}
	return blob, true, nil
}

func (s *CacheProviderStore) write(ctx context.Context, draft domain.Draft, version uint64) error {
	remaining := draft.ExpiresAt.Sub(s.clock())
	slidingTTL := time.Duration(draft.TTLSeconds) * time.Second
	if remaining < slidingTTL {
		slidingTTL = remaining
	}
	if slidingTTL <= 0 {
		return s.provider.Delete(ctx, draftKey(draft.DraftID))
	}
	return s.provider.Set(ctx, draftKey(draft.DraftID), versionedBlob{Draft: draft, Version: version}, slidingTTL)
}
