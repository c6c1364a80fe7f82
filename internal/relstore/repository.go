package relstore

import (
	cache "github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func newProjectRepository(db *bun.DB) repository.Repository[*projectRecord] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*projectRecord]{
		NewRecord:          func() *projectRecord { return &projectRecord{} },
		GetID:              func(r *projectRecord) uuid.UUID { return r.ID },
		SetID:              func(r *projectRecord, id uuid.UUID) { r.ID = id },
		GetIdentifier:      func() string { return "project_id" },
		GetIdentifierValue: func(r *projectRecord) string { return r.ProjectID },
	})
}

func newProjectConfigRepository(db *bun.DB) repository.Repository[*projectConfigRecord] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*projectConfigRecord]{
		NewRecord:          func() *projectConfigRecord { return &projectConfigRecord{} },
		GetID:              func(r *projectConfigRecord) uuid.UUID { return r.ID },
		SetID:              func(r *projectConfigRecord, id uuid.UUID) { r.ID = id },
		GetIdentifier:      func() string { return "config_id" },
		GetIdentifierValue: func(r *projectConfigRecord) string { return r.ConfigID },
	})
}

// wrapWithCache decorates base with a go-repository-cache read-through
// cache when both a CacheService and KeySerializer are supplied, the same
// optional-decoration pattern the teacher applies to every Bun repository
// (internal/content/bun_repository.go's wrapWithCache). Committed
// Projects/ProjectConfigs are immutable once written, which makes them
// good read-cache candidates: FindCommitByDraftID is the hot path every
// commit retry and idempotent replay takes.
func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
