package relstore

import (
	"context"
	"fmt"
	"strings"

	cache "github.com/goliatone/go-repository-cache/cache"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/itkodovaya/site-builder/internal/domain"
	"github.com/itkodovaya/site-builder/internal/identity"
	"github.com/uptrace/bun"
)

// Store persists committed Projects and ProjectConfigs.
type Store struct {
	db       *bun.DB
	projects repository.Repository[*projectRecord]
	configs  repository.Repository[*projectConfigRecord]
}

// NewStore wires a Store against db, which must already have the projects
// and project_configs tables migrated (see Migrate). Reads are uncached;
// use NewStoreWithCache to decorate the repositories with a read-through
// cache.
func NewStore(db *bun.DB) *Store {
	return NewStoreWithCache(db, nil, nil)
}

// NewStoreWithCache wires a Store the same way NewStore does, but decorates
// the Project/ProjectConfig repositories with a go-repository-cache
// read-through cache when both cacheService and keySerializer are
// non-nil — mirroring the teacher's NewBunContentRepository /
// NewBunContentRepositoryWithCache split (internal/content/bun_repository.go).
func NewStoreWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *Store {
	return &Store{
		db:       db,
		projects: wrapWithCache(newProjectRepository(db), cacheService, keySerializer),
		configs:  wrapWithCache(newProjectConfigRepository(db), cacheService, keySerializer),
	}
}

// Migrate creates the projects and project_configs tables if absent. It is
// intended for the sqlite dev/test dialect; production deployments manage
// schema via migrations, matching the teacher's split between
// integration-test bootstrapping and a real migration tool.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.NewCreateTable().Model((*projectRecord)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("relstore: create projects table: %w", err)
	}
	if _, err := s.db.NewCreateTable().Model((*projectConfigRecord)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("relstore: create project_configs table: %w", err)
	}
	return nil
}

// FindCommitByDraftID returns the Project and ProjectConfig committed for
// draftID, or (nil, nil, nil) if no commit has happened yet.
func (s *Store) FindCommitByDraftID(ctx context.Context, draftID string) (*domain.Project, *domain.ProjectConfig, error) {
	records, _, err := s.projects.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.draft_id = ?", draftID)
	}))
	if err != nil {
		return nil, nil, fmt.Errorf("relstore: find project by draft id: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, nil
	}

	projectRow := records[0]
	configRows, _, err := s.configs.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.project_row_id = ?", projectRow.ID)
	}))
	if err != nil {
		return nil, nil, fmt.Errorf("relstore: find config by project: %w", err)
	}
	if len(configRows) == 0 {
		return nil, nil, nil
	}

	project := fromProjectRecord(projectRow)
	config := fromProjectConfigRecord(configRows[0], project.ProjectID)
	return &project, &config, nil
}

// CommitDraft atomically inserts the Project and ProjectConfig rows for one
// draft migration (§4.E step 6). If a concurrent writer already committed
// the same draftId (the unique constraint fires), CommitDraft re-reads and
// returns the existing records instead of propagating the conflict.
func (s *Store) CommitDraft(ctx context.Context, project domain.Project, config domain.ProjectConfig) (domain.Project, domain.ProjectConfig, error) {
	projectRow := toProjectRecord(project)
	configRow := toProjectConfigRecord(config, projectRow.ID)

	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := s.projects.CreateTx(ctx, tx, projectRow); err != nil {
			return err
		}
		if _, err := s.configs.CreateTx(ctx, tx, configRow); err != nil {
			return err
		}
		return nil
	})
	if err == nil {
		return project, config, nil
	}
	if !isUniqueViolation(err) {
		return domain.Project{}, domain.ProjectConfig{}, fmt.Errorf("relstore: commit draft: %w", err)
	}

	existingProject, existingConfig, findErr := s.FindCommitByDraftID(ctx, project.DraftID)
	if findErr != nil {
		return domain.Project{}, domain.ProjectConfig{}, findErr
	}
	if existingProject == nil || existingConfig == nil {
		return domain.Project{}, domain.ProjectConfig{}, fmt.Errorf("relstore: commit draft: unique violation but no existing row found: %w", err)
	}
	return *existingProject, *existingConfig, nil
}

// isUniqueViolation recognizes the sqlite and postgres unique-constraint
// error text. bun does not normalize driver errors into a shared type, so
// this is a best-effort string match against both dialects this service
// supports.
func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key value")
}

func toProjectRecord(p domain.Project) *projectRecord {
	return &projectRecord{
		ID:        identity.ProjectRowUUID(p.ProjectID),
		ProjectID: p.ProjectID,
		DraftID:   p.DraftID,
		UserID:    p.Owner.UserID,
		TenantID:  p.Owner.TenantID,
		Status:    string(p.Status),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func fromProjectRecord(r *projectRecord) domain.Project {
	return domain.Project{
		ProjectID: r.ProjectID,
		Owner:     domain.Owner{UserID: r.UserID, TenantID: r.TenantID},
		DraftID:   r.DraftID,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
		Status:    domain.ProjectStatus(r.Status),
	}
}

func toProjectConfigRecord(c domain.ProjectConfig, projectRowID uuid.UUID) *projectConfigRecord {
	return &projectConfigRecord{
		ID:              identity.ConfigRowUUID(c.ConfigID),
		ConfigID:        c.ConfigID,
		ProjectRowID:    projectRowID,
		SchemaVersion:   c.SchemaVersion,
		ConfigVersion:   c.ConfigVersion,
		TemplateID:      c.TemplateID,
		TemplateVersion: c.TemplateVersion,
		ConfigJSON:      c.ConfigJSON,
		ConfigHash:      c.ConfigHash,
		CreatedAt:       c.CreatedAt,
	}
}

func fromProjectConfigRecord(r *projectConfigRecord, projectID string) domain.ProjectConfig {
	return domain.ProjectConfig{
		ConfigID:        r.ConfigID,
		ProjectID:       projectID,
		SchemaVersion:   r.SchemaVersion,
		ConfigVersion:   r.ConfigVersion,
		TemplateID:      r.TemplateID,
		TemplateVersion: r.TemplateVersion,
		ConfigJSON:      r.ConfigJSON,
		ConfigHash:      r.ConfigHash,
		CreatedAt:       r.CreatedAt,
	}
}
