// Package commit implements the §4.E commit coordinator: migrating a Draft
// into a permanent Project + ProjectConfig pair under a distributed lock,
// with idempotent replay on every retry path (lost lock, crash after
// persist, client retry).
package commit

import (
	"context"
	"time"

	"github.com/itkodovaya/site-builder/internal/domain"
	"github.com/itkodovaya/site-builder/internal/generator"
	"github.com/itkodovaya/site-builder/internal/identity"
	"github.com/itkodovaya/site-builder/internal/logging"
	"github.com/itkodovaya/site-builder/internal/validation"
	"github.com/itkodovaya/site-builder/pkg/interfaces"
)

// DraftReader is the narrow slice of draftstore.Store the coordinator
// depends on: a non-sliding read (§4.E step 3 loads the draft without
// resetting its TTL) and the best-effort post-commit delete (step 7).
type DraftReader interface {
	FindByID(ctx context.Context, id string, slide bool) (*domain.Draft, error)
	Delete(ctx context.Context, id string) error
}

// RelationalStore is the narrow slice of relstore.Store the coordinator
// depends on.
type RelationalStore interface {
	FindCommitByDraftID(ctx context.Context, draftID string) (*domain.Project, *domain.ProjectConfig, error)
	CommitDraft(ctx context.Context, project domain.Project, config domain.ProjectConfig) (domain.Project, domain.ProjectConfig, error)
}

// Coordinator executes the §4.E state machine.
type Coordinator struct {
	drafts   DraftReader
	rel      RelationalStore
	registry generator.Registry
	locker   Locker
	logger   interfaces.Logger
	clock    func() time.Time
	strict   *validation.SiteConfigValidator
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLogger injects a module-scoped logger. Defaults to a no-op logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Coordinator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock overrides the coordinator's time source. Intended for tests.
func WithClock(clock func() time.Time) Option {
	return func(c *Coordinator) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithStrictValidation enables §4.E's optional strict-mode step: every
// generated config is checked against the compiled SiteConfig JSON Schema
// before it is persisted, and a schema mismatch fails the commit instead
// of writing a malformed config. Off by default (nil validator), matching
// runtimeconfig.Config.StrictCheck's opt-in default.
func WithStrictValidation(validator *validation.SiteConfigValidator) Option {
	return func(c *Coordinator) {
		c.strict = validator
	}
}

// NewCoordinator wires a Coordinator against its collaborators.
func NewCoordinator(drafts DraftReader, rel RelationalStore, registry generator.Registry, locker Locker, opts ...Option) *Coordinator {
	c := &Coordinator{
		drafts:   drafts,
		rel:      rel,
		registry: registry,
		locker:   locker,
		logger:   logging.NoOp(),
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Commit runs the §4.E algorithm for one draft and returns its terminal
// {projectId, configId, status}. A successful return always means the
// Project durably exists, whether this call created it (MIGRATED) or found
// it already there (ALREADY_COMMITTED).
func (c *Coordinator) Commit(ctx context.Context, draftID string, owner domain.Owner) (domain.CommitResult, error) {
	key := LockKey(draftID)

	acquired, err := c.locker.Acquire(ctx, key)
	if err != nil {
		return domain.CommitResult{}, domain.WrapInternal(err, "commit.acquireLock")
	}
	if !acquired {
		return domain.CommitResult{}, domain.ErrCommitInProgress
	}
	defer func() {
		// Best-effort: release even if the caller's context was cancelled
		// (§5 "cancellation releases any held commit lock eagerly"). The
		// TTL reclaims it regardless (§7: best-effort operations never
		// surface).
		if releaseErr := c.locker.Release(context.WithoutCancel(ctx), key); releaseErr != nil {
			c.logger.Warn("commit.releaseLock.failed", "draftId", draftID, "error", releaseErr)
		}
	}()

	if project, config, err := c.rel.FindCommitByDraftID(ctx, draftID); err != nil {
		return domain.CommitResult{}, domain.WrapInternal(err, "commit.idempotencyCheck")
	} else if project != nil && config != nil {
		return domain.CommitResult{
			ProjectID: project.ProjectID,
			ConfigID:  config.ConfigID,
			Status:    domain.CommitStatusAlreadyCommitted,
		}, nil
	}

	draft, err := c.drafts.FindByID(ctx, draftID, false)
	if err != nil {
		return domain.CommitResult{}, domain.WrapInternal(err, "commit.loadDraft")
	}
	if draft == nil {
		return domain.CommitResult{}, domain.NewDraftNotFound(draftID)
	}
	now := c.clock()
	if draft.IsExpired(now) {
		return domain.CommitResult{}, domain.ErrDraftExpired
	}

	cfg, err := generator.Build(*draft, c.registry, identity.NewConfigID(), now)
	if err != nil {
		return domain.CommitResult{}, domain.WrapInternal(err, "commit.generate")
	}

	configJSON, err := domain.CanonicalJSON(cfg)
	if err != nil {
		return domain.CommitResult{}, domain.WrapInternal(err, "commit.canonicalize")
	}
	configHash, err := domain.CanonicalHash(cfg)
	if err != nil {
		return domain.CommitResult{}, domain.WrapInternal(err, "commit.hash")
	}

	if c.strict != nil {
		if err := c.strict.Validate(configJSON); err != nil {
			return domain.CommitResult{}, domain.WrapInvalidInput(err, "commit.validate")
		}
	}

	project := domain.Project{
		ProjectID: identity.NewProjectID(),
		Owner:     owner,
		DraftID:   draftID,
		CreatedAt: now,
		UpdatedAt: now,
		Status:    domain.StatusProjectDraft,
	}
	config := domain.ProjectConfig{
		ConfigID:        cfg.ConfigID,
		ProjectID:       project.ProjectID,
		SchemaVersion:   cfg.SchemaVersion,
		ConfigVersion:   cfg.ConfigVersion,
		TemplateID:      cfg.Generator.TemplateID,
		TemplateVersion: cfg.Generator.TemplateVersion,
		ConfigJSON:      configJSON,
		ConfigHash:      configHash,
		CreatedAt:       now,
	}

	committedProject, committedConfig, err := c.rel.CommitDraft(ctx, project, config)
	if err != nil {
		return domain.CommitResult{}, domain.WrapInternal(err, "commit.persist")
	}

	status := domain.CommitStatusMigrated
	if committedProject.ProjectID != project.ProjectID {
		// CommitDraft lost a race against a concurrent writer and returned
		// the row that writer inserted instead of ours (§4.E step 6's
		// "treat as idempotent" branch).
		status = domain.CommitStatusAlreadyCommitted
	} else if err := c.drafts.Delete(ctx, draftID); err != nil {
		// Best-effort: the draft's own TTL reclaims it regardless (§4.E
		// step 7, §7 "best-effort operations ... never surface").
		c.logger.Warn("commit.deleteDraft.failed", "draftId", draftID, "error", err)
	}

	return domain.CommitResult{
		ProjectID: committedProject.ProjectID,
		ConfigID:  committedConfig.ConfigID,
		Status:    status,
	}, nil
}
