package usecases

import (
	"context"
	"errors"
	"time"

	command "github.com/goliatone/go-command"

	"github.com/itkodovaya/site-builder/internal/assets"
	"github.com/itkodovaya/site-builder/internal/commands"
	"github.com/itkodovaya/site-builder/internal/commit"
	"github.com/itkodovaya/site-builder/internal/domain"
	"github.com/itkodovaya/site-builder/internal/draftstore"
	"github.com/itkodovaya/site-builder/internal/generator"
	"github.com/itkodovaya/site-builder/internal/identity"
	"github.com/itkodovaya/site-builder/internal/logging"
	"github.com/itkodovaya/site-builder/internal/preview"
	"github.com/itkodovaya/site-builder/pkg/interfaces"
)

// Service implements the §4 request/response pairs. Every method validates
// its command.Message argument the same way commands.Handler[T] would
// (command.ValidateMessage, then the shared Wrap* helpers) but returns the
// resulting value directly, since the HTTP adapter needs it.
type Service struct {
	drafts      draftstore.Store
	registry    generator.Registry
	assets      assets.Provider
	coordinator *commit.Coordinator
	logger      interfaces.Logger
	clock       func() time.Time
	defaultTTL  int
}

// Option configures a Service.
type Option func(*Service)

// WithLogger injects a module-scoped logger. Defaults to a no-op logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the service's time source. Intended for tests.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithDefaultTTL sets the TTL applied to CreateDraft when the caller omits
// one.
func WithDefaultTTL(seconds int) Option {
	return func(s *Service) {
		if seconds > 0 {
			s.defaultTTL = seconds
		}
	}
}

// NewService wires a Service against its collaborators.
func NewService(drafts draftstore.Store, registry generator.Registry, assetProvider assets.Provider, coordinator *commit.Coordinator, opts ...Option) *Service {
	s := &Service{
		drafts:      drafts,
		registry:    registry,
		assets:      assetProvider,
		coordinator: coordinator,
		logger:      logging.NoOp(),
		clock:       time.Now,
		defaultTTL:  3600,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) validate(msg command.Message) error {
	return commands.WrapValidationError(command.ValidateMessage(msg))
}

func (s *Service) prepare(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx = commands.EnsureContext(ctx)
	return commands.WithCommandTimeout(ctx, commands.DefaultCommandTimeout)
}

// resolveLogo fetches the AssetInfo for a non-empty assetID, translating a
// missing asset into the domain's typed not-found error.
func (s *Service) resolveLogo(ctx context.Context, assetID string) (*domain.AssetInfo, error) {
	if assetID == "" {
		return nil, nil
	}
	info, err := s.assets.Fetch(ctx, assetID)
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// CreateDraft implements §4.A: normalize, derive industry, resolve the
// optional logo, and persist a fresh Draft with a server-issued id.
func (s *Service) CreateDraft(ctx context.Context, cmd CreateDraftCommand) (domain.Draft, error) {
	if err := s.validate(cmd); err != nil {
		return domain.Draft{}, err
	}
	ctx, cancel := s.prepare(ctx)
	defer cancel()

	logger := logging.WithFields(s.logger, map[string]any{"operation": "usecases.createDraft"})

	logo, err := s.resolveLogo(ctx, cmd.LogoAssetID)
	if err != nil {
		return domain.Draft{}, err
	}

	ttl := cmd.TTLSeconds
	if ttl == 0 {
		ttl = s.defaultTTL
	}

	brand := domain.NewBrandProfile(1, cmd.BrandName, cmd.Industry.Code, cmd.Industry.Label, logo)
	now := s.clock()
	draft := domain.NewDraft(identity.NewDraftID(), brand, domain.GeneratorInfo{}, cmd.Meta, ttl, now)

	if err := s.drafts.Save(ctx, draft); err != nil {
		return domain.Draft{}, commands.WrapExecuteError(err)
	}
	logger.Info("usecases.createDraft.completed", "draftId", draft.DraftID)
	return draft, nil
}

// UpdateDraft implements §4.B's tri-state PATCH, applied atomically via
// draftstore.Store.UpdateWithLock (compare-and-set retry).
func (s *Service) UpdateDraft(ctx context.Context, cmd UpdateDraftCommand) (domain.Draft, error) {
	if err := s.validate(cmd); err != nil {
		return domain.Draft{}, err
	}
	ctx, cancel := s.prepare(ctx)
	defer cancel()

	var resolvedLogo *domain.AssetInfo
	if assetID, ok := cmd.LogoAssetID.Value(); ok {
		logo, err := s.resolveLogo(ctx, assetID)
		if err != nil {
			return domain.Draft{}, err
		}
		resolvedLogo = logo
	}

	now := s.clock()
	draft, err := s.drafts.UpdateWithLock(ctx, cmd.DraftID, func(d domain.Draft) (domain.Draft, error) {
		if d.IsExpired(now) {
			return domain.Draft{}, domain.ErrDraftExpired
		}
		if name, ok := cmd.BrandName.Value(); ok {
			d.BrandProfile.BrandName = domain.NormalizeBrandName(name)
		}
		if industry, ok := cmd.Industry.Value(); ok {
			d.BrandProfile.Industry = domain.NewIndustryInfo(industry.Code, industry.Label)
		}
		switch {
		case cmd.LogoAssetID.IsCleared():
			d.BrandProfile.Logo = nil
		case cmd.LogoAssetID.IsPresent():
			d.BrandProfile.Logo = resolvedLogo
		}
		return d.Touch(now), nil
	})
	if err != nil {
		return domain.Draft{}, s.translateStoreError(err, cmd.DraftID)
	}
	return draft, nil
}

// GetDraft implements §4.B's read path: no TTL slide.
func (s *Service) GetDraft(ctx context.Context, query GetDraftQuery) (domain.Draft, error) {
	if err := s.validate(query); err != nil {
		return domain.Draft{}, err
	}
	ctx, cancel := s.prepare(ctx)
	defer cancel()

	draft, err := s.drafts.FindByID(ctx, query.DraftID, false)
	if err != nil {
		return domain.Draft{}, commands.WrapExecuteError(err)
	}
	if draft == nil {
		return domain.Draft{}, domain.NewDraftNotFound(query.DraftID)
	}
	return *draft, nil
}

// GetPreview implements §4.D: generate the current SiteConfig, render a
// safe preview, and slide the draft's TTL while recording the preview
// metadata, all inside a single UpdateWithLock transaction.
func (s *Service) GetPreview(ctx context.Context, query GetPreviewQuery) (preview.Output, error) {
	if err := s.validate(query); err != nil {
		return preview.Output{}, err
	}
	ctx, cancel := s.prepare(ctx)
	defer cancel()

	format := preview.Format(query.Format)
	if format == "" {
		format = preview.FormatHTML
	}

	var output preview.Output
	now := s.clock()
	_, err := s.drafts.UpdateWithLock(ctx, query.DraftID, func(d domain.Draft) (domain.Draft, error) {
		if d.IsExpired(now) {
			return domain.Draft{}, domain.ErrDraftExpired
		}
		cfg, err := generator.Build(d, s.registry, identity.PreviewConfigID(query.DraftID), now)
		if err != nil {
			return domain.Draft{}, err
		}
		rendered, err := preview.Render(cfg, format, now, nil)
		if err != nil {
			return domain.Draft{}, err
		}
		output = rendered
		d.Preview = domain.PreviewState{
			Mode:            domain.PreviewMode(format),
			LastGeneratedAt: &now,
			ETag:            rendered.ETag,
		}
		return d.Touch(now), nil
	})
	if err != nil {
		return preview.Output{}, s.translateStoreError(err, query.DraftID)
	}
	return output, nil
}

// translateStoreError maps a draftstore/generator/preview error surfaced
// from inside an UpdateWithLock transform into the HTTP-facing shape.
// domain.ErrDraftExpired and domain.ErrPreviewUnsafe must reach
// internal/httpapi unwrapped so its errors.Is checks keep matching; every
// other failure gets tagged with the execution category.
func (s *Service) translateStoreError(err error, draftID string) error {
	if errors.Is(err, draftstore.ErrNotFound) {
		return domain.NewDraftNotFound(draftID)
	}
	if errors.Is(err, domain.ErrDraftExpired) || errors.Is(err, domain.ErrPreviewUnsafe) {
		return err
	}
	return commands.WrapExecuteError(err)
}

// CommitDraft implements §4.E by delegating the lock/idempotency/persist
// state machine to internal/commit.Coordinator.
func (s *Service) CommitDraft(ctx context.Context, cmd CommitDraftCommand) (domain.CommitResult, error) {
	if err := s.validate(cmd); err != nil {
		return domain.CommitResult{}, err
	}
	ctx, cancel := s.prepare(ctx)
	defer cancel()

	result, err := s.coordinator.Commit(ctx, cmd.DraftID, cmd.Owner)
	if err != nil {
		return domain.CommitResult{}, err
	}
	return result, nil
}
