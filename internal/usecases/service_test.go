package usecases_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/itkodovaya/site-builder/internal/assets"
	"github.com/itkodovaya/site-builder/internal/commit"
	"github.com/itkodovaya/site-builder/internal/domain"
	"github.com/itkodovaya/site-builder/internal/draftstore"
	"github.com/itkodovaya/site-builder/internal/templates"
	"github.com/itkodovaya/site-builder/internal/usecases"
)

type fakeRel struct {
	mu       sync.Mutex
	projects map[string]domain.Project
	configs  map[string]domain.ProjectConfig
}

func newFakeRel() *fakeRel {
	return &fakeRel{projects: map[string]domain.Project{}, configs: map[string]domain.ProjectConfig{}}
}

func (f *fakeRel) FindCommitByDraftID(_ context.Context, draftID string) (*domain.Project, *domain.ProjectConfig, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	project, ok := f.projects[draftID]
	if !ok {
		return nil, nil, nil
	}
	config := f.configs[draftID]
	return &project, &config, nil
}

func (f *fakeRel) CommitDraft(_ context.Context, project domain.Project, config domain.ProjectConfig) (domain.Project, domain.ProjectConfig, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.projects[project.DraftID]; ok {
		return existing, f.configs[project.DraftID], nil
	}
	f.projects[project.DraftID] = project
	f.configs[project.DraftID] = config
	return project, config, nil
}

type fakeLocker struct {
	mu   sync.Mutex
	held map[string]bool
}

func newFakeLocker() *fakeLocker { return &fakeLocker{held: map[string]bool{}} }

func (l *fakeLocker) Acquire(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[key] {
		return false, nil
	}
	l.held[key] = true
	return true, nil
}

func (l *fakeLocker) Release(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, key)
	return nil
}

func newTestService(t *testing.T, now time.Time) (*usecases.Service, *draftstore.MemoryStore, *assets.MemoryProvider) {
	t.Helper()
	reg, err := templates.NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	drafts := draftstore.NewMemoryStore()
	provider := assets.NewMemoryProvider()
	coord := commit.NewCoordinator(drafts, newFakeRel(), reg, newFakeLocker(), commit.WithClock(func() time.Time { return now }))
	svc := usecases.NewService(drafts, reg, provider, coord, usecases.WithClock(func() time.Time { return now }))
	return svc, drafts, provider
}

func TestService_CreateDraftNormalizesBrandName(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	svc, _, _ := newTestService(t, now)

	draft, err := svc.CreateDraft(context.Background(), usecases.CreateDraftCommand{
		BrandName: "  Acme   Co  ",
		Industry:  usecases.IndustryInput{Code: "tech"},
	})
	if err != nil {
		t.Fatalf("CreateDraft() error = %v", err)
	}
	if draft.BrandProfile.BrandName != "Acme Co" {
		t.Fatalf("expected normalized brand name, got %q", draft.BrandProfile.BrandName)
	}
	if draft.BrandProfile.Industry.Code != domain.IndustryTech {
		t.Fatalf("expected industry tech, got %q", draft.BrandProfile.Industry.Code)
	}
}

func TestService_CreateDraftRejectsEmptyBrandName(t *testing.T) {
	svc, _, _ := newTestService(t, time.Now())
	_, err := svc.CreateDraft(context.Background(), usecases.CreateDraftCommand{
		BrandName: "   ",
		Industry:  usecases.IndustryInput{Code: "tech"},
	})
	if err == nil {
		t.Fatal("expected validation error for empty brand name")
	}
}

func TestService_CreateDraftUnknownAssetReturnsNotFound(t *testing.T) {
	svc, _, _ := newTestService(t, time.Now())
	_, err := svc.CreateDraft(context.Background(), usecases.CreateDraftCommand{
		BrandName:   "Acme",
		Industry:    usecases.IndustryInput{Code: "tech"},
		LogoAssetID: "ast_missing",
	})
	var notFound *domain.NotFoundError
	if !errors.As(err, &notFound) || notFound.Resource != "asset" {
		t.Fatalf("expected asset NotFoundError, got %v", err)
	}
}

func TestService_UpdateDraftAppliesTriStatePatch(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	svc, _, provider := newTestService(t, now)
	provider.Register(domain.AssetInfo{AssetID: "ast_logo", URL: "https://cdn.example.com/ast_logo"})

	draft, err := svc.CreateDraft(context.Background(), usecases.CreateDraftCommand{
		BrandName: "Acme",
		Industry:  usecases.IndustryInput{Code: "tech"},
	})
	if err != nil {
		t.Fatalf("CreateDraft() error = %v", err)
	}

	updated, err := svc.UpdateDraft(context.Background(), usecases.UpdateDraftCommand{
		DraftID:     draft.DraftID,
		LogoAssetID: domain.Set("ast_logo"),
	})
	if err != nil {
		t.Fatalf("UpdateDraft() error = %v", err)
	}
	if updated.BrandProfile.Logo == nil || updated.BrandProfile.Logo.AssetID != "ast_logo" {
		t.Fatalf("expected logo to be set, got %+v", updated.BrandProfile.Logo)
	}
	if !updated.UpdatedAt.After(draft.UpdatedAt) && !updated.UpdatedAt.Equal(draft.UpdatedAt) {
		t.Fatalf("expected updatedAt to move forward or stay, got %v vs %v", updated.UpdatedAt, draft.UpdatedAt)
	}

	cleared, err := svc.UpdateDraft(context.Background(), usecases.UpdateDraftCommand{
		DraftID:     draft.DraftID,
		LogoAssetID: domain.Clear[string](),
	})
	if err != nil {
		t.Fatalf("UpdateDraft(clear) error = %v", err)
	}
	if cleared.BrandProfile.Logo != nil {
		t.Fatalf("expected logo to be cleared, got %+v", cleared.BrandProfile.Logo)
	}

	unchanged, err := svc.UpdateDraft(context.Background(), usecases.UpdateDraftCommand{DraftID: draft.DraftID})
	if err != nil {
		t.Fatalf("UpdateDraft(no-op) error = %v", err)
	}
	if unchanged.BrandProfile.BrandName != draft.BrandProfile.BrandName {
		t.Fatalf("expected brand name unchanged by Unset patch, got %q", unchanged.BrandProfile.BrandName)
	}
}

func TestService_UpdateDraftMissingReturnsNotFound(t *testing.T) {
	svc, _, _ := newTestService(t, time.Now())
	_, err := svc.UpdateDraft(context.Background(), usecases.UpdateDraftCommand{DraftID: "drf_missing", BrandName: domain.Set("New Name")})
	var notFound *domain.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestService_GetPreviewSlidesTTLAndRecordsETag(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	svc, drafts, _ := newTestService(t, now)

	draft, err := svc.CreateDraft(context.Background(), usecases.CreateDraftCommand{
		BrandName:  "Acme",
		Industry:   usecases.IndustryInput{Code: "tech"},
		TTLSeconds: 60,
	})
	if err != nil {
		t.Fatalf("CreateDraft() error = %v", err)
	}
	originalExpiry := draft.ExpiresAt

	output, err := svc.GetPreview(context.Background(), usecases.GetPreviewQuery{DraftID: draft.DraftID, Format: "html"})
	if err != nil {
		t.Fatalf("GetPreview() error = %v", err)
	}
	if output.ETag == "" {
		t.Fatal("expected non-empty etag")
	}

	stored, err := drafts.FindByID(context.Background(), draft.DraftID, false)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if stored == nil {
		t.Fatal("expected draft to still exist")
	}
	if !stored.ExpiresAt.After(originalExpiry) && !stored.ExpiresAt.Equal(originalExpiry) {
		t.Fatalf("expected TTL to slide forward, got %v vs %v", stored.ExpiresAt, originalExpiry)
	}
	if stored.Preview.ETag != output.ETag {
		t.Fatalf("expected preview state to record rendered etag, got %q vs %q", stored.Preview.ETag, output.ETag)
	}
}

func TestService_CommitDraftDelegatesToCoordinator(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	svc, _, _ := newTestService(t, now)

	draft, err := svc.CreateDraft(context.Background(), usecases.CreateDraftCommand{
		BrandName: "Acme",
		Industry:  usecases.IndustryInput{Code: "tech"},
	})
	if err != nil {
		t.Fatalf("CreateDraft() error = %v", err)
	}

	result, err := svc.CommitDraft(context.Background(), usecases.CommitDraftCommand{
		DraftID: draft.DraftID,
		Owner:   domain.Owner{UserID: "usr_1"},
	})
	if err != nil {
		t.Fatalf("CommitDraft() error = %v", err)
	}
	if result.Status != domain.CommitStatusMigrated {
		t.Fatalf("expected MIGRATED, got %s", result.Status)
	}
}
