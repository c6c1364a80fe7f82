package commit_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/itkodovaya/site-builder/internal/commit"
	"github.com/itkodovaya/site-builder/internal/domain"
	"github.com/itkodovaya/site-builder/internal/templates"
	"github.com/itkodovaya/site-builder/internal/validation"
)

type fakeDrafts struct {
	mu      sync.Mutex
	drafts  map[string]domain.Draft
	deleted map[string]bool
}

func newFakeDrafts(draft domain.Draft) *fakeDrafts {
	return &fakeDrafts{
		drafts:  map[string]domain.Draft{draft.DraftID: draft},
		deleted: map[string]bool{},
	}
}

func (f *fakeDrafts) FindByID(_ context.Context, id string, _ bool) (*domain.Draft, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.drafts[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (f *fakeDrafts) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.drafts, id)
	f.deleted[id] = true
	return nil
}

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
	mu          sync.Mutex
	held        map[string]bool
	denyAcquire bool
}

func newFakeLocker() *fakeLocker {
	return &fakeLocker{held: map[string]bool{}}
}

func (l *fakeLocker) Acquire(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.denyAcquire || l.held[key] {
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

func newTestDraft(t *testing.T, draftID string) domain.Draft {
	t.Helper()
	brand := domain.NewBrandProfile(1, "Acme Co", "tech", "", nil)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return domain.NewDraft(draftID, brand, domain.GeneratorInfo{}, domain.DraftMeta{}, 3600, now)
}

func newTestRegistry(t *testing.T) *templates.Registry {
	t.Helper()
	reg, err := templates.NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	return reg
}

func TestCoordinator_CommitMigratesDraft(t *testing.T) {
	draft := newTestDraft(t, "drf_1")
	drafts := newFakeDrafts(draft)
	rel := newFakeRel()
	coord := commit.NewCoordinator(drafts, rel, newTestRegistry(t), newFakeLocker())

	result, err := coord.Commit(context.Background(), "drf_1", domain.Owner{UserID: "usr_A"})
	if err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	if result.Status != domain.CommitStatusMigrated {
		t.Fatalf("expected MIGRATED, got %s", result.Status)
	}
	if _, ok := drafts.deleted["drf_1"]; !ok {
		t.Fatal("expected draft to be deleted after commit")
	}
}

func TestCoordinator_CommitIsIdempotent(t *testing.T) {
	draft := newTestDraft(t, "drf_2")
	drafts := newFakeDrafts(draft)
	rel := newFakeRel()
	coord := commit.NewCoordinator(drafts, rel, newTestRegistry(t), newFakeLocker())
	owner := domain.Owner{UserID: "usr_A"}

	first, err := coord.Commit(context.Background(), "drf_2", owner)
	if err != nil {
		t.Fatalf("first Commit() error = %v", err)
	}

	// Replaying after the draft was deleted must still resolve idempotently
	// via the relational store's unique draftId, not the draft store.
	second, err := coord.Commit(context.Background(), "drf_2", owner)
	if err != nil {
		t.Fatalf("second Commit() error = %v", err)
	}
	if second.Status != domain.CommitStatusAlreadyCommitted {
		t.Fatalf("expected ALREADY_COMMITTED, got %s", second.Status)
	}
	if second.ProjectID != first.ProjectID || second.ConfigID != first.ConfigID {
		t.Fatalf("expected identical ids across replay, got %+v vs %+v", first, second)
	}
}

func TestCoordinator_CommitBusyLockReturnsInProgress(t *testing.T) {
	draft := newTestDraft(t, "drf_3")
	drafts := newFakeDrafts(draft)
	rel := newFakeRel()
	locker := newFakeLocker()
	locker.denyAcquire = true
	coord := commit.NewCoordinator(drafts, rel, newTestRegistry(t), locker)

	_, err := coord.Commit(context.Background(), "drf_3", domain.Owner{UserID: "usr_A"})
	if !errors.Is(err, domain.ErrCommitInProgress) {
		t.Fatalf("expected ErrCommitInProgress, got %v", err)
	}
}

func TestCoordinator_CommitMissingDraftReturnsNotFound(t *testing.T) {
	drafts := newFakeDrafts(newTestDraft(t, "drf_other"))
	rel := newFakeRel()
	coord := commit.NewCoordinator(drafts, rel, newTestRegistry(t), newFakeLocker())

	_, err := coord.Commit(context.Background(), "drf_missing", domain.Owner{UserID: "usr_A"})
	var notFound *domain.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestCoordinator_CommitExpiredDraftReturnsExpired(t *testing.T) {
	draft := domain.NewDraft("drf_exp", domain.NewBrandProfile(1, "Acme", "tech", "", nil), domain.GeneratorInfo{}, domain.DraftMeta{}, 1, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))
	drafts := newFakeDrafts(draft)
	rel := newFakeRel()
	coord := commit.NewCoordinator(drafts, rel, newTestRegistry(t), newFakeLocker(), commit.WithClock(func() time.Time {
		return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	}))

	_, err := coord.Commit(context.Background(), "drf_exp", domain.Owner{UserID: "usr_A"})
	if !errors.Is(err, domain.ErrDraftExpired) {
		t.Fatalf("expected ErrDraftExpired, got %v", err)
	}
}

func TestCoordinator_ConcurrentCommitsYieldExactlyOneMigration(t *testing.T) {
	draft := newTestDraft(t, "drf_race")
	drafts := newFakeDrafts(draft)
	rel := newFakeRel()
	coord := commit.NewCoordinator(drafts, rel, newTestRegistry(t), newFakeLocker())

	const attempts = 20
	results := make([]domain.CommitResult, attempts)
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = coord.Commit(context.Background(), "drf_race", domain.Owner{UserID: "usr_A"})
		}(i)
	}
	wg.Wait()

	migrated := 0
	var projectID string
	for i, err := range errs {
		if err != nil {
			if errors.Is(err, domain.ErrCommitInProgress) {
				continue
			}
			t.Fatalf("unexpected error from attempt %d: %v", i, err)
		}
		if results[i].Status == domain.CommitStatusMigrated {
			migrated++
		}
		if projectID == "" {
			projectID = results[i].ProjectID
		} else if results[i].ProjectID != projectID {
			t.Fatalf("expected a single project id across all attempts, got %q and %q", projectID, results[i].ProjectID)
		}
	}
	if migrated != 1 {
		t.Fatalf("expected exactly one MIGRATED result, got %d", migrated)
	}
}

func TestCoordinator_StrictValidationAcceptsWellFormedConfig(t *testing.T) {
	draft := newTestDraft(t, "drf_strict_ok")
	drafts := newFakeDrafts(draft)
	rel := newFakeRel()
	coord := commit.NewCoordinator(drafts, rel, newTestRegistry(t), newFakeLocker(),
		commit.WithStrictValidation(validation.NewSiteConfigValidator()),
	)

	result, err := coord.Commit(context.Background(), "drf_strict_ok", domain.Owner{UserID: "usr_A"})
	if err != nil {
		t.Fatalf("Commit() with strict validation error = %v", err)
	}
	if result.Status != domain.CommitStatusMigrated {
		t.Fatalf("expected MIGRATED, got %s", result.Status)
	}
}
