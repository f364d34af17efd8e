package project_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koltukutsu/listele/internal/account"
	"github.com/koltukutsu/listele/internal/entitlement"
	"github.com/koltukutsu/listele/internal/plan"
	"github.com/koltukutsu/listele/internal/project"
)

type fakeStore struct {
	mu       sync.Mutex
	byID     map[string]project.Project
	slugs    map[string]string
	failSlug string // slug that reports a duplicate once
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		byID:  make(map[string]project.Project),
		slugs: make(map[string]string),
	}
}

func (f *fakeStore) Create(ctx context.Context, p *project.Project) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, taken := f.slugs[p.Slug]; taken || p.Slug == f.failSlug {
		f.failSlug = ""
		return project.ErrSlugTaken
	}
	f.byID[p.ID] = *p
	f.slugs[p.Slug] = p.ID
	return nil
}

func (f *fakeStore) GetByID(ctx context.Context, id string) (*project.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byID[id]
	if !ok {
		return nil, project.ErrNotFound
	}
	return &p, nil
}

func (f *fakeStore) ListByOwner(ctx context.Context, ownerID string) ([]project.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []project.Project
	for _, p := range f.byID {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateStatus(ctx context.Context, id string, status project.Status) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byID[id]
	if !ok {
		return project.ErrNotFound
	}
	p.Status = status
	f.byID[id] = p
	return nil
}

func (f *fakeStore) UpdateConfig(ctx context.Context, id string, cfg project.Config) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byID[id]
	if !ok {
		return project.ErrNotFound
	}
	p.Config = cfg
	f.byID[id] = p
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byID[id]
	if !ok {
		return project.ErrNotFound
	}
	delete(f.slugs, p.Slug)
	delete(f.byID, id)
	return nil
}

type fakeAccounts struct {
	mu   sync.Mutex
	acct account.Account
}

func (f *fakeAccounts) GetByID(ctx context.Context, id string) (*account.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if id != f.acct.ID {
		return nil, account.ErrNotFound
	}
	a := f.acct
	return &a, nil
}

func (f *fakeAccounts) IncProjectsCount(ctx context.Context, id string, delta int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.acct.ProjectsCount += delta
	return nil
}

type fakeLeads struct {
	deleted map[string]int64
}

func (f *fakeLeads) DeleteByProject(ctx context.Context, projectID string) (int64, error) {
	if f.deleted == nil {
		f.deleted = make(map[string]int64)
	}
	f.deleted[projectID] = 3
	return 3, nil
}

func newService(acct account.Account) (*project.Service, *fakeStore, *fakeAccounts) {
	store := newFakeStore()
	accounts := &fakeAccounts{acct: acct}
	gate := entitlement.NewService(plan.Default())
	svc := project.NewService(store, accounts, &fakeLeads{}, gate, nil)
	return svc, store, accounts
}

func TestServiceCreate(t *testing.T) {
	t.Parallel()

	t.Run("creates draft with turkish slug", func(t *testing.T) {
		t.Parallel()
		svc, _, accounts := newService(account.Account{ID: "u1", Tier: plan.TierFree})

		p, err := svc.Create(context.Background(), "u1", project.Config{Title: "Çılgın Proje"})
		require.NoError(t, err)
		assert.Equal(t, "cilgin-proje", p.Slug)
		assert.Equal(t, project.StatusDraft, p.Status)
		assert.Equal(t, int64(1), accounts.acct.ProjectsCount)
	})

	t.Run("limit exceeded creates nothing", func(t *testing.T) {
		t.Parallel()
		svc, store, accounts := newService(account.Account{ID: "u1", Tier: plan.TierFree, ProjectsCount: 2})

		_, err := svc.Create(context.Background(), "u1", project.Config{Title: "Üçüncü"})
		require.ErrorIs(t, err, entitlement.ErrLimitExceeded)
		assert.Empty(t, store.byID)
		assert.Equal(t, int64(2), accounts.acct.ProjectsCount)
	})

	t.Run("unlimited tier ignores counter", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newService(account.Account{ID: "u1", Tier: plan.TierUnlimited, ProjectsCount: 500})

		_, err := svc.Create(context.Background(), "u1", project.Config{Title: "Bir Tane Daha"})
		assert.NoError(t, err)
	})

	t.Run("slug collision retried with suffix", func(t *testing.T) {
		t.Parallel()
		svc, store, _ := newService(account.Account{ID: "u1", Tier: plan.TierPro})
		store.failSlug = "proje"

		p, err := svc.Create(context.Background(), "u1", project.Config{Title: "Proje"})
		require.NoError(t, err)
		assert.Regexp(t, `^proje-[a-z0-9]{6}$`, p.Slug)
	})

	t.Run("unknown account", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newService(account.Account{ID: "u1", Tier: plan.TierFree})

		_, err := svc.Create(context.Background(), "ghost", project.Config{Title: "X"})
		assert.ErrorIs(t, err, account.ErrNotFound)
	})
}

func TestServiceLifecycle(t *testing.T) {
	t.Parallel()

	t.Run("publish then pause", func(t *testing.T) {
		t.Parallel()
		svc, store, _ := newService(account.Account{ID: "u1", Tier: plan.TierFree})
		p, err := svc.Create(context.Background(), "u1", project.Config{Title: "Sayfa"})
		require.NoError(t, err)

		require.NoError(t, svc.Publish(context.Background(), "u1", p.ID))
		got, _ := store.GetByID(context.Background(), p.ID)
		assert.Equal(t, project.StatusPublished, got.Status)

		require.NoError(t, svc.Pause(context.Background(), "u1", p.ID))
		got, _ = store.GetByID(context.Background(), p.ID)
		assert.Equal(t, project.StatusPaused, got.Status)
	})

	t.Run("foreign project forbidden", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newService(account.Account{ID: "u1", Tier: plan.TierFree})
		p, err := svc.Create(context.Background(), "u1", project.Config{Title: "Sayfa"})
		require.NoError(t, err)

		err = svc.Publish(context.Background(), "intruder", p.ID)
		assert.ErrorIs(t, err, project.ErrForbidden)
	})

	t.Run("account deletion removes every owned project and its leads", func(t *testing.T) {
		t.Parallel()
		store := newFakeStore()
		accounts := &fakeAccounts{acct: account.Account{ID: "u1", Tier: plan.TierPro}}
		leads := &fakeLeads{}
		svc := project.NewService(store, accounts, leads, entitlement.NewService(plan.Default()), nil)

		p1, err := svc.Create(context.Background(), "u1", project.Config{Title: "Birinci"})
		require.NoError(t, err)
		p2, err := svc.Create(context.Background(), "u1", project.Config{Title: "İkinci"})
		require.NoError(t, err)

		require.NoError(t, svc.DeleteAllForOwner(context.Background(), "u1"))

		assert.Empty(t, store.byID)
		assert.Contains(t, leads.deleted, p1.ID)
		assert.Contains(t, leads.deleted, p2.ID)
	})

	t.Run("delete cascades and decrements", func(t *testing.T) {
		t.Parallel()
		svc, store, accounts := newService(account.Account{ID: "u1", Tier: plan.TierFree})
		p, err := svc.Create(context.Background(), "u1", project.Config{Title: "Gidecek"})
		require.NoError(t, err)
		require.Equal(t, int64(1), accounts.acct.ProjectsCount)

		require.NoError(t, svc.Delete(context.Background(), "u1", p.ID))
		_, err = store.GetByID(context.Background(), p.ID)
		assert.ErrorIs(t, err, project.ErrNotFound)
		assert.Equal(t, int64(0), accounts.acct.ProjectsCount)
	})
}
