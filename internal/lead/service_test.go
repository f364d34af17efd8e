package lead_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koltukutsu/listele/internal/account"
	"github.com/koltukutsu/listele/internal/entitlement"
	"github.com/koltukutsu/listele/internal/lead"
	"github.com/koltukutsu/listele/internal/plan"
	"github.com/koltukutsu/listele/internal/project"
)

type fakeLeadStore struct {
	mu    sync.Mutex
	leads map[string]lead.Lead
}

func newFakeLeadStore() *fakeLeadStore {
	return &fakeLeadStore{leads: make(map[string]lead.Lead)}
}

func (f *fakeLeadStore) Create(ctx context.Context, l *lead.Lead) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.leads[l.ID] = *l
	return nil
}

func (f *fakeLeadStore) GetByID(ctx context.Context, id string) (*lead.Lead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.leads[id]
	if !ok {
		return nil, lead.ErrNotFound
	}
	return &l, nil
}

func (f *fakeLeadStore) ListByProject(ctx context.Context, projectID string) ([]lead.Lead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []lead.Lead
	for _, l := range f.leads {
		if l.ProjectID == projectID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeLeadStore) UpdateStatus(ctx context.Context, id string, status lead.Status) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.leads[id]
	if !ok {
		return lead.ErrNotFound
	}
	l.Status = status
	f.leads[id] = l
	return nil
}

func (f *fakeLeadStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.leads)
}

type fakeProjects struct {
	mu      sync.Mutex
	project project.Project
	signups int64
}

func (f *fakeProjects) GetByID(ctx context.Context, id string) (*project.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if id != f.project.ID {
		return nil, project.ErrNotFound
	}
	p := f.project
	return &p, nil
}

func (f *fakeProjects) RecordSignup(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signups++
	f.project.Stats.Signups++
	if f.project.Stats.Visits > 0 {
		f.project.Stats.ConversionRate = float64(f.project.Stats.Signups) / float64(f.project.Stats.Visits) * 100
	} else {
		f.project.Stats.ConversionRate = 0
	}
	return nil
}

type fakeOwner struct {
	acct account.Account
}

func (f *fakeOwner) GetByID(ctx context.Context, id string) (*account.Account, error) {
	if id != f.acct.ID {
		return nil, account.ErrNotFound
	}
	a := f.acct
	return &a, nil
}

type fakeNotifier struct {
	mu    sync.Mutex
	sent  []string
	calls chan struct{}
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{calls: make(chan struct{}, 8)}
}

func (f *fakeNotifier) NotifyNewLead(ctx context.Context, ownerEmail, projectTitle string, l *lead.Lead) error {
	f.mu.Lock()
	f.sent = append(f.sent, ownerEmail)
	f.mu.Unlock()
	f.calls <- struct{}{}
	return nil
}

func fixture(email bool) (*lead.Service, *fakeLeadStore, *fakeProjects, *fakeNotifier) {
	store := newFakeLeadStore()
	projects := &fakeProjects{project: project.Project{
		ID:      "p1",
		OwnerID: "u1",
		Slug:    "sayfa",
		Status:  project.StatusPublished,
		Config: project.Config{
			Title:      "Sayfa",
			FormFields: project.FormFields{Name: true, Email: email, Phone: true},
		},
	}}
	owner := &fakeOwner{acct: account.Account{ID: "u1", Email: "owner@example.com", Tier: plan.TierFree}}
	notifier := newFakeNotifier()
	gate := entitlement.NewService(plan.Default())
	svc := lead.NewService(store, projects, owner, gate, notifier, nil)
	return svc, store, projects, notifier
}

func TestCaptureValidation(t *testing.T) {
	t.Parallel()

	t.Run("email disabled, phone only succeeds", func(t *testing.T) {
		t.Parallel()
		svc, store, _, _ := fixture(false)

		l, err := svc.Capture(context.Background(), "p1", lead.Submission{Phone: "+905551112233"}, lead.CaptureMeta{})
		require.NoError(t, err)
		assert.Equal(t, lead.StatusNew, l.Status)
		assert.Equal(t, 1, store.count())
	})

	t.Run("email disabled, all fields empty fails", func(t *testing.T) {
		t.Parallel()
		svc, store, _, _ := fixture(false)

		_, err := svc.Capture(context.Background(), "p1", lead.Submission{}, lead.CaptureMeta{})
		require.ErrorIs(t, err, lead.ErrValidation)
		assert.ErrorIs(t, err, lead.ErrEmptySubmission)
		assert.Zero(t, store.count())
	})

	t.Run("email enabled, missing email fails", func(t *testing.T) {
		t.Parallel()
		svc, store, _, _ := fixture(true)

		_, err := svc.Capture(context.Background(), "p1", lead.Submission{Name: "Ali"}, lead.CaptureMeta{})
		require.ErrorIs(t, err, lead.ErrValidation)
		assert.ErrorIs(t, err, lead.ErrEmailRequired)
		assert.Zero(t, store.count())
	})

	t.Run("malformed email fails even when optional", func(t *testing.T) {
		t.Parallel()
		svc, _, _, _ := fixture(false)

		_, err := svc.Capture(context.Background(), "p1", lead.Submission{Email: "not-an-email"}, lead.CaptureMeta{})
		assert.ErrorIs(t, err, lead.ErrInvalidEmail)
	})

	t.Run("whitespace-only fields are empty", func(t *testing.T) {
		t.Parallel()
		svc, _, _, _ := fixture(false)

		_, err := svc.Capture(context.Background(), "p1", lead.Submission{Name: "   "}, lead.CaptureMeta{})
		assert.ErrorIs(t, err, lead.ErrEmptySubmission)
	})
}

func TestCaptureFlow(t *testing.T) {
	t.Parallel()

	t.Run("persists lead and bumps counter", func(t *testing.T) {
		t.Parallel()
		svc, store, projects, _ := fixture(true)

		meta := lead.CaptureMeta{IP: "203.0.113.7", UserAgent: "Mozilla/5.0", Referrer: "https://x.com"}
		l, err := svc.Capture(context.Background(), "p1", lead.Submission{Email: "ali@example.com"}, meta)
		require.NoError(t, err)

		stored, err := store.GetByID(context.Background(), l.ID)
		require.NoError(t, err)
		assert.Equal(t, meta, stored.Meta)
		assert.Equal(t, int64(1), projects.signups)
	})

	t.Run("conversion rate defined with zero visits", func(t *testing.T) {
		t.Parallel()
		svc, _, projects, _ := fixture(true)

		for i := 0; i < 3; i++ {
			_, err := svc.Capture(context.Background(), "p1",
				lead.Submission{Email: "a@example.com"}, lead.CaptureMeta{})
			require.NoError(t, err, "submission %d", i+1)
		}
		assert.Equal(t, float64(0), projects.project.Stats.ConversionRate)
		assert.Equal(t, int64(3), projects.project.Stats.Signups)
	})

	t.Run("unknown project", func(t *testing.T) {
		t.Parallel()
		svc, _, _, _ := fixture(true)

		_, err := svc.Capture(context.Background(), "ghost", lead.Submission{Email: "a@example.com"}, lead.CaptureMeta{})
		assert.ErrorIs(t, err, project.ErrNotFound)
	})

	t.Run("unpublished project rejects capture", func(t *testing.T) {
		t.Parallel()
		svc, store, projects, _ := fixture(true)
		projects.project.Status = project.StatusDraft

		_, err := svc.Capture(context.Background(), "p1", lead.Submission{Email: "a@example.com"}, lead.CaptureMeta{})
		assert.ErrorIs(t, err, project.ErrNotFound)
		assert.Zero(t, store.count())
	})

	t.Run("submission cap enforced", func(t *testing.T) {
		t.Parallel()
		svc, store, projects, _ := fixture(true)
		projects.project.Stats.Signups = 75 // free tier cap

		_, err := svc.Capture(context.Background(), "p1", lead.Submission{Email: "a@example.com"}, lead.CaptureMeta{})
		assert.ErrorIs(t, err, entitlement.ErrLimitExceeded)
		assert.Zero(t, store.count())
	})

	t.Run("owner notified asynchronously", func(t *testing.T) {
		t.Parallel()
		svc, _, _, notifier := fixture(true)

		_, err := svc.Capture(context.Background(), "p1", lead.Submission{Email: "a@example.com"}, lead.CaptureMeta{})
		require.NoError(t, err)

		select {
		case <-notifier.calls:
		case <-time.After(time.Second):
			t.Fatal("owner notification not sent")
		}
		notifier.mu.Lock()
		defer notifier.mu.Unlock()
		assert.Equal(t, []string{"owner@example.com"}, notifier.sent)
	})
}

func TestSetStatus(t *testing.T) {
	t.Parallel()

	t.Run("owner can transition", func(t *testing.T) {
		t.Parallel()
		svc, store, _, _ := fixture(true)
		l, err := svc.Capture(context.Background(), "p1", lead.Submission{Email: "a@example.com"}, lead.CaptureMeta{})
		require.NoError(t, err)

		require.NoError(t, svc.SetStatus(context.Background(), "u1", l.ID, lead.StatusContacted))
		got, err := store.GetByID(context.Background(), l.ID)
		require.NoError(t, err)
		assert.Equal(t, lead.StatusContacted, got.Status)
	})

	t.Run("foreign owner forbidden", func(t *testing.T) {
		t.Parallel()
		svc, _, _, _ := fixture(true)
		l, err := svc.Capture(context.Background(), "p1", lead.Submission{Email: "a@example.com"}, lead.CaptureMeta{})
		require.NoError(t, err)

		err = svc.SetStatus(context.Background(), "intruder", l.ID, lead.StatusConverted)
		assert.ErrorIs(t, err, project.ErrForbidden)
	})

	t.Run("invalid status rejected", func(t *testing.T) {
		t.Parallel()
		svc, _, _, _ := fixture(true)

		err := svc.SetStatus(context.Background(), "u1", "whatever", lead.Status("spam"))
		assert.ErrorIs(t, err, lead.ErrValidation)
	})
}
