package project

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/koltukutsu/listele/internal/account"
	"github.com/koltukutsu/listele/pkg/slug"
)

// Store is the persistence surface the service needs.
type Store interface {
	Create(ctx context.Context, p *Project) error
	GetByID(ctx context.Context, id string) (*Project, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Project, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
	UpdateConfig(ctx context.Context, id string, cfg Config) error
	Delete(ctx context.Context, id string) error
}

// AccountStore is the slice of the account repository the service uses.
type AccountStore interface {
	GetByID(ctx context.Context, id string) (*account.Account, error)
	IncProjectsCount(ctx context.Context, id string, delta int64) error
}

// LeadStore removes a project's leads on cascade delete.
type LeadStore interface {
	DeleteByProject(ctx context.Context, projectID string) (int64, error)
}

// Gate is the entitlement check applied before creation.
type Gate interface {
	CanCreateProject(acct *account.Account) error
}

// Service implements the project lifecycle.
type Service struct {
	store    Store
	accounts AccountStore
	leads    LeadStore
	gate     Gate
	log      *slog.Logger
}

func NewService(store Store, accounts AccountStore, leads LeadStore, gate Gate, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{store: store, accounts: accounts, leads: leads, gate: gate, log: log}
}

// Create makes a new draft project for the owner. The entitlement check runs
// before any write; on quota exhaustion nothing is persisted. The slug is
// derived from the title; a collision on the unique index is retried once
// with a random suffix.
func (s *Service) Create(ctx context.Context, ownerID string, cfg Config) (*Project, error) {
	acct, err := s.accounts.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if err := s.gate.CanCreateProject(acct); err != nil {
		return nil, err
	}

	pageSlug := slug.Make(cfg.Title)
	if pageSlug == "" {
		pageSlug = slug.Make("proje", slug.WithSuffix(6))
	}

	now := time.Now().UTC()
	p := &Project{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Slug:      pageSlug,
		Status:    StatusDraft,
		Config:    cfg,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.Create(ctx, p); err != nil {
		if !errors.Is(err, ErrSlugTaken) {
			return nil, err
		}
		p.Slug = slug.Make(cfg.Title, slug.WithSuffix(6))
		if err := s.store.Create(ctx, p); err != nil {
			return nil, err
		}
	}

	// Counter update after the insert. Not transactional with it: a crash in
	// between undercounts by one, which the next reconciliation corrects.
	if err := s.accounts.IncProjectsCount(ctx, ownerID, 1); err != nil {
		s.log.Error("project created but counter increment failed",
			slog.String("project_id", p.ID),
			slog.Any("error", err),
		)
	}

	return p, nil
}

// Get returns the project if the caller owns it.
func (s *Service) Get(ctx context.Context, ownerID, projectID string) (*Project, error) {
	return s.getOwned(ctx, ownerID, projectID)
}

// List returns the owner's projects, newest first.
func (s *Service) List(ctx context.Context, ownerID string) ([]Project, error) {
	return s.store.ListByOwner(ctx, ownerID)
}

// Publish makes the page publicly reachable at its slug.
func (s *Service) Publish(ctx context.Context, ownerID, projectID string) error {
	return s.setStatus(ctx, ownerID, projectID, StatusPublished)
}

// Pause hides a published page without losing its leads or stats.
func (s *Service) Pause(ctx context.Context, ownerID, projectID string) error {
	return s.setStatus(ctx, ownerID, projectID, StatusPaused)
}

// UpdateConfig replaces the page configuration blob.
func (s *Service) UpdateConfig(ctx context.Context, ownerID, projectID string, cfg Config) error {
	if _, err := s.getOwned(ctx, ownerID, projectID); err != nil {
		return err
	}
	return s.store.UpdateConfig(ctx, projectID, cfg)
}

// Delete removes the project, its leads, and decrements the owner's counter.
func (s *Service) Delete(ctx context.Context, ownerID, projectID string) error {
	if _, err := s.getOwned(ctx, ownerID, projectID); err != nil {
		return err
	}

	removed, err := s.leads.DeleteByProject(ctx, projectID)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, projectID); err != nil {
		return err
	}

	s.log.Info("project deleted",
		slog.String("project_id", projectID),
		slog.Int64("leads_removed", removed),
	)

	if err := s.accounts.IncProjectsCount(ctx, ownerID, -1); err != nil {
		s.log.Error("project deleted but counter decrement failed",
			slog.String("project_id", projectID),
			slog.Any("error", err),
		)
	}
	return nil
}

// DeleteAllForOwner cascades an account deletion over its projects.
func (s *Service) DeleteAllForOwner(ctx context.Context, ownerID string) error {
	projects, err := s.store.ListByOwner(ctx, ownerID)
	if err != nil {
		return err
	}
	for _, p := range projects {
		if _, err := s.leads.DeleteByProject(ctx, p.ID); err != nil {
			return err
		}
		if err := s.store.Delete(ctx, p.ID); err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
	}
	return nil
}

func (s *Service) setStatus(ctx context.Context, ownerID, projectID string, status Status) error {
	if _, err := s.getOwned(ctx, ownerID, projectID); err != nil {
		return err
	}
	return s.store.UpdateStatus(ctx, projectID, status)
}

func (s *Service) getOwned(ctx context.Context, ownerID, projectID string) (*Project, error) {
	p, err := s.store.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != ownerID {
		return nil, ErrForbidden
	}
	return p, nil
}
