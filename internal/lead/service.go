package lead

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/koltukutsu/listele/internal/account"
	"github.com/koltukutsu/listele/internal/plan"
	"github.com/koltukutsu/listele/internal/project"
	"github.com/koltukutsu/listele/pkg/async"
)

// Store is the lead persistence surface the service needs.
type Store interface {
	Create(ctx context.Context, l *Lead) error
	GetByID(ctx context.Context, id string) (*Lead, error)
	ListByProject(ctx context.Context, projectID string) ([]Lead, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
}

// ProjectStore resolves the target project and bumps its signup counter.
type ProjectStore interface {
	GetByID(ctx context.Context, id string) (*project.Project, error)
	RecordSignup(ctx context.Context, id string) error
}

// AccountStore resolves the project owner for quota checks and notification.
type AccountStore interface {
	GetByID(ctx context.Context, id string) (*account.Account, error)
}

// Gate caps submissions per project by the owner's tier.
type Gate interface {
	CanAcceptSubmission(tier plan.Tier, currentSignups int64) error
}

// Notifier sends the new-lead email to the project owner.
type Notifier interface {
	NotifyNewLead(ctx context.Context, ownerEmail string, projectTitle string, l *Lead) error
}

// Service implements lead capture and dashboard lead management.
type Service struct {
	store    Store
	projects ProjectStore
	accounts AccountStore
	gate     Gate
	notifier Notifier // nil disables notifications
	log      *slog.Logger
}

func NewService(store Store, projects ProjectStore, accounts AccountStore, gate Gate, notifier Notifier, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		store:    store,
		projects: projects,
		accounts: accounts,
		gate:     gate,
		notifier: notifier,
		log:      log,
	}
}

// Capture validates and persists one signup, then bumps the project's signup
// counter. Validation is data-driven: which fields are required depends on
// the project's own form configuration. Nothing is written on a validation
// failure.
func (s *Service) Capture(ctx context.Context, projectID string, sub Submission, meta CaptureMeta) (*Lead, error) {
	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !p.IsPublished() {
		// Unpublished pages do not accept signups; indistinguishable from an
		// unknown project on purpose.
		return nil, project.ErrNotFound
	}

	sub = sub.trimmed()
	if err := validate(sub, p.Config.FormFields); err != nil {
		return nil, err
	}

	owner, err := s.accounts.GetByID(ctx, p.OwnerID)
	if err != nil {
		return nil, err
	}
	if err := s.gate.CanAcceptSubmission(owner.Tier, p.Stats.Signups); err != nil {
		return nil, err
	}

	l := &Lead{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		Name:      sub.Name,
		Email:     sub.Email,
		Phone:     sub.Phone,
		Meta:      meta,
		Status:    StatusNew,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.Create(ctx, l); err != nil {
		return nil, err
	}

	if err := s.projects.RecordSignup(ctx, projectID); err != nil {
		// The lead is saved; a failed counter bump only skews the displayed
		// stats until the next signup corrects the rate.
		s.log.Error("signup counter update failed",
			slog.String("project_id", projectID),
			slog.Any("error", err),
		)
	}

	if s.notifier != nil && owner.Email != "" {
		captured := *l
		title := p.Config.Title
		email := owner.Email
		async.Run(s.log, "lead-notification", func(ctx context.Context) error {
			return s.notifier.NotifyNewLead(ctx, email, title, &captured)
		})
	}

	return l, nil
}

// ListForProject returns a project's leads for the dashboard, after an
// ownership check.
func (s *Service) ListForProject(ctx context.Context, ownerID, projectID string) ([]Lead, error) {
	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != ownerID {
		return nil, project.ErrForbidden
	}
	return s.store.ListByProject(ctx, projectID)
}

// SetStatus applies a dashboard transition after an ownership check.
func (s *Service) SetStatus(ctx context.Context, ownerID, leadID string, status Status) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	l, err := s.store.GetByID(ctx, leadID)
	if err != nil {
		return err
	}
	p, err := s.projects.GetByID(ctx, l.ProjectID)
	if err != nil {
		return err
	}
	if p.OwnerID != ownerID {
		return project.ErrForbidden
	}
	return s.store.UpdateStatus(ctx, leadID, status)
}

func (sub Submission) trimmed() Submission {
	return Submission{
		Name:  strings.TrimSpace(sub.Name),
		Email: strings.TrimSpace(sub.Email),
		Phone: strings.TrimSpace(sub.Phone),
	}
}

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// validate enforces the project's form configuration: email is required only
// when the email field is enabled; otherwise at least one contact field must
// be present. Any provided email must look like one either way.
func validate(sub Submission, fields project.FormFields) error {
	if fields.Email {
		if sub.Email == "" {
			return fmt.Errorf("%w: %w", ErrValidation, ErrEmailRequired)
		}
	} else if sub.Name == "" && sub.Email == "" && sub.Phone == "" {
		return fmt.Errorf("%w: %w", ErrValidation, ErrEmptySubmission)
	}

	if sub.Email != "" && !emailRegex.MatchString(sub.Email) {
		return fmt.Errorf("%w: %w", ErrValidation, ErrInvalidEmail)
	}
	return nil
}
