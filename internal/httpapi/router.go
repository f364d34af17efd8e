// Package httpapi wires the HTTP surface: the public landing pages, the
// dashboard API behind the identity proxy, and the payment callbacks.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/koltukutsu/listele/internal/billing"
	"github.com/koltukutsu/listele/internal/lead"
	"github.com/koltukutsu/listele/internal/plan"
	"github.com/koltukutsu/listele/internal/project"
	"github.com/koltukutsu/listele/pkg/ratelimit"
)

// ProjectService is the project lifecycle surface the handlers need.
type ProjectService interface {
	Create(ctx context.Context, ownerID string, cfg project.Config) (*project.Project, error)
	Get(ctx context.Context, ownerID, projectID string) (*project.Project, error)
	List(ctx context.Context, ownerID string) ([]project.Project, error)
	Publish(ctx context.Context, ownerID, projectID string) error
	Pause(ctx context.Context, ownerID, projectID string) error
	UpdateConfig(ctx context.Context, ownerID, projectID string, cfg project.Config) error
	Delete(ctx context.Context, ownerID, projectID string) error
	DeleteAllForOwner(ctx context.Context, ownerID string) error
}

// LeadService covers public capture and dashboard lead management.
type LeadService interface {
	Capture(ctx context.Context, projectID string, sub lead.Submission, meta lead.CaptureMeta) (*lead.Lead, error)
	ListForProject(ctx context.Context, ownerID, projectID string) ([]lead.Lead, error)
	SetStatus(ctx context.Context, ownerID, leadID string, status lead.Status) error
}

// BillingService starts checkouts and reconciles payment callbacks.
type BillingService interface {
	InitiateCheckout(ctx context.Context, accountID string, tier plan.Tier, card billing.CardDetails, installments int) ([]byte, error)
	HandleWebhook(ctx context.Context, cb billing.WebhookCallback) error
}

// PublicStore resolves published pages by slug and records visits.
type PublicStore interface {
	GetPublishedBySlug(ctx context.Context, slug string) (*project.Project, error)
	RecordVisit(ctx context.Context, id string) error
}

// Entitlements resolves tier ceilings for the handlers that gate on them.
type Entitlements interface {
	Limits(tier plan.Tier) (plan.Limits, error)
	VoiceCreditLimit(tier plan.Tier) (int64, error)
}

// Deps bundles everything the router serves from.
type Deps struct {
	Projects     ProjectService
	Leads        LeadService
	Billing      BillingService
	Accounts     Accounts
	Public       PublicStore
	Entitlements Entitlements

	// PublicBaseURL is the origin public pages live on, used for QR codes.
	PublicBaseURL string

	// CaptureLimiter rate-limits the public lead form. Nil disables limiting.
	CaptureLimiter *ratelimit.Limiter

	// Healthchecks run on /healthz, keyed by dependency name.
	Healthchecks map[string]func(context.Context) error

	Log *slog.Logger
}

// NewRouter builds the full route tree.
func NewRouter(d Deps) http.Handler {
	if d.Log == nil {
		d.Log = slog.Default()
	}
	h := &handlers{Deps: d}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.health)

	// Payment callbacks come straight from the provider, unauthenticated.
	r.Post("/api/payment/webhook", h.paymentWebhook)

	r.Group(func(r chi.Router) {
		if d.CaptureLimiter != nil {
			r.Use(ratelimit.Middleware(d.CaptureLimiter))
		}
		r.Post("/p/{projectID}/leads", h.captureLead)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(requireAccount(d.Accounts, d.Log))

		r.Post("/checkout", h.checkout)
		r.Post("/voice", h.consumeVoice)
		r.Delete("/account", h.deleteAccount)

		r.Route("/projects", func(r chi.Router) {
			r.Post("/", h.createProject)
			r.Get("/", h.listProjects)
			r.Route("/{projectID}", func(r chi.Router) {
				r.Get("/", h.getProject)
				r.Patch("/", h.updateProject)
				r.Delete("/", h.deleteProject)
				r.Post("/publish", h.publishProject)
				r.Post("/pause", h.pauseProject)
				r.Get("/leads", h.listLeads)
				r.Get("/qr", h.projectQR)
			})
		})

		r.Patch("/leads/{leadID}/status", h.setLeadStatus)
	})

	// Everything else is a public page slug.
	r.Get("/{slug}", h.publicPage)

	return r
}

type handlers struct {
	Deps
}
