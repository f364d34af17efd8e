package billing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/koltukutsu/listele/internal/account"
	"github.com/koltukutsu/listele/internal/plan"
)

// AccountStore is the slice of the account repository billing needs.
type AccountStore interface {
	GetByID(ctx context.Context, id string) (*account.Account, error)
	SetPendingInvoice(ctx context.Context, id, invoiceID string, tier plan.Tier) error
	FindByInvoiceID(ctx context.Context, invoiceID string) (*account.Account, error)
	ApplyPlan(ctx context.Context, id string, tier plan.Tier, invoiceID string) error
}

// Gateway abstracts the Sipay client for tests.
type Gateway interface {
	PaySmart3D(ctx context.Context, req CheckoutRequest) ([]byte, error)
	VerifyWebhookHash(invoiceID, status, netAmount, gotHash string) error
}

// WebhookCallback is the form-encoded payload Sipay posts back.
type WebhookCallback struct {
	InvoiceID string
	Status    string
	NetAmount string
	HashKey   string
}

const webhookStatusSuccess = "success"

// fallbackTier is applied when a successful payment arrives for an invoice
// with no recorded pending tier (pre-dating the pending-tier field). This is
// the legacy behavior where every payment upgraded to the same fixed plan.
const fallbackTier = plan.TierPro

// Service implements checkout initiation and webhook reconciliation.
type Service struct {
	gateway  Gateway
	accounts AccountStore
	catalog  plan.Catalog
	log      *slog.Logger
}

func NewService(gateway Gateway, accounts AccountStore, catalog plan.Catalog, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{gateway: gateway, accounts: accounts, catalog: catalog, log: log}
}

// CardDetails are passed through to the gateway and never persisted.
type CardDetails struct {
	HolderName  string
	Number      string
	ExpiryMonth string
	ExpiryYear  string
	CVV         string
}

// InitiateCheckout starts a 3-D Secure payment for the given tier and
// returns the provider's HTML verbatim. The generated invoice id and the
// intended tier are persisted on the account BEFORE the gateway call, so the
// webhook can both correlate the callback and know which plan was bought.
//
// Not retried on failure: a blind retry would reuse or regenerate invoice
// ids against an unknown gateway state. Retry is a user action.
func (s *Service) InitiateCheckout(ctx context.Context, accountID string, tier plan.Tier, card CardDetails, installments int) ([]byte, error) {
	p, err := s.catalog.ByTier(tier)
	if err != nil {
		return nil, err
	}

	acct, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if installments < 1 {
		installments = 1
	}

	invoiceID := newInvoiceID()
	if err := s.accounts.SetPendingInvoice(ctx, acct.ID, invoiceID, tier); err != nil {
		return nil, err
	}

	html, err := s.gateway.PaySmart3D(ctx, CheckoutRequest{
		InvoiceID:     invoiceID,
		Total:         formatAmount(p.Price),
		Installments:  installments,
		Currency:      "TRY",
		HolderName:    card.HolderName,
		CardNumber:    card.Number,
		ExpiryMonth:   card.ExpiryMonth,
		ExpiryYear:    card.ExpiryYear,
		CVV:           card.CVV,
		CustomerName:  acct.Name,
		CustomerEmail: acct.Email,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("checkout initiated",
		slog.String("account_id", acct.ID),
		slog.String("invoice_id", invoiceID),
		slog.String("tier", string(tier)),
	)
	return html, nil
}

// HandleWebhook verifies and applies a payment callback.
//
// Order matters: the hash check runs before anything else and a mismatch
// applies no state change. Redelivery of an already-applied invoice is a
// no-op success.
func (s *Service) HandleWebhook(ctx context.Context, cb WebhookCallback) error {
	if err := s.gateway.VerifyWebhookHash(cb.InvoiceID, cb.Status, cb.NetAmount, cb.HashKey); err != nil {
		return err
	}

	if cb.Status != webhookStatusSuccess {
		// Failed or cancelled payment: acknowledged, nothing to reconcile.
		s.log.Info("non-success payment callback",
			slog.String("invoice_id", cb.InvoiceID),
			slog.String("status", cb.Status),
		)
		return nil
	}

	acct, err := s.accounts.FindByInvoiceID(ctx, cb.InvoiceID)
	if errors.Is(err, account.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrUnknownInvoice, cb.InvoiceID)
	}
	if err != nil {
		return err
	}

	if acct.LastPaidInvoiceID == cb.InvoiceID {
		// Redelivered callback; the plan is already applied.
		s.log.Info("duplicate payment callback ignored",
			slog.String("invoice_id", cb.InvoiceID),
			slog.String("account_id", acct.ID),
		)
		return nil
	}

	tier := acct.PendingTier
	if tier == "" || !s.catalog.Valid(tier) {
		s.log.Warn("paid invoice has no pending tier, applying fallback",
			slog.String("invoice_id", cb.InvoiceID),
			slog.String("account_id", acct.ID),
			slog.String("fallback", string(fallbackTier)),
		)
		tier = fallbackTier
	}

	if err := s.accounts.ApplyPlan(ctx, acct.ID, tier, cb.InvoiceID); err != nil {
		return err
	}

	s.log.Info("plan applied",
		slog.String("account_id", acct.ID),
		slog.String("invoice_id", cb.InvoiceID),
		slog.String("tier", string(tier)),
	)
	return nil
}

// newInvoiceID builds a time-prefixed invoice id. The random tail removes
// the collision window two same-millisecond checkouts would otherwise have.
func newInvoiceID() string {
	return fmt.Sprintf("LST%d%s",
		time.Now().UnixMilli(),
		strings.ToUpper(uuid.NewString()[:8]),
	)
}

func formatAmount(price float64) string {
	return fmt.Sprintf("%.2f", price)
}
