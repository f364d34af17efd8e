// Package account holds the tenant account document and its repository.
package account

import (
	"time"

	"github.com/koltukutsu/listele/internal/plan"
)

// Account is one tenant. The document id is the opaque identity-provider uid.
type Account struct {
	ID               string    `bson:"_id" json:"id"`
	Email            string    `bson:"email" json:"email"`
	Name             string    `bson:"name,omitempty" json:"name,omitempty"`
	Tier             plan.Tier `bson:"tier" json:"tier"`
	ProjectsCount    int64     `bson:"projectsCount" json:"projectsCount"`
	VoiceCreditsUsed int64     `bson:"voiceCreditsUsed" json:"voiceCreditsUsed"`

	// Checkout correlation. PendingInvoiceID and PendingTier are written when
	// a checkout is initiated and read back by the payment webhook, so the
	// purchased plan is the one that gets applied. LastPaidInvoiceID makes
	// webhook redelivery a no-op.
	PendingInvoiceID  string    `bson:"pendingInvoiceId,omitempty" json:"-"`
	PendingTier       plan.Tier `bson:"pendingTier,omitempty" json:"-"`
	LastPaidInvoiceID string    `bson:"lastPaidInvoiceId,omitempty" json:"-"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
