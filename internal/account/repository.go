package account

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/koltukutsu/listele/internal/plan"
)

const collection = "accounts"

// Repository persists accounts in the document store.
type Repository struct {
	col *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	return &Repository{col: db.Collection(collection)}
}

// Ensure creates the account on first sign-in and returns it. Existing
// accounts are returned unchanged; the upsert makes concurrent first sign-ins
// safe.
func (r *Repository) Ensure(ctx context.Context, id, email, name string) (*Account, error) {
	now := time.Now().UTC()
	filter := bson.D{{Key: "_id", Value: id}}
	update := bson.D{
		{Key: "$setOnInsert", Value: bson.D{
			{Key: "email", Value: email},
			{Key: "name", Value: name},
			{Key: "tier", Value: plan.TierFree},
			{Key: "projectsCount", Value: int64(0)},
			{Key: "voiceCreditsUsed", Value: int64(0)},
			{Key: "createdAt", Value: now},
			{Key: "updatedAt", Value: now},
		}},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var acct Account
	if err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&acct); err != nil {
		return nil, err
	}
	return &acct, nil
}

// GetByID loads an account.
func (r *Repository) GetByID(ctx context.Context, id string) (*Account, error) {
	var acct Account
	err := r.col.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&acct)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &acct, nil
}

// SetPendingInvoice records the checkout correlation: which invoice id was
// sent to the gateway and which tier the customer is actually buying. The
// account holds at most one pending invoice, so a new checkout supersedes
// any earlier unfinished one; a callback for the superseded invoice no
// longer resolves to an account and is rejected as unknown.
func (r *Repository) SetPendingInvoice(ctx context.Context, id, invoiceID string, tier plan.Tier) error {
	res, err := r.col.UpdateByID(ctx, id, bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "pendingInvoiceId", Value: invoiceID},
			{Key: "pendingTier", Value: tier},
			{Key: "updatedAt", Value: time.Now().UTC()},
		}},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// FindByInvoiceID locates the account a webhook callback belongs to, whether
// the invoice is still pending or already applied (redelivery). An invoice
// superseded by a later checkout matches nothing: completing the older 3-D
// Secure page after starting a new checkout yields ErrNotFound here and the
// payment is not reconciled. Accepted while checkouts stay single-flight per
// account; a keyed pending-invoice collection would lift it.
func (r *Repository) FindByInvoiceID(ctx context.Context, invoiceID string) (*Account, error) {
	filter := bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "pendingInvoiceId", Value: invoiceID}},
		bson.D{{Key: "lastPaidInvoiceId", Value: invoiceID}},
	}}}

	var acct Account
	err := r.col.FindOne(ctx, filter).Decode(&acct)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &acct, nil
}

// ApplyPlan sets the tier and marks the invoice as processed in one write.
func (r *Repository) ApplyPlan(ctx context.Context, id string, tier plan.Tier, invoiceID string) error {
	res, err := r.col.UpdateByID(ctx, id, bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "tier", Value: tier},
			{Key: "lastPaidInvoiceId", Value: invoiceID},
			{Key: "updatedAt", Value: time.Now().UTC()},
		}},
		{Key: "$unset", Value: bson.D{
			{Key: "pendingInvoiceId", Value: ""},
			{Key: "pendingTier", Value: ""},
		}},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// IncProjectsCount adjusts the owned-project counter. The counter never goes
// below zero even if a delete races a failed create.
func (r *Repository) IncProjectsCount(ctx context.Context, id string, delta int64) error {
	res, err := r.col.UpdateByID(ctx, id, bson.D{
		{Key: "$inc", Value: bson.D{{Key: "projectsCount", Value: delta}}},
		{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: time.Now().UTC()}}},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	if delta < 0 {
		_, _ = r.col.UpdateOne(ctx,
			bson.D{{Key: "_id", Value: id}, {Key: "projectsCount", Value: bson.D{{Key: "$lt", Value: int64(0)}}}},
			bson.D{{Key: "$set", Value: bson.D{{Key: "projectsCount", Value: int64(0)}}}},
		)
	}
	return nil
}

// ConsumeVoiceCredits atomically increments usage only while it stays under
// the limit: the filter carries the ceiling, so two concurrent requests
// cannot both slip past the last credit. A limit of plan.Unlimited skips the
// ceiling.
func (r *Repository) ConsumeVoiceCredits(ctx context.Context, id string, amount, limit int64) error {
	filter := bson.D{{Key: "_id", Value: id}}
	if limit != plan.Unlimited {
		filter = append(filter, bson.E{
			Key:   "voiceCreditsUsed",
			Value: bson.D{{Key: "$lte", Value: limit - amount}},
		})
	}

	res, err := r.col.UpdateOne(ctx, filter, bson.D{
		{Key: "$inc", Value: bson.D{{Key: "voiceCreditsUsed", Value: amount}}},
		{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: time.Now().UTC()}}},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// Either the account is gone or the ceiling blocked the increment.
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return getErr
		}
		return ErrLimitExceeded
	}
	return nil
}

// Delete removes the account document only. Callers run the project
// service's owner cascade first, so a cascade failure leaves the account
// intact and the deletion retryable.
func (r *Repository) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
