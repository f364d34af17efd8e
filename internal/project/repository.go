package project

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const collection = "projects"

// Repository persists projects in the document store.
type Repository struct {
	col *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	return &Repository{col: db.Collection(collection)}
}

// EnsureIndexes creates the unique slug index. Two concurrent creations with
// the same derived slug now fail loudly (duplicate key) instead of colliding
// silently; the service retries with a random suffix.
func (r *Repository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "ownerId", Value: 1}},
		},
	})
	return err
}

// Create inserts the project. A duplicate slug maps to ErrSlugTaken.
func (r *Repository) Create(ctx context.Context, p *Project) error {
	_, err := r.col.InsertOne(ctx, p)
	if mongo.IsDuplicateKeyError(err) {
		return ErrSlugTaken
	}
	return err
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Project, error) {
	return r.findOne(ctx, bson.D{{Key: "_id", Value: id}})
}

// GetPublishedBySlug resolves a public slug. Drafts and paused pages are
// invisible here; an unpublished slug is a NotFound, same as an unknown one.
func (r *Repository) GetPublishedBySlug(ctx context.Context, slug string) (*Project, error) {
	return r.findOne(ctx, bson.D{
		{Key: "slug", Value: slug},
		{Key: "status", Value: StatusPublished},
	})
}

func (r *Repository) ListByOwner(ctx context.Context, ownerID string) ([]Project, error) {
	cursor, err := r.col.Find(ctx,
		bson.D{{Key: "ownerId", Value: ownerID}},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}

	var projects []Project
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *Repository) UpdateStatus(ctx context.Context, id string, status Status) error {
	res, err := r.col.UpdateByID(ctx, id, bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "status", Value: status},
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

func (r *Repository) UpdateConfig(ctx context.Context, id string, cfg Config) error {
	res, err := r.col.UpdateByID(ctx, id, bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "config", Value: cfg},
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

// RecordVisit bumps the visit counter and recomputes the conversion rate in
// a single pipeline update, so concurrent visits and signups cannot leave a
// stale stored rate. Rate is defined as 0 while visits is 0.
func (r *Repository) RecordVisit(ctx context.Context, id string) error {
	return r.bumpStats(ctx, id, "stats.visits", "stats.lastVisitAt")
}

// RecordSignup bumps the signup counter, same mechanics as RecordVisit.
func (r *Repository) RecordSignup(ctx context.Context, id string) error {
	return r.bumpStats(ctx, id, "stats.signups", "stats.lastSignupAt")
}

func (r *Repository) bumpStats(ctx context.Context, id, counterField, stampField string) error {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$set", Value: bson.D{
			{Key: counterField, Value: bson.D{{Key: "$add", Value: bson.A{
				bson.D{{Key: "$ifNull", Value: bson.A{"$" + counterField, 0}}},
				1,
			}}}},
			{Key: stampField, Value: "$$NOW"},
		}}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "stats.conversionRate", Value: bson.D{{Key: "$cond", Value: bson.A{
				bson.D{{Key: "$gt", Value: bson.A{
					bson.D{{Key: "$ifNull", Value: bson.A{"$stats.visits", 0}}},
					0,
				}}},
				bson.D{{Key: "$multiply", Value: bson.A{
					bson.D{{Key: "$divide", Value: bson.A{
						bson.D{{Key: "$ifNull", Value: bson.A{"$stats.signups", 0}}},
						"$stats.visits",
					}}},
					100,
				}}},
				0,
			}}}},
		}}},
	}

	res, err := r.col.UpdateByID(ctx, id, pipeline)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) findOne(ctx context.Context, filter bson.D) (*Project, error) {
	var p Project
	err := r.col.FindOne(ctx, filter).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
