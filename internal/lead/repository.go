package lead

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const collection = "leads"

// Repository persists leads in the document store.
type Repository struct {
	col *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	return &Repository{col: db.Collection(collection)}
}

func (r *Repository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "projectId", Value: 1}, {Key: "createdAt", Value: -1}}},
	})
	return err
}

func (r *Repository) Create(ctx context.Context, l *Lead) error {
	_, err := r.col.InsertOne(ctx, l)
	return err
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Lead, error) {
	var l Lead
	err := r.col.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&l)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *Repository) ListByProject(ctx context.Context, projectID string) ([]Lead, error) {
	cursor, err := r.col.Find(ctx,
		bson.D{{Key: "projectId", Value: projectID}},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}

	var leads []Lead
	if err := cursor.All(ctx, &leads); err != nil {
		return nil, err
	}
	return leads, nil
}

// UpdateStatus applies a dashboard status transition.
func (r *Repository) UpdateStatus(ctx context.Context, id string, status Status) error {
	res, err := r.col.UpdateByID(ctx, id, bson.D{
		{Key: "$set", Value: bson.D{{Key: "status", Value: status}}},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByProject removes all leads of a project (cascade delete).
func (r *Repository) DeleteByProject(ctx context.Context, projectID string) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.D{{Key: "projectId", Value: projectID}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
