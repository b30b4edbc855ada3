package mongo

import (
	"context"
	"errors"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"nutriplan/nutrition-app/internal/domain"
	"nutriplan/nutrition-app/internal/repository"
)

const planCollectionName = "plans"

// mongoPlanRepository implements repository.PlanRepository using MongoDB.
type mongoPlanRepository struct {
	collection *mongo.Collection
}

// NewMongoPlanRepository creates a new instance of mongoPlanRepository.
func NewMongoPlanRepository(db *mongo.Database) repository.PlanRepository {
	return &mongoPlanRepository{
		collection: db.Collection(planCollectionName),
	}
}

// Upsert writes the plan, conditioned on its profile revision being at
// least as new as the stored plan's. A write from a superseded profile
// generation does not match the filter; the resulting attempted insert
// trips the unique userId index, which is reported as ErrStaleRevision.
func (r *mongoPlanRepository) Upsert(ctx context.Context, plan *domain.StoredPlan) error {
	plan.UpdatedAt = time.Now().UTC()

	filter := bson.M{
		"userId":          plan.UserID,
		"profileRevision": bson.M{"$lte": plan.ProfileRevision},
	}
	update := bson.M{"$set": bson.M{
		"profileRevision": plan.ProfileRevision,
		"data":            plan.Data,
		"updatedAt":       plan.UpdatedAt,
	}}

	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrStaleRevision
		}
		return err
	}
	return nil
}

// GetByUserID retrieves the current plan for a user.
func (r *mongoPlanRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.StoredPlan, error) {
	var plan domain.StoredPlan
	filter := bson.M{"userId": userID}

	err := r.collection.FindOne(ctx, filter).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// Delete removes the stored plan for a user.
func (r *mongoPlanRepository) Delete(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"userId": userID})
	return err
}

// EnsurePlanIndexes creates necessary indexes for the plans collection.
// The unique userId index also backs the stale-revision write guard.
func EnsurePlanIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Printf("WARN: failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
