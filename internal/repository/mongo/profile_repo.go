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

const profileCollectionName = "profiles"

// profileDocument wraps the profile with its owning user. One profile
// per user; saves replace the previous document. Revision lives at the
// document top level so the profile body and the counter can be updated
// in a single operation without a path conflict.
type profileDocument struct {
	UserID    primitive.ObjectID `bson:"userId"`
	Revision  int64              `bson:"revision"`
	Profile   domain.UserProfile `bson:"profile"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

// mongoProfileRepository implements repository.ProfileRepository using MongoDB.
type mongoProfileRepository struct {
	collection *mongo.Collection
}

// NewMongoProfileRepository creates a new instance of mongoProfileRepository.
func NewMongoProfileRepository(db *mongo.Database) repository.ProfileRepository {
	return &mongoProfileRepository{
		collection: db.Collection(profileCollectionName),
	}
}

// Save upserts the profile for the user, incrementing the stored revision
// atomically. The returned revision identifies this profile generation;
// plan writes carry it so superseded generations can be rejected.
func (r *mongoProfileRepository) Save(ctx context.Context, userID primitive.ObjectID, profile *domain.UserProfile) (int64, error) {
	filter := bson.M{"userId": userID}

	// Revision is owned by the store, not the caller.
	p := *profile
	p.Revision = 0

	update := bson.M{
		"$set": bson.M{
			"profile":   p,
			"updatedAt": time.Now().UTC(),
		},
		"$inc": bson.M{"revision": 1},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc profileDocument
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if err != nil {
		return 0, err
	}
	return doc.Revision, nil
}

// GetByUserID retrieves the profile for a user.
func (r *mongoProfileRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.UserProfile, error) {
	var doc profileDocument
	filter := bson.M{"userId": userID}

	err := r.collection.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	doc.Profile.Revision = doc.Revision
	return &doc.Profile, nil
}

// EnsureProfileIndexes creates necessary indexes for the profiles collection.
func EnsureProfileIndexes(ctx context.Context, collection *mongo.Collection) {
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
