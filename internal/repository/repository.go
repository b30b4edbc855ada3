package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"nutriplan/nutrition-app/internal/domain"
)

// Error constants for the repository layer.
var (
	ErrNotFound      = RepositoryError("not found")
	ErrUpdateFailed  = RepositoryError("update failed")
	ErrStaleRevision = RepositoryError("stale profile revision")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with account data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// ProfileRepository stores the nutrition profile per user. Saving bumps
// the profile revision so in-flight plan writes based on the old profile
// can be rejected.
type ProfileRepository interface {
	// Save upserts the profile and returns the new revision number.
	Save(ctx context.Context, userID primitive.ObjectID, profile *domain.UserProfile) (int64, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.UserProfile, error)
}

// PlanRepository stores the current generated plan per user.
type PlanRepository interface {
	// Upsert writes the plan only if its ProfileRevision still matches the
	// stored profile's revision recorded at write time. A plan generated
	// against an older revision returns ErrStaleRevision.
	Upsert(ctx context.Context, plan *domain.StoredPlan) error
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.StoredPlan, error)
	Delete(ctx context.Context, userID primitive.ObjectID) error
}
