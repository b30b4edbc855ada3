package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"nutriplan/nutrition-app/internal/calc"
	"nutriplan/nutrition-app/internal/domain"
	"nutriplan/nutrition-app/internal/repository"
)

// ProfileService manages the user's nutrition profile and its derived
// calculation. Every save produces a new profile revision; any plan fetch
// still in flight for an older revision is discarded at commit time.
type ProfileService interface {
	// Save validates and stores the profile, returning its new revision
	// and the freshly computed calculation.
	Save(ctx context.Context, userID primitive.ObjectID, profile *domain.UserProfile) (*domain.UserProfile, domain.CalculationResult, error)

	// Get returns the stored profile with its calculation.
	Get(ctx context.Context, userID primitive.ObjectID) (*domain.UserProfile, domain.CalculationResult, error)

	// Preview computes a calculation without persisting anything, for
	// anonymous or what-if use.
	Preview(profile *domain.UserProfile) (domain.CalculationResult, error)
}

type profileService struct {
	profileRepo repository.ProfileRepository
}

// NewProfileService creates a new instance of profileService.
func NewProfileService(profileRepo repository.ProfileRepository) ProfileService {
	return &profileService{profileRepo: profileRepo}
}

func (s *profileService) Save(ctx context.Context, userID primitive.ObjectID, profile *domain.UserProfile) (*domain.UserProfile, domain.CalculationResult, error) {
	if err := profile.Validate(); err != nil {
		return nil, domain.CalculationResult{}, err
	}

	revision, err := s.profileRepo.Save(ctx, userID, profile)
	if err != nil {
		return nil, domain.CalculationResult{}, err
	}
	profile.Revision = revision

	return profile, calc.Calculate(profile), nil
}

func (s *profileService) Get(ctx context.Context, userID primitive.ObjectID) (*domain.UserProfile, domain.CalculationResult, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, domain.CalculationResult{}, err
	}
	return profile, calc.Calculate(profile), nil
}

func (s *profileService) Preview(profile *domain.UserProfile) (domain.CalculationResult, error) {
	if err := profile.Validate(); err != nil {
		return domain.CalculationResult{}, err
	}
	return calc.Calculate(profile), nil
}
