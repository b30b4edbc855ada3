package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"

	"nutriplan/nutrition-app/internal/calc"
	"nutriplan/nutrition-app/internal/domain"
	"nutriplan/nutrition-app/internal/foodref"
	"nutriplan/nutrition-app/internal/genai"
	"nutriplan/nutrition-app/internal/repository"
	"nutriplan/nutrition-app/internal/storage"
)

// --- Error Definitions ---
var (
	// ErrEnrichmentUnavailable means no text-generation credentials are
	// configured. Calculations still work; AI content does not.
	ErrEnrichmentUnavailable = errors.New("AI enrichment unavailable: no API key configured")
	ErrMealNotFound          = errors.New("meal not found in current plan")
	ErrNoPlan                = errors.New("no plan generated yet")
	ErrPlanSuperseded        = errors.New("plan discarded: profile changed during generation")
)

// PlanService orchestrates AI plan generation: prompt building, the
// retrying call, response parsing, and persistence. Every operation
// records the profile revision it was generated from; a commit against a
// newer profile is rejected so slow responses cannot clobber fresh data.
type PlanService interface {
	GenerateInsight(ctx context.Context, userID primitive.ObjectID) (string, error)
	GenerateMealPlan(ctx context.Context, userID primitive.ObjectID) ([]domain.Meal, error)
	GenerateGuidance(ctx context.Context, userID primitive.ObjectID) (domain.Guidance, error)
	// GenerateFullPlan issues the three fetches above concurrently and
	// merges their disjoint fields. Slots that fail are left empty and
	// the joined error is returned alongside the partial plan; when every
	// slot fails the plan is nil.
	GenerateFullPlan(ctx context.Context, userID primitive.ObjectID) (*domain.StoredPlan, error)
	RegenerateMealPlan(ctx context.Context, userID primitive.ObjectID) ([]domain.Meal, error)
	RegenerateMeal(ctx context.Context, userID primitive.ObjectID, mealID string) (*domain.Meal, error)
	AdjustMeal(ctx context.Context, userID primitive.ObjectID, mealID, instruction string) (*domain.Meal, error)
	ModifyMealPlan(ctx context.Context, userID primitive.ObjectID, slot domain.MealSlot, foodType string) ([]domain.Meal, error)
	GetPlan(ctx context.Context, userID primitive.ObjectID) (*domain.StoredPlan, error)
	// ExportPlan archives the current plan to object storage and returns
	// a temporary download URL.
	ExportPlan(ctx context.Context, userID primitive.ObjectID) (string, error)
}

type planService struct {
	profileRepo repository.ProfileRepository
	planRepo    repository.PlanRepository
	executor    *genai.Executor
	foods       *foodref.Table
	archive     storage.PlanArchive
	now         func() time.Time
}

// NewPlanService creates a new instance of planService. A nil executor
// disables AI enrichment; operations then fail fast with
// ErrEnrichmentUnavailable. A nil archive disables plan export.
func NewPlanService(
	profileRepo repository.ProfileRepository,
	planRepo repository.PlanRepository,
	executor *genai.Executor,
	foods *foodref.Table,
	archive storage.PlanArchive,
) PlanService {
	return &planService{
		profileRepo: profileRepo,
		planRepo:    planRepo,
		executor:    executor,
		foods:       foods,
		archive:     archive,
		now:         time.Now,
	}
}

// loadContext fetches the profile and derives its calculation. Every
// generation starts here so the prompt and the commit share one revision.
func (s *planService) loadContext(ctx context.Context, userID primitive.ObjectID) (*domain.UserProfile, domain.CalculationResult, error) {
	if s.executor == nil {
		return nil, domain.CalculationResult{}, ErrEnrichmentUnavailable
	}
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, domain.CalculationResult{}, err
	}
	return profile, calc.Calculate(profile), nil
}

func (s *planService) GenerateInsight(ctx context.Context, userID primitive.ObjectID) (string, error) {
	profile, result, err := s.loadContext(ctx, userID)
	if err != nil {
		return "", err
	}

	raw, err := s.executor.Execute(ctx, buildInsightPrompt(profile, result))
	if err != nil {
		return "", err
	}
	insight, err := parseInsight(raw)
	if err != nil {
		return "", err
	}

	s.commit(ctx, userID, profile.Revision, func(data *domain.PlanData) {
		data.Insight = insight
	})
	return insight, nil
}

func (s *planService) GenerateMealPlan(ctx context.Context, userID primitive.ObjectID) ([]domain.Meal, error) {
	profile, result, err := s.loadContext(ctx, userID)
	if err != nil {
		return nil, err
	}

	meals, err := s.fetchMealPlan(ctx, profile, result, "")
	if err != nil {
		return nil, err
	}

	s.commit(ctx, userID, profile.Revision, func(data *domain.PlanData) {
		data.MealPlan = meals
	})
	return meals, nil
}

func (s *planService) GenerateGuidance(ctx context.Context, userID primitive.ObjectID) (domain.Guidance, error) {
	profile, result, err := s.loadContext(ctx, userID)
	if err != nil {
		return domain.Guidance{}, err
	}

	raw, err := s.executor.Execute(ctx, buildGuidancePrompt(profile, result))
	if err != nil {
		return domain.Guidance{}, err
	}
	guidance, err := parseGuidance(raw)
	if err != nil {
		return domain.Guidance{}, err
	}

	s.commit(ctx, userID, profile.Revision, func(data *domain.PlanData) {
		data.MergeGuidance(guidance)
	})
	return guidance, nil
}

// GenerateFullPlan runs the three modular fetches concurrently. A failure
// in one slot never cancels the others; whatever succeeded is persisted
// and returned together with the joined errors. When every slot fails the
// plan is nil and nothing is persisted.
func (s *planService) GenerateFullPlan(ctx context.Context, userID primitive.ObjectID) (*domain.StoredPlan, error) {
	profile, result, err := s.loadContext(ctx, userID)
	if err != nil {
		return nil, err
	}

	var (
		insight  string
		meals    []domain.Meal
		guidance domain.Guidance

		insightErr  error
		mealsErr    error
		guidanceErr error
	)

	var g errgroup.Group
	g.Go(func() error {
		raw, err := s.executor.Execute(ctx, buildInsightPrompt(profile, result))
		if err == nil {
			insight, err = parseInsight(raw)
		}
		insightErr = err
		return nil
	})
	g.Go(func() error {
		meals, mealsErr = s.fetchMealPlan(ctx, profile, result, "")
		return nil
	})
	g.Go(func() error {
		raw, err := s.executor.Execute(ctx, buildGuidancePrompt(profile, result))
		if err == nil {
			guidance, err = parseGuidance(raw)
		}
		guidanceErr = err
		return nil
	})
	_ = g.Wait()

	plan := &domain.StoredPlan{
		UserID:          userID,
		ProfileRevision: profile.Revision,
		Data: domain.PlanData{
			Insight:  insight,
			MealPlan: meals,
		},
	}
	plan.Data.MergeGuidance(guidance)

	fetchErr := errors.Join(insightErr, mealsErr, guidanceErr)
	if insightErr != nil && mealsErr != nil && guidanceErr != nil {
		return nil, fetchErr
	}
	if err := s.planRepo.Upsert(ctx, plan); err != nil {
		if errors.Is(err, repository.ErrStaleRevision) {
			return nil, ErrPlanSuperseded
		}
		return nil, err
	}
	return plan, fetchErr
}

func (s *planService) RegenerateMealPlan(ctx context.Context, userID primitive.ObjectID) ([]domain.Meal, error) {
	profile, result, err := s.loadContext(ctx, userID)
	if err != nil {
		return nil, err
	}

	// The timestamp nonce nudges the model away from repeating its
	// previous plan. Not a uniqueness guarantee.
	nonce := strconv.FormatInt(s.now().UnixMilli(), 10)
	meals, err := s.fetchMealPlan(ctx, profile, result, nonce)
	if err != nil {
		return nil, err
	}

	s.commit(ctx, userID, profile.Revision, func(data *domain.PlanData) {
		data.MealPlan = meals
	})
	return meals, nil
}

func (s *planService) RegenerateMeal(ctx context.Context, userID primitive.ObjectID, mealID string) (*domain.Meal, error) {
	return s.replaceMeal(ctx, userID, mealID, func(profile *domain.UserProfile, result domain.CalculationResult, meal *domain.Meal) string {
		return buildRegenerateMealPrompt(profile, result, meal)
	})
}

func (s *planService) AdjustMeal(ctx context.Context, userID primitive.ObjectID, mealID, instruction string) (*domain.Meal, error) {
	if instruction == "" {
		return nil, errors.New("adjustment instruction cannot be empty")
	}
	return s.replaceMeal(ctx, userID, mealID, func(profile *domain.UserProfile, result domain.CalculationResult, meal *domain.Meal) string {
		return buildAdjustMealPrompt(profile, result, meal, instruction)
	})
}

// replaceMeal runs a single-meal operation: resolve the meal by its
// stable ID, generate a replacement, splice it into the meal's original
// position, and commit. Identity is the meal's UUID, never its display
// index, so a sorted view can't corrupt a sibling meal.
func (s *planService) replaceMeal(ctx context.Context, userID primitive.ObjectID, mealID string,
	prompt func(*domain.UserProfile, domain.CalculationResult, *domain.Meal) string) (*domain.Meal, error) {

	profile, result, err := s.loadContext(ctx, userID)
	if err != nil {
		return nil, err
	}

	stored, err := s.planRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoPlan
		}
		return nil, err
	}

	idx, meal, ok := stored.Data.MealByID(mealID)
	if !ok {
		return nil, ErrMealNotFound
	}

	raw, err := s.executor.Execute(ctx, prompt(profile, result, meal))
	if err != nil {
		return nil, err
	}
	replacement, err := parseSingleMeal(raw)
	if err != nil {
		return nil, err
	}
	// Slot name and identity survive the replacement.
	replacement.Name = meal.Name
	replacement.ID = meal.ID

	stored.Data.MealPlan[idx] = *replacement
	stored.ProfileRevision = profile.Revision
	if err := s.planRepo.Upsert(ctx, stored); err != nil {
		if errors.Is(err, repository.ErrStaleRevision) {
			return nil, ErrPlanSuperseded
		}
		return nil, err
	}
	return replacement, nil
}

func (s *planService) ModifyMealPlan(ctx context.Context, userID primitive.ObjectID, slot domain.MealSlot, foodType string) ([]domain.Meal, error) {
	profile, result, err := s.loadContext(ctx, userID)
	if err != nil {
		return nil, err
	}

	stored, err := s.planRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoPlan
		}
		return nil, err
	}

	raw, err := s.executor.Execute(ctx, buildModifyPlanPrompt(profile, result, stored.Data.MealPlan, slot, foodType))
	if err != nil {
		return nil, err
	}
	meals, err := parseMealList(raw)
	if err != nil {
		return nil, err
	}
	preserveMealIdentity(stored.Data.MealPlan, meals)

	stored.Data.MealPlan = meals
	stored.ProfileRevision = profile.Revision
	if err := s.planRepo.Upsert(ctx, stored); err != nil {
		if errors.Is(err, repository.ErrStaleRevision) {
			return nil, ErrPlanSuperseded
		}
		return nil, err
	}
	return meals, nil
}

func (s *planService) GetPlan(ctx context.Context, userID primitive.ObjectID) (*domain.StoredPlan, error) {
	plan, err := s.planRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoPlan
		}
		return nil, err
	}
	return plan, nil
}

func (s *planService) ExportPlan(ctx context.Context, userID primitive.ObjectID) (string, error) {
	if s.archive == nil {
		return "", errors.New("plan archive not configured")
	}
	plan, err := s.GetPlan(ctx, userID)
	if err != nil {
		return "", err
	}

	key, err := s.archive.ArchivePlan(ctx, plan)
	if err != nil {
		return "", err
	}
	return s.archive.GeneratePresignedDownloadURL(ctx, key, storage.DefaultPresignedURLExpiry)
}

// fetchMealPlan issues the meal-plan call and types the response.
func (s *planService) fetchMealPlan(ctx context.Context, profile *domain.UserProfile, result domain.CalculationResult, nonce string) ([]domain.Meal, error) {
	raw, err := s.executor.Execute(ctx, buildMealPlanPrompt(profile, result, s.foods.PromptHint(), nonce))
	if err != nil {
		return nil, err
	}
	return parseMealList(raw)
}

// commit folds an update into the stored plan under the revision guard.
// Single-slot fetches tolerate commit failure: the content was already
// produced for the caller, only persistence is skipped.
func (s *planService) commit(ctx context.Context, userID primitive.ObjectID, revision int64, update func(*domain.PlanData)) {
	stored, err := s.planRepo.GetByUserID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		stored = &domain.StoredPlan{UserID: userID}
	} else if err != nil {
		log.Printf("WARN: failed to load plan for commit: %v", err)
		return
	}

	update(&stored.Data)
	stored.ProfileRevision = revision
	if err := s.planRepo.Upsert(ctx, stored); err != nil {
		log.Printf("WARN: failed to persist plan update: %v", err)
	}
}

// preserveMealIdentity carries existing meal IDs over to a replacement
// list by slot name, so edits made before a modify keep their handles.
// Meals new to the plan get fresh IDs.
func preserveMealIdentity(old, replacement []domain.Meal) {
	bySlot := make(map[domain.MealSlot]string, len(old))
	for _, m := range old {
		if _, seen := bySlot[m.Name]; !seen {
			bySlot[m.Name] = m.ID
		}
	}
	for i := range replacement {
		if id, ok := bySlot[replacement[i].Name]; ok {
			replacement[i].ID = id
			delete(bySlot, replacement[i].Name)
		} else {
			replacement[i].ID = domain.NewMealID()
		}
	}
}

// --- response mapping ---

type insightPayload struct {
	Insight string `json:"insight"`
}

func parseInsight(raw string) (string, error) {
	msg, err := genai.ExtractJSON(raw, genai.ShapeObject)
	if err != nil {
		return "", err
	}
	var payload insightPayload
	if err := json.Unmarshal(msg, &payload); err != nil {
		return "", &genai.ParseError{Raw: raw, Err: fmt.Errorf("unexpected insight shape: %w", err)}
	}
	if payload.Insight == "" {
		return "", &genai.ParseError{Raw: raw, Err: errors.New("model returned an empty insight")}
	}
	return payload.Insight, nil
}

func parseGuidance(raw string) (domain.Guidance, error) {
	msg, err := genai.ExtractJSON(raw, genai.ShapeObject)
	if err != nil {
		return domain.Guidance{}, err
	}
	var guidance domain.Guidance
	if err := json.Unmarshal(msg, &guidance); err != nil {
		return domain.Guidance{}, &genai.ParseError{Raw: raw, Err: fmt.Errorf("unexpected guidance shape: %w", err)}
	}
	return guidance, nil
}

func parseMealList(raw string) ([]domain.Meal, error) {
	msg, err := genai.ExtractJSON(raw, genai.ShapeArray)
	if err != nil {
		return nil, err
	}
	var meals []domain.Meal
	if err := json.Unmarshal(msg, &meals); err != nil {
		return nil, &genai.ParseError{Raw: raw, Err: fmt.Errorf("unexpected meal list shape: %w", err)}
	}
	if len(meals) == 0 {
		return nil, &genai.ParseError{Raw: raw, Err: errors.New("model returned an empty meal list")}
	}
	for i := range meals {
		meals[i].ID = domain.NewMealID()
	}
	return meals, nil
}

func parseSingleMeal(raw string) (*domain.Meal, error) {
	msg, err := genai.ExtractJSON(raw, genai.ShapeObject)
	if err != nil {
		return nil, err
	}
	var meal domain.Meal
	if err := json.Unmarshal(msg, &meal); err != nil {
		return nil, &genai.ParseError{Raw: raw, Err: fmt.Errorf("unexpected meal shape: %w", err)}
	}
	return &meal, nil
}
