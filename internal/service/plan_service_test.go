package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"nutriplan/nutrition-app/internal/domain"
	"nutriplan/nutrition-app/internal/foodref"
	"nutriplan/nutrition-app/internal/genai"
	"nutriplan/nutrition-app/internal/repository"
)

// --- in-memory fakes ---

type fakeProfileRepo struct {
	profiles map[primitive.ObjectID]*domain.UserProfile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[primitive.ObjectID]*domain.UserProfile{}}
}

func (r *fakeProfileRepo) Save(_ context.Context, userID primitive.ObjectID, profile *domain.UserProfile) (int64, error) {
	rev := int64(1)
	if existing, ok := r.profiles[userID]; ok {
		rev = existing.Revision + 1
	}
	p := *profile
	p.Revision = rev
	r.profiles[userID] = &p
	return rev, nil
}

func (r *fakeProfileRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) (*domain.UserProfile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

type fakePlanRepo struct {
	plans map[primitive.ObjectID]*domain.StoredPlan
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{plans: map[primitive.ObjectID]*domain.StoredPlan{}}
}

func (r *fakePlanRepo) Upsert(_ context.Context, plan *domain.StoredPlan) error {
	if existing, ok := r.plans[plan.UserID]; ok && existing.ProfileRevision > plan.ProfileRevision {
		return repository.ErrStaleRevision
	}
	cp := *plan
	r.plans[plan.UserID] = &cp
	return nil
}

func (r *fakePlanRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) (*domain.StoredPlan, error) {
	p, ok := r.plans[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	cp.Data.MealPlan = append([]domain.Meal(nil), p.Data.MealPlan...)
	return &cp, nil
}

func (r *fakePlanRepo) Delete(_ context.Context, userID primitive.ObjectID) error {
	delete(r.plans, userID)
	return nil
}

// stubGenerator answers each prompt by keyword, recording prompts as it goes.
type stubGenerator struct {
	prompts   []string
	responses map[string]string
}

func (g *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	for keyword, response := range g.responses {
		if strings.Contains(prompt, keyword) {
			return response, nil
		}
	}
	return "", fmt.Errorf("no stubbed response for prompt")
}

const stubMealArray = `[
  {"name":"breakfast","foodItems":"rolled oats 60g, boiled egg 2","description":"","vegetableRecommendation":"","macros":{"calories":400,"protein":25,"fat":10,"carbs":50}},
  {"name":"lunch","foodItems":"steamed rice 150g, chicken breast 120g","description":"","vegetableRecommendation":"stir-fried broccoli","macros":{"calories":600,"protein":40,"fat":20,"carbs":60}},
  {"name":"dinner","foodItems":"cod 150g, sweet potato 100g","description":"","vegetableRecommendation":"spinach soup","macros":{"calories":500,"protein":35,"fat":15,"carbs":50}},
  {"name":"afternoon_snack","foodItems":"greek yogurt 100g, blueberries 50g","description":"","vegetableRecommendation":"","macros":{"calories":200,"protein":10,"fat":5,"carbs":20}}
]`

func testProfile() *domain.UserProfile {
	return &domain.UserProfile{
		HeightCM:        175,
		WeightKG:        70,
		Age:             30,
		Gender:          domain.GenderMale,
		Goal:            domain.GoalMaintain,
		ActivityLevel:   domain.ActivityModerate,
		MacroPreference: domain.MacroBalanced,
		WorkoutTiming:   domain.WorkoutEvening,
		Stress:          5,
		SleepQuality:    7,
	}
}

type planFixture struct {
	svc      PlanService
	gen      *stubGenerator
	planRepo *fakePlanRepo
	userID   primitive.ObjectID
}

func newPlanFixture(t *testing.T, responses map[string]string) *planFixture {
	t.Helper()

	userID := primitive.NewObjectID()
	profileRepo := newFakeProfileRepo()
	_, err := profileRepo.Save(context.Background(), userID, testProfile())
	require.NoError(t, err)

	gen := &stubGenerator{responses: responses}
	planRepo := newFakePlanRepo()
	// Zero backoff keeps retry-exhausting tests off the wall clock.
	executor := genai.NewExecutorWithPolicy(gen, 3, 0)
	svc := NewPlanService(profileRepo, planRepo, executor, foodref.NewTable(), nil)

	return &planFixture{svc: svc, gen: gen, planRepo: planRepo, userID: userID}
}

// --- tests ---

func TestGenerateMealPlanAssignsStableIDs(t *testing.T) {
	f := newPlanFixture(t, map[string]string{"meal plan": stubMealArray})

	meals, err := f.svc.GenerateMealPlan(context.Background(), f.userID)
	require.NoError(t, err)
	require.Len(t, meals, 4)

	seen := map[string]bool{}
	for _, m := range meals {
		assert.NotEmpty(t, m.ID)
		assert.False(t, seen[m.ID], "meal IDs must be unique")
		seen[m.ID] = true
	}
}

func TestMealPlanPromptNamesSnackSlotFromWorkoutTiming(t *testing.T) {
	f := newPlanFixture(t, map[string]string{"meal plan": stubMealArray})

	_, err := f.svc.GenerateMealPlan(context.Background(), f.userID)
	require.NoError(t, err)

	require.Len(t, f.gen.prompts, 1)
	// Evening workout selects the evening snack slot.
	assert.Contains(t, f.gen.prompts[0], "breakfast, lunch, dinner, evening_snack")
	// The food reference hint rides along.
	assert.Contains(t, f.gen.prompts[0], "broccoli:34kcal")
}

func TestRegenerateMealPlanEmbedsNonce(t *testing.T) {
	f := newPlanFixture(t, map[string]string{"meal plan": stubMealArray})

	_, err := f.svc.GenerateMealPlan(context.Background(), f.userID)
	require.NoError(t, err)
	_, err = f.svc.RegenerateMealPlan(context.Background(), f.userID)
	require.NoError(t, err)

	require.Len(t, f.gen.prompts, 2)
	assert.NotContains(t, f.gen.prompts[0], "timestamp")
	assert.Contains(t, f.gen.prompts[1], "timestamp")
	assert.Contains(t, f.gen.prompts[1], "COMPLETELY NEW")
}

func TestRegenerateMealKeepsIdentityAndSiblings(t *testing.T) {
	replacement := `{"name":"lunch","foodItems":"buckwheat noodles 150g, lean beef 100g","description":"","vegetableRecommendation":"kale salad","macros":{"calories":590,"protein":42,"fat":18,"carbs":58}}`
	f := newPlanFixture(t, map[string]string{
		"meal plan":            stubMealArray,
		"one replacement meal": replacement,
	})

	meals, err := f.svc.GenerateMealPlan(context.Background(), f.userID)
	require.NoError(t, err)

	var lunch domain.Meal
	for _, m := range meals {
		if m.Name == domain.SlotLunch {
			lunch = m
		}
	}
	require.NotEmpty(t, lunch.ID)

	got, err := f.svc.RegenerateMeal(context.Background(), f.userID, lunch.ID)
	require.NoError(t, err)
	assert.Equal(t, lunch.ID, got.ID, "replacement keeps the meal's ID")
	assert.Equal(t, domain.SlotLunch, got.Name)
	assert.Contains(t, got.FoodItems, "buckwheat")

	// Only the targeted meal changed.
	stored, err := f.svc.GetPlan(context.Background(), f.userID)
	require.NoError(t, err)
	for _, m := range stored.Data.MealPlan {
		if m.ID == lunch.ID {
			assert.Contains(t, m.FoodItems, "buckwheat")
		} else {
			assert.NotContains(t, m.FoodItems, "buckwheat")
		}
	}
}

func TestRegenerateMealAddressedThroughSortedView(t *testing.T) {
	// The model returns slots out of display order; dinner leads the
	// backing list but sorts last.
	shuffled := `[
	  {"name":"dinner","foodItems":"cod 150g, sweet potato 100g","description":"","vegetableRecommendation":"spinach soup","macros":{"calories":500,"protein":35,"fat":15,"carbs":50}},
	  {"name":"breakfast","foodItems":"rolled oats 60g, boiled egg 2","description":"","vegetableRecommendation":"","macros":{"calories":400,"protein":25,"fat":10,"carbs":50}},
	  {"name":"lunch","foodItems":"steamed rice 150g, chicken breast 120g","description":"","vegetableRecommendation":"stir-fried broccoli","macros":{"calories":600,"protein":40,"fat":20,"carbs":60}},
	  {"name":"afternoon_snack","foodItems":"greek yogurt 100g, blueberries 50g","description":"","vegetableRecommendation":"","macros":{"calories":200,"protein":10,"fat":5,"carbs":20}}
	]`
	replacement := `{"name":"dinner","foodItems":"grilled salmon 150g, quinoa 80g","description":"","vegetableRecommendation":"roasted asparagus","macros":{"calories":520,"protein":38,"fat":18,"carbs":42}}`
	f := newPlanFixture(t, map[string]string{
		"meal plan":            shuffled,
		"one replacement meal": replacement,
	})

	_, err := f.svc.GenerateMealPlan(context.Background(), f.userID)
	require.NoError(t, err)

	stored, err := f.svc.GetPlan(context.Background(), f.userID)
	require.NoError(t, err)
	require.Equal(t, domain.SlotDinner, stored.Data.MealPlan[0].Name)

	sorted := stored.Data.SortedMealPlan()
	require.Len(t, sorted, 4)
	require.Equal(t, domain.SlotDinner, sorted[3].Name)

	// Editing through the sorted view's last entry must hit the meal at
	// backing position 0, not whatever sits at backing position 3.
	got, err := f.svc.RegenerateMeal(context.Background(), f.userID, sorted[3].ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SlotDinner, got.Name)

	after, err := f.svc.GetPlan(context.Background(), f.userID)
	require.NoError(t, err)
	assert.Contains(t, after.Data.MealPlan[0].FoodItems, "salmon")
	assert.NotContains(t, after.Data.MealPlan[3].FoodItems, "salmon")
}

func TestRegenerateMealUnknownID(t *testing.T) {
	f := newPlanFixture(t, map[string]string{"meal plan": stubMealArray})

	_, err := f.svc.GenerateMealPlan(context.Background(), f.userID)
	require.NoError(t, err)

	_, err = f.svc.RegenerateMeal(context.Background(), f.userID, "bogus-id")
	assert.ErrorIs(t, err, ErrMealNotFound)
}

func TestAdjustMealRequiresInstruction(t *testing.T) {
	f := newPlanFixture(t, map[string]string{"meal plan": stubMealArray})

	_, err := f.svc.AdjustMeal(context.Background(), f.userID, "any", "")
	assert.Error(t, err)
}

func TestGenerateFullPlanMergesSlots(t *testing.T) {
	f := newPlanFixture(t, map[string]string{
		"coaching insight": `{"insight":"solid maintenance baseline"}`,
		"meal plan":        stubMealArray,
		"weekly guidance":  `{"weeklyAdvice":"train 4x","supplements":"creatine 3-5g/day","recovery":"sleep 8h","healthAdvice":""}`,
	})

	plan, err := f.svc.GenerateFullPlan(context.Background(), f.userID)
	require.NoError(t, err)
	assert.Equal(t, "solid maintenance baseline", plan.Data.Insight)
	assert.Len(t, plan.Data.MealPlan, 4)
	assert.Equal(t, "creatine 3-5g/day", plan.Data.Supplements)
	assert.Equal(t, "sleep 8h", plan.Data.Recovery)
}

func TestGenerateFullPlanPartialFailure(t *testing.T) {
	// No stub for guidance: that slot fails, the others land.
	f := newPlanFixture(t, map[string]string{
		"coaching insight": `{"insight":"keep going"}`,
		"meal plan":        stubMealArray,
	})

	plan, err := f.svc.GenerateFullPlan(context.Background(), f.userID)
	require.Error(t, err)
	require.NotNil(t, plan)
	assert.Equal(t, "keep going", plan.Data.Insight)
	assert.Len(t, plan.Data.MealPlan, 4)
	assert.Empty(t, plan.Data.Supplements)

	// The partial plan was still persisted.
	stored, storedErr := f.svc.GetPlan(context.Background(), f.userID)
	require.NoError(t, storedErr)
	assert.Equal(t, "keep going", stored.Data.Insight)
}

func TestGenerateFullPlanTotalFailure(t *testing.T) {
	// No stubs at all: every slot fails, so there is no plan to return.
	f := newPlanFixture(t, map[string]string{})

	plan, err := f.svc.GenerateFullPlan(context.Background(), f.userID)
	require.Error(t, err)
	assert.Nil(t, plan)

	// Nothing was persisted either.
	_, err = f.svc.GetPlan(context.Background(), f.userID)
	assert.ErrorIs(t, err, ErrNoPlan)
}

func TestWrongShapeMealListIsParseError(t *testing.T) {
	// Valid JSON, wrong field types. Distinct from a transport failure.
	f := newPlanFixture(t, map[string]string{"meal plan": `[{"name": 123}]`})

	_, err := f.svc.GenerateMealPlan(context.Background(), f.userID)
	require.Error(t, err)
	var parseErr *genai.ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestEnrichmentUnavailableWithoutExecutor(t *testing.T) {
	userID := primitive.NewObjectID()
	profileRepo := newFakeProfileRepo()
	_, err := profileRepo.Save(context.Background(), userID, testProfile())
	require.NoError(t, err)

	svc := NewPlanService(profileRepo, newFakePlanRepo(), nil, foodref.NewTable(), nil)

	_, err = svc.GenerateInsight(context.Background(), userID)
	assert.ErrorIs(t, err, ErrEnrichmentUnavailable)
	_, err = svc.GenerateFullPlan(context.Background(), userID)
	assert.ErrorIs(t, err, ErrEnrichmentUnavailable)
}

func TestModifyPlanPreservesExistingIdentity(t *testing.T) {
	modified := `[
	  {"name":"breakfast","foodItems":"rolled oats 50g, boiled egg 2","description":"","vegetableRecommendation":"","macros":{"calories":360,"protein":24,"fat":10,"carbs":42}},
	  {"name":"lunch","foodItems":"steamed rice 120g, chicken breast 120g","description":"","vegetableRecommendation":"stir-fried broccoli","macros":{"calories":540,"protein":40,"fat":18,"carbs":52}},
	  {"name":"dinner","foodItems":"cod 150g, sweet potato 80g","description":"","vegetableRecommendation":"spinach soup","macros":{"calories":460,"protein":35,"fat":14,"carbs":44}},
	  {"name":"afternoon_snack","foodItems":"greek yogurt 100g","description":"","vegetableRecommendation":"","macros":{"calories":140,"protein":10,"fat":4,"carbs":14}},
	  {"name":"evening_snack","foodItems":"walnuts 20g, banana 1","description":"","vegetableRecommendation":"","macros":{"calories":200,"protein":4,"fat":14,"carbs":18}}
	]`
	// The modify prompt embeds the current plan, so keywords must be
	// unique to each prompt kind.
	f := newPlanFixture(t, map[string]string{
		"Reference foods": stubMealArray,
		"Task: add":       modified,
	})

	original, err := f.svc.GenerateMealPlan(context.Background(), f.userID)
	require.NoError(t, err)
	idBySlot := map[domain.MealSlot]string{}
	for _, m := range original {
		idBySlot[m.Name] = m.ID
	}

	meals, err := f.svc.ModifyMealPlan(context.Background(), f.userID, domain.SlotEveningSnack, "fruit and nuts")
	require.NoError(t, err)
	require.Len(t, meals, 5)

	for _, m := range meals {
		if prev, ok := idBySlot[m.Name]; ok {
			assert.Equal(t, prev, m.ID, "surviving slot %s keeps its ID", m.Name)
		} else {
			assert.Equal(t, domain.SlotEveningSnack, m.Name)
			assert.NotEmpty(t, m.ID)
		}
	}
}

func TestStaleCommitRejected(t *testing.T) {
	f := newPlanFixture(t, map[string]string{"meal plan": stubMealArray})

	_, err := f.svc.GenerateMealPlan(context.Background(), f.userID)
	require.NoError(t, err)

	// A plan landed from a newer profile generation while our fetch was out.
	f.planRepo.plans[f.userID].ProfileRevision = 99

	stale := &domain.StoredPlan{UserID: f.userID, ProfileRevision: 1, UpdatedAt: time.Now()}
	err = f.planRepo.Upsert(context.Background(), stale)
	assert.ErrorIs(t, err, repository.ErrStaleRevision)
}
