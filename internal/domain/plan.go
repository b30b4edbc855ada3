package domain

import (
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MealSlot is the named position of a meal within a day. The constant
// order below is the display precedence; the AI returns slots in arbitrary
// order and the service sorts for presentation only.
type MealSlot string

const (
	SlotBreakfast      MealSlot = "breakfast"
	SlotMorningSnack   MealSlot = "morning_snack"
	SlotLunch          MealSlot = "lunch"
	SlotAfternoonSnack MealSlot = "afternoon_snack"
	SlotDinner         MealSlot = "dinner"
	SlotEveningSnack   MealSlot = "evening_snack"
)

// SlotOrder is the display precedence of meal slots. Unknown slots sort
// after all known ones, preserving their relative order.
var SlotOrder = []MealSlot{
	SlotBreakfast,
	SlotMorningSnack,
	SlotLunch,
	SlotAfternoonSnack,
	SlotDinner,
	SlotEveningSnack,
}

// SlotRank returns the precedence index of a slot, or len(SlotOrder) for
// slots not in the fixed set.
func SlotRank(s MealSlot) int {
	for i, slot := range SlotOrder {
		if slot == s {
			return i
		}
	}
	return len(SlotOrder)
}

// SnackSlotFor picks the single snack slot of a generated day from the
// user's workout timing: train in the morning, snack in the morning.
func SnackSlotFor(t WorkoutTiming) MealSlot {
	switch t {
	case WorkoutMorning:
		return SlotMorningSnack
	case WorkoutEvening:
		return SlotEveningSnack
	default:
		return SlotAfternoonSnack
	}
}

// MealMacros holds the AI-estimated nutrition of one meal.
type MealMacros struct {
	Calories int `bson:"calories" json:"calories"`
	Protein  int `bson:"protein" json:"protein"`
	Fat      int `bson:"fat" json:"fat"`
	Carbs    int `bson:"carbs" json:"carbs"`
}

// Recipe is the optional preparation detail for a meal.
type Recipe struct {
	Ingredients []string `bson:"ingredients" json:"ingredients"`
	Steps       []string `bson:"steps" json:"steps"`
	Tips        string   `bson:"tips,omitempty" json:"tips,omitempty"`
}

// Meal is one entry of a day's plan. Meals are produced and replaced
// wholesale by the AI collaborator; ID is assigned by this service when a
// meal list is parsed and is the only stable handle for scoped edits;
// display position is never identity.
type Meal struct {
	ID                      string     `bson:"id" json:"id"`
	Name                    MealSlot   `bson:"name" json:"name"`
	FoodItems               string     `bson:"foodItems" json:"foodItems"`
	Description             string     `bson:"description,omitempty" json:"description,omitempty"`
	VegetableRecommendation string     `bson:"vegetableRecommendation,omitempty" json:"vegetableRecommendation,omitempty"`
	Macros                  MealMacros `bson:"macros" json:"macros"`
	Recipe                  *Recipe    `bson:"recipe,omitempty" json:"recipe,omitempty"`
}

// NewMealID returns a fresh stable meal identifier.
func NewMealID() string {
	return uuid.New().String()
}

// Guidance is the non-meal advisory portion of a plan, produced by its own
// fetch and merged into PlanData as a unit.
type Guidance struct {
	WeeklyAdvice string `bson:"weeklyAdvice" json:"weeklyAdvice"`
	Supplements  string `bson:"supplements" json:"supplements"`
	Recovery     string `bson:"recovery" json:"recovery"`
	HealthAdvice string `bson:"healthAdvice,omitempty" json:"healthAdvice,omitempty"`
}

// PlanData aggregates everything the AI contributes. Each top-level field
// is owned by exactly one fetch (insight / mealPlan / guidance) so merges
// never partially overwrite a field.
type PlanData struct {
	Insight      string `bson:"insight,omitempty" json:"insight,omitempty"`
	MealPlan     []Meal `bson:"mealPlan,omitempty" json:"mealPlan,omitempty"`
	WeeklyAdvice string `bson:"weeklyAdvice,omitempty" json:"weeklyAdvice,omitempty"`
	Supplements  string `bson:"supplements,omitempty" json:"supplements,omitempty"`
	Recovery     string `bson:"recovery,omitempty" json:"recovery,omitempty"`
	HealthAdvice string `bson:"healthAdvice,omitempty" json:"healthAdvice,omitempty"`
}

// MergeGuidance copies a guidance fetch's fields into the plan.
func (p *PlanData) MergeGuidance(g Guidance) {
	p.WeeklyAdvice = g.WeeklyAdvice
	p.Supplements = g.Supplements
	p.Recovery = g.Recovery
	p.HealthAdvice = g.HealthAdvice
}

// SortedMealPlan returns a copy of the meal list ordered by slot
// precedence. The backing list keeps the AI's order; callers resolve
// edits back through Meal.ID, never through display index.
func (p *PlanData) SortedMealPlan() []Meal {
	sorted := make([]Meal, len(p.MealPlan))
	copy(sorted, p.MealPlan)
	// Insertion sort keeps equal-rank meals in backing order.
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && SlotRank(sorted[j].Name) < SlotRank(sorted[j-1].Name); j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	return sorted
}

// MealByID locates a meal in the backing list. The boolean result is false
// when the ID is unknown (e.g., the plan was regenerated underneath).
func (p *PlanData) MealByID(id string) (int, *Meal, bool) {
	for i := range p.MealPlan {
		if p.MealPlan[i].ID == id {
			return i, &p.MealPlan[i], true
		}
	}
	return 0, nil, false
}

// StoredPlan is the persisted wrapper around PlanData. ProfileRevision
// records which profile generation produced it; plan writes conditioned on
// the current revision drop results of superseded fetches.
type StoredPlan struct {
	UserID          primitive.ObjectID `bson:"userId" json:"userId"`
	ProfileRevision int64              `bson:"profileRevision" json:"profileRevision"`
	Data            PlanData           `bson:"data" json:"data"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}
