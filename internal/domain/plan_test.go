package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortedMealPlanIsAViewNotIdentity(t *testing.T) {
	plan := PlanData{MealPlan: []Meal{
		{ID: NewMealID(), Name: SlotDinner, FoodItems: "cod 150g"},
		{ID: NewMealID(), Name: SlotBreakfast, FoodItems: "rolled oats 60g"},
		{ID: NewMealID(), Name: SlotAfternoonSnack, FoodItems: "greek yogurt 100g"},
	}}

	sorted := plan.SortedMealPlan()
	require.Len(t, sorted, 3)
	assert.Equal(t, SlotBreakfast, sorted[0].Name)
	assert.Equal(t, SlotAfternoonSnack, sorted[1].Name)
	assert.Equal(t, SlotDinner, sorted[2].Name)

	// The backing list keeps its order, and the sort reassigns no IDs.
	assert.Equal(t, SlotDinner, plan.MealPlan[0].Name)
	for _, s := range sorted {
		_, backing, ok := plan.MealByID(s.ID)
		require.True(t, ok)
		assert.Equal(t, s.Name, backing.Name)
	}

	// The ID at sorted position 2 resolves to backing position 0, and
	// edits through that resolution land in the backing list.
	idx, meal, ok := plan.MealByID(sorted[2].ID)
	require.True(t, ok)
	assert.Equal(t, 0, idx)
	meal.FoodItems = "grilled salmon 150g"
	assert.Equal(t, "grilled salmon 150g", plan.MealPlan[0].FoodItems)
}

func TestSortedMealPlanUnknownSlotSortsLast(t *testing.T) {
	plan := PlanData{MealPlan: []Meal{
		{ID: NewMealID(), Name: MealSlot("midnight_feast")},
		{ID: NewMealID(), Name: SlotBreakfast},
	}}

	sorted := plan.SortedMealPlan()
	require.Len(t, sorted, 2)
	assert.Equal(t, SlotBreakfast, sorted[0].Name)
	assert.Equal(t, MealSlot("midnight_feast"), sorted[1].Name)
}

func TestMealByIDUnknown(t *testing.T) {
	plan := PlanData{MealPlan: []Meal{{ID: NewMealID(), Name: SlotLunch}}}

	_, _, ok := plan.MealByID("missing")
	assert.False(t, ok)
}
