package service

import (
	"fmt"
	"strings"

	"nutriplan/nutrition-app/internal/domain"
)

// mealJSONShape is the per-meal schema every meal-producing prompt embeds.
const mealJSONShape = `{
  "name": "breakfast",
  "foodItems": "food names with portions (e.g. rolled oats 60g, boiled egg 2, apple 1)",
  "description": "short cooking or pairing suggestion",
  "vegetableRecommendation": "2-3 specific vegetable dishes for lunch/dinner, empty otherwise",
  "macros": { "calories": 0, "protein": 0, "fat": 0, "carbs": 0 },
  "recipe": { "ingredients": ["..."], "steps": ["..."], "tips": "..." }
}`

func profileSummary(p *domain.UserProfile, r domain.CalculationResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "User profile:\n")
	fmt.Fprintf(&sb, "- Gender: %s, Age: %d, Weight: %.1fkg, Height: %.0fcm\n", p.Gender, p.Age, p.WeightKG, p.HeightCM)
	fmt.Fprintf(&sb, "- Goal: %s (%s)\n", p.Goal, r.TimeToGoal)
	fmt.Fprintf(&sb, "- Activity level: %s, Training history: %s\n", p.ActivityLevel, p.TrainingHistory)
	fmt.Fprintf(&sb, "- Stress: %d/10, Sleep quality: %d/10\n", p.Stress, p.SleepQuality)
	if len(p.HealthConditions) > 0 {
		fmt.Fprintf(&sb, "- Health screening: %s\n", joinConditions(p.HealthConditions, p.CustomCondition))
	}
	fmt.Fprintf(&sb, "\nCalculated targets:\n")
	fmt.Fprintf(&sb, "- TDEE: %d kcal\n", r.TDEE)
	fmt.Fprintf(&sb, "- Target calories: %d kcal\n", r.TargetCalories)
	fmt.Fprintf(&sb, "- Macros: protein %dg, fat %dg, carbs %dg\n", r.Macros.ProteinG, r.Macros.FatG, r.Macros.CarbG)
	return sb.String()
}

func joinConditions(conditions []domain.HealthCondition, custom string) string {
	parts := make([]string, 0, len(conditions)+1)
	for _, c := range conditions {
		parts = append(parts, string(c))
	}
	if custom != "" {
		parts = append(parts, custom)
	}
	return strings.Join(parts, ", ")
}

func buildInsightPrompt(p *domain.UserProfile, r domain.CalculationResult) string {
	return fmt.Sprintf(`Act as a world-class sports nutritionist.

%s
Write one short, punchy coaching insight (about 50 words) summarizing the user's metabolic state and core strategy.

Return strict JSON only, no Markdown code block:
{ "insight": "..." }`, profileSummary(p, r))
}

func buildMealPlanPrompt(p *domain.UserProfile, r domain.CalculationResult, foodHint string, nonce string) string {
	snack := domain.SnackSlotFor(p.WorkoutTiming)

	var sb strings.Builder
	if nonce != "" {
		fmt.Fprintf(&sb, "Current timestamp: %s (ignore, for variety only)\n", nonce)
		sb.WriteString("Design a COMPLETELY NEW one-day meal plan, different from any previous plan.\n\n")
	} else {
		sb.WriteString("Design a one-day meal plan for the user below.\n\n")
	}

	sb.WriteString(profileSummary(p, r))
	fmt.Fprintf(&sb, `
Requirements:
1. Exactly 4 meals with these "name" values in this order: breakfast, lunch, dinner, %s.
2. Home-style cooking with common market ingredients; prefer steaming, boiling, stewing and quick stir-fry.
3. Lunch and dinner must fill "vegetableRecommendation" with 2-3 specific vegetable dishes.
4. Breakfast or the snack must include fruit.
5. Each meal carries a "recipe" with ingredients, steps and one tip.
6. Per-meal macros must sum to the daily targets above.

Reference foods (name:kcal per 100g): %s

Return a strict JSON array only, no Markdown code block. Each element:
%s`, snack, foodHint, mealJSONShape)
	return sb.String()
}

func buildGuidancePrompt(p *domain.UserProfile, r domain.CalculationResult) string {
	return fmt.Sprintf(`Act as a world-class sports nutritionist and functional medicine expert.

%s
Produce weekly guidance for this user.

Requirements:
1. Supplement advice must include concrete dosage ranges (e.g. 3-5g/day), Markdown list format.
2. Recovery advice must address the reported stress and sleep scores, Markdown list format.
3. If health conditions are listed, give detailed advice per condition (what to avoid, diet, supplements) in Markdown; digestive issues follow the 5R protocol (Remove, Replace, Reinoculate, Repair, Rebalance). Leave empty if none.

Return strict JSON only, no Markdown code block:
{
  "weeklyAdvice": "...",
  "supplements": "...",
  "recovery": "...",
  "healthAdvice": "..."
}`, profileSummary(p, r))
}

func buildRegenerateMealPrompt(p *domain.UserProfile, r domain.CalculationResult, meal *domain.Meal) string {
	return fmt.Sprintf(`Design one replacement meal for the user below.

%s
Replace this meal with a different one of the same type and similar macros:
- Slot: %s
- Current foods: %s
- Current macros: %d kcal, protein %dg, fat %dg, carbs %dg

The "name" field must stay "%s".

Return a strict JSON object only, no Markdown code block:
%s`, profileSummary(p, r), meal.Name, meal.FoodItems,
		meal.Macros.Calories, meal.Macros.Protein, meal.Macros.Fat, meal.Macros.Carbs,
		meal.Name, mealJSONShape)
}

func buildAdjustMealPrompt(p *domain.UserProfile, r domain.CalculationResult, meal *domain.Meal, instruction string) string {
	return fmt.Sprintf(`Adjust one meal for the user below.

%s
Current meal:
- Slot: %s
- Foods: %s
- Macros: %d kcal, protein %dg, fat %dg, carbs %dg

User instruction: %s

Apply the instruction and recompute the macros to stay consistent with the edit. The "name" field must stay "%s".

Return a strict JSON object only, no Markdown code block:
%s`, profileSummary(p, r), meal.Name, meal.FoodItems,
		meal.Macros.Calories, meal.Macros.Protein, meal.Macros.Fat, meal.Macros.Carbs,
		instruction, meal.Name, mealJSONShape)
}

func buildModifyPlanPrompt(p *domain.UserProfile, r domain.CalculationResult, meals []domain.Meal, slot domain.MealSlot, foodType string) string {
	var sb strings.Builder
	sb.WriteString("Modify the user's current one-day meal plan.\n\n")
	sb.WriteString(profileSummary(p, r))

	sb.WriteString("\nCurrent meal plan:\n")
	for _, m := range meals {
		fmt.Fprintf(&sb, "- %s: %s (%d kcal, P%dg F%dg C%dg)\n",
			m.Name, m.FoodItems, m.Macros.Calories, m.Macros.Protein, m.Macros.Fat, m.Macros.Carbs)
	}

	fmt.Fprintf(&sb, "\nTask: add a \"%s\" meal", slot)
	if foodType != "" {
		fmt.Fprintf(&sb, " using only foods of this type: %s", foodType)
	}
	sb.WriteString(`.

Requirements:
1. If the slot already exists, augment it instead of duplicating it.
2. Keep the total daily calories at the target by shrinking other meals.
3. Return the FULL replacement plan, every meal included.

Return a strict JSON array only, no Markdown code block. Each element:
`)
	sb.WriteString(mealJSONShape)
	return sb.String()
}
