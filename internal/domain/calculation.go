package domain

// Feasibility is a tri-state verdict on a user-specified weight/time goal.
// The no-target-weight calculation path never computes one; conflating
// "not computed" with "infeasible" would mislead callers, so the absent
// state is explicit.
type Feasibility string

const (
	FeasibilityNotComputed Feasibility = "not_computed"
	FeasibilityFeasible    Feasibility = "feasible"
	FeasibilityInfeasible  Feasibility = "infeasible"
)

// MacroSplit is a calorie target expressed as grams of each macronutrient.
// Caloric densities: protein 4 kcal/g, fat 9 kcal/g, carbs 4 kcal/g.
type MacroSplit struct {
	ProteinG int `bson:"proteinG" json:"proteinG"`
	FatG     int `bson:"fatG" json:"fatG"`
	CarbG    int `bson:"carbG" json:"carbG"`
}

// Calories returns the caloric content implied by the gram amounts.
func (m MacroSplit) Calories() int {
	return m.ProteinG*4 + m.FatG*9 + m.CarbG*4
}

// CalculationResult is derived from a UserProfile and recomputed whenever
// the profile changes. It is never mutated in place.
type CalculationResult struct {
	BMR                int         `bson:"bmr" json:"bmr"`
	TDEE               int         `bson:"tdee" json:"tdee"`
	TargetCalories     int         `bson:"targetCalories" json:"targetCalories"`
	FormulaUsed        string      `bson:"formulaUsed" json:"formulaUsed"`
	ActivityMultiplier float64     `bson:"activityMultiplier" json:"activityMultiplier"`
	Macros             MacroSplit  `bson:"macros" json:"macros"`
	TimeToGoal         string      `bson:"timeToGoal" json:"timeToGoal"`
	WeeklyChange       string      `bson:"weeklyChange" json:"weeklyChange"`
	Feasibility        Feasibility `bson:"feasibility" json:"feasibility"`
	// RequiredDeficit is the daily calorie delta implied by an explicit
	// target weight + duration (negative for loss). Zero when not computed.
	RequiredDeficit    int    `bson:"requiredDeficit,omitempty" json:"requiredDeficit,omitempty"`
	FeasibilityMessage string `bson:"feasibilityMessage,omitempty" json:"feasibilityMessage,omitempty"`
	// SafeMinWeeks is the shortest duration at which an infeasible loss
	// goal would meet the 1%-of-bodyweight-per-week rate limit.
	SafeMinWeeks int `bson:"safeMinWeeks,omitempty" json:"safeMinWeeks,omitempty"`
}
