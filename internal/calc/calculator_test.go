package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nutriplan/nutrition-app/internal/domain"
)

// conservationTolerance allows for the three macros being rounded
// independently (worst case just under 0.5g each at 4+9+4 kcal/g).
const conservationTolerance = 9

func baseProfile() *domain.UserProfile {
	return &domain.UserProfile{
		HeightCM:        175,
		WeightKG:        70,
		Age:             30,
		Gender:          domain.GenderMale,
		Goal:            domain.GoalMaintain,
		ActivityLevel:   domain.ActivityModerate,
		MacroPreference: domain.MacroBalanced,
	}
}

func TestFormulaSelection(t *testing.T) {
	p := baseProfile()
	p.BodyFatPct = 20

	r := Calculate(p)
	assert.Equal(t, FormulaKatchMcArdle, r.FormulaUsed)
	// leanMass = 70 * 0.8 = 56kg, BMR = 370 + 21.6*56 = 1579.6
	assert.Equal(t, 1580, r.BMR)

	p.BodyFatPct = 0
	r = Calculate(p)
	assert.Equal(t, FormulaMifflinStJeor, r.FormulaUsed)
	// 10*70 + 6.25*175 - 5*30 + 5 = 1648.75
	assert.Equal(t, 1649, r.BMR)
}

func TestFemaleOffset(t *testing.T) {
	p := baseProfile()
	p.Gender = domain.GenderFemale

	r := Calculate(p)
	// male constant +5 vs female -161: a 166 kcal gap at equal biometrics
	assert.Equal(t, 1649-166, r.BMR)
}

func TestTDEEMonotonicAcrossActivityLevels(t *testing.T) {
	levels := []domain.ActivityLevel{
		domain.ActivitySedentary,
		domain.ActivityLight,
		domain.ActivityModerate,
		domain.ActivityHigh,
		domain.ActivityAthlete,
	}

	prev := 0
	for _, level := range levels {
		p := baseProfile()
		p.ActivityLevel = level
		r := Calculate(p)
		assert.Greater(t, r.TDEE, prev, "TDEE should rise with activity level %s", level)
		prev = r.TDEE
	}
}

func TestGoalPresets(t *testing.T) {
	tests := []struct {
		goal domain.Goal
		want func(bmr, tdee int) int
	}{
		{domain.GoalLoseFat, func(_, tdee int) int { return int(float64(tdee)*0.85 + 0.5) }},
		{domain.GoalMaintain, func(_, tdee int) int { return tdee }},
		{domain.GoalLeanGain, func(_, tdee int) int { return tdee + 200 }},
		{domain.GoalDirtyGain, func(_, tdee int) int { return tdee + 500 }},
	}

	for _, tt := range tests {
		t.Run(string(tt.goal), func(t *testing.T) {
			p := baseProfile()
			p.Goal = tt.goal
			r := Calculate(p)
			assert.Equal(t, tt.want(r.BMR, r.TDEE), r.TargetCalories)
			assert.Equal(t, domain.FeasibilityNotComputed, r.Feasibility)
			assert.NotEmpty(t, r.TimeToGoal)
		})
	}
}

func TestRecompositionFloorsAtBMR(t *testing.T) {
	p := baseProfile()
	p.Goal = domain.GoalRecomposition
	p.ActivityLevel = domain.ActivitySedentary

	r := Calculate(p)
	// TDEE-300 must never dip below BMR.
	assert.GreaterOrEqual(t, r.TargetCalories, r.BMR)
	assert.Equal(t, maxInt(r.TDEE-300, r.BMR), r.TargetCalories)
}

func TestTargetWithDurationFeasible(t *testing.T) {
	p := baseProfile()
	p.WeightKG = 80
	p.TargetWeightKG = 78
	p.DurationWeeks = 8

	r := Calculate(p)
	require.Equal(t, domain.FeasibilityFeasible, r.Feasibility)
	// -2kg over 8 weeks: delta = -2*7700/56 = -275 kcal/day
	assert.Equal(t, -275, r.RequiredDeficit)
	assert.Equal(t, r.TDEE-275, r.TargetCalories)
	assert.Equal(t, "8 weeks", r.TimeToGoal)
}

func TestTargetWithDurationTooAggressive(t *testing.T) {
	p := baseProfile()
	p.WeightKG = 80
	p.TargetWeightKG = 70
	p.DurationWeeks = 4

	r := Calculate(p)
	require.Equal(t, domain.FeasibilityInfeasible, r.Feasibility)
	// 2.5 kg/week against a 0.8 kg/week cap; safe minimum ceil(10/0.8) = 13
	assert.Equal(t, 13, r.SafeMinWeeks)
	assert.Contains(t, r.FeasibilityMessage, "13 weeks")
}

func TestTargetWithDurationBelowBMR(t *testing.T) {
	p := baseProfile()
	p.WeightKG = 60
	p.ActivityLevel = domain.ActivitySedentary
	p.TargetWeightKG = 59.5
	p.DurationWeeks = 1

	r := Calculate(p)
	// 0.5 kg in a week is under the 1% rate cap, but the implied intake
	// (TDEE - 550) sinks below BMR.
	require.Equal(t, domain.FeasibilityInfeasible, r.Feasibility)
	assert.Less(t, r.TargetCalories, r.BMR)
	assert.Contains(t, r.FeasibilityMessage, "basal metabolic rate")
}

func TestTargetWithDurationGainCap(t *testing.T) {
	p := baseProfile()
	p.TargetWeightKG = 80
	p.DurationWeeks = 5

	r := Calculate(p)
	// 2.0 kg/week gain exceeds the 1.0 kg/week cap.
	assert.Equal(t, domain.FeasibilityInfeasible, r.Feasibility)

	p.DurationWeeks = 20
	r = Calculate(p)
	assert.Equal(t, domain.FeasibilityFeasible, r.Feasibility)
}

func TestTargetOnlyDerivesTimeline(t *testing.T) {
	p := baseProfile()
	p.WeightKG = 80
	p.TargetWeightKG = 72

	r := Calculate(p)
	require.Equal(t, domain.FeasibilityFeasible, r.Feasibility)
	assert.GreaterOrEqual(t, r.TargetCalories, r.BMR)
	assert.Regexp(t, `^\d+ weeks$`, r.TimeToGoal)
}

func TestTargetOnlyGain(t *testing.T) {
	p := baseProfile()
	p.TargetWeightKG = 75

	r := Calculate(p)
	require.Equal(t, domain.FeasibilityFeasible, r.Feasibility)
	assert.Equal(t, r.TDEE+300, r.TargetCalories)
	// 5 kg at ~0.27 kg/week (300*7/7700) needs ceil(5/0.2727...) = 19 weeks.
	assert.Equal(t, "19 weeks", r.TimeToGoal)
}

func TestTargetOnlyAlreadyAchieved(t *testing.T) {
	p := baseProfile()
	p.TargetWeightKG = 70

	r := Calculate(p)
	assert.Equal(t, domain.FeasibilityFeasible, r.Feasibility)
	assert.Equal(t, r.TDEE, r.TargetCalories)
	assert.Equal(t, "achieved", r.TimeToGoal)
}

func TestCustomRatioGrams(t *testing.T) {
	p := baseProfile()
	p.MacroPreference = domain.MacroCustom
	p.CustomMacroRatio = &domain.MacroRatio{ProteinPct: 30, FatPct: 20, CarbPct: 50}
	p.ActivityLevel = domain.ActivitySedentary

	r := Calculate(p)
	// Fix target at 2000 to check the published reference split.
	m := macroSplit(p, p.WeightKG, 2000)
	assert.Equal(t, 150, m.ProteinG) // 2000*0.30/4
	assert.Equal(t, 44, m.FatG)      // 2000*0.20/9 = 44.4
	assert.Equal(t, 250, m.CarbG)    // 2000*0.50/4
	_ = r
}

func TestMacroCaloricConservation(t *testing.T) {
	profiles := []*domain.UserProfile{
		baseProfile(),
		func() *domain.UserProfile {
			p := baseProfile()
			p.Goal = domain.GoalLoseFat
			p.MacroPreference = domain.MacroHighProtein
			return p
		}(),
		func() *domain.UserProfile {
			p := baseProfile()
			p.Gender = domain.GenderFemale
			p.WeightKG = 58
			p.HeightCM = 162
			p.MacroPreference = domain.MacroHighCarb
			p.Goal = domain.GoalLeanGain
			return p
		}(),
		func() *domain.UserProfile {
			p := baseProfile()
			p.MacroPreference = domain.MacroCustom
			p.CustomMacroRatio = &domain.MacroRatio{ProteinPct: 40, FatPct: 30, CarbPct: 30}
			return p
		}(),
	}

	for _, p := range profiles {
		r := Calculate(p)
		got := r.Macros.Calories()
		assert.InDelta(t, r.TargetCalories, got, conservationTolerance,
			"macros %+v should reconstruct %d kcal", r.Macros, r.TargetCalories)
	}
}

func TestProteinCeilingPerKilogram(t *testing.T) {
	p := baseProfile()
	p.WeightKG = 50
	p.HeightCM = 160
	p.MacroPreference = domain.MacroHighProtein
	p.ActivityLevel = domain.ActivityAthlete
	p.Goal = domain.GoalDirtyGain

	r := Calculate(p)
	assert.LessOrEqual(t, r.Macros.ProteinG, int(50*2.2))
	// The clamp shifts calories into fat/carbs, conservation still holds.
	assert.InDelta(t, r.TargetCalories, r.Macros.Calories(), conservationTolerance)
}

func TestDerivedRatioByPreference(t *testing.T) {
	// High-carb preference pushes carbs to 60% of calories.
	p := baseProfile()
	p.MacroPreference = domain.MacroHighCarb
	r := Calculate(p)
	carbKcal := float64(r.Macros.CarbG * kcalPerGramCarb)
	assert.InDelta(t, 0.60, carbKcal/float64(r.TargetCalories), 0.02)

	// Fat-loss with balanced preference drops carbs to 45%.
	p = baseProfile()
	p.Goal = domain.GoalLoseFat
	r = Calculate(p)
	carbKcal = float64(r.Macros.CarbG * kcalPerGramCarb)
	assert.InDelta(t, 0.45, carbKcal/float64(r.TargetCalories), 0.04)
}

func TestMalformedInputsCoerceToZero(t *testing.T) {
	r := Calculate(&domain.UserProfile{
		WeightKG: -5,
		HeightCM: -170,
		Age:      -1,
		Gender:   domain.GenderMale,
		Goal:     domain.GoalMaintain,
	})
	// Degenerate but never panicking output.
	assert.Equal(t, 5, r.BMR) // male constant alone survives
	assert.GreaterOrEqual(t, r.TargetCalories, 0)
	assert.GreaterOrEqual(t, r.Macros.ProteinG, 0)
	assert.GreaterOrEqual(t, r.Macros.FatG, 0)
	assert.GreaterOrEqual(t, r.Macros.CarbG, 0)
}
