// Package calc implements the deterministic metabolic calculations:
// BMR, TDEE, target calories, macro split, and goal feasibility.
// Everything here is pure and uses no I/O or clock.
package calc

import (
	"fmt"
	"math"

	"nutriplan/nutrition-app/internal/domain"
)

// Caloric densities in kcal per gram.
const (
	kcalPerGramProtein = 4
	kcalPerGramFat     = 9
	kcalPerGramCarb    = 4
)

// kcalPerKgBodyWeight is the standard approximation of the energy content
// of 1 kg of adipose tissue. It is an accepted estimate, not a precision
// guarantee.
const kcalPerKgBodyWeight = 7700

// maxWeeklyLossFraction caps safe weight loss at 1% of body weight per week.
const maxWeeklyLossFraction = 0.01

// maxWeeklyGainKg caps safe weight gain at 1.0 kg per week.
const maxWeeklyGainKg = 1.0

// Formula labels, recorded for display only.
const (
	FormulaKatchMcArdle  = "Katch-McArdle (lean body mass)"
	FormulaMifflinStJeor = "Mifflin-St Jeor (standard)"
)

// Calculate derives the full calculation result from a profile.
//
// It never returns an error: malformed numeric inputs behave as zero,
// which can produce degenerate (zero-calorie) output. Callers must not
// trust output without validating the source profile first; see
// domain.UserProfile.Validate.
func Calculate(p *domain.UserProfile) domain.CalculationResult {
	weight := nonNegative(p.WeightKG)
	height := nonNegative(p.HeightCM)
	age := p.Age
	if age < 0 {
		age = 0
	}

	bmr, formula := basalMetabolicRate(weight, height, age, p.Gender, p.BodyFatPct)

	multiplier, ok := domain.ActivityMultipliers[p.ActivityLevel]
	if !ok {
		multiplier = domain.ActivityMultipliers[domain.ActivitySedentary]
	}
	tdee := int(math.Round(bmr * multiplier))

	result := domain.CalculationResult{
		BMR:                int(math.Round(bmr)),
		TDEE:               tdee,
		FormulaUsed:        formula,
		ActivityMultiplier: multiplier,
		Feasibility:        domain.FeasibilityNotComputed,
	}

	switch {
	case p.HasTargetWeight() && p.DurationWeeks > 0:
		applyTargetWithDuration(&result, p, weight, bmr, tdee)
	case p.HasTargetWeight():
		applyTargetOnly(&result, p, weight, bmr, tdee)
	default:
		applyGoalPreset(&result, p.Goal, bmr, tdee)
	}

	result.Macros = macroSplit(p, weight, result.TargetCalories)
	return result
}

// basalMetabolicRate selects between the lean-mass formula (body fat
// supplied) and the sex-specific standard formula.
func basalMetabolicRate(weight, height float64, age int, gender domain.Gender, bodyFat float64) (float64, string) {
	if bodyFat > 0 {
		leanMass := weight * (1 - bodyFat/100)
		return 370 + 21.6*leanMass, FormulaKatchMcArdle
	}
	bmr := 10*weight + 6.25*height - 5*float64(age)
	if gender == domain.GenderMale {
		bmr += 5
	} else {
		bmr -= 161
	}
	return bmr, FormulaMifflinStJeor
}

// applyGoalPreset handles the branch with no explicit target weight:
// fixed percentage/offset per goal, canned time estimates, and no
// feasibility verdict (these are generic, not goal-directed, numbers).
func applyGoalPreset(r *domain.CalculationResult, goal domain.Goal, bmr float64, tdee int) {
	switch goal {
	case domain.GoalLoseFat:
		r.TargetCalories = int(math.Round(float64(tdee) * 0.85))
		r.TimeToGoal = "12-16 weeks"
		r.WeeklyChange = "-0.5 kg"
	case domain.GoalLeanGain:
		r.TargetCalories = tdee + 200
		r.TimeToGoal = "6-12 months"
		r.WeeklyChange = "+0.2 kg"
	case domain.GoalDirtyGain:
		r.TargetCalories = tdee + 500
		r.TimeToGoal = "3-6 months"
		r.WeeklyChange = "+0.5 kg"
	case domain.GoalRecomposition:
		r.TargetCalories = maxInt(tdee-300, int(math.Round(bmr)))
		r.TimeToGoal = "16-24 weeks"
		r.WeeklyChange = "-0.2 kg (body fat)"
	default: // maintain
		r.TargetCalories = tdee
		r.TimeToGoal = "ongoing"
		r.WeeklyChange = "0 kg"
	}
}

// applyTargetWithDuration handles an explicit target weight plus duration:
// calories are derived from the required energy delta and the goal is
// checked against safe rate-of-change limits.
func applyTargetWithDuration(r *domain.CalculationResult, p *domain.UserProfile, weight, bmr float64, tdee int) {
	deltaKg := p.TargetWeightKG - weight
	weeks := float64(p.DurationWeeks)

	dailyDelta := deltaKg * kcalPerKgBodyWeight / (weeks * 7)
	r.RequiredDeficit = int(math.Round(dailyDelta))
	r.TargetCalories = tdee + r.RequiredDeficit

	weeklyChangeKg := deltaKg / weeks
	r.WeeklyChange = fmt.Sprintf("%+.2f kg/week", weeklyChangeKg)
	r.TimeToGoal = fmt.Sprintf("%d weeks", p.DurationWeeks)

	switch {
	case deltaKg < 0:
		maxLoss := weight * maxWeeklyLossFraction
		switch {
		case -weeklyChangeKg > maxLoss:
			r.Feasibility = domain.FeasibilityInfeasible
			r.SafeMinWeeks = int(math.Ceil(-deltaKg / maxLoss))
			r.FeasibilityMessage = fmt.Sprintf(
				"losing %.2f kg/week exceeds the safe limit of 1%% of body weight (%.2f kg/week); allow at least %d weeks",
				-weeklyChangeKg, maxLoss, r.SafeMinWeeks)
		case float64(r.TargetCalories) < bmr:
			r.Feasibility = domain.FeasibilityInfeasible
			r.FeasibilityMessage = fmt.Sprintf(
				"required intake of %d kcal falls below your basal metabolic rate (%d kcal)",
				r.TargetCalories, r.BMR)
		default:
			r.Feasibility = domain.FeasibilityFeasible
			r.FeasibilityMessage = "goal is within safe weight-loss limits"
		}
	case deltaKg > 0:
		if weeklyChangeKg > maxWeeklyGainKg {
			r.Feasibility = domain.FeasibilityInfeasible
			r.FeasibilityMessage = fmt.Sprintf(
				"gaining %.2f kg/week exceeds the safe limit of %.1f kg/week",
				weeklyChangeKg, maxWeeklyGainKg)
		} else {
			r.Feasibility = domain.FeasibilityFeasible
			r.FeasibilityMessage = "goal is within safe weight-gain limits"
		}
	default:
		r.Feasibility = domain.FeasibilityFeasible
		r.FeasibilityMessage = "target weight already reached; maintenance calories apply"
		r.TimeToGoal = "achieved"
		r.WeeklyChange = "0 kg"
	}
}

// applyTargetOnly handles a target weight with no duration: a safe default
// rate is proposed and the timeline is derived from it, so the verdict is
// feasible by construction.
func applyTargetOnly(r *domain.CalculationResult, p *domain.UserProfile, weight, bmr float64, tdee int) {
	deltaKg := p.TargetWeightKG - weight
	r.Feasibility = domain.FeasibilityFeasible

	switch {
	case deltaKg < 0:
		proposed := math.Max(float64(tdee)*0.80, bmr)
		r.TargetCalories = int(math.Round(proposed))
		dailyDeficit := float64(tdee) - proposed
		weeklyLossKg := dailyDeficit * 7 / kcalPerKgBodyWeight
		if weeklyLossKg > 0 {
			weeks := int(math.Ceil(-deltaKg / weeklyLossKg))
			r.TimeToGoal = fmt.Sprintf("%d weeks", weeks)
			r.WeeklyChange = fmt.Sprintf("-%.2f kg/week", weeklyLossKg)
			r.FeasibilityMessage = fmt.Sprintf("a moderate deficit reaches %.1f kg in about %d weeks", p.TargetWeightKG, weeks)
		} else {
			// TDEE already at or below BMR; no safe deficit exists.
			r.TimeToGoal = "indeterminate"
			r.WeeklyChange = "0 kg"
			r.FeasibilityMessage = "no safe calorie deficit is available below your basal metabolic rate"
		}
	case deltaKg > 0:
		r.TargetCalories = tdee + 300
		weeklyGainKg := 300.0 * 7 / kcalPerKgBodyWeight
		weeks := int(math.Ceil(deltaKg / weeklyGainKg))
		r.TimeToGoal = fmt.Sprintf("%d weeks", weeks)
		r.WeeklyChange = fmt.Sprintf("+%.2f kg/week", weeklyGainKg)
		r.FeasibilityMessage = fmt.Sprintf("a +300 kcal surplus reaches %.1f kg in about %d weeks", p.TargetWeightKG, weeks)
	default:
		r.TargetCalories = tdee
		r.TimeToGoal = "achieved"
		r.WeeklyChange = "0 kg"
		r.FeasibilityMessage = "target weight already reached"
	}
}

// macroSplit computes gram targets for protein/fat/carbs. Two mutually
// exclusive paths: a custom percentage ratio, or a derived split from the
// macro preference and goal.
func macroSplit(p *domain.UserProfile, weight float64, targetCalories int) domain.MacroSplit {
	target := float64(targetCalories)

	if p.MacroPreference == domain.MacroCustom && p.CustomMacroRatio != nil {
		ratio := p.CustomMacroRatio
		return domain.MacroSplit{
			ProteinG: maxInt(0, roundF(target*float64(ratio.ProteinPct)/100/kcalPerGramProtein)),
			FatG:     maxInt(0, roundF(target*float64(ratio.FatPct)/100/kcalPerGramFat)),
			CarbG:    maxInt(0, roundF(target*float64(ratio.CarbPct)/100/kcalPerGramCarb)),
		}
	}

	cutting := p.Goal == domain.GoalLoseFat || p.Goal == domain.GoalRecomposition

	// Carb percentage by preference, with goal nudging the balanced case.
	carbRatio := 0.50
	switch p.MacroPreference {
	case domain.MacroHighCarb:
		carbRatio = 0.60
	case domain.MacroHighProtein:
		carbRatio = 0.45
	default:
		if cutting {
			carbRatio = 0.45
		}
	}

	proteinRatio := 0.20
	if p.MacroPreference == domain.MacroHighProtein {
		proteinRatio = 0.35
	} else if cutting {
		proteinRatio = 0.30
	}

	// Protein first, clamped between the minimum healthy share and the
	// per-kilogram ceiling.
	proteinG := roundF(target * proteinRatio / kcalPerGramProtein)
	minProteinG := roundF(target * 0.15 / kcalPerGramProtein)
	maxProteinG := int(math.Floor(weight * 2.2))
	if proteinG > maxProteinG {
		proteinG = maxProteinG
	}
	if proteinG < minProteinG {
		proteinG = minProteinG
	}

	carbG := roundF(target * carbRatio / kcalPerGramCarb)

	// Fat takes the caloric remainder, then is clamped into 20-35% of
	// calories. Any adjustment transfers to carbs (never protein) so the
	// total stays conserved.
	remainder := target - float64(proteinG*kcalPerGramProtein) - float64(carbG*kcalPerGramCarb)
	fatG := roundF(remainder / kcalPerGramFat)

	minFatG := roundF(target * 0.20 / kcalPerGramFat)
	maxFatG := roundF(target * 0.35 / kcalPerGramFat)
	if fatG < minFatG {
		deficit := (minFatG - fatG) * kcalPerGramFat
		carbG -= roundF(float64(deficit) / kcalPerGramCarb)
		fatG = minFatG
	} else if fatG > maxFatG {
		surplus := (fatG - maxFatG) * kcalPerGramFat
		carbG += roundF(float64(surplus) / kcalPerGramCarb)
		fatG = maxFatG
	}

	return domain.MacroSplit{
		ProteinG: maxInt(0, proteinG),
		FatG:     maxInt(0, fatG),
		CarbG:    maxInt(0, carbG),
	}
}

func roundF(v float64) int {
	return int(math.Round(v))
}

func nonNegative(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
