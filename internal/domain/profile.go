package domain

import (
	"errors"
)

// Gender of the user, used to pick the Mifflin-St Jeor constant.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Goal is the user's body-composition objective.
type Goal string

const (
	GoalLoseFat       Goal = "lose_fat"
	GoalMaintain      Goal = "maintain"
	GoalLeanGain      Goal = "lean_gain"
	GoalDirtyGain     Goal = "dirty_gain"
	GoalRecomposition Goal = "recomposition"
)

// ActivityLevel maps to a fixed TDEE multiplier.
type ActivityLevel string

const (
	ActivitySedentary ActivityLevel = "sedentary"
	ActivityLight     ActivityLevel = "light"
	ActivityModerate  ActivityLevel = "moderate"
	ActivityHigh      ActivityLevel = "high"
	ActivityAthlete   ActivityLevel = "athlete"
)

// ActivityMultipliers is the single source of truth for valid activity
// levels and their TDEE multipliers.
var ActivityMultipliers = map[ActivityLevel]float64{
	ActivitySedentary: 1.2,
	ActivityLight:     1.375,
	ActivityModerate:  1.55,
	ActivityHigh:      1.725,
	ActivityAthlete:   1.9,
}

// TrainingHistory describes how long the user has been training.
type TrainingHistory string

const (
	TrainingBeginner     TrainingHistory = "beginner"     // < 1 year
	TrainingIntermediate TrainingHistory = "intermediate" // 1-3 years
	TrainingAdvanced     TrainingHistory = "advanced"     // 3+ years
)

// MacroPreference selects how the macro split is derived.
type MacroPreference string

const (
	MacroBalanced    MacroPreference = "balanced"
	MacroHighCarb    MacroPreference = "high_carb"
	MacroHighProtein MacroPreference = "high_protein"
	MacroCustom      MacroPreference = "custom"
)

// HealthCondition tags sub-clinical conditions the plan should account for.
type HealthCondition string

const (
	ConditionNone            HealthCondition = "none"
	ConditionLiver           HealthCondition = "liver"
	ConditionKidney          HealthCondition = "kidney"
	ConditionAdrenal         HealthCondition = "adrenal"
	ConditionThyroid         HealthCondition = "thyroid"
	ConditionDigestive       HealthCondition = "digestive"
	ConditionFemaleHormonal  HealthCondition = "female_hormonal"
	ConditionMaleHormonal    HealthCondition = "male_hormonal"
	ConditionHighCholesterol HealthCondition = "high_cholesterol"
	ConditionHighUricAcid    HealthCondition = "high_uric_acid"
)

// WorkoutTiming is when the user typically trains; it decides which snack
// slot the generated meal plan carries.
type WorkoutTiming string

const (
	WorkoutMorning   WorkoutTiming = "morning"
	WorkoutAfternoon WorkoutTiming = "afternoon"
	WorkoutEvening   WorkoutTiming = "evening"
	WorkoutRest      WorkoutTiming = "rest"
)

// MacroRatio holds custom percentage targets for protein/fat/carbs.
// Only meaningful when the macro preference is MacroCustom.
type MacroRatio struct {
	ProteinPct int `bson:"proteinPct" json:"proteinPct"`
	FatPct     int `bson:"fatPct" json:"fatPct"`
	CarbPct    int `bson:"carbPct" json:"carbPct"`
}

// Sum returns the total of the three percentages.
func (r MacroRatio) Sum() int {
	return r.ProteinPct + r.FatPct + r.CarbPct
}

// UserProfile is an immutable snapshot of one completed intake submission.
// It is replaced wholesale on resubmission, never mutated field-by-field;
// Revision increments on each replacement so in-flight AI fetches keyed to
// an older revision can be discarded at commit time.
type UserProfile struct {
	HeightCM float64 `bson:"heightCm" json:"heightCm"`
	WeightKG float64 `bson:"weightKg" json:"weightKg"`
	Age      int     `bson:"age" json:"age"`
	Gender   Gender  `bson:"gender" json:"gender"`
	// BodyFatPct is optional; > 0 switches BMR to the lean-mass formula.
	BodyFatPct float64 `bson:"bodyFatPct,omitempty" json:"bodyFatPct,omitempty"`

	Goal Goal `bson:"goal" json:"goal"`
	// TargetWeightKG and DurationWeeks are optional; when both are present
	// the calculator derives calories from the goal, when only the target
	// is present it derives a timeline instead.
	TargetWeightKG float64 `bson:"targetWeightKg,omitempty" json:"targetWeightKg,omitempty"`
	DurationWeeks  int     `bson:"durationWeeks,omitempty" json:"durationWeeks,omitempty"`

	ActivityLevel   ActivityLevel   `bson:"activityLevel" json:"activityLevel"`
	TrainingHistory TrainingHistory `bson:"trainingHistory" json:"trainingHistory"`

	MacroPreference  MacroPreference `bson:"macroPreference" json:"macroPreference"`
	CustomMacroRatio *MacroRatio     `bson:"customMacroRatio,omitempty" json:"customMacroRatio,omitempty"`

	WaterIntake  string `bson:"waterIntake,omitempty" json:"waterIntake,omitempty"`
	Supplements  string `bson:"supplements,omitempty" json:"supplements,omitempty"`
	Stress       int    `bson:"stress" json:"stress"`             // 1-10
	SleepQuality int    `bson:"sleepQuality" json:"sleepQuality"` // 1-10

	HealthConditions []HealthCondition `bson:"healthConditions,omitempty" json:"healthConditions,omitempty"`
	CustomCondition  string            `bson:"customCondition,omitempty" json:"customCondition,omitempty"`

	WorkoutTiming WorkoutTiming `bson:"workoutTiming" json:"workoutTiming"`

	// Revision is the generation counter bumped by the profile service on
	// every submission. Plan writes are conditioned on it.
	Revision int64 `bson:"revision" json:"revision"`
}

var (
	ErrInvalidCustomRatio = errors.New("custom macro percentages must sum to exactly 100")
	ErrIncompleteProfile  = errors.New("profile is missing required biometric fields")
)

// Validate checks the invariants a profile must satisfy before submission.
// The calculator itself never rejects input (it coerces); this gate is the
// place malformed profiles are caught.
func (p *UserProfile) Validate() error {
	if p.HeightCM <= 0 || p.WeightKG <= 0 || p.Age <= 0 {
		return ErrIncompleteProfile
	}
	if _, ok := ActivityMultipliers[p.ActivityLevel]; !ok {
		return ErrIncompleteProfile
	}
	if p.MacroPreference == MacroCustom {
		if p.CustomMacroRatio == nil || p.CustomMacroRatio.Sum() != 100 {
			return ErrInvalidCustomRatio
		}
	}
	return nil
}

// HasTargetWeight reports whether the user supplied an explicit goal weight.
func (p *UserProfile) HasTargetWeight() bool {
	return p.TargetWeightKG > 0
}
