// Package nutrition computes daily calorie and macronutrient targets from a
// user's body attributes, activity level and goal.
package nutrition

import "math"

// Gender values accepted by ComputeTargets.
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// Goal values accepted by ComputeTargets.
const (
	GoalLoseWeight = "lose_weight"
	GoalMaintain   = "maintain"
	GoalGainMuscle = "gain_muscle"
)

// activityFactors maps activity levels to the multiplier applied to BMR.
// Unknown levels fall back to sedentary.
var activityFactors = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very_active": 1.9,
}

// Profile holds the inputs for a target computation.
type Profile struct {
	WeightKg      float64
	HeightCm      float64
	AgeYears      int
	Gender        string
	ActivityLevel string
	Goal          string
}

// Targets holds the computed daily targets. Calories are kcal, the rest are
// grams.
type Targets struct {
	Calories int
	Protein  int
	Carbs    int
	Fats     int
	Fiber    int
}

// ComputeTargets derives daily targets from a profile. It reports ok=false
// when the numeric inputs are not finite positive numbers; callers are
// expected to keep any previously computed targets in that case.
//
// BMR uses the Mifflin-St Jeor equation, scaled by an activity factor and
// adjusted for the goal (-15% for weight loss, +10% for muscle gain). Macro
// grams follow the goal's percentage split at 4 kcal/g for protein and
// carbs and 9 kcal/g for fat. The fiber target is 14 g per 1000 kcal.
func ComputeTargets(p Profile) (Targets, bool) {
	if !computable(p.WeightKg) || !computable(p.HeightCm) || p.AgeYears <= 0 {
		return Targets{}, false
	}

	var bmr float64
	if p.Gender == GenderMale {
		bmr = 10*p.WeightKg + 6.25*p.HeightCm - 5*float64(p.AgeYears) + 5
	} else {
		bmr = 10*p.WeightKg + 6.25*p.HeightCm - 5*float64(p.AgeYears) - 161
	}

	factor, ok := activityFactors[p.ActivityLevel]
	if !ok {
		factor = activityFactors["sedentary"]
	}

	calories := bmr * factor
	switch p.Goal {
	case GoalLoseWeight:
		calories *= 0.85
	case GoalGainMuscle:
		calories *= 1.10
	}
	totalCalories := math.Round(calories)

	proteinPct, carbsPct, fatsPct := 0.30, 0.40, 0.30
	switch p.Goal {
	case GoalLoseWeight:
		proteinPct, carbsPct, fatsPct = 0.35, 0.35, 0.30
	case GoalGainMuscle:
		proteinPct, carbsPct, fatsPct = 0.30, 0.45, 0.25
	}

	return Targets{
		Calories: int(totalCalories),
		Protein:  int(math.Round(totalCalories * proteinPct / 4)),
		Carbs:    int(math.Round(totalCalories * carbsPct / 4)),
		Fats:     int(math.Round(totalCalories * fatsPct / 9)),
		Fiber:    int(math.Round(totalCalories / 1000 * 14)),
	}, true
}

func computable(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}
