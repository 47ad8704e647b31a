package nutrition

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProfile() Profile {
	return Profile{
		WeightKg:      80,
		HeightCm:      180,
		AgeYears:      30,
		Gender:        GenderMale,
		ActivityLevel: "moderate",
		Goal:          GoalMaintain,
	}
}

func TestComputeTargets_ReferenceScenario(t *testing.T) {
	// BMR = 10*80 + 6.25*180 - 5*30 + 5 = 1842.5
	// calories = round(1842.5 * 1.55) = 2856
	targets, ok := ComputeTargets(validProfile())

	require.True(t, ok)
	assert.Equal(t, 2856, targets.Calories)
	assert.Equal(t, 214, targets.Protein)
	assert.Equal(t, 286, targets.Carbs)
	assert.Equal(t, 95, targets.Fats)
	assert.Equal(t, 40, targets.Fiber)
}

func TestComputeTargets_Deterministic(t *testing.T) {
	first, ok := ComputeTargets(validProfile())
	require.True(t, ok)

	second, ok := ComputeTargets(validProfile())
	require.True(t, ok)

	assert.Equal(t, first, second)
}

func TestComputeTargets_FemaleAndOtherUseSameEquation(t *testing.T) {
	p := validProfile()
	p.Gender = GenderFemale
	female, ok := ComputeTargets(p)
	require.True(t, ok)

	p.Gender = GenderOther
	other, ok := ComputeTargets(p)
	require.True(t, ok)

	assert.Equal(t, female, other)

	male, _ := ComputeTargets(validProfile())
	assert.Less(t, female.Calories, male.Calories)
}

func TestComputeTargets_GoalOrdering(t *testing.T) {
	p := validProfile()

	p.Goal = GoalLoseWeight
	lose, ok := ComputeTargets(p)
	require.True(t, ok)

	p.Goal = GoalMaintain
	maintain, ok := ComputeTargets(p)
	require.True(t, ok)

	p.Goal = GoalGainMuscle
	gain, ok := ComputeTargets(p)
	require.True(t, ok)

	assert.Less(t, lose.Calories, maintain.Calories)
	assert.Less(t, maintain.Calories, gain.Calories)
}

func TestComputeTargets_MacrosAddUpToCalories(t *testing.T) {
	profiles := []Profile{
		validProfile(),
		{WeightKg: 55, HeightCm: 162, AgeYears: 45, Gender: GenderFemale, ActivityLevel: "light", Goal: GoalLoseWeight},
		{WeightKg: 95, HeightCm: 192, AgeYears: 22, Gender: GenderMale, ActivityLevel: "very_active", Goal: GoalGainMuscle},
	}

	for _, p := range profiles {
		targets, ok := ComputeTargets(p)
		require.True(t, ok)

		macroKcal := targets.Protein*4 + targets.Carbs*4 + targets.Fats*9
		// Rounding each macro independently can drift a few kcal.
		assert.InDelta(t, targets.Calories, macroKcal, 10,
			"macro kcal %d should approximate total %d", macroKcal, targets.Calories)

		assert.Equal(t, int(math.Round(float64(targets.Calories)/1000*14)), targets.Fiber)
		assert.Positive(t, targets.Calories)
	}
}

func TestComputeTargets_UnknownActivityDefaultsToSedentary(t *testing.T) {
	p := validProfile()
	p.ActivityLevel = "extreme"
	unknown, ok := ComputeTargets(p)
	require.True(t, ok)

	p.ActivityLevel = "sedentary"
	sedentary, ok := ComputeTargets(p)
	require.True(t, ok)

	assert.Equal(t, sedentary, unknown)
}

func TestComputeTargets_NotComputable(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Profile)
	}{
		{"zero weight", func(p *Profile) { p.WeightKg = 0 }},
		{"negative height", func(p *Profile) { p.HeightCm = -170 }},
		{"zero age", func(p *Profile) { p.AgeYears = 0 }},
		{"NaN weight", func(p *Profile) { p.WeightKg = math.NaN() }},
		{"infinite height", func(p *Profile) { p.HeightCm = math.Inf(1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProfile()
			tt.mutate(&p)

			targets, ok := ComputeTargets(p)
			assert.False(t, ok)
			assert.Zero(t, targets)
		})
	}
}
