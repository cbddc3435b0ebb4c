package nutrient

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate_MacroDeadBand(t *testing.T) {
	e := DefaultEvaluator()
	cases := []struct {
		kind  Kind
		value float64
		goal  float64
		want  Status
	}{
		{Carb, 0, 300, Insufficient},
		{Carb, 239, 300, Insufficient}, // 79.7%
		{Carb, 240, 300, Adequate},     // 80%
		{Carb, 360, 300, Adequate},     // 120% is still inside the band
		{Carb, 361, 300, Excessive},
		{Protein, 107, 120, Insufficient}, // 89.2%
		{Protein, 108, 120, Adequate},
		{Protein, 156, 120, Adequate},
		{Protein, 157, 120, Excessive},
		{Fat, 55, 50, Adequate},
		{Fat, 56, 50, Excessive},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, e.Evaluate(tc.kind, tc.value, tc.goal), "%s %v/%v", tc.kind, tc.value, tc.goal)
	}
}

func TestEvaluate_CeilingNutrients(t *testing.T) {
	e := DefaultEvaluator()
	for _, k := range []Kind{Sodium, Sugar, Cholesterol} {
		assert.Equal(t, Adequate, e.Evaluate(k, 0, 50), k)
		assert.Equal(t, Adequate, e.Evaluate(k, 50, 50), k)
		assert.Equal(t, Caution, e.Evaluate(k, 51, 50), k)
		assert.Equal(t, Caution, e.Evaluate(k, 75, 50), k)
		assert.Equal(t, Warning, e.Evaluate(k, 76, 50), k)
	}
}

func TestEvaluate_FiberOnlyTwoTiers(t *testing.T) {
	e := DefaultEvaluator()
	assert.Equal(t, Insufficient, e.Evaluate(Fiber, 39, 50))
	assert.Equal(t, Adequate, e.Evaluate(Fiber, 40, 50))
	assert.Equal(t, Adequate, e.Evaluate(Fiber, 5000, 50))
}

func TestEvaluate_ZeroGoalIsInsufficient(t *testing.T) {
	e := DefaultEvaluator()
	for _, k := range Kinds {
		assert.NotPanics(t, func() {
			assert.Equal(t, Insufficient, e.Evaluate(k, 100, 0))
			assert.Equal(t, Insufficient, e.Evaluate(k, 0, 0))
			assert.Equal(t, Insufficient, e.Evaluate(k, 10, -5))
		})
	}
	assert.Zero(t, Ratio(10, 0))
	assert.Zero(t, Intake{Kind: Carb, Current: 10}.Percent())
}

func TestEvaluate_UnknownKind(t *testing.T) {
	assert.Equal(t, Insufficient, DefaultEvaluator().Evaluate(Kind("iron"), 10, 10))
}

// TestEvaluate_MonotonicInValue sweeps intake from 0 to 3x the goal for every
// nutrient and checks the tier never goes down.
func TestEvaluate_MonotonicInValue(t *testing.T) {
	e := DefaultEvaluator()
	for _, k := range Kinds {
		for _, goal := range []float64{0.5, 1, 50, 300, 2300} {
			prev := Insufficient
			for step := 0; step <= 3000; step++ {
				v := goal * float64(step) / 1000
				s := e.Evaluate(k, v, goal)
				require.GreaterOrEqual(t, s, prev, "%s v=%v goal=%v", k, v, goal)
				prev = s
			}
		}
	}
}

func TestRatio(t *testing.T) {
	assert.InDelta(t, 0.5, Ratio(25, 50), 1e-9)
	assert.InDelta(t, 2.0, Intake{Kind: Sodium, Current: 100, Goal: 50}.Ratio(), 1e-9)
	assert.Zero(t, Ratio(math.NaN(), 10))
}

func TestNewEvaluator_Overrides(t *testing.T) {
	e, err := NewEvaluator(map[Kind]Rule{
		Sodium: {Shape: Ceiling, Caution: 90, Warning: 120},
	})
	require.NoError(t, err)
	assert.Equal(t, Caution, e.Evaluate(Sodium, 95, 100))
	assert.Equal(t, Warning, e.Evaluate(Sodium, 121, 100))
	// untouched rules keep defaults
	assert.Equal(t, Excessive, e.Evaluate(Fat, 56, 50))

	_, err = NewEvaluator(map[Kind]Rule{Carb: {Shape: Range, Insufficient: 120, Excessive: 80}})
	require.ErrorIs(t, err, ErrInvalidRule)

	_, err = NewEvaluator(map[Kind]Rule{Kind("iron"): {Shape: Floor, Insufficient: 10}})
	require.ErrorIs(t, err, ErrUnknownKind)

	_, err = NewEvaluator(map[Kind]Rule{Fiber: {Shape: "sideways"}})
	require.ErrorIs(t, err, ErrInvalidRule)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind(" Carbohydrate ")
	require.NoError(t, err)
	assert.Equal(t, Carb, k)

	k, err = ParseKind("sodium")
	require.NoError(t, err)
	assert.Equal(t, Sodium, k)
	assert.Equal(t, "mg", k.Unit())

	_, err = ParseKind("iron")
	require.ErrorIs(t, err, ErrUnknownKind)
}

func TestStatus_TextRoundTrip(t *testing.T) {
	b, err := json.Marshal(map[string]Status{"s": Caution})
	require.NoError(t, err)
	assert.JSONEq(t, `{"s":"caution"}`, string(b))

	var s Status
	require.NoError(t, s.UnmarshalText([]byte("Warning")))
	assert.Equal(t, Warning, s)
	require.Error(t, s.UnmarshalText([]byte("fine")))
	assert.Equal(t, "status(9)", Status(9).String())
}

func TestDailyMacros_Calories(t *testing.T) {
	m := DailyMacros{
		Carb:         Intake{Kind: Carb, Current: 100.1},
		Protein:      Intake{Kind: Protein, Current: 20},
		Fat:          Intake{Kind: Fat, Current: 10.05},
		CaloriesGoal: 1000,
	}
	// 400.4 -> 400, 80, 90.45 -> 90
	assert.Equal(t, 570.0, m.CaloriesConsumed())
	assert.Equal(t, 430.0, m.CaloriesRemaining())

	m.CaloriesGoal = 100
	assert.Zero(t, m.CaloriesRemaining())
	assert.Zero(t, Intake{Kind: Sodium, Current: 900}.Calories())
}

func TestDailyMacros_Guide(t *testing.T) {
	m := DailyMacros{Carb: Intake{Kind: Carb, Current: 100}, CaloriesGoal: 500}

	assert.Equal(t, CalorieGuidePrompt, m.Guide(false))
	assert.Equal(t, CalorieGuideRemaining, m.Guide(true))
	assert.Zero(t, m.CaloriesExcess())

	m.CaloriesGoal = 400
	assert.Equal(t, CalorieGuideExcessive, m.Guide(true), "reaching the goal counts as excess")
	assert.Zero(t, m.CaloriesExcess())

	m.CaloriesGoal = 250
	assert.Equal(t, CalorieGuideExcessive, m.Guide(true))
	assert.Equal(t, 150.0, m.CaloriesExcess())
	assert.Zero(t, m.CaloriesRemaining())
}

func TestIntake_AddClampsAtZero(t *testing.T) {
	in := Intake{Kind: Carb, Current: 10, Goal: 300}
	assert.Equal(t, 110.0, in.Add(100).Current)
	assert.Zero(t, in.Add(-50).Current)
}
