// Package hydration tracks the day's water intake in litres.
package hydration

import "math"

// Defaults used by the water page.
const (
	DefaultGoalLiters = 3.5
	DefaultStepLiters = 0.25
)

// Guide is the hint shown next to the cup.
type Guide string

const (
	GuideEmpty      Guide = "empty"
	GuideInProgress Guide = "in_progress"
	GuideAchieved   Guide = "achieved"
)

// Intake is the water consumed today. Current only changes through
// Increase/Decrease, which keep it at or above zero.
type Intake struct {
	Current float64 `json:"current_liters"`
	Goal    float64 `json:"goal_liters"`
	Step    float64 `json:"step_liters"`
}

// New returns an empty intake. Non-positive goal or step fall back to the defaults.
func New(goal, step float64) Intake {
	if goal <= 0 {
		goal = DefaultGoalLiters
	}
	if step <= 0 {
		step = DefaultStepLiters
	}
	return Intake{Goal: goal, Step: step}
}

// Increase adds one step. There is no upper bound.
func (in Intake) Increase() Intake {
	in.Current = roundML(in.Current + in.Step)
	return in
}

// Decrease removes one step, stopping at zero.
func (in Intake) Decrease() Intake {
	in.Current = math.Max(0, roundML(in.Current-in.Step))
	return in
}

// Guide classifies progress towards the goal.
func (in Intake) Guide() Guide {
	switch {
	case in.Current <= 0:
		return GuideEmpty
	case in.Current < in.Goal:
		return GuideInProgress
	default:
		return GuideAchieved
	}
}

// FillRatio is Current/Goal clamped to [0, 1] for the cup fill level.
func (in Intake) FillRatio() float64 {
	if in.Goal <= 0 {
		return 0
	}
	return math.Max(0, math.Min(1, in.Current/in.Goal))
}

// roundML rounds to whole millilitres so repeated 0.1 steps don't drift.
func roundML(liters float64) float64 {
	return math.Round(liters*1000) / 1000
}
