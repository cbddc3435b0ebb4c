// Package nutrient evaluates daily nutrient intake against goals.
package nutrient

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrUnknownKind is returned when a nutrient name doesn't match any Kind.
var ErrUnknownKind = errors.New("unknown nutrient kind")

// Kind identifies a tracked nutrient.
type Kind string

const (
	Carb        Kind = "carb"
	Protein     Kind = "protein"
	Fat         Kind = "fat"
	Sodium      Kind = "sodium"
	Sugar       Kind = "sugar"
	Fiber       Kind = "fiber"
	Cholesterol Kind = "cholesterol"
)

// Kinds lists every nutrient in dashboard order: macros first, then the
// sub-nutrient page.
var Kinds = []Kind{Carb, Protein, Fat, Sodium, Sugar, Fiber, Cholesterol}

// Macros are the three calorie-bearing nutrients shown on the main chart.
var Macros = []Kind{Carb, Protein, Fat}

// aliases accepts the names food databases commonly use.
var aliases = map[string]Kind{
	"carbs":         Carb,
	"carbohydrate":  Carb,
	"carbohydrates": Carb,
	"sugars":        Sugar,
	"chol":          Cholesterol,
}

// ParseKind resolves a nutrient name, case-insensitively.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, k := range Kinds {
		if string(k) == name {
			return k, nil
		}
	}
	if k, ok := aliases[name]; ok {
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Unit is the display unit of the nutrient's amounts.
func (k Kind) Unit() string {
	switch k {
	case Sodium, Cholesterol:
		return "mg"
	default:
		return "g"
	}
}

// KcalPerGram is the Atwater factor for macros and 0 for everything else.
func (k Kind) KcalPerGram() float64 {
	switch k {
	case Carb, Protein:
		return 4
	case Fat:
		return 9
	default:
		return 0
	}
}

// Ratio returns value/goal, or 0 when goal isn't positive.
func Ratio(value, goal float64) float64 {
	if goal <= 0 || math.IsNaN(goal) || math.IsNaN(value) {
		return 0
	}
	return value / goal
}

// percent scales before dividing so whole-number inputs land exactly on
// thresholds (55/50 is 110, not 110.00000000000001).
func percent(value, goal float64) float64 {
	if goal <= 0 || math.IsNaN(goal) || math.IsNaN(value) {
		return 0
	}
	return value * 100 / goal
}

// Intake is the amount of one nutrient consumed today against its goal.
type Intake struct {
	Kind    Kind    `json:"kind"`
	Current float64 `json:"current"`
	Goal    float64 `json:"goal"`
}

// Ratio is Current/Goal (0 for a non-positive goal).
func (in Intake) Ratio() float64 {
	return Ratio(in.Current, in.Goal)
}

// Percent is the ratio as a percentage.
func (in Intake) Percent() float64 {
	return percent(in.Current, in.Goal)
}

// Calories is the energy the intake contributes (macros only).
func (in Intake) Calories() float64 {
	return in.Current * in.Kind.KcalPerGram()
}

// Add returns the intake with amount added, never dropping below zero.
func (in Intake) Add(amount float64) Intake {
	in.Current = math.Max(0, in.Current+amount)
	return in
}

// DailyMacros summarises calorie intake from carb, protein and fat.
type DailyMacros struct {
	Carb         Intake  `json:"carb"`
	Protein      Intake  `json:"protein"`
	Fat          Intake  `json:"fat"`
	CaloriesGoal float64 `json:"calories_goal"`
}

// CaloriesConsumed rounds each macro's kcal before summing, matching the
// per-segment values drawn on the chart.
func (m DailyMacros) CaloriesConsumed() float64 {
	return math.Round(m.Carb.Calories()) + math.Round(m.Protein.Calories()) + math.Round(m.Fat.Calories())
}

// CaloriesRemaining is the goal minus consumed calories, floored at zero.
func (m DailyMacros) CaloriesRemaining() float64 {
	return math.Max(0, m.CaloriesGoal-m.CaloriesConsumed())
}

// CaloriesExcess is consumed calories over the goal, floored at zero.
func (m DailyMacros) CaloriesExcess() float64 {
	return math.Max(0, m.CaloriesConsumed()-m.CaloriesGoal)
}

// CalorieGuide is the hint shown under the calorie chart.
type CalorieGuide string

const (
	CalorieGuidePrompt    CalorieGuide = "prompt"
	CalorieGuideRemaining CalorieGuide = "remaining"
	CalorieGuideExcessive CalorieGuide = "excessive"
)

// Guide asks for a meal until the day has something logged, then reports
// remaining calories while under the goal and the excess once it is reached.
func (m DailyMacros) Guide(logged bool) CalorieGuide {
	switch {
	case !logged:
		return CalorieGuidePrompt
	case m.CaloriesConsumed() < m.CaloriesGoal:
		return CalorieGuideRemaining
	default:
		return CalorieGuideExcessive
	}
}
