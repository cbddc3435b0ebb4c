// Package screen owns the calendar dashboard's state: typed actions, a pure
// reducer, and a single-goroutine store that applies actions one at a time.
package screen

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sanggab/PagenationCalendar/internal/calendar"
	"github.com/sanggab/PagenationCalendar/internal/diet"
	"github.com/sanggab/PagenationCalendar/internal/hydration"
	"github.com/sanggab/PagenationCalendar/internal/nutrient"
	"github.com/sanggab/PagenationCalendar/internal/paging"
)

// Goals are the daily targets the dashboard compares intake against.
type Goals struct {
	CaloriesKcal    float64                   `yaml:"calories_kcal" json:"calories_kcal"`
	Nutrients       map[nutrient.Kind]float64 `yaml:"nutrients" json:"nutrients"`
	WaterLiters     float64                   `yaml:"water_liters" json:"water_liters"`
	WaterStepLiters float64                   `yaml:"water_step_liters" json:"water_step_liters"`
}

// DefaultGoals returns a typical adult's daily targets.
func DefaultGoals() Goals {
	return Goals{
		CaloriesKcal: 2500,
		Nutrients: map[nutrient.Kind]float64{
			nutrient.Carb:        300,
			nutrient.Protein:     120,
			nutrient.Fat:         50,
			nutrient.Sodium:      2000,
			nutrient.Sugar:       50,
			nutrient.Fiber:       25,
			nutrient.Cholesterol: 300,
		},
		WaterLiters:     hydration.DefaultGoalLiters,
		WaterStepLiters: hydration.DefaultStepLiters,
	}
}

// Merge fills zero or missing goals in g from defaults.
func (g Goals) Merge(defaults Goals) Goals {
	if g.CaloriesKcal <= 0 {
		g.CaloriesKcal = defaults.CaloriesKcal
	}
	merged := make(map[nutrient.Kind]float64, len(defaults.Nutrients))
	for k, v := range defaults.Nutrients {
		merged[k] = v
	}
	for k, v := range g.Nutrients {
		if v > 0 {
			merged[k] = v
		}
	}
	g.Nutrients = merged
	if g.WaterLiters <= 0 {
		g.WaterLiters = defaults.WaterLiters
	}
	if g.WaterStepLiters <= 0 {
		g.WaterStepLiters = defaults.WaterStepLiters
	}
	return g
}

// Env holds the collaborators the reducer reads but never mutates.
type Env struct {
	Calendar calendar.Calendar
	Pager    paging.Pager
	Window   paging.WindowConfig
	// GridStart, when set, is the oldest day the strip loads up front.
	GridStart time.Time
	Now       func() time.Time
	Log       *zap.Logger
}

func (e Env) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

func (e Env) logger() *zap.Logger {
	if e.Log == nil {
		return zap.NewNop()
	}
	return e.Log
}

// State is the screen's in-memory state. It is discarded with the screen.
type State struct {
	Window       *paging.WeekWindow
	SelectedDate time.Time
	Title        string

	DashboardPage     int
	DashboardPosition int

	Goals     Goals
	Evaluator *nutrient.Evaluator

	// Diet log and manual adjustments are keyed by YYYY-MM-DD.
	DietLog     map[string][]diet.Food
	Adjustments map[string]map[nutrient.Kind]float64
	Water       map[string]float64
	WaterGuide  hydration.Guide
}

// NewState returns an empty state; Appear builds the calendar.
func NewState(goals Goals, ev *nutrient.Evaluator) *State {
	if ev == nil {
		ev = nutrient.DefaultEvaluator()
	}
	return &State{
		Goals:       goals.Merge(DefaultGoals()),
		Evaluator:   ev,
		DietLog:     map[string][]diet.Food{},
		Adjustments: map[string]map[nutrient.Kind]float64{},
		Water:       map[string]float64{},
		WaterGuide:  hydration.GuideEmpty,
	}
}

func (s *State) selectedKey() string {
	return s.SelectedDate.Format("2006-01-02")
}

// CurrentScrollID is the ID of the first day of the focused week.
func (s *State) CurrentScrollID() uuid.UUID {
	if s.Window == nil {
		return uuid.Nil
	}
	week := s.Window.FocusedWeek()
	if len(week) == 0 {
		return uuid.Nil
	}
	return week[0].ID
}

// Intake returns the selected day's intake of k: logged foods plus manual
// adjustments, never below zero.
func (s *State) Intake(k nutrient.Kind) nutrient.Intake {
	return s.IntakeOn(s.selectedKey(), k)
}

// IntakeOn is Intake for the day keyed YYYY-MM-DD.
func (s *State) IntakeOn(key string, k nutrient.Kind) nutrient.Intake {
	logged := diet.Totals(s.DietLog[key]).Amount(k)
	in := nutrient.Intake{Kind: k, Current: logged, Goal: s.Goals.Nutrients[k]}
	return in.Add(s.Adjustments[key][k])
}

// WaterIntake returns the selected day's water intake.
func (s *State) WaterIntake() hydration.Intake {
	in := hydration.New(s.Goals.WaterLiters, s.Goals.WaterStepLiters)
	in.Current = s.Water[s.selectedKey()]
	return in
}

// Macros returns the selected day's calorie summary.
func (s *State) Macros() nutrient.DailyMacros {
	return nutrient.DailyMacros{
		Carb:         s.Intake(nutrient.Carb),
		Protein:      s.Intake(nutrient.Protein),
		Fat:          s.Intake(nutrient.Fat),
		CaloriesGoal: s.Goals.CaloriesKcal,
	}
}
