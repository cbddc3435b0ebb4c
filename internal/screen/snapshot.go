package screen

import (
	"time"

	"github.com/google/uuid"

	"github.com/sanggab/PagenationCalendar/internal/calendar"
	"github.com/sanggab/PagenationCalendar/internal/diet"
	"github.com/sanggab/PagenationCalendar/internal/hydration"
	"github.com/sanggab/PagenationCalendar/internal/nutrient"
)

// Snapshot is an immutable copy of State shaped for a renderer. Statuses and
// ratios are recomputed every time, never stored.
type Snapshot struct {
	Now             time.Time      `json:"now"`
	Title           string         `json:"title"`
	SelectedDate    time.Time      `json:"selected_date"`
	CurrentScrollID uuid.UUID      `json:"current_scroll_id"`
	FocusedOffset   int            `json:"focused_offset"`
	MinOffset       int            `json:"min_offset"`
	WeekdayLabels   []string       `json:"weekday_labels"`
	Week            []calendar.Day `json:"week"`
	Dashboard       DashboardView  `json:"dashboard"`
	Nutrients       []NutrientView `json:"nutrients"`
	Macros          MacroView      `json:"macros"`
	Water           WaterView      `json:"water"`
	Foods           []diet.Food    `json:"foods"`
	Goals           Goals          `json:"goals"`
}

// DashboardView is the looping pager's position.
type DashboardView struct {
	Page       int `json:"page"`
	Position   int `json:"position"`
	TotalPages int `json:"total_pages"`
	ItemCount  int `json:"item_count"`
}

// NutrientView is one nutrient row with its evaluated status.
type NutrientView struct {
	Kind    nutrient.Kind   `json:"kind"`
	Unit    string          `json:"unit"`
	Current float64         `json:"current"`
	Goal    float64         `json:"goal"`
	Ratio   float64         `json:"ratio"`
	Status  nutrient.Status `json:"status"`
}

// MacroView is the half-donut calorie summary and the guide under it.
type MacroView struct {
	ConsumedKcal  float64               `json:"consumed_kcal"`
	GoalKcal      float64               `json:"goal_kcal"`
	RemainingKcal float64               `json:"remaining_kcal"`
	ExcessKcal    float64               `json:"excess_kcal"`
	Guide         nutrient.CalorieGuide `json:"guide"`
}

// WaterView is the water page.
type WaterView struct {
	hydration.Intake
	FillRatio float64         `json:"fill_ratio"`
	Guide     hydration.Guide `json:"guide"`
}

// Snapshot copies s into a Snapshot.
func (s *State) Snapshot(env Env) Snapshot {
	snap := Snapshot{
		Now:             env.now(),
		Title:           s.Title,
		SelectedDate:    s.SelectedDate,
		CurrentScrollID: s.CurrentScrollID(),
		WeekdayLabels:   env.Calendar.WeekdayLabels(),
		Week:            []calendar.Day{},
		Dashboard: DashboardView{
			Page:       s.DashboardPage,
			Position:   s.DashboardPosition,
			TotalPages: env.Pager.TotalPages,
			ItemCount:  env.Pager.ItemCount(),
		},
		Foods: []diet.Food{},
	}
	if s.Window != nil {
		snap.FocusedOffset = s.Window.Focused()
		snap.MinOffset = s.Window.MinOffset()
		snap.Week = s.Window.FocusedWeek()
	}

	snap.Nutrients = make([]NutrientView, 0, len(nutrient.Kinds))
	for _, k := range nutrient.Kinds {
		in := s.Intake(k)
		snap.Nutrients = append(snap.Nutrients, NutrientView{
			Kind:    k,
			Unit:    k.Unit(),
			Current: in.Current,
			Goal:    in.Goal,
			Ratio:   in.Ratio(),
			Status:  s.Evaluator.Status(in),
		})
	}

	macros := s.Macros()
	consumed := macros.CaloriesConsumed()
	logged := len(s.DietLog[s.selectedKey()]) > 0 || consumed > 0
	snap.Macros = MacroView{
		ConsumedKcal:  consumed,
		GoalKcal:      macros.CaloriesGoal,
		RemainingKcal: macros.CaloriesRemaining(),
		ExcessKcal:    macros.CaloriesExcess(),
		Guide:         macros.Guide(logged),
	}

	water := s.WaterIntake()
	snap.Water = WaterView{Intake: water, FillRatio: water.FillRatio(), Guide: s.WaterGuide}

	snap.Foods = append(snap.Foods, s.DietLog[s.selectedKey()]...)

	snap.Goals = s.Goals
	snap.Goals.Nutrients = make(map[nutrient.Kind]float64, len(s.Goals.Nutrients))
	for k, v := range s.Goals.Nutrients {
		snap.Goals.Nutrients[k] = v
	}
	return snap
}

// Nutrient returns the row for k, if present.
func (s Snapshot) Nutrient(k nutrient.Kind) (NutrientView, bool) {
	for _, n := range s.Nutrients {
		if n.Kind == k {
			return n, true
		}
	}
	return NutrientView{}, false
}
