package screen

import (
	"time"

	"github.com/google/uuid"

	"github.com/sanggab/PagenationCalendar/internal/diet"
	"github.com/sanggab/PagenationCalendar/internal/nutrient"
)

// Action is a discrete event handled by Reduce. View actions come from user
// gestures; the unexported ones are follow-ups the reducer emits itself.
type Action interface {
	isAction()
}

/* ─── View actions ───────────────────────────────────────────────────── */

// Appear builds (or re-anchors) the calendar when the screen is shown.
type Appear struct{}

// WeekScrolled is sent when the week strip settles on a week offset.
type WeekScrolled struct {
	Offset int
}

// ScrollChanged is sent when the strip settles on the week starting with DayID.
type ScrollChanged struct {
	DayID uuid.UUID
}

// TodayTapped jumps back to today.
type TodayTapped struct{}

// DayTapped selects a day. Future days are ignored.
type DayTapped struct {
	Date time.Time
}

// WeekdayHeaderTapped selects the Index-th day (0..6) of the visible week.
type WeekdayHeaderTapped struct {
	Index int
}

// NutrientAdded adjusts the selected day's intake of Kind by Amount.
type NutrientAdded struct {
	Kind   nutrient.Kind
	Amount float64
}

// DashboardPageChanged reports the carousel's scroll position; nil means the
// view lost track of it and is ignored.
type DashboardPageChanged struct {
	Position *int
}

// WaterIncreased adds one step of water to the selected day.
type WaterIncreased struct{}

// WaterDecreased removes one step of water from the selected day.
type WaterDecreased struct{}

// GoalsChanged updates only the goals that are set.
type GoalsChanged struct {
	CaloriesKcal    *float64
	Nutrients       map[nutrient.Kind]float64
	WaterLiters     *float64
	WaterStepLiters *float64
}

// RulesChanged swaps the status thresholds. Invalid rules are rejected and logged.
type RulesChanged struct {
	Rules map[nutrient.Kind]nutrient.Rule
}

// DietLogged adds foods to the diet log, or replaces it when Replace is set.
type DietLogged struct {
	Foods   []diet.Food
	Replace bool
}

/* ─── Inner actions ──────────────────────────────────────────────────── */

type selectDate struct {
	date time.Time
}

type refreshWaterGuide struct{}

type refreshEntries struct{}

func (Appear) isAction()               {}
func (WeekScrolled) isAction()         {}
func (ScrollChanged) isAction()        {}
func (TodayTapped) isAction()          {}
func (DayTapped) isAction()            {}
func (WeekdayHeaderTapped) isAction()  {}
func (NutrientAdded) isAction()        {}
func (DashboardPageChanged) isAction() {}
func (WaterIncreased) isAction()       {}
func (WaterDecreased) isAction()       {}
func (GoalsChanged) isAction()         {}
func (RulesChanged) isAction()         {}
func (DietLogged) isAction()           {}
func (selectDate) isAction()           {}
func (refreshWaterGuide) isAction()    {}
func (refreshEntries) isAction()       {}
