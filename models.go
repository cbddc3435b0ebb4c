package main

import (
	"time"

	"github.com/sanggab/PagenationCalendar/internal/diet"
	"github.com/sanggab/PagenationCalendar/internal/nutrient"
	"github.com/sanggab/PagenationCalendar/internal/screen"
)

// DateOnly wraps time.Time to read and write "YYYY-MM-DD" in JSON. Parsed
// values are midnight UTC; callers move them into the calendar's location.
type DateOnly struct{ time.Time }

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Time.Format("2006-01-02") + `"`), nil
}

func (d *DateOnly) UnmarshalJSON(b []byte) error {
	t, err := time.Parse(`"2006-01-02"`, string(b))
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

/* ─── Responses ──────────────────────────────────────────────────────── */

// weekDaySummary is one day's entry in the GET /calendar/week-summary response.
// Days with no logged food have HasData=false and zero totals.
type weekDaySummary struct {
	Date        DateOnly                  `json:"date"`
	Weekday     string                    `json:"weekday"`
	HasData     bool                      `json:"has_data"`
	FoodCount   int                       `json:"food_count"`
	EnergyKcal  float64                   `json:"energy_kcal"`
	Nutrients   map[nutrient.Kind]float64 `json:"nutrients"`
	WaterLiters float64                   `json:"water_liters"`
	IsFuture    bool                      `json:"is_future"`
}

// dailySummary is the response shape for GET /calendar/day.
type dailySummary struct {
	Date        DateOnly              `json:"date"`
	HasData     bool                  `json:"has_data"`
	EnergyKcal  float64               `json:"energy_kcal"`
	Nutrients   []screen.NutrientView `json:"nutrients"`
	WaterLiters float64               `json:"water_liters"`
	Foods       []diet.Food           `json:"foods"`
}

// dietLogResponse is the response shape for POST /diet-log. Skipped counts
// foods whose dietDate could not be parsed; Days lists the dates touched.
type dietLogResponse struct {
	Imported int             `json:"imported"`
	Skipped  int             `json:"skipped"`
	Days     []string        `json:"days"`
	Snapshot screen.Snapshot `json:"snapshot"`
}

/* ─── Requests ───────────────────────────────────────────────────────── */

// scrollRequest is the request body for POST /api/calendar/scroll.
type scrollRequest struct {
	Offset *int `json:"offset"`
}

// scrollIDRequest is the request body for POST /api/calendar/scroll-id.
type scrollIDRequest struct {
	DayID string `json:"day_id"`
}

// selectDateRequest is the request body for POST /api/calendar/select.
type selectDateRequest struct {
	Date *DateOnly `json:"date"`
}

// dashboardPageRequest is the request body for POST /api/dashboard/page.
// A missing position is accepted and leaves the pager where it is.
type dashboardPageRequest struct {
	Position *int `json:"position"`
}

// addNutrientRequest is the request body for POST /api/dashboard/nutrients/:kind.
type addNutrientRequest struct {
	Amount *float64 `json:"amount"`
}

// patchGoalsRequest is the request body for PATCH /api/dashboard/goals.
// All fields are pointers; only non-nil fields change.
type patchGoalsRequest struct {
	CaloriesKcal    *float64           `json:"calories_kcal"`
	Nutrients       map[string]float64 `json:"nutrients"`
	WaterLiters     *float64           `json:"water_liters"`
	WaterStepLiters *float64           `json:"water_step_liters"`
}
