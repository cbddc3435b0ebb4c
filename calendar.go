package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sanggab/PagenationCalendar/internal/calendar"
	"github.com/sanggab/PagenationCalendar/internal/diet"
	"github.com/sanggab/PagenationCalendar/internal/nutrient"
	"github.com/sanggab/PagenationCalendar/internal/screen"
)

// maxGridDays bounds GET /api/calendar/grid so a typo in from can't build
// a century of days.
const maxGridDays = 3660

// getScreen returns the full screen snapshot.
// GET /api/screen
func (h *Handler) getScreen(c *gin.Context) {
	snap, err := h.store.Snapshot(c.Request.Context())
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// getWeek returns the loaded days for one week offset without moving the strip.
// GET /api/calendar/week?offset=N (N <= 0, defaults to 0). Offsets older than
// the loaded window answer 404 until the strip is scrolled there.
func (h *Handler) getWeek(c *gin.Context) {
	offset := 0
	if s := c.Query("offset"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			apiError(c, http.StatusBadRequest, "invalid offset, expected an integer")
			return
		}
		offset = n
	}
	if offset > 0 {
		apiError(c, http.StatusBadRequest, "offset must be 0 or negative")
		return
	}

	var days []calendar.Day
	err := h.store.View(c.Request.Context(), func(s *screen.State) {
		if s.Window != nil {
			days = s.Window.Week(offset)
		}
	})
	if err != nil {
		h.storeError(c, err)
		return
	}
	if len(days) == 0 {
		apiError(c, http.StatusNotFound, "week not loaded")
		return
	}
	c.JSON(http.StatusOK, gin.H{"offset": offset, "days": days})
}

// getDailySummary returns one day's logged foods, nutrient statuses and water
// without selecting it.
// GET /api/calendar/day?date=YYYY-MM-DD (defaults to today).
func (h *Handler) getDailySummary(c *gin.Context) {
	cal := h.store.Env().Calendar
	date := cal.StartOfDay(h.now())
	if s := c.Query("date"); s != "" {
		t, err := cal.ParseDate(s)
		if err != nil {
			apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
			return
		}
		date = t
	}
	key := date.Format("2006-01-02")

	result := dailySummary{Date: DateOnly{date}, Foods: []diet.Food{}}
	err := h.store.View(c.Request.Context(), func(s *screen.State) {
		foods := s.DietLog[key]
		result.HasData = len(foods) > 0
		result.EnergyKcal = diet.Totals(foods).EnergyKcal
		result.Foods = append(result.Foods, foods...)
		result.WaterLiters = s.Water[key]
		for _, k := range nutrient.Kinds {
			in := s.IntakeOn(key, k)
			result.Nutrients = append(result.Nutrients, screen.NutrientView{
				Kind:    k,
				Unit:    k.Unit(),
				Current: in.Current,
				Goal:    in.Goal,
				Ratio:   in.Ratio(),
				Status:  s.Evaluator.Status(in),
			})
		}
	})
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// getWeekSummary returns per-day diet totals for the week containing
// week_start. Days with no logged food are included with has_data=false.
// GET /api/calendar/week-summary?week_start=YYYY-MM-DD (defaults to the current week).
func (h *Handler) getWeekSummary(c *gin.Context) {
	env := h.store.Env()
	cal := env.Calendar
	now := h.now()

	day := now
	if s := c.Query("week_start"); s != "" {
		t, err := cal.ParseDate(s)
		if err != nil {
			apiError(c, http.StatusBadRequest, "invalid week_start, expected YYYY-MM-DD")
			return
		}
		day = t
	}
	dates := cal.DatesOfWeek(day)

	result := make([]weekDaySummary, len(dates))
	err := h.store.View(c.Request.Context(), func(s *screen.State) {
		for i, d := range dates {
			key := d.Format("2006-01-02")
			foods := s.DietLog[key]
			totals := diet.Totals(foods)
			result[i] = weekDaySummary{
				Date:        DateOnly{d},
				Weekday:     cal.WeekdayLabel(d),
				HasData:     len(foods) > 0,
				FoodCount:   len(foods),
				EnergyKcal:  totals.EnergyKcal,
				Nutrients:   totals.Amounts(),
				WaterLiters: s.Water[key],
				IsFuture:    cal.IsFuture(d, now),
			}
		}
	})
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// getGrid returns whole weeks from the week containing from through the end
// of the current week as one flat list, with today, selection and diet-log
// markers applied.
// GET /api/calendar/grid?from=YYYY-MM-DD (defaults to the configured grid start).
func (h *Handler) getGrid(c *gin.Context) {
	env := h.store.Env()
	cal := env.Calendar
	now := h.now()

	from := env.GridStart
	if s := c.Query("from"); s != "" {
		t, err := cal.ParseDate(s)
		if err != nil {
			apiError(c, http.StatusBadRequest, "invalid from, expected YYYY-MM-DD")
			return
		}
		from = t
	}
	if from.IsZero() {
		apiError(c, http.StatusBadRequest, "from is required")
		return
	}
	if cal.IsFuture(from, now) {
		apiError(c, http.StatusBadRequest, "from must not be in the future")
		return
	}
	if now.Sub(from) > maxGridDays*24*time.Hour {
		apiError(c, http.StatusBadRequest, "from is too far in the past")
		return
	}

	var days []calendar.Day
	err := h.store.View(c.Request.Context(), func(s *screen.State) {
		days = cal.Grid(from, now, s.SelectedDate)
		for i := range days {
			days[i].HasEntry = len(s.DietLog[days[i].Key()]) > 0
		}
	})
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, days)
}

// scrollWeek moves the strip to a week offset, loading older weeks as needed.
// POST /api/calendar/scroll. Body: { "offset": -3 }. Positive offsets clamp to 0;
// offsets older than the window's history limit are rejected.
func (h *Handler) scrollWeek(c *gin.Context) {
	var body scrollRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Offset == nil {
		apiError(c, http.StatusBadRequest, "offset is required")
		return
	}
	if oldest := h.store.Env().Window.OldestOffset(); *body.Offset < oldest {
		apiError(c, http.StatusBadRequest, fmt.Sprintf("offset must not be older than %d", oldest))
		return
	}
	h.dispatch(c, screen.WeekScrolled{Offset: *body.Offset})
}

// scrollToDay moves the strip to the week holding a day, by the day's ID.
// POST /api/calendar/scroll-id. Body: { "day_id": "<uuid>" }.
func (h *Handler) scrollToDay(c *gin.Context) {
	var body scrollIDRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	id, err := uuid.Parse(body.DayID)
	if err != nil {
		apiError(c, http.StatusBadRequest, "invalid day_id, expected a UUID")
		return
	}

	found := false
	err = h.store.View(c.Request.Context(), func(s *screen.State) {
		if s.Window != nil {
			_, found = s.Window.OffsetOfDay(id)
		}
	})
	if err != nil {
		h.storeError(c, err)
		return
	}
	if !found {
		apiError(c, http.StatusNotFound, "day not loaded")
		return
	}
	h.dispatch(c, screen.ScrollChanged{DayID: id})
}

// tapToday jumps back to today's week and selects today.
// POST /api/calendar/today
func (h *Handler) tapToday(c *gin.Context) {
	h.dispatch(c, screen.TodayTapped{})
}

// selectDate selects a day. Future days are ignored and the unchanged
// screen is returned; days older than the history limit are rejected.
// POST /api/calendar/select. Body: { "date": "YYYY-MM-DD" }.
func (h *Handler) selectDate(c *gin.Context) {
	var body selectDateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		var perr *time.ParseError
		if errors.As(err, &perr) {
			apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
			return
		}
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Date == nil {
		apiError(c, http.StatusBadRequest, "date is required")
		return
	}

	env := h.store.Env()
	y, m, day := body.Date.Date()
	d := time.Date(y, m, day, 0, 0, 0, 0, env.Calendar.Location())
	if env.Calendar.WeekOffset(h.now(), d) < env.Window.OldestOffset() {
		apiError(c, http.StatusBadRequest, "date is older than the calendar history")
		return
	}
	h.dispatch(c, screen.DayTapped{Date: d})
}

// tapWeekday selects a weekday column (0 = first day of the week) in the
// focused week.
// POST /api/calendar/weekday/:index
func (h *Handler) tapWeekday(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 || index > 6 {
		apiError(c, http.StatusBadRequest, "index must be between 0 and 6")
		return
	}
	h.dispatch(c, screen.WeekdayHeaderTapped{Index: index})
}
