package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/sanggab/PagenationCalendar/internal/calendar"
	"github.com/sanggab/PagenationCalendar/internal/hydration"
	"github.com/sanggab/PagenationCalendar/internal/nutrient"
	"github.com/sanggab/PagenationCalendar/internal/paging"
	"github.com/sanggab/PagenationCalendar/internal/screen"
)

// testNow is Wednesday 2026-02-11 14:30 UTC.
var testNow = time.Date(2026, 2, 11, 14, 30, 0, 0, time.UTC)

// setupTest starts a screen store on a fixed clock and returns a router
// serving it. stop shuts the store down early; cleanup also stops it.
func setupTest(t *testing.T) (router *gin.Engine, stop func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	pager, err := paging.NewPager(3, 120, 1)
	require.NoError(t, err)
	env := screen.Env{
		Calendar:  calendar.New(time.UTC),
		Pager:     pager,
		GridStart: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Now:       func() time.Time { return testNow },
		Log:       zaptest.NewLogger(t),
	}
	store := screen.NewStore(env, screen.DefaultGoals(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = store.Run(ctx)
	}()
	stop = func() {
		cancel()
		<-done
	}
	t.Cleanup(stop)

	_, err = store.Dispatch(ctx, screen.Appear{})
	require.NoError(t, err)

	log := zaptest.NewLogger(t)
	return newRouter(&Handler{store: store, log: log}, log), stop
}

// doRequest sends method/path with an optional JSON body.
func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]string](t, w)["error"]
}

/* ─── Screen & calendar ──────────────────────────────────────────────── */

func TestGetScreen(t *testing.T) {
	router, _ := setupTest(t)
	w := doRequest(router, "GET", "/api/screen", "")
	require.Equal(t, http.StatusOK, w.Code)

	snap := decode[screen.Snapshot](t, w)
	assert.Equal(t, "2. 11", snap.Title)
	assert.Equal(t, []string{"월", "화", "수", "목", "금", "토", "일"}, snap.WeekdayLabels)
	require.Len(t, snap.Week, 7)
	assert.True(t, snap.Week[2].IsToday)
	assert.True(t, snap.Week[6].IsFuture)
	assert.Equal(t, snap.Week[0].ID, snap.CurrentScrollID)
	assert.Len(t, snap.Nutrients, len(nutrient.Kinds))
}

func TestGetWeek(t *testing.T) {
	router, _ := setupTest(t)

	w := doRequest(router, "GET", "/api/calendar/week?offset=-2", "")
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[struct {
		Offset int            `json:"offset"`
		Days   []calendar.Day `json:"days"`
	}](t, w)
	assert.Equal(t, -2, got.Offset)
	require.Len(t, got.Days, 7)
	assert.Equal(t, time.Date(2026, 1, 26, 0, 0, 0, 0, time.UTC), got.Days[0].Date.UTC())

	tests := []struct {
		query  string
		status int
	}{
		{"offset=1", http.StatusBadRequest},
		{"offset=abc", http.StatusBadRequest},
		{"offset=-500", http.StatusNotFound},
		{"", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := doRequest(router, "GET", "/api/calendar/week?"+tt.query, "")
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestScrollWeek_ExtendsWindow(t *testing.T) {
	router, _ := setupTest(t)

	w := doRequest(router, "POST", "/api/calendar/scroll", `{"offset": -9}`)
	require.Equal(t, http.StatusOK, w.Code)
	snap := decode[screen.Snapshot](t, w)
	assert.Equal(t, -9, snap.FocusedOffset)
	assert.Equal(t, -64, snap.MinOffset)

	w = doRequest(router, "POST", "/api/calendar/scroll", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "offset is required", errorMessage(t, w))

	w = doRequest(router, "POST", "/api/calendar/scroll", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScrollWeek_HistoryLimit(t *testing.T) {
	router, _ := setupTest(t)

	w := doRequest(router, "POST", "/api/calendar/scroll", `{"offset": -2147483648}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "offset must not be older than -520", errorMessage(t, w))

	w = doRequest(router, "POST", "/api/calendar/scroll", `{"offset": -520}`)
	require.Equal(t, http.StatusOK, w.Code)
	snap := decode[screen.Snapshot](t, w)
	assert.Equal(t, -paging.DefaultMaxHistoryWeeks, snap.FocusedOffset)
	assert.Equal(t, -paging.DefaultMaxHistoryWeeks, snap.MinOffset)
}

func TestScrollToDay(t *testing.T) {
	router, _ := setupTest(t)

	w := doRequest(router, "GET", "/api/calendar/week?offset=-3", "")
	require.Equal(t, http.StatusOK, w.Code)
	week := decode[struct {
		Days []calendar.Day `json:"days"`
	}](t, w)
	id := week.Days[4].ID

	w = doRequest(router, "POST", "/api/calendar/scroll-id", `{"day_id": "`+id.String()+`"}`)
	require.Equal(t, http.StatusOK, w.Code)
	snap := decode[screen.Snapshot](t, w)
	assert.Equal(t, -3, snap.FocusedOffset)
	assert.Equal(t, week.Days[0].ID, snap.CurrentScrollID)

	w = doRequest(router, "POST", "/api/calendar/scroll-id", `{"day_id": "nope"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(router, "POST", "/api/calendar/scroll-id", `{"day_id": "`+uuid.NewString()+`"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSelectDate(t *testing.T) {
	router, _ := setupTest(t)

	tests := []struct {
		name   string
		body   string
		status int
		title  string
	}{
		{"past day", `{"date": "2026-02-10"}`, http.StatusOK, "2. 10"},
		{"future day ignored", `{"date": "2026-02-12"}`, http.StatusOK, "2. 10"},
		{"previous year", `{"date": "2025-12-31"}`, http.StatusOK, "25. 12. 31"},
		{"missing date", `{}`, http.StatusBadRequest, ""},
		{"bad date", `{"date": "12/31/2025"}`, http.StatusBadRequest, ""},
		{"not a string", `{"date": 20251231}`, http.StatusBadRequest, ""},
		{"beyond history", `{"date": "0001-01-01"}`, http.StatusBadRequest, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, "POST", "/api/calendar/select", tt.body)
			require.Equal(t, tt.status, w.Code)
			if tt.title != "" {
				assert.Equal(t, tt.title, decode[screen.Snapshot](t, w).Title)
			}
		})
	}

	w := doRequest(router, "POST", "/api/calendar/select", `{"date": "12/31/2025"}`)
	assert.Equal(t, "invalid date, expected YYYY-MM-DD", errorMessage(t, w))
	w = doRequest(router, "POST", "/api/calendar/select", `{"date": "0001-01-01"}`)
	assert.Equal(t, "date is older than the calendar history", errorMessage(t, w))

	w = doRequest(router, "POST", "/api/calendar/today", "")
	require.Equal(t, http.StatusOK, w.Code)
	snap := decode[screen.Snapshot](t, w)
	assert.Equal(t, "2. 11", snap.Title)
	assert.Equal(t, 0, snap.FocusedOffset)
}

func TestTapWeekday(t *testing.T) {
	router, _ := setupTest(t)

	w := doRequest(router, "POST", "/api/calendar/weekday/0", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2. 9", decode[screen.Snapshot](t, w).Title)

	for _, index := range []string{"7", "-1", "mon"} {
		w := doRequest(router, "POST", "/api/calendar/weekday/"+index, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, index)
	}
}

func TestGetGrid(t *testing.T) {
	router, _ := setupTest(t)

	w := doRequest(router, "GET", "/api/calendar/grid", "")
	require.Equal(t, http.StatusOK, w.Code)
	days := decode[[]calendar.Day](t, w)
	require.Len(t, days, 49)
	assert.Equal(t, time.Date(2025, 12, 29, 0, 0, 0, 0, time.UTC), days[0].Date.UTC())
	assert.True(t, days[44].IsToday)
	assert.True(t, days[44].IsSelected)
	assert.True(t, days[48].IsFuture)

	w = doRequest(router, "GET", "/api/calendar/grid?from=2026-02-01", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]calendar.Day](t, w), 21)

	for _, q := range []string{"from=2026-03-01", "from=1900-01-01", "from=bad"} {
		w := doRequest(router, "GET", "/api/calendar/grid?"+q, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
}

/* ─── Dashboard ──────────────────────────────────────────────────────── */

func TestChangeDashboardPage(t *testing.T) {
	router, _ := setupTest(t)

	w := doRequest(router, "POST", "/api/dashboard/page", `{"position": 184}`)
	require.Equal(t, http.StatusOK, w.Code)
	d := decode[screen.Snapshot](t, w).Dashboard
	assert.Equal(t, 1, d.Page)
	assert.Equal(t, 184, d.Position)
	assert.Equal(t, 360, d.ItemCount)

	// Near the start of the list the position jumps back to the middle.
	w = doRequest(router, "POST", "/api/dashboard/page", `{"position": 2}`)
	require.Equal(t, http.StatusOK, w.Code)
	d = decode[screen.Snapshot](t, w).Dashboard
	assert.Equal(t, 2, d.Page)
	assert.Equal(t, 182, d.Position)

	w = doRequest(router, "POST", "/api/dashboard/page", `{}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 182, decode[screen.Snapshot](t, w).Dashboard.Position)

	w = doRequest(router, "POST", "/api/dashboard/page", `{"position": -1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddNutrient(t *testing.T) {
	router, _ := setupTest(t)

	w := doRequest(router, "POST", "/api/dashboard/nutrients/carbs", `{"amount": 250}`)
	require.Equal(t, http.StatusOK, w.Code)
	snap := decode[screen.Snapshot](t, w)
	carb, ok := snap.Nutrient(nutrient.Carb)
	require.True(t, ok)
	assert.Equal(t, 250.0, carb.Current)
	assert.Equal(t, nutrient.Adequate, carb.Status)
	assert.Equal(t, 1000.0, snap.Macros.ConsumedKcal)

	w = doRequest(router, "POST", "/api/dashboard/nutrients/sodium", `{"amount": 3100}`)
	require.Equal(t, http.StatusOK, w.Code)
	sodium, _ := decode[screen.Snapshot](t, w).Nutrient(nutrient.Sodium)
	assert.Equal(t, nutrient.Warning, sodium.Status)

	w = doRequest(router, "POST", "/api/dashboard/nutrients/iron", `{"amount": 1}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(router, "POST", "/api/dashboard/nutrients/fat", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPatchGoals(t *testing.T) {
	router, _ := setupTest(t)

	w := doRequest(router, "PATCH", "/api/dashboard/goals", `{"calories_kcal": 1800, "nutrients": {"sodium": 1000}}`)
	require.Equal(t, http.StatusOK, w.Code)
	goals := decode[screen.Snapshot](t, w).Goals
	assert.Equal(t, 1800.0, goals.CaloriesKcal)
	assert.Equal(t, 1000.0, goals.Nutrients[nutrient.Sodium])
	assert.Equal(t, 300.0, goals.Nutrients[nutrient.Carb], "fields not sent are unchanged")
	assert.Equal(t, hydration.DefaultGoalLiters, goals.WaterLiters)

	tests := map[string]string{
		"negative calories": `{"calories_kcal": -1}`,
		"zero water":        `{"water_liters": 0}`,
		"huge step":         `{"water_step_liters": 6}`,
		"unknown nutrient":  `{"nutrients": {"iron": 10}}`,
		"negative nutrient": `{"nutrients": {"fat": -10}}`,
		"bad body":          `[1, 2]`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			w := doRequest(router, "PATCH", "/api/dashboard/goals", body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

/* ─── Water ──────────────────────────────────────────────────────────── */

func TestWater(t *testing.T) {
	router, _ := setupTest(t)

	w := doRequest(router, "GET", "/api/water", "")
	require.Equal(t, http.StatusOK, w.Code)
	water := decode[screen.WaterView](t, w)
	assert.Equal(t, hydration.GuideEmpty, water.Guide)
	assert.Equal(t, 3.5, water.Goal)

	doRequest(router, "POST", "/api/water/increase", "")
	w = doRequest(router, "POST", "/api/water/increase", "")
	require.Equal(t, http.StatusOK, w.Code)
	water = decode[screen.WaterView](t, w)
	assert.Equal(t, 0.5, water.Current)
	assert.Equal(t, hydration.GuideInProgress, water.Guide)

	for i := 0; i < 3; i++ {
		w = doRequest(router, "POST", "/api/water/decrease", "")
	}
	water = decode[screen.WaterView](t, w)
	assert.Zero(t, water.Current)
	assert.Equal(t, hydration.GuideEmpty, water.Guide)

	w = doRequest(router, "PATCH", "/api/dashboard/goals", `{"water_liters": 0.25}`)
	require.Equal(t, http.StatusOK, w.Code)
	w = doRequest(router, "POST", "/api/water/increase", "")
	assert.Equal(t, hydration.GuideAchieved, decode[screen.WaterView](t, w).Guide)
}

/* ─── Diet log ───────────────────────────────────────────────────────── */

const dietLogBody = `[
  {"dietHdNo": "1", "foodName": "김치찌개", "srvSize": "300", "srvUnit": "g",
   "nutrition": {"nutrntEnergy": "350.5", "nutrntChocdf": 20, "nutrntNat": "1200"},
   "dietDate": "2026-02-10 08:00:00"},
  {"dietHdNo": 2, "foodName": "쌀밥", "srvSize": "",
   "nutrition": {"nutrntEnergy": 300, "nutrntChocdf": "65", "nutrntProtein": "abc"},
   "dietDate": "2026-02-10 12:30:00"},
  {"dietHdNo": 3, "foodName": "unknown", "dietDate": "yesterday"}
]`

func TestPostDietLog(t *testing.T) {
	router, _ := setupTest(t)

	w := doRequest(router, "POST", "/api/diet-log", dietLogBody)
	require.Equal(t, http.StatusOK, w.Code)
	res := decode[dietLogResponse](t, w)
	assert.Equal(t, 2, res.Imported)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, []string{"2026-02-10"}, res.Days)
	assert.True(t, res.Snapshot.Week[1].HasEntry)
	assert.False(t, res.Snapshot.Week[2].HasEntry)
	assert.Empty(t, res.Snapshot.Foods, "today has no foods")

	w = doRequest(router, "POST", "/api/calendar/select", `{"date": "2026-02-10"}`)
	require.Equal(t, http.StatusOK, w.Code)
	snap := decode[screen.Snapshot](t, w)
	require.Len(t, snap.Foods, 2)
	assert.Equal(t, "김치찌개", snap.Foods[0].FoodName)
	require.NotNil(t, snap.Foods[0].ServingSize)
	assert.Equal(t, 300.0, *snap.Foods[0].ServingSize)
	assert.Nil(t, snap.Foods[1].ServingSize)
	carb, _ := snap.Nutrient(nutrient.Carb)
	assert.Equal(t, 85.0, carb.Current)

	w = doRequest(router, "GET", "/api/calendar/week-summary?week_start=2026-02-11", "")
	require.Equal(t, http.StatusOK, w.Code)
	summary := decode[[]weekDaySummary](t, w)
	require.Len(t, summary, 7)
	assert.Equal(t, "2026-02-09", summary[0].Date.Format("2006-01-02"))
	assert.False(t, summary[0].HasData)
	assert.True(t, summary[1].HasData)
	assert.Equal(t, 2, summary[1].FoodCount)
	assert.Equal(t, 650.5, summary[1].EnergyKcal)
	assert.Equal(t, 1200.0, summary[1].Nutrients[nutrient.Sodium])
	assert.Equal(t, "화", summary[1].Weekday)
	assert.True(t, summary[6].IsFuture)

	w = doRequest(router, "GET", "/api/calendar/day?date=2026-02-10", "")
	require.Equal(t, http.StatusOK, w.Code)
	day := decode[dailySummary](t, w)
	assert.True(t, day.HasData)
	assert.Len(t, day.Foods, 2)
	require.Len(t, day.Nutrients, len(nutrient.Kinds))
	assert.Equal(t, nutrient.Carb, day.Nutrients[0].Kind)
	assert.Equal(t, 85.0, day.Nutrients[0].Current)
	assert.Equal(t, nutrient.Insufficient, day.Nutrients[0].Status)

	w = doRequest(router, "GET", "/api/calendar/day", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[dailySummary](t, w).HasData)

	w = doRequest(router, "POST", "/api/diet-log", `{"foods": [], "replace": true}`)
	require.Equal(t, http.StatusOK, w.Code)
	res = decode[dietLogResponse](t, w)
	assert.Zero(t, res.Imported)
	assert.False(t, res.Snapshot.Week[1].HasEntry)

	w = doRequest(router, "POST", "/api/diet-log", `"just a string"`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(router, "GET", "/api/calendar/week-summary?week_start=02-09", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

/* ─── Middleware & lifecycle ─────────────────────────────────────────── */

func TestRequestID(t *testing.T) {
	router, _ := setupTest(t)

	w := doRequest(router, "GET", "/api/water", "")
	_, err := uuid.Parse(w.Header().Get(requestIDHeader))
	assert.NoError(t, err)

	id := uuid.NewString()
	req := httptest.NewRequest("GET", "/api/water", nil)
	req.Header.Set(requestIDHeader, id)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, id, w.Header().Get(requestIDHeader))
}

func TestStoppedStore(t *testing.T) {
	router, stop := setupTest(t)
	stop()

	w := doRequest(router, "POST", "/api/water/increase", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "screen is shutting down", errorMessage(t, w))
}
