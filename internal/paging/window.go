package paging

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/sanggab/PagenationCalendar/internal/calendar"
)

// Window defaults mirror the calendar strip: a quarter of history up front,
// another year whenever the user scrolls within 5 weeks of the oldest one,
// and never more than ten years back.
const (
	DefaultInitialMinOffset = -12
	DefaultExtendBy         = 52
	DefaultEdgeMargin       = 5
	DefaultMaxHistoryWeeks  = 520
)

// WindowConfig tunes how far back the window starts and how it grows.
type WindowConfig struct {
	InitialMinOffset int `yaml:"initial_min_offset"`
	ExtendBy         int `yaml:"extend_by"`
	EdgeMargin       int `yaml:"edge_margin"`
	MaxHistoryWeeks  int `yaml:"max_history_weeks"`
}

// OldestOffset is the lowest week offset a window built from c will load.
func (c WindowConfig) OldestOffset() int {
	return -c.withDefaults().MaxHistoryWeeks
}

func (c WindowConfig) withDefaults() WindowConfig {
	if c.InitialMinOffset > 0 {
		c.InitialMinOffset = 0
	}
	if c.InitialMinOffset == 0 {
		c.InitialMinOffset = DefaultInitialMinOffset
	}
	if c.ExtendBy <= 0 {
		c.ExtendBy = DefaultExtendBy
	}
	if c.EdgeMargin <= 0 {
		c.EdgeMargin = DefaultEdgeMargin
	}
	if c.MaxHistoryWeeks <= 0 {
		c.MaxHistoryWeeks = DefaultMaxHistoryWeeks
	}
	if c.InitialMinOffset < -c.MaxHistoryWeeks {
		c.InitialMinOffset = -c.MaxHistoryWeeks
	}
	return c
}

// WeekWindow caches generated weeks keyed by week offset (0 = the week
// containing now, negative = past weeks). Loaded offsets always form the
// contiguous range MinOffset..0, and MinOffset never goes below OldestOffset.
type WeekWindow struct {
	cal      calendar.Calendar
	cfg      WindowConfig
	now      time.Time
	selected time.Time
	entries  map[string]bool

	minOffset int
	focused   int
	weeks     map[int][]calendar.Day
}

// NewWeekWindow builds a window anchored at now with MinOffset..0 loaded.
func NewWeekWindow(cal calendar.Calendar, now time.Time, cfg WindowConfig) *WeekWindow {
	cfg = cfg.withDefaults()
	w := &WeekWindow{
		cal:       cal,
		cfg:       cfg,
		now:       now,
		selected:  now,
		entries:   map[string]bool{},
		minOffset: 0,
		weeks:     map[int][]calendar.Day{},
	}
	w.EnsureLoaded(cfg.InitialMinOffset, 0)
	return w
}

// MinOffset is the oldest loaded week offset.
func (w *WeekWindow) MinOffset() int { return w.minOffset }

// Focused is the week offset the strip currently shows.
func (w *WeekWindow) Focused() int { return w.focused }

// OldestOffset is the floor for MinOffset and Focused.
func (w *WeekWindow) OldestOffset() int { return -w.cfg.MaxHistoryWeeks }

// Now is the instant offset 0 is anchored to.
func (w *WeekWindow) Now() time.Time { return w.now }

// EnsureLoaded generates any missing week in [lo, hi]. hi is clamped to 0,
// lo to OldestOffset, and hi is raised to MinOffset-1 at least so the loaded
// range stays contiguous.
func (w *WeekWindow) EnsureLoaded(lo, hi int) {
	hi = min(hi, 0)
	lo = max(lo, w.OldestOffset())
	if len(w.weeks) > 0 && hi < w.minOffset-1 {
		hi = w.minOffset - 1
	}
	if lo > hi {
		return
	}
	for offset := lo; offset <= hi; offset++ {
		if _, ok := w.weeks[offset]; ok {
			continue
		}
		w.weeks[offset] = w.generate(offset)
	}
	if lo < w.minOffset {
		w.minOffset = lo
	}
}

// Focus moves the strip to offset (clamped to OldestOffset..0) and reports
// whether the window was extended further into the past.
func (w *WeekWindow) Focus(offset int) (extended bool) {
	offset = max(w.OldestOffset(), min(offset, 0))
	w.focused = offset
	for offset < w.minOffset+w.cfg.EdgeMargin && w.minOffset > w.OldestOffset() {
		w.EnsureLoaded(w.minOffset-w.cfg.ExtendBy, w.minOffset-1)
		extended = true
	}
	return extended
}

// Week returns a copy of the cached days for offset, or an empty slice.
func (w *WeekWindow) Week(offset int) []calendar.Day {
	days, ok := w.weeks[offset]
	if !ok {
		return []calendar.Day{}
	}
	out := make([]calendar.Day, len(days))
	copy(out, days)
	return out
}

// FocusedWeek returns the days of the focused week.
func (w *WeekWindow) FocusedWeek() []calendar.Day {
	return w.Week(w.focused)
}

// Offsets returns the loaded offsets in ascending order.
func (w *WeekWindow) Offsets() []int {
	offsets := make([]int, 0, len(w.weeks))
	for o := range w.weeks {
		offsets = append(offsets, o)
	}
	sort.Ints(offsets)
	return offsets
}

// OffsetOf returns the week offset of t relative to the anchor.
func (w *WeekWindow) OffsetOf(t time.Time) int {
	return w.cal.WeekOffset(w.now, t)
}

// OffsetOfDay finds the loaded week holding the day with the given ID.
func (w *WeekWindow) OffsetOfDay(id uuid.UUID) (int, bool) {
	for offset, days := range w.weeks {
		for _, d := range days {
			if d.ID == id {
				return offset, true
			}
		}
	}
	return 0, false
}

// Select re-tags IsSelected across every cached week.
func (w *WeekWindow) Select(t time.Time) {
	w.selected = t
	for _, days := range w.weeks {
		for i := range days {
			days[i].IsSelected = w.cal.SameDay(days[i].Date, t)
		}
	}
}

// SetEntries re-tags HasEntry from a set of YYYY-MM-DD keys.
func (w *WeekWindow) SetEntries(keys map[string]bool) {
	w.entries = make(map[string]bool, len(keys))
	for k, v := range keys {
		w.entries[k] = v
	}
	for _, days := range w.weeks {
		for i := range days {
			days[i].HasEntry = w.entries[days[i].Key()]
		}
	}
}

// Reanchor moves offset 0 to now's week, regenerating the window when the
// week changed and refreshing today/future flags otherwise.
func (w *WeekWindow) Reanchor(now time.Time) {
	sameWeek := w.cal.StartOfWeek(now).Equal(w.cal.StartOfWeek(w.now))
	w.now = now
	if !sameWeek {
		oldest := w.minOffset
		w.weeks = map[int][]calendar.Day{}
		w.minOffset = 0
		w.focused = 0
		w.EnsureLoaded(oldest, 0)
		return
	}
	for _, days := range w.weeks {
		for i := range days {
			days[i].IsToday = w.cal.SameDay(days[i].Date, now)
			days[i].IsFuture = w.cal.IsFuture(days[i].Date, now)
		}
	}
}

func (w *WeekWindow) generate(offset int) []calendar.Day {
	days := w.cal.Week(w.cal.WeekStart(w.now, offset), w.now, w.selected)
	for i := range days {
		days[i].HasEntry = w.entries[days[i].Key()]
	}
	return days
}
