// Package calendar computes Monday-first weeks and the per-day flags the
// calendar strip renders (today, future, selected, has entry).
package calendar

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// weekdayLabels holds short weekday names indexed by time.Weekday (0=Sun).
var weekdayLabels = map[string][7]string{
	"ko": {"일", "월", "화", "수", "목", "금", "토"},
	"en": {"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
}

// Day is one cell of the calendar strip.
type Day struct {
	ID           uuid.UUID `json:"id"`
	Date         time.Time `json:"date"`
	DayLabel     string    `json:"day_label"`
	WeekdayLabel string    `json:"weekday_label"`
	IsToday      bool      `json:"is_today"`
	IsSelected   bool      `json:"is_selected"`
	IsFuture     bool      `json:"is_future"`
	HasEntry     bool      `json:"has_entry"`
}

// Key returns the day's date as YYYY-MM-DD, used to index days by date.
func (d Day) Key() string {
	return d.Date.Format(dateLayout)
}

// Calendar carries the conventions every week computation depends on.
type Calendar struct {
	loc          *time.Location
	firstWeekday time.Weekday
	labels       [7]string
}

// Option customises a Calendar.
type Option func(*Calendar)

// WithFirstWeekday overrides the Monday default.
func WithFirstWeekday(w time.Weekday) Option {
	return func(c *Calendar) {
		if w >= time.Sunday && w <= time.Saturday {
			c.firstWeekday = w
		}
	}
}

// WithLocale picks the weekday label set ("ko" or "en"). Unknown locales keep Korean labels.
func WithLocale(locale string) Option {
	return func(c *Calendar) {
		if labels, ok := weekdayLabels[locale]; ok {
			c.labels = labels
		}
	}
}

// New returns a Monday-first calendar in loc. A nil loc means UTC.
func New(loc *time.Location, opts ...Option) Calendar {
	if loc == nil {
		loc = time.UTC
	}
	c := Calendar{loc: loc, firstWeekday: time.Monday, labels: weekdayLabels["ko"]}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Location returns the calendar's time zone.
func (c Calendar) Location() *time.Location { return c.loc }

// FirstWeekday returns the weekday every week starts on.
func (c Calendar) FirstWeekday() time.Weekday { return c.firstWeekday }

// StartOfDay returns midnight of t's calendar day in the calendar's location.
// time.Date normalises DST gaps, so this never fails.
func (c Calendar) StartOfDay(t time.Time) time.Time {
	t = t.In(c.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, c.loc)
}

// StartOfWeek returns midnight of the first weekday on or before t.
// Go numbers weekdays 0=Sunday regardless of locale, so the distance back to the
// week start is normalised against firstWeekday before indexing.
func (c Calendar) StartOfWeek(t time.Time) time.Time {
	day := c.StartOfDay(t)
	offset := (int(day.Weekday()) - int(c.firstWeekday) + 7) % 7
	// AddDate instead of subtracting days from Day() so month/year boundaries
	// are handled by the time package.
	return day.AddDate(0, 0, -offset)
}

// EndOfWeek returns midnight of the last day of t's week.
func (c Calendar) EndOfWeek(t time.Time) time.Time {
	return c.StartOfWeek(t).AddDate(0, 0, 6)
}

// DatesOfWeek returns the 7 consecutive midnights of t's week.
func (c Calendar) DatesOfWeek(t time.Time) []time.Time {
	start := c.StartOfWeek(t)
	dates := make([]time.Time, 7)
	for i := range dates {
		dates[i] = start.AddDate(0, 0, i)
	}
	return dates
}

// MaxWeekOffset bounds the offsets WeekStart accepts. Larger magnitudes are
// clamped so 7*offset days stays inside time.Time's range.
const MaxWeekOffset = 1 << 31

// WeekStart returns the first day of the week offset weeks away from now's week.
// Offset 0 is the current week; negative values walk backward.
func (c Calendar) WeekStart(now time.Time, offset int) time.Time {
	offset = max(-MaxWeekOffset, min(offset, MaxWeekOffset))
	return c.StartOfWeek(now).AddDate(0, 0, 7*offset)
}

// WeekOffset returns how many weeks t's week lies from now's week.
func (c Calendar) WeekOffset(now, t time.Time) int {
	from := c.StartOfWeek(now)
	to := c.StartOfWeek(t)
	// Both ends are week starts, so the distance is an exact multiple of 7.
	return daysBetween(from, to) / 7
}

// SameDay reports whether a and b fall on the same calendar day.
func (c Calendar) SameDay(a, b time.Time) bool {
	ay, am, ad := a.In(c.loc).Date()
	by, bm, bd := b.In(c.loc).Date()
	return ay == by && am == bm && ad == bd
}

// IsFuture reports whether d's day comes after now's day.
func (c Calendar) IsFuture(d, now time.Time) bool {
	return c.StartOfDay(d).After(c.StartOfDay(now))
}

// WeekdayLabel returns the short localized name of t's weekday.
func (c Calendar) WeekdayLabel(t time.Time) string {
	return c.labels[t.In(c.loc).Weekday()]
}

// WeekdayLabels returns the header labels in display order, starting at the first weekday.
func (c Calendar) WeekdayLabels() []string {
	out := make([]string, 7)
	for i := range out {
		out[i] = c.labels[(int(c.firstWeekday)+i)%7]
	}
	return out
}

// NewDay builds a tagged Day for date d.
func (c Calendar) NewDay(d, now, selected time.Time) Day {
	d = c.StartOfDay(d)
	return Day{
		ID:           uuid.New(),
		Date:         d,
		DayLabel:     strconv.Itoa(d.Day()),
		WeekdayLabel: c.WeekdayLabel(d),
		IsToday:      c.SameDay(d, now),
		IsSelected:   !selected.IsZero() && c.SameDay(d, selected),
		IsFuture:     c.IsFuture(d, now),
	}
}

// Week returns the 7 tagged days of the week starting on start's week.
func (c Calendar) Week(start, now, selected time.Time) []Day {
	dates := c.DatesOfWeek(start)
	days := make([]Day, len(dates))
	for i, d := range dates {
		days[i] = c.NewDay(d, now, selected)
	}
	return days
}

// Grid returns every day from the week containing from through the end of
// now's week. A from after now yields just now's week.
func (c Calendar) Grid(from, now, selected time.Time) []Day {
	start := c.StartOfWeek(from)
	end := c.EndOfWeek(now)
	if start.After(end) {
		start = c.StartOfWeek(now)
	}
	total := daysBetween(start, end)
	days := make([]Day, 0, total+1)
	for i := 0; i <= total; i++ {
		days = append(days, c.NewDay(start.AddDate(0, 0, i), now, selected))
	}
	return days
}

// Title formats the header title: "M. d" within now's year, "yy. M. d" otherwise.
func (c Calendar) Title(date, now time.Time) string {
	if date.In(c.loc).Year() == now.In(c.loc).Year() {
		return date.In(c.loc).Format("1. 2")
	}
	return date.In(c.loc).Format("06. 1. 2")
}

// ParseDate parses a YYYY-MM-DD string as midnight in the calendar's location.
func (c Calendar) ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, s, c.loc)
}

// daysBetween counts calendar days from a to b using civil dates, so DST
// transitions (23h/25h days) don't skew the count.
func daysBetween(a, b time.Time) int {
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	// Unix seconds rather than Sub, which saturates after ~292 years.
	return int((ub.Unix() - ua.Unix()) / 86400)
}
