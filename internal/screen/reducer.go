package screen

import (
	"go.uber.org/zap"

	"github.com/sanggab/PagenationCalendar/internal/diet"
	"github.com/sanggab/PagenationCalendar/internal/nutrient"
	"github.com/sanggab/PagenationCalendar/internal/paging"
)

// Reduce applies a to s and returns the follow-up action to run next, or nil.
// It never blocks and never fails: lookups that miss leave the state unchanged.
func Reduce(s *State, a Action, env Env) Action {
	if _, ok := a.(Appear); !ok {
		ensureWindow(s, env)
	}
	switch a := a.(type) {
	case Appear:
		return reduceAppear(s, env)
	case WeekScrolled:
		if s.Window.Focus(a.Offset) {
			env.logger().Info("week window extended",
				zap.Int("offset", a.Offset), zap.Int("min_offset", s.Window.MinOffset()))
		}
		return nil
	case ScrollChanged:
		if offset, ok := s.Window.OffsetOfDay(a.DayID); ok {
			return WeekScrolled{Offset: offset}
		}
		return nil
	case TodayTapped:
		s.Window.Reanchor(env.now())
		return selectDate{date: env.now()}
	case DayTapped:
		if env.Calendar.IsFuture(a.Date, env.now()) || s.Window.OffsetOf(a.Date) < s.Window.OldestOffset() {
			return nil
		}
		return selectDate{date: a.Date}
	case WeekdayHeaderTapped:
		week := s.Window.FocusedWeek()
		if a.Index < 0 || a.Index >= len(week) {
			return nil
		}
		return DayTapped{Date: week[a.Index].Date}
	case selectDate:
		s.SelectedDate = env.Calendar.StartOfDay(a.date)
		s.Window.Select(s.SelectedDate)
		s.Title = env.Calendar.Title(s.SelectedDate, env.now())
		s.Window.Focus(s.Window.OffsetOf(s.SelectedDate))
		return refreshWaterGuide{}
	case NutrientAdded:
		return reduceNutrientAdded(s, a)
	case DashboardPageChanged:
		if a.Position == nil {
			return nil
		}
		page, position := env.Pager.Settle(*a.Position)
		if position != *a.Position {
			env.logger().Info("dashboard recentered",
				zap.Int("from", *a.Position), zap.Int("to", position))
		}
		s.DashboardPage, s.DashboardPosition = page, position
		return nil
	case WaterIncreased:
		s.Water[s.selectedKey()] = s.WaterIntake().Increase().Current
		return refreshWaterGuide{}
	case WaterDecreased:
		s.Water[s.selectedKey()] = s.WaterIntake().Decrease().Current
		return refreshWaterGuide{}
	case refreshWaterGuide:
		s.WaterGuide = s.WaterIntake().Guide()
		return nil
	case GoalsChanged:
		reduceGoalsChanged(s, a)
		return refreshWaterGuide{}
	case RulesChanged:
		ev, err := nutrient.NewEvaluator(a.Rules)
		if err != nil {
			env.logger().Warn("rejected nutrient rules", zap.Error(err))
			return nil
		}
		s.Evaluator = ev
		return nil
	case DietLogged:
		if a.Replace {
			s.DietLog = map[string][]diet.Food{}
		}
		for key, foods := range diet.ByDay(a.Foods, env.Calendar.Location()) {
			s.DietLog[key] = append(s.DietLog[key], foods...)
		}
		return refreshEntries{}
	case refreshEntries:
		entries := make(map[string]bool, len(s.DietLog))
		for key, foods := range s.DietLog {
			if len(foods) > 0 {
				entries[key] = true
			}
		}
		s.Window.SetEntries(entries)
		return nil
	}
	return nil
}

func reduceAppear(s *State, env Env) Action {
	now := env.now()
	if s.Window == nil {
		s.Window = paging.NewWeekWindow(env.Calendar, now, env.Window)
	} else {
		s.Window.Reanchor(now)
	}
	if !env.GridStart.IsZero() {
		s.Window.EnsureLoaded(s.Window.OffsetOf(env.GridStart), 0)
	}
	if s.DashboardPosition == 0 && env.Pager.TotalPages > 0 {
		s.DashboardPosition = env.Pager.Center()
		s.DashboardPage = env.Pager.Page(s.DashboardPosition)
	}
	date := s.SelectedDate
	if date.IsZero() {
		date = now
	}
	return selectDate{date: date}
}

func reduceNutrientAdded(s *State, a NutrientAdded) Action {
	if _, ok := s.Goals.Nutrients[a.Kind]; !ok {
		return nil
	}
	key := s.selectedKey()
	if s.Adjustments[key] == nil {
		s.Adjustments[key] = map[nutrient.Kind]float64{}
	}
	logged := diet.Totals(s.DietLog[key]).Amount(a.Kind)
	adj := s.Adjustments[key][a.Kind] + a.Amount
	// Keep logged+adjustment >= 0 so a later increase starts from zero.
	if logged+adj < 0 {
		adj = -logged
	}
	s.Adjustments[key][a.Kind] = adj
	return nil
}

func reduceGoalsChanged(s *State, a GoalsChanged) {
	if a.CaloriesKcal != nil && *a.CaloriesKcal >= 0 {
		s.Goals.CaloriesKcal = *a.CaloriesKcal
	}
	for k, v := range a.Nutrients {
		if _, ok := s.Goals.Nutrients[k]; ok && v >= 0 {
			s.Goals.Nutrients[k] = v
		}
	}
	if a.WaterLiters != nil && *a.WaterLiters > 0 {
		s.Goals.WaterLiters = *a.WaterLiters
	}
	if a.WaterStepLiters != nil && *a.WaterStepLiters > 0 {
		s.Goals.WaterStepLiters = *a.WaterStepLiters
	}
}

// ensureWindow lets gesture actions arrive before Appear.
func ensureWindow(s *State, env Env) {
	if s.Window == nil {
		s.Window = paging.NewWeekWindow(env.Calendar, env.now(), env.Window)
		s.SelectedDate = env.Calendar.StartOfDay(env.now())
		s.Window.Select(s.SelectedDate)
	}
}
