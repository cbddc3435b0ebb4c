package main

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/sanggab/PagenationCalendar/internal/calendar"
	"github.com/sanggab/PagenationCalendar/internal/nutrient"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	todayStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#3B82F6"))
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	futureStyle   = lipgloss.NewStyle().Faint(true)

	statusStyles = map[nutrient.Status]lipgloss.Style{
		nutrient.Insufficient: lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF")),
		nutrient.Adequate:     lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E")),
		nutrient.Caution:      lipgloss.NewStyle().Foreground(lipgloss.Color("#EAB308")),
		nutrient.Warning:      lipgloss.NewStyle().Foreground(lipgloss.Color("#F97316")),
		nutrient.Excessive:    lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true),
	}
)

// dayStyle picks the style for a day cell; selection wins over today.
func dayStyle(d calendar.Day) lipgloss.Style {
	switch {
	case d.IsSelected:
		return selectedStyle
	case d.IsToday:
		return todayStyle
	case d.IsFuture:
		return futureStyle
	}
	return lipgloss.NewStyle()
}
