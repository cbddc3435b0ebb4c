package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	weekOffset int
	weekDate   string
)

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Print one week of the calendar strip",
	Long: "Print the seven days of a week. --offset counts weeks back from the current " +
		"one (0 or negative); --date selects a day and shows its week instead.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		current := now()
		selected := current
		start := cal.WeekStart(current, weekOffset)

		if weekDate != "" {
			d, err := cal.ParseDate(weekDate)
			if err != nil {
				return fmt.Errorf("invalid --date %q (expected YYYY-MM-DD)", weekDate)
			}
			if cal.IsFuture(d, current) {
				return fmt.Errorf("--date %s is in the future", weekDate)
			}
			selected = d
			start = cal.StartOfWeek(d)
		} else if weekOffset > 0 {
			return fmt.Errorf("--offset must be 0 or negative, got %d", weekOffset)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, titleStyle.Render(cal.Title(selected, current)))
		fmt.Fprintf(out, "week offset %d\n", cal.WeekOffset(current, start))
		for _, d := range cal.Week(start, current, selected) {
			var marks []string
			if d.IsToday {
				marks = append(marks, "today")
			}
			if d.IsSelected {
				marks = append(marks, "selected")
			}
			if d.IsFuture {
				marks = append(marks, "future")
			}
			line := fmt.Sprintf("%s %s %2s", d.WeekdayLabel, d.Date.Format(time.DateOnly), d.DayLabel)
			if len(marks) > 0 {
				line += "  " + strings.Join(marks, ",")
			}
			fmt.Fprintln(out, dayStyle(d).Render(line))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(weekCmd)
	weekCmd.Flags().IntVar(&weekOffset, "offset", 0, "Week offset from the current week (0 or negative)")
	weekCmd.Flags().StringVar(&weekDate, "date", "", "Select a date YYYY-MM-DD and show its week")
}
