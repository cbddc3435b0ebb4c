package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var gridFrom string

var gridCmd = &cobra.Command{
	Use:   "grid",
	Short: "Print the calendar grid from --from through the current week",
	Long: "Print a seven-column grid, one row per week, from the week containing --from " +
		"through the end of the current week. --from defaults to the goals file's grid_start.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		from := goalFile.GridStart
		if gridFrom != "" {
			from = gridFrom
		}
		if from == "" {
			return fmt.Errorf("--from is required (or set grid_start in the goals file)")
		}
		start, err := cal.ParseDate(from)
		if err != nil {
			return fmt.Errorf("invalid --from %q (expected YYYY-MM-DD)", from)
		}
		current := now()
		if cal.IsFuture(start, current) {
			return fmt.Errorf("--from %s is in the future", from)
		}

		out := cmd.OutOrStdout()
		header := make([]string, 0, 7)
		for _, label := range cal.WeekdayLabels() {
			header = append(header, fmt.Sprintf("%5s", label))
		}
		fmt.Fprintln(out, titleStyle.Render(strings.Join(header, " ")))

		days := cal.Grid(start, current, current)
		row := make([]string, 0, 7)
		month := -1
		for _, d := range days {
			label := d.DayLabel
			if m := int(d.Date.Month()); m != month {
				month = m
				label = fmt.Sprintf("%d/%s", m, d.DayLabel)
			}
			row = append(row, dayStyle(d).Render(fmt.Sprintf("%5s", label)))
			if len(row) == 7 {
				fmt.Fprintln(out, strings.Join(row, " "))
				row = row[:0]
			}
		}
		fmt.Fprintf(out, "%d weeks\n", len(days)/7)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(gridCmd)
	gridCmd.Flags().StringVar(&gridFrom, "from", "", "First day YYYY-MM-DD")
}
