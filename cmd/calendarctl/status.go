package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sanggab/PagenationCalendar/internal/nutrient"
)

var statusCmd = &cobra.Command{
	Use:   "status <kind> <value> <goal>",
	Short: "Evaluate one nutrient intake against its goal",
	Long: "Classify an intake as insufficient, adequate, caution, warning or excessive. " +
		"Kinds: carb, protein, fat, sodium, sugar, fiber, cholesterol.",
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := nutrient.ParseKind(args[0])
		if err != nil {
			return err
		}
		value, err := strconv.ParseFloat(args[1], 64)
		if err != nil || value < 0 {
			return fmt.Errorf("invalid value %q (expected a non-negative number)", args[1])
		}
		goal, err := strconv.ParseFloat(args[2], 64)
		if err != nil || goal < 0 {
			return fmt.Errorf("invalid goal %q (expected a non-negative number)", args[2])
		}

		ev, err := goalFile.Evaluator()
		if err != nil {
			return err
		}
		in := nutrient.Intake{Kind: kind, Current: value, Goal: goal}
		status := ev.Status(in)
		fmt.Fprintf(cmd.OutOrStdout(), "%s %g/%g %s (%.0f%%) %s\n",
			kind, value, goal, kind.Unit(), in.Percent(), statusStyles[status].Render(status.String()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
