package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sanggab/PagenationCalendar/internal/calendar"
	"github.com/sanggab/PagenationCalendar/internal/config"
)

var (
	tzName    string
	locale    string
	goalsPath string

	// now is swapped out by tests.
	now = time.Now

	// Resolved in PersistentPreRunE.
	cal      calendar.Calendar
	goalFile config.File
)

var rootCmd = &cobra.Command{
	Use:   "calendarctl",
	Short: "calendarctl inspects the week calendar and nutrient dashboard",
	Long: "calendarctl prints week strips, calendar grids, nutrient statuses and looping " +
		"dashboard pages. Settings come from .env and the environment; flags override them.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		app, err := config.Load(".env")
		if err != nil {
			return err
		}
		if tzName != "" {
			loc, err := time.LoadLocation(tzName)
			if err != nil {
				return fmt.Errorf("invalid --tz %q: %w", tzName, err)
			}
			app.Location = loc
		}
		if locale != "" {
			if locale != "ko" && locale != "en" {
				return fmt.Errorf("invalid --locale %q (expected ko or en)", locale)
			}
			app.Locale = locale
		}
		if goalsPath != "" {
			app.GoalsFile = goalsPath
		}

		goalFile, err = config.LoadFile(app.GoalsFile)
		if err != nil {
			return err
		}
		env, err := goalFile.Env(app)
		if err != nil {
			return err
		}
		cal = env.Calendar
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&tzName, "tz", "", "IANA time zone (default $TIMEZONE or Asia/Seoul)")
	rootCmd.PersistentFlags().StringVar(&locale, "locale", "", "Weekday labels: ko or en (default $LOCALE or ko)")
	rootCmd.PersistentFlags().StringVar(&goalsPath, "goals", "", "Path to a YAML goals file (default $GOALS_FILE)")
}
