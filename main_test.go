package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanggab/PagenationCalendar/internal/config"
)

func TestRestartSections(t *testing.T) {
	app := config.AppConfig{Location: time.UTC, Locale: "ko"}
	f, err := config.ParseFile([]byte("grid_start: \"2026-01-01\"\n"))
	require.NoError(t, err)
	env, err := f.Env(app)
	require.NoError(t, err)

	assert.Empty(t, restartSections(f, env))

	goalsOnly, err := config.ParseFile([]byte("grid_start: \"2026-01-01\"\ngoals:\n  calories_kcal: 1800\n"))
	require.NoError(t, err)
	assert.Empty(t, restartSections(goalsOnly, env))

	reloaded, err := config.ParseFile([]byte(`
grid_start: "2025-01-01"
first_weekday: sunday
dashboard:
  pages: 4
  cycles: 120
window:
  extend_by: 26
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"dashboard", "window", "grid_start", "first_weekday"}, restartSections(reloaded, env))
}
