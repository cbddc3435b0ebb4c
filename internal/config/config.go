// Package config loads process settings from the environment (optionally
// seeded from a .env file) and dashboard tuning from a YAML goals file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/sanggab/PagenationCalendar/internal/calendar"
	"github.com/sanggab/PagenationCalendar/internal/nutrient"
	"github.com/sanggab/PagenationCalendar/internal/paging"
	"github.com/sanggab/PagenationCalendar/internal/screen"
)

// ErrInvalidConfig wraps every validation failure from Load and LoadFile.
var ErrInvalidConfig = errors.New("invalid config")

// AppConfig is the process configuration read from the environment.
type AppConfig struct {
	ListenAddr string
	Port       string
	GinMode    string
	AppEnv     string
	LogLevel   string
	Timezone   string
	Locale     string
	GoalsFile  string

	Location *time.Location
}

// Load reads envFile into the environment when it exists (variables already
// set win), then builds an AppConfig with defaults for anything missing.
func Load(envFile string) (AppConfig, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return AppConfig{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	port := getenv("PORT", "8080")
	cfg := AppConfig{
		ListenAddr: getenv("LISTEN_ADDR", "localhost:"+port),
		Port:       port,
		GinMode:    getenv("GIN_MODE", "release"),
		AppEnv:     getenv("APP_ENV", "production"),
		LogLevel:   getenv("LOG_LEVEL", "info"),
		Timezone:   getenv("TIMEZONE", "Asia/Seoul"),
		Locale:     getenv("LOCALE", "ko"),
		GoalsFile:  getenv("GOALS_FILE", ""),
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return AppConfig{}, fmt.Errorf("%w: timezone %q: %v", ErrInvalidConfig, cfg.Timezone, err)
	}
	cfg.Location = loc

	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		return AppConfig{}, fmt.Errorf("%w: GIN_MODE %q (want debug, release or test)", ErrInvalidConfig, cfg.GinMode)
	}
	if cfg.Locale != "ko" && cfg.Locale != "en" {
		return AppConfig{}, fmt.Errorf("%w: locale %q (want ko or en)", ErrInvalidConfig, cfg.Locale)
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

/* ─── Goals file ─────────────────────────────────────────────────────── */

// PagerConfig sizes the looping dashboard pager.
type PagerConfig struct {
	Pages      int `yaml:"pages"`
	Cycles     int `yaml:"cycles"`
	EdgeCycles int `yaml:"edge_cycles"`
}

// File is the YAML goals file. Every section is optional.
type File struct {
	Goals        screen.Goals                    `yaml:"goals"`
	Rules        map[nutrient.Kind]nutrient.Rule `yaml:"rules"`
	Dashboard    PagerConfig                     `yaml:"dashboard"`
	Window       paging.WindowConfig             `yaml:"window"`
	GridStart    string                          `yaml:"grid_start"`
	FirstWeekday string                          `yaml:"first_weekday"`
}

// DefaultFile is what an absent goals file means.
func DefaultFile() File {
	return File{
		Goals:     screen.DefaultGoals(),
		Dashboard: PagerConfig{Pages: 3, Cycles: 120, EdgeCycles: 1},
	}
}

// LoadFile parses and validates the goals file at path. An empty path
// returns DefaultFile.
func LoadFile(path string) (File, error) {
	if path == "" {
		return DefaultFile(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read goals file: %w", err)
	}
	return ParseFile(b)
}

// ParseFile decodes a goals file body, filling unset fields from DefaultFile.
func ParseFile(b []byte) (File, error) {
	f := DefaultFile()
	f.Goals = screen.Goals{}
	if err := yaml.Unmarshal(b, &f); err != nil {
		return File{}, fmt.Errorf("%w: parse goals file: %v", ErrInvalidConfig, err)
	}
	nutrients, err := canonical(f.Goals.Nutrients)
	if err != nil {
		return File{}, fmt.Errorf("%w: goals: %v", ErrInvalidConfig, err)
	}
	f.Goals.Nutrients = nutrients
	f.Goals = f.Goals.Merge(screen.DefaultGoals())
	if f.Rules, err = canonical(f.Rules); err != nil {
		return File{}, fmt.Errorf("%w: rules: %v", ErrInvalidConfig, err)
	}

	if _, err := f.Evaluator(); err != nil {
		return File{}, err
	}
	if _, err := f.Pager(); err != nil {
		return File{}, err
	}
	if _, err := f.Weekday(); err != nil {
		return File{}, err
	}
	if f.GridStart != "" {
		if _, err := time.Parse("2006-01-02", f.GridStart); err != nil {
			return File{}, fmt.Errorf("%w: grid_start %q: %v", ErrInvalidConfig, f.GridStart, err)
		}
	}
	return f, nil
}

// canonical rewrites alias keys ("carbs", "chol") to their nutrient.Kind.
func canonical[V any](m map[nutrient.Kind]V) (map[nutrient.Kind]V, error) {
	if m == nil {
		return nil, nil
	}
	out := make(map[nutrient.Kind]V, len(m))
	for k, v := range m {
		kind, err := nutrient.ParseKind(string(k))
		if err != nil {
			return nil, err
		}
		out[kind] = v
	}
	return out, nil
}

// Evaluator builds the nutrient evaluator with the file's rule overrides.
func (f File) Evaluator() (*nutrient.Evaluator, error) {
	ev, err := nutrient.NewEvaluator(f.Rules)
	if err != nil {
		return nil, fmt.Errorf("%w: rules: %v", ErrInvalidConfig, err)
	}
	return ev, nil
}

// Pager builds the dashboard pager.
func (f File) Pager() (paging.Pager, error) {
	p, err := paging.NewPager(f.Dashboard.Pages, f.Dashboard.Cycles, f.Dashboard.EdgeCycles)
	if err != nil {
		return paging.Pager{}, fmt.Errorf("%w: dashboard: %v", ErrInvalidConfig, err)
	}
	return p, nil
}

// Weekday returns the configured first day of the week, Monday when unset.
func (f File) Weekday() (time.Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(f.FirstWeekday))
	if name == "" {
		return time.Monday, nil
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.ToLower(d.String()) == name {
			return d, nil
		}
	}
	return time.Monday, fmt.Errorf("%w: first_weekday %q", ErrInvalidConfig, f.FirstWeekday)
}

// Env assembles the screen environment for the given process settings.
func (f File) Env(app AppConfig) (screen.Env, error) {
	weekday, err := f.Weekday()
	if err != nil {
		return screen.Env{}, err
	}
	pager, err := f.Pager()
	if err != nil {
		return screen.Env{}, err
	}
	loc := app.Location
	if loc == nil {
		loc = time.Local
	}
	cal := calendar.New(loc, calendar.WithFirstWeekday(weekday), calendar.WithLocale(app.Locale))

	env := screen.Env{Calendar: cal, Pager: pager, Window: f.Window}
	if f.GridStart != "" {
		start, err := cal.ParseDate(f.GridStart)
		if err != nil {
			return screen.Env{}, fmt.Errorf("%w: grid_start: %v", ErrInvalidConfig, err)
		}
		env.GridStart = start
	}
	return env, nil
}
