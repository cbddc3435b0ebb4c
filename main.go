package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sanggab/PagenationCalendar/internal/config"
	"github.com/sanggab/PagenationCalendar/internal/logging"
	"github.com/sanggab/PagenationCalendar/internal/screen"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.LogLevel, cfg.AppEnv)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	file, err := config.LoadFile(cfg.GoalsFile)
	if err != nil {
		return err
	}
	env, err := file.Env(cfg)
	if err != nil {
		return err
	}
	env.Log = logger
	ev, err := file.Evaluator()
	if err != nil {
		return err
	}
	store := screen.NewStore(env, file.Goals, ev)

	gin.SetMode(cfg.GinMode)
	router := newRouter(&Handler{store: store, log: logger.Named("http")}, logger.Named("http"))
	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error { return store.Run(ctx) })
	if _, err := store.Dispatch(ctx, screen.Appear{}); err != nil {
		stop()
		_ = g.Wait()
		return fmt.Errorf("initialize screen: %w", err)
	}

	if cfg.GoalsFile != "" {
		g.Go(func() error {
			return config.Watch(ctx, cfg.GoalsFile, logger.Named("config"), func(f config.File) {
				applyGoals(ctx, store, f, logger)
			})
		})
	}

	g.Go(func() error {
		logger.Info("listening",
			zap.String("addr", cfg.ListenAddr),
			zap.String("timezone", cfg.Timezone),
			zap.String("locale", cfg.Locale))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// newRouter builds the gin engine with logging and panic recovery.
func newRouter(h *Handler, log *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(requestLogger(log), recovery(log))
	_ = router.SetTrustedProxies(nil)
	h.registerRoutes(router)
	return router
}

// applyGoals pushes a reloaded goals file into the running screen. Layout
// sections only take effect on restart, so changes to them are logged.
func applyGoals(ctx context.Context, store *screen.Store, f config.File, log *zap.Logger) {
	if changed := restartSections(f, store.Env()); len(changed) > 0 {
		log.Warn("goals file sections changed that apply after a restart",
			zap.Strings("sections", changed))
	}
	goals := f.Goals
	actions := []screen.Action{
		screen.GoalsChanged{
			CaloriesKcal:    &goals.CaloriesKcal,
			Nutrients:       goals.Nutrients,
			WaterLiters:     &goals.WaterLiters,
			WaterStepLiters: &goals.WaterStepLiters,
		},
		screen.RulesChanged{Rules: f.Rules},
	}
	for _, a := range actions {
		if _, err := store.Dispatch(ctx, a); err != nil {
			log.Warn("failed to apply reloaded goals", zap.Error(err))
			return
		}
	}
}

// restartSections lists the goals file sections that differ from the running env.
func restartSections(f config.File, env screen.Env) []string {
	var changed []string
	if pager, err := f.Pager(); err != nil || pager != env.Pager {
		changed = append(changed, "dashboard")
	}
	if f.Window != env.Window {
		changed = append(changed, "window")
	}
	running := ""
	if !env.GridStart.IsZero() {
		running = env.GridStart.Format("2006-01-02")
	}
	if f.GridStart != running {
		changed = append(changed, "grid_start")
	}
	if weekday, err := f.Weekday(); err != nil || weekday != env.Calendar.FirstWeekday() {
		changed = append(changed, "first_weekday")
	}
	return changed
}
