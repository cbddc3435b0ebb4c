package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sanggab/PagenationCalendar/internal/screen"
)

// Handler holds shared dependencies (screen store, logger) for all route handlers.
type Handler struct {
	store *screen.Store
	log   *zap.Logger
}

// apiError returns a consistent JSON error response: {"error": "message"}.
func apiError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

/* ─── Store helpers ──────────────────────────────────────────────────── */

// storeError maps a store failure onto a response. A stopped store or a
// cancelled request means the server is shutting down.
func (h *Handler) storeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, screen.ErrStopped), errors.Is(err, context.Canceled):
		apiError(c, http.StatusServiceUnavailable, "screen is shutting down")
	case errors.Is(err, context.DeadlineExceeded):
		apiError(c, http.StatusServiceUnavailable, "screen is busy")
	default:
		h.log.Error("store request failed", zap.Error(err))
		apiError(c, http.StatusInternalServerError, "failed to update screen")
	}
}

// now reads the store's clock.
func (h *Handler) now() time.Time {
	if env := h.store.Env(); env.Now != nil {
		return env.Now()
	}
	return time.Now()
}

// dispatch sends a to the store and answers with the resulting snapshot.
func (h *Handler) dispatch(c *gin.Context, a screen.Action) {
	snap, err := h.store.Dispatch(c.Request.Context(), a)
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// registerRoutes registers all API routes on the router.
func (h *Handler) registerRoutes(router *gin.Engine) {
	api := router.Group("/api")
	api.GET("/screen", h.getScreen)

	api.GET("/calendar/day", h.getDailySummary)
	api.GET("/calendar/week", h.getWeek)
	api.GET("/calendar/week-summary", h.getWeekSummary)
	api.GET("/calendar/grid", h.getGrid)
	api.POST("/calendar/scroll", h.scrollWeek)
	api.POST("/calendar/scroll-id", h.scrollToDay)
	api.POST("/calendar/today", h.tapToday)
	api.POST("/calendar/select", h.selectDate)
	api.POST("/calendar/weekday/:index", h.tapWeekday)

	api.POST("/dashboard/page", h.changeDashboardPage)
	api.POST("/dashboard/nutrients/:kind", h.addNutrient)
	api.PATCH("/dashboard/goals", h.patchGoals)

	api.GET("/water", h.getWater)
	api.POST("/water/increase", h.increaseWater)
	api.POST("/water/decrease", h.decreaseWater)

	api.POST("/diet-log", h.postDietLog)
}
