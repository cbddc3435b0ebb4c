package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sanggab/PagenationCalendar/internal/screen"
)

// getWater returns the selected day's water intake and guide.
// GET /api/water
func (h *Handler) getWater(c *gin.Context) {
	snap, err := h.store.Snapshot(c.Request.Context())
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap.Water)
}

// increaseWater adds one step to the selected day's water intake.
// POST /api/water/increase
func (h *Handler) increaseWater(c *gin.Context) {
	h.waterAction(c, screen.WaterIncreased{})
}

// decreaseWater removes one step, stopping at zero.
// POST /api/water/decrease
func (h *Handler) decreaseWater(c *gin.Context) {
	h.waterAction(c, screen.WaterDecreased{})
}

func (h *Handler) waterAction(c *gin.Context, a screen.Action) {
	snap, err := h.store.Dispatch(c.Request.Context(), a)
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap.Water)
}
