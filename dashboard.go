package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sanggab/PagenationCalendar/internal/nutrient"
	"github.com/sanggab/PagenationCalendar/internal/screen"
)

// changeDashboardPage reports the dashboard scroll position. The response
// carries the logical page and, near either end, the re-centred position.
// POST /api/dashboard/page. Body: { "position": 181 }.
func (h *Handler) changeDashboardPage(c *gin.Context) {
	var body dashboardPageRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Position != nil && *body.Position < 0 {
		apiError(c, http.StatusBadRequest, "position must not be negative")
		return
	}
	h.dispatch(c, screen.DashboardPageChanged{Position: body.Position})
}

// addNutrient adds (or with a negative amount, removes) intake of one
// nutrient on the selected day. Intake never drops below zero.
// POST /api/dashboard/nutrients/:kind. Body: { "amount": 12.5 }.
func (h *Handler) addNutrient(c *gin.Context) {
	kind, err := nutrient.ParseKind(c.Param("kind"))
	if err != nil {
		apiError(c, http.StatusNotFound, "unknown nutrient: "+c.Param("kind"))
		return
	}
	var body addNutrientRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Amount == nil {
		apiError(c, http.StatusBadRequest, "amount is required")
		return
	}
	h.dispatch(c, screen.NutrientAdded{Kind: kind, Amount: *body.Amount})
}

// patchGoals updates only the provided goal fields.
// PATCH /api/dashboard/goals. Uses pointer fields in the request body to
// distinguish "not provided" from zero. Only non-nil fields get updated.
func (h *Handler) patchGoals(c *gin.Context) {
	var body patchGoalsRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if body.CaloriesKcal != nil && (*body.CaloriesKcal < 0 || *body.CaloriesKcal > 20000) {
		apiError(c, http.StatusBadRequest, "calories_kcal must be between 0 and 20000")
		return
	}
	if body.WaterLiters != nil && (*body.WaterLiters <= 0 || *body.WaterLiters > 20) {
		apiError(c, http.StatusBadRequest, "water_liters must be greater than 0 and at most 20")
		return
	}
	if body.WaterStepLiters != nil && (*body.WaterStepLiters <= 0 || *body.WaterStepLiters > 5) {
		apiError(c, http.StatusBadRequest, "water_step_liters must be greater than 0 and at most 5")
		return
	}

	action := screen.GoalsChanged{
		CaloriesKcal:    body.CaloriesKcal,
		WaterLiters:     body.WaterLiters,
		WaterStepLiters: body.WaterStepLiters,
	}
	if len(body.Nutrients) > 0 {
		action.Nutrients = make(map[nutrient.Kind]float64, len(body.Nutrients))
		for name, goal := range body.Nutrients {
			kind, err := nutrient.ParseKind(name)
			if err != nil {
				apiError(c, http.StatusBadRequest, "unknown nutrient: "+name)
				return
			}
			if goal < 0 {
				apiError(c, http.StatusBadRequest, "nutrient goals must not be negative")
				return
			}
			action.Nutrients[kind] = goal
		}
	}
	h.dispatch(c, action)
}
