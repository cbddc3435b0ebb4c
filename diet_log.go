package main

import (
	"encoding/json"
	"io"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/sanggab/PagenationCalendar/internal/diet"
	"github.com/sanggab/PagenationCalendar/internal/screen"
)

// maxDietLogBytes caps the import body.
const maxDietLogBytes = 4 << 20

// postDietLog imports logged foods into the screen. The body is either a bare
// JSON array of foods or { "foods": [...], "replace": true }. Field values are
// decoded leniently: numbers may arrive as strings and malformed values are
// dropped rather than rejecting the food.
// POST /api/diet-log
func (h *Handler) postDietLog(c *gin.Context) {
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxDietLogBytes+1))
	if err != nil {
		apiError(c, http.StatusBadRequest, "failed to read request body")
		return
	}
	if len(raw) > maxDietLogBytes {
		apiError(c, http.StatusRequestEntityTooLarge, "diet log is too large")
		return
	}

	var body struct {
		Foods   []diet.Food `json:"foods"`
		Replace bool        `json:"replace"`
	}
	if err := json.Unmarshal(raw, &body.Foods); err != nil {
		body.Foods = nil
		if err := json.Unmarshal(raw, &body); err != nil {
			apiError(c, http.StatusBadRequest, "invalid request body, expected a list of foods")
			return
		}
	}

	loc := h.store.Env().Calendar.Location()
	days := make([]string, 0)
	byDay := diet.ByDay(body.Foods, loc)
	imported := 0
	for day, foods := range byDay {
		days = append(days, day)
		imported += len(foods)
	}
	sort.Strings(days)

	snap, err := h.store.Dispatch(c.Request.Context(), screen.DietLogged{Foods: body.Foods, Replace: body.Replace})
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dietLogResponse{
		Imported: imported,
		Skipped:  len(body.Foods) - imported,
		Days:     days,
		Snapshot: snap,
	})
}
