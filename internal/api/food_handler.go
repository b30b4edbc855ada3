package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nutriplan/nutrition-app/internal/foodref"
)

// FoodHandler exposes the static food-composition reference table.
type FoodHandler struct {
	foods *foodref.Table
}

// NewFoodHandler creates a new FoodHandler.
func NewFoodHandler(foods *foodref.Table) *FoodHandler {
	return &FoodHandler{foods: foods}
}

// ListFoods returns the full reference table.
func (h *FoodHandler) ListFoods(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"foods": h.foods.Items()})
}

// LookupFood resolves a free-form description ("steamed rice 150g") to a
// reference entry with per-100g macros.
func (h *FoodHandler) LookupFood(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		abortWithError(c, http.StatusBadRequest, "query parameter 'q' is required")
		return
	}

	item, ok := h.foods.Lookup(query)
	if !ok {
		abortWithError(c, http.StatusNotFound, "no matching reference food")
		return
	}
	c.JSON(http.StatusOK, item)
}
