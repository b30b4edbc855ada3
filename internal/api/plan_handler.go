package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"nutriplan/nutrition-app/internal/domain"
	"nutriplan/nutrition-app/internal/genai"
	"nutriplan/nutrition-app/internal/repository"
	"nutriplan/nutrition-app/internal/service"
)

// PlanHandler exposes AI plan generation and meal editing.
type PlanHandler struct {
	planService service.PlanService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// --- Request/Response Structs ---

type AdjustMealRequest struct {
	Instruction string `json:"instruction" binding:"required"`
}

type ModifyPlanRequest struct {
	Slot     domain.MealSlot `json:"slot" binding:"required"`
	FoodType string          `json:"foodType"`
}

// PlanResponse returns the plan with meals in display order. Meal IDs are
// the handles for single-meal operations.
type PlanResponse struct {
	Insight      string        `json:"insight,omitempty"`
	MealPlan     []domain.Meal `json:"mealPlan"`
	WeeklyAdvice string        `json:"weeklyAdvice,omitempty"`
	Supplements  string        `json:"supplements,omitempty"`
	Recovery     string        `json:"recovery,omitempty"`
	HealthAdvice string        `json:"healthAdvice,omitempty"`
}

type ExportResponse struct {
	DownloadURL string `json:"downloadUrl"`
}

// MapPlanToResponse converts a stored plan to its API shape, sorting
// meals by slot precedence for display.
func MapPlanToResponse(plan *domain.StoredPlan) PlanResponse {
	if plan == nil {
		return PlanResponse{MealPlan: []domain.Meal{}}
	}
	meals := plan.Data.SortedMealPlan()
	if meals == nil {
		meals = []domain.Meal{}
	}
	return PlanResponse{
		Insight:      plan.Data.Insight,
		MealPlan:     meals,
		WeeklyAdvice: plan.Data.WeeklyAdvice,
		Supplements:  plan.Data.Supplements,
		Recovery:     plan.Data.Recovery,
		HealthAdvice: plan.Data.HealthAdvice,
	}
}

// handlePlanError maps service errors to HTTP status codes.
func handlePlanError(c *gin.Context, err error) {
	var parseErr *genai.ParseError
	switch {
	case errors.Is(err, service.ErrEnrichmentUnavailable):
		abortWithError(c, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, service.ErrNoPlan), errors.Is(err, repository.ErrNotFound):
		abortWithError(c, http.StatusNotFound, "No plan generated yet")
	case errors.Is(err, service.ErrMealNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrPlanSuperseded):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.As(err, &parseErr):
		abortWithError(c, http.StatusBadGateway, "AI response could not be understood")
	default:
		abortWithError(c, http.StatusBadGateway, fmt.Sprintf("Generation failed: %v", err))
	}
}

// --- Handler Methods ---

// GetPlan returns the current stored plan.
func (h *PlanHandler) GetPlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	plan, err := h.planService.GetPlan(c.Request.Context(), userID)
	if err != nil {
		handlePlanError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapPlanToResponse(plan))
}

// GenerateInsight produces the short coaching insight.
func (h *PlanHandler) GenerateInsight(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	insight, err := h.planService.GenerateInsight(c.Request.Context(), userID)
	if err != nil {
		handlePlanError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"insight": insight})
}

// GenerateMealPlan produces a fresh one-day meal plan.
func (h *PlanHandler) GenerateMealPlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	meals, err := h.planService.GenerateMealPlan(c.Request.Context(), userID)
	if err != nil {
		handlePlanError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mealPlan": meals})
}

// GenerateGuidance produces the weekly advice block.
func (h *PlanHandler) GenerateGuidance(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	guidance, err := h.planService.GenerateGuidance(c.Request.Context(), userID)
	if err != nil {
		handlePlanError(c, err)
		return
	}
	c.JSON(http.StatusOK, guidance)
}

// GenerateFullPlan runs the three modular fetches concurrently.
// Partial failure still returns whatever content landed, flagging the
// failed slots.
func (h *PlanHandler) GenerateFullPlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	plan, err := h.planService.GenerateFullPlan(c.Request.Context(), userID)
	if err != nil && plan == nil {
		handlePlanError(c, err)
		return
	}

	status := http.StatusOK
	body := gin.H{"plan": MapPlanToResponse(plan)}
	if err != nil {
		status = http.StatusPartialContent
		body["failedSlots"] = err.Error()
	}
	c.JSON(status, body)
}

// RegenerateMealPlan replaces the whole meal list with a new day.
func (h *PlanHandler) RegenerateMealPlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	meals, err := h.planService.RegenerateMealPlan(c.Request.Context(), userID)
	if err != nil {
		handlePlanError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mealPlan": meals})
}

// RegenerateMeal replaces a single meal, addressed by its stable ID.
func (h *PlanHandler) RegenerateMeal(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	meal, err := h.planService.RegenerateMeal(c.Request.Context(), userID, c.Param("mealId"))
	if err != nil {
		handlePlanError(c, err)
		return
	}
	c.JSON(http.StatusOK, meal)
}

// AdjustMeal edits a single meal per a free-text instruction.
func (h *PlanHandler) AdjustMeal(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req AdjustMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	meal, err := h.planService.AdjustMeal(c.Request.Context(), userID, c.Param("mealId"), req.Instruction)
	if err != nil {
		handlePlanError(c, err)
		return
	}
	c.JSON(http.StatusOK, meal)
}

// ModifyPlan adds or augments a meal slot in the current plan.
func (h *PlanHandler) ModifyPlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req ModifyPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	meals, err := h.planService.ModifyMealPlan(c.Request.Context(), userID, req.Slot, req.FoodType)
	if err != nil {
		handlePlanError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mealPlan": meals})
}

// ExportPlan archives the plan snapshot and returns a download URL.
func (h *PlanHandler) ExportPlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	url, err := h.planService.ExportPlan(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNoPlan) {
			abortWithError(c, http.StatusNotFound, "No plan generated yet")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to export plan")
		}
		return
	}
	c.JSON(http.StatusOK, ExportResponse{DownloadURL: url})
}
