package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"nutriplan/nutrition-app/internal/domain"
	"nutriplan/nutrition-app/internal/repository"
	"nutriplan/nutrition-app/internal/service"
)

// ProfileHandler exposes the nutrition profile and its calculation.
type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// CalculationResponse pairs the stored profile with its derived numbers.
type CalculationResponse struct {
	Profile     *domain.UserProfile      `json:"profile,omitempty"`
	Calculation domain.CalculationResult `json:"calculation"`
}

// SaveProfile validates and stores the profile, returning the new
// calculation. Each save advances the profile revision.
func (h *ProfileHandler) SaveProfile(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var profile domain.UserProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	saved, result, err := h.profileService.Save(c.Request.Context(), userID, &profile)
	if err != nil {
		if errors.Is(err, domain.ErrIncompleteProfile) || errors.Is(err, domain.ErrInvalidCustomRatio) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to save profile")
		}
		return
	}

	c.JSON(http.StatusOK, CalculationResponse{Profile: saved, Calculation: result})
}

// GetProfile returns the stored profile with its calculation.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	profile, result, err := h.profileService.Get(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			abortWithError(c, http.StatusNotFound, "No profile saved yet")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to load profile")
		}
		return
	}

	c.JSON(http.StatusOK, CalculationResponse{Profile: profile, Calculation: result})
}

// PreviewCalculation computes a calculation without persisting the
// profile. Available without authentication.
func (h *ProfileHandler) PreviewCalculation(c *gin.Context) {
	var profile domain.UserProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	result, err := h.profileService.Preview(&profile)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusOK, CalculationResponse{Calculation: result})
}
