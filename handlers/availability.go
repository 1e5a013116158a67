package handlers

import (
	"errors"
	"net/http"

	providerRepo "carebook/database/repository/provider"
	"carebook/middleware"
	"carebook/models"
	booking "carebook/services/booking"
	"carebook/utils"

	"github.com/gin-gonic/gin"
)

// AvailabilityHandler exposes availability publishing for providers.
type AvailabilityHandler struct {
	Availability booking.AvailabilityService
}

func NewAvailabilityHandler(svc booking.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{Availability: svc}
}

type publishAvailabilityInput struct {
	Entries []models.AvailabilityEntry `json:"entries" binding:"required"`
}

// Publish appends availability entries for the authenticated provider.
func (h *AvailabilityHandler) Publish(c *gin.Context) {
	providerID, _ := middleware.ActingUser(c)

	var in publishAvailabilityInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_input", err.Error())
		return
	}

	result, err := h.Availability.Publish(c.Request.Context(), providerID, in.Entries)
	if err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			utils.JSONError(c, http.StatusNotFound, "not_found", "provider not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}
	c.JSON(http.StatusOK, result)
}

// Get returns the authenticated provider's availability entries.
func (h *AvailabilityHandler) Get(c *gin.Context) {
	providerID, _ := middleware.ActingUser(c)

	entries, err := h.Availability.Get(c.Request.Context(), providerID)
	if err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			utils.JSONError(c, http.StatusNotFound, "not_found", "provider not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"availability": entries})
}
