package handlers

import (
	"context"
	"errors"
	"net/http"

	seekerRepo "carebook/database/repository/seeker"
	"carebook/middleware"
	"carebook/models"
	booking "carebook/services/booking"
	"carebook/utils"

	"github.com/gin-gonic/gin"
)

// BookingHandler exposes the reservation workflow and booking lifecycle.
type BookingHandler struct {
	Bookings   booking.BookingService
	Matching   booking.MatchingService
	SeekerRepo seekerRepo.SeekerRepository
	RadiusKm   float64
}

func NewBookingHandler(b booking.BookingService, m booking.MatchingService, sr seekerRepo.SeekerRepository, radiusKm float64) *BookingHandler {
	return &BookingHandler{Bookings: b, Matching: m, SeekerRepo: sr, RadiusKm: radiusKm}
}

type createBookingInput struct {
	Entries []models.BookingRequestEntry `json:"entries" binding:"required"`
}

// Create reserves bookings for a batch of structured request entries.
func (h *BookingHandler) Create(c *gin.Context) {
	seekerID, _ := middleware.ActingUser(c)
	seeker, err := h.SeekerRepo.GetByID(c.Request.Context(), seekerID)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "not_found", "seeker profile not found")
		return
	}

	var in createBookingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_input", err.Error())
		return
	}
	if len(in.Entries) == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid_input", "entries must not be empty")
		return
	}

	resp, err := h.Bookings.Reserve(c.Request.Context(), seeker, in.Entries)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}
	c.JSON(http.StatusOK, resp)
}

type matchInput struct {
	Entry models.BookingRequestEntry `json:"entry" binding:"required"`
}

// Match previews eligible providers for one entry without reserving.
func (h *BookingHandler) Match(c *gin.Context) {
	seekerID, _ := middleware.ActingUser(c)
	seeker, err := h.SeekerRepo.GetByID(c.Request.Context(), seekerID)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "not_found", "seeker profile not found")
		return
	}

	var in matchInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_input", err.Error())
		return
	}

	result, err := h.Matching.MatchProviders(c.Request.Context(), in.Entry, seeker.LocationGeo, h.RadiusKm)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_input", err.Error())
		return
	}
	c.JSON(http.StatusOK, result)
}

// Accept confirms a pending booking (provider only).
func (h *BookingHandler) Accept(c *gin.Context) {
	h.transition(c, h.Bookings.Accept)
}

// Reject declines a pending booking (provider only).
func (h *BookingHandler) Reject(c *gin.Context) {
	h.transition(c, h.Bookings.Reject)
}

// Cancel withdraws a pending or confirmed booking (either party).
func (h *BookingHandler) Cancel(c *gin.Context) {
	h.transition(c, h.Bookings.Cancel)
}

func (h *BookingHandler) transition(c *gin.Context, op func(ctx context.Context, id string, actor booking.Actor) (*models.BookingStatusResult, error)) {
	userID, role := middleware.ActingUser(c)
	bookingID := c.Param("bookingID")

	result, err := op(c.Request.Context(), bookingID, booking.Actor{ID: userID, Role: role})
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListMine returns the acting user's bookings, provider or seeker side.
func (h *BookingHandler) ListMine(c *gin.Context) {
	userID, role := middleware.ActingUser(c)

	var (
		bookings []models.Booking
		err      error
	)
	if role == "provider" {
		bookings, err = h.Bookings.ListForProvider(c.Request.Context(), userID)
	} else {
		bookings, err = h.Bookings.ListForSeeker(c.Request.Context(), userID)
	}
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// respondBookingError maps domain errors to HTTP-style status semantics:
// 404 not found/unauthorized, 400 invalid state transition, 409 scheduling
// conflict.
func respondBookingError(c *gin.Context, err error) {
	var notFound *booking.NotFoundError
	var badState *booking.StateTransitionError
	var conflict *booking.ScheduleConflictError
	switch {
	case errors.As(err, &notFound):
		utils.JSONError(c, http.StatusNotFound, "not_found", notFound.Error())
	case errors.As(err, &badState):
		utils.JSONError(c, http.StatusBadRequest, "invalid_state_transition", badState.Error())
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{
			"error":     "scheduling_conflict",
			"message":   conflict.Error(),
			"conflicts": conflict.Conflicts,
		})
	default:
		utils.JSONError(c, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
