package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	seekerRepo "carebook/database/repository/seeker"
	"carebook/middleware"
	"carebook/models"
	booking "carebook/services/booking"
	ai "carebook/services/intelligence"
	"carebook/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const commandSessionTTL = 10 * time.Minute

// CommandHandler runs the natural-language booking flow in two phases:
// parse the command into structured entries and cache them for review,
// then reserve on confirmation.
type CommandHandler struct {
	Parser      ai.CommandParser
	Bookings    booking.BookingService
	SeekerRepo  seekerRepo.SeekerRepository
	CacheClient *redis.Client
}

func NewCommandHandler(parser ai.CommandParser, bookings booking.BookingService, sr seekerRepo.SeekerRepository, cache *redis.Client) *CommandHandler {
	return &CommandHandler{Parser: parser, Bookings: bookings, SeekerRepo: sr, CacheClient: cache}
}

type commandSession struct {
	SeekerID string                       `json:"seekerId"`
	Entries  []models.BookingRequestEntry `json:"entries"`
}

type commandInput struct {
	Text string `json:"text" binding:"required"`
}

// Parse interprets a free-text scheduling command and caches the resulting
// entries under a session ID so the seeker can review before booking.
func (h *CommandHandler) Parse(c *gin.Context) {
	seekerID, _ := middleware.ActingUser(c)
	seeker, err := h.SeekerRepo.GetByID(c.Request.Context(), seekerID)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "not_found", "seeker profile not found")
		return
	}

	var in commandInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_input", err.Error())
		return
	}

	entries, err := h.Parser.ParseScheduleCommand(c.Request.Context(), in.Text, seeker.LocationGeo)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "parse_failed", err.Error())
		return
	}

	session := commandSession{SeekerID: seekerID, Entries: entries}
	data, err := json.Marshal(session)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "internal_error", "failed to marshal command session")
		return
	}
	sessionID := uuid.New().String()
	if err := h.CacheClient.Set(c.Request.Context(), commandSessionKey(sessionID), data, commandSessionTTL).Err(); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "internal_error", "failed to cache command session")
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessionID": sessionID, "entries": entries})
}

// Confirm reserves the entries cached by a prior Parse call.
func (h *CommandHandler) Confirm(c *gin.Context) {
	seekerID, _ := middleware.ActingUser(c)
	sessionID := c.Param("sessionID")

	data, err := h.CacheClient.Get(c.Request.Context(), commandSessionKey(sessionID)).Result()
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "not_found", "command session not found or expired")
		return
	}
	var session commandSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "internal_error", "failed to parse command session")
		return
	}
	if session.SeekerID != seekerID {
		utils.JSONError(c, http.StatusNotFound, "not_found", "command session not found or expired")
		return
	}

	seeker, err := h.SeekerRepo.GetByID(c.Request.Context(), seekerID)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "not_found", "seeker profile not found")
		return
	}

	resp, err := h.Bookings.Reserve(c.Request.Context(), seeker, session.Entries)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}

	// One confirmation per session.
	h.CacheClient.Del(c.Request.Context(), commandSessionKey(sessionID))

	c.JSON(http.StatusOK, resp)
}

func commandSessionKey(sessionID string) string {
	return "cmd:session:" + sessionID
}
