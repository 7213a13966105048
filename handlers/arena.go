package handlers

import (
	"net/http"
	"time"

	"playarena/models"
	"playarena/services/arena"
	"playarena/services/availability"
	"playarena/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ArenaHandler exposes the booking lifecycle over HTTP.
type ArenaHandler struct {
	Arena        arena.ArenaService
	Availability availability.AvailabilityService
	Logger       *zap.Logger
}

// NewArenaHandler constructs the booking lifecycle handler.
func NewArenaHandler(svc arena.ArenaService, avail availability.AvailabilityService, logger *zap.Logger) *ArenaHandler {
	return &ArenaHandler{Arena: svc, Availability: avail, Logger: logger}
}

// BookPrivateGame creates an invite-only game for the caller and their
// colleagues.
func (h *ArenaHandler) BookPrivateGame(c *gin.Context) {
	caller, ok := callerATTUID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}

	var req arena.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	booking, err := h.Arena.CreatePrivateGame(c.Request.Context(), caller, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "Private game booked", booking)
}

// BookArenaGame creates an open game that colleagues can join until the
// player cap is reached.
func (h *ArenaHandler) BookArenaGame(c *gin.Context) {
	caller, ok := callerATTUID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}

	var req arena.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	booking, err := h.Arena.CreateArenaGame(c.Request.Context(), caller, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "Arena game booked", booking)
}

// JoinArenaGame adds the caller to an open arena game.
func (h *ArenaHandler) JoinArenaGame(c *gin.Context) {
	caller, ok := callerATTUID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}

	var req struct {
		BookingID string `json:"bookingId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	booking, err := h.Arena.JoinArenaGame(c.Request.Context(), caller, req.BookingID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Joined arena game", booking)
}

// CheckIn marks the caller present once the game window has begun.
func (h *ArenaHandler) CheckIn(c *gin.Context) {
	caller, ok := callerATTUID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}

	var req struct {
		BookingID string `json:"bookingId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	booking, err := h.Arena.CheckIn(c.Request.Context(), caller, req.BookingID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Checked in", booking)
}

// UpdateBooking applies the creator's changes to a not-yet-started booking.
func (h *ArenaHandler) UpdateBooking(c *gin.Context) {
	caller, ok := callerATTUID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}
	bookingID := c.Param("bookingId")

	var req arena.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	booking, err := h.Arena.UpdateBooking(c.Request.Context(), caller, bookingID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Booking updated", booking)
}

// CancelBooking deletes a not-yet-started booking.
func (h *ArenaHandler) CancelBooking(c *gin.Context) {
	caller, ok := callerATTUID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}
	bookingID := c.Param("bookingId")

	if err := h.Arena.CancelBooking(c.Request.Context(), caller, bookingID); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Booking canceled", nil)
}

// MyBookings lists every booking the caller participates in.
func (h *ArenaHandler) MyBookings(c *gin.Context) {
	caller, ok := callerATTUID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}

	bookings, err := h.Arena.MyBookings(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Bookings fetched", bookings)
}

// OpenArenaGames lists joinable arena games, optionally filtered by the
// date and gameType query parameters.
func (h *ArenaHandler) OpenArenaGames(c *gin.Context) {
	date := c.Query("date")
	gameType := models.GameType(c.Query("gameType"))

	games, err := h.Arena.OpenArenaGames(c.Request.Context(), date, gameType)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Open arena games fetched", games)
}

// AvailableSlots returns the open windows for one game type on one date.
func (h *ArenaHandler) AvailableSlots(c *gin.Context) {
	date := c.Query("date")
	gameType := models.GameType(c.Query("gameType"))
	if date == "" || gameType == "" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "date and gameType are required")
		return
	}
	if !gameType.IsValid() {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "unknown game type "+string(gameType))
		return
	}
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "invalid date "+date)
		return
	}

	slots, err := h.Availability.GetAvailableSlots(c.Request.Context(), gameType, date)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Available slots fetched", slots)
}
