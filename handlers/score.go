package handlers

import (
	"net/http"

	"playarena/models"
	"playarena/services/score"
	"playarena/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ScoreHandler exposes the score ledger over HTTP.
type ScoreHandler struct {
	Scores score.ScoreService
	Logger *zap.Logger
}

// NewScoreHandler constructs the score ledger handler.
func NewScoreHandler(svc score.ScoreService, logger *zap.Logger) *ScoreHandler {
	return &ScoreHandler{Scores: svc, Logger: logger}
}

// SubmitScore records the creator's one-shot final results for an ended
// game.
func (h *ScoreHandler) SubmitScore(c *gin.Context) {
	caller, ok := callerATTUID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}

	var req struct {
		BookingID string             `json:"bookingId" binding:"required"`
		Scores    []score.ScoreEntry `json:"scores" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	record, err := h.Scores.SubmitFinalScores(c.Request.Context(), caller, req.BookingID, req.Scores)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "Final scores recorded", record)
}

// GetScores returns the score record for one booking.
func (h *ScoreHandler) GetScores(c *gin.Context) {
	bookingID := c.Query("bookingId")
	if bookingID == "" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "bookingId is required")
		return
	}

	record, err := h.Scores.GetScores(c.Request.Context(), bookingID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Scores fetched", record)
}

// UserScores returns summed scores per identity and game type, optionally
// filtered by the gameType query parameter.
func (h *ScoreHandler) UserScores(c *gin.Context) {
	gameType := models.GameType(c.Query("gameType"))
	if gameType != "" && !gameType.IsValid() {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "unknown game type "+string(gameType))
		return
	}

	totals, err := h.Scores.AggregateByUser(c.Request.Context(), gameType)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "User scores fetched", totals)
}
