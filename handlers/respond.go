package handlers

import (
	"errors"
	"net/http"

	bookingRepo "playarena/database/repository/booking"
	scoreRepo "playarena/database/repository/score"
	"playarena/services/arena"
	"playarena/services/roster"
	"playarena/services/score"
	"playarena/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondOK sends the standard success envelope.
func respondOK(c *gin.Context, status int, message string, data interface{}) {
	body := gin.H{"success": true, "message": message}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

// respondError maps a service error onto the HTTP status taxonomy and the
// standard error envelope. Unknown errors are logged and masked as 500s.
func respondError(c *gin.Context, err error) {
	logger := utils.GetLogger()

	switch {
	case arena.IsValidation(err),
		errors.Is(err, score.ErrInvalidEntries),
		errors.Is(err, roster.ErrUnknownIdentity):
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())

	case errors.Is(err, arena.ErrNotCreator),
		errors.Is(err, arena.ErrNotParticipant),
		errors.Is(err, arena.ErrPrivateGame),
		errors.Is(err, score.ErrNotCreator):
		utils.JSONError(c, http.StatusForbidden, "Not allowed", err.Error())

	case errors.Is(err, arena.ErrNotFound),
		errors.Is(err, bookingRepo.ErrNotFound),
		errors.Is(err, scoreRepo.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "Not found", err.Error())

	case errors.Is(err, arena.ErrSlotHeld),
		errors.Is(err, arena.ErrSlotTaken),
		errors.Is(err, arena.ErrGameFull),
		errors.Is(err, arena.ErrAlreadyJoined),
		errors.Is(err, arena.ErrGameStarted),
		errors.Is(err, arena.ErrGameEnded),
		errors.Is(err, arena.ErrNotStarted),
		errors.Is(err, arena.ErrAlreadyCheckedIn),
		errors.Is(err, arena.ErrBookingBusy),
		errors.Is(err, score.ErrGameNotEnded),
		errors.Is(err, score.ErrDuplicateSubmission):
		utils.JSONError(c, http.StatusConflict, "Conflict", err.Error())

	case errors.Is(err, roster.ErrRosterUnavailable):
		utils.JSONError(c, http.StatusServiceUnavailable, "Service unavailable", err.Error())

	default:
		logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error", "")
	}
}

// callerATTUID reads the identity the auth middleware stored.
func callerATTUID(c *gin.Context) (string, bool) {
	v, ok := c.Get("attuid")
	if !ok {
		return "", false
	}
	attuid, ok := v.(string)
	return attuid, ok && attuid != ""
}
