package handlers

import (
	"net/http"

	"playarena/services/roster"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RosterHandler exposes the cached employee directory over HTTP.
type RosterHandler struct {
	Roster roster.RosterService
	Logger *zap.Logger
}

// NewRosterHandler constructs the roster handler.
func NewRosterHandler(svc roster.RosterService, logger *zap.Logger) *RosterHandler {
	return &RosterHandler{Roster: svc, Logger: logger}
}

// GetAllUsers returns the full cached roster as maintained by the
// directory sync job.
func (h *RosterHandler) GetAllUsers(c *gin.Context) {
	users, err := h.Roster.All(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Users fetched", users)
}
