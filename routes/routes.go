package routes

import (
	"net/http"

	"playarena/handlers"
	"playarena/middleware"
	"playarena/utils"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires every endpoint onto the router.
func RegisterRoutes(r *gin.Engine, arenaHandler *handlers.ArenaHandler, scoreHandler *handlers.ScoreHandler, rosterHandler *handlers.RosterHandler) {
	r.GET("/healthz", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		code := http.StatusOK
		if !status.Healthy() {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, status)
	})

	registerArenaRoutes(r, arenaHandler, scoreHandler, rosterHandler)
}

// registerArenaRoutes registers the booking, score and roster endpoints.
// Every route requires a valid gateway token.
func registerArenaRoutes(r *gin.Engine, ah *handlers.ArenaHandler, sh *handlers.ScoreHandler, rh *handlers.RosterHandler) {
	api := r.Group("/api/arena")
	api.Use(middleware.JWTAuthMiddleware())
	{
		// Booking lifecycle.
		api.POST("/book-private-game", ah.BookPrivateGame)
		api.POST("/book-arena-game", ah.BookArenaGame)
		api.POST("/join-arena-game", ah.JoinArenaGame)
		api.POST("/checkin", ah.CheckIn)
		api.PUT("/update-booking/:bookingId", ah.UpdateBooking)
		api.DELETE("/cancel-booking/:bookingId", ah.CancelBooking)

		// Listing views.
		api.GET("/my-bookings", ah.MyBookings)
		api.GET("/open-arena-games", ah.OpenArenaGames)
		api.GET("/available-slots", ah.AvailableSlots)

		// Score ledger.
		api.POST("/submit-score", sh.SubmitScore)
		api.GET("/scores", sh.GetScores)
		api.GET("/user-scores", sh.UserScores)

		// Roster.
		api.GET("/get-all-users", rh.GetAllUsers)
	}
}
