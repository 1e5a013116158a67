package routes

import (
	"carebook/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes registers all endpoints for the booking engine.
func RegisterBookingRoutes(r *gin.Engine, h *HandlerBundle) {
	booking := r.Group("/api/booking")
	{
		// Seeker side: match, reserve, natural-language flow.
		seeker := booking.Group("", middleware.RequireAuth("seeker"))
		{
			seeker.POST("/match", h.Booking.Match)
			seeker.POST("", h.Booking.Create)
			seeker.POST("/command", h.Command.Parse)
			seeker.POST("/command/:sessionID/confirm", h.Command.Confirm)
		}

		// Lifecycle and listing: both roles, ownership enforced in the service.
		authed := booking.Group("", middleware.RequireAuth(""))
		{
			authed.GET("/mine", h.Booking.ListMine)
			authed.POST("/:bookingID/accept", h.Booking.Accept)
			authed.POST("/:bookingID/reject", h.Booking.Reject)
			authed.POST("/:bookingID/cancel", h.Booking.Cancel)
		}
	}
}
