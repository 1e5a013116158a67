package routes

import (
	"carebook/handlers"
	"carebook/middleware"

	"github.com/gin-gonic/gin"
)

// HandlerBundle collects the handlers the router wires up.
type HandlerBundle struct {
	Auth         *handlers.AuthHandler
	Availability *handlers.AvailabilityHandler
	Booking      *handlers.BookingHandler
	Command      *handlers.CommandHandler
}

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *gin.Engine, h *HandlerBundle) {
	auth := r.Group("/api/auth")
	{
		auth.POST("/provider/signup", h.Auth.ProviderSignup)
		auth.POST("/provider/login", h.Auth.ProviderLogin)
		auth.POST("/seeker/signup", h.Auth.SeekerSignup)
		auth.POST("/seeker/login", h.Auth.SeekerLogin)
	}

	provider := r.Group("/api/provider", middleware.RequireAuth("provider"))
	{
		provider.POST("/availability", h.Availability.Publish)
		provider.GET("/availability", h.Availability.Get)
	}

	RegisterBookingRoutes(r, h)
}
