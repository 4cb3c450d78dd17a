package routes

import (
	"slotwise/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes registers all endpoints for the booking engine.
func RegisterBookingRoutes(r *gin.Engine, h *handlers.BookingHandler) {
	booking := r.Group("/api/booking")
	{
		booking.POST("", h.CreateBooking)                 // validate and commit
		booking.POST("/validate", h.ValidateBooking)      // dry run
		booking.DELETE("/:bookingID", h.CancelBooking)    // release a slot
	}
}
