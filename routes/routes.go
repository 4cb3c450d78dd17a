package routes

import (
	"net/http"

	"slotwise/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires every endpoint onto the router.
func RegisterRoutes(r *gin.Engine, booking *handlers.BookingHandler, avail *handlers.AvailabilityHandler) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	RegisterBookingRoutes(r, booking)
	RegisterAvailabilityRoutes(r, avail)
}
