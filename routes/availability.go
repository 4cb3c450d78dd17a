package routes

import (
	"slotwise/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterAvailabilityRoutes registers host availability endpoints.
func RegisterAvailabilityRoutes(r *gin.Engine, h *handlers.AvailabilityHandler) {
	avail := r.Group("/api/availability")
	{
		avail.GET("/:hostID", h.GetAvailability)
		avail.PUT("/:hostID", h.SetAvailability)
		avail.DELETE("/:hostID", h.DeleteAvailability)
		avail.POST("/combined", h.CombinedAvailability)
	}
}
