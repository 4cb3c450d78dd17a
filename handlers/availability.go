package handlers

import (
	"errors"
	"net/http"

	"slotwise/models"
	"slotwise/services/availability"
	"slotwise/services/scheduling"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// AvailabilityHandler serves host availability management and the
// combined multi-host availability endpoint.
type AvailabilityHandler struct {
	Svc       availability.AvailabilityService
	Scheduler scheduling.SchedulingService
	Logger    *zap.Logger
}

// NewAvailabilityHandler constructs an AvailabilityHandler.
func NewAvailabilityHandler(svc availability.AvailabilityService, scheduler scheduling.SchedulingService, logger *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{Svc: svc, Scheduler: scheduler, Logger: logger}
}

// GetAvailability returns a host's availability snapshot.
func (h *AvailabilityHandler) GetAvailability(c *gin.Context) {
	hostID := c.Param("hostID")
	avail, err := h.Svc.Get(c.Request.Context(), hostID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no availability configured for host"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load availability", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, avail)
}

// SetAvailability replaces a host's availability definition.
func (h *AvailabilityHandler) SetAvailability(c *gin.Context) {
	hostID := c.Param("hostID")
	var avail models.Availability
	if err := c.ShouldBindJSON(&avail); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	avail.HostID = hostID
	if err := h.Svc.Set(c.Request.Context(), &avail); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid availability", "details": err.Error()})
		return
	}
	h.Logger.Info("availability updated", zap.String("hostID", hostID))
	c.JSON(http.StatusOK, gin.H{"hostId": hostID})
}

// DeleteAvailability removes a host's availability definition.
func (h *AvailabilityHandler) DeleteAvailability(c *gin.Context) {
	hostID := c.Param("hostID")
	if err := h.Svc.Delete(c.Request.Context(), hostID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no availability configured for host"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete availability", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": hostID})
}

// CombinedAvailability intersects the availability of two or more hosts,
// for meetings that require all of them.
func (h *AvailabilityHandler) CombinedAvailability(c *gin.Context) {
	var input struct {
		HostIDs []string `json:"hostIds" binding:"required,min=2"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	avails := make([]models.Availability, 0, len(input.HostIDs))
	for _, hostID := range input.HostIDs {
		avail, err := h.Svc.Get(c.Request.Context(), hostID)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				c.JSON(http.StatusNotFound, gin.H{"error": "no availability configured for host", "hostId": hostID})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load availability", "details": err.Error()})
			return
		}
		avails = append(avails, *avail)
	}

	combined, err := h.Scheduler.CombineAvailability(avails)
	if err != nil {
		var mismatch *scheduling.TimezoneMismatchError
		if errors.As(err, &mismatch) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "hosts use different timezones", "details": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to combine availability", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, combined)
}
