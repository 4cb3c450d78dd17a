package handlers

import (
	"errors"
	"net/http"
	"time"

	bookingRepo "slotwise/database/repository/bookingstore"
	"slotwise/models"
	"slotwise/services/availability"
	"slotwise/services/scheduling"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// SourcesFor assembles the conflict sources linked to a host: the native
// store plus every vendor calendar.
type SourcesFor func(hostID string) []scheduling.ConflictSource

// BookingHandler serves booking validation and commit endpoints.
type BookingHandler struct {
	Scheduler       scheduling.SchedulingService
	AvailabilitySvc availability.AvailabilityService
	BookingRepo     bookingRepo.BookingRepository
	Sources         SourcesFor
	Logger          *zap.Logger
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(
	scheduler scheduling.SchedulingService,
	availabilitySvc availability.AvailabilityService,
	repo bookingRepo.BookingRepository,
	sources SourcesFor,
	logger *zap.Logger,
) *BookingHandler {
	return &BookingHandler{
		Scheduler:       scheduler,
		AvailabilitySvc: availabilitySvc,
		BookingRepo:     repo,
		Sources:         sources,
		Logger:          logger,
	}
}

type bookingRequest struct {
	HostID      string     `json:"hostId" binding:"required"`
	Start       time.Time  `json:"start" binding:"required"`
	End         time.Time  `json:"end" binding:"required"`
	BufferStart *time.Time `json:"bufferStart,omitempty"`
	BufferEnd   *time.Time `json:"bufferEnd,omitempty"`
}

func (r bookingRequest) window() models.BookingWindow {
	return models.BookingWindow{
		Start:       r.Start,
		End:         r.End,
		BufferStart: r.BufferStart,
		BufferEnd:   r.BufferEnd,
	}
}

// validate runs the admission pipeline for a request and writes the error
// response on failure. Returns the accepted window and true on success.
func (h *BookingHandler) validate(c *gin.Context, req bookingRequest) (models.BookingWindow, string, bool) {
	avail, err := h.AvailabilitySvc.Get(c.Request.Context(), req.HostID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no availability configured for host"})
			return models.BookingWindow{}, "", false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load availability", "details": err.Error()})
		return models.BookingWindow{}, "", false
	}

	window, err := h.Scheduler.ValidateBooking(
		c.Request.Context(), req.window(), avail.Timezone, *avail, h.Sources(req.HostID))
	if err != nil {
		h.writeValidationError(c, req.HostID, err)
		return models.BookingWindow{}, "", false
	}
	return window, avail.Timezone, true
}

func (h *BookingHandler) writeValidationError(c *gin.Context, hostID string, err error) {
	var invalid *scheduling.InvalidTimeRangeError
	if errors.As(err, &invalid) {
		h.Logger.Info("booking rejected",
			zap.String("hostID", hostID), zap.String("reason", invalid.Reason))
		c.JSON(http.StatusConflict, gin.H{
			"error":  "this slot is no longer available",
			"reason": invalid.Reason,
		})
		return
	}
	var unavailable *scheduling.ConflictSourceUnavailableError
	if errors.As(err, &unavailable) {
		h.Logger.Error("conflict source unavailable",
			zap.String("hostID", hostID), zap.String("source", unavailable.SourceID), zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":  "calendar source unavailable, booking not admitted",
			"source": unavailable.SourceID,
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "validation failed", "details": err.Error()})
}

// ValidateBooking is the dry-run endpoint: it answers whether the window
// would be admitted without committing anything.
func (h *BookingHandler) ValidateBooking(c *gin.Context) {
	var req bookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	window, _, ok := h.validate(c, req)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": true, "window": window})
}

// CreateBooking validates the window and, on acceptance, commits it to the
// native store. The unique slot index closes the race between concurrent
// commits for the same window.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req bookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	window, tz, ok := h.validate(c, req)
	if !ok {
		return
	}

	booking := &models.CommittedBooking{
		HostID:      req.HostID,
		Start:       window.Start,
		End:         window.End,
		BufferStart: window.BufferStart,
		BufferEnd:   window.BufferEnd,
		Source:      "native",
		Timezone:    tz,
	}
	id, err := h.BookingRepo.Create(c.Request.Context(), booking)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "this slot is no longer available", "reason": scheduling.ReasonConflict})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to persist booking", "details": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"bookingId": id, "window": window})
}

// CancelBooking removes a committed booking.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	id := c.Param("bookingID")
	if err := h.BookingRepo.CancelByID(c.Request.Context(), id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to cancel booking", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cancelled": id})
}
