package calendar

import (
	"context"
	"time"

	bookingRepo "slotwise/database/repository/bookingstore"
	"slotwise/models"
)

// NativeSource exposes the host's own committed bookings as a conflict
// source, backed by the mongo booking store.
type NativeSource struct {
	HostID string
	Repo   bookingRepo.BookingRepository
}

func (s *NativeSource) ID() string { return "native" }

func (s *NativeSource) FindOverlapping(ctx context.Context, start, end time.Time) ([]models.CommittedBooking, error) {
	return s.Repo.FindOverlapping(ctx, s.HostID, start, end)
}
