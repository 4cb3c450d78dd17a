package scheduling

import (
	"context"
	"errors"

	"slotwise/models"
)

// SchedulingService is the admission surface consumed by the HTTP layer
// and the revalidation worker.
type SchedulingService interface {
	ValidateBooking(ctx context.Context, window models.BookingWindow, tz string, avail models.Availability, sources []ConflictSource) (models.BookingWindow, error)
	CombineAvailability(avails []models.Availability) (models.Availability, error)
}

// DefaultSchedulingService implements SchedulingService on top of the
// conflict validator and the pairwise availability intersector.
type DefaultSchedulingService struct {
	Validator *ConflictValidator
}

func (s *DefaultSchedulingService) ValidateBooking(
	ctx context.Context,
	window models.BookingWindow,
	tz string,
	avail models.Availability,
	sources []ConflictSource,
) (models.BookingWindow, error) {
	return s.Validator.ValidateBooking(ctx, window, tz, avail, sources)
}

// CombineAvailability folds two or more hosts' records into their common
// availability. All records must share a timezone.
func (s *DefaultSchedulingService) CombineAvailability(avails []models.Availability) (models.Availability, error) {
	if len(avails) == 0 {
		return models.Availability{}, errors.New("no availability records to combine")
	}
	combined := avails[0]
	for _, next := range avails[1:] {
		var err error
		combined, err = IntersectAvailability(combined, next)
		if err != nil {
			return models.Availability{}, err
		}
	}
	return combined, nil
}
