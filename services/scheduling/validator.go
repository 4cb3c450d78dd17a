package scheduling

import (
	"context"
	"fmt"
	"time"

	"slotwise/models"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Clock supplies the current instant. Injected so tests can pin it.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by the wall clock.
func SystemClock() Clock { return systemClock{} }

// ConflictSource exposes the committed bookings of one calendar backend:
// the native store or a linked vendor calendar. FindOverlapping returns
// every booking whose interval collides with [start, end].
type ConflictSource interface {
	ID() string
	FindOverlapping(ctx context.Context, start, end time.Time) ([]models.CommittedBooking, error)
}

// ConflictValidator decides whether a requested window may be booked
// against a host's availability and all linked calendar sources. It is a
// pure decision function: nothing is mutated, nothing is retried, and it
// is safe for any number of concurrent validations.
type ConflictValidator struct {
	Clock         Clock
	SourceTimeout time.Duration
	Logger        *zap.Logger
}

// NewConflictValidator builds a validator with the wall clock and the
// configured per-source lookup deadline.
func NewConflictValidator(timeout time.Duration, logger *zap.Logger) *ConflictValidator {
	return &ConflictValidator{
		Clock:         SystemClock(),
		SourceTimeout: timeout,
		Logger:        logger,
	}
}

// ValidateBooking runs the admission pipeline in strict order, stopping at
// the first failure: past check, ordering check, availability check
// (overrides dominate the weekly pattern), then conflict check across all
// sources. On acceptance the window is returned unchanged; persisting the
// resulting booking is the caller's concern.
func (v *ConflictValidator) ValidateBooking(
	ctx context.Context,
	window models.BookingWindow,
	tz string,
	avail models.Availability,
	sources []ConflictSource,
) (models.BookingWindow, error) {
	now := v.Clock.Now()
	effStart := window.EffectiveStart()
	effEnd := window.EffectiveEnd()

	if effStart.Before(now) || effEnd.Before(now) {
		return models.BookingWindow{}, &InvalidTimeRangeError{
			Reason:  ReasonPast,
			Message: "requested window is in the past",
		}
	}
	if !effEnd.After(effStart) {
		return models.BookingWindow{}, &InvalidTimeRangeError{
			Reason:  ReasonInverted,
			Message: "end does not follow start",
		}
	}

	// Pull both bounds one second inward so the range-containment and
	// conflict comparisons below are exclusive at the exact boundary
	// instant; back-to-back bookings sharing an instant must not collide.
	checkStart := effStart.Add(time.Second)
	checkEnd := effEnd.Add(-time.Second)

	if err := v.checkAvailability(tz, avail, checkStart, checkEnd); err != nil {
		return models.BookingWindow{}, err
	}
	if err := v.checkConflicts(ctx, sources, checkStart, checkEnd); err != nil {
		return models.BookingWindow{}, err
	}
	return window, nil
}

// checkAvailability applies override dominance: when any override covers
// the window's date, the weekly pattern is not consulted at all, whether
// the override is more or less permissive.
func (v *ConflictValidator) checkAvailability(tz string, avail models.Availability, start, end time.Time) error {
	override, err := FindApplicable(tz, avail.Overrides, start, end)
	if err != nil {
		return err
	}
	if override != nil {
		ok, err := IsPermitted(tz, *override, start, end)
		if err != nil {
			return err
		}
		if !ok {
			return &InvalidTimeRangeError{
				Reason:  ReasonOutsideAvailability,
				Message: fmt.Sprintf("window is outside the %s override availability", override.Date),
			}
		}
		return nil
	}

	startDay, err := EffectiveWeekday(start, tz)
	if err != nil {
		return err
	}
	endDay, err := EffectiveWeekday(end, tz)
	if err != nil {
		return err
	}
	startWeekly, ok := avail.WeeklyFor(startDay)
	if !ok {
		return &InvalidTimeRangeError{
			Reason:  ReasonOutsideAvailability,
			Message: fmt.Sprintf("no availability on %s", startDay),
		}
	}
	endWeekly, ok := avail.WeeklyFor(endDay)
	if !ok {
		return &InvalidTimeRangeError{
			Reason:  ReasonOutsideAvailability,
			Message: fmt.Sprintf("no availability on %s", endDay),
		}
	}

	loc, err := loadLocation(tz)
	if err != nil {
		return err
	}
	// Each bound's time of day is checked independently against its own
	// weekday's ranges. This is intentionally not a containment check of
	// the whole interval, unlike the override path above.
	startOK, err := Overlaps(start.In(loc), startWeekly.TimeRanges)
	if err != nil {
		return err
	}
	endOK, err := Overlaps(end.In(loc), endWeekly.TimeRanges)
	if err != nil {
		return err
	}
	if !startOK || !endOK {
		return &InvalidTimeRangeError{
			Reason:  ReasonOutsideAvailability,
			Message: "window does not fit the weekly availability pattern",
		}
	}
	return nil
}

// checkConflicts fans out to every source in parallel. Any returned
// booking rejects the window; any source failure fails the validation
// closed. The shared errgroup context cancels outstanding lookups once
// one source has answered with a conflict or an error.
func (v *ConflictValidator) checkConflicts(ctx context.Context, sources []ConflictSource, start, end time.Time) error {
	if len(sources) == 0 {
		return nil
	}
	g, gctx := errgroup.WithContext(ctx)
	for _, src := range sources {
		src := src
		g.Go(func() error {
			lookupCtx, cancel := context.WithTimeout(gctx, v.SourceTimeout)
			defer cancel()
			busy, err := src.FindOverlapping(lookupCtx, start, end)
			if err != nil {
				return &ConflictSourceUnavailableError{SourceID: src.ID(), Err: err}
			}
			if len(busy) > 0 {
				v.Logger.Debug("conflicting bookings found",
					zap.String("source", src.ID()), zap.Int("count", len(busy)))
				return &InvalidTimeRangeError{
					Reason:  ReasonConflict,
					Message: fmt.Sprintf("window collides with %d booking(s) from %s", len(busy), src.ID()),
				}
			}
			return nil
		})
	}
	return g.Wait()
}

// WindowsCollide reports whether a committed booking's interval collides
// with [start, end]: the booking contains the window, is contained by it,
// or any of its bounds (buffer or core) falls inside it. Sources whose
// backends cannot express this filter natively apply it client-side.
func WindowsCollide(b models.CommittedBooking, start, end time.Time) bool {
	if b.BufferStart != nil && within(*b.BufferStart, start, end) {
		return true
	}
	if b.BufferEnd != nil && within(*b.BufferEnd, start, end) {
		return true
	}
	if within(b.Start, start, end) || within(b.End, start, end) {
		return true
	}
	// Booking fully contains the window.
	if !b.Start.After(start) && !b.End.Before(end) {
		return true
	}
	// Window fully contains the booking.
	if !b.Start.Before(start) && !b.End.After(end) {
		return true
	}
	return false
}
