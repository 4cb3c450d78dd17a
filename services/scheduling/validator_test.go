package scheduling

import (
	"context"
	"errors"
	"testing"
	"time"

	"slotwise/models"

	"go.uber.org/zap"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type stubSource struct {
	id       string
	bookings []models.CommittedBooking
	err      error
}

func (s stubSource) ID() string { return s.id }

func (s stubSource) FindOverlapping(ctx context.Context, start, end time.Time) ([]models.CommittedBooking, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []models.CommittedBooking
	for _, b := range s.bookings {
		if WindowsCollide(b, start, end) {
			out = append(out, b)
		}
	}
	return out, nil
}

func testValidator(now time.Time) *ConflictValidator {
	return &ConflictValidator{
		Clock:         fixedClock{now: now},
		SourceTimeout: time.Second,
		Logger:        zap.NewNop(),
	}
}

// Monday 09:00-17:00 every week.
func weekdayAvailability() models.Availability {
	return models.Availability{
		Timezone: "UTC",
		WeeklyTimes: []models.WeeklyAvailability{
			{Day: time.Monday, TimeRanges: ranges([2]string{"09:00", "17:00"})},
		},
	}
}

func TestValidateBooking_RejectsPastWindow(t *testing.T) {
	now := time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC)
	v := testValidator(now)

	window := models.BookingWindow{Start: now.Add(-time.Hour), End: now.Add(time.Hour)}
	_, err := v.ValidateBooking(context.Background(), window, "UTC", weekdayAvailability(), nil)

	var invalid *InvalidTimeRangeError
	if !errors.As(err, &invalid) || invalid.Reason != ReasonPast {
		t.Fatalf("expected past rejection, got %v", err)
	}
}

func TestValidateBooking_RejectsInvertedWindow(t *testing.T) {
	now := time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)
	v := testValidator(now)

	start := time.Date(2024, 3, 4, 11, 0, 0, 0, time.UTC)
	window := models.BookingWindow{Start: start, End: start}
	_, err := v.ValidateBooking(context.Background(), window, "UTC", weekdayAvailability(), nil)

	var invalid *InvalidTimeRangeError
	if !errors.As(err, &invalid) || invalid.Reason != ReasonInverted {
		t.Fatalf("expected inverted rejection, got %v", err)
	}
}

func TestValidateBooking_AcceptsInsideWeeklyPattern(t *testing.T) {
	now := time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC) // a Monday
	v := testValidator(now)

	window := models.BookingWindow{
		Start: time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 3, 4, 11, 0, 0, 0, time.UTC),
	}
	got, err := v.ValidateBooking(context.Background(), window, "UTC", weekdayAvailability(), nil)
	if err != nil {
		t.Fatalf("expected acceptance, got %v", err)
	}
	if !got.Start.Equal(window.Start) || !got.End.Equal(window.End) {
		t.Fatalf("validator must return the window unchanged, got %+v", got)
	}
}

func TestValidateBooking_RejectsOutsideWeeklyPattern(t *testing.T) {
	now := time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)
	v := testValidator(now)

	window := models.BookingWindow{
		Start: time.Date(2024, 3, 4, 18, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 3, 4, 19, 0, 0, 0, time.UTC),
	}
	_, err := v.ValidateBooking(context.Background(), window, "UTC", weekdayAvailability(), nil)

	var invalid *InvalidTimeRangeError
	if !errors.As(err, &invalid) || invalid.Reason != ReasonOutsideAvailability {
		t.Fatalf("expected outside-availability rejection, got %v", err)
	}
}

func TestValidateBooking_RejectsMissingWeekday(t *testing.T) {
	now := time.Date(2024, 3, 5, 8, 0, 0, 0, time.UTC) // a Tuesday
	v := testValidator(now)

	window := models.BookingWindow{
		Start: time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 3, 5, 11, 0, 0, 0, time.UTC),
	}
	_, err := v.ValidateBooking(context.Background(), window, "UTC", weekdayAvailability(), nil)

	var invalid *InvalidTimeRangeError
	if !errors.As(err, &invalid) || invalid.Reason != ReasonOutsideAvailability {
		t.Fatalf("expected rejection for weekday without availability, got %v", err)
	}
}

func TestValidateBooking_OverrideDominatesWeeklyPattern(t *testing.T) {
	now := time.Date(2024, 3, 25, 8, 0, 0, 0, time.UTC)
	v := testValidator(now)

	// 2024-03-29 is a Friday; the weekly pattern would allow it, but the
	// date is explicitly blocked.
	avail := models.Availability{
		Timezone: "UTC",
		WeeklyTimes: []models.WeeklyAvailability{
			{Day: time.Friday, TimeRanges: ranges([2]string{"09:00", "17:00"})},
		},
		Overrides: []models.DateOverride{
			{Date: "2024-03-29", Unavailable: true},
		},
	}
	window := models.BookingWindow{
		Start: time.Date(2024, 3, 29, 10, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 3, 29, 11, 0, 0, 0, time.UTC),
	}
	_, err := v.ValidateBooking(context.Background(), window, "UTC", avail, nil)

	var invalid *InvalidTimeRangeError
	if !errors.As(err, &invalid) || invalid.Reason != ReasonOutsideAvailability {
		t.Fatalf("expected the override to block the date, got %v", err)
	}
}

func TestValidateBooking_PermissiveOverrideWins(t *testing.T) {
	now := time.Date(2024, 3, 25, 8, 0, 0, 0, time.UTC)
	v := testValidator(now)

	// No weekly pattern at all; the override alone admits the window.
	avail := models.Availability{
		Timezone: "UTC",
		Overrides: []models.DateOverride{
			{Date: "2024-03-29", TimeRanges: ranges([2]string{"10:00", "12:00"})},
		},
	}
	window := models.BookingWindow{
		Start: time.Date(2024, 3, 29, 10, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 3, 29, 11, 0, 0, 0, time.UTC),
	}
	if _, err := v.ValidateBooking(context.Background(), window, "UTC", avail, nil); err != nil {
		t.Fatalf("expected the override to admit the window, got %v", err)
	}
}

func TestValidateBooking_BufferBoundsAreEffective(t *testing.T) {
	now := time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)
	v := testValidator(now)

	// Core window sits inside the pattern, but the leading buffer
	// reaches back before 09:00.
	bufferStart := time.Date(2024, 3, 4, 8, 30, 0, 0, time.UTC)
	window := models.BookingWindow{
		Start:       time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC),
		End:         time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC),
		BufferStart: &bufferStart,
	}
	_, err := v.ValidateBooking(context.Background(), window, "UTC", weekdayAvailability(), nil)

	var invalid *InvalidTimeRangeError
	if !errors.As(err, &invalid) || invalid.Reason != ReasonOutsideAvailability {
		t.Fatalf("expected buffer-extended bounds to be checked, got %v", err)
	}
}

func TestValidateBooking_ConflictFromAnySource(t *testing.T) {
	now := time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)
	v := testValidator(now)

	window := models.BookingWindow{
		Start: time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC),
	}
	native := stubSource{id: "native"}
	vendor := stubSource{id: "google", bookings: []models.CommittedBooking{
		{
			ID:    "busy-1",
			Start: time.Date(2024, 3, 4, 10, 30, 0, 0, time.UTC),
			End:   time.Date(2024, 3, 4, 11, 0, 0, 0, time.UTC),
		},
	}}

	_, err := v.ValidateBooking(context.Background(), window, "UTC", weekdayAvailability(), []ConflictSource{native, vendor})

	var invalid *InvalidTimeRangeError
	if !errors.As(err, &invalid) || invalid.Reason != ReasonConflict {
		t.Fatalf("expected conflict rejection, got %v", err)
	}
}

func TestValidateBooking_BackToBackBookingsDoNotConflict(t *testing.T) {
	now := time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)
	v := testValidator(now)

	window := models.BookingWindow{
		Start: time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 3, 4, 11, 0, 0, 0, time.UTC),
	}
	// An existing booking ending exactly when the new one starts.
	src := stubSource{id: "native", bookings: []models.CommittedBooking{
		{
			ID:    "prior",
			Start: time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC),
			End:   time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC),
		},
	}}
	if _, err := v.ValidateBooking(context.Background(), window, "UTC", weekdayAvailability(), []ConflictSource{src}); err != nil {
		t.Fatalf("back-to-back bookings must not conflict, got %v", err)
	}
}

func TestValidateBooking_FailsClosedOnSourceError(t *testing.T) {
	now := time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)
	v := testValidator(now)

	window := models.BookingWindow{
		Start: time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 3, 4, 11, 0, 0, 0, time.UTC),
	}
	broken := stubSource{id: "google", err: errors.New("upstream timeout")}

	_, err := v.ValidateBooking(context.Background(), window, "UTC", weekdayAvailability(), []ConflictSource{broken})

	var unavailable *ConflictSourceUnavailableError
	if !errors.As(err, &unavailable) || unavailable.SourceID != "google" {
		t.Fatalf("expected fail-closed source error, got %v", err)
	}
}

func TestWindowsCollide_Relations(t *testing.T) {
	at := func(h, m int) time.Time { return time.Date(2024, 3, 4, h, m, 0, 0, time.UTC) }
	start, end := at(10, 0), at(12, 0)

	booking := func(s, e time.Time) models.CommittedBooking {
		return models.CommittedBooking{Start: s, End: e}
	}

	if !WindowsCollide(booking(at(9, 0), at(13, 0)), start, end) {
		t.Fatal("booking containing the window must collide")
	}
	if !WindowsCollide(booking(at(10, 30), at(11, 0)), start, end) {
		t.Fatal("booking contained by the window must collide")
	}
	if !WindowsCollide(booking(at(11, 0), at(13, 0)), start, end) {
		t.Fatal("booking starting inside the window must collide")
	}
	if !WindowsCollide(booking(at(9, 0), at(10, 30)), start, end) {
		t.Fatal("booking ending inside the window must collide")
	}
	if WindowsCollide(booking(at(8, 0), at(9, 30)), start, end) {
		t.Fatal("disjoint booking must not collide")
	}

	bufferEnd := at(10, 30)
	withBuffer := models.CommittedBooking{Start: at(8, 0), End: at(9, 30), BufferEnd: &bufferEnd}
	if !WindowsCollide(withBuffer, start, end) {
		t.Fatal("buffer bound inside the window must collide")
	}
}
