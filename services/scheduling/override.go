package scheduling

import (
	"time"

	"slotwise/models"
)

// FindApplicable scans the overrides for one whose calendar date, localized
// in tz, contains either bound of the requested window. An override is
// applicable when the start or the end instant falls within the date's
// local [00:00, 23:59]. Returns nil when no override applies.
func FindApplicable(tz string, overrides []models.DateOverride, start, end time.Time) (*models.DateOverride, error) {
	for _, o := range overrides {
		dayStart, err := ToInstant(o.Date, tz, "00:00")
		if err != nil {
			return nil, err
		}
		dayEnd, err := ToInstant(o.Date, tz, "23:59")
		if err != nil {
			return nil, err
		}
		if within(start, dayStart, dayEnd) || within(end, dayStart, dayEnd) {
			match := o.Normalize()
			return &match, nil
		}
	}
	return nil, nil
}

// IsPermitted decides whether the requested window is allowed under the
// override. An unavailable override rejects everything. Otherwise the
// entire window, both bounds, must sit inside a single one of the
// override's ranges; partial overlap is a rejection.
func IsPermitted(tz string, override models.DateOverride, start, end time.Time) (bool, error) {
	override = override.Normalize()
	if override.Unavailable {
		return false, nil
	}
	for _, r := range override.TimeRanges {
		rangeStart, err := ToInstant(override.Date, tz, r.StartTime)
		if err != nil {
			return false, err
		}
		rangeEnd, err := ToInstant(override.Date, tz, r.EndTime)
		if err != nil {
			return false, err
		}
		if within(start, rangeStart, rangeEnd) && within(end, rangeStart, rangeEnd) {
			return true, nil
		}
	}
	return false, nil
}

// within reports a <= t <= b.
func within(t, a, b time.Time) bool {
	return !t.Before(a) && !t.After(b)
}
