package scheduling

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

func loadLocation(tz string) (*time.Location, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", tz, err)
	}
	return loc, nil
}

// ToInstant resolves a time of day on a calendar date ("2006-01-02") in the
// named IANA timezone into an absolute instant. Building the instant from
// its local components keeps the zone's offset correct for that specific
// date, DST transitions included.
func ToInstant(date, tz, timeOfDay string) (time.Time, error) {
	loc, err := loadLocation(tz)
	if err != nil {
		return time.Time{}, err
	}
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	sec, err := clockSeconds(timeOfDay)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(d.Year(), d.Month(), d.Day(), sec/3600, (sec%3600)/60, sec%60, 0, loc), nil
}

// EffectiveWeekday returns the weekday the instant falls on in the given
// timezone. Converting before reading the weekday covers the case where
// localizing shifts the calendar date across midnight, e.g. 23:30 UTC is
// already the next day in Asia/Seoul.
func EffectiveWeekday(instant time.Time, tz string) (time.Weekday, error) {
	loc, err := loadLocation(tz)
	if err != nil {
		return 0, err
	}
	return instant.In(loc).Weekday(), nil
}
