package scheduling

import (
	"sort"

	"slotwise/models"
)

// IntersectAvailability combines two hosts' availability into the windows
// common to both, for meetings that require every host present. Both
// records must share a timezone; combining across timezones is
// unsupported.
//
// Weekly patterns are intersected per weekday present on both sides;
// a weekday missing from either side is dropped. Overrides are combined
// only when both sides define bookable windows for the same calendar
// date — one-sided overrides and unavailable markers do not participate
// here. Whether a one-sided override should dominate the combined weekly
// pattern is a product decision; per-host override dominance still applies
// when each host's own record is validated.
func IntersectAvailability(a, b models.Availability) (models.Availability, error) {
	if a.Timezone != b.Timezone {
		return models.Availability{}, &TimezoneMismatchError{A: a.Timezone, B: b.Timezone}
	}

	out := models.Availability{Timezone: a.Timezone}

	for _, wa := range a.WeeklyTimes {
		wb, ok := b.WeeklyFor(wa.Day)
		if !ok {
			continue
		}
		ranges, err := Intersect(wa.TimeRanges, wb.TimeRanges)
		if err != nil {
			return models.Availability{}, err
		}
		if len(ranges) == 0 {
			continue
		}
		out.WeeklyTimes = append(out.WeeklyTimes, models.WeeklyAvailability{
			Day:        wa.Day,
			TimeRanges: ranges,
		})
	}

	for _, oa := range a.Overrides {
		oa = oa.Normalize()
		if oa.Unavailable {
			continue
		}
		ob, ok := overrideFor(b.Overrides, oa.Date)
		if !ok {
			continue
		}
		ob = ob.Normalize()
		if ob.Unavailable {
			continue
		}
		ranges, err := Intersect(oa.TimeRanges, ob.TimeRanges)
		if err != nil {
			return models.Availability{}, err
		}
		if len(ranges) == 0 {
			continue
		}
		out.Overrides = append(out.Overrides, models.DateOverride{
			Date:       oa.Date,
			TimeRanges: ranges,
		})
	}

	// Canonical ordering keeps the operation commutative.
	sort.Slice(out.WeeklyTimes, func(i, j int) bool {
		return out.WeeklyTimes[i].Day < out.WeeklyTimes[j].Day
	})
	sort.Slice(out.Overrides, func(i, j int) bool {
		return out.Overrides[i].Date < out.Overrides[j].Date
	})

	return out, nil
}

func overrideFor(overrides []models.DateOverride, date string) (models.DateOverride, bool) {
	for _, o := range overrides {
		if o.Date == date {
			return o, true
		}
	}
	return models.DateOverride{}, false
}
