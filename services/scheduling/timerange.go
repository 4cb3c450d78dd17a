package scheduling

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"slotwise/models"
)

// clockSeconds decomposes an "HH:MM" or "HH:MM:SS" string into seconds
// from midnight. Times are always compared numerically; comparing the raw
// strings would misorder anything past single-digit hours.
func clockSeconds(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	sec := 0
	if len(parts) == 3 {
		sec, err = strconv.Atoi(parts[2])
		if err != nil || sec < 0 || sec > 59 {
			return 0, fmt.Errorf("invalid second in %q", s)
		}
	}
	return h*3600 + m*60 + sec, nil
}

// formatClock renders seconds-from-midnight back to "HH:MM", keeping a
// seconds component only when one is present.
func formatClock(sec int) string {
	h := sec / 3600
	m := (sec % 3600) / 60
	s := sec % 60
	if s != 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", h, m)
}

// Intersect computes the geometric intersection of two sorted,
// non-overlapping same-day range collections with a two-pointer sweep.
// The overlap of the current pair is [max(startA,startB), min(endA,endB)];
// it is emitted only when strictly non-empty, so ranges that merely touch
// produce nothing. Runs in O(|a|+|b|).
func Intersect(a, b []models.TimeRange) ([]models.TimeRange, error) {
	var out []models.TimeRange
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		as, err := clockSeconds(a[i].StartTime)
		if err != nil {
			return nil, err
		}
		ae, err := clockSeconds(a[i].EndTime)
		if err != nil {
			return nil, err
		}
		bs, err := clockSeconds(b[j].StartTime)
		if err != nil {
			return nil, err
		}
		be, err := clockSeconds(b[j].EndTime)
		if err != nil {
			return nil, err
		}

		start := as
		if bs > start {
			start = bs
		}
		end := ae
		if be < end {
			end = be
		}
		if start < end {
			out = append(out, models.TimeRange{
				StartTime: formatClock(start),
				EndTime:   formatClock(end),
			})
		}

		// Advance whichever range ends first; on a tie, advance a.
		if ae <= be {
			i++
		} else {
			j++
		}
	}
	return out, nil
}

// ValidateRanges checks the collection invariant: every range is
// well-formed with start strictly before end, and ranges are sorted
// ascending without overlap.
func ValidateRanges(ranges []models.TimeRange) error {
	prevEnd := -1
	for _, r := range ranges {
		start, err := clockSeconds(r.StartTime)
		if err != nil {
			return err
		}
		end, err := clockSeconds(r.EndTime)
		if err != nil {
			return err
		}
		if start >= end {
			return fmt.Errorf("range %s-%s is empty or inverted", r.StartTime, r.EndTime)
		}
		if start < prevEnd {
			return fmt.Errorf("range %s-%s overlaps or precedes its predecessor", r.StartTime, r.EndTime)
		}
		prevEnd = end
	}
	return nil
}

// Overlaps reports whether the instant's local time of day falls within
// any of the ranges, inclusive at both bounds. The caller localizes the
// instant to the ranges' reference day before calling.
func Overlaps(point time.Time, ranges []models.TimeRange) (bool, error) {
	p := point.Hour()*3600 + point.Minute()*60 + point.Second()
	for _, r := range ranges {
		start, err := clockSeconds(r.StartTime)
		if err != nil {
			return false, err
		}
		end, err := clockSeconds(r.EndTime)
		if err != nil {
			return false, err
		}
		if p >= start && p <= end {
			return true, nil
		}
	}
	return false, nil
}
