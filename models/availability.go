package models

import "time"

// TimeRange is a single bookable window within one day. Bounds are 24h
// clock strings ("HH:MM" or "HH:MM:SS") with no date attached. Within any
// one collection, ranges are non-overlapping and sorted ascending by
// StartTime.
type TimeRange struct {
	StartTime string `bson:"startTime" json:"startTime"`
	EndTime   string `bson:"endTime" json:"endTime"`
}

// WeeklyAvailability lists the bookable windows for one weekday
// (Sunday = 0). A host has at most one entry per weekday; a missing
// weekday, or an entry with no ranges, means the host is unavailable
// that day.
type WeeklyAvailability struct {
	Day        time.Weekday `bson:"day" json:"day"`
	TimeRanges []TimeRange  `bson:"timeRanges" json:"timeRanges"`
}

// DateOverride replaces the weekly pattern for one calendar date.
// Date carries date-only semantics ("2006-01-02") and is interpreted in
// the owning Availability's timezone. Unavailable blocks the whole date;
// otherwise TimeRanges are the only bookable windows on that date.
type DateOverride struct {
	Date        string      `bson:"date" json:"date"`
	Unavailable bool        `bson:"unavailable,omitempty" json:"unavailable,omitempty"`
	TimeRanges  []TimeRange `bson:"timeRanges,omitempty" json:"timeRanges,omitempty"`
}

// Normalize folds the legacy empty-ranges encoding into the explicit
// Unavailable flag so downstream code never has to treat a zero-length
// slice as a sentinel.
func (o DateOverride) Normalize() DateOverride {
	if len(o.TimeRanges) == 0 {
		o.Unavailable = true
		o.TimeRanges = nil
	}
	return o
}

// Availability is one host's complete bookable definition: a weekly
// recurring pattern plus date-specific overrides. Every date and time
// value inside is interpreted in Timezone (an IANA name such as
// "Asia/Seoul").
type Availability struct {
	HostID      string               `bson:"hostId" json:"hostId"`
	Timezone    string               `bson:"timezone" json:"timezone"`
	WeeklyTimes []WeeklyAvailability `bson:"weeklyTimes" json:"weeklyTimes"`
	Overrides   []DateOverride       `bson:"overrides,omitempty" json:"overrides,omitempty"`
}

// WeeklyFor returns the weekly entry for the given day, if the host has one.
func (a Availability) WeeklyFor(day time.Weekday) (WeeklyAvailability, bool) {
	for _, w := range a.WeeklyTimes {
		if w.Day == day {
			return w, true
		}
	}
	return WeeklyAvailability{}, false
}
