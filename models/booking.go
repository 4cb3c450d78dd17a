package models

import "time"

// BookingWindow is a requested booking under validation. Start and End are
// the core meeting bounds; the buffer bounds, when set, extend outward from
// the core window and become the effective bounds for past, ordering and
// conflict checks. The window is immutable once validation begins.
type BookingWindow struct {
	Start       time.Time  `json:"start"`
	End         time.Time  `json:"end"`
	BufferStart *time.Time `json:"bufferStart,omitempty"`
	BufferEnd   *time.Time `json:"bufferEnd,omitempty"`
}

// EffectiveStart returns the buffer start when present, else the core start.
func (w BookingWindow) EffectiveStart() time.Time {
	if w.BufferStart != nil {
		return *w.BufferStart
	}
	return w.Start
}

// EffectiveEnd returns the buffer end when present, else the core end.
func (w BookingWindow) EffectiveEnd() time.Time {
	if w.BufferEnd != nil {
		return *w.BufferEnd
	}
	return w.End
}

// CommittedBooking is a previously accepted booking held by one calendar
// source (the native store or a linked vendor calendar). Records are
// read-only during validation; only the caller persists new ones.
type CommittedBooking struct {
	ID          string     `bson:"id" json:"id"`
	HostID      string     `bson:"hostId" json:"hostId"`
	Start       time.Time  `bson:"start" json:"start"`
	End         time.Time  `bson:"end" json:"end"`
	BufferStart *time.Time `bson:"bufferStart,omitempty" json:"bufferStart,omitempty"`
	BufferEnd   *time.Time `bson:"bufferEnd,omitempty" json:"bufferEnd,omitempty"`
	Source      string     `bson:"source,omitempty" json:"source,omitempty"`
	Timezone    string     `bson:"timezone,omitempty" json:"timezone,omitempty"`
	CreatedAt   time.Time  `bson:"createdAt" json:"createdAt"`
}

// Window returns the booking's requested window shape, used when a stored
// booking is re-validated against current availability.
func (b CommittedBooking) Window() BookingWindow {
	return BookingWindow{
		Start:       b.Start,
		End:         b.End,
		BufferStart: b.BufferStart,
		BufferEnd:   b.BufferEnd,
	}
}
