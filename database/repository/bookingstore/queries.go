// File: database/repository/bookingstore/queries.go
package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"slotwise/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FindOverlapping returns every committed booking of the host whose
// interval collides with [start, end]: the booking contains the window,
// is contained by it, or any of its bounds (buffer or core) falls inside
// it.
func (r *mongoBookingRepo) FindOverlapping(ctx context.Context, hostID string, start, end time.Time) ([]models.CommittedBooking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	within := func(field string) bson.M {
		return bson.M{field: bson.M{"$gte": start, "$lte": end}}
	}
	filter := bson.M{
		"hostId": hostID,
		"$or": bson.A{
			within("bufferStart"),
			within("bufferEnd"),
			within("start"),
			within("end"),
			// Booking fully contains the window.
			bson.M{"start": bson.M{"$lte": start}, "end": bson.M{"$gte": end}},
			// Window fully contains the booking.
			bson.M{"start": bson.M{"$gte": start}, "end": bson.M{"$lte": end}},
		},
	}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query overlapping bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.CommittedBooking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding overlapping bookings: %w", err)
	}
	return bookings, nil
}

func newFindOptions(limit int64) *options.FindOptions {
	opts := options.Find().SetSort(bson.D{{Key: "start", Value: 1}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}
	return opts
}
