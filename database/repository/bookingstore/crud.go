// File: database/repository/bookingstore/crud.go
package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"slotwise/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func (r *mongoBookingRepo) Create(ctx context.Context, booking *models.CommittedBooking) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = time.Now()
	}
	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		return "", fmt.Errorf("failed to create booking: %w", err)
	}
	return booking.ID, nil
}

func (r *mongoBookingRepo) GetByID(ctx context.Context, id string) (*models.CommittedBooking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.CommittedBooking
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking); err != nil {
		return nil, fmt.Errorf("failed to fetch booking %s: %w", id, err)
	}
	return &booking, nil
}

func (r *mongoBookingRepo) CancelByID(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to cancel booking %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoBookingRepo) ListUpcoming(ctx context.Context, from time.Time, limit int64) ([]models.CommittedBooking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := newFindOptions(limit)
	cursor, err := r.coll.Find(ctx, bson.M{"start": bson.M{"$gte": from}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.CommittedBooking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding upcoming bookings: %w", err)
	}
	return bookings, nil
}
