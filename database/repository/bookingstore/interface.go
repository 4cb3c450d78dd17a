// File: database/repository/bookingstore/interface.go
package bookingRepo

import (
	"context"
	"time"

	"slotwise/database"
	"slotwise/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// BookingRepository is the native committed-booking store. Validation only
// reads from it; a new booking is written only after validation accepts
// the window. At-most-one-booking-per-slot is enforced here by a unique
// index, outside the validator itself.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.CommittedBooking) (string, error)
	GetByID(ctx context.Context, id string) (*models.CommittedBooking, error)
	CancelByID(ctx context.Context, id string) error
	FindOverlapping(ctx context.Context, hostID string, start, end time.Time) ([]models.CommittedBooking, error)
	ListUpcoming(ctx context.Context, from time.Time, limit int64) ([]models.CommittedBooking, error)
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a new MongoDB BookingRepository.
func NewMongoBookingRepo() BookingRepository {
	db := database.MongoClient.Database("slotwise")
	return &mongoBookingRepo{
		coll: db.Collection("bookings"),
	}
}
