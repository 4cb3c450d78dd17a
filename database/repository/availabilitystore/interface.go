// File: database/repository/availabilitystore/interface.go
package availabilityRepo

import (
	"context"

	"slotwise/database"
	"slotwise/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// AvailabilityRepository stores one availability record per host. The
// validator always consumes a fresh read-only snapshot; writes happen only
// through the availability service.
type AvailabilityRepository interface {
	GetByHostID(ctx context.Context, hostID string) (*models.Availability, error)
	Upsert(ctx context.Context, avail *models.Availability) error
	DeleteByHostID(ctx context.Context, hostID string) error
}

type mongoAvailabilityRepo struct {
	coll *mongo.Collection
}

// NewMongoAvailabilityRepo constructs a new MongoDB AvailabilityRepository.
func NewMongoAvailabilityRepo() AvailabilityRepository {
	db := database.MongoClient.Database("slotwise")
	return &mongoAvailabilityRepo{
		coll: db.Collection("availabilities"),
	}
}
