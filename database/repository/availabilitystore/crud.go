// File: database/repository/availabilitystore/crud.go
package availabilityRepo

import (
	"context"
	"fmt"
	"time"

	"slotwise/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoAvailabilityRepo) GetByHostID(ctx context.Context, hostID string) (*models.Availability, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var avail models.Availability
	if err := r.coll.FindOne(ctx, bson.M{"hostId": hostID}).Decode(&avail); err != nil {
		return nil, fmt.Errorf("failed to fetch availability for host %s: %w", hostID, err)
	}
	// Fold legacy empty-ranges overrides into the explicit flag once,
	// at the storage boundary.
	for i, o := range avail.Overrides {
		avail.Overrides[i] = o.Normalize()
	}
	return &avail, nil
}

func (r *mongoAvailabilityRepo) Upsert(ctx context.Context, avail *models.Availability) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"hostId": avail.HostID}
	update := bson.M{"$set": avail}
	opts := options.Update().SetUpsert(true)
	if _, err := r.coll.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to upsert availability for host %s: %w", avail.HostID, err)
	}
	return nil
}

func (r *mongoAvailabilityRepo) DeleteByHostID(ctx context.Context, hostID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"hostId": hostID})
	if err != nil {
		return fmt.Errorf("failed to delete availability for host %s: %w", hostID, err)
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
