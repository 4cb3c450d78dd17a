package availability

import (
	"context"
	"time"

	availabilityRepo "slotwise/database/repository/availabilitystore"
	"slotwise/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// AvailabilityService manages host availability snapshots. Reads go
// through a redis cache; every write invalidates it so the validator
// always sees a fresh snapshot on the next read.
type AvailabilityService interface {
	Get(ctx context.Context, hostID string) (*models.Availability, error)
	Set(ctx context.Context, avail *models.Availability) error
	Delete(ctx context.Context, hostID string) error
}

// DefaultAvailabilityService implements AvailabilityService.
type DefaultAvailabilityService struct {
	Repo     availabilityRepo.AvailabilityRepository
	Cache    *redis.Client
	CacheTTL time.Duration
	Logger   *zap.Logger
}
