package availability

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"slotwise/models"
	"slotwise/services/scheduling"

	"go.uber.org/zap"
)

func cacheKey(hostID string) string {
	return "availability:" + hostID
}

func (s *DefaultAvailabilityService) Get(ctx context.Context, hostID string) (*models.Availability, error) {
	if s.Cache != nil {
		cached, err := s.Cache.Get(ctx, cacheKey(hostID)).Result()
		if err == nil {
			var avail models.Availability
			if err := json.Unmarshal([]byte(cached), &avail); err == nil {
				return &avail, nil
			}
			s.Logger.Warn("discarding corrupt cached availability", zap.String("hostID", hostID))
		}
	}

	avail, err := s.Repo.GetByHostID(ctx, hostID)
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		data, err := json.Marshal(avail)
		if err == nil {
			if err := s.Cache.Set(ctx, cacheKey(hostID), data, s.CacheTTL).Err(); err != nil {
				s.Logger.Warn("failed to cache availability", zap.String("hostID", hostID), zap.Error(err))
			}
		}
	}
	return avail, nil
}

func (s *DefaultAvailabilityService) Set(ctx context.Context, avail *models.Availability) error {
	if err := validateAvailability(avail); err != nil {
		return err
	}
	for i, o := range avail.Overrides {
		avail.Overrides[i] = o.Normalize()
	}
	if err := s.Repo.Upsert(ctx, avail); err != nil {
		return err
	}
	s.invalidate(ctx, avail.HostID)
	return nil
}

func (s *DefaultAvailabilityService) Delete(ctx context.Context, hostID string) error {
	if err := s.Repo.DeleteByHostID(ctx, hostID); err != nil {
		return err
	}
	s.invalidate(ctx, hostID)
	return nil
}

func (s *DefaultAvailabilityService) invalidate(ctx context.Context, hostID string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(ctx, cacheKey(hostID)).Err(); err != nil {
		s.Logger.Warn("failed to invalidate availability cache", zap.String("hostID", hostID), zap.Error(err))
	}
}

func validateAvailability(avail *models.Availability) error {
	if avail.HostID == "" {
		return fmt.Errorf("availability requires a host id")
	}
	if _, err := time.LoadLocation(avail.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", avail.Timezone, err)
	}
	seen := make(map[time.Weekday]bool)
	for _, w := range avail.WeeklyTimes {
		if w.Day < time.Sunday || w.Day > time.Saturday {
			return fmt.Errorf("invalid weekday %d", w.Day)
		}
		if seen[w.Day] {
			return fmt.Errorf("duplicate weekday entry for %s", w.Day)
		}
		seen[w.Day] = true
		if err := scheduling.ValidateRanges(w.TimeRanges); err != nil {
			return fmt.Errorf("weekly ranges for %s: %w", w.Day, err)
		}
	}
	for _, o := range avail.Overrides {
		if _, err := time.Parse("2006-01-02", o.Date); err != nil {
			return fmt.Errorf("invalid override date %q: %w", o.Date, err)
		}
		if err := scheduling.ValidateRanges(o.TimeRanges); err != nil {
			return fmt.Errorf("override ranges for %s: %w", o.Date, err)
		}
	}
	return nil
}
