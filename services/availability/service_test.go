package availability

import (
	"context"
	"testing"
	"time"

	"slotwise/models"

	"go.uber.org/zap"
)

type stubRepo struct {
	stored *models.Availability
}

func (r *stubRepo) GetByHostID(ctx context.Context, hostID string) (*models.Availability, error) {
	return r.stored, nil
}

func (r *stubRepo) Upsert(ctx context.Context, avail *models.Availability) error {
	r.stored = avail
	return nil
}

func (r *stubRepo) DeleteByHostID(ctx context.Context, hostID string) error {
	r.stored = nil
	return nil
}

func validRecord() *models.Availability {
	return &models.Availability{
		HostID:   "host-1",
		Timezone: "America/New_York",
		WeeklyTimes: []models.WeeklyAvailability{
			{Day: time.Monday, TimeRanges: []models.TimeRange{{StartTime: "09:00", EndTime: "17:00"}}},
		},
	}
}

func TestSetRejectsInvalidTimezone(t *testing.T) {
	svc := &DefaultAvailabilityService{Repo: &stubRepo{}, Logger: zap.NewNop()}
	avail := validRecord()
	avail.Timezone = "Mars/Olympus_Mons"
	if err := svc.Set(context.Background(), avail); err == nil {
		t.Fatal("expected error for unknown timezone")
	}
}

func TestSetRejectsDuplicateWeekday(t *testing.T) {
	svc := &DefaultAvailabilityService{Repo: &stubRepo{}, Logger: zap.NewNop()}
	avail := validRecord()
	avail.WeeklyTimes = append(avail.WeeklyTimes, models.WeeklyAvailability{
		Day:        time.Monday,
		TimeRanges: []models.TimeRange{{StartTime: "18:00", EndTime: "19:00"}},
	})
	if err := svc.Set(context.Background(), avail); err == nil {
		t.Fatal("expected error for duplicate weekday entry")
	}
}

func TestSetRejectsOverlappingRanges(t *testing.T) {
	svc := &DefaultAvailabilityService{Repo: &stubRepo{}, Logger: zap.NewNop()}
	avail := validRecord()
	avail.WeeklyTimes[0].TimeRanges = []models.TimeRange{
		{StartTime: "09:00", EndTime: "12:00"},
		{StartTime: "11:00", EndTime: "17:00"},
	}
	if err := svc.Set(context.Background(), avail); err == nil {
		t.Fatal("expected error for overlapping ranges")
	}
}

func TestSetRejectsBadOverrideDate(t *testing.T) {
	svc := &DefaultAvailabilityService{Repo: &stubRepo{}, Logger: zap.NewNop()}
	avail := validRecord()
	avail.Overrides = []models.DateOverride{{Date: "03/15/2024"}}
	if err := svc.Set(context.Background(), avail); err == nil {
		t.Fatal("expected error for non ISO override date")
	}
}

func TestSetNormalizesOverrideSentinel(t *testing.T) {
	repo := &stubRepo{}
	svc := &DefaultAvailabilityService{Repo: repo, Logger: zap.NewNop()}
	avail := validRecord()
	// Legacy form: empty ranges meaning "closed that day".
	avail.Overrides = []models.DateOverride{{Date: "2024-03-15"}}
	if err := svc.Set(context.Background(), avail); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !repo.stored.Overrides[0].Unavailable {
		t.Fatal("expected empty-range override to be normalized to unavailable")
	}
}

func TestGetWithoutCacheReadsRepo(t *testing.T) {
	repo := &stubRepo{stored: validRecord()}
	svc := &DefaultAvailabilityService{Repo: repo, Logger: zap.NewNop()}
	got, err := svc.Get(context.Background(), "host-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.HostID != "host-1" || got.Timezone != "America/New_York" {
		t.Fatalf("unexpected record: %+v", got)
	}
}
