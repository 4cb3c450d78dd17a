package scheduling

import (
	"testing"

	"slotwise/models"
)

func TestFindApplicable_MatchesByLocalDate(t *testing.T) {
	overrides := []models.DateOverride{
		{Date: "2024-03-29", TimeRanges: ranges([2]string{"10:00", "12:00"})},
	}
	start, _ := ToInstant("2024-03-29", "Asia/Seoul", "10:00")
	end, _ := ToInstant("2024-03-29", "Asia/Seoul", "11:00")

	got, err := FindApplicable("Asia/Seoul", overrides, start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || got.Date != "2024-03-29" {
		t.Fatalf("expected the 2024-03-29 override, got %v", got)
	}
}

func TestFindApplicable_NoMatchOnOtherDates(t *testing.T) {
	overrides := []models.DateOverride{
		{Date: "2024-03-29", TimeRanges: ranges([2]string{"10:00", "12:00"})},
	}
	start, _ := ToInstant("2024-04-02", "UTC", "10:00")
	end, _ := ToInstant("2024-04-02", "UTC", "11:00")

	got, err := FindApplicable("UTC", overrides, start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected no applicable override, got %v", got)
	}
}

func TestFindApplicable_EndBoundInsideDateIsEnough(t *testing.T) {
	overrides := []models.DateOverride{
		{Date: "2024-03-30", TimeRanges: ranges([2]string{"00:00", "02:00"})},
	}
	// Starts the evening before, ends inside the override date.
	start, _ := ToInstant("2024-03-29", "UTC", "23:00")
	end, _ := ToInstant("2024-03-30", "UTC", "00:30")

	got, err := FindApplicable("UTC", overrides, start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil {
		t.Fatal("expected the 2024-03-30 override to apply")
	}
}

func TestIsPermitted_UnavailableSentinelAlwaysRejects(t *testing.T) {
	override := models.DateOverride{Date: "2024-03-29"}

	start, _ := ToInstant("2024-03-29", "UTC", "10:00")
	end, _ := ToInstant("2024-03-29", "UTC", "11:00")

	ok, err := IsPermitted("UTC", override, start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("unavailable override must reject every window")
	}

	// The explicit flag behaves the same as the legacy empty slice.
	override.Unavailable = true
	ok, err = IsPermitted("UTC", override, start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("explicitly unavailable override must reject every window")
	}
}

func TestIsPermitted_RequiresFullContainment(t *testing.T) {
	override := models.DateOverride{
		Date:       "2024-03-29",
		TimeRanges: ranges([2]string{"09:00", "12:00"}, [2]string{"14:00", "17:00"}),
	}

	cases := []struct {
		name       string
		start, end string
		want       bool
	}{
		{"inside first range", "09:30", "11:00", true},
		{"exactly the range", "09:00", "12:00", true},
		{"partial overlap rejected", "11:00", "13:00", false},
		{"spans two ranges rejected", "10:00", "15:00", false},
		{"outside all ranges", "07:00", "08:00", false},
	}
	for _, c := range cases {
		start, _ := ToInstant("2024-03-29", "UTC", c.start)
		end, _ := ToInstant("2024-03-29", "UTC", c.end)
		ok, err := IsPermitted("UTC", override, start, end)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", c.name, err)
		}
		if ok != c.want {
			t.Fatalf("%s: IsPermitted = %v, want %v", c.name, ok, c.want)
		}
	}
}
