package services

import (
	"testing"

	"visit-routing-service/internal/domain"
)

// 2026-01-05 is a Monday.
const monday = "2026-01-05"

func TestExpandCalendarSingleMonday(t *testing.T) {
	schedules, err := ExpandCalendar(
		DateRange{StartDate: monday, EndDate: monday},
		nil,
		map[string][]string{"Monday": {"08:00", "18:00"}},
		[]domain.Vehicle{{ID: "V1"}},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	virtuals := FlattenVirtualVehicles(schedules)
	if len(virtuals) != 1 {
		t.Fatalf("expected 1 virtual vehicle, got %d", len(virtuals))
	}

	vv := virtuals[0]
	if vv.VehicleID != "V1" || vv.DayIndex != 0 {
		t.Fatalf("provenance = (%q, %d), want (\"V1\", 0)", vv.VehicleID, vv.DayIndex)
	}
	if vv.Window.StartMinute != 480 || vv.Window.EndMinute != 1080 {
		t.Fatalf("window = %+v, want (480, 1080)", vv.Window)
	}
}

func TestExpandCalendarHolidayWinsOverAvailability(t *testing.T) {
	schedules, err := ExpandCalendar(
		DateRange{StartDate: monday, EndDate: monday},
		[]string{monday},
		map[string][]string{"Monday": {"08:00", "18:00"}},
		[]domain.Vehicle{{ID: "V1"}},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if virtuals := FlattenVirtualVehicles(schedules); len(virtuals) != 0 {
		t.Fatalf("expected no virtual vehicles on a holiday, got %d", len(virtuals))
	}
}

func TestExpandCalendarClosureRules(t *testing.T) {
	cases := []struct {
		name    string
		windows map[string][]string
		offDays []string
	}{
		{name: "weekday not configured", windows: map[string][]string{"Tuesday": {"08:00", "18:00"}}},
		{name: "window not a pair", windows: map[string][]string{"Monday": {"08:00"}}},
		{name: "window collapsed to midnight", windows: map[string][]string{"Monday": {"00:00", "00:00"}}},
		{name: "malformed start", windows: map[string][]string{"Monday": {"junk", "18:00"}}},
		{name: "malformed end", windows: map[string][]string{"Monday": {"08:00", "junk"}}},
		{name: "vehicle off day", windows: map[string][]string{"Monday": {"08:00", "18:00"}}, offDays: []string{monday}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			schedules, err := ExpandCalendar(
				DateRange{StartDate: monday, EndDate: monday},
				nil,
				c.windows,
				[]domain.Vehicle{{ID: "V1", OffDays: domain.NewDateSet(c.offDays)}},
			)
			if err != nil {
				t.Fatalf("closure rules must degrade softly, got error: %v", err)
			}
			if virtuals := FlattenVirtualVehicles(schedules); len(virtuals) != 0 {
				t.Fatalf("expected closed day, got %d virtual vehicles", len(virtuals))
			}
		})
	}
}

func TestExpandCalendarVirtualVehicleCount(t *testing.T) {
	// Mon 2026-01-05 .. Sun 2026-01-11, Mon-Fri operating, Wednesday a
	// holiday, V2 off Thursday. V1: 4 open days, V2: 3.
	schedules, err := ExpandCalendar(
		DateRange{StartDate: monday, EndDate: "2026-01-11"},
		[]string{"2026-01-07"},
		map[string][]string{
			"Monday":    {"08:00", "18:00"},
			"Tuesday":   {"08:00", "18:00"},
			"Wednesday": {"08:00", "18:00"},
			"Thursday":  {"08:00", "18:00"},
			"Friday":    {"08:00", "18:00"},
		},
		[]domain.Vehicle{
			{ID: "V1"},
			{ID: "V2", OffDays: domain.NewDateSet([]string{"2026-01-08"})},
		},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	openDays := 0
	for _, s := range schedules {
		for _, day := range s.Days {
			if _, ok := day.Window(); ok {
				openDays++
			}
		}
	}

	virtuals := FlattenVirtualVehicles(schedules)
	if len(virtuals) != openDays {
		t.Fatalf("virtual vehicles = %d, open (vehicle, day) pairs = %d; must match", len(virtuals), openDays)
	}
	if len(virtuals) != 7 {
		t.Fatalf("expected 7 virtual vehicles (4 for V1, 3 for V2), got %d", len(virtuals))
	}

	// Provenance stays in vehicle input order, then day order.
	if virtuals[0].VehicleID != "V1" || virtuals[len(virtuals)-1].VehicleID != "V2" {
		t.Fatalf("flatten order broke provenance: first=%q last=%q", virtuals[0].VehicleID, virtuals[len(virtuals)-1].VehicleID)
	}
}

func TestExpandCalendarBadRange(t *testing.T) {
	_, err := ExpandCalendar(
		DateRange{StartDate: "2026-01-11", EndDate: monday},
		nil,
		map[string][]string{"Monday": {"08:00", "18:00"}},
		[]domain.Vehicle{{ID: "V1"}},
	)
	if err == nil {
		t.Fatal("expected error for end date before start date")
	}
}
