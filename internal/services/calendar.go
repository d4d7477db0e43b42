package services

import (
	"fmt"
	"time"

	"visit-routing-service/internal/domain"
)

const dateLayout = "2006-01-02"

// DateRange is an inclusive planning horizon in ISO dates.
type DateRange struct {
	StartDate string
	EndDate   string
}

// VehicleSchedule is one vehicle's day-indexed availability over the range.
// Closed days stay in the sequence as explicit markers so day indices line
// up with calendar dates.
type VehicleSchedule struct {
	VehicleID string
	Days      []domain.DayAvailability
}

// ExpandCalendar turns the date range, holiday set, weekday operating-hour
// table and per-vehicle off-days into per-vehicle availability.
//
// A day is closed when the date is a holiday, the date is in the vehicle's
// off-days, the weekday has no configured window, the window is not exactly
// a (start, end) pair, a bound does not parse as "HH:MM", or the window
// collapses to "00:00"-"00:00". None of these are errors; they only reduce
// availability.
func ExpandCalendar(
	dateRange DateRange,
	holidays []string,
	weekdayWindows map[string][]string,
	vehicles []domain.Vehicle,
) ([]VehicleSchedule, error) {
	start, err := time.Parse(dateLayout, dateRange.StartDate)
	if err != nil {
		return nil, fmt.Errorf("expand calendar: parse start date %q: %w", dateRange.StartDate, err)
	}
	end, err := time.Parse(dateLayout, dateRange.EndDate)
	if err != nil {
		return nil, fmt.Errorf("expand calendar: parse end date %q: %w", dateRange.EndDate, err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("expand calendar: end date %q before start date %q", dateRange.EndDate, dateRange.StartDate)
	}

	holidaySet := domain.NewDateSet(holidays)
	dayCount := int(end.Sub(start).Hours()/24) + 1

	schedules := make([]VehicleSchedule, 0, len(vehicles))
	for _, v := range vehicles {
		days := make([]domain.DayAvailability, 0, dayCount)
		for i := 0; i < dayCount; i++ {
			date := start.AddDate(0, 0, i)
			days = append(days, dayAvailability(date, holidaySet, v.OffDays, weekdayWindows))
		}
		schedules = append(schedules, VehicleSchedule{VehicleID: v.ID, Days: days})
	}

	return schedules, nil
}

func dayAvailability(
	date time.Time,
	holidays domain.DateSet,
	offDays domain.DateSet,
	weekdayWindows map[string][]string,
) domain.DayAvailability {
	dateStr := date.Format(dateLayout)
	if holidays.Contains(dateStr) || offDays.Contains(dateStr) {
		return domain.ClosedDay()
	}

	window, ok := weekdayWindows[date.Weekday().String()]
	if !ok || len(window) != 2 {
		return domain.ClosedDay()
	}

	startStr, endStr := window[0], window[1]
	if startStr == "00:00" && endStr == "00:00" {
		return domain.ClosedDay()
	}

	startMin, err := domain.ParseClock(startStr)
	if err != nil {
		return domain.ClosedDay()
	}
	endMin, err := domain.ParseClock(endStr)
	if err != nil {
		return domain.ClosedDay()
	}

	return domain.OpenDay(startMin, endMin)
}

// FlattenVirtualVehicles materializes one routing vehicle per open
// (vehicle, day) pair, preserving vehicle input order and day order so
// provenance stays traceable. Closed days are omitted, not emitted as
// null vehicles.
func FlattenVirtualVehicles(schedules []VehicleSchedule) []domain.VirtualVehicle {
	virtuals := []domain.VirtualVehicle{}
	for _, s := range schedules {
		for dayIndex, day := range s.Days {
			window, open := day.Window()
			if !open {
				continue
			}
			virtuals = append(virtuals, domain.VirtualVehicle{
				VehicleID: s.VehicleID,
				DayIndex:  dayIndex,
				Window:    window,
			})
		}
	}
	return virtuals
}
