package domain

// DayWindow bounds a single operating day in minutes of day.
type DayWindow struct {
	StartMinute int
	EndMinute   int
}

// DayAvailability is the availability of one vehicle on one calendar day.
// It is exactly one of two variants: open with an operating window, or
// closed. The closed variant stands for holidays, vehicle off-days, and
// weekdays with no (or a collapsed) configured window.
type DayAvailability struct {
	open   bool
	window DayWindow
}

func OpenDay(startMinute, endMinute int) DayAvailability {
	return DayAvailability{open: true, window: DayWindow{StartMinute: startMinute, EndMinute: endMinute}}
}

func ClosedDay() DayAvailability {
	return DayAvailability{}
}

// Window returns the operating window and whether the day is open.
// Callers must check the second return before using the window.
func (d DayAvailability) Window() (DayWindow, bool) {
	return d.window, d.open
}

// VirtualVehicle models one (physical vehicle, operating day) pair as an
// independent routing vehicle for a single day's schedule. Its position in
// the flattened virtual-vehicle sequence is the solver's vehicle number.
type VirtualVehicle struct {
	VehicleID string
	DayIndex  int
	Window    DayWindow
}
