package domain

// Vehicle is a physical vehicle with its per-date unavailability.
// Dates are ISO "YYYY-MM-DD" strings, matching the request format.
type Vehicle struct {
	ID      string
	OffDays DateSet
}

// DateSet is a set of ISO date strings.
type DateSet map[string]struct{}

func NewDateSet(dates []string) DateSet {
	s := make(DateSet, len(dates))
	for _, d := range dates {
		s[d] = struct{}{}
	}
	return s
}

func (s DateSet) Contains(date string) bool {
	_, ok := s[date]
	return ok
}
