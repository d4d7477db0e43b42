package domain

// Branch is the depot for a planning problem. It is a singleton per solve
// and always occupies node index 0.
type Branch struct {
	ID    string
	Coord Coordinates
}

// Target is a single visit candidate.
//
// ID is externally assigned and stable across re-plans; it is the only
// durable cross-solve reference. Node indices are recomputed every solve
// and must never be compared across two target-list snapshots without
// going through an IdentityMap.
type Target struct {
	ID          string
	Coord       Coordinates
	StayMinutes int
	Mandatory   bool
	// ExactMinute, when set, fixes the arrival to a single minute of day.
	ExactMinute *int
}

// HasExactTime reports whether the target is a fixed appointment.
func (t Target) HasExactTime() bool { return t.ExactMinute != nil }
