package domain

// Stop is a single annotated visit in an extracted route.
// A Stop corresponds to arriving at one node at a computed clock time,
// resolved back to its stable target id through the IdentityMap.
type Stop struct {
	RoutingIndex int
	NodeID       int
	NodeName     string
	ArrivalTime  string // "HH:MM"
	ExactTime    string // "HH:MM", "no_exact", or "-" for the depot
	Mandatory    string // "MANDATORY", "optional", or "-" for the depot
}

// VehicleRoute is the extracted schedule of one virtual vehicle.
// It is immutable planning data and contains no side effects.
type VehicleRoute struct {
	VehicleIndex int
	VehicleID    string
	DayIndex     int
	Stops        []Stop
}

// Plan is the outcome of one solve, cold or warm.
// When no feasible solution was found within the time budget,
// SolutionFound is false and Routes is empty.
type Plan struct {
	SolutionFound bool
	Routes        []VehicleRoute
}
