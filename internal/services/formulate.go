package services

import (
	"errors"
	"fmt"

	"visit-routing-service/internal/domain"
	"visit-routing-service/internal/routing"
)

// Default operating window for the depot and for targets without a fixed
// appointment: 08:00-19:00.
var DefaultDepotWindow = domain.DayWindow{StartMinute: 480, EndMinute: 1140}

// ErrNoVehiclesAvailable means the calendar yielded zero open (vehicle, day)
// pairs. Holidays, off-days and unconfigured weekdays degrade availability
// softly; hitting zero just means nothing can be planned.
var ErrNoVehiclesAvailable = errors.New("no virtual vehicles in the planning horizon")

// FormulateOptions tunes problem assembly. Zero values fall back to the
// defaults above.
type FormulateOptions struct {
	Penalty     int
	DepotWindow domain.DayWindow

	// ForcedStartMinutes pins per-vehicle start times during re-planning.
	// Nil, or nil entries, leave starts free.
	ForcedStartMinutes []*int
}

// BuildProblem assembles the fully constrained routing model: time windows
// per node (a fixed appointment becomes the degenerate single-minute
// window), per-vehicle end-of-day bounds, mandatory targets with no skip
// option, and optional targets skippable at the penalty.
func BuildProblem(
	matrix [][]int,
	targets []domain.Target,
	virtuals []domain.VirtualVehicle,
	opts FormulateOptions,
) (*routing.Problem, error) {
	if len(matrix) != len(targets)+1 {
		return nil, fmt.Errorf("build problem: matrix has %d nodes for %d targets", len(matrix), len(targets))
	}
	if len(virtuals) == 0 {
		return nil, fmt.Errorf("build problem: %w", ErrNoVehiclesAvailable)
	}

	penalty := opts.Penalty
	if penalty == 0 {
		penalty = routing.DefaultPenalty
	}
	depotWindow := opts.DepotWindow
	if depotWindow == (domain.DayWindow{}) {
		depotWindow = DefaultDepotWindow
	}

	n := len(matrix)
	serviceTimes := make([]int, n)
	timeWindows := make([]routing.TimeWindow, n)
	mandatory := make([]bool, n)

	timeWindows[0] = routing.TimeWindow{Earliest: depotWindow.StartMinute, Latest: depotWindow.EndMinute}
	for i, t := range targets {
		node := i + 1
		serviceTimes[node] = t.StayMinutes
		mandatory[node] = t.Mandatory
		if t.HasExactTime() {
			timeWindows[node] = routing.TimeWindow{Earliest: *t.ExactMinute, Latest: *t.ExactMinute}
		} else {
			timeWindows[node] = routing.TimeWindow{Earliest: depotWindow.StartMinute, Latest: depotWindow.EndMinute}
		}
	}

	numVehicles := len(virtuals)
	vehicleWindows := make([]domain.DayWindow, numVehicles)
	startNodes := make([]int, numVehicles)
	endNodes := make([]int, numVehicles)
	for v, vv := range virtuals {
		vehicleWindows[v] = vv.Window
	}

	var forced []*int
	if opts.ForcedStartMinutes != nil {
		forced = make([]*int, numVehicles)
		copy(forced, opts.ForcedStartMinutes)
	}

	p := &routing.Problem{
		Matrix:             matrix,
		ServiceTimes:       serviceTimes,
		TimeWindows:        timeWindows,
		Mandatory:          mandatory,
		Penalty:            penalty,
		VehicleWindows:     vehicleWindows,
		StartNodes:         startNodes,
		EndNodes:           endNodes,
		ForcedStartMinutes: forced,
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("build problem: %w", err)
	}
	return p, nil
}
