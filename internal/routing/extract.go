package routing

import "visit-routing-service/internal/domain"

// ExtractRoutes walks a raw assignment into ordered, annotated per-vehicle
// stop lists with clock times.
//
// Each vehicle's route is followed from its start terminal via the
// successor relation to its end terminal. Terminals are always included,
// so a vehicle with no intermediate stops still yields two depot entries.
func ExtractRoutes(
	p *Problem,
	m *Manager,
	a *Assignment,
	ids *domain.IdentityMap,
	targets []domain.Target,
	virtuals []domain.VirtualVehicle,
) []domain.VehicleRoute {
	routes := make([]domain.VehicleRoute, 0, p.NumVehicles())

	for v := 0; v < p.NumVehicles(); v++ {
		stops := []domain.Stop{}

		index := m.Start(v)
		for !m.IsEnd(index) {
			stops = append(stops, annotateStop(index, m, a, ids, targets))
			index = a.Next(index)
		}
		// End terminal is part of the route even for idle vehicles.
		stops = append(stops, annotateStop(index, m, a, ids, targets))

		route := domain.VehicleRoute{
			VehicleIndex: v,
			Stops:        stops,
		}
		if v < len(virtuals) {
			route.VehicleID = virtuals[v].VehicleID
			route.DayIndex = virtuals[v].DayIndex
		}
		routes = append(routes, route)
	}

	return routes
}

func annotateStop(index int, m *Manager, a *Assignment, ids *domain.IdentityMap, targets []domain.Target) domain.Stop {
	node := m.IndexToNode(index)

	stop := domain.Stop{
		RoutingIndex: index,
		NodeID:       node,
		ArrivalTime:  domain.FormatClock(a.Arrival(index)),
	}

	if node == 0 {
		stop.NodeName = "Depot"
		stop.ExactTime = "-"
		stop.Mandatory = "-"
		return stop
	}

	if name, ok := ids.IDAt(node); ok {
		stop.NodeName = name
	}

	t := targets[node-1]
	if t.HasExactTime() {
		stop.ExactTime = domain.FormatClock(*t.ExactMinute)
	} else {
		stop.ExactTime = "no_exact"
	}
	if t.Mandatory {
		stop.Mandatory = "MANDATORY"
	} else {
		stop.Mandatory = "optional"
	}

	return stop
}
