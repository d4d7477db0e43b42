package routing

import (
	"testing"

	"visit-routing-service/internal/domain"
)

func extractFixture() (*Problem, *Manager, *domain.IdentityMap, []domain.Target, []domain.VirtualVehicle) {
	exact := 630
	targets := []domain.Target{
		{ID: "clinic-a", StayMinutes: 30, Mandatory: true},
		{ID: "clinic-b", StayMinutes: 15, ExactMinute: &exact},
	}

	p := &Problem{
		Matrix:       [][]int{{0, 10, 10}, {10, 0, 10}, {10, 10, 0}},
		ServiceTimes: []int{0, 30, 15},
		TimeWindows: []TimeWindow{
			{Earliest: 480, Latest: 1140},
			{Earliest: 480, Latest: 1140},
			{Earliest: 630, Latest: 630},
		},
		Mandatory:      []bool{false, true, false},
		Penalty:        DefaultPenalty,
		VehicleWindows: make([]domain.DayWindow, 2),
		StartNodes:     []int{0, 0},
		EndNodes:       []int{0, 0},
	}
	for v := range p.VehicleWindows {
		p.VehicleWindows[v] = domain.DayWindow{StartMinute: 480, EndMinute: 1080}
	}

	virtuals := []domain.VirtualVehicle{
		{VehicleID: "V1", DayIndex: 0},
		{VehicleID: "V2", DayIndex: 0},
	}

	return p, NewManager(p), domain.NewIdentityMap(targets), targets, virtuals
}

func TestExtractRoutesAnnotations(t *testing.T) {
	p, m, ids, targets, virtuals := extractFixture()

	// Vehicle 0 serves both targets, vehicle 1 stays at the depot.
	a := NewAssignment(m)
	a.SetNext(m.Start(0), 1)
	a.SetNext(1, 2)
	a.SetNext(2, m.End(0))
	a.SetNext(m.Start(1), m.End(1))
	a.SetArrival(m.Start(0), 480)
	a.SetArrival(1, 490)
	a.SetArrival(2, 630)
	a.SetArrival(m.End(0), 655)
	a.SetArrival(m.Start(1), 480)
	a.SetArrival(m.End(1), 480)

	routes := ExtractRoutes(p, m, a, ids, targets, virtuals)
	if len(routes) != 2 {
		t.Fatalf("got %d routes, want 2", len(routes))
	}

	first := routes[0]
	if first.VehicleID != "V1" || first.DayIndex != 0 {
		t.Fatalf("route 0 attribution = vehicle %s day %d", first.VehicleID, first.DayIndex)
	}
	if len(first.Stops) != 4 {
		t.Fatalf("route 0 has %d stops, want 4", len(first.Stops))
	}

	start := first.Stops[0]
	if start.NodeName != "Depot" || start.NodeID != 0 || start.ExactTime != "-" || start.Mandatory != "-" {
		t.Fatalf("depot start annotated wrong: %+v", start)
	}
	if start.RoutingIndex != m.Start(0) {
		t.Fatalf("depot start routing index = %d, want %d", start.RoutingIndex, m.Start(0))
	}

	stopA := first.Stops[1]
	if stopA.NodeName != "clinic-a" || stopA.ArrivalTime != "08:10" {
		t.Fatalf("first visit annotated wrong: %+v", stopA)
	}
	if stopA.Mandatory != "MANDATORY" || stopA.ExactTime != "no_exact" {
		t.Fatalf("first visit flags wrong: %+v", stopA)
	}

	stopB := first.Stops[2]
	if stopB.NodeName != "clinic-b" || stopB.ArrivalTime != "10:30" {
		t.Fatalf("second visit annotated wrong: %+v", stopB)
	}
	if stopB.Mandatory != "optional" || stopB.ExactTime != "10:30" {
		t.Fatalf("second visit flags wrong: %+v", stopB)
	}

	if last := first.Stops[3]; last.NodeName != "Depot" || last.ArrivalTime != "10:55" {
		t.Fatalf("depot return annotated wrong: %+v", last)
	}
}

func TestExtractRoutesIdleVehicle(t *testing.T) {
	p, m, ids, targets, virtuals := extractFixture()

	a := NewAssignment(m)
	for v := 0; v < p.NumVehicles(); v++ {
		a.SetNext(m.Start(v), m.End(v))
		a.SetArrival(m.Start(v), 480)
		a.SetArrival(m.End(v), 480)
	}

	routes := ExtractRoutes(p, m, a, ids, targets, virtuals)
	for v, r := range routes {
		if len(r.Stops) != 2 {
			t.Fatalf("idle vehicle %d has %d stops, want depot pair", v, len(r.Stops))
		}
		for _, s := range r.Stops {
			if s.NodeName != "Depot" || s.ArrivalTime != "08:00" {
				t.Fatalf("idle stop annotated wrong: %+v", s)
			}
		}
	}
}

func TestManagerIndexLayout(t *testing.T) {
	p, m, _, _, _ := extractFixture()

	if m.Size() != p.NumNodes()+2*p.NumVehicles() {
		t.Fatalf("manager size = %d", m.Size())
	}
	if m.Start(0) != 3 || m.Start(1) != 4 {
		t.Fatalf("start indices = %d, %d", m.Start(0), m.Start(1))
	}
	if m.End(0) != 5 || m.End(1) != 6 {
		t.Fatalf("end indices = %d, %d", m.End(0), m.End(1))
	}
	if m.IndexToNode(m.Start(1)) != 0 || m.IndexToNode(m.End(0)) != 0 {
		t.Fatal("terminals must map to the depot node")
	}
	if !m.IsEnd(m.End(1)) || m.IsEnd(m.Start(1)) {
		t.Fatal("IsEnd misclassifies terminals")
	}
	if m.IndexToNode(2) != 2 {
		t.Fatal("interior indices map to themselves")
	}
}
