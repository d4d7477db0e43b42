package routing

// Manager maps between node indices and routing indices.
//
// Every vehicle gets its own start and end routing index so that multiple
// vehicles can share the depot node as a terminal. Interior nodes use their
// node index directly:
//
//	0 .. numNodes-1                      interior nodes
//	numNodes + v                         start of vehicle v
//	numNodes + numVehicles + v           end of vehicle v
type Manager struct {
	numNodes    int
	numVehicles int
	startNodes  []int
	endNodes    []int
}

func NewManager(p *Problem) *Manager {
	return &Manager{
		numNodes:    p.NumNodes(),
		numVehicles: p.NumVehicles(),
		startNodes:  p.StartNodes,
		endNodes:    p.EndNodes,
	}
}

// Size is the total number of routing indices.
func (m *Manager) Size() int { return m.numNodes + 2*m.numVehicles }

// Start returns the start routing index of a vehicle.
func (m *Manager) Start(vehicle int) int { return m.numNodes + vehicle }

// End returns the end routing index of a vehicle.
func (m *Manager) End(vehicle int) int { return m.numNodes + m.numVehicles + vehicle }

// IsEnd reports whether a routing index is any vehicle's end terminal.
func (m *Manager) IsEnd(index int) bool { return index >= m.numNodes+m.numVehicles }

// IndexToNode resolves a routing index to its node index.
func (m *Manager) IndexToNode(index int) int {
	switch {
	case index < m.numNodes:
		return index
	case index < m.numNodes+m.numVehicles:
		return m.startNodes[index-m.numNodes]
	default:
		return m.endNodes[index-m.numNodes-m.numVehicles]
	}
}
