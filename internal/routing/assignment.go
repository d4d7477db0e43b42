package routing

// Assignment is a raw solver solution over routing indices: a successor
// relation plus the cumulative time value at each visited index.
//
// An unperformed (skipped) node is its own successor. End terminals have
// no successor.
type Assignment struct {
	next    []int
	arrival []int
}

func NewAssignment(m *Manager) *Assignment {
	a := &Assignment{
		next:    make([]int, m.Size()),
		arrival: make([]int, m.Size()),
	}
	for i := range a.next {
		a.next[i] = i
	}
	return a
}

// Next returns the successor routing index of a visited index.
func (a *Assignment) Next(index int) int { return a.next[index] }

// SetNext records the successor of a routing index.
func (a *Assignment) SetNext(index, next int) { a.next[index] = next }

// Arrival returns the cumulative time value (minute of day) at an index.
func (a *Assignment) Arrival(index int) int { return a.arrival[index] }

// SetArrival records the cumulative time value at an index.
func (a *Assignment) SetArrival(index, minute int) { a.arrival[index] = minute }

// Performed reports whether an interior node was visited by any vehicle.
func (a *Assignment) Performed(node int) bool { return a.next[node] != node }
