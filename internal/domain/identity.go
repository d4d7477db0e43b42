package domain

// DepotID is the stable identifier of the depot node.
const DepotID = "Branch"

// IdentityMap is the bidirectional {target id <-> node index} lookup for a
// single solve. Node index 0 is always the depot; target i in the supplied
// list gets node index i+1.
//
// The map is rebuilt for every solve. It is the only structure through
// which node indices from different solves may be related.
type IdentityMap struct {
	idToIndex map[string]int
	ids       []string
}

func NewIdentityMap(targets []Target) *IdentityMap {
	m := &IdentityMap{
		idToIndex: make(map[string]int, len(targets)+1),
		ids:       make([]string, 0, len(targets)+1),
	}
	m.idToIndex[DepotID] = 0
	m.ids = append(m.ids, DepotID)
	for i, t := range targets {
		m.idToIndex[t.ID] = i + 1
		m.ids = append(m.ids, t.ID)
	}
	return m
}

// IndexOf returns the node index for a target id in this snapshot.
func (m *IdentityMap) IndexOf(id string) (int, bool) {
	idx, ok := m.idToIndex[id]
	return idx, ok
}

// IDAt returns the target id for a node index in this snapshot.
func (m *IdentityMap) IDAt(index int) (string, bool) {
	if index < 0 || index >= len(m.ids) {
		return "", false
	}
	return m.ids[index], true
}

// NodeCount is the number of nodes in the snapshot, depot included.
func (m *IdentityMap) NodeCount() int { return len(m.ids) }
