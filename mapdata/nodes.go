package mapdata

import (
	"sort"
)

// NodeIndex is an immutable, id-sorted collection of nodes
type NodeIndex struct {
	nodes []Node
}

// NewNodeIndex copies nodes, sorts them by id and freezes the result.
// Input order does not matter. Duplicate ids are kept in input order.
func NewNodeIndex(nodes []Node) *NodeIndex {
	sorted := make([]Node, len(nodes))
	copy(sorted, nodes)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	return &NodeIndex{nodes: sorted}
}

// Find looks up a node by id with a binary search.
// A miss returns ok == false; with duplicate ids the first one supplied wins.
func (x *NodeIndex) Find(id int64) (lat, lon float64, isEntrance bool, ok bool) {
	n, ok := x.Get(id)
	if !ok {
		return 0, 0, false, false
	}
	return n.Lat, n.Lon, n.IsEntrance, true
}

// Get returns a copy of the node with the given id
func (x *NodeIndex) Get(id int64) (Node, bool) {
	if x == nil {
		return Node{}, false
	}
	i := sort.Search(len(x.nodes), func(i int) bool { return x.nodes[i].ID >= id })
	if i < len(x.nodes) && x.nodes[i].ID == id {
		return x.nodes[i], true
	}
	return Node{}, false
}

func (x *NodeIndex) Len() int {
	if x == nil {
		return 0
	}
	return len(x.nodes)
}

// Entrances returns the entrance nodes among ids, in the order of ids.
// Unknown ids are skipped and a closed outline does not repeat its first node.
func (x *NodeIndex) Entrances(ids []int64) []Node {
	out := []Node{}
	seen := map[int64]struct{}{}
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if n, ok := x.Get(id); ok && n.IsEntrance {
			out = append(out, n)
		}
	}
	return out
}
