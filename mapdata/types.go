package mapdata

// Node is a point on the map with a globally unique id
type Node struct {
	ID         int64   `json:"id"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	IsEntrance bool    `json:"is_entrance"`
}

// Building is a campus building. PerimeterIDs reference nodes in outline
// traversal order and are resolved against a NodeIndex at query time.
type Building struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	StreetAddress string  `json:"address"`
	PerimeterIDs  []int64 `json:"-"`
}

// Centroid is the mean position of a building's resolved perimeter nodes
type Centroid struct {
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	Resolved   int     `json:"resolved"`
	Unresolved int     `json:"unresolved"`
}

// Defined reports whether at least one perimeter node resolved.
// An undefined centroid carries the (0, 0) sentinel and is not a position.
func (c Centroid) Defined() bool { return c.Resolved > 0 }
