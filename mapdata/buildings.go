package mapdata

import (
	"strings"
)

// BuildingCentroid averages the positions of a building's perimeter nodes.
// Ids missing from the index are skipped and counted in Unresolved; the
// divisor is the resolved count. With nothing resolved the result is the
// (0, 0) sentinel and Defined reports false.
func BuildingCentroid(b Building, index *NodeIndex) Centroid {
	var c Centroid
	var sumLat, sumLon float64
	for _, id := range b.PerimeterIDs {
		lat, lon, _, ok := index.Find(id)
		if !ok {
			c.Unresolved++
			continue
		}
		sumLat += lat
		sumLon += lon
		c.Resolved++
	}
	if c.Resolved == 0 {
		return c
	}
	c.Lat = sumLat / float64(c.Resolved)
	c.Lon = sumLon / float64(c.Resolved)
	return c
}

// Buildings is the read-only building catalog in load order
type Buildings struct {
	list []Building
	byID map[int64]int // building id -> position in list
}

// NewBuildings copies the given buildings. With duplicate ids, Get returns the first.
func NewBuildings(bs []Building) *Buildings {
	list := make([]Building, len(bs))
	byID := make(map[int64]int, len(bs))
	for i, b := range bs {
		ids := make([]int64, len(b.PerimeterIDs))
		copy(ids, b.PerimeterIDs)
		b.PerimeterIDs = ids
		list[i] = b
		if _, exists := byID[b.ID]; !exists {
			byID[b.ID] = i
		}
	}
	return &Buildings{list: list, byID: byID}
}

func (c *Buildings) Len() int { return len(c.list) }

// All returns the buildings in load order
func (c *Buildings) All() []Building {
	out := make([]Building, len(c.list))
	copy(out, c.list)
	return out
}

func (c *Buildings) Get(id int64) (Building, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Building{}, false
	}
	return c.list[i], true
}

// SearchByName returns buildings whose name contains query, in load order.
// An empty or all-whitespace query matches nothing.
func (c *Buildings) SearchByName(query string, caseSensitive bool) []Building {
	q := strings.TrimSpace(query)
	if q == "" {
		return []Building{}
	}
	if !caseSensitive {
		q = strings.ToLower(q)
	}
	out := []Building{}
	for _, b := range c.list {
		name := b.Name
		if !caseSensitive {
			name = strings.ToLower(name)
		}
		if strings.Contains(name, q) {
			out = append(out, b)
		}
	}
	return out
}
