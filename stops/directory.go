package stops

import (
	"sort"

	"github.com/theoremus-urban-solutions/campusmap/utils"
)

// Directory is the read-only stop collection in ingestion order.
// A nil *Directory behaves as an empty one.
type Directory struct {
	stops      []Stop
	byID       map[string]int // stop id -> position in stops
	directions []string       // distinct directions in first-seen order
	routes     map[string]*routeLine
}

// NewDirectory copies stops and keeps their order; the order decides ties in
// NearestPerDirection.
func NewDirectory(stops []Stop) *Directory {
	d := &Directory{
		stops:      make([]Stop, len(stops)),
		byID:       make(map[string]int, len(stops)),
		directions: []string{},
	}
	copy(d.stops, stops)
	seen := map[string]struct{}{}
	for i, s := range d.stops {
		if _, ok := d.byID[s.ID]; !ok {
			d.byID[s.ID] = i
		}
		if _, ok := seen[s.Direction]; !ok {
			seen[s.Direction] = struct{}{}
			d.directions = append(d.directions, s.Direction)
		}
	}
	d.routes = buildRoutes(d.stops)
	return d
}

// NearestPerDirection returns, for every direction present in the data, the
// stop closest to (lat, lon) together with its distance in miles.
// It makes one pass over all stops. A stop replaces the current best only
// when strictly closer, so on ties the earliest ingested stop wins.
// An empty directory yields an empty map.
func (d *Directory) NearestPerDirection(lat, lon float64) map[string]Match {
	best := map[string]Match{}
	if d == nil {
		return best
	}
	for _, s := range d.stops {
		dist := utils.DistanceMiles(lat, lon, s.Lat, s.Lon)
		cur, ok := best[s.Direction]
		if !ok || dist < cur.Distance {
			best[s.Direction] = Match{Stop: s, Distance: dist}
		}
	}
	return best
}

// Directions returns the distinct directions in first-seen order
func (d *Directory) Directions() []string {
	if d == nil {
		return []string{}
	}
	out := make([]string, len(d.directions))
	copy(out, d.directions)
	return out
}

// All returns a copy of the stops sorted by id
func (d *Directory) All() []Stop {
	if d == nil {
		return []Stop{}
	}
	out := make([]Stop, len(d.stops))
	copy(out, d.stops)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (d *Directory) Get(id string) (Stop, bool) {
	if d == nil {
		return Stop{}, false
	}
	i, ok := d.byID[id]
	if !ok {
		return Stop{}, false
	}
	return d.stops[i], true
}

func (d *Directory) Len() int {
	if d == nil {
		return 0
	}
	return len(d.stops)
}
