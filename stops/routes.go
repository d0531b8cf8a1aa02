package stops

import (
	"sort"
)

// Route summarizes the stops served by one route
type Route struct {
	ID         string   `json:"id"`
	Directions []string `json:"directions"`
	StopCount  int      `json:"stop_count"`
}

// Point is one vertex of a route polyline
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type routeLine struct {
	directions []string           // first-seen order
	paths      map[string][]Point // direction -> stops in ingestion order
	stops      int
}

// buildRoutes groups stops by route and direction. The stop list order is
// the stop sequence; stops without a route are not part of any line.
func buildRoutes(all []Stop) map[string]*routeLine {
	routes := map[string]*routeLine{}
	for _, s := range all {
		if s.Route == "" {
			continue
		}
		r, ok := routes[s.Route]
		if !ok {
			r = &routeLine{paths: map[string][]Point{}}
			routes[s.Route] = r
		}
		r.stops++
		if _, ok := r.paths[s.Direction]; !ok {
			r.directions = append(r.directions, s.Direction)
			r.paths[s.Direction] = []Point{}
		}
		if s.Lat == 0 || s.Lon == 0 {
			continue
		}
		r.paths[s.Direction] = append(r.paths[s.Direction], Point{Lat: s.Lat, Lon: s.Lon})
	}
	return routes
}

// Routes returns every route with stops, sorted by id
func (d *Directory) Routes() []Route {
	out := []Route{}
	if d == nil {
		return out
	}
	for id, r := range d.routes {
		dirs := make([]string, len(r.directions))
		copy(dirs, r.directions)
		out = append(out, Route{ID: id, Directions: dirs, StopCount: r.stops})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// RouteGeometry returns the polyline of every direction of a route, joining
// its stops in list order. Stops with a zero coordinate are left out. It
// reports false for a route with no stops.
func (d *Directory) RouteGeometry(route string) (map[string][]Point, bool) {
	if d == nil {
		return nil, false
	}
	r, ok := d.routes[route]
	if !ok {
		return nil, false
	}
	out := make(map[string][]Point, len(r.paths))
	for dir, path := range r.paths {
		cp := make([]Point, len(path))
		copy(cp, path)
		out[dir] = cp
	}
	return out, true
}
