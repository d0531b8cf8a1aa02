package campus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/theoremus-urban-solutions/campusmap/mapdata"
	"github.com/theoremus-urban-solutions/campusmap/metrics"
	"github.com/theoremus-urban-solutions/campusmap/predictions"
	"github.com/theoremus-urban-solutions/campusmap/stops"
)

var (
	// ErrStopNotFound is returned for an unknown stop id
	ErrStopNotFound = errors.New("stop not found")
	// ErrRouteNotFound is returned for a route with no stops
	ErrRouteNotFound = errors.New("route not found")
)

// Realtime groups the live data sources. Nil members are disabled.
type Realtime struct {
	Arrivals predictions.Source
	Vehicles predictions.VehicleSource
}

// Service answers building, stop and arrival queries over frozen data
type Service struct {
	nodes     *mapdata.NodeIndex
	buildings *mapdata.Buildings
	stops     *stops.Directory
	arrivals  predictions.Source
	vehicles  predictions.VehicleSource
	skipped   int
}

// New freezes the dataset into a Service
func New(ds Dataset, rt Realtime) *Service {
	data := ds.Map
	if data == nil {
		data = &mapdata.MapData{}
	}
	s := &Service{
		nodes:     mapdata.NewNodeIndex(data.Nodes),
		buildings: mapdata.NewBuildings(data.Buildings),
		stops:     stops.NewDirectory(ds.Stops),
		arrivals:  rt.Arrivals,
		vehicles:  rt.Vehicles,
	}
	if s.arrivals == nil {
		s.arrivals = predictions.Disabled{}
	}
	if s.vehicles == nil {
		s.vehicles = predictions.Disabled{}
	}
	if ds.Report != nil {
		s.skipped = len(ds.Report.Skipped)
	}
	s.recordDataset()
	return s
}

// recordDataset publishes the size of the loaded data and how many
// buildings reference nodes the map does not contain.
func (s *Service) recordDataset() {
	var unresolved, undefined int
	for _, b := range s.buildings.All() {
		c := mapdata.BuildingCentroid(b, s.nodes)
		if c.Unresolved > 0 {
			unresolved += c.Unresolved
			slog.Debug("perimeter ids missing from node index", "building", b.ID, "unresolved", c.Unresolved)
		}
		if !c.Defined() {
			undefined++
		}
	}
	if undefined > 0 {
		slog.Warn("buildings without a location", "count", undefined)
	}
	metrics.UnresolvedPerimeterIDs.Set(float64(unresolved))
	metrics.UndefinedCentroids.Set(float64(undefined))
	metrics.DatasetSize.WithLabelValues("nodes").Set(float64(s.nodes.Len()))
	metrics.DatasetSize.WithLabelValues("buildings").Set(float64(s.buildings.Len()))
	metrics.DatasetSize.WithLabelValues("stops").Set(float64(s.stops.Len()))
}

// Stats returns the loaded record counts
func (s *Service) Stats() Stats {
	return Stats{
		Nodes:           s.nodes.Len(),
		Buildings:       s.buildings.Len(),
		Stops:           s.stops.Len(),
		Routes:          len(s.stops.Routes()),
		SkippedStopRows: s.skipped,
		Directions:      s.stops.Directions(),
	}
}

// ListBuildings returns every building in load order
func (s *Service) ListBuildings() []BuildingSummary {
	return s.summaries(s.buildings.All())
}

// FindBuildingsByNameSubstring returns the buildings whose name contains
// query, in load order. A blank query matches nothing.
func (s *Service) FindBuildingsByNameSubstring(query string, caseSensitive bool) []BuildingSummary {
	return s.summaries(s.buildings.SearchByName(query, caseSensitive))
}

// GetBuildingCentroid reports false only when the building id is unknown.
// A known building without resolvable perimeter nodes yields an undefined centroid.
func (s *Service) GetBuildingCentroid(id int64) (mapdata.Centroid, bool) {
	b, ok := s.buildings.Get(id)
	if !ok {
		return mapdata.Centroid{}, false
	}
	return s.centroid(b), true
}

// GetBuilding returns the building with its entrances and, when it has a
// position, the nearest stop in every direction.
func (s *Service) GetBuilding(id int64) (BuildingDetail, bool) {
	b, ok := s.buildings.Get(id)
	if !ok {
		return BuildingDetail{}, false
	}
	c := s.centroid(b)
	d := BuildingDetail{
		BuildingSummary: summary(b, c),
		Centroid:        c,
		Entrances:       s.nodes.Entrances(b.PerimeterIDs),
		NearestStops:    []stops.Match{},
	}
	if c.Defined() {
		d.NearestStops = s.orderedMatches(s.stops.NearestPerDirection(c.Lat, c.Lon))
	}
	return d, true
}

// NearestStops returns the closest stop to (lat, lon) in every direction
func (s *Service) NearestStops(lat, lon float64) map[string]stops.Match {
	return s.stops.NearestPerDirection(lat, lon)
}

// NearestStopsWithPredictions returns the closest stop per direction, in
// first-seen direction order, each with its upcoming arrivals. Arrivals are
// fetched concurrently; a failed fetch marks that stop unavailable and does
// not fail the query.
func (s *Service) NearestStopsWithPredictions(ctx context.Context, lat, lon float64) []StopArrivals {
	matches := s.orderedMatches(s.stops.NearestPerDirection(lat, lon))
	out := make([]StopArrivals, len(matches))

	var g errgroup.Group
	for i, m := range matches {
		out[i] = StopArrivals{
			Direction:   m.Stop.Direction,
			Stop:        m.Stop,
			Distance:    m.Distance,
			Predictions: []predictions.Prediction{},
		}
		g.Go(func() error {
			ps, err := s.arrivals.Arrivals(ctx, m.Stop)
			if err != nil {
				out[i].Error = err.Error()
				return nil
			}
			out[i].Available = true
			out[i].Predictions = ps
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// ListStops returns every stop sorted by id
func (s *Service) ListStops() []stops.Stop {
	return s.stops.All()
}

// StopPredictions returns the upcoming arrivals at the stop with the given id
func (s *Service) StopPredictions(ctx context.Context, id string) ([]predictions.Prediction, error) {
	stop, ok := s.stops.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrStopNotFound, id)
	}
	return s.arrivals.Arrivals(ctx, stop)
}

// Routes returns the routes serving the loaded stops, sorted by id
func (s *Service) Routes() []stops.Route {
	return s.stops.Routes()
}

// RouteGeometry returns the polyline of each direction of a route
func (s *Service) RouteGeometry(route string) (map[string][]stops.Point, bool) {
	return s.stops.RouteGeometry(route)
}

// RouteBuses returns the live positions of the buses on one route
func (s *Service) RouteBuses(ctx context.Context, route string) ([]predictions.Vehicle, error) {
	if _, ok := s.stops.RouteGeometry(route); !ok {
		return nil, fmt.Errorf("%w: %s", ErrRouteNotFound, route)
	}
	return s.vehicles.Vehicles(ctx, route)
}

// LiveBuses returns the live positions of the buses on every route with stops
func (s *Service) LiveBuses(ctx context.Context) ([]predictions.Vehicle, error) {
	routes := s.stops.Routes()
	if len(routes) == 0 {
		return []predictions.Vehicle{}, nil
	}
	ids := make([]string, 0, len(routes))
	for _, r := range routes {
		ids = append(ids, r.ID)
	}
	return s.vehicles.Vehicles(ctx, ids...)
}

func (s *Service) centroid(b mapdata.Building) mapdata.Centroid {
	return mapdata.BuildingCentroid(b, s.nodes)
}

func (s *Service) summaries(bs []mapdata.Building) []BuildingSummary {
	out := make([]BuildingSummary, 0, len(bs))
	for _, b := range bs {
		out = append(out, summary(b, s.centroid(b)))
	}
	return out
}

func (s *Service) orderedMatches(m map[string]stops.Match) []stops.Match {
	out := make([]stops.Match, 0, len(m))
	for _, dir := range s.stops.Directions() {
		if match, ok := m[dir]; ok {
			out = append(out, match)
		}
	}
	return out
}

func summary(b mapdata.Building, c mapdata.Centroid) BuildingSummary {
	return BuildingSummary{
		ID:        b.ID,
		Name:      b.Name,
		Address:   b.StreetAddress,
		Lat:       c.Lat,
		Lon:       c.Lon,
		Located:   c.Defined(),
		NodeCount: len(b.PerimeterIDs),
	}
}
