package campus

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/theoremus-urban-solutions/campusmap/mapdata"
	"github.com/theoremus-urban-solutions/campusmap/metrics"
	"github.com/theoremus-urban-solutions/campusmap/predictions"
	"github.com/theoremus-urban-solutions/campusmap/stops"
)

type fakeSource struct {
	mu       sync.Mutex
	calls    int
	arrivals map[string][]predictions.Prediction
	fail     map[string]error
}

func (f *fakeSource) Arrivals(_ context.Context, stop stops.Stop) ([]predictions.Prediction, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if err, ok := f.fail[stop.ID]; ok {
		return nil, err
	}
	return f.arrivals[stop.ID], nil
}

type fakeVehicles struct {
	routes  []string
	vehicle []predictions.Vehicle
	err     error
}

func (f *fakeVehicles) Vehicles(_ context.Context, routes ...string) ([]predictions.Vehicle, error) {
	f.routes = routes
	if f.err != nil {
		return nil, f.err
	}
	return f.vehicle, nil
}

func testDataset() Dataset {
	return Dataset{
		Map: &mapdata.MapData{
			Nodes: []mapdata.Node{
				{ID: 4, Lat: 42.01, Lon: -87.0},
				{ID: 1, Lat: 42.0, Lon: -87.0},
				{ID: 3, Lat: 42.01, Lon: -87.01},
				{ID: 2, Lat: 42.0, Lon: -87.01, IsEntrance: true},
			},
			Buildings: []mapdata.Building{
				{ID: 100, Name: "Main Library", StreetAddress: "1970 Campus Dr", PerimeterIDs: []int64{1, 2, 3, 4}},
				{ID: 200, Name: "Tech Institute", PerimeterIDs: []int64{1, 99}},
				{ID: 300, Name: "Ghost Hall", PerimeterIDs: []int64{98, 99}},
			},
		},
		Stops: []stops.Stop{
			{ID: "N1", Route: "201", Name: "Far North", Direction: "Northbound", Lat: 42.05, Lon: -87.0},
			{ID: "S1", Route: "201", Name: "South", Direction: "Southbound", Lat: 41.99, Lon: -87.0},
			{ID: "N2", Route: "201", Name: "Near North", Direction: "Northbound", Lat: 42.006, Lon: -87.005},
		},
		Report: &stops.LoadReport{Loaded: 3, Skipped: []*stops.LineError{{Line: 4, Reason: "bad"}}},
	}
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestService_Stats(t *testing.T) {
	s := New(testDataset(), Realtime{})
	st := s.Stats()
	if st.Nodes != 4 || st.Buildings != 3 || st.Stops != 3 || st.Routes != 1 || st.SkippedStopRows != 1 {
		t.Errorf("unexpected stats %+v", st)
	}
	if len(st.Directions) != 2 || st.Directions[0] != "Northbound" || st.Directions[1] != "Southbound" {
		t.Errorf("unexpected directions %v", st.Directions)
	}
}

func TestService_ListBuildings(t *testing.T) {
	s := New(testDataset(), Realtime{})
	got := s.ListBuildings()
	if len(got) != 3 {
		t.Fatalf("expected 3 buildings, got %d", len(got))
	}
	if got[0].ID != 100 || !got[0].Located || !approx(got[0].Lat, 42.005) || !approx(got[0].Lon, -87.005) {
		t.Errorf("unexpected first summary %+v", got[0])
	}
	if got[0].NodeCount != 4 || got[0].Address != "1970 Campus Dr" {
		t.Errorf("unexpected first summary %+v", got[0])
	}
	if !got[1].Located || !approx(got[1].Lat, 42.0) {
		t.Errorf("partially resolved building should be located at its resolved node, got %+v", got[1])
	}
	if got[2].Located || got[2].Lat != 0 || got[2].Lon != 0 {
		t.Errorf("unresolvable building should not be located, got %+v", got[2])
	}
}

func TestService_FindBuildingsByNameSubstring(t *testing.T) {
	s := New(testDataset(), Realtime{})
	tests := []struct {
		name          string
		query         string
		caseSensitive bool
		want          []int64
	}{
		{"insensitive", "LIBRARY", false, []int64{100}},
		{"sensitive miss", "library", true, []int64{}},
		{"sensitive hit", "Hall", true, []int64{300}},
		{"shared substring", "i", false, []int64{100, 200}},
		{"blank", "   ", false, []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.FindBuildingsByNameSubstring(tt.query, tt.caseSensitive)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d results, want %d: %+v", len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i].ID != tt.want[i] {
					t.Errorf("result %d = %d, want %d", i, got[i].ID, tt.want[i])
				}
			}
		})
	}
}

func TestService_GetBuildingCentroid(t *testing.T) {
	s := New(testDataset(), Realtime{})

	c, ok := s.GetBuildingCentroid(200)
	if !ok || c.Resolved != 1 || c.Unresolved != 1 || !c.Defined() {
		t.Errorf("partial centroid = %+v, %v", c, ok)
	}
	c, ok = s.GetBuildingCentroid(300)
	if !ok || c.Defined() || c.Unresolved != 2 {
		t.Errorf("undefined centroid = %+v, %v", c, ok)
	}
	if _, ok := s.GetBuildingCentroid(12345); ok {
		t.Error("unknown building should report false")
	}
}

func TestService_GetBuilding(t *testing.T) {
	s := New(testDataset(), Realtime{})

	d, ok := s.GetBuilding(100)
	if !ok {
		t.Fatal("building 100 not found")
	}
	if len(d.Entrances) != 1 || d.Entrances[0].ID != 2 {
		t.Errorf("unexpected entrances %+v", d.Entrances)
	}
	if len(d.NearestStops) != 2 {
		t.Fatalf("expected one stop per direction, got %+v", d.NearestStops)
	}
	if d.NearestStops[0].Stop.ID != "N2" || d.NearestStops[1].Stop.ID != "S1" {
		t.Errorf("unexpected nearest stops %+v", d.NearestStops)
	}

	ghost, ok := s.GetBuilding(300)
	if !ok || ghost.Located || len(ghost.NearestStops) != 0 {
		t.Errorf("unlocated building should have no nearest stops, got %+v", ghost)
	}
	if _, ok := s.GetBuilding(1); ok {
		t.Error("unknown building should report false")
	}
}

func TestService_NearestStops(t *testing.T) {
	s := New(testDataset(), Realtime{})
	got := s.NearestStops(42.0, -87.0)
	if len(got) != 2 {
		t.Fatalf("expected 2 directions, got %d", len(got))
	}
	if got["Northbound"].Stop.ID != "N2" || got["Southbound"].Stop.ID != "S1" {
		t.Errorf("unexpected matches %+v", got)
	}
	if got["Southbound"].Distance <= 0 {
		t.Errorf("distance should be positive, got %v", got["Southbound"].Distance)
	}
}

func TestService_NearestStopsWithPredictions(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 4, 0, 0, time.UTC)
	src := &fakeSource{
		arrivals: map[string][]predictions.Prediction{
			"N2": {{VehicleID: "8002", StopID: "N2", ArrivalTime: at, Minutes: 4}},
		},
		fail: map[string]error{"S1": predictions.ErrUnavailable},
	}
	s := New(testDataset(), Realtime{Arrivals: src})

	got := s.NearestStopsWithPredictions(context.Background(), 42.005, -87.005)
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if src.calls != 2 {
		t.Errorf("expected 2 source calls, got %d", src.calls)
	}
	north, south := got[0], got[1]
	if north.Direction != "Northbound" || !north.Available || len(north.Predictions) != 1 {
		t.Errorf("unexpected north result %+v", north)
	}
	if south.Direction != "Southbound" || south.Available || south.Error == "" || len(south.Predictions) != 0 {
		t.Errorf("failed fetch should degrade to unavailable, got %+v", south)
	}
}

func TestService_NearestStopsWithPredictions_Disabled(t *testing.T) {
	s := New(testDataset(), Realtime{})
	got := s.NearestStopsWithPredictions(context.Background(), 42.0, -87.0)
	for _, r := range got {
		if r.Available {
			t.Errorf("predictions should be unavailable without a feed, got %+v", r)
		}
	}
}

func TestService_StopPredictions(t *testing.T) {
	src := &fakeSource{arrivals: map[string][]predictions.Prediction{"S1": {{VehicleID: "1"}}}}
	s := New(testDataset(), Realtime{Arrivals: src})

	got, err := s.StopPredictions(context.Background(), "S1")
	if err != nil || len(got) != 1 {
		t.Errorf("StopPredictions() = %+v, %v", got, err)
	}
	if _, err := s.StopPredictions(context.Background(), "nope"); !errors.Is(err, ErrStopNotFound) {
		t.Errorf("expected ErrStopNotFound, got %v", err)
	}
}

func TestService_ListStops(t *testing.T) {
	s := New(testDataset(), Realtime{})
	got := s.ListStops()
	want := []string{"N1", "N2", "S1"}
	if len(got) != len(want) {
		t.Fatalf("expected %d stops, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].ID != want[i] {
			t.Errorf("stop %d = %s, want %s", i, got[i].ID, want[i])
		}
	}
}

func TestService_Empty(t *testing.T) {
	s := New(Dataset{}, Realtime{})
	if len(s.ListBuildings()) != 0 || len(s.ListStops()) != 0 {
		t.Error("empty service should list nothing")
	}
	if got := s.NearestStops(42, -87); got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil map, got %v", got)
	}
	if got := s.NearestStopsWithPredictions(context.Background(), 42, -87); len(got) != 0 {
		t.Errorf("expected no results, got %v", got)
	}
}

func TestNew_DatasetGauges(t *testing.T) {
	New(testDataset(), Realtime{})
	if got := testutil.ToFloat64(metrics.UnresolvedPerimeterIDs); got != 3 {
		t.Errorf("unresolved perimeter ids = %v, want 3", got)
	}
	if got := testutil.ToFloat64(metrics.UndefinedCentroids); got != 1 {
		t.Errorf("undefined centroids = %v, want 1", got)
	}

	s := New(testDataset(), Realtime{})
	for i := 0; i < 5; i++ {
		s.ListBuildings()
		s.GetBuilding(300)
	}
	if got := testutil.ToFloat64(metrics.UndefinedCentroids); got != 1 {
		t.Errorf("queries should not move the gauge, got %v", got)
	}
}

func TestService_Routes(t *testing.T) {
	s := New(testDataset(), Realtime{})
	got := s.Routes()
	if len(got) != 1 || got[0].ID != "201" || got[0].StopCount != 3 {
		t.Fatalf("unexpected routes %+v", got)
	}
	if len(got[0].Directions) != 2 {
		t.Errorf("unexpected directions %v", got[0].Directions)
	}

	geo, ok := s.RouteGeometry("201")
	if !ok || len(geo["Northbound"]) != 2 || len(geo["Southbound"]) != 1 {
		t.Errorf("RouteGeometry() = %+v, %v", geo, ok)
	}
	if _, ok := s.RouteGeometry("999"); ok {
		t.Error("unknown route should report false")
	}
}

func TestService_RouteBuses(t *testing.T) {
	veh := &fakeVehicles{vehicle: []predictions.Vehicle{{ID: "8101", Route: "201"}}}
	s := New(testDataset(), Realtime{Vehicles: veh})

	got, err := s.RouteBuses(context.Background(), "201")
	if err != nil || len(got) != 1 {
		t.Fatalf("RouteBuses() = %+v, %v", got, err)
	}
	if len(veh.routes) != 1 || veh.routes[0] != "201" {
		t.Errorf("expected a filter on route 201, got %v", veh.routes)
	}
	if _, err := s.RouteBuses(context.Background(), "999"); !errors.Is(err, ErrRouteNotFound) {
		t.Errorf("expected ErrRouteNotFound, got %v", err)
	}
}

func TestService_LiveBuses(t *testing.T) {
	veh := &fakeVehicles{vehicle: []predictions.Vehicle{{ID: "8101", Route: "201"}}}
	s := New(testDataset(), Realtime{Vehicles: veh})

	got, err := s.LiveBuses(context.Background())
	if err != nil || len(got) != 1 {
		t.Fatalf("LiveBuses() = %+v, %v", got, err)
	}
	if len(veh.routes) != 1 || veh.routes[0] != "201" {
		t.Errorf("expected the served routes as filter, got %v", veh.routes)
	}

	empty := New(Dataset{}, Realtime{Vehicles: veh})
	got, err = empty.LiveBuses(context.Background())
	if err != nil || got == nil || len(got) != 0 {
		t.Errorf("no routes should yield an empty list, got %+v, %v", got, err)
	}
}

func TestService_BusesDisabled(t *testing.T) {
	s := New(testDataset(), Realtime{})
	if _, err := s.LiveBuses(context.Background()); !errors.Is(err, predictions.ErrDisabled) {
		t.Errorf("expected ErrDisabled, got %v", err)
	}
	if _, err := s.RouteBuses(context.Background(), "201"); !errors.Is(err, predictions.ErrDisabled) {
		t.Errorf("expected ErrDisabled, got %v", err)
	}
}
