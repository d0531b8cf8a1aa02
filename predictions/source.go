package predictions

import (
	"context"
	"time"

	"github.com/theoremus-urban-solutions/campusmap/config"
	"github.com/theoremus-urban-solutions/campusmap/stops"
)

// Source returns upcoming arrivals for a stop
type Source interface {
	Arrivals(ctx context.Context, stop stops.Stop) ([]Prediction, error)
}

// VehicleSource returns live vehicle positions. No routes means every route.
type VehicleSource interface {
	Vehicles(ctx context.Context, routes ...string) ([]Vehicle, error)
}

// NewSources builds the arrival and vehicle sources from configuration.
// A missing feed URL disables that source; both share one cache when they
// point at the same combined feed.
func NewSources(cfg config.PredictionsConfig) (Source, VehicleSource) {
	timeout := time.Duration(cfg.TimeoutMS) * time.Millisecond
	ttl := time.Duration(cfg.CacheTTLSeconds) * time.Second

	var arrivals Source = Disabled{}
	var vehicles VehicleSource = Disabled{}
	var tripFeed *FeedCache
	if cfg.TripUpdatesURL != "" {
		tripFeed = NewFeedCache("trip_updates", NewClient(cfg.TripUpdatesURL, timeout), ttl)
		arrivals = NewFeedSource(tripFeed, cfg.MaxPerStop)
	}
	switch {
	case cfg.VehiclePositionsURL == "":
	case cfg.VehiclePositionsURL == cfg.TripUpdatesURL:
		vehicles = NewVehicleFeedSource(tripFeed)
	default:
		vehicles = NewVehicleFeedSource(NewFeedCache("vehicle_positions", NewClient(cfg.VehiclePositionsURL, timeout), ttl))
	}
	return arrivals, vehicles
}

// Disabled is the source used when no feed is configured
type Disabled struct{}

func (Disabled) Arrivals(context.Context, stops.Stop) ([]Prediction, error) {
	return nil, ErrDisabled
}

func (Disabled) Vehicles(context.Context, ...string) ([]Vehicle, error) {
	return nil, ErrDisabled
}

// FeedSource extracts stop arrivals from a cached TripUpdates feed
type FeedSource struct {
	feed *FeedCache
	max  int
	now  func() time.Time
}

// NewFeedSource returns at most max arrivals per stop; max <= 0 means all
func NewFeedSource(feed *FeedCache, max int) *FeedSource {
	return &FeedSource{feed: feed, max: max, now: time.Now}
}

// Arrivals returns the upcoming arrivals at stop, soonest first
func (s *FeedSource) Arrivals(ctx context.Context, stop stops.Stop) ([]Prediction, error) {
	fm, err := s.feed.Message(ctx)
	if err != nil {
		return nil, err
	}
	return ArrivalsForStop(fm, stop.ID, stop.Route, s.now().UTC(), s.max), nil
}

// VehicleFeedSource extracts bus positions from a cached VehiclePositions feed
type VehicleFeedSource struct {
	feed *FeedCache
}

func NewVehicleFeedSource(feed *FeedCache) *VehicleFeedSource {
	return &VehicleFeedSource{feed: feed}
}

func (s *VehicleFeedSource) Vehicles(ctx context.Context, routes ...string) ([]Vehicle, error) {
	fm, err := s.feed.Message(ctx)
	if err != nil {
		return nil, err
	}
	return VehiclesFromFeed(fm, routes...), nil
}
