package campus

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/theoremus-urban-solutions/campusmap/config"
	"github.com/theoremus-urban-solutions/campusmap/mapdata"
	"github.com/theoremus-urban-solutions/campusmap/predictions"
	"github.com/theoremus-urban-solutions/campusmap/stops"
)

// Load reads the map and stop files named in cfg and builds a Service
func Load(ctx context.Context, cfg config.AppConfig) (*Service, error) {
	data, err := mapdata.LoadOSMFile(ctx, cfg.Data.OSMFile)
	if err != nil {
		return nil, fmt.Errorf("load map %s: %w", cfg.Data.OSMFile, err)
	}
	stopList, report, err := stops.LoadFile(cfg.Data.StopsFile)
	if err != nil {
		return nil, fmt.Errorf("load stops %s: %w", cfg.Data.StopsFile, err)
	}
	if cfg.Predictions.TripUpdatesURL == "" {
		slog.Info("no trip updates feed configured, predictions disabled")
	}
	if cfg.Predictions.VehiclePositionsURL == "" {
		slog.Info("no vehicle positions feed configured, live buses disabled")
	}
	arrivals, vehicles := predictions.NewSources(cfg.Predictions)
	s := New(Dataset{Map: data, Stops: stopList, Report: report}, Realtime{Arrivals: arrivals, Vehicles: vehicles})
	st := s.Stats()
	slog.Info("campus data ready",
		"nodes", st.Nodes,
		"buildings", st.Buildings,
		"stops", st.Stops,
		"routes", st.Routes,
		"skipped_stop_rows", st.SkippedStopRows,
		"directions", st.Directions)
	return s, nil
}
