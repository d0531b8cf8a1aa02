package campus

import (
	"github.com/theoremus-urban-solutions/campusmap/mapdata"
	"github.com/theoremus-urban-solutions/campusmap/predictions"
	"github.com/theoremus-urban-solutions/campusmap/stops"
)

// BuildingSummary is a building as listed by search and list operations.
// Lat and Lon are only meaningful when Located is true.
type BuildingSummary struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Located   bool    `json:"located"`
	NodeCount int     `json:"node_count"`
}

// BuildingDetail is the full view of one building
type BuildingDetail struct {
	BuildingSummary
	Centroid     mapdata.Centroid `json:"centroid"`
	Entrances    []mapdata.Node   `json:"entrances"`
	NearestStops []stops.Match    `json:"nearest_stops"`
}

// StopArrivals is the nearest stop in one direction with its upcoming arrivals.
// When Available is false the predictions could not be fetched and Error says why.
type StopArrivals struct {
	Direction   string                   `json:"direction"`
	Stop        stops.Stop               `json:"stop"`
	Distance    float64                  `json:"distance"`
	Available   bool                     `json:"available"`
	Error       string                   `json:"error,omitempty"`
	Predictions []predictions.Prediction `json:"predictions"`
}

// Stats counts what was loaded
type Stats struct {
	Nodes           int      `json:"nodes"`
	Buildings       int      `json:"buildings"`
	Stops           int      `json:"stops"`
	Routes          int      `json:"routes"`
	SkippedStopRows int      `json:"skipped_stop_rows"`
	Directions      []string `json:"directions"`
}

// Dataset is the raw input of a Service
type Dataset struct {
	Map    *mapdata.MapData
	Stops  []stops.Stop
	Report *stops.LoadReport
}
