package predictions

import (
	"errors"
	"time"
)

// ErrUnavailable wraps every failure to obtain predictions
var ErrUnavailable = errors.New("predictions unavailable")

// ErrDisabled is returned when no feed is configured
var ErrDisabled = errors.New("predictions disabled")

// Prediction is one predicted arrival of a vehicle at a stop
type Prediction struct {
	VehicleID   string    `json:"vehicle_id"`
	Route       string    `json:"route"`
	Direction   string    `json:"direction"`
	StopID      string    `json:"stop_id"`
	ArrivalTime time.Time `json:"arrival_time"`
	Minutes     int       `json:"minutes"`
}
