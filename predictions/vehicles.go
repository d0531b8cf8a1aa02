package predictions

import (
	"sort"
	"strconv"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"

	"github.com/theoremus-urban-solutions/campusmap/utils"
)

// Vehicle is the last reported position of a bus
type Vehicle struct {
	ID        string  `json:"vehicle_id"`
	Label     string  `json:"label,omitempty"`
	Route     string  `json:"route"`
	TripID    string  `json:"trip_id,omitempty"`
	Direction string  `json:"direction,omitempty"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Heading   float64 `json:"heading"`
	UpdatedAt string  `json:"updated_at,omitempty"`
}

// VehiclesFromFeed collects the positioned vehicles of a VehiclePositions
// feed, sorted by route then vehicle id. When routes are given, vehicles on
// other routes are left out.
func VehiclesFromFeed(fm *gtfsrtpb.FeedMessage, routes ...string) []Vehicle {
	want := map[string]struct{}{}
	for _, r := range routes {
		want[r] = struct{}{}
	}

	out := []Vehicle{}
	for _, e := range fm.GetEntity() {
		vp := e.GetVehicle()
		if vp == nil || vp.GetPosition() == nil {
			continue
		}
		trip := vp.GetTrip()
		if len(want) > 0 {
			if _, ok := want[trip.GetRouteId()]; !ok {
				continue
			}
		}
		pos := vp.GetPosition()
		v := Vehicle{
			ID:      vp.GetVehicle().GetId(),
			Label:   vp.GetVehicle().GetLabel(),
			Route:   trip.GetRouteId(),
			TripID:  trip.GetTripId(),
			Lat:     float64(pos.GetLatitude()),
			Lon:     float64(pos.GetLongitude()),
			Heading: float64(pos.GetBearing()),
		}
		if v.ID == "" {
			v.ID = e.GetId()
		}
		if trip != nil && trip.DirectionId != nil {
			v.Direction = strconv.FormatUint(uint64(trip.GetDirectionId()), 10)
		}
		if ts := vp.GetTimestamp(); ts > 0 {
			v.UpdatedAt = utils.Iso8601FromUnixSeconds(int64(ts))
		}
		out = append(out, v)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Route != out[j].Route {
			return out[i].Route < out[j].Route
		}
		return out[i].ID < out[j].ID
	})
	return out
}
