package predictions

import (
	"sort"
	"strconv"
	"time"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"

	"github.com/theoremus-urban-solutions/campusmap/utils"
)

// ArrivalsForStop extracts the upcoming arrivals at stopID from a TripUpdates
// feed, soonest first. When route is not empty, trips of other routes are
// ignored. Skipped stops and arrivals before now are dropped; max <= 0 means
// no limit.
func ArrivalsForStop(fm *gtfsrtpb.FeedMessage, stopID, route string, now time.Time, max int) []Prediction {
	out := []Prediction{}
	for _, e := range fm.GetEntity() {
		tu := e.GetTripUpdate()
		if tu == nil {
			continue
		}
		trip := tu.GetTrip()
		if route != "" && trip.GetRouteId() != "" && trip.GetRouteId() != route {
			continue
		}
		direction := ""
		if trip != nil && trip.DirectionId != nil {
			direction = strconv.FormatUint(uint64(trip.GetDirectionId()), 10)
		}
		for _, stu := range tu.GetStopTimeUpdate() {
			if stu.GetStopId() != stopID {
				continue
			}
			if stu.GetScheduleRelationship() == gtfsrtpb.TripUpdate_StopTimeUpdate_SKIPPED {
				continue
			}
			epoch := stu.GetArrival().GetTime()
			if epoch == 0 {
				epoch = stu.GetDeparture().GetTime()
			}
			if epoch == 0 {
				continue
			}
			at := time.Unix(epoch, 0).UTC()
			if at.Before(now) {
				continue
			}
			out = append(out, Prediction{
				VehicleID:   tu.GetVehicle().GetId(),
				Route:       trip.GetRouteId(),
				Direction:   direction,
				StopID:      stopID,
				ArrivalTime: at,
				Minutes:     utils.MinutesUntil(now, at),
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ArrivalTime.Before(out[j].ArrivalTime) })
	if max > 0 && len(out) > max {
		out = out[:max]
	}
	return out
}
