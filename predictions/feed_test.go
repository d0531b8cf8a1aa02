package predictions

import (
	"testing"
	"time"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"
)

var testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type stopArrival struct {
	stopID  string
	at      time.Time
	skipped bool
}

func tripUpdate(id, route, vehicle string, direction uint32, arrivals ...stopArrival) *gtfsrtpb.FeedEntity {
	stus := make([]*gtfsrtpb.TripUpdate_StopTimeUpdate, 0, len(arrivals))
	for _, a := range arrivals {
		stu := &gtfsrtpb.TripUpdate_StopTimeUpdate{
			StopId:  proto.String(a.stopID),
			Arrival: &gtfsrtpb.TripUpdate_StopTimeEvent{Time: proto.Int64(a.at.Unix())},
		}
		if a.skipped {
			stu.ScheduleRelationship = gtfsrtpb.TripUpdate_StopTimeUpdate_SKIPPED.Enum()
		}
		stus = append(stus, stu)
	}
	return &gtfsrtpb.FeedEntity{
		Id: proto.String(id),
		TripUpdate: &gtfsrtpb.TripUpdate{
			Trip: &gtfsrtpb.TripDescriptor{
				TripId:      proto.String(id),
				RouteId:     proto.String(route),
				DirectionId: proto.Uint32(direction),
			},
			Vehicle:        &gtfsrtpb.VehicleDescriptor{Id: proto.String(vehicle)},
			StopTimeUpdate: stus,
		},
	}
}

func testFeed() *gtfsrtpb.FeedMessage {
	return &gtfsrtpb.FeedMessage{
		Header: &gtfsrtpb.FeedHeader{
			GtfsRealtimeVersion: proto.String("2.0"),
			Timestamp:           proto.Uint64(uint64(testNow.Unix())),
		},
		Entity: []*gtfsrtpb.FeedEntity{
			tripUpdate("t1", "201", "8001", 0,
				stopArrival{stopID: "18003", at: testNow.Add(12 * time.Minute)},
				stopArrival{stopID: "1845", at: testNow.Add(15 * time.Minute)},
			),
			tripUpdate("t2", "201", "8002", 0,
				stopArrival{stopID: "18003", at: testNow.Add(4 * time.Minute)},
			),
			tripUpdate("t3", "201", "8003", 1,
				stopArrival{stopID: "18003", at: testNow.Add(-2 * time.Minute)},
			),
			tripUpdate("t4", "93", "8004", 1,
				stopArrival{stopID: "18003", at: testNow.Add(1 * time.Minute)},
			),
			tripUpdate("t5", "201", "8005", 1,
				stopArrival{stopID: "18003", at: testNow.Add(2 * time.Minute), skipped: true},
			),
			{Id: proto.String("no-trip-update")},
		},
	}
}

func TestArrivalsForStop(t *testing.T) {
	got := ArrivalsForStop(testFeed(), "18003", "201", testNow, 0)

	if len(got) != 2 {
		t.Fatalf("expected 2 arrivals, got %d: %+v", len(got), got)
	}
	if got[0].VehicleID != "8002" || got[0].Minutes != 4 {
		t.Errorf("first arrival = %+v, want vehicle 8002 in 4 min", got[0])
	}
	if got[1].VehicleID != "8001" || got[1].Minutes != 12 {
		t.Errorf("second arrival = %+v, want vehicle 8001 in 12 min", got[1])
	}
	if got[0].Route != "201" || got[0].Direction != "0" || got[0].StopID != "18003" {
		t.Errorf("unexpected fields: %+v", got[0])
	}
}

func TestArrivalsForStop_AnyRoute(t *testing.T) {
	got := ArrivalsForStop(testFeed(), "18003", "", testNow, 0)
	if len(got) != 3 {
		t.Fatalf("expected 3 arrivals across routes, got %d", len(got))
	}
	if got[0].VehicleID != "8004" {
		t.Errorf("soonest arrival should be route 93, got %+v", got[0])
	}
}

func TestArrivalsForStop_Limit(t *testing.T) {
	got := ArrivalsForStop(testFeed(), "18003", "", testNow, 1)
	if len(got) != 1 || got[0].VehicleID != "8004" {
		t.Errorf("limit should keep the soonest arrival, got %+v", got)
	}
}

func TestArrivalsForStop_NoMatches(t *testing.T) {
	tests := []struct {
		name string
		fm   *gtfsrtpb.FeedMessage
		stop string
	}{
		{"unknown stop", testFeed(), "nope"},
		{"empty feed", &gtfsrtpb.FeedMessage{}, "18003"},
		{"nil feed", nil, "18003"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ArrivalsForStop(tt.fm, tt.stop, "", testNow, 0)
			if got == nil || len(got) != 0 {
				t.Errorf("expected empty non-nil result, got %+v", got)
			}
		})
	}
}
