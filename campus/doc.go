// Package campus ties the map, the stop directory and the arrival predictions
// together behind one read-only Service.
//
// A Service is built once at startup and then shared by the HTTP API and the
// console without locking:
//
//	svc, err := campus.Load(ctx, config.Config)
//	if err != nil {
//		return err
//	}
//	for _, b := range svc.FindBuildingsByNameSubstring("library", false) {
//		fmt.Println(b.Name, b.Lat, b.Lon)
//	}
//
// Centroids are recomputed on every query from the frozen node index. A
// building whose perimeter ids all miss the index is reported with
// Located == false rather than at (0, 0). The unresolved and undefined
// counts are measured once in New and published as gauges.
//
// Routes and their per-direction polylines come from the stop table. Live
// bus positions and arrival predictions come from the GTFS-realtime feeds
// passed in Realtime; a nil member answers predictions.ErrDisabled.
package campus
