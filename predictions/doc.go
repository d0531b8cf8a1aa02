// Package predictions reads live transit data from GTFS-Realtime feeds:
// arrival predictions from TripUpdates and bus positions from
// VehiclePositions.
//
// Fetching is the only blocking operation in the service. Every call takes a
// context and the HTTP client carries a timeout. Each feed URL is downloaded
// at most once per TTL: the decoded FeedMessage is cached and concurrent
// misses share one download. Per-stop and per-route answers are extracted
// from the cached message on every call, so countdowns stay current.
package predictions
