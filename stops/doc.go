// Package stops holds the transit stop list and answers nearest-stop queries
// partitioned by direction.
//
// A Directory is built once from ingested stops and never changes. Queries
// return Match values carrying the computed distance; stored stops are never
// written to, so one Directory can serve any number of concurrent readers.
package stops
