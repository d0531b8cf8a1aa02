package utils

import (
	"math"
	"time"
)

// Iso8601Now returns the current time in ISO8601 format
func Iso8601Now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// Iso8601FromUnixSeconds converts Unix timestamp to ISO8601 format
func Iso8601FromUnixSeconds(sec int64) string {
	return time.Unix(sec, 0).UTC().Format(time.RFC3339)
}

// MinutesUntil returns whole minutes from now until t, rounded down.
// Arrivals already in the past yield a negative value.
func MinutesUntil(now, t time.Time) int {
	return int(math.Floor(t.Sub(now).Minutes()))
}
