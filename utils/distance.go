package utils

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

const (
	MetersPerMile = 1609.344
	FeetPerMile   = 5280.0
)

// DistanceMiles returns the haversine great-circle distance between two
// lat/lon pairs in miles.
func DistanceMiles(lat1, lon1, lat2, lon2 float64) float64 {
	meters := geo.DistanceHaversine(orb.Point{lon1, lat1}, orb.Point{lon2, lat2})
	return meters / MetersPerMile
}

// PresentableDistance formats a distance in miles for display.
// Short distances are shown in feet.
func PresentableDistance(miles float64) string {
	const feetThreshold = 0.1
	if miles < feetThreshold {
		ft := miles * FeetPerMile
		return fmt.Sprintf("%.0f ft", ft)
	}
	return fmt.Sprintf("%.3f mile%s", miles, ternary(miles == 1, "", "s"))
}

func ternary[T any](cond bool, a, b T) T {
	if cond {
		return a
	}
	return b
}
