package server

import (
	"math"
	"strconv"
	"strings"
)

// QueryError is a client mistake in a query parameter
type QueryError struct{ Msg string }

func (e *QueryError) Error() string { return e.Msg }

func parseCoordinate(name, s string, limit float64) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, &QueryError{Msg: "You must provide " + name + "."}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || v < -limit || v > limit {
		return 0, &QueryError{Msg: name + " must be a number between -" + strconv.FormatFloat(limit, 'f', -1, 64) + " and " + strconv.FormatFloat(limit, 'f', -1, 64) + "."}
	}
	return v, nil
}

func parseBuildingID(s string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, &QueryError{Msg: "Building id must be an integer."}
	}
	return v, nil
}

// parseFlag reads an optional boolean parameter, falling back to def when absent
func parseFlag(name, s string, def bool) (bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, &QueryError{Msg: name + " must be true or false."}
	}
	return v, nil
}
