// Package utils provides small shared helpers for the campusmap packages.
//
// It contains:
//   - Great-circle distance between coordinate pairs, in miles
//   - Distance formatting for display
//   - Time formatting and arrival countdown helpers
package utils
