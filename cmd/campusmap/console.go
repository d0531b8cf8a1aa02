package main

import (
	"context"
	"fmt"
	"io"

	"github.com/theoremus-urban-solutions/campusmap/campus"
	"github.com/theoremus-urban-solutions/campusmap/utils"
)

const menu = "Enter building name (partial or complete), or * to list, or @ for bus stops, or $ to end>"

// console renders query results as plain text
type console struct {
	w             io.Writer
	svc           *campus.Service
	caseSensitive bool
}

func newConsole(w io.Writer, svc *campus.Service, caseSensitive bool) *console {
	return &console{w: w, svc: svc, caseSensitive: caseSensitive}
}

// handle runs one console command and reports whether the session should end
func (c *console) handle(ctx context.Context, input string) (done bool) {
	switch input {
	case "$":
		return true
	case "*":
		c.printBuildings()
	case "@":
		c.printStops()
	default:
		c.search(ctx, input)
	}
	return false
}

func (c *console) printStats() {
	st := c.svc.Stats()
	fmt.Fprintf(c.w, "# of nodes: %d\n", st.Nodes)
	fmt.Fprintf(c.w, "# of buildings: %d\n", st.Buildings)
	fmt.Fprintf(c.w, "# of bus stops: %d\n", st.Stops)
	if st.SkippedStopRows > 0 {
		fmt.Fprintf(c.w, "# of skipped bus stop lines: %d\n", st.SkippedStopRows)
	}
}

func (c *console) printBuildings() {
	for _, b := range c.svc.ListBuildings() {
		fmt.Fprintf(c.w, "%d: %s, %s\n", b.ID, b.Name, b.Address)
	}
}

func (c *console) printStops() {
	for _, s := range c.svc.ListStops() {
		fmt.Fprintf(c.w, "%s: bus %s, %s, %s, %s, location (%g, %g)\n",
			s.ID, s.Route, s.Name, s.Direction, s.Location, s.Lat, s.Lon)
	}
}

func (c *console) search(ctx context.Context, query string) {
	matches := c.svc.FindBuildingsByNameSubstring(query, c.caseSensitive)
	if len(matches) == 0 {
		fmt.Fprintln(c.w, "No such building")
		return
	}
	for _, m := range matches {
		c.printBuilding(ctx, m.ID)
	}
}

func (c *console) printBuilding(ctx context.Context, id int64) {
	b, ok := c.svc.GetBuilding(id)
	if !ok {
		return
	}
	fmt.Fprintln(c.w, b.Name)
	fmt.Fprintf(c.w, "Address: %s\n", b.Address)
	fmt.Fprintf(c.w, "Building ID: %d\n", b.ID)
	fmt.Fprintf(c.w, "# perimeter nodes: %d\n", b.NodeCount)
	if !b.Located {
		fmt.Fprintln(c.w, "Location: unknown")
		return
	}
	fmt.Fprintf(c.w, "Location: (%.6f, %.6f)\n", b.Lat, b.Lon)
	for _, e := range b.Entrances {
		fmt.Fprintf(c.w, "Entrance: node %d (%.6f, %.6f)\n", e.ID, e.Lat, e.Lon)
	}

	for _, sa := range c.svc.NearestStopsWithPredictions(ctx, b.Lat, b.Lon) {
		fmt.Fprintf(c.w, "Closest %s bus stop:\n", sa.Direction)
		fmt.Fprintf(c.w, "  %s: %s, bus #%s, %s, %s\n",
			sa.Stop.ID, sa.Stop.Name, sa.Stop.Route, sa.Stop.Location, utils.PresentableDistance(sa.Distance))
		switch {
		case !sa.Available:
			fmt.Fprintln(c.w, "  <<bus predictions unavailable>>")
		case len(sa.Predictions) == 0:
			fmt.Fprintln(c.w, "  <<no predictions available>>")
		default:
			for _, p := range sa.Predictions {
				fmt.Fprintf(c.w, "  vehicle #%s on route %s travelling %s to arrive in %d mins\n",
					p.VehicleID, sa.Stop.Route, sa.Direction, p.Minutes)
			}
		}
	}
}
