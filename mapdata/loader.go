package mapdata

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmxml"
)

// BuildingTagValue is the value of the "building" tag that marks a campus building
const BuildingTagValue = "university"

// entranceValues are the "entrance" tag values that flag a node as an entrance
var entranceValues = map[string]struct{}{
	"yes":      {},
	"main":     {},
	"entrance": {},
}

// MapData is the raw record set read from a map document
type MapData struct {
	Nodes     []Node
	Buildings []Building
}

// LoadOSMFile opens an OSM XML file and reads it with LoadOSM
func LoadOSMFile(ctx context.Context, path string) (*MapData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open map file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return LoadOSM(ctx, f)
}

// LoadOSM reads every node and every university building way from an OSM XML
// document, in document order. Any scanner error aborts the load.
func LoadOSM(ctx context.Context, r io.Reader) (*MapData, error) {
	scanner := osmxml.New(ctx, r)
	defer func() { _ = scanner.Close() }()

	data := &MapData{Nodes: []Node{}, Buildings: []Building{}}
	for scanner.Scan() {
		switch o := scanner.Object().(type) {
		case *osm.Node:
			data.Nodes = append(data.Nodes, nodeFromOSM(o))
		case *osm.Way:
			if o.Tags.Find("building") != BuildingTagValue {
				continue
			}
			data.Buildings = append(data.Buildings, buildingFromOSM(o))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to parse map document: %w", err)
	}
	slog.Info("map document loaded", "nodes", len(data.Nodes), "buildings", len(data.Buildings))
	return data, nil
}

func nodeFromOSM(n *osm.Node) Node {
	_, entrance := entranceValues[n.Tags.Find("entrance")]
	return Node{
		ID:         int64(n.ID),
		Lat:        n.Lat,
		Lon:        n.Lon,
		IsEntrance: entrance,
	}
}

func buildingFromOSM(w *osm.Way) Building {
	ids := make([]int64, 0, len(w.Nodes))
	for _, wn := range w.Nodes {
		ids = append(ids, int64(wn.ID))
	}
	return Building{
		ID:            int64(w.ID),
		Name:          w.Tags.Find("name"),
		StreetAddress: streetAddress(w.Tags.Find("addr:housenumber"), w.Tags.Find("addr:street")),
		PerimeterIDs:  ids,
	}
}

// streetAddress joins a house number and a street, either of which may be empty
func streetAddress(houseNumber, street string) string {
	return strings.TrimSpace(strings.TrimSpace(houseNumber) + " " + strings.TrimSpace(street))
}
