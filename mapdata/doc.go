/*
Package mapdata holds the campus map: point nodes, buildings, and the
centroid aggregation that places a building on the map.

The package is data-source agnostic at its core. NewNodeIndex and
NewBuildings accept plain records; LoadOSM is one producer of those records,
reading an OpenStreetMap XML document.

# Basic Usage

	data, err := mapdata.LoadOSMFile(ctx, "data/nu.osm")
	if err != nil {
	    log.Fatal(err)
	}
	index := mapdata.NewNodeIndex(data.Nodes)
	buildings := mapdata.NewBuildings(data.Buildings)

	b, ok := buildings.Get(123456)
	if ok {
	    c := mapdata.BuildingCentroid(b, index)
	    if c.Defined() {
	        fmt.Println(c.Lat, c.Lon)
	    }
	}

# Freezing

NewNodeIndex copies and sorts its input once. The index is never mutated
afterwards and is safe for concurrent readers without locking.

# Centroid Sentinel

A building none of whose perimeter ids resolve has centroid (0, 0). The
sentinel means "centroid undefined"; check Centroid.Defined before using the
position.
*/
package mapdata
