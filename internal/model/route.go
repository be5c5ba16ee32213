package model

import "math"

// Route connects a source station to a destination station.  Routes are
// directional: A→B and B→A are distinct rows.
type Route struct {
	ID            uint64 // routes.id
	SourceID      uint64 // routes.source_id
	DestinationID uint64 // routes.destination_id
}

// Distance returns the planar distance between two stations, truncated
// to an integer.  This is deliberately not geodesic: the coordinates are
// treated as points on a plane and the result is floor(sqrt(dlat^2 +
// dlon^2)).  Two stations at identical coordinates have distance 0.
func Distance(source, destination Station) int {
	dLat := source.Latitude - destination.Latitude
	dLon := source.Longitude - destination.Longitude
	return int(math.Sqrt(dLat*dLat + dLon*dLon))
}
