package model

// Station is a stop on the rail network.  Latitude and longitude are
// stored as plain coordinates and feed the route distance calculation.
type Station struct {
	ID        uint64  // stations.id
	Name      string  // stations.name
	Latitude  float64 // stations.latitude
	Longitude float64 // stations.longitude
}
