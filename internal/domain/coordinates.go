package domain

import "fmt"

// Immutable geographic coordinates (latitude, longitude).
type Coordinates struct {
	Lat float64
	Lon float64
}

// Return coordinates as "lat,lon" for external API parameters and cache keys.
func (c Coordinates) Key() string {
	return fmt.Sprintf("%.6f,%.6f", c.Lat, c.Lon)
}
