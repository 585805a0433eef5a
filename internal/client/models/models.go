// Package models defines client-side data models used by the Nearby Connect CLI.
package models

// User is a nearby-search result. It is produced by the backend and never
// modified by the client.
type User struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	DistanceMiles float64 `json:"distance_miles"`
	LastActive    string  `json:"last_active"`
}

// Default map display deltas attached to every location fix.
const (
	DefaultLatitudeDelta  = 0.0922
	DefaultLongitudeDelta = 0.0421
)

// Location is a device fix. It is replaced as a whole on every fix.
type Location struct {
	Latitude       float64
	Longitude      float64
	LatitudeDelta  float64
	LongitudeDelta float64
}

// NewLocation builds a Location with the default display deltas.
func NewLocation(lat, lon float64) Location {
	return Location{
		Latitude:       lat,
		Longitude:      lon,
		LatitudeDelta:  DefaultLatitudeDelta,
		LongitudeDelta: DefaultLongitudeDelta,
	}
}

// Blip is the rendered, selectable form of one nearby user. Angle is in
// degrees within [0,360), Radius in pixels from the radar centre.
type Blip struct {
	ID            string
	Name          string
	DistanceMiles float64
	Angle         float64
	Radius        float64
	Selected      bool
}
