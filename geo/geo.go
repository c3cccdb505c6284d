/*
Package geo implements the geofence policy for on-site check-ins.

PURPOSE:
  The organization enforces on-site attendance by proximity: a check-in
  is tagged as inside or outside a circular authorized area around the
  workplace. The tag gates a downstream requirement (off-site events
  must carry a photo and a reason) rather than rejecting the event.

DESIGN PRINCIPLES:
  1. Pure functions: distance and range checks have no side effects.
  2. Total: malformed coordinates produce a mathematically defined but
     meaningless result; range validation is the caller's concern.
  3. AreaConfig is loaded once at process start and never mutated.
*/
package geo

import "math"

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371

// Coordinate is a WGS84 position in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// AreaConfig describes the circular authorized work area.
type AreaConfig struct {
	Center   Coordinate `json:"center" yaml:"center"`
	RadiusKm float64    `json:"radius_km" yaml:"radius_km"`
}

// DistanceKm returns the great-circle distance between two coordinates
// in kilometers, via the haversine formula.
func DistanceKm(a, b Coordinate) float64 {
	dLat := radians(b.Lat - a.Lat)
	dLng := radians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(a.Lat))*math.Cos(radians(b.Lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// InRange reports whether a point lies inside the authorized area.
// The boundary itself counts as inside.
func (c AreaConfig) InRange(p Coordinate) bool {
	return DistanceKm(p, c.Center) <= c.RadiusKm
}

func radians(deg float64) float64 {
	return deg * (math.Pi / 180)
}
