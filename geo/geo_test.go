package geo_test

import (
	"math"
	"testing"

	"github.com/warp/presence-engine/geo"
)

var (
	bangkok    = geo.Coordinate{Lat: 13.7563, Lng: 100.5018}
	chiangMai  = geo.Coordinate{Lat: 18.7883, Lng: 98.9853}
	officeArea = geo.AreaConfig{Center: bangkok, RadiusKm: 0.5}
)

func TestDistanceKm_SelfIsZero(t *testing.T) {
	points := []geo.Coordinate{
		{},
		bangkok,
		{Lat: -33.8688, Lng: 151.2093},
		{Lat: 90, Lng: 0},
	}
	for _, p := range points {
		if d := geo.DistanceKm(p, p); d != 0 {
			t.Errorf("DistanceKm(%v, %v) = %v, want 0", p, p, d)
		}
	}
}

func TestDistanceKm_Symmetry(t *testing.T) {
	ab := geo.DistanceKm(bangkok, chiangMai)
	ba := geo.DistanceKm(chiangMai, bangkok)
	if math.Abs(ab-ba) > 1e-9 {
		t.Errorf("distance not symmetric: %v vs %v", ab, ba)
	}
}

func TestDistanceKm_KnownPair(t *testing.T) {
	// Bangkok to Chiang Mai is roughly 586 km great-circle.
	d := geo.DistanceKm(bangkok, chiangMai)
	if d < 580 || d > 595 {
		t.Errorf("Bangkok-Chiang Mai distance = %v km, want ~586", d)
	}
}

func TestInRange_BoundaryIsInside(t *testing.T) {
	// A point exactly at the center is trivially inside.
	if !officeArea.InRange(bangkok) {
		t.Error("center point should be in range")
	}

	// ~1km east of center is outside a 0.5km radius.
	outside := geo.Coordinate{Lat: bangkok.Lat, Lng: bangkok.Lng + 0.01}
	if officeArea.InRange(outside) {
		t.Errorf("point %v km away should be outside", geo.DistanceKm(outside, bangkok))
	}
}

func TestInRange_MonotonicInRadius(t *testing.T) {
	// GIVEN: A fixed point at some distance from the center
	// WHEN: The radius grows
	// THEN: InRange never flips true -> false
	p := geo.Coordinate{Lat: bangkok.Lat + 0.02, Lng: bangkok.Lng}

	seen := false
	for radius := 0.1; radius <= 10; radius += 0.1 {
		cfg := geo.AreaConfig{Center: bangkok, RadiusKm: radius}
		in := cfg.InRange(p)
		if seen && !in {
			t.Fatalf("InRange flipped true->false at radius %v", radius)
		}
		if in {
			seen = true
		}
	}
	if !seen {
		t.Error("point never came in range; test point too far")
	}
}
