package geo

import (
	"math"
	"testing"
)

func TestDistanceKmZeroForSamePoint(t *testing.T) {
	d := DistanceKm(22.5726, 88.3639, 22.5726, 88.3639)
	if d != 0 {
		t.Fatalf("expected 0, got %f", d)
	}
}

func TestDistanceKmKolkataDelhi(t *testing.T) {
	// Kolkata to Delhi is roughly 1318 km great-circle.
	d := DistanceKm(22.5726, 88.3639, 28.7041, 77.1025)
	if math.Abs(d-1318) > 15 {
		t.Fatalf("expected ~1318 km, got %f", d)
	}
}

func TestDistanceKmSymmetric(t *testing.T) {
	a := DistanceKm(22.5726, 88.3639, 22.6420, 88.4312)
	b := DistanceKm(22.6420, 88.4312, 22.5726, 88.3639)
	if math.Abs(a-b) > 1e-9 {
		t.Fatalf("distance not symmetric: %f vs %f", a, b)
	}
	if a <= 0 || a > 20 {
		t.Fatalf("implausible intra-city distance: %f", a)
	}
}
