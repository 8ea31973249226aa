package geo

import (
	"math"
	"testing"
)

func TestHaversine_SamePointIsZero(t *testing.T) {
	if d := Haversine(-25.96, 32.58, -25.96, 32.58); d != 0 {
		t.Fatalf("expected 0 for identical points, got %f", d)
	}
}

func TestHaversine_Symmetry(t *testing.T) {
	a := Haversine(-25.960, 32.580, -25.970, 32.590)
	b := Haversine(-25.970, 32.590, -25.960, 32.580)
	if math.Abs(a-b) > 1e-9 {
		t.Fatalf("expected symmetric distance, got %f vs %f", a, b)
	}
}

func TestHaversine_ShortDistance(t *testing.T) {
	// Two points roughly 1.5 km apart in Maputo.
	d := Haversine(-25.960, 32.580, -25.970, 32.590)
	if d < 1.0 || d > 2.0 {
		t.Fatalf("expected ~1.5 km, got %f", d)
	}
}

func TestHaversine_KnownDistance(t *testing.T) {
	// London (51.5074, -0.1278) to Paris (48.8566, 2.3522) ~= 344 km.
	d := Haversine(51.5074, -0.1278, 48.8566, 2.3522)
	if d < 330 || d > 360 {
		t.Fatalf("expected ~344 km London-Paris, got %f", d)
	}
}

func TestHaversine_NonNegative(t *testing.T) {
	cases := [][4]float64{
		{0, 0, 0, 180},
		{90, 0, -90, 0},
		{12.34, -56.78, -12.34, 56.78},
	}
	for _, c := range cases {
		if d := Haversine(c[0], c[1], c[2], c[3]); d < 0 {
			t.Fatalf("negative distance for %v: %f", c, d)
		}
	}
}
