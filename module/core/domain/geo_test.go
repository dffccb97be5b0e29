package domain

import (
	"errors"
	"math"
	"testing"
)

func TestDistanceKm_SamePoint(t *testing.T) {
	a := Coordinate{Lat: 4.0511, Lon: 9.7679}
	d, err := DistanceKm(a, a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != 0 {
		t.Errorf("expected 0, got %f", d)
	}
}

func TestDistanceKm_Symmetry(t *testing.T) {
	a := Coordinate{Lat: 4.0511, Lon: 9.7679}
	b := Coordinate{Lat: 3.8480, Lon: 11.5021}

	ab, err := DistanceKm(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ba, err := DistanceKm(b, a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ab != ba {
		t.Errorf("expected symmetric distance, got %f and %f", ab, ba)
	}
}

func TestDistanceKm_KnownDistance(t *testing.T) {
	// Douala to Yaounde, roughly 210km
	a := Coordinate{Lat: 4.0511, Lon: 9.7679}
	b := Coordinate{Lat: 3.8480, Lon: 11.5021}

	d, err := DistanceKm(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d < 190 || d > 230 {
		t.Errorf("expected ~210km, got %f", d)
	}
}

func TestDistanceKm_InvalidCoordinate(t *testing.T) {
	cases := []struct {
		name string
		a    Coordinate
	}{
		{"lat too high", Coordinate{Lat: 91, Lon: 0}},
		{"lat too low", Coordinate{Lat: -91, Lon: 0}},
		{"lon too high", Coordinate{Lat: 0, Lon: 181}},
		{"lon too low", Coordinate{Lat: 0, Lon: -181}},
		{"nan lat", Coordinate{Lat: math.NaN(), Lon: 0}},
		{"nan lon", Coordinate{Lat: 0, Lon: math.NaN()}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := DistanceKm(tc.a, Coordinate{}); !errors.Is(err, ErrInvalidCoordinate) {
				t.Errorf("expected ErrInvalidCoordinate, got %v", err)
			}
			if _, err := DistanceKm(Coordinate{}, tc.a); !errors.Is(err, ErrInvalidCoordinate) {
				t.Errorf("expected ErrInvalidCoordinate, got %v", err)
			}
		})
	}
}
