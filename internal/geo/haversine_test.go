package geo

import (
	"math"
	"testing"
)

func TestDistanceKm(t *testing.T) {
	cases := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64 // km
		tol                    float64
	}{
		{"same point", -31.95351, 115.85705, -31.95351, 115.85705, 0, 0.001},
		// Perth CBD to Fremantle, roughly 19 km.
		{"perth to fremantle", -31.95351, 115.85705, -32.0569, 115.7439, 16.0, 2.5},
		// Perth to Sydney, roughly 3290 km.
		{"perth to sydney", -31.95351, 115.85705, -33.8688, 151.2093, 3291, 25},
		// One degree of latitude at the equator is ~111.3 km with R=6378.137.
		{"one degree latitude", 0, 0, 1, 0, 111.32, 0.5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DistanceKm(tc.lat1, tc.lon1, tc.lat2, tc.lon2)
			if math.Abs(got-tc.want) > tc.tol {
				t.Errorf("DistanceKm() = %f, want %f ± %f", got, tc.want, tc.tol)
			}
		})
	}
}

func TestDistanceKmSymmetric(t *testing.T) {
	a := DistanceKm(-31.9, 115.8, -32.1, 116.0)
	b := DistanceKm(-32.1, 116.0, -31.9, 115.8)
	if math.Abs(a-b) > 1e-9 {
		t.Errorf("distance not symmetric: %f vs %f", a, b)
	}
}
