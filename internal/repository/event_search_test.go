package repository

import (
	"math"
	"testing"
)

// Perth CBD and a handful of surrounding suburbs with known rough distances.
var (
	perthLat = -31.95351
	perthLon = 115.85705
)

func rowAt(id uint64, lat, lon float64) EventRow {
	return EventRow{ID: id, Latitude: lat, Longitude: lon}
}

func TestFilterByDistanceRadius(t *testing.T) {
	events := []EventRow{
		rowAt(1, perthLat, perthLon),        // 0 km
		rowAt(2, -32.0569, 115.7439),        // Fremantle, ~19 km
		rowAt(3, -33.8688, 151.2093),        // Sydney, ~3300 km
	}
	got := FilterByDistance(events, perthLat, perthLon, 50, 0)
	if len(got) != 2 {
		t.Fatalf("want 2 events within 50 km, got %d", len(got))
	}
	for _, e := range got {
		if e.ID == 3 {
			t.Fatalf("event %d is outside the radius but was returned", e.ID)
		}
		if e.DistanceKm == nil {
			t.Fatalf("event %d missing distance annotation", e.ID)
		}
		if *e.DistanceKm > 50 {
			t.Fatalf("event %d annotated with distance %.1f beyond radius", e.ID, *e.DistanceKm)
		}
	}
}

func TestFilterByDistanceOrdering(t *testing.T) {
	events := []EventRow{
		rowAt(1, -32.0569, 115.7439), // Fremantle, farther
		rowAt(2, perthLat, perthLon), // centre
		rowAt(3, -31.9810, 115.8190), // South Perth, in between
	}
	got := FilterByDistance(events, perthLat, perthLon, 100, 0)
	if len(got) != 3 {
		t.Fatalf("want 3 events, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if *got[i-1].DistanceKm > *got[i].DistanceKm {
			t.Fatalf("results not sorted by distance: %.2f before %.2f",
				*got[i-1].DistanceKm, *got[i].DistanceKm)
		}
	}
	if got[0].ID != 2 {
		t.Fatalf("nearest event should be the centre, got id %d", got[0].ID)
	}
}

func TestFilterByDistanceIDTiebreak(t *testing.T) {
	// Identical coordinates: ordering must fall back to id.
	events := []EventRow{
		rowAt(9, perthLat, perthLon),
		rowAt(4, perthLat, perthLon),
		rowAt(7, perthLat, perthLon),
	}
	got := FilterByDistance(events, perthLat, perthLon, 10, 0)
	want := []uint64{4, 7, 9}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("position %d: want id %d, got %d", i, id, got[i].ID)
		}
	}
}

func TestFilterByDistanceLimit(t *testing.T) {
	events := []EventRow{
		rowAt(1, perthLat, perthLon),
		rowAt(2, -31.9810, 115.8190),
		rowAt(3, -32.0569, 115.7439),
	}
	got := FilterByDistance(events, perthLat, perthLon, 100, 2)
	if len(got) != 2 {
		t.Fatalf("limit 2: got %d rows", len(got))
	}
	if got[0].ID != 1 || got[1].ID != 2 {
		t.Fatalf("limit should keep the nearest rows, got ids %d, %d", got[0].ID, got[1].ID)
	}
}

func TestFilterByDistanceZeroRadius(t *testing.T) {
	events := []EventRow{
		rowAt(1, perthLat, perthLon),
		rowAt(2, -32.0569, 115.7439),
	}
	got := FilterByDistance(events, perthLat, perthLon, 0, 0)
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("radius 0 should keep only exact-location events, got %+v", got)
	}
	if math.Abs(*got[0].DistanceKm) > 1e-9 {
		t.Fatalf("exact location should have zero distance, got %g", *got[0].DistanceKm)
	}
}
