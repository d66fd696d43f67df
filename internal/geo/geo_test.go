package geo

import (
	"math"
	"testing"
)

func TestDistance_SamePoint_ReturnsZero(t *testing.T) {
	t.Parallel()

	distance := Distance(40.7128, -74.0060, 40.7128, -74.0060)

	if distance != 0 {
		t.Errorf("expected 0, got %f", distance)
	}
}

func TestDistance_LondonToParis_ReturnsKnownDistance(t *testing.T) {
	t.Parallel()

	// London: 51.5, -0.1
	// Paris: 48.8, 2.3
	// Known distance: ~344 km
	distance := Distance(51.5, -0.1, 48.8, 2.3)

	expectedKm := 344.0
	if math.Abs(distance-expectedKm) > 2.0 {
		t.Errorf("expected ~%f km (+/- 2), got %f km", expectedKm, distance)
	}
}

func TestDistance_NYCtoLA_ReturnsKnownDistance(t *testing.T) {
	t.Parallel()

	// New York City: 40.7128, -74.0060
	// Los Angeles: 34.0522, -118.2437
	// Known distance: ~3944 km
	distance := Distance(40.7128, -74.0060, 34.0522, -118.2437)

	expectedKm := 3944.0
	tolerance := expectedKm * 0.01
	if math.Abs(distance-expectedKm) > tolerance {
		t.Errorf("expected ~%f km, got %f km", expectedKm, distance)
	}
}

func TestDistance_EquatorQuarter_ReturnsQuarterCircumference(t *testing.T) {
	t.Parallel()

	// Two points on the equator, 90 degrees apart
	distance := Distance(0, 0, 0, 90)

	// Quarter of Earth's circumference with R=6371 is ~10,008 km
	expectedKm := 10008.0
	tolerance := expectedKm * 0.01
	if math.Abs(distance-expectedKm) > tolerance {
		t.Errorf("expected ~%f km, got %f km", expectedKm, distance)
	}
}

func TestDistance_Symmetric(t *testing.T) {
	t.Parallel()

	pairs := []struct {
		lat1, lng1, lat2, lng2 float64
	}{
		{40.7128, -74.0060, 34.0522, -118.2437},
		{51.5, -0.1, 48.8, 2.3},
		{-33.8688, 151.2093, 35.6762, 139.6503},
		{90, 0, -90, 0},
	}

	for _, p := range pairs {
		distAB := Distance(p.lat1, p.lng1, p.lat2, p.lng2)
		distBA := Distance(p.lat2, p.lng2, p.lat1, p.lng1)

		if math.Abs(distAB-distBA) > 1e-9*distAB {
			t.Errorf("distance should be symmetric: A->B=%f, B->A=%f", distAB, distBA)
		}
	}
}

func TestDistance_ShortDistance_Accurate(t *testing.T) {
	t.Parallel()

	// Two points ~1km apart at the equator
	distance := Distance(0, 0, 0, 0.009)

	if distance < 0.9 || distance > 1.1 {
		t.Errorf("expected ~1 km, got %f km", distance)
	}
}

func TestPoint_DistanceTo_MatchesDistance(t *testing.T) {
	t.Parallel()

	london := Point{Lat: 51.5, Lng: -0.1}
	paris := Point{Lat: 48.8, Lng: 2.3}

	if got, want := london.DistanceTo(paris), Distance(51.5, -0.1, 48.8, 2.3); got != want {
		t.Errorf("DistanceTo: expected %f, got %f", want, got)
	}
}

func TestIsWithinRadius(t *testing.T) {
	t.Parallel()

	// London-Paris is ~344 km
	if !IsWithinRadius(51.5, -0.1, 48.8, 2.3, 350) {
		t.Error("expected London-Paris within 350 km")
	}
	if IsWithinRadius(51.5, -0.1, 48.8, 2.3, 300) {
		t.Error("expected London-Paris outside 300 km")
	}
}

func TestBounds_Extend(t *testing.T) {
	t.Parallel()

	b := NewBounds()
	if !b.IsEmpty() {
		t.Fatal("new bounds should be empty")
	}

	b = b.Extend(LngLat{Lng: 2.3, Lat: 48.8})
	b = b.Extend(LngLat{Lng: -0.1, Lat: 51.5})

	if b.IsEmpty() {
		t.Fatal("extended bounds should not be empty")
	}
	if b.MinLat != 48.8 || b.MaxLat != 51.5 {
		t.Errorf("lat range: expected [48.8, 51.5], got [%f, %f]", b.MinLat, b.MaxLat)
	}
	if b.MinLng != -0.1 || b.MaxLng != 2.3 {
		t.Errorf("lng range: expected [-0.1, 2.3], got [%f, %f]", b.MinLng, b.MaxLng)
	}
}

func TestEarthRadius_ReasonableValue(t *testing.T) {
	t.Parallel()

	if EarthRadiusKm < 6370 || EarthRadiusKm > 6372 {
		t.Errorf("EarthRadiusKm should be ~6371, got %f", EarthRadiusKm)
	}
}
