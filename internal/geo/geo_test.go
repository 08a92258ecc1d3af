package geo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Reference points around Metro Manila.
var (
	manilaLat, manilaLng = 14.5995, 120.9842
	quezonLat, quezonLng = 14.6760, 121.0437
	cebuLat, cebuLng     = 10.3157, 123.8854
)

func TestHaversineKm(t *testing.T) {
	require.Zero(t, HaversineKm(manilaLat, manilaLng, manilaLat, manilaLng))

	// Manila to Quezon City is roughly 10.6 km.
	d := HaversineKm(manilaLat, manilaLng, quezonLat, quezonLng)
	require.InDelta(t, 10.6, d, 0.5)

	// Manila to Cebu is roughly 570 km.
	d = HaversineKm(manilaLat, manilaLng, cebuLat, cebuLng)
	require.InDelta(t, 570, d, 10)

	// Symmetric.
	require.InDelta(t,
		HaversineKm(manilaLat, manilaLng, cebuLat, cebuLng),
		HaversineKm(cebuLat, cebuLng, manilaLat, manilaLng),
		1e-9)
}

func TestRoundKm(t *testing.T) {
	require.Equal(t, 10.57, RoundKm(10.5651))
	require.Equal(t, 0.0, RoundKm(0.001))
	require.Equal(t, 570.0, RoundKm(570.0001))
}

func TestBoundingBoxEnclosesRadius(t *testing.T) {
	const radius = 25.0
	minLat, maxLat, minLng, maxLng := BoundingBox(manilaLat, manilaLng, radius)

	require.Less(t, minLat, manilaLat)
	require.Greater(t, maxLat, manilaLat)
	require.Less(t, minLng, manilaLng)
	require.Greater(t, maxLng, manilaLng)

	// Every point on the circle's cardinal extremes stays inside the box.
	latDelta := radius / 111.0
	for _, p := range [][2]float64{
		{manilaLat + latDelta, manilaLng},
		{manilaLat - latDelta, manilaLng},
	} {
		require.GreaterOrEqual(t, p[0], minLat)
		require.LessOrEqual(t, p[0], maxLat)
	}

	// The box is a pre-filter: a corner point may be outside the circle.
	corner := HaversineKm(manilaLat, manilaLng, maxLat, maxLng)
	require.Greater(t, corner, radius)
}

func TestBoundingBoxWidensNearPoles(t *testing.T) {
	_, _, minLngEq, maxLngEq := BoundingBox(0, 0, 25)
	_, _, minLngFar, maxLngFar := BoundingBox(60, 0, 25)

	// The same radius spans more degrees of longitude at high latitude.
	require.Greater(t, maxLngFar-minLngFar, maxLngEq-minLngEq)
}
