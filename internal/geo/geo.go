// Package geo provides great-circle distance math for radius search.
package geo

import (
	"math"
)

// EarthRadiusKm is the mean Earth radius used by the haversine formula.
const EarthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance in kilometers between two
// latitude/longitude points.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	rlat1 := lat1 * math.Pi / 180
	rlat2 := lat2 * math.Pi / 180
	dlat := (lat2 - lat1) * math.Pi / 180
	dlng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(rlat1)*math.Cos(rlat2)*math.Sin(dlng/2)*math.Sin(dlng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// RoundKm rounds a distance to 2 decimals, the precision exposed to clients.
func RoundKm(km float64) float64 {
	return math.Round(km*100) / 100
}

// BoundingBox returns the min/max latitude and longitude of the square that
// encloses the radius circle. Used as a cheap index-friendly pre-filter before
// the exact haversine predicate; it never excludes a point inside the radius.
func BoundingBox(lat, lng, radiusKm float64) (minLat, maxLat, minLng, maxLng float64) {
	latDelta := radiusKm / 111.0 // ~111 km per degree of latitude
	minLat, maxLat = lat-latDelta, lat+latDelta

	// Longitude degrees shrink with latitude; guard the poles.
	cos := math.Cos(lat * math.Pi / 180)
	if cos < 0.01 {
		cos = 0.01
	}
	lngDelta := radiusKm / (111.0 * cos)
	minLng, maxLng = lng-lngDelta, lng+lngDelta
	return
}
