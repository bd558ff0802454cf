// Package geomath holds the pure numeric kernels shared by the
// location and power analyzers: great-circle distance, signal
// smoothing, peak/trough detection, and k-means clustering with
// elbow-method model selection.
package geomath

import "math"

const earthRadiusMeters = 6371000.0

// Haversine3D returns the distance in meters between two fixes,
// composing the great-circle surface distance with the altitude
// delta via Euclidean (Pythagorean) addition.
func Haversine3D(lat1, lon1, alt1, lat2, lon2, alt2 float64) float64 {
	surface := haversineSurface(lat1, lon1, lat2, lon2)
	vertical := alt2 - alt1

	return math.Sqrt(surface*surface + vertical*vertical)
}

func haversineSurface(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := degToRad(lat1)
	phi2 := degToRad(lat2)
	dPhi := degToRad(lat2 - lat1)
	dLambda := degToRad(lon2 - lon1)

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

func degToRad(d float64) float64 {
	return d * math.Pi / 180.0
}
