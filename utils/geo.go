package utils

import "math"

const earthRadiusKm = 6371.0

// CalculateDistance returns the haversine distance between two coordinates
// in kilometers.
func CalculateDistance(lat1, lon1, lat2, lon2 float64) float64 {
	rLat1 := lat1 * math.Pi / 180.0
	rLon1 := lon1 * math.Pi / 180.0
	rLat2 := lat2 * math.Pi / 180.0
	rLon2 := lon2 * math.Pi / 180.0

	dLat := rLat2 - rLat1
	dLon := rLon2 - rLon1

	hSin := math.Sin(dLat / 2)
	hSin *= hSin

	vSin := math.Sin(dLon / 2)
	vSin *= vSin

	h := hSin + math.Cos(rLat1)*math.Cos(rLat2)*vSin

	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}
