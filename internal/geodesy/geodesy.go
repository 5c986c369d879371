// Package geodesy computes great-circle distances and bus travel-time
// estimates (spec §4.3, C3), exercised on every Arrive scheduling
// decision.
package geodesy

import "math"

// EarthRadiusKM is the mean Earth radius used for the haversine formula.
const EarthRadiusKM = 6371.0088

// VAvgKPH is the constant average bus speed used to estimate travel
// time between two polyline points (spec §4.3/§4.5).
const VAvgKPH = 40.0

// Point is a (lat, lon) pair in decimal degrees.
type Point struct {
	Lat float64
	Lon float64
}

// DistanceKM returns the great-circle distance between a and b in
// kilometers.
func DistanceKM(a, b Point) float64 {
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180
	la1 := a.Lat * math.Pi / 180
	la2 := b.Lat * math.Pi / 180

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(la1)*math.Cos(la2)*sinLon*sinLon
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusKM * c
}

// TravelSeconds estimates the time to cover the distance between a and
// b at VAvgKPH, rounded to the nearest whole second (spec §4.3). It is
// never negative and is zero only when a and b coincide; distinct points
// close enough to round to zero get 1 second.
func TravelSeconds(a, b Point) int {
	km := DistanceKM(a, b)
	seconds := (km / VAvgKPH) * 3600
	rounded := int(math.Round(seconds))
	if rounded == 0 && km > 0 {
		return 1
	}
	return rounded
}
