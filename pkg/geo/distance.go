package geo

import "math"

const (
	// EarthRadiusMeters is the mean earth radius used for great-circle math.
	EarthRadiusMeters = 6371000.0

	// planarLimit: coordinates beyond this magnitude cannot be geographic
	// degrees and are treated as local track coordinates in meters.
	planarLimit = 200.0
)

// Distance returns the distance in meters between two coordinate pairs.
// Geographic pairs (decimal degrees) use the haversine formula; pairs
// containing any component beyond the degree range are treated as planar
// meters and use Euclidean distance.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	if math.Abs(lat1) > planarLimit || math.Abs(lon1) > planarLimit ||
		math.Abs(lat2) > planarLimit || math.Abs(lon2) > planarLimit {
		return Euclidean(lat1, lon1, lat2, lon2)
	}
	return Haversine(lat1, lon1, lat2, lon2)
}

// Euclidean returns the planar distance between two points.
func Euclidean(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// Haversine returns the great-circle distance in meters between two
// points given in decimal degrees.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusMeters * c
}

// CumulativeDistance returns the running point-to-point distance along a
// polyline of coordinate pairs. The result has one entry per input point,
// starting at 0.
func CumulativeDistance(lats, lons []float64) []float64 {
	ret := make([]float64, len(lats))
	for i := 1; i < len(lats); i++ {
		ret[i] = ret[i-1] + Distance(lats[i-1], lons[i-1], lats[i], lons[i])
	}
	return ret
}

// EncodeNMEA packs a decimal-degree value into DDMM.mmmmm form.
func EncodeNMEA(dd float64) float64 {
	sign := 1.0
	if dd < 0 {
		sign = -1.0
	}
	abs := math.Abs(dd)
	deg := math.Floor(abs)
	minutes := (abs - deg) * 60
	return sign * (deg*100 + minutes)
}

// DecodeNMEA converts a DDMM.mmmmm packed value to decimal degrees.
func DecodeNMEA(v float64) float64 {
	sign := 1.0
	if v < 0 {
		sign = -1.0
	}
	abs := math.Abs(v)
	return sign * (math.Floor(abs/100) + math.Mod(abs, 100)/60)
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
