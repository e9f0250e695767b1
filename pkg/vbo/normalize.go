package vbo

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/openlaps/vbo-session-go/log"
	"github.com/openlaps/vbo-session-go/pkg/geo"
	"github.com/openlaps/vbo-session-go/pkg/model"
)

// CoordinateSystem identifies the coordinate encoding of a file. The
// format declares no schema, so the encoding is inferred from the values
// themselves.
type CoordinateSystem int

const (
	// CoordDecimalDegrees needs no conversion.
	CoordDecimalDegrees CoordinateSystem = iota
	// CoordDegreesMinutes is NMEA-style DDMM.mmmmm packing.
	CoordDegreesMinutes
	// CoordTotalMinutes encodes degrees*60+minutes in one number.
	CoordTotalMinutes
	// CoordLocalPlanar is non-geographic Cartesian track coordinates.
	CoordLocalPlanar
)

func (c CoordinateSystem) String() string {
	switch c {
	case CoordDegreesMinutes:
		return "degrees-minutes"
	case CoordTotalMinutes:
		return "total-minutes"
	case CoordLocalPlanar:
		return "local-planar"
	default:
		return "decimal-degrees"
	}
}

// Detection thresholds. These are versioned policy values, kept exactly
// as established by the fixtures; they are heuristic and occasionally
// wrong (longitude minutes near 117 degrees misclassify).
const (
	localPlanarMin    = 1000.0
	totalMinutesMin   = 100.0
	totalMinutesMax   = 1000.0
	degreesMinutesMin = 1000.0

	maxDetectionSamples = 100

	latDegreeBound  = 90.0
	longDegreeBound = 180.0
)

type coordValue struct {
	v     float64
	bound float64
}

// DetectCoordinateSystem classifies the coordinate encoding from up to
// the first 100 samples carrying a non-zero coordinate. Priority order:
// local planar, total minutes, degrees+minutes, decimal degrees.
func DetectCoordinateSystem(samples []*model.Sample) CoordinateSystem {
	values := make([]coordValue, 0, 2*maxDetectionSamples)
	mags := make([]float64, 0, 2*maxDetectionSamples)
	seen := 0
	for _, s := range samples {
		if s.Latitude == 0 && s.Longitude == 0 {
			continue
		}
		values = append(values,
			coordValue{v: s.Latitude, bound: latDegreeBound},
			coordValue{v: s.Longitude, bound: longDegreeBound})
		mags = append(mags, math.Abs(s.Latitude), math.Abs(s.Longitude))
		seen++
		if seen >= maxDetectionSamples {
			break
		}
	}
	if len(values) == 0 {
		return CoordDecimalDegrees
	}

	log.Default().Named("vbo").Debug("coordinate detection window",
		log.Int("samples", seen),
		log.Float64("maxMagnitude", floats.Max(mags)),
		log.Float64("meanMagnitude", stat.Mean(mags, nil)))

	if floats.Max(mags) > localPlanarMin {
		return CoordLocalPlanar
	}
	for _, cv := range values {
		abs := math.Abs(cv.v)
		if abs > totalMinutesMin && abs < totalMinutesMax && abs/60 <= cv.bound {
			return CoordTotalMinutes
		}
	}
	for _, cv := range values {
		abs := math.Abs(cv.v)
		deg := math.Floor(abs / 100)
		minutes := math.Mod(abs, 100)
		if deg <= cv.bound && minutes < 60 && abs > degreesMinutesMin {
			return CoordDegreesMinutes
		}
	}
	return CoordDecimalDegrees
}

// ConvertCoordinate converts a single coordinate value from the detected
// encoding to decimal degrees. Local planar and decimal degrees pass
// through unchanged.
func ConvertCoordinate(v float64, sys CoordinateSystem) float64 {
	switch sys {
	case CoordTotalMinutes:
		sign := 1.0
		if v < 0 {
			sign = -1.0
		}
		return sign * (math.Abs(v) / 60)
	case CoordDegreesMinutes:
		return geo.DecodeNMEA(v)
	default:
		return v
	}
}

// normalize rebases every sample's time to session-relative seconds and
// converts coordinates to decimal degrees in a single pass. Zero
// coordinates (no GPS fix) pass through unconverted.
func normalize(samples []*model.Sample, logger *log.Logger) CoordinateSystem {
	if len(samples) == 0 {
		return CoordDecimalDegrees
	}
	minTime := samples[0].Time
	for _, s := range samples[1:] {
		if s.Time < minTime {
			minTime = s.Time
		}
	}
	sys := DetectCoordinateSystem(samples)
	logger.Debug("normalizing samples",
		log.Int("count", len(samples)),
		log.Float64("minTime", minTime),
		log.String("coordinateSystem", sys.String()))
	for _, s := range samples {
		s.Time -= minTime
		if s.Latitude == 0 && s.Longitude == 0 {
			continue
		}
		s.Latitude = ConvertCoordinate(s.Latitude, sys)
		s.Longitude = ConvertCoordinate(s.Longitude, sys)
	}
	return sys
}
