package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance_IdenticalPoints(t *testing.T) {
	assert.Equal(t, 0.0, Distance(45.5, -73.5, 45.5, -73.5))
	assert.Equal(t, 0.0, Distance(1500, 2500, 1500, 2500))
}

func TestDistance_MontrealToToronto(t *testing.T) {
	// Montreal 45.5017,-73.5673  Toronto 43.6532,-79.3832
	d := Distance(45.5017, -73.5673, 43.6532, -79.3832)
	assert.Greater(t, d, 500_000.0)
	assert.Less(t, d, 600_000.0)
}

func TestDistance_PlanarMode(t *testing.T) {
	// track coordinates in meters, beyond the degree range
	d := Distance(1000, 2000, 1003, 2004)
	assert.InDelta(t, 5.0, d, 1e-9)
}

func TestDistance_MixedPairUsesPlanar(t *testing.T) {
	// one out-of-range component is enough to switch modes
	d := Distance(250, 0, 250, 3)
	assert.InDelta(t, 3.0, d, 1e-9)
}

func TestNMEA_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		dd   float64
	}{
		{"montreal lat", 45.5017},
		{"montreal long", -73.5673},
		{"equator", 0.25},
		{"far east", 151.22311},
		{"southern", -34.32808},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodeNMEA(EncodeNMEA(tt.dd))
			assert.InDelta(t, tt.dd, got, 1e-4)
		})
	}
}

func TestDecodeNMEA(t *testing.T) {
	// 4530.000 -> 45 degrees 30 minutes -> 45.5
	assert.InDelta(t, 45.5, DecodeNMEA(4530.0), 1e-9)
	assert.InDelta(t, -45.5, DecodeNMEA(-4530.0), 1e-9)
}

func TestCumulativeDistance(t *testing.T) {
	lats := []float64{45.0, 45.0, 45.0}
	lons := []float64{-73.0, -73.001, -73.002}
	cum := CumulativeDistance(lats, lons)
	assert.Len(t, cum, 3)
	assert.Equal(t, 0.0, cum[0])
	assert.Greater(t, cum[1], 0.0)
	assert.InDelta(t, cum[1]*2, cum[2], 0.01)
	assert.False(t, math.IsNaN(cum[2]))
}
