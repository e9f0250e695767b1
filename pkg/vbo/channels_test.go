package vbo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeColumnName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"sats", "sats"},
		{"Velocity Kmh", "velocity"},
		{"velocity kmh", "velocity"},
		{"Vert-Vel", "vertvel"},
		{"vert_vel", "vertvel"},
		{"Height (m)", "height"},
		{"LatAcc [g]", "latacc"},
		{"Solution Type", "solutiontype"},
		{"avifileindex", "avifileindex"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeColumnName(tt.in), tt.in)
	}
}

func TestResolveColumns_Defaults(t *testing.T) {
	fields := resolveColumns(
		[]string{"sats", "time", "lat", "long", "velocity kmh", "unknown-col"},
		nil)
	assert.Equal(t, []string{
		FieldSatellites, FieldTime, FieldLatitude, FieldLongitude,
		FieldVelocity, "",
	}, fields)
}

func TestResolveColumns_CustomWins(t *testing.T) {
	fields := resolveColumns(
		[]string{"lat", "custom-rpm"},
		map[string]string{
			"lat":        FieldHeight, // override a default
			"custom-rpm": FieldRPM,    // map an unknown column
		})
	assert.Equal(t, []string{FieldHeight, FieldRPM}, fields)
}

func TestResolveColumns_UnknownTargetIgnored(t *testing.T) {
	fields := resolveColumns([]string{"lat"},
		map[string]string{"lat": "no-such-field"})
	assert.Equal(t, []string{""}, fields)
}
