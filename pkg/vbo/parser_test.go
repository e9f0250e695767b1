package vbo

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openlaps/vbo-session-go/pkg/laps"
	"github.com/openlaps/vbo-session-go/pkg/model"
)

const sampleFile = `File created on 31/07/2006 at 09:55:20

[header]
satellites
time
latitude
longitude
velocity kmh
heading

[channel units]
sats
s
min
min
kmh
deg

[comments]
Driver : Alice
Vehicle : MX-5
Version : 1.2.0
Sample Rate : 20 Hz

[laptiming]
Start -34.32808 +151.22311 -34.32808 +151.22334 ¬ Start/Finish
Split -34.33100 +151.22000 -34.33100 +151.22050 ¬ Split 1

[circuit details]
country Australia
circuit Mount Panorama

[column names]
sats time lat long velocity heading

[data]
008 094550.00 0300.00000 0600.00000 100.5 270.0
008 094550.20 0300.30000 0600.30000 101.0 271.0
008 094550.40 0300.60000 0600.60000 101.5 272.0
008 094550.60 0300.90000 0600.90000 102.0 273.0

[avi]
VBOX0001
MP4
`

func TestParse_WellFormed(t *testing.T) {
	session, err := Parse(sampleFile, WithFilePath("sample.vbo"))
	require.NoError(t, err)

	assert.Equal(t, "sample.vbo", session.FilePath)
	assert.Len(t, session.DataPoints, 4)
	assert.Equal(t, 0.0, session.DataPoints[0].Time)
	assert.InDelta(t, 0.6, session.DataPoints[3].Time, 1e-9)

	// raw total time is captured before rebasing
	assert.InDelta(t, 9*3600+45*60+50.6, session.TotalTime, 1e-9)

	// total-minutes coordinates are converted to decimal degrees
	assert.InDelta(t, 5.0, session.DataPoints[0].Latitude, 1e-9)
	assert.InDelta(t, 10.0, session.DataPoints[0].Longitude, 1e-9)
	assert.InDelta(t, 5.005, session.DataPoints[1].Latitude, 1e-9)

	want := &model.Sample{
		Satellites: 8,
		Velocity:   100.5,
		Heading:    270,
		Latitude:   5,
		Longitude:  10,
	}
	if diff := cmp.Diff(want, session.DataPoints[0]); diff != "" {
		t.Errorf("first sample mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Header(t *testing.T) {
	session, err := Parse(sampleFile)
	require.NoError(t, err)

	header := session.Header
	require.Len(t, header.Channels, 6)
	assert.Equal(t, "satellites", header.Channels[0].Name)
	assert.Equal(t, 0, header.Channels[0].Index)
	assert.Equal(t, "velocity kmh", header.Channels[4].Name)
	assert.Equal(t, "kmh", header.Channels[4].Unit)
	assert.Equal(t, 2006, header.CreationDate.Year())

	assert.Equal(t, "Alice", header.DriverID)
	assert.Equal(t, "MX-5", header.Vehicle)
	assert.Equal(t, "1.2.0", header.Version)
	assert.Equal(t, 20.0, header.SampleRate)
}

func TestParse_CircuitAndVideos(t *testing.T) {
	session, err := Parse(sampleFile)
	require.NoError(t, err)

	info := session.CircuitInfo
	assert.Equal(t, "Australia", info.Country)
	assert.Equal(t, "Mount Panorama", info.Circuit)
	require.Len(t, info.TimingLines, 2)
	assert.Equal(t, model.TimingLineStart, info.TimingLines[0].Type)
	assert.Equal(t, "Start/Finish", info.TimingLines[0].Name)
	assert.Equal(t, -34.32808, info.TimingLines[0].Start.Lat)
	assert.Equal(t, 151.22334, info.TimingLines[0].End.Long)
	assert.Equal(t, model.TimingLineSplit, info.TimingLines[1].Type)

	require.Len(t, session.Videos, 1)
	assert.Equal(t, "VBOX0001", session.Videos[0].Name)
	assert.Equal(t, "mp4", session.Videos[0].Extension)
}

func TestParse_StructuralErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty input", ""},
		{"whitespace only", "  \r\n \n"},
		{"missing header", "[data]\n1 2 3\n"},
		{"missing data", "[header]\ntime\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)
			var parseErr *ParseError
			assert.True(t, errors.As(err, &parseErr))
		})
	}
}

func TestParse_MaxDataPoints(t *testing.T) {
	session, err := Parse(sampleFile, WithMaxDataPoints(2))
	require.NoError(t, err)
	assert.Len(t, session.DataPoints, 2)

	// a limit of zero yields zero samples without erroring
	session, err = Parse(sampleFile, WithMaxDataPoints(0))
	require.NoError(t, err)
	assert.Len(t, session.DataPoints, 0)
}

func TestParse_DropsMalformedRows(t *testing.T) {
	input := `[header]
time
velocity

[data]
10.0 100.0
bogus (null)
11.0 101.0
`
	session, err := Parse(input)
	require.NoError(t, err)
	assert.Len(t, session.DataPoints, 2)
	assert.Equal(t, 101.0, session.DataPoints[1].Velocity)
}

func TestParse_ColumnFallbackToHeaderNames(t *testing.T) {
	input := `[header]
time
velocity kmh

[data]
10.0 100.0
11.0 101.0
`
	session, err := Parse(input)
	require.NoError(t, err)
	require.Len(t, session.DataPoints, 2)
	assert.Equal(t, 100.0, session.DataPoints[0].Velocity)
	assert.Equal(t, 1.0, session.DataPoints[1].Time)
}

func TestParse_CustomMappings(t *testing.T) {
	input := `[header]
time
my-custom-speed

[data]
10.0 88.0
`
	session, err := Parse(input,
		WithCustomMappings(map[string]string{"my-custom-speed": FieldVelocity}))
	require.NoError(t, err)
	require.Len(t, session.DataPoints, 1)
	assert.Equal(t, 88.0, session.DataPoints[0].Velocity)
}

func TestParse_CRLFLineEndings(t *testing.T) {
	input := strings.ReplaceAll(sampleFile, "\n", "\r\n")
	session, err := Parse(input)
	require.NoError(t, err)
	assert.Len(t, session.DataPoints, 4)
}

func TestParse_WithLapDetection(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("[header]\ntime\nlap\n\n[data]\n")
	times := []string{"0", "10", "20", "30", "40", "50", "60", "70", "80", "90"}
	for i, ts := range times {
		lap := "1"
		if i >= 5 {
			lap = "2"
		}
		sb.WriteString(ts + " " + lap + "\n")
	}
	session, err := Parse(sb.String(), WithLapDetection())
	require.NoError(t, err)
	require.Len(t, session.Laps, 2)
	assert.NotNil(t, session.FastestLap)
	assert.Equal(t, 40.0, session.FastestLap.LapTime)
}

func TestParse_SectionScannerTolerance(t *testing.T) {
	input := "  [HEADER]  \ntime\n\n [data] \n42.0\n"
	session, err := Parse(input)
	require.NoError(t, err)
	assert.Len(t, session.DataPoints, 1)
}

func TestParse_LapDetectionOptions(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("[header]\ntime\nlap\n\n[data]\n")
	sb.WriteString("0 1\n10 1\n20 1\n30 2\n31 2\n32 2\n")
	session, err := Parse(sb.String(),
		WithLapDetection(laps.WithMinLapTime(5), laps.WithSectorCount(0)))
	require.NoError(t, err)
	require.Len(t, session.Laps, 2)
	assert.True(t, session.Laps[0].IsValid)
	assert.False(t, session.Laps[1].IsValid)
	assert.Empty(t, session.Laps[0].Sectors)
}
