package vbo

import (
	"strconv"
	"strings"

	"github.com/openlaps/vbo-session-go/pkg/model"
)

// parseCircuitInfo extracts circuit metadata from the [laptiming] and
// [circuit details] sections. Both sections are optional; malformed
// lines are skipped.
func parseCircuitInfo(secs sections) model.CircuitInfo {
	info := model.CircuitInfo{TimingLines: []*model.TimingLine{}}

	for _, line := range secs.lines("circuit details") {
		key, value, ok := strings.Cut(line, " ")
		if !ok {
			continue
		}
		switch strings.ToLower(key) {
		case "country":
			info.Country = strings.TrimSpace(value)
		case "circuit":
			info.Circuit = strings.TrimSpace(value)
		}
	}

	for _, line := range secs.lines("laptiming") {
		if tl := parseTimingLine(line); tl != nil {
			info.TimingLines = append(info.TimingLines, tl)
		}
	}
	return info
}

// parseTimingLine decodes one [laptiming] line of the form
// "Start <startLat> <startLong> <endLat> <endLong> [¬] <name...>".
func parseTimingLine(line string) *model.TimingLine {
	tokens := strings.Fields(line)
	if len(tokens) < 5 {
		return nil
	}
	var lineType model.TimingLineType
	switch strings.ToLower(tokens[0]) {
	case "start":
		lineType = model.TimingLineStart
	case "split":
		lineType = model.TimingLineSplit
	default:
		return nil
	}
	coords := make([]float64, 4)
	for i := 0; i < 4; i++ {
		v, err := strconv.ParseFloat(tokens[i+1], 64)
		if err != nil {
			return nil
		}
		coords[i] = v
	}
	name := strings.Join(tokens[5:], " ")
	name = strings.TrimSpace(strings.TrimPrefix(name, "¬"))
	return &model.TimingLine{
		Type:  lineType,
		Start: model.GeoPoint{Lat: coords[0], Long: coords[1]},
		End:   model.GeoPoint{Lat: coords[2], Long: coords[3]},
		Name:  name,
	}
}

// parseComments fills optional header metadata from [comments] lines of
// the form "key : value". Unknown keys are ignored.
func parseComments(secs sections, header *model.Header) {
	for _, line := range secs.lines("comments") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch normalizeColumnName(key) {
		case "driver", "driverid":
			header.DriverID = value
		case "vehicle", "car":
			header.Vehicle = value
		case "version":
			header.Version = value
		case "samplerate", "rate":
			fields := strings.Fields(value)
			if len(fields) == 0 {
				continue
			}
			if v, err := strconv.ParseFloat(fields[0], 64); err == nil {
				header.SampleRate = v
			}
		}
	}
}

// parseVideos builds the video references from the [avi] section: first
// line is the file stem, second the extension.
func parseVideos(secs sections) []*model.Video {
	lines := secs.lines("avi")
	if len(lines) == 0 {
		return []*model.Video{}
	}
	ext := "avi"
	if len(lines) > 1 {
		ext = strings.ToLower(lines[1])
	}
	return []*model.Video{{Name: lines[0], Extension: ext}}
}
