package vbo

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/openlaps/vbo-session-go/pkg/model"
)

var errEmptyRow = errors.New("row contains no decodable value")

// parseValue parses one data token. Null tokens and unparseable text
// report no value, leaving the field at its zero default.
func parseValue(token string) (float64, bool) {
	switch strings.ToLower(token) {
	case "", "null", "(null)":
		return 0, false
	}
	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// decodePackedTime interprets a time token as HHMMSS.fff packed into one
// decimal number and returns seconds since midnight. Values whose
// extracted components are out of range are taken as already-elapsed
// seconds; minimal fixtures use plain numeric time.
func decodePackedTime(v float64) float64 {
	abs := math.Abs(v)
	hours := math.Floor(abs / 10000)
	minutes := math.Floor(math.Mod(abs, 10000) / 100)
	seconds := math.Mod(abs, 100)
	if hours > 23 || minutes > 59 || seconds >= 60 {
		return v
	}
	return hours*3600 + minutes*60 + seconds
}

// decodeRow converts one data line into a sample. Columns beyond the
// resolved mapping as well as unknown columns are ignored. A row where
// no column yields a value is rejected so the caller can drop it.
func decodeRow(line string, fields []string) (*model.Sample, error) {
	tokens := strings.Fields(line)
	sample := &model.Sample{}
	decoded := 0
	for i, token := range tokens {
		if i >= len(fields) {
			break
		}
		field := fields[i]
		if field == "" {
			continue
		}
		v, ok := parseValue(token)
		if !ok {
			continue
		}
		if field == FieldTime {
			v = decodePackedTime(v)
		}
		fieldSetters[field](sample, v)
		decoded++
	}
	if decoded == 0 {
		return nil, errEmptyRow
	}
	return sample, nil
}
