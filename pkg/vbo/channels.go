package vbo

import (
	"strings"

	"github.com/openlaps/vbo-session-go/pkg/model"
)

// Internal field names used by the column mapping tables. These are the
// values callers supply in custom mappings.
const (
	FieldSatellites       = "satellites"
	FieldTime             = "time"
	FieldLatitude         = "latitude"
	FieldLongitude        = "longitude"
	FieldVelocity         = "velocity"
	FieldHeading          = "heading"
	FieldHeight           = "height"
	FieldVerticalVelocity = "verticalVelocity"
	FieldSamplePeriod     = "samplePeriod"
	FieldSolutionType     = "solutionType"
	FieldAviFileIndex     = "aviFileIndex"
	FieldAviSyncTime      = "aviSyncTime"
	FieldLongAccel        = "longAccel"
	FieldLatAccel         = "latAccel"
	FieldGForce           = "gForce"
	FieldTractionControl  = "tractionControl"
	FieldDriverID         = "driverId"
	FieldLapNumber        = "lapNumber"
	FieldRPM              = "rpm"
	FieldWheelSpeed       = "wheelSpeed"
	FieldThrottlePedal    = "throttlePedal"
	FieldBrakePressure    = "brakePressure"
	FieldSteering         = "steering"
	FieldGear             = "gear"
	FieldWaterTemp        = "waterTemp"
	FieldOilTemp          = "oilTemp"
	FieldOilPressure      = "oilPressure"
	FieldFuelLevel        = "fuelLevel"
	FieldBatteryVoltage   = "batteryVoltage"
)

// defaultColumnMappings maps normalized column tokens to internal field
// names. Covers the synonyms and abbreviations seen across logger
// firmwares; callers overlay custom mappings on top of this table.
var defaultColumnMappings = map[string]string{
	"sats": FieldSatellites, "satellites": FieldSatellites,
	"time": FieldTime, "utctime": FieldTime,
	"lat": FieldLatitude, "latitude": FieldLatitude,
	"long": FieldLongitude, "lon": FieldLongitude,
	"lng": FieldLongitude, "longitude": FieldLongitude,
	"velocity": FieldVelocity, "vel": FieldVelocity, "speed": FieldVelocity,
	"heading": FieldHeading, "hdg": FieldHeading, "course": FieldHeading,
	"height": FieldHeight, "alt": FieldHeight,
	"altitude": FieldHeight, "elevation": FieldHeight,
	"vertvel": FieldVerticalVelocity, "verticalvelocity": FieldVerticalVelocity,
	"vertspeed": FieldVerticalVelocity,
	"sampleperiod": FieldSamplePeriod, "period": FieldSamplePeriod,
	"solutiontype": FieldSolutionType, "soltype": FieldSolutionType,
	"fix": FieldSolutionType, "fixtype": FieldSolutionType,
	"avifileindex": FieldAviFileIndex, "aviindex": FieldAviFileIndex,
	"avisynctime": FieldAviSyncTime, "avitime": FieldAviSyncTime,
	"longacc": FieldLongAccel, "glong": FieldLongAccel,
	"accx": FieldLongAccel, "ax": FieldLongAccel,
	"latacc": FieldLatAccel, "glat": FieldLatAccel,
	"accy": FieldLatAccel, "ay": FieldLatAccel,
	"gforce": FieldGForce, "g": FieldGForce, "comboacc": FieldGForce,
	"combinedg": FieldGForce,
	"tc": FieldTractionControl, "tcactive": FieldTractionControl,
	"tractioncontrol": FieldTractionControl, "tcslip": FieldTractionControl,
	"driverid": FieldDriverID, "driver": FieldDriverID,
	"lapnumber": FieldLapNumber, "lap": FieldLapNumber,
	"lapno": FieldLapNumber, "lapindex": FieldLapNumber,
	"rpm": FieldRPM, "enginespeed": FieldRPM, "engrpm": FieldRPM,
	"wheelspeed": FieldWheelSpeed, "ws": FieldWheelSpeed,
	"throttle": FieldThrottlePedal, "throttlepedal": FieldThrottlePedal,
	"tps": FieldThrottlePedal, "pedalpos": FieldThrottlePedal,
	"brake": FieldBrakePressure, "brakepressure": FieldBrakePressure,
	"brakepedal": FieldBrakePressure,
	"steering": FieldSteering, "steerangle": FieldSteering,
	"steeringangle": FieldSteering, "steer": FieldSteering,
	"gear": FieldGear, "gearpos": FieldGear,
	"watertemp": FieldWaterTemp, "coolanttemp": FieldWaterTemp,
	"oiltemp": FieldOilTemp,
	"oilpressure": FieldOilPressure, "oilpress": FieldOilPressure,
	"fuellevel": FieldFuelLevel, "fuel": FieldFuelLevel,
	"fuelremaining": FieldFuelLevel,
	"battery": FieldBatteryVoltage, "batteryvoltage": FieldBatteryVoltage,
	"vbat": FieldBatteryVoltage, "batt": FieldBatteryVoltage,
}

// unitWords are trailing tokens stripped during normalization, so that
// header names like "velocity kmh" resolve the same as "velocity".
var unitWords = map[string]struct{}{
	"kmh": {}, "km/h": {}, "mph": {}, "m/s": {}, "ms": {},
	"deg": {}, "degrees": {}, "m": {}, "s": {}, "v": {}, "volts": {},
	"psi": {}, "bar": {}, "c": {}, "f": {}, "%": {},
}

type fieldSetter func(*model.Sample, float64)

var fieldSetters = map[string]fieldSetter{
	FieldSatellites:       func(s *model.Sample, v float64) { s.Satellites = v },
	FieldTime:             func(s *model.Sample, v float64) { s.Time = v },
	FieldLatitude:         func(s *model.Sample, v float64) { s.Latitude = v },
	FieldLongitude:        func(s *model.Sample, v float64) { s.Longitude = v },
	FieldVelocity:         func(s *model.Sample, v float64) { s.Velocity = v },
	FieldHeading:          func(s *model.Sample, v float64) { s.Heading = v },
	FieldHeight:           func(s *model.Sample, v float64) { s.Height = v },
	FieldVerticalVelocity: func(s *model.Sample, v float64) { s.VerticalVelocity = v },
	FieldSamplePeriod:     func(s *model.Sample, v float64) { s.SamplePeriod = v },
	FieldSolutionType:     func(s *model.Sample, v float64) { s.SolutionType = v },
	FieldAviFileIndex:     func(s *model.Sample, v float64) { s.AviFileIndex = v },
	FieldAviSyncTime:      func(s *model.Sample, v float64) { s.AviSyncTime = v },
	FieldLongAccel:        func(s *model.Sample, v float64) { s.LongAccel = v },
	FieldLatAccel:         func(s *model.Sample, v float64) { s.LatAccel = v },
	FieldGForce:           func(s *model.Sample, v float64) { s.GForce = v },
	FieldTractionControl:  func(s *model.Sample, v float64) { s.TractionControl = v },
	FieldDriverID:         func(s *model.Sample, v float64) { s.DriverID = v },
	FieldLapNumber:        func(s *model.Sample, v float64) { s.LapNumber = v },
	FieldRPM:              func(s *model.Sample, v float64) { s.RPM = v },
	FieldWheelSpeed:       func(s *model.Sample, v float64) { s.WheelSpeed = v },
	FieldThrottlePedal:    func(s *model.Sample, v float64) { s.ThrottlePedal = v },
	FieldBrakePressure:    func(s *model.Sample, v float64) { s.BrakePressure = v },
	FieldSteering:         func(s *model.Sample, v float64) { s.Steering = v },
	FieldGear:             func(s *model.Sample, v float64) { s.Gear = v },
	FieldWaterTemp:        func(s *model.Sample, v float64) { s.WaterTemp = v },
	FieldOilTemp:          func(s *model.Sample, v float64) { s.OilTemp = v },
	FieldOilPressure:      func(s *model.Sample, v float64) { s.OilPressure = v },
	FieldFuelLevel:        func(s *model.Sample, v float64) { s.FuelLevel = v },
	FieldBatteryVoltage:   func(s *model.Sample, v float64) { s.BatteryVoltage = v },
}

// normalizeColumnName lowercases a declared column name, cuts trailing
// parenthesized or bracketed units, drops a trailing unit word and
// removes separators, so "Vert-Vel", "vert vel" and "VertVel (m/s)" all
// resolve identically.
func normalizeColumnName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	if i := strings.IndexAny(s, "(["); i >= 0 {
		s = s[:i]
	}
	fields := strings.Fields(s)
	if len(fields) > 1 {
		if _, ok := unitWords[fields[len(fields)-1]]; ok {
			fields = fields[:len(fields)-1]
		}
	}
	s = strings.Join(fields, "")
	return strings.Map(func(r rune) rune {
		switch r {
		case '-', '_', '.':
			return -1
		}
		return r
	}, s)
}

// resolveColumns maps each declared column to an internal field name.
// Custom mappings win over the default table; unknown columns map to ""
// and are ignored during decoding.
func resolveColumns(columns []string, custom map[string]string) []string {
	normCustom := make(map[string]string, len(custom))
	for k, v := range custom {
		normCustom[normalizeColumnName(k)] = v
	}
	ret := make([]string, len(columns))
	for i, col := range columns {
		norm := normalizeColumnName(col)
		field, ok := normCustom[norm]
		if !ok {
			field, ok = defaultColumnMappings[norm]
		}
		if !ok {
			continue
		}
		if _, known := fieldSetters[field]; !known {
			continue
		}
		ret[i] = field
	}
	return ret
}

// columnNames returns the machine column order: the [column names] line
// when present, otherwise the header channel names in header order.
func columnNames(secs sections, channels []*model.Channel) []string {
	if lines := secs.lines("column names"); len(lines) > 0 {
		return strings.Fields(lines[0])
	}
	ret := make([]string, len(channels))
	for i, ch := range channels {
		ret[i] = ch.Name
	}
	return ret
}
