package model

import "time"

// Channel declares one telemetry column of a logger file.
// Index is the position of the column within a data row.
type Channel struct {
	Name  string `json:"name"`
	Unit  string `json:"unit"`
	Index int    `json:"index"`
}

// Header holds the file-level metadata of a logger file.
type Header struct {
	CreationDate time.Time  `json:"creationDate"`
	Channels     []*Channel `json:"channels"`
	Units        []string   `json:"units"`
	SampleRate   float64    `json:"sampleRate,omitempty"`
	DriverID     string     `json:"driverId,omitempty"`
	Vehicle      string     `json:"vehicle,omitempty"`
	Version      string     `json:"version,omitempty"`
}

// Sample is one decoded vehicle-state record. All fields are numeric;
// a value that was absent or unparseable in the source row stays 0.
// Time is session-relative seconds after normalization.
type Sample struct {
	Satellites       float64 `json:"satellites"`
	Time             float64 `json:"time"`
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	Velocity         float64 `json:"velocity"`
	Heading          float64 `json:"heading"`
	Height           float64 `json:"height"`
	VerticalVelocity float64 `json:"verticalVelocity"`
	SamplePeriod     float64 `json:"samplePeriod"`
	SolutionType     float64 `json:"solutionType"`
	AviFileIndex     float64 `json:"aviFileIndex"`
	AviSyncTime      float64 `json:"aviSyncTime"`
	LongAccel        float64 `json:"longAccel"`
	LatAccel         float64 `json:"latAccel"`
	GForce           float64 `json:"gForce"`
	TractionControl  float64 `json:"tractionControl"`
	DriverID         float64 `json:"driverId"`
	LapNumber        float64 `json:"lapNumber"`
	RPM              float64 `json:"rpm"`
	WheelSpeed       float64 `json:"wheelSpeed"`
	ThrottlePedal    float64 `json:"throttlePedal"`
	BrakePressure    float64 `json:"brakePressure"`
	Steering         float64 `json:"steering"`
	Gear             float64 `json:"gear"`
	WaterTemp        float64 `json:"waterTemp"`
	OilTemp          float64 `json:"oilTemp"`
	OilPressure      float64 `json:"oilPressure"`
	FuelLevel        float64 `json:"fuelLevel"`
	BatteryVoltage   float64 `json:"batteryVoltage"`
}
