package model

// LapLabel classifies how a lap was driven.
type LapLabel string

const (
	LapLabelOffTrack LapLabel = "off-track"
	LapLabelInLap    LapLabel = "in-lap"
	LapLabelOutLap   LapLabel = "out-lap"
	LapLabelTimed    LapLabel = "timed-lap"
)

// Sector is a contiguous sub-range of one lap's samples.
type Sector struct {
	SectorNumber  int     `json:"sectorNumber"`
	StartTime     float64 `json:"startTime"`
	EndTime       float64 `json:"endTime"`
	SectorTime    float64 `json:"sectorTime"`
	StartDistance float64 `json:"startDistance"`
	EndDistance   float64 `json:"endDistance"`
}

// Lap groups a contiguous slice of a session's samples. DataPoints is a
// view into the owning session's sample sequence, not a copy.
type Lap struct {
	LapNumber     int       `json:"lapNumber"`
	StartTime     float64   `json:"startTime"`
	EndTime       float64   `json:"endTime"`
	LapTime       float64   `json:"lapTime"`
	Distance      float64   `json:"distance"`
	Sectors       []*Sector `json:"sectors"`
	DataPoints    []*Sample `json:"dataPoints"`
	IsValid       bool      `json:"isValid"`
	FastestSector int       `json:"fastestSector,omitempty"`
	Label         LapLabel  `json:"label"`
}

// TimingLineType discriminates start/finish lines from split lines.
type TimingLineType string

const (
	TimingLineStart TimingLineType = "Start"
	TimingLineSplit TimingLineType = "Split"
)

// GeoPoint is a latitude/longitude pair in decimal degrees.
type GeoPoint struct {
	Lat  float64 `json:"lat"`
	Long float64 `json:"long"`
}

// TimingLine is a ground-truth crossing geometry declared by the file.
type TimingLine struct {
	Type  TimingLineType `json:"type"`
	Start GeoPoint       `json:"start"`
	End   GeoPoint       `json:"end"`
	Name  string         `json:"name"`
}

// CircuitInfo holds the optional circuit metadata of a file.
type CircuitInfo struct {
	Country     string        `json:"country,omitempty"`
	Circuit     string        `json:"circuit,omitempty"`
	TimingLines []*TimingLine `json:"timingLines"`
}

// Video references a video file recorded alongside the telemetry.
type Video struct {
	Name      string `json:"name"`
	Extension string `json:"extension"`
}

// Session is the fully parsed result of one logger file. It owns its
// header, samples and laps; laps are derived views over DataPoints.
type Session struct {
	FilePath    string      `json:"filePath"`
	Header      *Header     `json:"header"`
	DataPoints  []*Sample   `json:"dataPoints"`
	Laps        []*Lap      `json:"laps"`
	FastestLap  *Lap        `json:"fastestLap,omitempty"`
	TotalTime   float64     `json:"totalTime"`
	TrackLength float64     `json:"trackLength,omitempty"`
	CircuitInfo CircuitInfo `json:"circuitInfo"`
	Videos      []*Video    `json:"videos"`
}

// CircuitName returns the declared circuit name or "" when unknown.
func (s *Session) CircuitName() string {
	return s.CircuitInfo.Circuit
}
