package config

// this holds the resolved configuration values from CLI
var (
	LogLevel             string  // sets the log level (zap log level values)
	LogFormat            string  // text vs json
	LogFilter            string  // zapfilter rules for named loggers
	ChannelMapFile       string  // path to custom channel mapping file (yaml)
	MaxDataPoints        int     // truncate [data] after this many samples (-1 = unlimited)
	SectorCount          int     // sectors per lap
	MinLapDistance       float64 // minimum lap distance (meters) in fallback detection
	MinLapTime           float64 // laps shorter than this (seconds) are invalid (0 = off)
	AllowDifferentTracks bool    // allow comparing sessions from different circuits
	ProgressTolerance    float64 // acceptable progress difference for cross-session matches
)
