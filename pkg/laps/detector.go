package laps

import (
	"sort"

	"github.com/samber/lo"

	"github.com/openlaps/vbo-session-go/pkg/geo"
	"github.com/openlaps/vbo-session-go/pkg/model"
)

const (
	// assumedLapSeconds is the average lap duration used to estimate a
	// lap count when no lap-number channel exists.
	assumedLapSeconds = 120.0

	// fallbackMinSamples is the minimum stream length for the geometric
	// fallback to engage.
	fallbackMinSamples = 100

	defaultMinDistance = 100.0
	defaultSectorCount = 3
)

type detector struct {
	minDistance float64
	sectorCount int
	minLapTime  float64
}

type Option func(*detector)

// WithMinDistance sets the minimum cumulative distance (meters) a
// fallback chunk must cover to count as a lap.
func WithMinDistance(meters float64) Option {
	return func(d *detector) {
		d.minDistance = meters
	}
}

// WithSectorCount sets how many sectors each lap is divided into.
// A count <= 0 disables sector generation.
func WithSectorCount(count int) Option {
	return func(d *detector) {
		d.sectorCount = count
	}
}

// WithMinLapTime marks laps shorter than the given duration (seconds)
// as invalid. Zero disables the filter; laps from authoritative
// lap-number grouping are valid by default.
func WithMinLapTime(seconds float64) Option {
	return func(d *detector) {
		d.minLapTime = seconds
	}
}

// Detect partitions a normalized sample stream into laps. Samples
// carrying a positive lap number are grouped authoritatively; otherwise
// a time-window heuristic slices the stream. Empty input yields an
// empty slice.
func Detect(samples []*model.Sample, opts ...Option) []*model.Lap {
	d := &detector{
		minDistance: defaultMinDistance,
		sectorCount: defaultSectorCount,
	}
	for _, opt := range opts {
		opt(d)
	}
	if len(samples) == 0 {
		return []*model.Lap{}
	}

	var ret []*model.Lap
	if lo.SomeBy(samples, func(s *model.Sample) bool { return s.LapNumber > 0 }) {
		ret = d.detectByLapNumber(samples)
	} else {
		ret = d.detectByHeuristic(samples)
	}
	d.labelLaps(ret)
	return ret
}

// detectByLapNumber groups samples by their lap-number channel. Output
// is sorted by start time; every lap is valid unless a minimum lap time
// is configured.
func (d *detector) detectByLapNumber(samples []*model.Sample) []*model.Lap {
	groups := lo.GroupBy(samples, func(s *model.Sample) int {
		return int(s.LapNumber)
	})
	ret := make([]*model.Lap, 0, len(groups))
	for num, group := range groups {
		ret = append(ret, d.buildLap(num, group))
	}
	sort.Slice(ret, func(i, j int) bool {
		return ret[i].StartTime < ret[j].StartTime
	})
	return ret
}

// detectByHeuristic estimates a lap count from elapsed time over an
// assumed average lap duration and slices the stream into equal-size
// contiguous chunks. A count beyond the sample count clamps to however
// many non-empty chunks fit; chunks below the minimum distance are
// dropped.
func (d *detector) detectByHeuristic(samples []*model.Sample) []*model.Lap {
	if len(samples) < fallbackMinSamples {
		return []*model.Lap{}
	}
	elapsed := samples[len(samples)-1].Time - samples[0].Time
	count := int(elapsed / assumedLapSeconds)
	if count < 1 {
		count = 1
	}
	chunkSize := len(samples) / count
	if chunkSize == 0 {
		chunkSize = 1
	}

	ret := []*model.Lap{}
	for i := 0; i < count; i++ {
		start := i * chunkSize
		if start >= len(samples) {
			break
		}
		end := start + chunkSize
		if i == count-1 || end > len(samples) {
			end = len(samples)
		}
		lap := d.buildLap(len(ret)+1, samples[start:end])
		if lap.Distance < d.minDistance {
			continue
		}
		lap.LapNumber = len(ret) + 1
		ret = append(ret, lap)
	}
	return ret
}

func (d *detector) buildLap(num int, samples []*model.Sample) *model.Lap {
	startTime := samples[0].Time
	endTime := samples[0].Time
	for _, s := range samples {
		if s.Time < startTime {
			startTime = s.Time
		}
		if s.Time > endTime {
			endTime = s.Time
		}
	}
	cum := cumulativeDistance(samples)
	lap := &model.Lap{
		LapNumber:  num,
		StartTime:  startTime,
		EndTime:    endTime,
		LapTime:    endTime - startTime,
		Distance:   cum[len(cum)-1],
		DataPoints: samples,
		Sectors:    makeSectors(samples, cum, d.sectorCount),
		IsValid:    true,
		Label:      model.LapLabelTimed,
	}
	lap.FastestSector = fastestSector(lap.Sectors)
	if d.minLapTime > 0 && lap.LapTime < d.minLapTime {
		lap.IsValid = false
	}
	return lap
}

// labelLaps classifies laps after detection: the first lap of a session
// is the out-lap, the last the in-lap, laps below the minimum distance
// are off-track excursions.
func (d *detector) labelLaps(ret []*model.Lap) {
	if len(ret) >= 2 {
		ret[0].Label = model.LapLabelOutLap
		ret[len(ret)-1].Label = model.LapLabelInLap
	}
	for _, lap := range ret {
		if lap.Distance < d.minDistance {
			lap.Label = model.LapLabelOffTrack
		}
	}
}

// cumulativeDistance returns the running point-to-point distance across
// a lap's samples, one entry per sample.
func cumulativeDistance(samples []*model.Sample) []float64 {
	ret := make([]float64, len(samples))
	for i := 1; i < len(samples); i++ {
		prev, cur := samples[i-1], samples[i]
		ret[i] = ret[i-1] + geo.Distance(
			prev.Latitude, prev.Longitude, cur.Latitude, cur.Longitude)
	}
	return ret
}
