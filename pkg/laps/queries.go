package laps

import (
	"github.com/samber/lo"

	"github.com/openlaps/vbo-session-go/pkg/model"
)

// FindFastestLap returns the valid lap with the minimum lap time, or
// nil when no valid lap exists.
func FindFastestLap(laps []*model.Lap) *model.Lap {
	valid := validLaps(laps)
	if len(valid) == 0 {
		return nil
	}
	return lo.MinBy(valid, func(a, b *model.Lap) bool {
		return a.LapTime < b.LapTime
	})
}

// AverageLapTime returns the mean lap time over valid laps, 0 if none.
func AverageLapTime(laps []*model.Lap) float64 {
	valid := validLaps(laps)
	if len(valid) == 0 {
		return 0
	}
	sum := lo.SumBy(valid, func(l *model.Lap) float64 { return l.LapTime })
	return sum / float64(len(valid))
}

// BestSectorTimes returns the minimum sector time per sector number
// across all valid laps.
func BestSectorTimes(laps []*model.Lap) map[int]float64 {
	ret := map[int]float64{}
	for _, lap := range validLaps(laps) {
		for _, s := range lap.Sectors {
			if best, ok := ret[s.SectorNumber]; !ok || s.SectorTime < best {
				ret[s.SectorNumber] = s.SectorTime
			}
		}
	}
	return ret
}

func validLaps(laps []*model.Lap) []*model.Lap {
	return lo.Filter(laps, func(l *model.Lap, _ int) bool { return l.IsValid })
}
