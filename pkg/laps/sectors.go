package laps

import (
	"github.com/openlaps/vbo-session-go/pkg/model"
)

// GenerateSectors divides a lap's samples into count equal-size
// contiguous sectors; the last sector absorbs the remainder. A count
// <= 0 yields no sectors, a count beyond the sample count clamps to
// however many non-empty chunks fit.
func GenerateSectors(samples []*model.Sample, count int) []*model.Sector {
	return makeSectors(samples, cumulativeDistance(samples), count)
}

func makeSectors(samples []*model.Sample, cum []float64, count int) []*model.Sector {
	ret := []*model.Sector{}
	if count <= 0 || len(samples) == 0 {
		return ret
	}
	chunkSize := len(samples) / count
	if chunkSize == 0 {
		chunkSize = 1
	}
	for i := 0; i < count; i++ {
		start := i * chunkSize
		if start >= len(samples) {
			break
		}
		end := start + chunkSize
		if i == count-1 || end > len(samples) {
			end = len(samples)
		}
		ret = append(ret, &model.Sector{
			SectorNumber:  len(ret) + 1,
			StartTime:     samples[start].Time,
			EndTime:       samples[end-1].Time,
			SectorTime:    samples[end-1].Time - samples[start].Time,
			StartDistance: cum[start],
			EndDistance:   cum[end-1],
		})
	}
	return ret
}

// fastestSector returns the sector number with the minimum sector time,
// or 0 when there are no sectors.
func fastestSector(sectors []*model.Sector) int {
	ret := 0
	best := 0.0
	for _, s := range sectors {
		if ret == 0 || s.SectorTime < best {
			ret = s.SectorNumber
			best = s.SectorTime
		}
	}
	return ret
}
