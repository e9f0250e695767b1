package laps

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openlaps/vbo-session-go/pkg/model"
)

func TestFindFastestLap(t *testing.T) {
	laps := []*model.Lap{
		{LapNumber: 1, LapTime: 60, IsValid: true},
		{LapNumber: 2, LapTime: 45, IsValid: true},
		{LapNumber: 3, LapTime: 50, IsValid: false},
	}
	fastest := FindFastestLap(laps)
	assert.NotNil(t, fastest)
	assert.Equal(t, 2, fastest.LapNumber)
	assert.Equal(t, 45.0, fastest.LapTime)
}

func TestFindFastestLap_NoValidLaps(t *testing.T) {
	assert.Nil(t, FindFastestLap(nil))
	assert.Nil(t, FindFastestLap([]*model.Lap{
		{LapNumber: 1, LapTime: 60, IsValid: false},
	}))
}

func TestAverageLapTime(t *testing.T) {
	laps := []*model.Lap{
		{LapTime: 60, IsValid: true},
		{LapTime: 40, IsValid: true},
		{LapTime: 1000, IsValid: false},
	}
	assert.Equal(t, 50.0, AverageLapTime(laps))
	assert.Equal(t, 0.0, AverageLapTime(nil))
}

func TestBestSectorTimes(t *testing.T) {
	laps := []*model.Lap{
		{
			IsValid: true,
			Sectors: []*model.Sector{
				{SectorNumber: 1, SectorTime: 20},
				{SectorNumber: 2, SectorTime: 25},
			},
		},
		{
			IsValid: true,
			Sectors: []*model.Sector{
				{SectorNumber: 1, SectorTime: 18},
				{SectorNumber: 2, SectorTime: 27},
			},
		},
		{
			IsValid: false,
			Sectors: []*model.Sector{
				{SectorNumber: 1, SectorTime: 1},
			},
		},
	}
	best := BestSectorTimes(laps)
	assert.Equal(t, map[int]float64{1: 18, 2: 25}, best)
	assert.Empty(t, BestSectorTimes(nil))
}
