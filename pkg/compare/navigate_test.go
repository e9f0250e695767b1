package compare

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openlaps/vbo-session-go/pkg/model"
)

func TestAdvance_CrossesLapBoundary(t *testing.T) {
	main := testSession("main.vbo", "Spa", []float64{0, 1, 2}, []float64{3, 4, 5})
	sync, err := NewSynchronizer(main, nil)
	require.NoError(t, err)

	require.NoError(t, sync.SetMainPosition(0, 2))
	pos := sync.Advance(1)
	assert.Equal(t, 2, pos.LapNumber)
	assert.Equal(t, 0, pos.DataPointIndex)

	pos = sync.Advance(-1)
	assert.Equal(t, 1, pos.LapNumber)
	assert.Equal(t, 2, pos.DataPointIndex)
}

func TestAdvance_ClampsAtEnds(t *testing.T) {
	main := testSession("main.vbo", "Spa", []float64{0, 1}, []float64{2, 3})
	sync, err := NewSynchronizer(main, nil)
	require.NoError(t, err)

	pos := sync.Advance(-5)
	assert.Equal(t, 1, pos.LapNumber)
	assert.Equal(t, 0, pos.DataPointIndex)

	pos = sync.Advance(100)
	assert.Equal(t, 2, pos.LapNumber)
	assert.Equal(t, 1, pos.DataPointIndex)
	assert.Equal(t, 1.0, pos.NormalizedProgress)
}

func TestReset_Idempotent(t *testing.T) {
	main := testSession("main.vbo", "Spa", []float64{0, 1, 2}, []float64{3, 4, 5})
	comp := testSession("comp.vbo", "Spa", []float64{0, 2, 4})
	sync, err := NewSynchronizer(main, []*model.Session{comp})
	require.NoError(t, err)

	sync.Advance(4)
	sync.Reset()
	first := sync.Snapshot()
	sync.Reset()
	second := sync.Snapshot()

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("snapshots differ after second reset (-first +second):\n%s", diff)
	}
	assert.Equal(t, 0.0, first.Main.Position.NormalizedProgress)
	assert.Equal(t, 0, first.Comparators[0].Position.DataPointIndex)
}

func TestClosestMatch(t *testing.T) {
	main := testSession("main.vbo", "Spa", []float64{0, 1, 2}, []float64{3, 4, 5})
	comp := testSession("comp.vbo", "Spa", []float64{0, 2, 4, 6, 8})
	sync, err := NewSynchronizer(main, []*model.Session{comp})
	require.NoError(t, err)

	require.NoError(t, sync.SetMainPosition(1, 0))
	pos, err := sync.ClosestMatch(main, comp)
	require.NoError(t, err)
	assert.Equal(t, 2, pos.DataPointIndex)
	assert.InDelta(t, 0.5, pos.NormalizedProgress, 1e-9)

	untracked := testSession("other.vbo", "Spa", []float64{0})
	_, err = sync.ClosestMatch(main, untracked)
	assert.ErrorIs(t, err, ErrSessionNotTracked)
	_, err = sync.ClosestMatch(untracked, comp)
	assert.ErrorIs(t, err, ErrSessionNotTracked)
}

func TestDeltas(t *testing.T) {
	main := testSession("main.vbo", "Spa", []float64{0, 10, 20}, []float64{30, 40, 50})
	comp := testSession("comp.vbo", "Spa", []float64{0, 12, 24}, []float64{36, 48, 60})
	sync, err := NewSynchronizer(main, []*model.Session{comp})
	require.NoError(t, err)

	require.NoError(t, sync.SetMainPosition(1, 0))
	deltas := sync.Deltas()
	require.Len(t, deltas, 1)
	assert.Equal(t, "comp.vbo", deltas[0].FilePath)
	// comparator aligns on progress 0.5: its sample at time 36 vs main at 30
	assert.InDelta(t, 6.0, deltas[0].TimeDelta, 1e-9)
	assert.Equal(t, 2, deltas[0].LapNumber)
	assert.InDelta(t, 0.5, deltas[0].Progress, 1e-9)
	assert.Equal(t, 136.0, deltas[0].Velocity)
}

func TestSnapshot(t *testing.T) {
	main := testSession("main.vbo", "Spa", []float64{0, 1, 2})
	comp := testSession("comp.vbo", "Spa", []float64{0, 1})
	sync, err := NewSynchronizer(main, []*model.Session{comp})
	require.NoError(t, err)

	snap := sync.Snapshot()
	assert.Equal(t, "main.vbo", snap.Main.FilePath)
	require.Len(t, snap.Comparators, 1)
	assert.NotEqual(t, snap.Main.Handle, snap.Comparators[0].Handle)
	assert.NotNil(t, snap.Comparators[0].Position.Sample)
}
