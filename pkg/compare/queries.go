package compare

import (
	"github.com/google/uuid"

	"github.com/openlaps/vbo-session-go/pkg/model"
)

// SessionPosition pairs a tracked session with its current position.
type SessionPosition struct {
	Handle   uuid.UUID           `json:"handle"`
	FilePath string              `json:"filePath"`
	Position *NormalizedPosition `json:"position"`
}

// Snapshot is the synchronized view over all tracked sessions.
type Snapshot struct {
	Main        *SessionPosition   `json:"main"`
	Comparators []*SessionPosition `json:"comparators"`
}

// Delta summarizes one comparator's offset from the main session.
type Delta struct {
	Handle    uuid.UUID `json:"handle"`
	FilePath  string    `json:"filePath"`
	TimeDelta float64   `json:"timeDelta"`
	LapNumber int       `json:"lapNumber"`
	Progress  float64   `json:"progress"`
	Velocity  float64   `json:"velocity"`
}

// ClosestMatch locates the sample in target closest to source's current
// normalized progress. Both sessions must be tracked.
func (s *Synchronizer) ClosestMatch(
	source, target *model.Session,
) (*NormalizedPosition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	src, ok := s.states[source]
	if !ok {
		return nil, ErrSessionNotTracked
	}
	if _, ok := s.states[target]; !ok {
		return nil, ErrSessionNotTracked
	}
	lapIdx, dpIdx, _ := closestByProgress(target, src.position().NormalizedProgress)
	return positionAt(target, lapIdx, dpIdx), nil
}

// Snapshot returns the current sample of the main session and of every
// comparator.
func (s *Synchronizer) Snapshot() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	ret := &Snapshot{
		Main:        snapshotOf(s.main),
		Comparators: make([]*SessionPosition, 0, len(s.comparators)),
	}
	for _, st := range s.comparators {
		ret.Comparators = append(ret.Comparators, snapshotOf(st))
	}
	return ret
}

// Deltas returns each comparator's wall-clock offset from the main
// session along with its lap, progress and speed.
func (s *Synchronizer) Deltas() []*Delta {
	s.mu.Lock()
	defer s.mu.Unlock()
	mainPos := s.main.position()
	ret := make([]*Delta, 0, len(s.comparators))
	for _, st := range s.comparators {
		pos := st.position()
		ret = append(ret, &Delta{
			Handle:    st.handle,
			FilePath:  st.session.FilePath,
			TimeDelta: pos.Sample.Time - mainPos.Sample.Time,
			LapNumber: pos.LapNumber,
			Progress:  pos.NormalizedProgress,
			Velocity:  pos.Sample.Velocity,
		})
	}
	return ret
}

func snapshotOf(st *sessionState) *SessionPosition {
	return &SessionPosition{
		Handle:   st.handle,
		FilePath: st.session.FilePath,
		Position: st.position(),
	}
}
