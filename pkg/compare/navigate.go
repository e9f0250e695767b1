package compare

import (
	"fmt"
	"math"

	"github.com/openlaps/vbo-session-go/log"
	"github.com/openlaps/vbo-session-go/pkg/model"
)

// SetPosition moves a tracked session's cursor to an absolute (lap
// index, in-lap sample index). Out-of-range indices are a hard error.
// Positioning the main session repositions every comparator to its
// closest normalized progress.
func (s *Synchronizer) SetPosition(sess *model.Session, lapIdx, dpIdx int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.states[sess]
	if !ok {
		return ErrSessionNotTracked
	}
	if lapIdx < 0 || lapIdx >= len(sess.Laps) {
		return fmt.Errorf("lap index %d out of range [0,%d)", lapIdx, len(sess.Laps))
	}
	if dpIdx < 0 || dpIdx >= len(sess.Laps[lapIdx].DataPoints) {
		return fmt.Errorf("sample index %d out of range [0,%d) in lap %d",
			dpIdx, len(sess.Laps[lapIdx].DataPoints), lapIdx)
	}
	st.lapIdx = lapIdx
	st.dpIdx = dpIdx
	if st == s.main {
		s.syncComparators()
	}
	return nil
}

// SetMainPosition positions the main session.
func (s *Synchronizer) SetMainPosition(lapIdx, dpIdx int) error {
	return s.SetPosition(s.main.session, lapIdx, dpIdx)
}

// Advance moves the main session's cursor by n samples (negative n
// rewinds), stepping across lap boundaries and clamping at the first
// and last sample of the session.
func (s *Synchronizer) Advance(n int) *NormalizedPosition {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.main
	global := flatIndex(st.session, st.lapIdx, st.dpIdx) + n
	total := totalSamples(st.session)
	if global < 0 {
		global = 0
	}
	if global >= total {
		global = total - 1
	}
	st.lapIdx, st.dpIdx = unflattenIndex(st.session, global)
	s.syncComparators()
	return st.position()
}

// JumpToLap positions the main session at the first sample of the lap
// with the given 1-based lap number. Fails when no lap carries that
// number.
func (s *Synchronizer) JumpToLap(lapNumber int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, lap := range s.main.session.Laps {
		if lap.LapNumber == lapNumber {
			s.main.lapIdx = i
			s.main.dpIdx = 0
			s.syncComparators()
			return nil
		}
	}
	return fmt.Errorf("lap number %d not present in main session", lapNumber)
}

// SetMainProgress positions the main session at a normalized progress
// in [0,1]. Progress 1 resolves to the exact last sample of the last
// lap so floating rounding cannot skip it.
func (s *Synchronizer) SetMainProgress(progress float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if progress < 0 || progress > 1 {
		return fmt.Errorf("progress %f outside [0,1]", progress)
	}
	st := s.main
	laps := st.session.Laps
	if progress == 1 {
		st.lapIdx = len(laps) - 1
		st.dpIdx = len(laps[st.lapIdx].DataPoints) - 1
	} else {
		scaled := progress * float64(len(laps))
		st.lapIdx = int(scaled)
		frac := scaled - float64(st.lapIdx)
		st.dpIdx = int(math.Round(frac * float64(len(laps[st.lapIdx].DataPoints)-1)))
	}
	s.syncComparators()
	return nil
}

// MainProgress returns the main session's current normalized progress.
func (s *Synchronizer) MainProgress() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.main.position().NormalizedProgress
}

// MainPosition returns the main session's current position.
func (s *Synchronizer) MainPosition() *NormalizedPosition {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.main.position()
}

// Position returns the current position of any tracked session.
func (s *Synchronizer) Position(sess *model.Session) (*NormalizedPosition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.states[sess]
	if !ok {
		return nil, ErrSessionNotTracked
	}
	return st.position(), nil
}

// Reset re-initializes every tracked session to lap 0, sample 0.
func (s *Synchronizer) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, st := range s.states {
		st.lapIdx = 0
		st.dpIdx = 0
	}
}

// syncComparators repositions every comparator to the sample whose
// normalized progress is closest to the main session's. Callers hold
// the mutex.
func (s *Synchronizer) syncComparators() {
	target := s.main.position().NormalizedProgress
	for _, st := range s.comparators {
		lapIdx, dpIdx, diff := closestByProgress(st.session, target)
		st.lapIdx = lapIdx
		st.dpIdx = dpIdx
		if diff > s.progressTolerance {
			s.logger.Debug("closest match beyond tolerance",
				log.String("session", sessionName(st.session, st.handle.String())),
				log.Float64("diff", diff),
				log.Float64("tolerance", s.progressTolerance))
		}
	}
}

// closestByProgress scans every (lap, sample) pair and returns the pair
// whose normalized progress is closest to target, short-circuiting on a
// near-exact match. Always returns the best point found.
func closestByProgress(sess *model.Session, target float64) (int, int, float64) {
	bestLap, bestDp := 0, 0
	bestDiff := math.Inf(1)
	lapCount := float64(len(sess.Laps))
	for li, lap := range sess.Laps {
		n := len(lap.DataPoints)
		for di := 0; di < n; di++ {
			lapProgress := 0.0
			if n > 1 {
				lapProgress = float64(di) / float64(n-1)
			}
			progress := (float64(li) + lapProgress) / lapCount
			diff := math.Abs(progress - target)
			if diff < bestDiff {
				bestLap, bestDp, bestDiff = li, di, diff
				if bestDiff < nearExactProgress {
					return bestLap, bestDp, bestDiff
				}
			}
		}
	}
	return bestLap, bestDp, bestDiff
}

func flatIndex(sess *model.Session, lapIdx, dpIdx int) int {
	ret := dpIdx
	for i := 0; i < lapIdx; i++ {
		ret += len(sess.Laps[i].DataPoints)
	}
	return ret
}

func totalSamples(sess *model.Session) int {
	ret := 0
	for _, lap := range sess.Laps {
		ret += len(lap.DataPoints)
	}
	return ret
}

func unflattenIndex(sess *model.Session, global int) (int, int) {
	for i, lap := range sess.Laps {
		if global < len(lap.DataPoints) {
			return i, global
		}
		global -= len(lap.DataPoints)
	}
	last := len(sess.Laps) - 1
	return last, len(sess.Laps[last].DataPoints) - 1
}
