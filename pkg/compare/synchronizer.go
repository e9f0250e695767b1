package compare

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/openlaps/vbo-session-go/log"
	"github.com/openlaps/vbo-session-go/pkg/model"
)

var ErrSessionNotTracked = errors.New("session not tracked by synchronizer")

const (
	defaultProgressTolerance = 0.01

	// nearExactProgress short-circuits the closest-match scan.
	nearExactProgress = 1e-4
)

// NormalizedPosition locates one sample on the shared progress axis.
// Ephemeral: recomputed on every navigation call, never stored.
type NormalizedPosition struct {
	LapNumber          int           `json:"lapNumber"`
	LapProgress        float64       `json:"lapProgress"`
	SessionProgress    float64       `json:"sessionProgress"`
	DataPointIndex     int           `json:"dataPointIndex"`
	Sample             *model.Sample `json:"sample"`
	NormalizedProgress float64       `json:"normalizedProgress"`
}

// sessionState tracks the navigation cursor of one session under
// comparison. Sessions get a synthetic handle at construction so they
// can be identified in snapshots and errors.
type sessionState struct {
	handle  uuid.UUID
	session *model.Session
	lapIdx  int
	dpIdx   int
}

// Synchronizer aligns one main session and any number of comparator
// sessions onto a shared normalized progress axis. State is guarded by
// a mutex; the navigation model is still single-writer.
type Synchronizer struct {
	mu                   sync.Mutex
	main                 *sessionState
	comparators          []*sessionState
	states               map[*model.Session]*sessionState
	allowDifferentTracks bool
	progressTolerance    float64
	logger               *log.Logger
}

type Option func(*Synchronizer)

// WithAllowDifferentTracks disables the circuit-name check at
// construction time.
func WithAllowDifferentTracks(allow bool) Option {
	return func(s *Synchronizer) {
		s.allowDifferentTracks = allow
	}
}

// WithProgressTolerance sets the progress difference considered an
// acceptable cross-session match. The closest-match scan always returns
// the best point found; matches beyond the tolerance are only reported
// on debug level.
func WithProgressTolerance(tolerance float64) Option {
	return func(s *Synchronizer) {
		s.progressTolerance = tolerance
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(s *Synchronizer) {
		s.logger = logger
	}
}

// NewSynchronizer validates and registers the sessions. Every session
// needs at least one lap and every lap at least one sample; comparator
// sessions must be recorded on the main session's circuit unless
// different tracks are allowed.
func NewSynchronizer(
	main *model.Session,
	comparators []*model.Session,
	opts ...Option,
) (*Synchronizer, error) {
	s := &Synchronizer{
		states:            map[*model.Session]*sessionState{},
		progressTolerance: defaultProgressTolerance,
		logger:            log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.Named("sync")

	if err := validateSession(main, "main"); err != nil {
		return nil, err
	}
	s.main = s.register(main)
	for i, comp := range comparators {
		name := sessionName(comp, fmt.Sprintf("comparator %d", i))
		if err := validateSession(comp, name); err != nil {
			return nil, err
		}
		if !s.allowDifferentTracks {
			if err := checkSameTrack(main, comp, name); err != nil {
				return nil, err
			}
		}
		s.comparators = append(s.comparators, s.register(comp))
	}
	s.logger.Debug("synchronizer ready",
		log.Int("comparators", len(s.comparators)),
		log.Float64("progressTolerance", s.progressTolerance))
	return s, nil
}

func (s *Synchronizer) register(sess *model.Session) *sessionState {
	st := &sessionState{handle: uuid.New(), session: sess}
	s.states[sess] = st
	return st
}

func validateSession(sess *model.Session, name string) error {
	if len(sess.Laps) == 0 {
		return fmt.Errorf("session %s has no laps", name)
	}
	for i, lap := range sess.Laps {
		if len(lap.DataPoints) == 0 {
			return fmt.Errorf("session %s lap %d has no samples", name, i)
		}
	}
	return nil
}

func checkSameTrack(main, comp *model.Session, name string) error {
	mainCircuit := main.CircuitName()
	compCircuit := comp.CircuitName()
	if mainCircuit == "" || compCircuit == "" {
		return nil
	}
	if mainCircuit != compCircuit {
		return fmt.Errorf(
			"session %s circuit %q does not match main circuit %q",
			name, compCircuit, mainCircuit)
	}
	return nil
}

func sessionName(sess *model.Session, fallback string) string {
	if sess.FilePath != "" {
		return sess.FilePath
	}
	return fallback
}

// positionAt computes the normalized position of a cursor. lapProgress
// is 0 for a single-sample lap; sessionProgress is the fraction of
// completed laps plus the in-lap fraction.
func positionAt(sess *model.Session, lapIdx, dpIdx int) *NormalizedPosition {
	lap := sess.Laps[lapIdx]
	lapProgress := 0.0
	if n := len(lap.DataPoints); n > 1 {
		lapProgress = float64(dpIdx) / float64(n-1)
	}
	sessionProgress := (float64(lapIdx) + lapProgress) / float64(len(sess.Laps))
	return &NormalizedPosition{
		LapNumber:          lap.LapNumber,
		LapProgress:        lapProgress,
		SessionProgress:    sessionProgress,
		DataPointIndex:     dpIdx,
		Sample:             lap.DataPoints[dpIdx],
		NormalizedProgress: sessionProgress,
	}
}

func (st *sessionState) position() *NormalizedPosition {
	return positionAt(st.session, st.lapIdx, st.dpIdx)
}
