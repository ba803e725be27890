// Package session holds the state of one practice session: the current
// reference primitive, the latest fit, and the sequence of scored attempts.
//
// A reference is generated on creation and stays fixed until Next replaces
// it. Every stroke submitted is fitted once and scored against the current
// reference. History lives in memory only.
//
// A Session is meant for a single caller and is not safe for concurrent use.
package session

import (
	"fmt"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/shapefit"
	"github.com/npillmayer/shapefit/engine"
	"github.com/npillmayer/shapefit/fit"
	"github.com/npillmayer/shapefit/score"
	"github.com/npillmayer/shapefit/shape"
)

// tracer writes to trace with key 'shapefit'
func tracer() tracing.Trace {
	return tracing.Select("shapefit")
}

// State is the lifecycle state of the current reference.
type State int

const (
	// Generated: a fresh reference, nothing compared to it yet.
	Generated State = iota
	// Compared: at least one fit has been scored against the reference.
	Compared
)

func (st State) String() string {
	switch st {
	case Generated:
		return "generated"
	case Compared:
		return "compared"
	}
	return fmt.Sprintf("state(%d)", int(st))
}

// Attempt is one scored stroke.
type Attempt struct {
	Round     int // counts references, starting at 1
	Reference shape.Primitive
	Fit       fit.Result
	Score     score.Similarity
}

// Summary aggregates the history of a session.
type Summary struct {
	Attempts    int
	MeanOverall float64
	BestOverall float64
}

// Session is a sequence of attempts at reproducing reference primitives of
// one kind on a canvas of fixed size.
type Session struct {
	eng           *engine.Engine
	kind          shape.Kind
	width, height float64
	round         int
	state         State
	reference     shape.Primitive
	lastFit       *fit.Result
	history       *arraylist.List // of Attempt
}

// New starts a session and generates its first reference.
func New(eng *engine.Engine, kind shape.Kind, canvasWidth, canvasHeight float64) (*Session, error) {
	if eng == nil {
		return nil, fmt.Errorf("session needs an engine")
	}
	if err := shapefit.ValidateCanvas(canvasWidth, canvasHeight); err != nil {
		return nil, err
	}
	s := &Session{
		eng:     eng,
		kind:    kind,
		width:   canvasWidth,
		height:  canvasHeight,
		history: arraylist.New(),
	}
	if err := s.Next(); err != nil {
		return nil, err
	}
	return s, nil
}

// Kind is the primitive kind practised in this session.
func (s *Session) Kind() shape.Kind {
	return s.kind
}

// State is the lifecycle state of the current reference.
func (s *Session) State() State {
	return s.state
}

// Reference is the current reference primitive.
func (s *Session) Reference() shape.Primitive {
	return s.reference
}

// LastFit returns the fit of the latest successfully fitted stroke against
// the current reference, if any.
func (s *Session) LastFit() (fit.Result, bool) {
	if s.lastFit == nil {
		return fit.Result{}, false
	}
	return *s.lastFit, true
}

// Next replaces the reference by a freshly generated one and forgets the
// latest fit. On failure the current reference is kept.
func (s *Session) Next() error {
	ref, err := s.eng.GenerateRandomPrimitive(s.kind, s.width, s.height)
	if err != nil {
		return err
	}
	s.round++
	s.reference = ref
	s.state = Generated
	s.lastFit = nil
	tracer().Infof("session round %d: reference %v", s.round, ref)
	return nil
}

// Submit fits a stroke, scores it against the current reference and
// records the attempt. A stroke which cannot be fitted is not recorded and
// leaves the session unchanged; the caller should ask for a redraw.
func (s *Session) Submit(stroke []shapefit.Pair) (score.Similarity, error) {
	fitted, err := s.eng.FitPrimitive(s.kind, stroke)
	if err != nil {
		return score.Similarity{}, err
	}
	sim, err := s.eng.ScoreSimilarity(s.reference, fitted, s.width)
	if err != nil {
		return score.Similarity{}, err
	}
	s.lastFit = &fitted
	s.state = Compared
	s.history.Add(Attempt{
		Round:     s.round,
		Reference: s.reference,
		Fit:       fitted,
		Score:     sim,
	})
	return sim, nil
}

// History returns all recorded attempts, oldest first.
func (s *Session) History() []Attempt {
	attempts := make([]Attempt, 0, s.history.Size())
	it := s.history.Iterator()
	for it.Next() {
		attempts = append(attempts, it.Value().(Attempt))
	}
	return attempts
}

// Last returns the most recent attempt, if any.
func (s *Session) Last() (Attempt, bool) {
	v, ok := s.history.Get(s.history.Size() - 1)
	if !ok {
		return Attempt{}, false
	}
	return v.(Attempt), true
}

// Summary aggregates the overall scores of all attempts.
func (s *Session) Summary() Summary {
	var sum Summary
	it := s.history.Iterator()
	for it.Next() {
		overall := it.Value().(Attempt).Score.Overall
		sum.Attempts++
		sum.MeanOverall += overall
		if overall > sum.BestOverall {
			sum.BestOverall = overall
		}
	}
	if sum.Attempts > 0 {
		sum.MeanOverall = shapefit.Round1(sum.MeanOverall / float64(sum.Attempts))
	}
	return sum
}
