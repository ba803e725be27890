// Package engine is the entry point for presentation layers: it generates
// reference primitives, fits primitives to strokes and scores fits against
// references.
//
// An Engine holds nothing but its configuration and a random source, so a
// single Engine may serve many independent sessions. With the default
// random source it is safe for concurrent use.
//
//	eng, _ := engine.New()
//	ref, err := eng.GenerateRandomPrimitive(shape.KindEllipse, 300, 300)
//	...
//	fitted, err := eng.FitPrimitive(shape.KindEllipse, stroke)
//	...
//	sim, err := eng.ScoreSimilarity(ref, fitted, 300)
package engine

import (
	"fmt"
	"math/rand/v2"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/shapefit"
	"github.com/npillmayer/shapefit/fit"
	"github.com/npillmayer/shapefit/placement"
	"github.com/npillmayer/shapefit/score"
	"github.com/npillmayer/shapefit/shape"
)

// tracer writes to trace with key 'shapefit'
func tracer() tracing.Trace {
	return tracing.Select("shapefit")
}

// Engine bundles generation, fitting and scoring.
type Engine struct {
	scoring   score.Config
	generator *placement.Generator
}

type options struct {
	scoring   score.Config
	placement placement.Config
	rnd       *rand.Rand
}

// Option configures an Engine.
type Option func(*options)

// WithScoreConfig replaces the default scoring weights and sensitivities.
func WithScoreConfig(c score.Config) Option {
	return func(o *options) {
		o.scoring = c
	}
}

// WithPlacementConfig replaces the default placement constraints.
func WithPlacementConfig(c placement.Config) Option {
	return func(o *options) {
		o.placement = c
	}
}

// WithRand sets an explicit random source, e.g. a seeded one for
// reproducible references. The resulting Engine is not safe for
// concurrent use.
func WithRand(rnd *rand.Rand) Option {
	return func(o *options) {
		o.rnd = rnd
	}
}

// New creates an engine. Without options it uses score.DefaultConfig and
// placement.DefaultConfig.
func New(opts ...Option) (*Engine, error) {
	o := options{
		scoring:   score.DefaultConfig(),
		placement: placement.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.scoring.Validate(); err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	gen, err := placement.NewGenerator(o.placement, o.rnd)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	return &Engine{scoring: o.scoring, generator: gen}, nil
}

// ScoreConfig returns the scoring configuration of the engine.
func (eng *Engine) ScoreConfig() score.Config {
	return eng.scoring
}

// PlacementConfig returns the placement constraints of the engine.
func (eng *Engine) PlacementConfig() placement.Config {
	return eng.generator.Config()
}

// GenerateRandomPrimitive draws a reference primitive of the given kind
// which fits on a canvas of the given dimensions. It fails with
// shapefit.ErrPlacementUnsatisfiable if no placement is found within the
// iteration cap.
func (eng *Engine) GenerateRandomPrimitive(kind shape.Kind, canvasWidth, canvasHeight float64) (shape.Primitive, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %v", shapefit.ErrUnknownKind, kind)
	}
	return eng.generator.Random(kind, canvasWidth, canvasHeight)
}

// FitPrimitive fits a primitive of the given kind to a stroke. It fails with
// shapefit.ErrInsufficientPoints or shapefit.ErrDegenerateInput.
func (eng *Engine) FitPrimitive(kind shape.Kind, stroke []shapefit.Pair) (fit.Result, error) {
	r, err := fit.Primitive(kind, stroke)
	if err != nil {
		tracer().Debugf("stroke of %d points not fitted: %v", len(stroke), err)
	}
	return r, err
}

// ShapeParameters returns center, size and orientation of a primitive.
func (eng *Engine) ShapeParameters(p shape.Primitive) shape.Parameters {
	return shape.ParametersOf(p)
}

// ScoreSimilarity scores a fit against a reference of the same kind.
func (eng *Engine) ScoreSimilarity(reference shape.Primitive, fitted fit.Result, canvasWidth float64) (score.Similarity, error) {
	return score.Compare(reference, fitted, canvasWidth, eng.scoring)
}
