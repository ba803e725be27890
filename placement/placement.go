// Package placement generates random reference primitives which fit on a
// canvas.
//
// Generation is by rejection sampling: random candidates are drawn until
// one satisfies the placement constraints. Every sampling loop is capped by
// Config.MaxIterations and fails with shapefit.ErrPlacementUnsatisfiable
// once the cap is exhausted, e.g. for canvases too small to hold an
// ellipse together with its padding.
package placement

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/shapefit"
	"github.com/npillmayer/shapefit/shape"
)

// tracer writes to trace with key 'shapefit'
func tracer() tracing.Trace {
	return tracing.Select("shapefit")
}

// Config holds the placement constraints. It is a value type, the zero
// value is not useful; start with DefaultConfig.
type Config struct {
	Margin           float64 // fraction of a dimension kept free at the borders, for segments
	MinSegmentLength float64 // fraction of the canvas width a segment must exceed
	MinEllipseExtent float64 // fraction of the smaller dimension
	MaxEllipseExtent float64 // fraction of the smaller dimension
	EllipsePadding   float64 // added to the circumscribing radius, in canvas units
	MaxIterations    int     // cap for every rejection loop
}

// DefaultConfig returns the standard placement constraints.
func DefaultConfig() Config {
	return Config{
		Margin:           0.1,
		MinSegmentLength: 1.0 / 3.0,
		MinEllipseExtent: 0.1,
		MaxEllipseExtent: 1.0 / 3.0,
		EllipsePadding:   35,
		MaxIterations:    10000,
	}
}

// Validate checks a configuration for consistency.
func (c Config) Validate() error {
	switch {
	case !(c.Margin >= 0 && c.Margin < 0.5):
		return fmt.Errorf("placement margin %g out of range [0,0.5)", c.Margin)
	case !(c.MinSegmentLength >= 0):
		return fmt.Errorf("minimum segment length %g negative", c.MinSegmentLength)
	case !(c.MinEllipseExtent > 0 && c.MinEllipseExtent <= c.MaxEllipseExtent):
		return fmt.Errorf("ellipse extent range [%g,%g] invalid", c.MinEllipseExtent, c.MaxEllipseExtent)
	case !(c.EllipsePadding >= 0) || math.IsInf(c.EllipsePadding, 0):
		return fmt.Errorf("ellipse padding %g invalid", c.EllipsePadding)
	case c.MaxIterations <= 0:
		return fmt.Errorf("iteration cap %d must be positive", c.MaxIterations)
	}
	return nil
}

// Generator draws random primitives. It is not safe for concurrent use
// when created with an explicit random source.
type Generator struct {
	config Config
	rnd    *rand.Rand // nil: use the package-level source of math/rand/v2
}

// NewGenerator creates a generator. rnd may be nil, in which case the
// (concurrency-safe) top-level functions of math/rand/v2 are used.
func NewGenerator(config Config, rnd *rand.Rand) (*Generator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Generator{config: config, rnd: rnd}, nil
}

// Config returns the placement constraints of g.
func (g *Generator) Config() Config {
	return g.config
}

// uniform returns a random number in [lo,hi).
func (g *Generator) uniform(lo, hi float64) float64 {
	var f float64
	if g.rnd != nil {
		f = g.rnd.Float64()
	} else {
		f = rand.Float64()
	}
	return lo + f*(hi-lo)
}

func (g *Generator) point(c Canvas) shapefit.Pair {
	return shapefit.P(g.uniform(0, c.Width), g.uniform(0, c.Height))
}

// Random draws a primitive of the given kind.
func (g *Generator) Random(kind shape.Kind, width, height float64) (shape.Primitive, error) {
	var p shape.Primitive
	var err error
	switch kind {
	case shape.KindSegment:
		p, err = g.Segment(width, height)
	case shape.KindEllipse:
		p, err = g.Ellipse(width, height)
	default:
		return nil, fmt.Errorf("%w: cannot generate %v", shapefit.ErrUnknownKind, kind)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Segment draws a segment with both endpoints clear of the canvas margin
// and a length exceeding MinSegmentLength × width.
func (g *Generator) Segment(width, height float64) (shape.Segment, error) {
	canvas, err := NewCanvas(width, height, g.config.Margin)
	if err != nil {
		return shape.Segment{}, err
	}
	minLength := width * g.config.MinSegmentLength
	for i := 1; i <= g.config.MaxIterations; i++ {
		p0, p1 := g.point(canvas), g.point(canvas)
		if !canvas.WithinMargin(p0) || !canvas.WithinMargin(p1) {
			continue
		}
		if shapefit.Distance(p0, p1) > minLength {
			s := shape.NewSegment(p0, p1)
			tracer().Infof("placed %v after %d iterations", s, i)
			return s, nil
		}
	}
	return shape.Segment{}, g.exhausted(shape.KindSegment, canvas)
}

// Ellipse draws an ellipse with extents between MinEllipseExtent and
// MaxEllipseExtent of the smaller canvas dimension, Width ≤ Height and a
// rotation in [0,π). The circle circumscribing it, enlarged by
// EllipsePadding, has to lie on the canvas.
func (g *Generator) Ellipse(width, height float64) (shape.Ellipse, error) {
	canvas, err := NewCanvas(width, height, g.config.Margin)
	if err != nil {
		return shape.Ellipse{}, err
	}
	lo, hi := canvas.Dim()*g.config.MinEllipseExtent, canvas.Dim()*g.config.MaxEllipseExtent
	for i := 1; i <= g.config.MaxIterations; i++ {
		center := g.point(canvas)
		w, h := g.uniform(lo, hi), g.uniform(lo, hi)
		if w > h {
			w, h = h, w
		}
		rotation := g.uniform(0, math.Pi)
		radius := math.Sqrt(w*h)/2 + g.config.EllipsePadding
		if canvas.ContainsCircle(center, radius) {
			e := shape.NewEllipse(center, w, h, rotation)
			tracer().Infof("placed %v after %d iterations", e, i)
			return e, nil
		}
	}
	return shape.Ellipse{}, g.exhausted(shape.KindEllipse, canvas)
}

func (g *Generator) exhausted(kind shape.Kind, canvas Canvas) error {
	tracer().Errorf("no placement for %v on %gx%g canvas", kind, canvas.Width, canvas.Height)
	return fmt.Errorf("%w: no %v fits a %gx%g canvas after %d iterations",
		shapefit.ErrPlacementUnsatisfiable, kind, canvas.Width, canvas.Height, g.config.MaxIterations)
}
