// Package fit fits canonical primitives to freehand strokes.
//
// A stroke is the ordered sequence of points captured while the pointer was
// down. Line fits a straight segment by total least squares (orthogonal
// regression), Ellipse fits an ellipse from the principal axes of the point
// covariance. Both report a fidelity in (0,1], which is 1 for a stroke lying
// exactly on the fitted outline and decays as the stroke departs from it.
//
// Fitting is deterministic and has no side effects apart from tracing.
// Strokes which are too short fail with shapefit.ErrInsufficientPoints,
// structurally degenerate strokes (e.g., all points identical, or collinear
// points given to the ellipse fitter) fail with shapefit.ErrDegenerateInput.
package fit

import (
	"fmt"
	"math"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/shapefit"
	"github.com/npillmayer/shapefit/shape"
)

// tracer writes to trace with key 'shapefit'
func tracer() tracing.Trace {
	return tracing.Select("shapefit")
}

const (
	// MinLinePoints is the minimum stroke length for fitting a segment.
	MinLinePoints = 2
	// MinEllipsePoints is the minimum stroke length for fitting an ellipse.
	MinEllipsePoints = 4

	lineFidelityScale    = 40.0 // mean error relative to 1/40 of segment length
	ellipseFidelityScale = 0.2  // relative residual SSR/SST
)

// Result is a fitted primitive together with its fidelity to the stroke it
// was fitted from.
type Result struct {
	Primitive shape.Primitive
	Fidelity  float64 // in (0,1]
}

// Kind is the kind of the fitted primitive.
func (r Result) Kind() shape.Kind {
	return r.Primitive.Kind()
}

func (r Result) String() string {
	return fmt.Sprintf("%v (fidelity %.4f)", r.Primitive, r.Fidelity)
}

// Primitive fits a primitive of the given kind to a stroke.
func Primitive(kind shape.Kind, stroke []shapefit.Pair) (Result, error) {
	switch kind {
	case shape.KindSegment:
		return Line(stroke)
	case shape.KindEllipse:
		return Ellipse(stroke)
	}
	return Result{}, fmt.Errorf("%w: cannot fit %v", shapefit.ErrUnknownKind, kind)
}

// MinPoints returns the minimum stroke length for fitting kind, or 0 for an
// unknown kind.
func MinPoints(kind shape.Kind) int {
	switch kind {
	case shape.KindSegment:
		return MinLinePoints
	case shape.KindEllipse:
		return MinEllipsePoints
	}
	return 0
}

// checkStroke verifies length and finiteness of a stroke.
func checkStroke(kind shape.Kind, stroke []shapefit.Pair) error {
	if need := MinPoints(kind); len(stroke) < need {
		tracer().Errorf("%v fit rejected: %d points", kind, len(stroke))
		return fmt.Errorf("%w: %v needs at least %d points, got %d",
			shapefit.ErrInsufficientPoints, kind, need, len(stroke))
	}
	for i, pt := range stroke {
		if !pt.IsFinite() {
			return fmt.Errorf("%w: stroke point %d is %v", shapefit.ErrDegenerateInput, i, pt)
		}
	}
	return nil
}

// checkResult guards against non-finite output. A fidelity which
// underflowed to 0 for a very poor but valid fit is kept at the smallest
// positive value.
func checkResult(r Result) (Result, error) {
	if err := r.Primitive.Validate(); err != nil {
		return Result{}, err
	}
	if !shapefit.IsFinite(r.Fidelity) || r.Fidelity < 0 {
		return Result{}, fmt.Errorf("%w: fidelity %g", shapefit.ErrDegenerateInput, r.Fidelity)
	}
	if r.Fidelity == 0 {
		tracer().Debugf("fidelity underflow for %v", r.Primitive)
		r.Fidelity = math.SmallestNonzeroFloat64
	} else if r.Fidelity > 1 {
		r.Fidelity = 1
	}
	tracer().Infof("fitted %s", r)
	return r, nil
}
