// Package score compares a fitted primitive with a reference primitive of
// the same kind.
//
// Every sub-score is a Gaussian decay
//
//	10 · exp( -Δ² / S )
//
// of the difference Δ of one parameter, with a sensitivity constant S
// controlling how fast the score falls off. Sub-scores and the weighted
// overall score lie in [0,10] and are rounded to one decimal.
//
// Compare is pure: it holds no state, and all weights and sensitivities
// are taken from the Config value passed in.
package score

import (
	"fmt"
	"math"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/shapefit"
	"github.com/npillmayer/shapefit/fit"
	"github.com/npillmayer/shapefit/shape"
)

// tracer writes to trace with key 'shapefit'
func tracer() tracing.Trace {
	return tracing.Select("shapefit")
}

// Weights are the relative weights of the sub-scores in the overall score.
type Weights struct {
	Location    float64
	Size        float64
	Orientation float64
	Fidelity    float64
}

func (w Weights) sum() float64 {
	return w.Location + w.Size + w.Orientation + w.Fidelity
}

// Config holds weights and sensitivity constants. It is passed by value
// and never modified by this package.
type Config struct {
	Weights Weights
	// Location sensitivity is canvasWidth² / LocationDivisor.
	LocationDivisor float64
	// Orientation sensitivity, in degrees².
	OrientationSensitivity float64
	// Size sensitivity is referenceSize² / SizeDivisor.
	SizeDivisor float64
	// Aspect-ratio sensitivity, used for near-circular reference ellipses.
	AspectSensitivity float64
}

// DefaultConfig returns the standard scoring configuration.
func DefaultConfig() Config {
	return Config{
		Weights: Weights{
			Location:    1.5,
			Size:        1,
			Orientation: 1,
			Fidelity:    0.75,
		},
		LocationDivisor:        300,
		OrientationSensitivity: 100,
		SizeDivisor:            30,
		AspectSensitivity:      0.1,
	}
}

// Validate checks that all constants are positive (weights may be zero,
// but not all of them).
func (c Config) Validate() error {
	w := c.Weights
	for _, x := range []float64{w.Location, w.Size, w.Orientation, w.Fidelity} {
		if !(x >= 0) || math.IsInf(x, 0) {
			return fmt.Errorf("score weight %g invalid", x)
		}
	}
	if !(w.sum() > 0) {
		return fmt.Errorf("score weights must not all be zero")
	}
	for _, s := range []float64{c.LocationDivisor, c.OrientationSensitivity, c.SizeDivisor, c.AspectSensitivity} {
		if !(s > 0) || math.IsInf(s, 0) {
			return fmt.Errorf("score sensitivity %g invalid", s)
		}
	}
	return nil
}

// Similarity collects the sub-scores of a comparison, each in [0,10].
type Similarity struct {
	Location    float64
	Size        float64
	Orientation float64
	Fidelity    float64
	Overall     float64
}

func (s Similarity) String() string {
	return fmt.Sprintf("location %.1f | size %.1f | orientation %.1f | fidelity %.1f | overall %.1f",
		s.Location, s.Size, s.Orientation, s.Fidelity, s.Overall)
}

// Compare scores a fitted primitive against a reference of the same kind,
// drawn on a canvas of the given width.
func Compare(reference shape.Primitive, fitted fit.Result, canvasWidth float64, config Config) (Similarity, error) {
	if reference == nil || fitted.Primitive == nil {
		return Similarity{}, fmt.Errorf("%w: missing primitive", shapefit.ErrDegenerateInput)
	}
	if reference.Kind() != fitted.Kind() {
		return Similarity{}, fmt.Errorf("%w: reference is %v, fit is %v",
			shapefit.ErrKindMismatch, reference.Kind(), fitted.Kind())
	}
	if !shapefit.IsFinite(canvasWidth) || canvasWidth <= 0 {
		return Similarity{}, fmt.Errorf("%w: width %g", shapefit.ErrInvalidCanvas, canvasWidth)
	}
	if err := config.Validate(); err != nil {
		return Similarity{}, err
	}
	r, f := reference.Parameters(), fitted.Primitive.Parameters()
	dist := shapefit.Distance(r.Center, f.Center)
	var s Similarity
	s.Location = shapefit.Round1(decay(dist, canvasWidth*canvasWidth/config.LocationDivisor))
	orientation := shapefit.Round1(decay(shapefit.OrientationDelta(r.Orientation, f.Orientation), config.OrientationSensitivity))
	re, ok1 := reference.(shape.Ellipse)
	fe, ok2 := fitted.Primitive.(shape.Ellipse)
	if ok1 && ok2 {
		orientation = blendAspect(re, fe, orientation, config)
	}
	s.Orientation = shapefit.Round1(orientation)
	s.Size = shapefit.Round1(sizeScore(r.Size, f.Size, config))
	s.Fidelity = shapefit.Round1(10 * clamp01(fitted.Fidelity))
	w := config.Weights
	s.Overall = shapefit.Round1((w.Location*s.Location + w.Size*s.Size +
		w.Orientation*s.Orientation + w.Fidelity*s.Fidelity) / w.sum())
	tracer().Infof("%v vs. %v: %s", reference, fitted.Primitive, s)
	return s, nil
}

// decay is the Gaussian 10·exp(-Δ²/S).
func decay(delta, sensitivity float64) float64 {
	return 10 * math.Exp(-delta*delta/sensitivity)
}

// blendAspect mixes the rounded orientation score with an aspect score, weighted by
// the reference's elongation 1 − aspect. For a circular reference the
// orientation does not count at all.
func blendAspect(ref, fitted shape.Ellipse, orientation float64, config Config) float64 {
	aspectR := ref.AspectRatio()
	aspect := decay(aspectR-fitted.AspectRatio(), config.AspectSensitivity)
	mixing := 1 - aspectR
	tracer().Debugf("aspect %.4g vs. %.4g, mixing %.4g", aspectR, fitted.AspectRatio(), mixing)
	return (1-mixing)*aspect + mixing*orientation
}

func sizeScore(ref, fitted float64, config Config) float64 {
	delta := ref - fitted
	if shapefit.Is0(ref) {
		if shapefit.Is0(delta) {
			return 10
		}
		return 0
	}
	return decay(delta, ref*ref/config.SizeDivisor)
}

func clamp01(x float64) float64 {
	if !(x > 0) {
		return 0
	}
	return math.Min(1, x)
}
