// Package shape defines the primitives a stroke may be fitted to: straight
// segments and ellipses.
//
// Both kinds implement Primitive. They share no state, only a common set of
// operations: reporting their kind, extracting comparable parameters,
// sampling their outline and validating themselves. Primitives are small
// values and are passed by value throughout.
//
// # Conventions
//
// Orientations are reported in degrees within [0,180), as an undirected
// segment and an ellipse are both invariant under a half turn.
//
// An ellipse is an axis-aligned ellipse of extent Width × Height, rotated
// counter-clockwise by Rotation radians around its center. NewEllipse keeps
// Width ≤ Height, i.e. the local y-axis carries the major axis, and keeps
// Rotation in [0,π).
package shape

import (
	"fmt"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/shapefit"
)

// tracer writes to trace with key 'shapefit'
func tracer() tracing.Trace {
	return tracing.Select("shapefit")
}

// Kind tags the variant of a Primitive.
type Kind int

const (
	// KindSegment is a straight line segment between two endpoints.
	KindSegment Kind = iota
	// KindEllipse is a rotated ellipse.
	KindEllipse
)

func (k Kind) String() string {
	switch k {
	case KindSegment:
		return "segment"
	case KindEllipse:
		return "ellipse"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Valid is a predicate: is k one of the known kinds?
func (k Kind) Valid() bool {
	return k == KindSegment || k == KindEllipse
}

// ParseKind returns the kind for a name as produced by Kind.String.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "segment", "line":
		return KindSegment, nil
	case "ellipse", "circle":
		return KindEllipse, nil
	}
	tracer().Errorf("unknown primitive kind %q", s)
	return Kind(-1), fmt.Errorf("%w: %q", shapefit.ErrUnknownKind, s)
}

// Parameters are the quantities two primitives of the same kind are
// compared by.
type Parameters struct {
	Center      shapefit.Pair // center position
	Size        float64       // length of a segment, mean radius of an ellipse
	Orientation float64       // degrees in [0,180)
}

// Primitive is the capability set common to segments and ellipses.
type Primitive interface {
	Kind() Kind
	Parameters() Parameters
	// Sample returns n points on the outline of the primitive.
	Sample(n int) []shapefit.Pair
	// Validate checks that all parameters are finite and well-formed.
	Validate() error
}

// ParametersOf returns the parameters of p. It is a pure function: calling
// it repeatedly for the same primitive yields identical results.
func ParametersOf(p Primitive) Parameters {
	return p.Parameters()
}
