package shape

import (
	"fmt"

	"github.com/npillmayer/shapefit"
)

// Segment is a straight line segment from P0 to P1.
type Segment struct {
	P0, P1 shapefit.Pair
}

var _ Primitive = Segment{}

// NewSegment creates a segment between two endpoints.
func NewSegment(p0, p1 shapefit.Pair) Segment {
	return Segment{P0: p0, P1: p1}
}

// Kind implements Primitive.
func (s Segment) Kind() Kind {
	return KindSegment
}

// Center is the midpoint of the segment.
func (s Segment) Center() shapefit.Pair {
	return shapefit.Midpoint(s.P0, s.P1)
}

// Length is the distance between the endpoints.
func (s Segment) Length() float64 {
	return shapefit.Distance(s.P0, s.P1)
}

// Orientation is the direction of the segment in degrees, in [0,180).
// Swapping the endpoints does not change it.
func (s Segment) Orientation() float64 {
	d := s.P1 - s.P0
	return shapefit.NormalizeOrientation(shapefit.AngleDeg(d.Y(), d.X()))
}

// Parameters implements Primitive.
func (s Segment) Parameters() Parameters {
	return Parameters{
		Center:      s.Center(),
		Size:        s.Length(),
		Orientation: s.Orientation(),
	}
}

// Sample returns n ≥ 2 evenly spaced points from P0 to P1, both included.
// For n < 2 the endpoints are returned.
func (s Segment) Sample(n int) []shapefit.Pair {
	if n < 2 {
		n = 2
	}
	points := make([]shapefit.Pair, n)
	d := s.P1 - s.P0
	for i := range points {
		t := float64(i) / float64(n-1)
		points[i] = s.P0 + d.Scaled(t)
	}
	return points
}

// Validate implements Primitive.
func (s Segment) Validate() error {
	if !s.P0.IsFinite() || !s.P1.IsFinite() {
		return fmt.Errorf("%w: segment %v–%v not finite", shapefit.ErrDegenerateInput, s.P0, s.P1)
	}
	return nil
}

func (s Segment) String() string {
	return fmt.Sprintf("segment[%v .. %v]", s.P0, s.P1)
}
