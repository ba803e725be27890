package shape

import (
	"fmt"
	"math"

	"github.com/npillmayer/shapefit"
)

// Ellipse is an ellipse of extent Width × Height, rotated counter-clockwise
// by Rotation radians around Center.
type Ellipse struct {
	Center   shapefit.Pair
	Width    float64 // full extent along the local x-axis
	Height   float64 // full extent along the local y-axis
	Rotation float64 // radians
}

var _ Primitive = Ellipse{}

// NewEllipse creates an ellipse with Width ≤ Height. If width exceeds
// height, the extents are swapped and the rotation is advanced by a quarter
// turn, which describes the same outline. The rotation is wrapped into [0,π).
func NewEllipse(center shapefit.Pair, width, height, rotation float64) Ellipse {
	if width > height {
		width, height = height, width
		rotation += math.Pi / 2
	}
	return Ellipse{
		Center:   center,
		Width:    width,
		Height:   height,
		Rotation: shapefit.WrapHalfTurn(rotation),
	}
}

// Kind implements Primitive.
func (e Ellipse) Kind() Kind {
	return KindEllipse
}

// MeanRadius is the radius of the circle with the same area.
func (e Ellipse) MeanRadius() float64 {
	return math.Sqrt(e.Width * e.Height / 4)
}

// AspectRatio is minor over major extent, 1 for a circle and tending
// to 0 for an elongated ellipse. A zero-sized ellipse reports 1.
func (e Ellipse) AspectRatio() float64 {
	lo, hi := math.Min(e.Width, e.Height), math.Max(e.Width, e.Height)
	if shapefit.Is0(hi) {
		return 1
	}
	return lo / hi
}

// Orientation is the rotation in degrees, in [0,180).
func (e Ellipse) Orientation() float64 {
	return shapefit.NormalizeOrientation(e.Rotation / shapefit.Deg2Rad)
}

// Parameters implements Primitive.
func (e Ellipse) Parameters() Parameters {
	return Parameters{
		Center:      e.Center,
		Size:        e.MeanRadius(),
		Orientation: e.Orientation(),
	}
}

// frame is the transform from the ellipse's local frame to canvas coordinates.
func (e Ellipse) frame() shapefit.AT {
	return shapefit.Rotation(e.Rotation).Combine(shapefit.Translation(e.Center))
}

// Local maps a canvas point into the ellipse's unrotated, centered frame.
func (e Ellipse) Local(pt shapefit.Pair) shapefit.Pair {
	return (pt - e.Center).Rotated(-e.Rotation)
}

// Point returns the outline point at parameter angle t (radians).
func (e Ellipse) Point(t float64) shapefit.Pair {
	sin, cos := math.Sincos(t)
	return e.frame().Transform(shapefit.P(e.Width/2*cos, e.Height/2*sin))
}

// Sample returns n points on the outline, evenly spaced in parameter angle.
func (e Ellipse) Sample(n int) []shapefit.Pair {
	if n < 1 {
		return nil
	}
	m := e.frame()
	points := make([]shapefit.Pair, n)
	for i := range points {
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / float64(n))
		points[i] = m.Transform(shapefit.P(e.Width/2*cos, e.Height/2*sin))
	}
	return points
}

// Validate implements Primitive.
func (e Ellipse) Validate() error {
	if !e.Center.IsFinite() || !shapefit.IsFinite(e.Width) || !shapefit.IsFinite(e.Height) ||
		!shapefit.IsFinite(e.Rotation) {
		return fmt.Errorf("%w: ellipse %v not finite", shapefit.ErrDegenerateInput, e)
	}
	if e.Width < 0 || e.Height < 0 {
		return fmt.Errorf("%w: ellipse extent %gx%g negative", shapefit.ErrDegenerateInput,
			e.Width, e.Height)
	}
	return nil
}

func (e Ellipse) String() string {
	return fmt.Sprintf("ellipse[c=%v, %.4gx%.4g, rot=%.4g°]", e.Center, e.Width, e.Height,
		e.Rotation/shapefit.Deg2Rad)
}
