package placement

import (
	polyclip "github.com/akavel/polyclip-go"
	"github.com/npillmayer/shapefit"
)

// Canvas is the drawing area reference primitives are placed on, with
// (0,0) at one corner and (Width,Height) at the opposite one.
type Canvas struct {
	Width, Height float64
	bounds        polyclip.Contour // the full canvas
	inner         polyclip.Contour // the canvas shrunk by the margin
}

// NewCanvas creates a canvas of the given dimensions. margin is the
// fraction of each dimension kept free along every border of the inner
// area.
func NewCanvas(width, height, margin float64) (Canvas, error) {
	if err := shapefit.ValidateCanvas(width, height); err != nil {
		return Canvas{}, err
	}
	mx, my := width*margin, height*margin
	return Canvas{
		Width:  width,
		Height: height,
		bounds: box(0, 0, width, height),
		inner:  box(mx, my, width-mx, height-my),
	}, nil
}

func box(x0, y0, x1, y1 float64) polyclip.Contour {
	return polyclip.Contour{
		{X: x0, Y: y0},
		{X: x1, Y: y0},
		{X: x1, Y: y1},
		{X: x0, Y: y1},
	}
}

func pt(p shapefit.Pair) polyclip.Point {
	return polyclip.Point{X: p.X(), Y: p.Y()}
}

// Dim is the smaller canvas dimension.
func (c Canvas) Dim() float64 {
	if c.Width < c.Height {
		return c.Width
	}
	return c.Height
}

// Bounds is the bounding rectangle of the canvas.
func (c Canvas) Bounds() polyclip.Rectangle {
	return c.bounds.BoundingBox()
}

// Contains is a predicate: is p on the canvas?
func (c Canvas) Contains(p shapefit.Pair) bool {
	return c.bounds.Contains(pt(p))
}

// WithinMargin is a predicate: is p on the canvas and clear of the margin?
func (c Canvas) WithinMargin(p shapefit.Pair) bool {
	return c.inner.Contains(pt(p))
}

// ContainsCircle is a predicate: does the circle lie entirely on the
// canvas? The canvas is an axis-aligned rectangle, so it suffices to test
// the four axis extremes of the circle.
func (c Canvas) ContainsCircle(center shapefit.Pair, radius float64) bool {
	for _, d := range []shapefit.Pair{shapefit.P(radius, 0), shapefit.P(-radius, 0),
		shapefit.P(0, radius), shapefit.P(0, -radius)} {
		if !c.Contains(center + d) {
			return false
		}
	}
	return true
}
