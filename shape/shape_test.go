package shape

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/shapefit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestKind(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	assert.Equal(t, "segment", KindSegment.String())
	assert.Equal(t, "ellipse", KindEllipse.String())
	k, err := ParseKind(" Ellipse ")
	require.NoError(t, err)
	assert.Equal(t, KindEllipse, k)
	_, err = ParseKind("triangle")
	assert.True(t, errors.Is(err, shapefit.ErrUnknownKind))
	assert.False(t, Kind(7).Valid())
}

func TestSegmentParameters(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := NewSegment(shapefit.P(0, 0), shapefit.P(30, 0))
	want := Parameters{Center: shapefit.P(15, 0), Size: 30, Orientation: 0}
	if d := cmp.Diff(want, s.Parameters(), approx); d != "" {
		t.Error(d)
	}
	// endpoints swapped: same undirected segment
	r := NewSegment(shapefit.P(30, 0), shapefit.P(0, 0))
	if d := cmp.Diff(s.Parameters(), r.Parameters(), approx); d != "" {
		t.Error(d)
	}
	diag := NewSegment(shapefit.P(0, 0), shapefit.P(-10, 10))
	assert.InDelta(t, 135.0, diag.Orientation(), 1e-9)
}

func TestParametersArePure(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	prims := []Primitive{
		NewSegment(shapefit.P(12, 40), shapefit.P(200, 170)),
		NewEllipse(shapefit.P(150, 150), 40, 90, 2.5),
	}
	for _, p := range prims {
		first := ParametersOf(p)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, ParametersOf(p))
		}
	}
}

func TestSegmentSample(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := NewSegment(shapefit.P(0, 0), shapefit.P(30, 0))
	pts := s.Sample(4)
	require.Len(t, pts, 4)
	for i, pt := range pts {
		assert.True(t, pt.Equal(shapefit.P(float64(10*i), 0)), "point %d = %v", i, pt)
	}
	assert.Len(t, s.Sample(0), 2)
}

func TestEllipseParameters(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	e := NewEllipse(shapefit.P(100, 80), 40, 90, math.Pi+0.5)
	assert.InDelta(t, 0.5, e.Rotation, 1e-12)
	assert.InDelta(t, 30.0, e.MeanRadius(), 1e-12)
	assert.InDelta(t, 40.0/90.0, e.AspectRatio(), 1e-12)
	assert.InDelta(t, 0.5/shapefit.Deg2Rad, e.Parameters().Orientation, 1e-9)
	assert.Equal(t, 1.0, Ellipse{}.AspectRatio())
}

func TestEllipseWideNormalized(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	wide := NewEllipse(shapefit.P(150, 150), 80, 40, 0)
	tall := NewEllipse(shapefit.P(150, 150), 40, 80, math.Pi/2)
	assert.Equal(t, 40.0, wide.Width)
	assert.Equal(t, 80.0, wide.Height)
	if d := cmp.Diff(tall, wide, approx); d != "" {
		t.Error(d)
	}
	// wrapped after the quarter turn
	e := NewEllipse(shapefit.P(0, 0), 80, 40, 2)
	assert.InDelta(t, 2+math.Pi/2-math.Pi, e.Rotation, 1e-12)
	// the outline still spans 80 along x and 40 along y
	for _, pt := range NewEllipse(shapefit.P(0, 0), 80, 40, 0).Sample(16) {
		val := pt.X()*pt.X()/1600 + pt.Y()*pt.Y()/400
		assert.InDelta(t, 1.0, val, 1e-9)
	}
}

func TestEllipseOutline(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	// rotation π/2 turns the local y-axis (height) onto the canvas' negative x-axis
	e := NewEllipse(shapefit.P(10, 10), 2, 8, math.Pi/2)
	top := e.Point(math.Pi / 2)
	assert.True(t, top.Equal(shapefit.P(6, 10)), "got %v", top)
	for _, pt := range e.Sample(32) {
		q := e.Local(pt)
		val := q.X()*q.X()/1 + q.Y()*q.Y()/16
		assert.InDelta(t, 1.0, val, 1e-9)
	}
}

func TestValidate(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	assert.NoError(t, NewSegment(shapefit.P(0, 0), shapefit.P(1, 1)).Validate())
	bad := NewSegment(shapefit.P(math.NaN(), 0), shapefit.P(1, 1))
	assert.True(t, errors.Is(bad.Validate(), shapefit.ErrDegenerateInput))
	assert.NoError(t, NewEllipse(shapefit.P(0, 0), 1, 2, 0).Validate())
	assert.Error(t, Ellipse{Width: -1, Height: 2}.Validate())
	assert.Error(t, Ellipse{Width: math.Inf(1), Height: 2}.Validate())
}
