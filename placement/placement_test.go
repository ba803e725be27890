package placement

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/shapefit"
	"github.com/npillmayer/shapefit/shape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded(t *testing.T, config Config, seed uint64) *Generator {
	t.Helper()
	g, err := NewGenerator(config, rand.New(rand.NewPCG(seed, seed^0x5eed)))
	require.NoError(t, err)
	return g
}

func TestCanvas(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c, err := NewCanvas(300, 200, 0.1)
	require.NoError(t, err)
	assert.Equal(t, 200.0, c.Dim())
	assert.True(t, c.Contains(shapefit.P(10, 10)))
	assert.False(t, c.Contains(shapefit.P(310, 10)))
	assert.False(t, c.WithinMargin(shapefit.P(10, 100)))
	assert.True(t, c.WithinMargin(shapefit.P(40, 30)))
	assert.True(t, c.ContainsCircle(shapefit.P(150, 100), 90))
	assert.False(t, c.ContainsCircle(shapefit.P(150, 100), 110))
	b := c.Bounds()
	assert.Equal(t, 300.0, b.Max.X)
	assert.Equal(t, 200.0, b.Max.Y)
	_, err = NewCanvas(0, 200, 0.1)
	assert.True(t, errors.Is(err, shapefit.ErrInvalidCanvas))
}

func TestRandomSegment(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	g := seeded(t, DefaultConfig(), 1)
	for i := 0; i < 200; i++ {
		s, err := g.Segment(300, 300)
		require.NoError(t, err)
		for _, p := range []shapefit.Pair{s.P0, s.P1} {
			assert.True(t, p.X() >= 30 && p.X() <= 270, "x = %g", p.X())
			assert.True(t, p.Y() >= 30 && p.Y() <= 270, "y = %g", p.Y())
		}
		assert.Greater(t, s.Length(), 100.0)
	}
}

func TestRandomEllipse(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	g := seeded(t, DefaultConfig(), 2)
	for i := 0; i < 200; i++ {
		e, err := g.Ellipse(300, 300)
		require.NoError(t, err)
		assert.LessOrEqual(t, e.Width, e.Height)
		assert.True(t, e.Width >= 30 && e.Height <= 100, "extent %gx%g", e.Width, e.Height)
		assert.True(t, e.Rotation >= 0 && e.Rotation < math.Pi)
		r := math.Sqrt(e.Width*e.Height)/2 + 35
		assert.True(t, e.Center.X()-r >= 0 && e.Center.X()+r <= 300, "center %v", e.Center)
		assert.True(t, e.Center.Y()-r >= 0 && e.Center.Y()+r <= 300, "center %v", e.Center)
	}
}

func TestDeterministicWithSeed(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, kind := range []shape.Kind{shape.KindSegment, shape.KindEllipse} {
		p1, err := seeded(t, DefaultConfig(), 42).Random(kind, 400, 300)
		require.NoError(t, err)
		p2, err := seeded(t, DefaultConfig(), 42).Random(kind, 400, 300)
		require.NoError(t, err)
		assert.Equal(t, p1, p2)
		assert.Equal(t, kind, p1.Kind())
	}
}

func TestDefaultSource(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	g, err := NewGenerator(DefaultConfig(), nil)
	require.NoError(t, err)
	e, err := g.Ellipse(500, 500)
	require.NoError(t, err)
	assert.NoError(t, e.Validate())
}

func TestPlacementUnsatisfiable(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	config := DefaultConfig()
	config.MaxIterations = 100
	g := seeded(t, config, 3)
	_, err := g.Ellipse(60, 60)
	assert.True(t, errors.Is(err, shapefit.ErrPlacementUnsatisfiable), "got %v", err)
	config.MinSegmentLength = 2
	g = seeded(t, config, 3)
	_, err = g.Segment(300, 300)
	assert.True(t, errors.Is(err, shapefit.ErrPlacementUnsatisfiable), "got %v", err)
	p, err := g.Random(shape.Kind(5), 300, 300)
	assert.True(t, errors.Is(err, shapefit.ErrUnknownKind))
	assert.Nil(t, p)
	p, err = g.Random(shape.KindSegment, 300, 300)
	assert.True(t, errors.Is(err, shapefit.ErrPlacementUnsatisfiable), "got %v", err)
	assert.Nil(t, p)
	_, err = g.Segment(-1, 300)
	assert.True(t, errors.Is(err, shapefit.ErrInvalidCanvas))
}

func TestConfigValidate(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	assert.NoError(t, DefaultConfig().Validate())
	broken := []func(*Config){
		func(c *Config) { c.Margin = 0.5 },
		func(c *Config) { c.MinSegmentLength = -1 },
		func(c *Config) { c.MinEllipseExtent = 0.5 },
		func(c *Config) { c.EllipsePadding = math.NaN() },
		func(c *Config) { c.MaxIterations = 0 },
	}
	for i, breakIt := range broken {
		c := DefaultConfig()
		breakIt(&c)
		assert.Error(t, c.Validate(), "case %d", i)
		_, err := NewGenerator(c, nil)
		assert.Error(t, err, "case %d", i)
	}
}
