package fit

import (
	"fmt"
	"math"

	"github.com/npillmayer/shapefit"
	"github.com/npillmayer/shapefit/shape"
)

// Ellipse fits an ellipse to a stroke from the principal axes of its points.
//
// For points spread evenly along an ellipse with semi-axes a ≥ b, the
// covariance matrix has eigenvalues a²/2 and b²/2, with the eigenvector of
// the larger one pointing along the major axis. The fitted ellipse is
// centered at the centroid, has Width 2b and Height 2a, and its Rotation
// turns the local y-axis onto the major axis, wrapped into [0,π).
//
// Fidelity compares the squared approximate distances of the points to the
// fitted outline (SSR) with their squared distances to the center (SST):
//
//	exp( -(SSR/SST) / 0.2 )
//
// A stroke with (numerically) collinear points has no minor axis and fails
// with shapefit.ErrDegenerateInput. Thin slivers above that are valid.
func Ellipse(stroke []shapefit.Pair) (Result, error) {
	if err := checkStroke(shape.KindEllipse, stroke); err != nil {
		return Result{}, err
	}
	c := shapefit.Centroid(stroke)
	var xx, xy, yy float64
	for _, pt := range stroke {
		d := pt - c
		xx += d.X() * d.X()
		xy += d.X() * d.Y()
		yy += d.Y() * d.Y()
	}
	dof := float64(len(stroke) - 1)
	xx /= dof
	xy /= dof
	yy /= dof
	eig := symEigen2(xx, xy, yy)
	tracer().Debugf("ellipse covariance: xx = %.4g, xy = %.4g, yy = %.4g; λ = %.4g, %.4g",
		xx, xy, yy, eig.major, eig.minor)
	if eig.minor <= shapefit.Epsilon*math.Max(1, eig.major) {
		tracer().Errorf("ellipse fit rejected: minor eigenvalue %g", eig.minor)
		return Result{}, fmt.Errorf("%w: stroke points are collinear (minor eigenvalue %g)",
			shapefit.ErrDegenerateInput, eig.minor)
	}
	a := math.Sqrt(2 * eig.major)
	b := math.Sqrt(2 * eig.minor)
	rotation := shapefit.WrapHalfTurn(math.Atan2(eig.majorVec.Y(), eig.majorVec.X()) - math.Pi/2)
	e := shape.NewEllipse(c, 2*b, 2*a, rotation)
	fidelity, err := ellipseFidelity(e, stroke)
	if err != nil {
		return Result{}, err
	}
	return checkResult(Result{Primitive: e, Fidelity: fidelity})
}

// MustEllipse is a compatibility helper which panics on fitting errors.
func MustEllipse(stroke []shapefit.Pair) Result {
	r, err := Ellipse(stroke)
	if err != nil {
		panic(err)
	}
	return r
}

// ellipseFidelity approximates the distance of a point to the outline by
// scaling the deviation of the implicit form x²/rx² + y²/ry² from 1 with
// the half diagonal of the bounding box.
func ellipseFidelity(e shape.Ellipse, stroke []shapefit.Pair) (float64, error) {
	rx2 := e.Width * e.Width / 4
	ry2 := e.Height * e.Height / 4
	scale := math.Sqrt(rx2 + ry2)
	var ssr, sst float64
	for _, pt := range stroke {
		q := e.Local(pt)
		implicit := q.X()*q.X()/rx2 + q.Y()*q.Y()/ry2
		d := math.Abs(implicit-1) * scale
		ssr += d * d
		r := pt - e.Center
		sst += r.X()*r.X() + r.Y()*r.Y()
	}
	if sst <= shapefit.Epsilon {
		return 0, fmt.Errorf("%w: stroke has no extent", shapefit.ErrDegenerateInput)
	}
	tracer().Debugf("ellipse residuals: SSR = %.4g, SST = %.4g", ssr, sst)
	return math.Exp(-(ssr / sst) / ellipseFidelityScale), nil
}
