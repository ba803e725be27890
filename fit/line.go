package fit

import (
	"fmt"
	"math"

	"github.com/npillmayer/shapefit"
	"github.com/npillmayer/shapefit/shape"
)

// Line fits a segment to a stroke by orthogonal regression
// (see https://en.wikipedia.org/wiki/Deming_regression, with δ = 1).
//
// The endpoints of the segment are the projections of the first and the
// last point of the stroke onto the regression line, not the extremes of
// the point cloud. Fidelity is
//
//	exp( -mae / (length/40) )
//
// where mae is the mean orthogonal distance of the stroke points to the line.
func Line(stroke []shapefit.Pair) (Result, error) {
	if err := checkStroke(shape.KindSegment, stroke); err != nil {
		return Result{}, err
	}
	n := float64(len(stroke))
	mean := shapefit.Centroid(stroke)
	var covXX, covXY, covYY float64
	for _, pt := range stroke {
		d := pt - mean
		covXX += d.X() * d.X()
		covXY += d.X() * d.Y()
		covYY += d.Y() * d.Y()
	}
	covXX /= n
	covXY /= n
	covYY /= n
	tracer().Debugf("line moments: mean = %v, xx = %.4g, xy = %.4g, yy = %.4g", mean, covXX, covXY, covYY)
	project, err := regressionLine(mean, covXX, covXY, covYY)
	if err != nil {
		return Result{}, err
	}
	pstart := project(stroke[0])
	pend := project(stroke[len(stroke)-1])
	var mae float64
	for _, pt := range stroke {
		mae += shapefit.Distance(pt, project(pt))
	}
	mae /= n
	length := shapefit.Distance(pstart, pend)
	if length <= shapefit.Epsilon {
		return Result{}, fmt.Errorf("%w: stroke starts and ends at the same projected point %v",
			shapefit.ErrDegenerateInput, pstart)
	}
	tracer().Debugf("line mae = %.4g, length = %.4g", mae, length)
	return checkResult(Result{
		Primitive: shape.NewSegment(pstart, pend),
		Fidelity:  math.Exp(-mae / (length / lineFidelityScale)),
	})
}

// MustLine is a compatibility helper which panics on fitting errors.
func MustLine(stroke []shapefit.Pair) Result {
	r, err := Line(stroke)
	if err != nil {
		panic(err)
	}
	return r
}

// regressionLine returns the orthogonal projection onto the total least
// squares line through mean, given the centered second moments.
func regressionLine(mean shapefit.Pair, covXX, covXY, covYY float64) (func(shapefit.Pair) shapefit.Pair, error) {
	spread := covXX + covYY
	if spread <= shapefit.Epsilon {
		return nil, fmt.Errorf("%w: all stroke points coincide at %v", shapefit.ErrDegenerateInput, mean)
	}
	diff := covYY - covXX
	if math.Abs(covXY) <= shapefit.Epsilon*spread {
		switch {
		case diff > shapefit.Epsilon*spread: // vertical: x = meanX
			return func(p shapefit.Pair) shapefit.Pair {
				return shapefit.P(mean.X(), p.Y())
			}, nil
		case diff < -shapefit.Epsilon*spread: // horizontal: y = meanY
			return func(p shapefit.Pair) shapefit.Pair {
				return shapefit.P(p.X(), mean.Y())
			}, nil
		}
		return nil, fmt.Errorf("%w: stroke has no preferred direction (xx = yy = %.4g)",
			shapefit.ErrDegenerateInput, covXX)
	}
	// β1 = (diff + √(diff² + 4xy²)) / 2xy, rearranged where diff < 0 to
	// avoid cancellation
	root := math.Sqrt(diff*diff + 4*covXY*covXY)
	var beta1 float64
	if diff >= 0 {
		beta1 = (diff + root) / (2 * covXY)
	} else {
		beta1 = 2 * covXY / (root - diff)
	}
	beta0 := mean.Y() - beta1*mean.X()
	tracer().Debugf("regression line y = %.4g + %.4g x", beta0, beta1)
	return func(p shapefit.Pair) shapefit.Pair {
		x := p.X() + beta1*(p.Y()-beta0-beta1*p.X())/(1+beta1*beta1)
		return shapefit.P(x, beta0+beta1*x)
	}, nil
}
