package fit

import (
	"math"

	"github.com/npillmayer/shapefit"
)

// eigen2 is the eigendecomposition of a symmetric 2×2 matrix.
type eigen2 struct {
	major, minor       float64       // eigenvalues, major ≥ minor
	majorVec, minorVec shapefit.Pair // unit eigenvectors
}

// symEigen2 decomposes the symmetric matrix
//
//	| xx  xy |
//	| xy  yy |
//
// in closed form. Eigenvalues are (T ± √(T²−4D))/2 for trace T and
// determinant D, the eigenvector for λ is (xy, λ−xx).
func symEigen2(xx, xy, yy float64) eigen2 {
	if math.Abs(xy) <= shapefit.Epsilon*(math.Abs(xx)+math.Abs(yy)) { // axis-aligned
		if xx >= yy {
			return eigen2{major: xx, minor: yy, majorVec: shapefit.P(1, 0), minorVec: shapefit.P(0, 1)}
		}
		return eigen2{major: yy, minor: xx, majorVec: shapefit.P(0, 1), minorVec: shapefit.P(1, 0)}
	}
	tr := xx + yy
	det := xx*yy - xy*xy
	disc := tr*tr - 4*det
	if disc < 0 { // rounding; symmetric matrices have real eigenvalues
		disc = 0
	}
	root := math.Sqrt(disc)
	l1, l2 := (tr+root)/2, (tr-root)/2
	return eigen2{
		major:    l1,
		minor:    l2,
		majorVec: unit(shapefit.P(xy, l1-xx)),
		minorVec: unit(shapefit.P(xy, l2-xx)),
	}
}

func unit(v shapefit.Pair) shapefit.Pair {
	return v.Scaled(1 / v.Abs())
}
