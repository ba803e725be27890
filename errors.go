package shapefit

import (
	"errors"
	"fmt"
)

// Errors shared by all subpackages. Call sites wrap them with details,
// clients should test with errors.Is. None of them is fatal: a stroke
// failing with ErrInsufficientPoints or ErrDegenerateInput should be
// discarded and redrawn, ErrPlacementUnsatisfiable calls for a retry with
// relaxed constraints.
var (
	// ErrInsufficientPoints indicates a stroke has fewer points than a primitive needs.
	ErrInsufficientPoints = errors.New("insufficient points")
	// ErrDegenerateInput indicates a non-finite result or a near-zero denominator.
	ErrDegenerateInput = errors.New("degenerate input")
	// ErrPlacementUnsatisfiable indicates rejection sampling ran out of iterations.
	ErrPlacementUnsatisfiable = errors.New("placement unsatisfiable")
	// ErrKindMismatch indicates two primitives of different kinds were compared.
	ErrKindMismatch = errors.New("primitive kinds differ")
	// ErrInvalidCanvas indicates non-positive or non-finite canvas dimensions.
	ErrInvalidCanvas = errors.New("invalid canvas dimensions")
	// ErrUnknownKind indicates a primitive kind outside {segment, ellipse}.
	ErrUnknownKind = errors.New("unknown primitive kind")
)

// ValidateCanvas checks canvas dimensions.
func ValidateCanvas(width, height float64) error {
	if !IsFinite(width) || !IsFinite(height) || width <= 0 || height <= 0 {
		tracer().Errorf("rejected canvas %gx%g", width, height)
		return fmt.Errorf("%w: %gx%g", ErrInvalidCanvas, width, height)
	}
	return nil
}
