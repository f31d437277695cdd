package geom

import (
	"errors"
	"fmt"
)

// Configuration errors. They are detected before any spline is built.
var (
	// ErrInvalidRange indicates an angle range with Max <= Min.
	ErrInvalidRange = errors.New("geom: end angle must be greater than start angle")

	// ErrSweepTooLarge indicates an angle range of a full turn or more, for
	// which the support distance is no longer single valued.
	ErrSweepTooLarge = errors.New("geom: angle sweep must be less than a full turn")

	// ErrSegments indicates fewer than one spline segment.
	ErrSegments = errors.New("geom: at least one segment is required")

	// ErrSamples indicates fewer than one sample per segment.
	ErrSamples = errors.New("geom: at least one sample per segment is required")

	// ErrNegativeRadius indicates a negative or non-finite base radius.
	ErrNegativeRadius = errors.New("geom: base radius must be finite and not negative")

	// ErrNegativeDisplacement indicates a negative or non-finite displacement.
	ErrNegativeDisplacement = errors.New("geom: displacement must be finite and not negative")

	// ErrUnknownLaw indicates a displacement law name that is not recognised.
	ErrUnknownLaw = errors.New("geom: unknown displacement law")

	// ErrSingularFit indicates the least-squares system could not be factorized.
	ErrSingularFit = errors.New("geom: spline fit is singular")
)

// ParamError wraps a configuration error with the offending parameter.
type ParamError struct {
	Field string
	Value float64
	Err   error
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s=%g: %v", e.Field, e.Value, e.Err)
}

func (e *ParamError) Unwrap() error {
	return e.Err
}
