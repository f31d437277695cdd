package geom

import "math"

// AngleRange is the rotation interval the cam profile covers, in radians.
type AngleRange struct {
	Min float64
	Max float64
}

// Degrees builds an AngleRange from bounds given in degrees.
func Degrees(start, end float64) AngleRange {
	return AngleRange{Min: Rad(start), Max: Rad(end)}
}

func (a AngleRange) Validate() error {
	if !(a.Max > a.Min) {
		return &ParamError{Field: "end_angle", Value: Deg(a.Max), Err: ErrInvalidRange}
	}
	if a.Sweep() >= 2*math.Pi {
		return &ParamError{Field: "end_angle", Value: Deg(a.Max), Err: ErrSweepTooLarge}
	}
	return nil
}

func (a AngleRange) Sweep() float64 {
	return a.Max - a.Min
}

// At maps a normalized position q in [0, 1] onto the range.
func (a AngleRange) At(q float64) float64 {
	return a.Min + q*(a.Max-a.Min)
}

// Normalize is the inverse of At.
func (a AngleRange) Normalize(theta float64) float64 {
	return (theta - a.Min) / (a.Max - a.Min)
}

func Rad(deg float64) float64 {
	return deg / 180.0 * math.Pi
}

func Deg(rad float64) float64 {
	return rad * 180.0 / math.Pi
}
