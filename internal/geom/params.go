package geom

import "math"

// Params fully determines a cam profile.
type Params struct {
	Base         float64 // support distance at Range.Min
	Displacement float64 // support distance gained over the range
	Range        AngleRange
	Segments     int
	Law          Law
}

func (p Params) Validate() error {
	if !finite(p.Base) || p.Base < 0 {
		return &ParamError{Field: "radius", Value: p.Base, Err: ErrNegativeRadius}
	}
	if !finite(p.Displacement) || p.Displacement < 0 {
		return &ParamError{Field: "displacement", Value: p.Displacement, Err: ErrNegativeDisplacement}
	}
	if err := p.Range.Validate(); err != nil {
		return err
	}
	if p.Segments < 1 {
		return &ParamError{Field: "segments", Value: float64(p.Segments), Err: ErrSegments}
	}
	if !p.Law.Valid() {
		return &ParamError{Field: "law", Value: float64(p.Law), Err: ErrUnknownLaw}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Knot is the prescribed support distance at one segment boundary.
type Knot struct {
	Theta  float64
	Radius float64
}

// ControlPoints holds one knot per segment boundary together with the
// parameters they were derived from.
type ControlPoints struct {
	Params Params
	Knots  []Knot
}

// BuildControlPoints evaluates the displacement law at every knot.
// With D = 0 all radii are equal; the profile is then a circle and the
// lock condition is trivial.
func BuildControlPoints(p Params) (ControlPoints, error) {
	if err := p.Validate(); err != nil {
		return ControlPoints{}, err
	}
	knots := make([]Knot, p.Segments+1)
	for i := range knots {
		t := float64(i) / float64(p.Segments)
		knots[i] = Knot{
			Theta:  p.Range.At(t),
			Radius: p.Base + p.Displacement*p.Law.Offset(t),
		}
	}
	return ControlPoints{Params: p, Knots: knots}, nil
}

// Target returns the prescribed support distance at normalized position q.
func (c ControlPoints) Target(q float64) float64 {
	return c.Params.Base + c.Params.Displacement*c.Params.Law.Offset(q)
}

// TargetSlope returns d(support)/d(theta) at normalized position q.
func (c ControlPoints) TargetSlope(q float64) float64 {
	return c.Params.Displacement * c.Params.Law.Slope(q) / c.Params.Range.Sweep()
}

func (c ControlPoints) Len() int {
	return len(c.Knots)
}
