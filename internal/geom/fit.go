package geom

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// FitSpline builds the spline through every knot of cp with the end slopes
// of the displacement law (a clamped cubic). The support distance is then
// exactly R at Range.Min and R+D at Range.Max, and any law of degree two or
// less is reproduced exactly.
func FitSpline(cp ControlPoints) (*Spline, error) {
	p := cp.Params
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if cp.Len() != p.Segments+1 {
		return nil, fmt.Errorf("%w: %d knots for %d segments", ErrSingularFit, cp.Len(), p.Segments)
	}

	n := p.Segments + 3
	h := p.Range.Sweep() / float64(p.Segments)
	a := mat.NewDense(n, n, nil)
	b := mat.NewVecDense(n, nil)

	// r'(Min), in units of the local parameter
	a.Set(0, 0, -0.5)
	a.Set(0, 2, 0.5)
	b.SetVec(0, cp.TargetSlope(0)*h)

	for i, k := range cp.Knots {
		a.Set(i+1, i, 1.0/6)
		a.Set(i+1, i+1, 2.0/3)
		a.Set(i+1, i+2, 1.0/6)
		b.SetVec(i+1, k.Radius)
	}

	// r'(Max)
	a.Set(n-1, n-3, -0.5)
	a.Set(n-1, n-1, 0.5)
	b.SetVec(n-1, cp.TargetSlope(1)*h)

	var x mat.VecDense
	if err := x.SolveVec(a, b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingularFit, err)
	}
	return NewSpline(x.RawVector().Data, p.Range), nil
}
