package geom

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"
)

// Profile is a planar uniform cubic B-spline drawn in the cam frame. It
// approximates the boundary described by a [Spline] with polynomial pieces,
// which converts directly into Bezier curves for vector output. Segment s is
// shaped by coefficients s..s+3; the normalized parameter u in [0, 1] maps
// linearly onto the angle range.
type Profile struct {
	coeffs   []r2.Vec
	segments int
	rng      AngleRange
}

// NewProfile copies coeffs, which must hold segments+3 points.
func NewProfile(coeffs []r2.Vec, rng AngleRange) *Profile {
	if len(coeffs) < 4 {
		panic("geom: a cubic spline needs at least four coefficients")
	}
	c := make([]r2.Vec, len(coeffs))
	copy(c, coeffs)
	return &Profile{coeffs: c, segments: len(c) - 3, rng: rng}
}

func (pf *Profile) Segments() int {
	return pf.segments
}

func (pf *Profile) Range() AngleRange {
	return pf.rng
}

// Coeffs returns a copy of the coefficients.
func (pf *Profile) Coeffs() []r2.Vec {
	c := make([]r2.Vec, len(pf.coeffs))
	copy(c, pf.coeffs)
	return c
}

// Local evaluates segment seg at local parameter t and returns the point
// and its derivative with respect to t.
func (pf *Profile) Local(seg int, t float64) (p, dp r2.Vec) {
	k, d := Basis(t)
	for j := 0; j < 4; j++ {
		c := pf.coeffs[seg+j]
		p = r2.Add(p, r2.Scale(k[j], c))
		dp = r2.Add(dp, r2.Scale(d[j], c))
	}
	return p, dp
}

func (pf *Profile) locate(u float64) (int, float64) {
	x := u * float64(pf.segments)
	seg := int(math.Floor(x))
	if seg < 0 {
		seg = 0
	}
	if seg > pf.segments-1 {
		seg = pf.segments - 1
	}
	return seg, x - float64(seg)
}

// Point evaluates the profile at normalized parameter u.
func (pf *Profile) Point(u float64) r2.Vec {
	p, _ := pf.Local(pf.locate(u))
	return p
}

// Derivative returns dp/du at normalized parameter u.
func (pf *Profile) Derivative(u float64) r2.Vec {
	_, dp := pf.Local(pf.locate(u))
	return r2.Scale(float64(pf.segments), dp)
}

// Tangent returns the unit tangent at normalized parameter u, or the zero
// vector where the derivative vanishes.
func (pf *Profile) Tangent(u float64) r2.Vec {
	return unit(pf.Derivative(u))
}

func unit(v r2.Vec) r2.Vec {
	n := r2.Norm(v)
	if n == 0 {
		return r2.Vec{}
	}
	return r2.Scale(1/n, v)
}

// Bezier converts the profile into a chain of cubic Bezier curves scaled by
// scale. The result holds 3*Segments()+1 points: the start point followed
// by two handles and an end point per segment.
func (pf *Profile) Bezier(scale float64) []r2.Vec {
	out := make([]r2.Vec, 0, 3*pf.segments+1)
	for i := 0; i < pf.segments; i++ {
		var c [4]r2.Vec
		for j := range c {
			c[j] = r2.Scale(scale, pf.coeffs[i+j])
		}
		// power basis q0 + q1 t + q2 t^2 + q3 t^3
		q0 := r2.Add(r2.Scale(1.0/6, r2.Add(c[0], c[2])), r2.Scale(2.0/3, c[1]))
		q1 := r2.Scale(0.5, r2.Sub(c[2], c[0]))
		q2 := r2.Sub(r2.Scale(0.5, r2.Add(c[0], c[2])), c[1])
		q3 := r2.Add(r2.Scale(1.0/6, r2.Sub(c[3], c[0])), r2.Scale(0.5, r2.Sub(c[1], c[2])))

		b1 := r2.Add(q0, r2.Scale(1.0/3, q1))
		b2 := r2.Add(b1, r2.Scale(1.0/3, r2.Add(q1, q2)))
		b3 := r2.Add(r2.Add(q0, q1), r2.Add(q2, q3))
		if i == 0 {
			out = append(out, q0)
		}
		out = append(out, b1, b2, b3)
	}
	return out
}

// rcond drops singular values below rcond times the largest one.
const rcond = 1e-12

// FitProfile fits a planar cubic B-spline with the same segments as s to
// the support distance of s in the least-squares sense.
//
// Every grid sample contributes two rows. The first asks the contact point
// to lie at the prescribed distance from the plane, the second asks the
// curve to be tangent to the plane there, i.e. the derivative has no
// component along the plane normal. The unknowns are the x coefficients
// followed by the y coefficients. The minimum-norm solution is used when
// the system is rank deficient.
func FitProfile(s *Spline, samplesPerSegment int) (*Profile, error) {
	grid := Grid{Segments: s.Segments(), PerSegment: samplesPerSegment}
	if err := grid.Validate(); err != nil {
		return nil, err
	}

	nc := s.Segments() + 3
	rows := 2 * grid.Len()
	a := mat.NewDense(rows, 2*nc, nil)
	b := mat.NewVecDense(rows, nil)

	for j := 0; j < grid.Len(); j++ {
		q, seg, t := grid.At(j)
		k, d := Basis(t)
		n := ToCam(PlaneNormal, s.rng.At(q))

		for i := 0; i < 4; i++ {
			a.Set(2*j, seg+i, n.X*k[i])
			a.Set(2*j, nc+seg+i, n.Y*k[i])
			a.Set(2*j+1, seg+i, n.X*d[i])
			a.Set(2*j+1, nc+seg+i, n.Y*d[i])
		}
		b.SetVec(2*j, s.Local(seg, t).Support)
	}

	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDThin) {
		return nil, ErrSingularFit
	}
	rank := svd.Rank(rcond)
	if rank == 0 {
		return nil, ErrSingularFit
	}
	var x mat.VecDense
	svd.SolveVecTo(&x, b, rank)

	coeffs := make([]r2.Vec, nc)
	for i := range coeffs {
		coeffs[i] = r2.Vec{X: x.AtVec(i), Y: x.AtVec(nc + i)}
	}
	return NewProfile(coeffs, s.rng), nil
}
