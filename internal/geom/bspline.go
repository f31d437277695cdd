package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Basis returns the four uniform cubic B-spline weights at local parameter
// t in [0, 1] and their derivatives with respect to t.
func Basis(t float64) (k, d [4]float64) {
	a := 0.5 * t
	b := a * t
	c := b * t
	k[3] = c / 3
	k[2] = 1.0/6 + a + b - c
	k[1] = 2.0/3 - b - b + c
	k[0] = 1.0/6 - a + b - k[3]

	t2 := t * t
	d[0] = 0.5*(-1-t2) + t
	d[1] = 1.5*t2 - 2*t
	d[2] = 0.5*(1-3*t2) + t
	d[3] = b
	return k, d
}

// Basis2 returns the second derivatives of the weights with respect to t.
func Basis2(t float64) [4]float64 {
	return [4]float64{1 - t, 3*t - 2, 1 - 3*t, t}
}

// Spline is the support distance r(theta) as a uniform cubic B-spline over
// the angle range: one segment per pair of neighbouring knots, shaped by
// coefficients s..s+3. It is C2 and immutable once built.
//
// The cam boundary it describes is the envelope of the plane positions:
// the contact point at theta is r*u + r'*v in the cam frame, where u points
// along the plane normal and v along the plane.
type Spline struct {
	coeffs   []float64
	segments int
	rng      AngleRange
}

// NewSpline copies coeffs, which must hold segments+3 values.
func NewSpline(coeffs []float64, rng AngleRange) *Spline {
	if len(coeffs) < 4 {
		panic("geom: a cubic spline needs at least four coefficients")
	}
	c := make([]float64, len(coeffs))
	copy(c, coeffs)
	return &Spline{coeffs: c, segments: len(c) - 3, rng: rng}
}

func (s *Spline) Segments() int {
	return s.segments
}

func (s *Spline) Range() AngleRange {
	return s.rng
}

// Coeffs returns a copy of the coefficients.
func (s *Spline) Coeffs() []float64 {
	c := make([]float64, len(s.coeffs))
	copy(c, s.coeffs)
	return c
}

// Contact is the spline state at one rotation angle. Derivatives are taken
// with respect to theta.
type Contact struct {
	Theta   float64
	Support float64
	Slope   float64
	Bend    float64 // second derivative
}

// Point is the contact point in the cam frame.
func (c Contact) Point() r2.Vec {
	return r2.Add(Polar(c.Support, c.Theta), Polar(c.Slope, c.Theta+math.Pi/2))
}

// Tangent is the unit tangent of the boundary in the cam frame. It runs
// along the plane; the zero vector is returned at a cusp, where the
// boundary has no direction.
func (c Contact) Tangent() r2.Vec {
	speed := c.Support + c.Bend
	if math.Abs(speed) < cuspEpsilon*math.Max(1, math.Abs(c.Support)) {
		return r2.Vec{}
	}
	return Polar(math.Copysign(1, speed), c.Theta+math.Pi/2)
}

const cuspEpsilon = 1e-12

// Convex reports whether the boundary turns the same way as the plane,
// r + r'' >= 0. Past that point the envelope folds over itself.
func (c Contact) Convex() bool {
	return c.Support+c.Bend >= -cuspEpsilon*math.Max(1, math.Abs(c.Support))
}

// Local evaluates segment seg at local parameter t.
func (s *Spline) Local(seg int, t float64) Contact {
	k, d := Basis(t)
	dd := Basis2(t)
	h := s.rng.Sweep() / float64(s.segments)

	c := Contact{Theta: s.rng.At((float64(seg) + t) / float64(s.segments))}
	for j := 0; j < 4; j++ {
		w := s.coeffs[seg+j]
		c.Support += k[j] * w
		c.Slope += d[j] * w
		c.Bend += dd[j] * w
	}
	c.Slope /= h
	c.Bend /= h * h
	return c
}

func (s *Spline) locate(theta float64) (int, float64) {
	x := s.rng.Normalize(theta) * float64(s.segments)
	seg := int(math.Floor(x))
	if seg < 0 {
		seg = 0
	}
	if seg > s.segments-1 {
		seg = s.segments - 1
	}
	return seg, x - float64(seg)
}

// At evaluates the spline at rotation angle theta.
func (s *Spline) At(theta float64) Contact {
	c := s.Local(s.locate(theta))
	c.Theta = theta
	return c
}

// Support returns the distance from the rotation center to the plane at
// rotation angle theta.
func (s *Spline) Support(theta float64) float64 {
	return s.At(theta).Support
}

// Evaluate returns the cam-frame contact point at rotation angle theta.
func (s *Spline) Evaluate(theta float64) (x, y float64) {
	p := s.At(theta).Point()
	return p.X, p.Y
}

// Tangent returns the unit tangent of the boundary at rotation angle theta.
func (s *Spline) Tangent(theta float64) r2.Vec {
	return s.At(theta).Tangent()
}
