// Package friction evaluates the self-locking condition of a cam pressed
// against a fixed plane.
//
// The plane pushes on the cam along its normal n at the contact point c.
// Resolving c into the cam tangent t and the normal gives the lever arms of
// the two forces about the rotation center: the normal force F turns the cam
// back with arm |c.t| while a friction force mu*F resists with arm |c.n|.
// The cam holds when mu >= |c.t| / |c.n|.
package friction

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Epsilon is the threshold below which a component counts as zero.
const Epsilon = 1e-9

// Reasons reported for degenerate samples.
const (
	ReasonParallel  = "cam tangent is parallel to the contact normal"
	ReasonNoNormal  = "contact point has no component along the contact normal"
	ReasonNoTangent = "cam tangent is undefined"
	ReasonNonFinite = "lever arms are not finite"
)

// Result is the friction coefficient required at one contact. Mu is never
// negative. A degenerate contact carries Mu = +Inf and the reason.
type Result struct {
	Mu         float64
	Degenerate bool
	Reason     string
}

// RequiredFriction returns the minimum friction coefficient that keeps the
// cam locked. All vectors are in the fixed frame; tangent and normal need
// not be normalized.
func RequiredFriction(contact, tangent, normal r2.Vec) Result {
	tn := r2.Norm(tangent)
	nn := r2.Norm(normal)
	if tn < Epsilon || nn < Epsilon {
		return degenerate(ReasonNoTangent)
	}
	t := r2.Scale(1/tn, tangent)
	n := r2.Scale(1/nn, normal)

	if math.Abs(r2.Cross(t, n)) < Epsilon {
		return degenerate(ReasonParallel)
	}
	along := math.Abs(r2.Dot(contact, t))
	across := math.Abs(r2.Dot(contact, n))
	if across < Epsilon {
		return degenerate(ReasonNoNormal)
	}
	mu := along / across
	if math.IsNaN(mu) || math.IsInf(mu, 0) {
		return degenerate(ReasonNonFinite)
	}
	return Result{Mu: mu}
}

func degenerate(reason string) Result {
	return Result{Mu: math.Inf(1), Degenerate: true, Reason: reason}
}

// Holds reports whether a surface with friction coefficient available keeps
// the cam locked at this contact.
func (r Result) Holds(available float64) bool {
	return !r.Degenerate && available >= r.Mu
}
