// Package sampler walks a fitted cam profile over an even angle grid and
// assembles the ordered point and friction sequences.
package sampler

import (
	"fmt"
	"math"

	"github.com/san-kum/camlock/internal/friction"
	"github.com/san-kum/camlock/internal/geom"
	"gonum.org/v1/gonum/spatial/r2"
)

// SamplePoint is the cam boundary at one rotation angle.
type SamplePoint struct {
	Theta   float64 // radians
	Point   r2.Vec  // cam frame
	Tangent r2.Vec  // unit, cam frame; zero where undefined
	Support float64 // distance from the rotation center to the plane
	Convex  bool    // false where the boundary folds over itself
}

func (p SamplePoint) X() float64 { return p.Point.X }
func (p SamplePoint) Y() float64 { return p.Point.Y }

// Distance is the distance from the rotation center to the contact point,
// sqrt(r^2 + r'^2). The law's r(theta) is Support, not Distance.
func (p SamplePoint) Distance() float64 { return r2.Norm(p.Point) }

// FrictionSample is the friction coefficient required to lock at Theta.
type FrictionSample struct {
	Theta      float64
	Mu         float64
	Degenerate bool
}

// Warning reports a sample that could not be evaluated normally. Index is
// -1 for warnings that concern the whole run.
type Warning struct {
	Index   int
	Theta   float64
	Message string
}

func (w Warning) String() string {
	if w.Index < 0 {
		return w.Message
	}
	return fmt.Sprintf("sample %d (%.2f deg): %s", w.Index, geom.Deg(w.Theta), w.Message)
}

// Sample evaluates s at Segments()*samplesPerSegment+1 evenly spaced angles
// in increasing order, both ends included.
func Sample(s *geom.Spline, samplesPerSegment int) ([]SamplePoint, error) {
	grid := geom.Grid{Segments: s.Segments(), PerSegment: samplesPerSegment}
	if err := grid.Validate(); err != nil {
		return nil, err
	}
	rng := s.Range()

	points := make([]SamplePoint, grid.Len())
	for j := range points {
		q, seg, t := grid.At(j)
		c := s.Local(seg, t)
		c.Theta = rng.At(q)
		points[j] = SamplePoint{
			Theta:   c.Theta,
			Point:   c.Point(),
			Tangent: c.Tangent(),
			Support: c.Support,
			Convex:  c.Convex(),
		}
	}
	return points, nil
}

// Friction maps every sample through the friction evaluator. The result is
// index aligned with points and carries the identical angles.
func Friction(points []SamplePoint) ([]FrictionSample, []Warning) {
	out := make([]FrictionSample, len(points))
	var warnings []Warning
	for i, p := range points {
		contact := geom.ToFixed(p.Point, p.Theta)
		tangent := geom.ToFixed(p.Tangent, p.Theta)
		r := friction.RequiredFriction(contact, tangent, geom.PlaneNormal)
		out[i] = FrictionSample{Theta: p.Theta, Mu: r.Mu, Degenerate: r.Degenerate}
		if r.Degenerate {
			warnings = append(warnings, Warning{Index: i, Theta: p.Theta, Message: r.Reason})
		}
	}
	return out, warnings
}

// Config describes one run.
type Config struct {
	Params            geom.Params
	SamplesPerSegment int
	Friction          bool
}

func (c Config) Validate() error {
	if err := c.Params.Validate(); err != nil {
		return err
	}
	return geom.Grid{Segments: c.Params.Segments, PerSegment: c.SamplesPerSegment}.Validate()
}

// Result holds everything a run produces.
type Result struct {
	ControlPoints geom.ControlPoints
	Spline        *geom.Spline
	Profile       *geom.Profile // polynomial drawing of the boundary
	Points        []SamplePoint
	Friction      []FrictionSample // nil unless requested
	Warnings      []Warning
	RMSError      float64 // support distance of Profile against the law
}

// Run-level warning messages.
const (
	WarnZeroDisplacement = "zero displacement: the profile is a circle and the lock condition is trivial"
	WarnNotConvex        = "profile is not convex: the boundary folds over itself"
)

// Run validates cfg, fits the profile and samples it. Configuration errors
// are returned before any fitting takes place.
func Run(cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cp, err := geom.BuildControlPoints(cfg.Params)
	if err != nil {
		return nil, err
	}
	s, err := geom.FitSpline(cp)
	if err != nil {
		return nil, fmt.Errorf("fit spline: %w", err)
	}
	pf, err := geom.FitProfile(s, cfg.SamplesPerSegment)
	if err != nil {
		return nil, fmt.Errorf("fit profile: %w", err)
	}
	points, err := Sample(s, cfg.SamplesPerSegment)
	if err != nil {
		return nil, err
	}

	res := &Result{
		ControlPoints: cp,
		Spline:        s,
		Profile:       pf,
		Points:        points,
		RMSError:      rmsError(cp, pf, len(points)-1),
	}
	if cfg.Params.Displacement == 0 {
		res.Warnings = append(res.Warnings, Warning{Index: -1, Theta: math.NaN(), Message: WarnZeroDisplacement})
	}
	for _, p := range points {
		if !p.Convex {
			res.Warnings = append(res.Warnings, Warning{
				Index:   -1,
				Theta:   p.Theta,
				Message: fmt.Sprintf("%s from %.2f deg", WarnNotConvex, geom.Deg(p.Theta)),
			})
			break
		}
	}
	if cfg.Friction {
		var warnings []Warning
		res.Friction, warnings = Friction(points)
		res.Warnings = append(res.Warnings, warnings...)
	}
	return res, nil
}

// rmsError compares the drawn profile with the prescribed support distance
// at n+1 evenly spaced angles.
func rmsError(cp geom.ControlPoints, pf *geom.Profile, n int) float64 {
	rng := cp.Params.Range
	sum := 0.0
	for j := 0; j <= n; j++ {
		q := float64(j) / float64(n)
		e := cp.Target(q) - geom.Support(pf.Point(q), rng.At(q))
		sum += e * e
	}
	return math.Sqrt(sum / float64(n+1))
}

// MuRange returns the smallest and largest finite friction coefficients.
func MuRange(fs []FrictionSample) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, f := range fs {
		if f.Degenerate {
			continue
		}
		lo = math.Min(lo, f.Mu)
		hi = math.Max(hi, f.Mu)
		ok = true
	}
	return lo, hi, ok
}
