package geom

// Grid discretizes the angle range into Segments*PerSegment equal intervals.
// Sample j lies at normalized position j/N and on segment
// min(j/PerSegment, Segments-1), so the last sample is the end of the last
// segment. The fit and the sampler share this grid.
type Grid struct {
	Segments   int
	PerSegment int
}

func (g Grid) Validate() error {
	if g.Segments < 1 {
		return &ParamError{Field: "segments", Value: float64(g.Segments), Err: ErrSegments}
	}
	if g.PerSegment < 1 {
		return &ParamError{Field: "samples", Value: float64(g.PerSegment), Err: ErrSamples}
	}
	return nil
}

// Len is the number of samples, including both end points.
func (g Grid) Len() int {
	return g.Segments*g.PerSegment + 1
}

// At returns the normalized position q of sample j together with its
// segment and local spline parameter.
func (g Grid) At(j int) (q float64, seg int, t float64) {
	n := g.Segments * g.PerSegment
	q = float64(j) / float64(n)
	seg = j / g.PerSegment
	if seg > g.Segments-1 {
		seg = g.Segments - 1
	}
	t = float64(j-seg*g.PerSegment) / float64(g.PerSegment)
	return q, seg, t
}
