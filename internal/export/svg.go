package export

import (
	"fmt"
	"io"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"
	"github.com/san-kum/camlock/internal/geom"
	"github.com/san-kum/camlock/internal/sampler"
	"gonum.org/v1/gonum/spatial/r2"
)

// Page size in inches. The rotation center sits in the middle of the page.
const (
	PageWidth  = 8.5
	PageHeight = 11.0
	crossHalf  = 0.125
	textMargin = 0.75
)

const (
	camStyle    = "fill:none;stroke:black;stroke-width:1"
	crossStyle  = "stroke:black;stroke-width:1"
	circleStyle = "fill:none;stroke:gray;stroke-width:1;stroke-dasharray:4,4"
	textStyle   = "font-family:sans-serif;font-size:12px"
)

// WriteSVG draws res on a letter page at dpi pixels per inch. Lengths in
// res are inches.
func WriteSVG(w io.Writer, res *sampler.Result, dpi float64) error {
	if res == nil || res.Profile == nil {
		return fmt.Errorf("export: nothing to draw")
	}
	if !(dpi > 0) {
		return fmt.Errorf("export: dpi must be positive, got %g", dpi)
	}

	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	width, height := px(PageWidth, dpi), px(PageHeight, dpi)
	cx, cy := PageWidth*dpi/2, PageHeight*dpi/2

	canvas.Start(width, height)
	canvas.Path(BezierPath(res.Profile.Bezier(dpi), cx, cy), camStyle)

	ix, iy, arm := int(math.Round(cx)), int(math.Round(cy)), px(crossHalf, dpi)
	canvas.Line(ix-arm, iy, ix+arm, iy, crossStyle)
	canvas.Line(ix, iy-arm, ix, iy+arm, crossStyle)

	p := res.ControlPoints.Params
	if r := px(p.Base, dpi); r > 0 {
		canvas.Circle(ix, iy, r, circleStyle)
	}

	lines := []string{
		fmt.Sprintf("base radius: %.4f in", p.Base),
		fmt.Sprintf("displacement: %.4f in (%s)", p.Displacement, p.Law),
		fmt.Sprintf("angles: %.2f to %.2f deg", geom.Deg(p.Range.Min), geom.Deg(p.Range.Max)),
	}
	x, lead := px(textMargin, dpi), px(0.25, dpi)
	for i, line := range lines {
		canvas.Text(x, px(textMargin, dpi)+i*lead, line, textStyle)
	}
	canvas.End()
	return ew.err
}

// BezierPath renders a Bezier chain as SVG path data. The points are offset
// by (cx, cy) and the y axis is flipped so that y grows upward.
func BezierPath(pts []r2.Vec, cx, cy float64) string {
	if len(pts) == 0 {
		return ""
	}
	var b strings.Builder
	xy := func(p r2.Vec) string {
		return fmt.Sprintf("%.3f,%.3f", cx+p.X, cy-p.Y)
	}
	b.WriteString("M" + xy(pts[0]))
	for i := 1; i+2 < len(pts); i += 3 {
		fmt.Fprintf(&b, " C%s %s %s", xy(pts[i]), xy(pts[i+1]), xy(pts[i+2]))
	}
	return b.String()
}

func px(in, dpi float64) int {
	return int(math.Round(in * dpi))
}

// errWriter keeps the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}
