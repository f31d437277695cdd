package export

import (
	"fmt"
	"io"

	"github.com/san-kum/camlock/internal/geom"
	"github.com/san-kum/camlock/internal/sampler"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// FrictionPlot charts the required friction coefficient against the
// rotation angle in degrees. Degenerate samples are left out.
func FrictionPlot(fs []sampler.FrictionSample) (*plot.Plot, error) {
	pts := make(plotter.XYs, 0, len(fs))
	for _, f := range fs {
		if f.Degenerate {
			continue
		}
		pts = append(pts, plotter.XY{X: geom.Deg(f.Theta), Y: f.Mu})
	}
	if len(pts) == 0 {
		return nil, fmt.Errorf("export: no finite friction samples")
	}

	p := plot.New()
	p.Title.Text = "Required friction"
	p.X.Label.Text = "theta (deg)"
	p.Y.Label.Text = "mu"
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.LineStyle.Width = vg.Points(1.5)
	p.Add(line)
	return p, nil
}

// WritePNG renders the friction chart as a widthIn x heightIn inch PNG.
func WritePNG(w io.Writer, fs []sampler.FrictionSample, widthIn, heightIn, dpi float64) error {
	p, err := FrictionPlot(fs)
	if err != nil {
		return err
	}

	c := vgimg.NewWith(
		vgimg.UseWH(vg.Length(widthIn)*vg.Inch, vg.Length(heightIn)*vg.Inch),
		vgimg.UseDPI(int(dpi)),
	)
	p.Draw(draw.New(c))

	pngc := vgimg.PngCanvas{Canvas: c}
	if _, err := pngc.WriteTo(w); err != nil {
		return fmt.Errorf("export: write png: %w", err)
	}
	return nil
}
