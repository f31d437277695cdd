package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/san-kum/camlock/internal/geom"
	"github.com/san-kum/camlock/internal/sampler"
)

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func newTableWriter(w io.Writer) *csv.Writer {
	cw := csv.NewWriter(w)
	cw.Comma = ' '
	return cw
}

// WritePoints writes one "theta x y" line per sample, theta in degrees.
func WritePoints(w io.Writer, points []sampler.SamplePoint) error {
	cw := newTableWriter(w)
	for _, p := range points {
		row := []string{formatFloat(geom.Deg(p.Theta)), formatFloat(p.X()), formatFloat(p.Y())}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFriction writes one "theta mu" line per sample, theta in degrees.
// Degenerate samples are written as +Inf.
func WriteFriction(w io.Writer, fs []sampler.FrictionSample) error {
	cw := newTableWriter(w)
	for _, f := range fs {
		mu := formatFloat(f.Mu)
		if f.Degenerate {
			mu = "+Inf"
		}
		if err := cw.Write([]string{formatFloat(geom.Deg(f.Theta)), mu}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
