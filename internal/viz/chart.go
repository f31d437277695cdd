package viz

import (
	"math"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/camlock/internal/storage"
	"gonum.org/v1/gonum/spatial/r2"
)

// FrictionChart plots the finite friction coefficients of samples. It
// returns an empty string when there is nothing to plot.
func FrictionChart(samples []storage.Sample, width, height int) string {
	data := make([]float64, 0, len(samples))
	for _, s := range samples {
		if math.IsNaN(s.Mu) || math.IsInf(s.Mu, 0) {
			continue
		}
		data = append(data, s.Mu)
	}
	if len(data) == 0 {
		return ""
	}
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(4),
		asciigraph.Caption("required friction vs angle"),
	)
}

// SupportChart plots the support distance over the samples.
func SupportChart(samples []storage.Sample, width, height int) string {
	if len(samples) == 0 {
		return ""
	}
	data := make([]float64, len(samples))
	for i, s := range samples {
		data[i] = s.Support
	}
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(4),
		asciigraph.Caption("support distance vs angle"),
	)
}

// ProfileCanvas traces the cam outline in a w x h cell canvas with the
// rotation center marked.
func ProfileCanvas(samples []storage.Sample, w, h int) *Canvas {
	c := NewCanvas(w, h)
	points := make([]r2.Vec, len(samples))
	for i, s := range samples {
		points[i] = r2.Vec{X: s.X, Y: s.Y}
	}
	v := FitViewport(points, w*2, h*4)
	c.DrawPolyline(v, points)
	c.DrawCross(v, r2.Vec{}, 2)
	return c
}
