package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/camlock/internal/geom"
	"github.com/san-kum/camlock/internal/sampler"
	"github.com/san-kum/camlock/internal/storage"
	"gonum.org/v1/gonum/spatial/r2"
)

func workedExample(t *testing.T) *sampler.Result {
	t.Helper()
	res, err := sampler.Run(sampler.Config{
		Params: geom.Params{
			Base:         0.75,
			Displacement: 0.25,
			Range:        geom.Degrees(0, 200),
			Segments:     5,
			Law:          geom.Linear,
		},
		SamplesPerSegment: 10,
		Friction:          true,
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	return res
}

func TestBezierPath(t *testing.T) {
	pts := []r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 0}}
	got := BezierPath(pts, 10, 20)
	want := "M10.000,20.000 C11.000,19.000 12.000,18.000 13.000,20.000"
	if got != want {
		t.Errorf("BezierPath() = %q, want %q", got, want)
	}
	if BezierPath(nil, 0, 0) != "" {
		t.Error("expected empty path for no points")
	}
}

func TestWriteSVG(t *testing.T) {
	res := workedExample(t)

	var buf bytes.Buffer
	if err := WriteSVG(&buf, res, 96); err != nil {
		t.Fatalf("WriteSVG failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		`width="816"`,
		`height="1056"`,
		`r="72"`,
		"stroke-dasharray",
		"base radius: 0.7500 in",
		"displacement: 0.2500 in (linear)",
		"angles: 0.00 to 200.00 deg",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("svg missing %q", want)
		}
	}
	if n := strings.Count(out, " C"); n != 5 {
		t.Errorf("expected 5 bezier segments, got %d", n)
	}
	if n := strings.Count(out, "<line"); n != 2 {
		t.Errorf("expected crosshair of 2 lines, got %d", n)
	}
	if !strings.HasSuffix(strings.TrimSpace(out), "</svg>") {
		t.Error("svg not closed")
	}
}

func TestWriteSVG_Errors(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSVG(&buf, nil, 96); err == nil {
		t.Error("expected error for nil result")
	}
	if err := WriteSVG(&buf, workedExample(t), 0); err == nil {
		t.Error("expected error for zero dpi")
	}

	boom := errors.New("boom")
	if err := WriteSVG(failingWriter{boom}, workedExample(t), 96); !errors.Is(err, boom) {
		t.Errorf("expected write error, got %v", err)
	}
}

type failingWriter struct{ err error }

func (f failingWriter) Write([]byte) (int, error) { return 0, f.err }

func TestWritePoints(t *testing.T) {
	points := []sampler.SamplePoint{
		{Theta: 0, Point: r2.Vec{X: 1, Y: 0}},
		{Theta: math.Pi / 2, Point: r2.Vec{X: -0.5, Y: 2}},
	}

	var buf bytes.Buffer
	if err := WritePoints(&buf, points); err != nil {
		t.Fatal(err)
	}
	want := "0.000000 1.000000 0.000000\n90.000000 -0.500000 2.000000\n"
	if buf.String() != want {
		t.Errorf("WritePoints() = %q, want %q", buf.String(), want)
	}
}

func TestWriteFriction(t *testing.T) {
	fs := []sampler.FrictionSample{
		{Theta: 0, Mu: 0.125},
		{Theta: math.Pi, Mu: math.Inf(1), Degenerate: true},
	}

	var buf bytes.Buffer
	if err := WriteFriction(&buf, fs); err != nil {
		t.Fatal(err)
	}
	want := "0.000000 0.125000\n180.000000 +Inf\n"
	if buf.String() != want {
		t.Errorf("WriteFriction() = %q, want %q", buf.String(), want)
	}
}

func TestWriteFriction_SameGridAsPoints(t *testing.T) {
	res := workedExample(t)

	var pts, mu bytes.Buffer
	if err := WritePoints(&pts, res.Points); err != nil {
		t.Fatal(err)
	}
	if err := WriteFriction(&mu, res.Friction); err != nil {
		t.Fatal(err)
	}

	pl := strings.Split(strings.TrimSpace(pts.String()), "\n")
	ml := strings.Split(strings.TrimSpace(mu.String()), "\n")
	if len(pl) != 51 || len(ml) != 51 {
		t.Fatalf("expected 51 lines each, got %d and %d", len(pl), len(ml))
	}
	for i := range pl {
		if strings.Fields(pl[i])[0] != strings.Fields(ml[i])[0] {
			t.Fatalf("line %d: angles differ: %q vs %q", i, pl[i], ml[i])
		}
	}
}

func TestWritePNG(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePNG(&buf, workedExample(t).Friction, 4, 3, 72); err != nil {
		t.Fatalf("WritePNG failed: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}
}

func TestFrictionPlot_AllDegenerate(t *testing.T) {
	fs := []sampler.FrictionSample{{Mu: math.Inf(1), Degenerate: true}}
	if _, err := FrictionPlot(fs); err == nil {
		t.Error("expected error without finite samples")
	}
}

func TestWriteJSON(t *testing.T) {
	meta := &storage.RunMetadata{ID: "run_1", Law: "linear"}
	samples := []storage.Sample{
		{Theta: 0, X: 0.75, Mu: 0.1},
		{Theta: 1, X: 0.74, Mu: math.Inf(1)},
		{Theta: 2, X: 0.73, Mu: math.NaN()},
	}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, NewDocument(meta, samples)); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	var doc Document
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if doc.Run.ID != "run_1" || len(doc.Samples) != 3 {
		t.Fatalf("unexpected document %+v", doc)
	}
	if doc.Samples[0].Mu == nil || *doc.Samples[0].Mu != 0.1 {
		t.Errorf("expected mu 0.1, got %v", doc.Samples[0].Mu)
	}
	if doc.Samples[1].Mu != nil || doc.Samples[2].Mu != nil {
		t.Error("expected null mu for non-finite samples")
	}
}
