package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/camlock/internal/geom"
	"github.com/san-kum/camlock/internal/sampler"
)

const (
	metadataFile = "metadata.json"
	samplesFile  = "samples.csv"
)

var ErrRunNotFound = errors.New("storage: run not found")

var samplesHeader = []string{"theta", "x", "y", "support", "mu"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// FrictionSummary condenses the friction curve of a run.
type FrictionSummary struct {
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	Degenerate int     `json:"degenerate"`
}

type RunMetadata struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Timestamp    time.Time        `json:"timestamp"`
	Law          string           `json:"law"`
	StartAngle   float64          `json:"start_angle"`
	EndAngle     float64          `json:"end_angle"`
	Radius       float64          `json:"radius"`
	Displacement float64          `json:"displacement"`
	Segments     int              `json:"segments"`
	Samples      int              `json:"samples"`
	RMSError     float64          `json:"rms_error"`
	Friction     *FrictionSummary `json:"friction,omitempty"`
	Warnings     []string         `json:"warnings,omitempty"`
}

// Sample is one row of samples.csv. Theta is in degrees. Mu is NaN when the
// run did not evaluate friction and +Inf at degenerate samples.
type Sample struct {
	Theta   float64
	X       float64
	Y       float64
	Support float64
	Mu      float64
}

// Samples flattens the point and friction sequences of res into rows.
func Samples(res *sampler.Result) []Sample {
	out := make([]Sample, len(res.Points))
	for i, p := range res.Points {
		mu := math.NaN()
		if i < len(res.Friction) {
			mu = res.Friction[i].Mu
		}
		out[i] = Sample{Theta: geom.Deg(p.Theta), X: p.X(), Y: p.Y(), Support: p.Support, Mu: mu}
	}
	return out
}

func newMetadata(id, name string, res *sampler.Result, perSegment int) RunMetadata {
	p := res.ControlPoints.Params
	meta := RunMetadata{
		ID:           id,
		Name:         name,
		Timestamp:    time.Now(),
		Law:          p.Law.String(),
		StartAngle:   geom.Deg(p.Range.Min),
		EndAngle:     geom.Deg(p.Range.Max),
		Radius:       p.Base,
		Displacement: p.Displacement,
		Segments:     p.Segments,
		Samples:      perSegment,
		RMSError:     res.RMSError,
	}
	if res.Friction != nil {
		lo, hi, ok := sampler.MuRange(res.Friction)
		summary := &FrictionSummary{}
		if ok {
			summary.Min, summary.Max = lo, hi
		}
		for _, f := range res.Friction {
			if f.Degenerate {
				summary.Degenerate++
			}
		}
		meta.Friction = summary
	}
	for _, w := range res.Warnings {
		meta.Warnings = append(meta.Warnings, w.String())
	}
	return meta
}

// Save archives res under a new run directory and returns its id.
func (s *Store) Save(name string, res *sampler.Result) (string, error) {
	if res == nil || len(res.Points) == 0 {
		return "", fmt.Errorf("storage: empty result")
	}
	runID := fmt.Sprintf("%s_%d", name, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	perSegment := (len(res.Points) - 1) / res.ControlPoints.Params.Segments
	meta := newMetadata(runID, name, res, perSegment)
	if err := writeMetadata(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeSamples(filepath.Join(runDir, samplesFile), Samples(res)); err != nil {
		return "", err
	}
	return runID, nil
}

func writeMetadata(path string, meta RunMetadata) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func writeSamples(path string, samples []Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(samplesHeader); err != nil {
		return err
	}
	for _, smp := range samples {
		row := []string{
			formatFloat(smp.Theta),
			formatFloat(smp.X),
			formatFloat(smp.Y),
			formatFloat(smp.Support),
			formatFloat(smp.Mu),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// formatFloat writes NaN as an empty field.
func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// List returns the metadata of every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		if runs[i].Timestamp.Equal(runs[j].Timestamp) {
			return runs[i].ID < runs[j].ID
		}
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadSamples(runID string) ([]Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, samplesFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(samplesHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []Sample{}, nil
	}

	samples := make([]Sample, 0, len(records)-1)
	for i, record := range records[1:] {
		var vals [5]float64
		for j, field := range record {
			if field == "" {
				vals[j] = math.NaN()
				continue
			}
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("storage: %s line %d: %w", samplesFile, i+2, err)
			}
			vals[j] = v
		}
		samples = append(samples, Sample{Theta: vals[0], X: vals[1], Y: vals[2], Support: vals[3], Mu: vals[4]})
	}
	return samples, nil
}
