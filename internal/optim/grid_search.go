// Package optim searches a grid of cam parameters for the largest
// displacement that still locks with the available friction.
package optim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/san-kum/camlock/internal/config"
	"github.com/san-kum/camlock/internal/sampler"
)

var ErrNoFeasible = errors.New("optim: no candidate locks with the available friction")

// Axes that can be swept.
const (
	AxisRadius       = "radius"
	AxisDisplacement = "displacement"
	AxisStartAngle   = "start_angle"
	AxisEndAngle     = "end_angle"
	AxisSegments     = "segments"
)

type Axis struct {
	Name   string
	Values []float64
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = lo + (hi-lo)*float64(i)/float64(n-1)
	}
	out[n-1] = hi
	return out
}

// ParseAxis reads either "lo:hi:n" or a comma separated list of values.
func ParseAxis(name, spec string) (Axis, error) {
	if err := apply(config.DefaultConfig(), name, 0); err != nil {
		return Axis{}, err
	}
	if parts := strings.Split(spec, ":"); len(parts) == 3 {
		lo, err1 := strconv.ParseFloat(parts[0], 64)
		hi, err2 := strconv.ParseFloat(parts[1], 64)
		n, err3 := strconv.Atoi(parts[2])
		if err := errors.Join(err1, err2, err3); err != nil {
			return Axis{}, fmt.Errorf("optim: axis %s: %w", name, err)
		}
		if n < 1 {
			return Axis{}, fmt.Errorf("optim: axis %s: need at least one value", name)
		}
		return Axis{Name: name, Values: Linspace(lo, hi, n)}, nil
	}

	var values []float64
	for _, field := range strings.Split(spec, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return Axis{}, fmt.Errorf("optim: axis %s: %w", name, err)
		}
		values = append(values, v)
	}
	return Axis{Name: name, Values: values}, nil
}

func apply(cfg *config.Config, name string, v float64) error {
	switch name {
	case AxisRadius:
		cfg.Radius = v
	case AxisDisplacement:
		cfg.Displacement = v
	case AxisStartAngle:
		cfg.StartAngle = v
	case AxisEndAngle:
		cfg.EndAngle = v
	case AxisSegments:
		cfg.Segments = int(math.Round(v))
	default:
		return fmt.Errorf("optim: unknown axis %q", name)
	}
	return nil
}

// Candidate is one evaluated grid point.
type Candidate struct {
	Values   map[string]float64
	Config   config.Config
	MuMax    float64
	RMSError float64
	Locks    bool
	Err      error
}

type GridSearch struct {
	base    config.Config
	axes    []Axis
	workers int
}

func NewGridSearch(base *config.Config, axes ...Axis) *GridSearch {
	return &GridSearch{base: *base, axes: axes, workers: runtime.NumCPU()}
}

// SetWorkers bounds the number of candidates evaluated concurrently.
func (g *GridSearch) SetWorkers(n int) {
	g.workers = max(n, 1)
}

// Search evaluates every grid point against the available friction and
// returns the locking candidate with the largest displacement, ties going
// to the smaller peak friction. All candidates are returned in grid order.
func (g *GridSearch) Search(ctx context.Context, available float64) (*Candidate, []Candidate, error) {
	var grid []map[string]float64
	if err := g.enumerate(0, map[string]float64{}, &grid); err != nil {
		return nil, nil, err
	}

	candidates := make([]Candidate, len(grid))
	sem := make(chan struct{}, g.workers)
	var wg sync.WaitGroup
	for i, values := range grid {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return nil, nil, err
		}
		select {
		case <-ctx.Done():
			wg.Wait()
			return nil, nil, ctx.Err()
		case sem <- struct{}{}:
		}
		wg.Add(1)
		go func(idx int, values map[string]float64) {
			defer wg.Done()
			defer func() { <-sem }()
			candidates[idx] = g.evaluate(values, available)
		}(i, values)
	}
	wg.Wait()

	var best *Candidate
	for i := range candidates {
		c := &candidates[i]
		if !c.Locks {
			continue
		}
		if best == nil || c.Config.Displacement > best.Config.Displacement ||
			(c.Config.Displacement == best.Config.Displacement && c.MuMax < best.MuMax) {
			best = c
		}
	}
	if best == nil {
		return nil, candidates, ErrNoFeasible
	}
	return best, candidates, nil
}

func (g *GridSearch) enumerate(depth int, current map[string]float64, out *[]map[string]float64) error {
	if depth == len(g.axes) {
		values := make(map[string]float64, len(current))
		for k, v := range current {
			values[k] = v
		}
		*out = append(*out, values)
		return nil
	}
	axis := g.axes[depth]
	if len(axis.Values) == 0 {
		return fmt.Errorf("optim: axis %s has no values", axis.Name)
	}
	for _, v := range axis.Values {
		current[axis.Name] = v
		if err := g.enumerate(depth+1, current, out); err != nil {
			return err
		}
	}
	delete(current, axis.Name)
	return nil
}

func (g *GridSearch) evaluate(values map[string]float64, available float64) Candidate {
	cfg := g.base
	c := Candidate{Values: values, MuMax: math.Inf(1)}
	for _, name := range sortedKeys(values) {
		if err := apply(&cfg, name, values[name]); err != nil {
			c.Err = err
			return c
		}
	}
	c.Config = cfg

	sc, err := cfg.Sampler(true)
	if err != nil {
		c.Err = err
		return c
	}
	res, err := sampler.Run(sc)
	if err != nil {
		c.Err = err
		return c
	}
	c.RMSError = res.RMSError

	_, hi, ok := sampler.MuRange(res.Friction)
	degenerate := false
	for _, f := range res.Friction {
		degenerate = degenerate || f.Degenerate
	}
	if ok && !degenerate {
		c.MuMax = hi
		c.Locks = hi <= available
	}
	return c
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
