package optim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/suspsim/internal/config"
	"github.com/san-kum/suspsim/internal/suspension"
)

// Objective scores an evaluation; lower is better.
type Objective func(suspension.DerivedMetrics) float64

var objectives = map[string]Objective{
	"front_shift":   func(m suspension.DerivedMetrics) float64 { return m.FrontShift },
	"rear_shift":    func(m suspension.DerivedMetrics) float64 { return m.RearShift },
	"total_shift":   func(m suspension.DerivedMetrics) float64 { return m.FrontShift + m.RearShift },
	"shift_balance": func(m suspension.DerivedMetrics) float64 { return math.Abs(m.FrontShift - m.RearShift) },
	"slip_angle":    func(m suspension.DerivedMetrics) float64 { return m.SlipAngle },
}

// ObjectiveByName looks up one of the built-in objectives.
func ObjectiveByName(name string) (Objective, error) {
	o, ok := objectives[name]
	if !ok {
		return nil, fmt.Errorf("unknown objective: %s (available: %v)", name, ObjectiveNames())
	}
	return o, nil
}

func ObjectiveNames() []string {
	return []string{"front_shift", "rear_shift", "shift_balance", "slip_angle", "total_shift"}
}

// Result is the best grid point found.
type Result struct {
	Params    map[string]float64
	Score     float64
	Metrics   suspension.DerivedMetrics
	Evaluated int
	Rejected  int
}

// GridSearch walks every combination of slider values.
type GridSearch struct {
	sliders []config.Slider
	values  [][]float64
}

// NewGridSearch searches the named sliders over their full step grids.
func NewGridSearch(names []string) (*GridSearch, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("no parameters to search")
	}
	g := &GridSearch{}
	seen := map[string]bool{}
	for _, name := range names {
		s, ok := config.SliderByName(name)
		if !ok {
			return nil, fmt.Errorf("unknown parameter: %s", name)
		}
		if s.Fixed() {
			return nil, fmt.Errorf("parameter %s is fixed", name)
		}
		if seen[name] {
			return nil, fmt.Errorf("parameter %s given twice", name)
		}
		seen[name] = true
		n := int(math.Round((s.Max-s.Min)/s.Step)) + 1
		vals, err := suspension.Linspace(suspension.Range{Min: s.Min, Max: s.Max}, n)
		if err != nil {
			return nil, err
		}
		if seen[config.SliderFrontRatio] && seen[config.SliderRearRatio] {
			return nil, fmt.Errorf("front_ratio and rear_ratio are coupled; search only one")
		}
		g.sliders = append(g.sliders, s)
		g.values = append(g.values, vals)
	}
	return g, nil
}

// Size is the number of grid points.
func (g *GridSearch) Size() int {
	n := 1
	for _, v := range g.values {
		n *= len(v)
	}
	return n
}

// Search evaluates every grid point starting from v and st. Points the model
// rejects are counted and skipped. It fails only when ctx is canceled or no
// point is valid.
func (g *GridSearch) Search(ctx context.Context, v suspension.VehicleConfiguration, st suspension.DynamicState, obj Objective) (Result, error) {
	res := Result{Score: math.Inf(1)}
	if err := g.search(ctx, 0, v, st, map[string]float64{}, obj, &res); err != nil {
		return res, err
	}
	if res.Params == nil {
		return res, fmt.Errorf("no valid configuration among %d candidates", res.Rejected)
	}
	return res, nil
}

func (g *GridSearch) search(ctx context.Context, depth int, v suspension.VehicleConfiguration, st suspension.DynamicState, current map[string]float64, obj Objective, best *Result) error {
	if depth == len(g.sliders) {
		if err := ctx.Err(); err != nil {
			return err
		}
		m, err := suspension.Evaluate(v, st)
		if err != nil {
			best.Rejected++
			return nil
		}
		best.Evaluated++
		if score := obj(m); score < best.Score {
			best.Score = score
			best.Metrics = m
			best.Params = make(map[string]float64, len(current))
			for k, val := range current {
				best.Params[k] = val
			}
		}
		return nil
	}

	s := g.sliders[depth]
	for _, val := range g.values[depth] {
		nv, nst := s.Set(v, st, val)
		current[s.Name] = val
		if err := g.search(ctx, depth+1, nv, nst, current, obj, best); err != nil {
			return err
		}
	}
	delete(current, s.Name)
	return nil
}
