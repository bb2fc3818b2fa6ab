package scenario

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/suspsim/internal/config"
	"github.com/san-kum/suspsim/internal/suspension"
)

const defaultPreset = "fss"

// Scenario is a named batch of evaluations.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Cases       []Case `yaml:"cases"`
}

// Case starts from Preset (fss when empty) and overlays the keys present in
// Vehicle and State.
type Case struct {
	Name    string    `yaml:"name"`
	Preset  string    `yaml:"preset"`
	Vehicle yaml.Node `yaml:"vehicle"`
	State   yaml.Node `yaml:"state"`
}

// Outcome is the result of one case. Err is set instead of Metrics when the
// case could not be evaluated.
type Outcome struct {
	Case    string
	Metrics suspension.DerivedMetrics
	Err     error
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if len(sc.Cases) == 0 {
		return nil, fmt.Errorf("scenario %q has no cases", sc.Name)
	}
	for i := range sc.Cases {
		if sc.Cases[i].Name == "" {
			sc.Cases[i].Name = fmt.Sprintf("case-%d", i+1)
		}
	}
	return &sc, nil
}

// Resolve builds the vehicle and state a case describes.
func (c Case) Resolve() (suspension.VehicleConfiguration, suspension.DynamicState, error) {
	name := c.Preset
	if name == "" {
		name = defaultPreset
	}
	p := config.GetPreset(name)
	if p == nil {
		return suspension.VehicleConfiguration{}, suspension.DynamicState{}, fmt.Errorf("unknown preset: %s", name)
	}
	v, st := p.Vehicle, p.State
	if !c.Vehicle.IsZero() {
		if err := c.Vehicle.Decode(&v); err != nil {
			return v, st, fmt.Errorf("vehicle: %w", err)
		}
	}
	if !c.State.IsZero() {
		if err := c.State.Decode(&st); err != nil {
			return v, st, fmt.Errorf("state: %w", err)
		}
	}
	return v, st, nil
}

// Run evaluates every case in order. A failing case is recorded in its
// Outcome and the run continues; only ctx cancellation stops it early.
func Run(ctx context.Context, sc *Scenario, log zerolog.Logger) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(sc.Cases))

	for i, c := range sc.Cases {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}

		out := Outcome{Case: c.Name}
		v, st, err := c.Resolve()
		if err == nil {
			out.Metrics, err = suspension.Evaluate(v, st)
		}
		out.Err = err

		ev := log.Debug()
		if err != nil {
			ev = log.Warn().Err(err)
		}
		ev.Str("scenario", sc.Name).Str("case", c.Name).Int("step", i+1).Int("of", len(sc.Cases)).Msg("case evaluated")

		outcomes = append(outcomes, out)
	}

	return outcomes, nil
}

// Failed counts outcomes carrying an error.
func Failed(outcomes []Outcome) int {
	n := 0
	for _, o := range outcomes {
		if o.Err != nil {
			n++
		}
	}
	return n
}
