package game

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Options carries the per-run game and search settings. Defaults match the
// classic assignment parameters; any subset can be overridden from a YAML
// tuning file.
type Options struct {
	MaxDepth  int         `yaml:"max_depth"`
	MaxTime   float64     `yaml:"max_time"` // seconds
	MaxTurns  int         `yaml:"max_turns"`
	AlphaBeta bool        `yaml:"alpha_beta"`
	Heuristic HeuristicId `yaml:"heuristic"`
	Weights   Weights     `yaml:"weights"`
}

// Weights holds the tunable terms of the composite heuristic.
type Weights struct {
	Material  int            `yaml:"material"`
	Health    int            `yaml:"health"`
	Position  int            `yaml:"position"`
	UnitValue map[string]int `yaml:"unit_value"` // keyed by unit type name
}

// Budget converts the configured time limit to a duration.
func (o Options) Budget() time.Duration {
	return time.Duration(o.MaxTime * float64(time.Second))
}

func DefaultOptions() Options {
	return Options{
		MaxDepth:  4,
		MaxTime:   5.0,
		MaxTurns:  100,
		AlphaBeta: true,
		Heuristic: HeuristicComposite,
		Weights:   DefaultWeights(),
	}
}

func DefaultWeights() Weights {
	return Weights{
		Material: 20,
		Health:   3,
		Position: 5,
		UnitValue: map[string]int{
			AI.String():       1000,
			Virus.String():    40,
			Tech.String():     30,
			Program.String():  25,
			Firewall.String(): 10,
		},
	}
}

// LoadOptions reads a YAML tuning file over the defaults: fields absent
// from the file keep their default values.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()
	b, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("read options file: %w", err)
	}
	if err := yaml.Unmarshal(b, &opts); err != nil {
		return opts, fmt.Errorf("parse options file: %w", err)
	}
	return opts, nil
}

// unitValues flattens the named unit-value map into a table indexed by
// UnitType, filling any missing entries from the defaults.
func (w Weights) unitValues() [NumUnitTypes]int {
	defaults := DefaultWeights().UnitValue
	var values [NumUnitTypes]int
	for t := 0; t < NumUnitTypes; t++ {
		name := UnitType(t).String()
		if v, ok := w.UnitValue[name]; ok {
			values[t] = v
		} else {
			values[t] = defaults[name]
		}
	}
	return values
}
