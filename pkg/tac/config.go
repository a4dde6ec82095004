package tac

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the optional YAML overlay for panel and simulation tunables.
// Absent fields keep their defaults; pointer fields distinguish "absent"
// from a configured zero.
type Config struct {
	Label         string             `yaml:"label"`
	Capacity      int                `yaml:"capacity"`
	ProbCap       *float64           `yaml:"prob_cap"`
	PInconclusive *float64           `yaml:"p_inconclusive"`
	CqRange       []float64          `yaml:"cq_range"`
	Adjustments   map[string]float64 `yaml:"adjustments"`
	Targets       []TargetConfig     `yaml:"targets"`
	Controls      []TargetConfig     `yaml:"controls"`
}

type TargetConfig struct {
	Name       string  `yaml:"name"`
	Prevalence float64 `yaml:"prevalence"`
}

func LoadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrConfig, path, err)
	}
	return &cfg, nil
}

// Apply overlays the config onto par and revalidates.
func (c *Config) Apply(par Params) (Params, error) {
	if c.Capacity != 0 {
		par.Capacity = c.Capacity
	}
	if c.ProbCap != nil {
		par.ProbCap = *c.ProbCap
	}
	if c.PInconclusive != nil {
		par.PInconclusive = *c.PInconclusive
	}
	switch len(c.CqRange) {
	case 0:
	case 2:
		par.CqRange = [2]float64{c.CqRange[0], c.CqRange[1]}
	default:
		return par, fmt.Errorf("%w: cq_range wants [low, high], got %v", ErrConfig, c.CqRange)
	}
	for typ, factor := range c.Adjustments {
		t, err := ParseSampleType(typ)
		if err != nil {
			return par, err
		}
		par.Adjustment[t] = factor
	}
	return par, par.Validate()
}

// Panel returns the configured targets and controls, falling back to the
// defaults for whichever list the config leaves out.
func (c *Config) Panel() (panel, controls []Target) {
	if len(c.Targets) > 0 {
		panel = make([]Target, len(c.Targets))
		for i, t := range c.Targets {
			panel[i] = Target{Name: t.Name, Prevalence: t.Prevalence}
		}
	} else {
		panel = append(panel, DefaultTargets...)
	}
	if len(c.Controls) > 0 {
		controls = make([]Target, len(c.Controls))
		for i, t := range c.Controls {
			controls[i] = Target{Name: t.Name, Prevalence: t.Prevalence}
		}
	} else {
		controls = append(controls, DefaultControls...)
	}
	return
}

// ParsePrevalence converts a name -> value override table, as loaded from a
// two-column file, into prevalence overrides.
func ParsePrevalence(raw map[string]string) (map[string]float64, error) {
	out := make(map[string]float64, len(raw))
	for name, val := range raw {
		p, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: prevalence for %q: %v", ErrConfig, name, err)
		}
		out[name] = p
	}
	return out, nil
}
