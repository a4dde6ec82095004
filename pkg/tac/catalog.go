package tac

import "fmt"

// Target couples an assay name with its baseline detection prevalence.
type Target struct {
	Name       string
	Prevalence float64
}

// Catalog is the validated, ordered assay panel of a card. The assay order
// is panel targets followed by control targets; it never changes after
// construction and drives well placement.
type Catalog struct {
	targets  []Target
	controls int
	prev     map[string]float64
}

// NewCatalog validates panel and control targets eagerly. Controls may be
// empty; the panel may not.
func NewCatalog(panel, controls []Target) (*Catalog, error) {
	if len(panel) == 0 {
		return nil, fmt.Errorf("%w: empty target panel", ErrConfig)
	}

	cat := &Catalog{
		targets:  make([]Target, 0, len(panel)+len(controls)),
		controls: len(controls),
		prev:     make(map[string]float64, len(panel)+len(controls)),
	}
	cat.targets = append(cat.targets, panel...)
	cat.targets = append(cat.targets, controls...)

	for _, t := range cat.targets {
		if t.Name == "" {
			return nil, fmt.Errorf("%w: target with empty name", ErrConfig)
		}
		if _, ok := cat.prev[t.Name]; ok {
			return nil, fmt.Errorf("%w: duplicate target %q", ErrConfig, t.Name)
		}
		if t.Prevalence < 0 || t.Prevalence > 1 {
			return nil, fmt.Errorf("%w: target %q prevalence %v outside [0,1]", ErrConfig, t.Name, t.Prevalence)
		}
		cat.prev[t.Name] = t.Prevalence
	}
	return cat, nil
}

// Len is the assay count per sample, controls included.
func (c *Catalog) Len() int { return len(c.targets) }

// Controls is the count of trailing control targets.
func (c *Catalog) Controls() int { return c.controls }

// Targets returns the assay order as a copy; the catalog itself stays
// immutable.
func (c *Catalog) Targets() []Target {
	out := make([]Target, len(c.targets))
	copy(out, c.targets)
	return out
}

// Prevalence looks up a target's baseline prevalence by name.
func (c *Catalog) Prevalence(name string) (float64, bool) {
	p, ok := c.prev[name]
	return p, ok
}

// ApplyPrevalence overrides baseline prevalence per target name, as parsed
// from a two-column override file. Unknown names and unparseable values are
// configuration errors; validation happens when the catalog is rebuilt.
func ApplyPrevalence(panel []Target, overrides map[string]float64) ([]Target, error) {
	seen := make(map[string]bool, len(panel))
	out := make([]Target, len(panel))
	for i, t := range panel {
		if p, ok := overrides[t.Name]; ok {
			t.Prevalence = p
			seen[t.Name] = true
		}
		out[i] = t
	}
	for name := range overrides {
		if !seen[name] {
			return nil, fmt.Errorf("%w: prevalence override for unknown target %q", ErrConfig, name)
		}
	}
	return out, nil
}
