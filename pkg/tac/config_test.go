package tac

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tac.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("overlay onto defaults", func(t *testing.T) {
		cfg, err := LoadConfig(writeConfig(t, `
label: ES1
capacity: 4
prob_cap: 0.9
p_inconclusive: 0.0
cq_range: [18, 40]
adjustments:
  produce: 0.5
`))
		require.NoError(t, err)
		assert.Equal(t, "ES1", cfg.Label)

		par, err := cfg.Apply(DefaultParams())
		require.NoError(t, err)
		assert.Equal(t, 4, par.Capacity)
		assert.Equal(t, 0.9, par.ProbCap)
		assert.Equal(t, 0.0, par.PInconclusive, "explicit zero must override the default")
		assert.Equal(t, [2]float64{18, 40}, par.CqRange)
		assert.Equal(t, 0.5, par.Adjustment[Produce])
		assert.Equal(t, 1.0, par.Adjustment[Effluent], "untouched factors keep defaults")
	})

	t.Run("absent fields keep defaults", func(t *testing.T) {
		cfg, err := LoadConfig(writeConfig(t, `label: ES1`))
		require.NoError(t, err)

		par, err := cfg.Apply(DefaultParams())
		require.NoError(t, err)
		assert.Equal(t, DefaultParams().Capacity, par.Capacity)
		assert.Equal(t, DefaultParams().PInconclusive, par.PInconclusive)
	})

	t.Run("custom panel replaces defaults, controls stay", func(t *testing.T) {
		cfg, err := LoadConfig(writeConfig(t, `
targets:
  - name: "Norovirus GII"
    prevalence: 0.4
  - name: "Salmonella spp."
    prevalence: 0.2
`))
		require.NoError(t, err)

		panel, controls := cfg.Panel()
		require.Len(t, panel, 2)
		assert.Equal(t, Target{"Norovirus GII", 0.4}, panel[0])
		assert.Equal(t, DefaultControls, controls)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.True(t, errors.Is(err, ErrConfig))
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, "capacity: [not a number"))
		assert.True(t, errors.Is(err, ErrConfig))
	})

	t.Run("bad cq_range arity", func(t *testing.T) {
		cfg, err := LoadConfig(writeConfig(t, "cq_range: [20]"))
		require.NoError(t, err)
		_, err = cfg.Apply(DefaultParams())
		assert.True(t, errors.Is(err, ErrConfig))
	})

	t.Run("unknown adjustment type", func(t *testing.T) {
		cfg, err := LoadConfig(writeConfig(t, "adjustments:\n  sludge: 0.8\n"))
		require.NoError(t, err)
		_, err = cfg.Apply(DefaultParams())
		assert.True(t, errors.Is(err, ErrConfig))
	})

	t.Run("overlay is revalidated", func(t *testing.T) {
		cfg, err := LoadConfig(writeConfig(t, "prob_cap: 1.2"))
		require.NoError(t, err)
		_, err = cfg.Apply(DefaultParams())
		assert.True(t, errors.Is(err, ErrConfig))
	})
}

func TestParsePrevalence(t *testing.T) {
	t.Run("parses values", func(t *testing.T) {
		got, err := ParsePrevalence(map[string]string{"A": "0.35", "B": "0"})
		require.NoError(t, err)
		assert.Equal(t, map[string]float64{"A": 0.35, "B": 0}, got)
	})

	t.Run("rejects junk", func(t *testing.T) {
		_, err := ParsePrevalence(map[string]string{"A": "high"})
		assert.True(t, errors.Is(err, ErrConfig))
	})
}
