package tac

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalog(t *testing.T) {
	t.Run("defaults validate", func(t *testing.T) {
		cat, err := NewCatalog(DefaultTargets, DefaultControls)
		require.NoError(t, err)
		assert.Equal(t, len(DefaultTargets)+len(DefaultControls), cat.Len())
		assert.Equal(t, len(DefaultControls), cat.Controls())
		assert.LessOrEqual(t, cat.Len(), len(DefaultGrid))
	})

	t.Run("assay order is panel then controls", func(t *testing.T) {
		cat, err := NewCatalog(
			[]Target{{"A", 0.5}, {"B", 0.1}},
			[]Target{{"IC", 0.97}},
		)
		require.NoError(t, err)
		got := cat.Targets()
		require.Len(t, got, 3)
		assert.Equal(t, "A", got[0].Name)
		assert.Equal(t, "B", got[1].Name)
		assert.Equal(t, "IC", got[2].Name)
	})

	t.Run("controls may be empty, panel may not", func(t *testing.T) {
		_, err := NewCatalog([]Target{{"A", 0.5}}, nil)
		assert.NoError(t, err)

		_, err = NewCatalog(nil, []Target{{"IC", 0.97}})
		assert.True(t, errors.Is(err, ErrConfig))
	})

	t.Run("prevalence outside unit interval", func(t *testing.T) {
		for _, p := range []float64{-0.01, 1.01} {
			_, err := NewCatalog([]Target{{"A", p}}, nil)
			assert.True(t, errors.Is(err, ErrConfig), "prevalence %v", p)
		}
	})

	t.Run("boundary prevalence is fine", func(t *testing.T) {
		_, err := NewCatalog([]Target{{"A", 0}, {"B", 1}}, nil)
		assert.NoError(t, err)
	})

	t.Run("duplicate and empty names", func(t *testing.T) {
		_, err := NewCatalog([]Target{{"A", 0.5}, {"A", 0.2}}, nil)
		assert.True(t, errors.Is(err, ErrConfig))

		_, err = NewCatalog([]Target{{"A", 0.5}}, []Target{{"A", 0.9}})
		assert.True(t, errors.Is(err, ErrConfig), "duplicate across panel and controls")

		_, err = NewCatalog([]Target{{"", 0.5}}, nil)
		assert.True(t, errors.Is(err, ErrConfig))
	})

	t.Run("mutating the returned order leaves the catalog alone", func(t *testing.T) {
		cat, err := NewCatalog([]Target{{"A", 0.5}, {"B", 0.1}}, nil)
		require.NoError(t, err)

		got := cat.Targets()
		got[0].Name = "mutated"
		assert.Equal(t, "A", cat.Targets()[0].Name)
	})

	t.Run("prevalence lookup", func(t *testing.T) {
		cat, err := NewCatalog([]Target{{"A", 0.5}}, []Target{{"IC", 0.97}})
		require.NoError(t, err)

		p, ok := cat.Prevalence("IC")
		assert.True(t, ok)
		assert.Equal(t, 0.97, p)

		_, ok = cat.Prevalence("missing")
		assert.False(t, ok)
	})
}

func TestApplyPrevalence(t *testing.T) {
	panel := []Target{{"A", 0.5}, {"B", 0.1}}

	t.Run("overrides by name", func(t *testing.T) {
		got, err := ApplyPrevalence(panel, map[string]float64{"B": 0.8})
		require.NoError(t, err)
		assert.Equal(t, []Target{{"A", 0.5}, {"B", 0.8}}, got)
		assert.Equal(t, 0.1, panel[1].Prevalence, "input stays untouched")
	})

	t.Run("unknown target is a configuration error", func(t *testing.T) {
		_, err := ApplyPrevalence(panel, map[string]float64{"C": 0.3})
		assert.True(t, errors.Is(err, ErrConfig))
	})
}
