package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sarita-12/Pathogen-Data-Analysis-Training/pkg/tac"
)

type recordSink struct {
	names []string
	fail  bool
}

func (r *recordSink) WriteCard(name string, _ []tac.ResultRow) error {
	if r.fail {
		return fmt.Errorf("sink down")
	}
	r.names = append(r.names, name)
	return nil
}

func TestTee(t *testing.T) {
	t.Run("every sink sees every card", func(t *testing.T) {
		a, b := &recordSink{}, &recordSink{}
		tee := Tee{a, b}
		require.NoError(t, tee.WriteCard("card01", nil))
		require.NoError(t, tee.WriteCard("card02", nil))
		assert.Equal(t, []string{"card01", "card02"}, a.names)
		assert.Equal(t, a.names, b.names)
	})

	t.Run("first failure stops the fan out", func(t *testing.T) {
		late := &recordSink{}
		tee := Tee{&recordSink{fail: true}, late}
		assert.Error(t, tee.WriteCard("card01", nil))
		assert.Empty(t, late.names)
	})
}

func TestStats(t *testing.T) {
	s := &Stats{}
	require.NoError(t, s.WriteCard("card01", testRows())) // 1 positive of 2
	require.NoError(t, s.WriteCard("card02", []tac.ResultRow{
		{Result: tac.ResultNegative},
		{Result: tac.ResultNegative},
	}))
	require.NoError(t, s.WriteCard("card03", nil))

	assert.Equal(t, 2, s.Cards())
	assert.InDelta(t, 0.25, s.MeanRate(), 1e-9)

	assert.Zero(t, (&Stats{}).MeanRate())
}

func TestWriteManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	m := Manifest{
		RunID:      "8a2f8f5e-0000-4000-8000-c0ffee000001",
		Generated:  "2024-01-01T09:30:00Z",
		Seed:       7,
		Label:      "TAC",
		Epoch:      "20240101",
		Capacity:   7,
		Households: 40,
		Samples:    120,
		Cards:      18,
		Tables:     []string{"survey_households_20240101.csv"},
		Artifacts:  []string{"card01_TAC_20240102_Results_20240102_093000"},
	}
	require.NoError(t, WriteManifest(path, m))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var got Manifest
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, m, got)
}
