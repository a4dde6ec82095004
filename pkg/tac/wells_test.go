package tac

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrid(t *testing.T) {
	t.Run("default card layout", func(t *testing.T) {
		require.Len(t, DefaultGrid, 48)
		assert.Equal(t, "A1", DefaultGrid[0])
		assert.Equal(t, "A6", DefaultGrid[5])
		assert.Equal(t, "B1", DefaultGrid[6])
		assert.Equal(t, "H6", DefaultGrid[47])
	})

	t.Run("rows beyond Z get spreadsheet names", func(t *testing.T) {
		grid := Grid(27, 1)
		assert.Equal(t, "Z1", grid[25])
		assert.Equal(t, "AA1", grid[26])
	})
}

func TestAssignWells(t *testing.T) {
	cat, err := NewCatalog(DefaultTargets, DefaultControls)
	require.NoError(t, err)

	t.Run("identical layout for every sample on the card", func(t *testing.T) {
		card := testCard(t, 7, 7)
		rows, err := Simulate(card, cat, DefaultParams(), NewSource(1))
		require.NoError(t, err)
		require.NoError(t, AssignWells(rows, DefaultGrid))

		layouts := make(map[string]map[string]string) // sample -> target -> well
		for _, row := range rows {
			if layouts[row.SampleID] == nil {
				layouts[row.SampleID] = make(map[string]string)
			}
			layouts[row.SampleID][row.Target] = row.Well
		}
		require.Len(t, layouts, len(card.Samples))

		want := layouts[card.Samples[0].ID]
		for id, layout := range layouts {
			assert.Equal(t, want, layout, "sample %s", id)
		}
	})

	t.Run("assay position maps to grid position", func(t *testing.T) {
		card := testCard(t, 1, 7)
		rows, err := Simulate(card, cat, DefaultParams(), NewSource(1))
		require.NoError(t, err)
		require.NoError(t, AssignWells(rows, DefaultGrid))

		for i, target := range cat.Targets() {
			assert.Equal(t, DefaultGrid[i], rows[i].Well)
			assert.Equal(t, target.Name, rows[i].Target)
		}
	})

	t.Run("small grid wraps", func(t *testing.T) {
		rows := []ResultRow{
			{SampleID: "s", Target: "t0"},
			{SampleID: "s", Target: "t1"},
			{SampleID: "s", Target: "t2"},
			{SampleID: "s", Target: "t3"},
			{SampleID: "s", Target: "t4"},
		}
		grid := []string{"A1", "A2", "A3"}
		require.NoError(t, AssignWells(rows, grid))
		assert.Equal(t, []string{"A1", "A2", "A3", "A1", "A2"}, []string{
			rows[0].Well, rows[1].Well, rows[2].Well, rows[3].Well, rows[4].Well,
		})
	})

	t.Run("empty grid is a configuration error", func(t *testing.T) {
		err := AssignWells([]ResultRow{{SampleID: "s"}}, nil)
		assert.True(t, errors.Is(err, ErrConfig))
	})
}
