package tac

import (
	"fmt"

	"github.com/liserjrqlxue/goUtil/simpleUtil"
	"github.com/xuri/excelize/v2"
)

// Grid enumerates well addresses row-major: A1..A<cols>, B1..B<cols>, and so
// on. Row letters follow spreadsheet column naming, so plates beyond 26 rows
// get AA, AB, ...
func Grid(rows, cols int) []string {
	grid := make([]string, 0, rows*cols)
	for r := 1; r <= rows; r++ {
		letter := simpleUtil.HandleError(excelize.ColumnNumberToName(r))
		for c := 1; c <= cols; c++ {
			grid = append(grid, fmt.Sprintf("%s%d", letter, c))
		}
	}
	return grid
}

// DefaultGrid is the physical card layout, 48 wells.
var DefaultGrid = Grid(DefaultGridRows, DefaultGridCols)

// AssignWells places each sample's i-th assay at grid[i mod len(grid)].
// Rows must arrive grouped by sample as Simulate emits them; the position
// counter resets on each new sample, so every sample on the card gets the
// identical (target, well) layout.
func AssignWells(rows []ResultRow, grid []string) error {
	if len(grid) == 0 {
		return fmt.Errorf("%w: empty well grid", ErrConfig)
	}

	pos, last := 0, ""
	for i := range rows {
		if rows[i].SampleID != last {
			pos, last = 0, rows[i].SampleID
		}
		rows[i].Well = grid[pos%len(grid)]
		pos++
	}
	return nil
}
