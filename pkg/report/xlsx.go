package report

import (
	"log"
	"strconv"
	"strings"

	"github.com/liserjrqlxue/goUtil/simpleUtil"
	"github.com/xuri/excelize/v2"

	"github.com/Sarita-12/Pathogen-Data-Analysis-Training/pkg/tac"
)

var CardsTitle = []string{
	"sheet",
	"artifact",
	"rows",
	"positive",
}

// Workbook collects every table of a run into one xlsx file. It implements
// tac.Sink, so card tables land as sheets while CSV artifacts are written
// elsewhere.
type Workbook struct {
	xlsx  *excelize.File
	cards [][]any
}

func NewWorkbook() *Workbook {
	return &Workbook{xlsx: excelize.NewFile()}
}

// AddSheet writes a headed table sheet.
func (wb *Workbook) AddSheet(sheet string, title []string, lines [][]any) {
	simpleUtil.HandleError(wb.xlsx.NewSheet(sheet))
	wb.xlsx.SetSheetRow(sheet, "A1", &title)

	row := 2
	for _, line := range lines {
		wb.xlsx.SetSheetRow(sheet, "A"+strconv.Itoa(row), &line)
		row++
	}
}

// WriteCard adds one card table as sheet card<NN>. Sheet names cap at 31
// characters, so the full artifact name only appears in the Cards index.
func (wb *Workbook) WriteCard(name string, rows []tac.ResultRow) error {
	sheet := strings.SplitN(name, "_", 2)[0]

	positive := 0
	lines := make([][]any, len(rows))
	for i := range rows {
		lines[i] = rows[i].Anys()
		if rows[i].Result == tac.ResultPositive {
			positive++
		}
	}
	wb.AddSheet(sheet, tac.ResultTitle, lines)
	wb.cards = append(wb.cards, []any{sheet, name, len(rows), positive})
	return nil
}

// AddLayout draws the physical card map: column numbers across the top, row
// letters down the side, one target per well in assay order. Control wells
// get their own fill.
func (wb *Workbook) AddLayout(sheet string, cat *tac.Catalog, rows, cols int) {
	var (
		headStyle = simpleUtil.HandleError(wb.xlsx.NewStyle(fill("#BDD7EE")))
		wellStyle = simpleUtil.HandleError(wb.xlsx.NewStyle(fill("#E2EFDA")))
		ctrlStyle = simpleUtil.HandleError(wb.xlsx.NewStyle(fill("#FFE699")))
	)

	simpleUtil.HandleError(wb.xlsx.NewSheet(sheet))

	colNums := make([]int, cols)
	for c := range colNums {
		colNums[c] = c + 1
	}
	wb.xlsx.SetSheetRow(sheet, "B1", &colNums)

	rowNames := make([]string, rows)
	for r := range rowNames {
		rowNames[r] = simpleUtil.HandleError(excelize.ColumnNumberToName(r + 1))
	}
	wb.xlsx.SetSheetCol(sheet, "A2", &rowNames)

	wb.xlsx.SetCellStyle(sheet, "B1", cellName(cols+1, 1), headStyle)
	wb.xlsx.SetCellStyle(sheet, "A2", cellName(1, rows+1), headStyle)

	firstControl := cat.Len() - cat.Controls()
	for i, t := range cat.Targets() {
		cell := cellName(i%cols+2, i/cols+2)
		wb.xlsx.SetCellStr(sheet, cell, t.Name)
		if i >= firstControl {
			wb.xlsx.SetCellStyle(sheet, cell, cell, ctrlStyle)
		} else {
			wb.xlsx.SetCellStyle(sheet, cell, cell, wellStyle)
		}
	}
}

// Save appends the Cards index, drops the default sheet, and writes the
// workbook.
func (wb *Workbook) Save(path string) error {
	if len(wb.cards) > 0 {
		wb.AddSheet("Cards", CardsTitle, wb.cards)
	}
	if len(wb.xlsx.GetSheetList()) > 1 {
		simpleUtil.CheckErr(wb.xlsx.DeleteSheet("Sheet1"))
	}
	log.Printf("SaveAs(%s)", path)
	return wb.xlsx.SaveAs(path)
}

func cellName(col, row int) string {
	return simpleUtil.HandleError(excelize.CoordinatesToCellName(col, row))
}

func fill(color string) *excelize.Style {
	return &excelize.Style{
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{color},
			Pattern: 1,
		},
	}
}
