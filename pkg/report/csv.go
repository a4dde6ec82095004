// Package report owns persistence: CSV tables, the combined xlsx workbook,
// and the run manifest.
package report

import (
	"encoding/csv"
	"os"
	"path/filepath"

	"github.com/liserjrqlxue/goUtil/osUtil"
	"github.com/liserjrqlxue/goUtil/simpleUtil"

	"github.com/Sarita-12/Pathogen-Data-Analysis-Training/pkg/tac"
)

// CSVSink writes one CSV artifact per card into Dir.
type CSVSink struct {
	Dir string
}

func (s CSVSink) WriteCard(name string, rows []tac.ResultRow) error {
	f, err := os.Create(filepath.Join(s.Dir, name+".csv"))
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err := w.Write(tac.ResultTitle); err != nil {
		f.Close()
		return err
	}
	for i := range rows {
		if err := w.Write(rows[i].Strings()); err != nil {
			f.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteTable writes a headed CSV table, failing fast on IO errors. Card
// artifacts go through CSVSink instead so card generation can abort cleanly.
func WriteTable(path string, title []string, lines [][]string) {
	f := osUtil.Create(path)
	defer simpleUtil.DeferClose(f)

	w := csv.NewWriter(f)
	simpleUtil.CheckErr(w.Write(title))
	simpleUtil.CheckErr(w.WriteAll(lines))
	simpleUtil.CheckErr(w.Error())
}
