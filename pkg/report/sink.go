package report

import (
	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"

	"github.com/Sarita-12/Pathogen-Data-Analysis-Training/pkg/tac"
)

// Tee fans each card out to several sinks in order; the first failure wins.
type Tee []tac.Sink

func (t Tee) WriteCard(name string, rows []tac.ResultRow) error {
	for _, s := range t {
		if err := s.WriteCard(name, rows); err != nil {
			return err
		}
	}
	return nil
}

// Stats accumulates per-card positivity for the run summary log line.
type Stats struct {
	rates []float64
}

func (s *Stats) WriteCard(_ string, rows []tac.ResultRow) error {
	if len(rows) == 0 {
		return nil
	}
	positive := lo.CountBy(rows, func(r tac.ResultRow) bool { return r.Result == tac.ResultPositive })
	s.rates = append(s.rates, float64(positive)/float64(len(rows)))
	return nil
}

func (s *Stats) Cards() int {
	return len(s.rates)
}

// MeanRate is the mean per-card positive fraction.
func (s *Stats) MeanRate() float64 {
	if len(s.rates) == 0 {
		return 0
	}
	return stat.Mean(s.rates, nil)
}
