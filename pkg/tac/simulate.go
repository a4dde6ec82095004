package tac

import (
	"fmt"
	"maps"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Params are the simulation tunables. Zero values are not usable; start
// from DefaultParams.
type Params struct {
	Capacity      int
	ProbCap       float64
	PInconclusive float64
	Adjustment    map[SampleType]float64

	CqRange     [2]float64
	AmpScorePos [2]float64
	AmpScoreNeg [2]float64
	CqConfPos   [2]float64
	CqConfNeg   [2]float64
	DeltaRnPos  [2]float64
}

func DefaultParams() Params {
	return Params{
		Capacity:      DefaultCapacity,
		ProbCap:       DefaultProbCap,
		PInconclusive: DefaultPInconclusive,
		Adjustment:    maps.Clone(DefaultAdjustments),

		CqRange:     [2]float64{20, 35},
		AmpScorePos: [2]float64{1.2, 2.0},
		AmpScoreNeg: [2]float64{0.0, 1.1},
		CqConfPos:   [2]float64{0.8, 1.0},
		CqConfNeg:   [2]float64{0.0, 0.5},
		DeltaRnPos:  [2]float64{0.1, 1.0},
	}
}

func (par Params) Validate() error {
	if par.Capacity <= 0 {
		return fmt.Errorf("%w: card capacity %d, want > 0", ErrConfig, par.Capacity)
	}
	if par.ProbCap < 0 || par.ProbCap > 1 {
		return fmt.Errorf("%w: probability cap %v outside [0,1]", ErrConfig, par.ProbCap)
	}
	if par.PInconclusive < 0 || par.PInconclusive > 1 {
		return fmt.Errorf("%w: inconclusive probability %v outside [0,1]", ErrConfig, par.PInconclusive)
	}
	for name, r := range map[string][2]float64{
		"cq_range":      par.CqRange,
		"amp_score_pos": par.AmpScorePos,
		"amp_score_neg": par.AmpScoreNeg,
		"cq_conf_pos":   par.CqConfPos,
		"cq_conf_neg":   par.CqConfNeg,
		"delta_rn_pos":  par.DeltaRnPos,
	} {
		if r[0] > r[1] {
			return fmt.Errorf("%w: %s [%v,%v] inverted", ErrConfig, name, r[0], r[1])
		}
	}
	for typ, factor := range par.Adjustment {
		if factor < 0 {
			return fmt.Errorf("%w: adjustment factor %v for %q, want >= 0", ErrConfig, factor, typ)
		}
	}
	return nil
}

// Simulate draws one result per (sample, target) pair of the card. Rows are
// grouped by sample in card order, within a sample in assay order. Every
// sample type on the card must have an adjustment factor; the check runs
// before any draw so a failed card consumes nothing from src.
func Simulate(card Card, cat *Catalog, par Params, src rand.Source) ([]ResultRow, error) {
	for _, s := range card.Samples {
		if _, ok := par.Adjustment[s.Type]; !ok {
			return nil, fmt.Errorf("%w: no adjustment factor for sample type %q", ErrConfig, s.Type)
		}
	}

	rows := make([]ResultRow, 0, len(card.Samples)*cat.Len())
	for _, s := range card.Samples {
		for _, t := range cat.targets {
			rows = append(rows, simulatePair(s, t, par, src))
		}
	}
	return rows, nil
}

func simulatePair(s Sample, t Target, par Params, src rand.Source) ResultRow {
	p := t.Prevalence * par.Adjustment[s.Type]
	if s.Type == NTC {
		// No template, no amplification, whatever the configured factor.
		p = 0
	}
	p = clamp(p, 0, par.ProbCap)

	row := ResultRow{
		SampleID:   s.ID,
		SampleType: s.Type,
		Target:     t.Name,
		Prob:       p,
		Detected:   bernoulli(src, p),
	}
	if row.Detected {
		row.Cq = round2(uniform(src, par.CqRange))
		row.AmpStatus = StatusAmp
		row.Result = ResultPositive
		row.AmpScore = round2(uniform(src, par.AmpScorePos))
		row.CqConf = round2(uniform(src, par.CqConfPos))
		row.DeltaRn = round2(uniform(src, par.DeltaRnPos))
		return row
	}

	if bernoulli(src, par.PInconclusive) {
		row.AmpStatus = StatusInconclusive
		row.Result = ResultEquivocal
	} else {
		row.AmpStatus = StatusNoAmp
		row.Result = ResultNegative
	}
	row.AmpScore = round2(uniform(src, par.AmpScoreNeg))
	row.CqConf = round2(uniform(src, par.CqConfNeg))
	return row
}

func uniform(src rand.Source, r [2]float64) float64 {
	return distuv.Uniform{Min: r[0], Max: r[1], Src: src}.Rand()
}

func bernoulli(src rand.Source, p float64) bool {
	return distuv.Bernoulli{P: p, Src: src}.Rand() == 1
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clamp(v, low, high float64) float64 {
	return math.Min(math.Max(v, low), high)
}
