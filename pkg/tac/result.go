package tac

import (
	"fmt"
	"strings"
)

const (
	StatusAmp          = "Amp"
	StatusNoAmp        = "No Amp"
	StatusInconclusive = "Inconclusive"

	ResultPositive  = "Positive"
	ResultNegative  = "Negative"
	ResultEquivocal = "Equivocal"
)

// ResultRow is one (sample, target) observation. Cq and DeltaRn are only
// meaningful when Detected; renderers emit them empty otherwise, which keeps
// the Cq <=> Amp <=> Positive coupling visible in the artifact itself.
type ResultRow struct {
	SampleID   string
	SampleType SampleType
	Target     string
	Prob       float64 // clamped detection probability actually used
	Detected   bool
	Cq         float64
	AmpStatus  string
	Result     string
	AmpScore   float64
	CqConf     float64
	DeltaRn    float64
	Well       string
}

// Strings renders the row in ResultTitle column order.
func (r *ResultRow) Strings() []string {
	cq, deltaRn := "", ""
	if r.Detected {
		cq = fmt.Sprintf("%.2f", r.Cq)
		deltaRn = fmt.Sprintf("%.2f", r.DeltaRn)
	}
	return []string{
		r.SampleID,
		string(r.SampleType),
		r.Target,
		fmt.Sprintf("%.4f", r.Prob),
		cq,
		r.AmpStatus,
		r.Result,
		fmt.Sprintf("%.2f", r.AmpScore),
		fmt.Sprintf("%.2f", r.CqConf),
		deltaRn,
		r.Well,
	}
}

// Anys renders the row for xlsx sheet writers, keeping numbers numeric.
func (r *ResultRow) Anys() []any {
	var cq, deltaRn any
	if r.Detected {
		cq, deltaRn = r.Cq, r.DeltaRn
	} else {
		cq, deltaRn = "", ""
	}
	return []any{
		r.SampleID,
		string(r.SampleType),
		r.Target,
		r.Prob,
		cq,
		r.AmpStatus,
		r.Result,
		r.AmpScore,
		r.CqConf,
		deltaRn,
		r.Well,
	}
}

func (r *ResultRow) String() string {
	return strings.Join(r.Strings(), "\t")
}
