// Package tac generates synthetic TaqMan array card results: samples are
// batched onto fixed-capacity cards, every card gets a no-template control,
// and each (sample, target) pair yields one detection row laid out on the
// card's well grid.
package tac

import "errors"

// ErrConfig marks every configuration failure; callers test with errors.Is.
var ErrConfig = errors.New("invalid configuration")

var (
	DefaultCapacity      = 7
	DefaultProbCap       = 0.95
	DefaultPInconclusive = 0.1
	DefaultLabel         = "TAC"

	DefaultGridRows = 8
	DefaultGridCols = 6
)

// DefaultTargets is the default assay panel with baseline detection
// prevalence calibrated to environmental surveillance pilot data.
var DefaultTargets = []Target{
	{"Adenovirus 40/41", 0.18},
	{"Astrovirus", 0.12},
	{"Norovirus GI", 0.12},
	{"Norovirus GII", 0.25},
	{"Rotavirus A", 0.15},
	{"Sapovirus", 0.10},
	{"Aeromonas spp.", 0.35},
	{"Campylobacter jejuni/coli", 0.30},
	{"EAEC aaiC", 0.40},
	{"EAEC aatA", 0.38},
	{"EPEC bfpA", 0.25},
	{"EPEC eae", 0.45},
	{"ETEC LT", 0.35},
	{"ETEC STh", 0.28},
	{"ETEC STp", 0.20},
	{"STEC stx1", 0.10},
	{"STEC stx2", 0.08},
	{"E. coli O157", 0.06},
	{"Salmonella spp.", 0.20},
	{"Shigella/EIEC ipaH", 0.42},
	{"Vibrio cholerae", 0.05},
	{"Cryptosporidium spp.", 0.15},
	{"Giardia spp.", 0.30},
	{"Ascaris lumbricoides", 0.22},
	{"Trichuris trichiura", 0.18},
	{"blaCTX-M", 0.55},
	{"blaKPC", 0.07},
	{"blaNDM", 0.12},
	{"blaOXA-48", 0.10},
	{"intI1", 0.85},
}

// DefaultControls are spiked internal controls, assayed after the panel on
// every sample. High baseline so real samples almost always amplify them.
var DefaultControls = []Target{
	{"MS2", 0.97},
	{"PhHV", 0.96},
}

// DefaultAdjustments scales baseline prevalence per sample type. The
// no-template control factor is zero and the simulator additionally forces
// control probability to zero whatever the configuration says.
var DefaultAdjustments = map[SampleType]float64{
	Effluent: 1.0,
	Compost:  0.7,
	Produce:  0.4,
	NTC:      0.0,
}

var ResultTitle = []string{
	"sample_id",
	"sample_type",
	"target",
	"det_prob",
	"cq",
	"amp_status",
	"result",
	"amp_score",
	"cq_conf",
	"delta_rn",
	"well",
}
