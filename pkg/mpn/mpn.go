// Package mpn generates the tray-based microbial enumeration table:
// Quanti-Tray/2000 style well counts, an MPN estimate per 100ml, and
// resistance screening flags per field sample.
package mpn

import (
	"math"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/Sarita-12/Pathogen-Data-Analysis-Training/pkg/tac"
)

const (
	LargeWells = 49
	SmallWells = 48
	MaxMPN     = 24196.6 // upper reporting limit per 100ml

	largeVol = 1.86 // ml per large well
	smallVol = 0.186
)

// Record is one sample's enumeration result. A zero MPN is a non-detect:
// no positive wells and no resistance screening.
type Record struct {
	SampleID   string
	Household  string
	Type       tac.SampleType
	LargePos   int
	SmallPos   int
	MPN        float64
	Log10      float64
	ESBL       bool
	Carbapenem bool
}

var Title = []string{
	"sample_id",
	"household_id",
	"sample_type",
	"large_wells_positive",
	"small_wells_positive",
	"mpn_per_100ml",
	"log10_mpn",
	"esbl_ecoli",
	"carbapenem_resistant",
}

// log10 concentration per sample type: mu, sigma.
var concentration = map[tac.SampleType][2]float64{
	tac.Effluent: {5.2, 0.9},
	tac.Compost:  {3.4, 1.1},
	tac.Produce:  {1.8, 1.0},
}

var (
	esblRate = map[tac.SampleType]float64{tac.Effluent: 0.65, tac.Compost: 0.35, tac.Produce: 0.15}
	carbRate = map[tac.SampleType]float64{tac.Effluent: 0.12, tac.Compost: 0.05, tac.Produce: 0.02}
)

// Generate enumerates every sample in order. Output depends only on
// (samples, src).
func Generate(samples []tac.Sample, src rand.Source) []Record {
	records := make([]Record, len(samples))
	for i, s := range samples {
		records[i] = generate(s, src)
	}
	return records
}

func generate(s tac.Sample, src rand.Source) Record {
	rec := Record{SampleID: s.ID, Household: s.Household, Type: s.Type}

	ms, ok := concentration[s.Type]
	if !ok {
		// control matrices report non-detect
		return rec
	}
	c := math.Pow(10, distuv.Normal{Mu: ms[0], Sigma: ms[1], Src: src}.Rand())
	if c < 1 {
		return rec
	}
	c = math.Min(c, MaxMPN)

	rec.MPN = math.Round(c*10) / 10
	rec.Log10 = math.Round(math.Log10(rec.MPN)*100) / 100
	rec.LargePos, rec.SmallPos = wells(c)
	rec.ESBL = distuv.Bernoulli{P: esblRate[s.Type], Src: src}.Rand() == 1
	rec.Carbapenem = distuv.Bernoulli{P: carbRate[s.Type], Src: src}.Rand() == 1
	return rec
}

// wells derives positive well counts from concentration per 100ml. The tray
// splits the volume across 49 large and 48 small wells; counts are the
// expected positives, so a higher concentration never reads fewer wells.
func wells(c float64) (large, small int) {
	pLarge := 1 - math.Exp(-c*largeVol/100)
	pSmall := 1 - math.Exp(-c*smallVol/100)
	return int(math.Round(LargeWells * pLarge)), int(math.Round(SmallWells * pSmall))
}

// Strings renders the record in Title column order.
func (r *Record) Strings() []string {
	return []string{
		r.SampleID,
		r.Household,
		string(r.Type),
		strconv.Itoa(r.LargePos),
		strconv.Itoa(r.SmallPos),
		strconv.FormatFloat(r.MPN, 'f', 1, 64),
		strconv.FormatFloat(r.Log10, 'f', 2, 64),
		lo.Ternary(r.ESBL, "yes", "no"),
		lo.Ternary(r.Carbapenem, "yes", "no"),
	}
}

func (r *Record) Anys() []any {
	return []any{
		r.SampleID,
		r.Household,
		string(r.Type),
		r.LargePos,
		r.SmallPos,
		r.MPN,
		r.Log10,
		lo.Ternary(r.ESBL, "yes", "no"),
		lo.Ternary(r.Carbapenem, "yes", "no"),
	}
}

func (r *Record) String() string {
	return strings.Join(r.Strings(), "\t")
}
