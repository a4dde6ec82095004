// Package survey samples the household enrollment table and derives the
// field sample sheet that feeds card generation.
package survey

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/Sarita-12/Pathogen-Data-Analysis-Training/pkg/tac"
)

// Household is one enrolled household. Rows are independent draws; there is
// no cross-household structure.
type Household struct {
	ID            string
	Ward          string
	Size          int
	WaterSource   string
	WaterTreat    string
	Sanitation    string
	SharedLatrine bool
	Animals       bool
	AnimalTypes   []string
	Income        string
}

var Title = []string{
	"household_id",
	"ward",
	"household_size",
	"water_source",
	"water_treatment",
	"sanitation",
	"shared_latrine",
	"animals_present",
	"animal_types",
	"income_bracket",
}

var (
	wards = []string{"W01", "W02", "W03", "W04", "W05"}

	waterSources = []string{"piped", "tubewell", "protected well", "surface", "vendor"}
	waterWeights = []float64{0.3, 0.3, 0.2, 0.1, 0.1}

	treatments       = []string{"none", "boil", "chlorinate", "filter"}
	treatmentWeights = []float64{0.5, 0.2, 0.15, 0.15}

	sanitations       = []string{"flush to septic", "pit with slab", "pit without slab", "open"}
	sanitationWeights = []float64{0.3, 0.4, 0.2, 0.1}

	incomes       = []string{"low", "lower-middle", "upper-middle", "high"}
	incomeWeights = []float64{0.4, 0.3, 0.2, 0.1}

	animalKinds   = []string{"poultry", "cattle", "goats", "dogs"}
	animalWeights = []float64{0.75, 0.25, 0.4, 0.3}
)

// Generate draws n households. Output depends only on (n, src).
func Generate(n int, src rand.Source) []Household {
	households := make([]Household, n)
	for i := range households {
		hh := Household{
			ID:            fmt.Sprintf("HH%03d", i+1),
			Ward:          pickEqual(src, wards),
			Size:          1 + int(distuv.Poisson{Lambda: 3.4, Src: src}.Rand()),
			WaterSource:   pick(src, waterSources, waterWeights),
			WaterTreat:    pick(src, treatments, treatmentWeights),
			Sanitation:    pick(src, sanitations, sanitationWeights),
			SharedLatrine: chance(src, 0.45),
			Animals:       chance(src, 0.6),
			Income:        pick(src, incomes, incomeWeights),
		}
		if hh.Animals {
			for k, kind := range animalKinds {
				if chance(src, animalWeights[k]) {
					hh.AnimalTypes = append(hh.AnimalTypes, kind)
				}
			}
			if len(hh.AnimalTypes) == 0 {
				hh.AnimalTypes = []string{animalKinds[0]}
			}
		}
		households[i] = hh
	}
	return households
}

// SampleTypes is the collection order of field samples per household.
var SampleTypes = []tac.SampleType{tac.Effluent, tac.Compost, tac.Produce}

// SampleSheet is the ordered household x sample-type cross product; the
// resulting slice is what the card batcher partitions.
func SampleSheet(households []Household) []tac.Sample {
	samples := make([]tac.Sample, 0, len(households)*len(SampleTypes))
	for _, hh := range households {
		for _, typ := range SampleTypes {
			samples = append(samples, tac.Sample{
				ID:        fmt.Sprintf("%s_%s", hh.ID, typ),
				Household: hh.ID,
				Type:      typ,
			})
		}
	}
	return samples
}

// Strings renders the household in Title column order.
func (h *Household) Strings() []string {
	return []string{
		h.ID,
		h.Ward,
		strconv.Itoa(h.Size),
		h.WaterSource,
		h.WaterTreat,
		h.Sanitation,
		yesNo(h.SharedLatrine),
		yesNo(h.Animals),
		strings.Join(h.AnimalTypes, ";"),
		h.Income,
	}
}

func (h *Household) Anys() []any {
	return []any{
		h.ID,
		h.Ward,
		h.Size,
		h.WaterSource,
		h.WaterTreat,
		h.Sanitation,
		yesNo(h.SharedLatrine),
		yesNo(h.Animals),
		strings.Join(h.AnimalTypes, ";"),
		h.Income,
	}
}

func (h *Household) String() string {
	return strings.Join(h.Strings(), "\t")
}

func yesNo(b bool) string {
	return lo.Ternary(b, "yes", "no")
}

func pick(src rand.Source, options []string, weights []float64) string {
	return options[int(distuv.NewCategorical(weights, src).Rand())]
}

func pickEqual(src rand.Source, options []string) string {
	weights := make([]float64, len(options))
	for i := range weights {
		weights[i] = 1
	}
	return pick(src, options, weights)
}

func chance(src rand.Source, p float64) bool {
	return distuv.Bernoulli{P: p, Src: src}.Rand() == 1
}
