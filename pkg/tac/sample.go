package tac

import "fmt"

type SampleType string

const (
	Effluent SampleType = "effluent"
	Compost  SampleType = "compost"
	Produce  SampleType = "produce"
	NTC      SampleType = "no-template-control"
)

// ParseSampleType maps the sample_type column value back to its enum.
func ParseSampleType(s string) (SampleType, error) {
	switch SampleType(s) {
	case Effluent, Compost, Produce, NTC:
		return SampleType(s), nil
	}
	return "", fmt.Errorf("%w: unknown sample type %q", ErrConfig, s)
}

type Sample struct {
	ID        string
	Household string // empty for control samples
	Type      SampleType
}

// Card holds the samples assayed together on one physical card. Samples is
// the batched chunk followed by exactly one no-template control; Index is
// 1-based and unique within a run.
type Card struct {
	Index   int
	Samples []Sample
}
