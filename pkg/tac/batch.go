package tac

import (
	"fmt"

	"github.com/samber/lo"
)

// Batch partitions samples into cards of at most capacity real samples,
// preserving order, and appends one no-template control per card. Empty
// input yields zero cards.
func Batch(samples []Sample, capacity int) ([]Card, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: card capacity %d, want > 0", ErrConfig, capacity)
	}
	if len(samples) == 0 {
		return nil, nil
	}

	chunks := lo.Chunk(samples, capacity)
	cards := make([]Card, len(chunks))
	for i, chunk := range chunks {
		idx := i + 1
		// lo.Chunk returns views of the input; copy before appending the
		// control so the next chunk's first sample survives.
		batch := make([]Sample, 0, len(chunk)+1)
		batch = append(batch, chunk...)
		batch = append(batch, Sample{
			ID:   fmt.Sprintf("NTC_card%02d", idx),
			Type: NTC,
		})
		cards[i] = Card{Index: idx, Samples: batch}
	}
	return cards, nil
}
