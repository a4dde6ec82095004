package tac

import "golang.org/x/exp/rand"

// NewSource returns the seeded PCG source used for all draws.
func NewSource(seed uint64) rand.Source {
	return rand.NewSource(seed)
}

// CardSource derives the source for one card from the run seed and the
// 1-based card index. Card content depends on nothing else, so cards can be
// generated in any order, or concurrently, with identical results.
func CardSource(seed uint64, cardIndex int) rand.Source {
	return rand.NewSource(seed + uint64(cardIndex))
}
