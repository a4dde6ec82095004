package tac

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/samber/lo"
)

// Sink receives one finished card table per call. Implementations own the
// format and the destination; a returned error aborts the run.
type Sink interface {
	WriteCard(name string, rows []ResultRow) error
}

// Options wires one generation run together.
type Options struct {
	Catalog *Catalog
	Grid    []string
	Params  Params

	Seed  uint64
	Label string
	// Epoch anchors artifact naming: card NN is dated Epoch + NN days.
	// Generation itself never reads a clock.
	Epoch time.Time

	// Threads > 1 generates cards concurrently; artifacts are still written
	// in card order.
	Threads int
	Sink    Sink
}

// ArtifactName builds the stable per-card artifact name,
// card<NN>_<label>_<date>_Results_<date>_<time>.
func ArtifactName(cardIndex int, label string, epoch time.Time) string {
	t := epoch.AddDate(0, 0, cardIndex)
	return fmt.Sprintf(
		"card%02d_%s_%s_Results_%s_%s",
		cardIndex, label, t.Format("20060102"), t.Format("20060102"), t.Format("150405"),
	)
}

// EmitAll batches samples onto cards, simulates and lays out every card,
// and hands each finished table to the sink. It returns artifact names in
// card order. Content is a pure function of (Seed, card index), so Threads
// only changes wall time, never output.
func EmitAll(samples []Sample, opt Options) ([]string, error) {
	if opt.Sink == nil {
		return nil, fmt.Errorf("%w: nil sink", ErrConfig)
	}
	if opt.Catalog == nil {
		return nil, fmt.Errorf("%w: nil catalog", ErrConfig)
	}
	if err := opt.Params.Validate(); err != nil {
		return nil, err
	}
	if opt.Label == "" {
		opt.Label = DefaultLabel
	}

	cards, err := Batch(samples, opt.Params.Capacity)
	if err != nil {
		return nil, err
	}

	rowsByCard := make(map[int][]ResultRow, len(cards))
	if opt.Threads > 1 {
		results := make(chan cardRows, len(cards)) // buffered so workers never block
		var wg sync.WaitGroup
		for _, card := range cards {
			wg.Add(1)
			go func(card Card) {
				defer wg.Done()
				rows, err := generateCard(card, opt)
				results <- cardRows{index: card.Index, rows: rows, err: err}
			}(card)
		}
		go func() {
			wg.Wait()
			close(results)
		}()

		errIndex := 0
		for res := range results {
			if res.err != nil && (errIndex == 0 || res.index < errIndex) {
				errIndex, err = res.index, res.err
			}
			rowsByCard[res.index] = res.rows
		}
		if err != nil {
			return nil, err
		}
	} else {
		for _, card := range cards {
			rows, err := generateCard(card, opt)
			if err != nil {
				return nil, err
			}
			rowsByCard[card.Index] = rows
		}
	}

	names := make([]string, 0, len(cards))
	for _, card := range cards {
		rows := rowsByCard[card.Index]
		name := ArtifactName(card.Index, opt.Label, opt.Epoch)
		slog.Info(
			"card",
			"index", card.Index,
			"artifact", name,
			"samples", len(card.Samples),
			"rows", len(rows),
			"positive", lo.CountBy(rows, func(r ResultRow) bool { return r.Result == ResultPositive }),
		)
		if err := opt.Sink.WriteCard(name, rows); err != nil {
			return nil, fmt.Errorf("write %s: %w", name, err)
		}
		names = append(names, name)
	}
	return names, nil
}

type cardRows struct {
	index int
	rows  []ResultRow
	err   error
}

func generateCard(card Card, opt Options) ([]ResultRow, error) {
	rows, err := Simulate(card, opt.Catalog, opt.Params, CardSource(opt.Seed, card.Index))
	if err != nil {
		return nil, err
	}
	if err := AssignWells(rows, opt.Grid); err != nil {
		return nil, err
	}
	return rows, nil
}
