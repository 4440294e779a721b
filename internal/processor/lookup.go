package processor

import (
	"context"
	"time"

	"github.com/sourcegraph/conc/iter"
	"go.uber.org/zap"

	"codeberg.org/snonux/srt2anki/internal/anki"
	"codeberg.org/snonux/srt2anki/internal/dictionary"
)

// DefaultWorkers is the number of lookups in flight at once
const DefaultWorkers = 20

// LookupOptions configures LookupWords
type LookupOptions struct {
	Workers int           // DefaultWorkers when zero
	Timeout time.Duration // Per-lookup deadline, none when zero
	Logger  *zap.Logger
	OnDone  func(dictionary.Result) // Called from worker goroutines after each lookup
}

// LookupWords looks every word up with at most opts.Workers lookups in
// flight and returns one Result per word in input order. Duplicate words are
// looked up again.
func LookupWords(ctx context.Context, dict dictionary.Dictionary, words []string, opts LookupOptions) []dictionary.Result {
	workers := opts.Workers
	if workers < 1 {
		workers = DefaultWorkers
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	mapper := iter.Mapper[string, dictionary.Result]{MaxGoroutines: workers}
	return mapper.Map(words, func(word *string) dictionary.Result {
		lookupCtx := ctx
		if opts.Timeout > 0 {
			var cancel context.CancelFunc
			lookupCtx, cancel = context.WithTimeout(ctx, opts.Timeout)
			defer cancel()
		}

		result := dictionary.MakeCard(lookupCtx, dict, *word, logger)
		if opts.OnDone != nil {
			opts.OnDone(result)
		}
		return result
	})
}

// Cards returns the cards of the successful results in order
func Cards(results []dictionary.Result) []anki.Card {
	cards := make([]anki.Card, 0, len(results))
	for _, result := range results {
		if !result.Skipped() {
			cards = append(cards, *result.Card)
		}
	}
	return cards
}

// MakeCards looks words up with a bounded pool of workers and returns the
// cards in input order with failed lookups removed
func MakeCards(ctx context.Context, dict dictionary.Dictionary, words []string, workers int, logger *zap.Logger) []anki.Card {
	return Cards(LookupWords(ctx, dict, words, LookupOptions{Workers: workers, Logger: logger}))
}
