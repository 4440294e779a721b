package dictionary

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"codeberg.org/snonux/srt2anki/internal/anki"
)

// SkipReason classifies why a word produced no card
type SkipReason string

const (
	SkipNone         SkipReason = ""
	SkipNetwork      SkipReason = "network"
	SkipStatus       SkipReason = "status"
	SkipMalformed    SkipReason = "malformed"
	SkipNoResult     SkipReason = "no-result"
	SkipMissingField SkipReason = "missing-field"
	SkipBreakerOpen  SkipReason = "breaker-open"
	SkipInternal     SkipReason = "internal"
)

// Result is the outcome of making a card for one word.
// Exactly one of Card and Reason is set.
type Result struct {
	Word   string
	Card   *anki.Card
	Reason SkipReason
	Err    error
}

// Skipped reports whether the word was dropped
func (r Result) Skipped() bool {
	return r.Card == nil
}

// MakeCard looks word up in dict and builds its card. Failures, including a
// panic inside the dictionary, never escape: they come back as a skipped
// Result with the classified reason.
func MakeCard(ctx context.Context, dict Dictionary, word string, logger *zap.Logger) (result Result) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Info("making card for word", zap.String("word", word))

	defer func() {
		if r := recover(); r != nil {
			result = Result{Word: word, Reason: SkipInternal, Err: fmt.Errorf("dictionary panic: %v", r)}
		}
		if result.Skipped() {
			logger.Info("skipping word",
				zap.String("word", word),
				zap.String("reason", string(result.Reason)),
				zap.Error(result.Err))
		}
	}()

	entry, err := dict.Lookup(ctx, word)
	if err != nil {
		return Result{Word: word, Reason: Classify(err), Err: err}
	}

	card := NewCard(entry)
	return Result{Word: word, Card: &card}
}

// NewCard formats an entry as a card: the spelling on the front, the
// reading in 【】 followed by the glosses on the back
func NewCard(entry *Entry) anki.Card {
	return anki.Card{
		Front: entry.Word,
		Back:  "【" + entry.Reading + "】: " + strings.Join(entry.Senses, ", "),
	}
}

// Classify maps a lookup error to its SkipReason
func Classify(err error) SkipReason {
	var statusErr *StatusError

	switch {
	case err == nil:
		return SkipNone
	case errors.Is(err, ErrBreakerOpen):
		return SkipBreakerOpen
	case errors.Is(err, ErrNoResult):
		return SkipNoResult
	case errors.Is(err, ErrMissingField):
		return SkipMissingField
	case errors.Is(err, ErrMalformed):
		return SkipMalformed
	case errors.As(err, &statusErr):
		return SkipStatus
	default:
		// transport failures, timeouts and cancellation
		return SkipNetwork
	}
}
