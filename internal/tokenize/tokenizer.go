package tokenize

import (
	"iter"
	"slices"
	"strings"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
	"golang.org/x/text/width"
)

// IPA feature index of the dictionary (lemma) form
const baseFormFeature = 6

// Tokenizer produces word tokens from Japanese text
type Tokenizer struct {
	t *tokenizer.Tokenizer

	// BaseForm yields the dictionary form of inflected words
	// (e.g. 傷つけ -> 傷つける) instead of the surface text.
	BaseForm bool
}

// NewTokenizer creates a tokenizer backed by the IPA dictionary
func NewTokenizer() (*Tokenizer, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, err
	}
	return &Tokenizer{t: t}, nil
}

// Words returns a lazy sequence of the word tokens in text.
// Every iteration tokenizes text again, so the sequence can be ranged over
// any number of times.
func (tk *Tokenizer) Words(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, token := range tk.t.Tokenize(width.Fold.String(text)) {
			if token.Class == tokenizer.DUMMY {
				continue
			}
			if strings.TrimSpace(token.Surface) == "" {
				continue
			}

			word := token.Surface
			if tk.BaseForm {
				features := token.Features()
				if len(features) > baseFormFeature && features[baseFormFeature] != "*" {
					word = features[baseFormFeature]
				}
			}

			if !yield(word) {
				return
			}
		}
	}
}

// Candidates tokenizes text and keeps the words accepted by filter, in order.
// Duplicates are kept.
func (tk *Tokenizer) Candidates(text string, filter *Filter) []string {
	return slices.Collect(filter.Seq(tk.Words(text)))
}
