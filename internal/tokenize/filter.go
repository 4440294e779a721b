package tokenize

import (
	"iter"
	"regexp"
)

var (
	// A study word starts with a kanji and continues in kanji or kana.
	kanjiLedWord = regexp.MustCompile(`^\p{Han}[\p{Han}\p{Hiragana}\p{Katakana}]*$`)
	// Relaxed form also admitting kana-only words.
	scriptWord = regexp.MustCompile(`^[\p{Han}\p{Hiragana}\p{Katakana}]+$`)
)

// Filter decides which tokens are worth a dictionary lookup
type Filter struct {
	pattern *regexp.Regexp
}

// NewFilter returns the script-membership filter.
// With allowKana, words written only in hiragana or katakana pass as well.
func NewFilter(allowKana bool) *Filter {
	if allowKana {
		return &Filter{pattern: scriptWord}
	}
	return &Filter{pattern: kanjiLedWord}
}

// Match reports whether word consists only of the accepted scripts.
// Empty strings, digits, Latin letters and punctuation never match.
func (f *Filter) Match(word string) bool {
	return f.pattern.MatchString(word)
}

// Seq filters a word sequence lazily
func (f *Filter) Seq(words iter.Seq[string]) iter.Seq[string] {
	return func(yield func(string) bool) {
		for word := range words {
			if !f.Match(word) {
				continue
			}
			if !yield(word) {
				return
			}
		}
	}
}

// Apply returns the words that pass the filter, preserving order
func (f *Filter) Apply(words []string) []string {
	var kept []string
	for _, word := range words {
		if f.Match(word) {
			kept = append(kept, word)
		}
	}
	return kept
}
