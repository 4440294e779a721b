// Package tokenize splits Japanese dialogue into words with the kagome
// morphological analyzer and filters them down to study candidates written
// in kanji and kana.
package tokenize
