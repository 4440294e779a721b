// Package subtitle reads SRT-style subtitle files. It splits the text into
// cue blocks and returns the dialogue lines with index and timing rows
// removed.
package subtitle
