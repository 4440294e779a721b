// Package processor contains the core pipeline of srt2anki. It reads the
// subtitle file, tokenizes the dialogue, looks the candidate words up with a
// bounded pool of workers and writes the resulting cards as an Anki package.
// This package serves as the main coordinator between all other components.
package processor
