package subtitle

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Cue represents a single subtitle entry
type Cue struct {
	Index  string   // Sequence number row, e.g. "12"
	Timing string   // Time range row, e.g. "00:01:02,000 --> 00:01:04,500"
	Lines  []string // Dialogue rows
}

// ReadFile reads a subtitle file and returns its dialogue lines in order
func ReadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read subtitle file: %w", err)
	}
	defer f.Close()

	return Read(f)
}

// Read returns the dialogue lines of the subtitle text read from r
func Read(r io.Reader) ([]string, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read subtitle file: %w", err)
	}

	return Lines(Parse(string(content))), nil
}

// Parse splits subtitle text into cue blocks.
// Blocks are separated by a blank line. Whitespace-only blocks are skipped
// and whitespace-only rows inside a block are dropped before the first two
// rows are taken as index and timing.
func Parse(text string) []Cue {
	text = strings.TrimPrefix(text, "\uFEFF")
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var cues []Cue
	for _, block := range strings.Split(text, "\n\n") {
		if strings.TrimSpace(block) == "" {
			continue
		}

		var rows []string
		for _, row := range strings.Split(block, "\n") {
			if strings.TrimSpace(row) != "" {
				rows = append(rows, row)
			}
		}

		cue := Cue{Index: rows[0]}
		if len(rows) > 1 {
			cue.Timing = rows[1]
		}
		if len(rows) > 2 {
			cue.Lines = rows[2:]
		}
		cues = append(cues, cue)
	}

	return cues
}

// Lines flattens cues into their dialogue lines
func Lines(cues []Cue) []string {
	var lines []string
	for _, cue := range cues {
		lines = append(lines, cue.Lines...)
	}
	return lines
}
