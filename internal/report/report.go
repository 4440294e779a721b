package report

import (
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"codeberg.org/snonux/srt2anki/internal/dictionary"
)

// Counts tallies lookup outcomes
type Counts struct {
	Cards   int
	Skipped map[dictionary.SkipReason]int
}

// Count tallies results by outcome
func Count(results []dictionary.Result) Counts {
	counts := Counts{Skipped: make(map[dictionary.SkipReason]int)}
	for _, result := range results {
		if result.Skipped() {
			counts.Skipped[result.Reason]++
			continue
		}
		counts.Cards++
	}
	return counts
}

// TotalSkipped returns the number of dropped words
func (c Counts) TotalSkipped() int {
	total := 0
	for _, n := range c.Skipped {
		total += n
	}
	return total
}

var skipOrder = []dictionary.SkipReason{
	dictionary.SkipNoResult,
	dictionary.SkipMissingField,
	dictionary.SkipMalformed,
	dictionary.SkipStatus,
	dictionary.SkipNetwork,
	dictionary.SkipBreakerOpen,
	dictionary.SkipInternal,
}

// Render writes one row per looked up word followed by the outcome totals
func Render(w io.Writer, results []dictionary.Result) error {
	colorize := ShouldColorize(w)

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "Word", "Front", "Back"})

	for i, result := range results {
		if result.Skipped() {
			reason := "skipped: " + string(result.Reason)
			if colorize {
				reason = text.FgYellow.Sprint(reason)
			}
			tw.AppendRow(table.Row{i + 1, result.Word, "", reason})
			continue
		}
		tw.AppendRow(table.Row{i + 1, result.Word, result.Card.Front, result.Card.Back})
	}

	counts := Count(results)
	tw.AppendFooter(table.Row{"", "", "cards", counts.Cards})
	for _, reason := range skipOrder {
		if n := counts.Skipped[reason]; n > 0 {
			tw.AppendFooter(table.Row{"", "", string(reason), n})
		}
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 4, WidthMax: 60},
	})

	_, err := fmt.Fprintln(w, tw.Render())
	return err
}

// ShouldColorize reports whether w is a terminal
func ShouldColorize(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
