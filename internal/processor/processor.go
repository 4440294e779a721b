package processor

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"codeberg.org/snonux/srt2anki/internal/anki"
	"codeberg.org/snonux/srt2anki/internal/archive"
	"codeberg.org/snonux/srt2anki/internal/cli"
	"codeberg.org/snonux/srt2anki/internal/dictionary"
	"codeberg.org/snonux/srt2anki/internal/report"
	"codeberg.org/snonux/srt2anki/internal/subtitle"
	"codeberg.org/snonux/srt2anki/internal/tokenize"
)

// Processor turns one subtitle file into a deck
type Processor struct {
	flags     *cli.Flags
	logger    *zap.Logger
	dict      dictionary.Dictionary
	tokenizer *tokenize.Tokenizer
	filter    *tokenize.Filter
	out       io.Writer
	errOut    io.Writer
}

// NewProcessor creates a processor with the dictionary backend selected by flags
func NewProcessor(ctx context.Context, flags *cli.Flags, logger *zap.Logger) (*Processor, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	dict, err := newDictionary(ctx, flags)
	if err != nil {
		return nil, err
	}
	if flags.BreakerFailures > 0 {
		dict = dictionary.NewBreaker(dict, flags.BreakerFailures, logger)
	}

	tk, err := tokenize.NewTokenizer()
	if err != nil {
		return nil, fmt.Errorf("failed to create tokenizer: %w", err)
	}
	tk.BaseForm = flags.BaseForm

	return &Processor{
		flags:     flags,
		logger:    logger,
		dict:      dict,
		tokenizer: tk,
		filter:    tokenize.NewFilter(flags.KanaWords),
		out:       os.Stdout,
		errOut:    os.Stderr,
	}, nil
}

func newDictionary(ctx context.Context, flags *cli.Flags) (dictionary.Dictionary, error) {
	switch flags.Dictionary {
	case "", "jisho":
		// --timeout is applied per lookup through the context
		return dictionary.NewJishoClient(&dictionary.JishoConfig{BaseURL: flags.JishoURL}), nil
	case "openai":
		key := cli.GetOpenAIKey()
		if key == "" {
			return nil, fmt.Errorf("OpenAI API key not found. Set OPENAI_API_KEY environment variable or configure openai.key in .srt2anki.yaml")
		}
		return dictionary.NewOpenAIDictionary(&dictionary.OpenAIConfig{
			APIKey: key,
			Model:  flags.OpenAIModel,
		}), nil
	case "gemini":
		return dictionary.NewGeminiDictionary(ctx, &dictionary.GeminiConfig{
			APIKey: cli.GetGeminiKey(),
			Model:  flags.GeminiModel,
		})
	default:
		return nil, fmt.Errorf("unknown dictionary %q", flags.Dictionary)
	}
}

// SetOutput redirects the summary and status messages
func (p *Processor) SetOutput(out, errOut io.Writer) {
	p.out = out
	p.errOut = errOut
}

// Words reads the subtitle file and returns the candidate words of its
// dialogue in order of appearance, duplicates included
func (p *Processor) Words(subtitlePath string) ([]string, error) {
	lines, err := subtitle.ReadFile(subtitlePath)
	if err != nil {
		return nil, err
	}
	return p.tokenizer.Candidates(strings.Join(lines, "\n"), p.filter), nil
}

// Run builds <output-dir>/<name>.apkg from the subtitle file and returns
// its absolute path
func (p *Processor) Run(ctx context.Context, subtitlePath string) (string, error) {
	words, err := p.Words(subtitlePath)
	if err != nil {
		return "", err
	}
	p.logger.Info("extracted candidate words",
		zap.String("subtitle", subtitlePath),
		zap.Int("words", len(words)),
		zap.String("dictionary", p.dict.Name()))

	results := p.lookup(ctx, words)

	// An interrupted lookup leaves the previous deck alone
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("lookup interrupted: %w", err)
	}

	cards := Cards(results)
	if p.flags.Dedupe {
		cards = anki.Dedupe(cards)
	}

	gen := anki.NewGenerator(&anki.GeneratorOptions{
		DeckName:       p.flags.DeckName,
		OutputDir:      p.flags.OutputDir,
		IncludeHeaders: true,
	})
	for _, card := range cards {
		gen.AddCard(card)
	}

	if p.flags.Archive {
		if err := p.archiveExisting(gen); err != nil {
			return "", err
		}
	}

	outputPath, err := gen.GenerateAPKG()
	if err != nil {
		return "", fmt.Errorf("failed to generate APKG: %w", err)
	}

	total, unique := gen.Stats()
	p.logger.Info("deck written",
		zap.String("path", outputPath),
		zap.Int("cards", total),
		zap.Int("unique", unique),
		zap.Int("skipped", len(results)-len(Cards(results))))

	if p.flags.CSV {
		csvPath, err := gen.GenerateCSV()
		if err != nil {
			return "", fmt.Errorf("failed to generate CSV: %w", err)
		}
		fmt.Fprintf(p.errOut, "CSV file created: %s\n", csvPath)
	}

	if p.flags.Summary {
		if err := report.Render(p.out, results); err != nil {
			return "", fmt.Errorf("failed to print summary: %w", err)
		}
	}

	return outputPath, nil
}

func (p *Processor) lookup(ctx context.Context, words []string) []dictionary.Result {
	opts := LookupOptions{
		Workers: p.flags.Workers,
		Timeout: p.flags.Timeout,
		Logger:  p.logger,
	}

	if p.flags.Progress && len(words) > 0 {
		bar := progressbar.NewOptions(len(words),
			progressbar.OptionSetWriter(p.errOut),
			progressbar.OptionSetDescription("Looking up words"),
			progressbar.OptionShowCount(),
			progressbar.OptionEnableColorCodes(report.ShouldColorize(p.errOut)),
			progressbar.OptionClearOnFinish(),
		)
		opts.OnDone = func(dictionary.Result) {
			if err := bar.Add(1); err != nil {
				p.logger.Debug("progress bar update failed", zap.Error(err))
			}
		}
		defer bar.Finish()
	}

	return LookupWords(ctx, p.dict, words, opts)
}

// archiveExisting moves a previous deck of the same name out of the way
func (p *Processor) archiveExisting(gen *anki.Generator) error {
	deckPath, err := gen.APKGPath()
	if err != nil {
		return err
	}

	archivePath, err := archive.ArchiveDeck(deckPath)
	if err != nil {
		return fmt.Errorf("failed to archive deck: %w", err)
	}
	if archivePath != "" {
		fmt.Fprintf(p.errOut, "Previous deck archived to: %s\n", archivePath)
	}
	return nil
}
