package anki

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// GeneratorOptions configures the deck export
type GeneratorOptions struct {
	DeckName       string // Deck name, also the output file stem
	OutputDir      string // Directory receiving <DeckName>.apkg / .csv
	IncludeHeaders bool   // Include CSV headers
}

// DefaultGeneratorOptions returns sensible defaults
func DefaultGeneratorOptions() *GeneratorOptions {
	return &GeneratorOptions{
		DeckName:       "Japanese Vocabulary",
		OutputDir:      ".",
		IncludeHeaders: true,
	}
}

// Generator collects cards and writes them as Anki import files
type Generator struct {
	options *GeneratorOptions
	cards   []Card
}

// NewGenerator creates a new Anki generator
func NewGenerator(options *GeneratorOptions) *Generator {
	if options == nil {
		options = DefaultGeneratorOptions()
	}
	return &Generator{
		options: options,
		cards:   make([]Card, 0),
	}
}

// AddCard adds a card to the collection
func (g *Generator) AddCard(card Card) {
	g.cards = append(g.cards, card)
}

// GetCards returns all cards in the order they were added
func (g *Generator) GetCards() []Card {
	return g.cards
}

// Stats returns the number of cards and the number of distinct fronts
func (g *Generator) Stats() (total, unique int) {
	return len(g.cards), NewCardSet(g.cards...).Len()
}

// APKGPath returns the absolute path of the .apkg file
func (g *Generator) APKGPath() (string, error) {
	return g.outputPath(".apkg")
}

// CSVPath returns the absolute path of the .csv file
func (g *Generator) CSVPath() (string, error) {
	return g.outputPath(".csv")
}

func (g *Generator) outputPath(ext string) (string, error) {
	path, err := filepath.Abs(filepath.Join(g.options.OutputDir, g.options.DeckName+ext))
	if err != nil {
		return "", fmt.Errorf("failed to resolve output path: %w", err)
	}
	return path, nil
}

// GenerateAPKG writes every card as its own note into <OutputDir>/<DeckName>.apkg
// and returns the absolute path of the package
func (g *Generator) GenerateAPKG() (string, error) {
	outputPath, err := g.APKGPath()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	apkgGen := NewAPKGGenerator(g.options.DeckName)
	for _, card := range g.cards {
		apkgGen.AddCard(card)
	}

	if err := apkgGen.GenerateAPKG(outputPath); err != nil {
		return "", err
	}
	return outputPath, nil
}

// GenerateCSV writes the cards as front,back rows for Anki's text import
func (g *Generator) GenerateCSV() (string, error) {
	outputPath, err := g.CSVPath()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return "", fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if g.options.IncludeHeaders {
		if err := writer.Write([]string{"Question", "Answer"}); err != nil {
			return "", fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for _, card := range g.cards {
		if err := writer.Write([]string{card.Front, card.Back}); err != nil {
			return "", fmt.Errorf("failed to write card: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("failed to write CSV file: %w", err)
	}

	return outputPath, nil
}

// BuildDeck packages cards into <outputDir>/<name>.apkg, one note per card,
// and returns the absolute path of the written file
func BuildDeck(cards []Card, name, outputDir string) (string, error) {
	gen := NewGenerator(&GeneratorOptions{
		DeckName:  name,
		OutputDir: outputDir,
	})
	for _, card := range cards {
		gen.AddCard(card)
	}

	outputPath, err := gen.GenerateAPKG()
	if err != nil {
		return "", fmt.Errorf("failed to generate APKG: %w", err)
	}
	return outputPath, nil
}
