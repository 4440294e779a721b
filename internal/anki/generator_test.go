package anki

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
)

func TestNewGenerator(t *testing.T) {
	gen := NewGenerator(nil)
	if gen.options.DeckName != "Japanese Vocabulary" {
		t.Errorf("Expected default deck name, got %q", gen.options.DeckName)
	}
	if gen.options.OutputDir != "." {
		t.Errorf("Expected default output dir '.', got %q", gen.options.OutputDir)
	}
	if len(gen.GetCards()) != 0 {
		t.Errorf("Expected no cards, got %d", len(gen.GetCards()))
	}
}

func TestGeneratorStats(t *testing.T) {
	gen := NewGenerator(nil)
	gen.AddCard(Card{"七", "【しち】: seven, hepta-"})
	gen.AddCard(Card{"俺", "【おれ】: I"})
	gen.AddCard(Card{"七", "【しち】: seven, hepta-"})

	total, unique := gen.Stats()
	if total != 3 || unique != 2 {
		t.Errorf("Stats() = (%d, %d), want (3, 2)", total, unique)
	}
}

func TestGeneratorPaths(t *testing.T) {
	gen := NewGenerator(&GeneratorOptions{DeckName: "anime", OutputDir: "decks"})

	apkg, err := gen.APKGPath()
	if err != nil {
		t.Fatalf("APKGPath() error = %v", err)
	}
	if !filepath.IsAbs(apkg) {
		t.Errorf("Expected absolute path, got %q", apkg)
	}
	if filepath.Base(apkg) != "anime.apkg" || filepath.Base(filepath.Dir(apkg)) != "decks" {
		t.Errorf("Unexpected APKG path %q", apkg)
	}

	csvPath, err := gen.CSVPath()
	if err != nil {
		t.Fatalf("CSVPath() error = %v", err)
	}
	if filepath.Base(csvPath) != "anime.csv" {
		t.Errorf("Unexpected CSV path %q", csvPath)
	}
}

func TestGenerateCSV(t *testing.T) {
	tests := []struct {
		name           string
		includeHeaders bool
		wantRows       int
	}{
		{"with headers", true, 3},
		{"without headers", false, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := NewGenerator(&GeneratorOptions{
				DeckName:       "words",
				OutputDir:      t.TempDir(),
				IncludeHeaders: tt.includeHeaders,
			})
			gen.AddCard(Card{"誰", "【だれ】: who"})
			gen.AddCard(Card{"大罪", "【だいざい】: serious crime, Mortal sin"})

			path, err := gen.GenerateCSV()
			if err != nil {
				t.Fatalf("GenerateCSV() error = %v", err)
			}

			file, err := os.Open(path)
			if err != nil {
				t.Fatalf("Failed to open CSV: %v", err)
			}
			defer file.Close()

			records, err := csv.NewReader(file).ReadAll()
			if err != nil {
				t.Fatalf("Failed to parse CSV: %v", err)
			}
			if len(records) != tt.wantRows {
				t.Fatalf("Expected %d rows, got %d", tt.wantRows, len(records))
			}

			last := records[len(records)-1]
			if last[0] != "大罪" || last[1] != "【だいざい】: serious crime, Mortal sin" {
				t.Errorf("Unexpected last row %v", last)
			}
		})
	}
}

func TestBuildDeck(t *testing.T) {
	outputDir := filepath.Join(t.TempDir(), "nested", "out")

	path, err := BuildDeck(testCards, "test", outputDir)
	if err != nil {
		t.Fatalf("BuildDeck() error = %v", err)
	}

	if !filepath.IsAbs(path) {
		t.Errorf("Expected absolute path, got %q", path)
	}
	if path != filepath.Join(outputDir, "test.apkg") {
		t.Errorf("Expected %s, got %s", filepath.Join(outputDir, "test.apkg"), path)
	}

	db := openPackage(t, path)
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM notes").Scan(&count); err != nil {
		t.Fatalf("Failed to count notes: %v", err)
	}
	if count != len(testCards) {
		t.Errorf("Expected %d notes, got %d", len(testCards), count)
	}
}

func TestBuildDeckEmpty(t *testing.T) {
	path, err := BuildDeck(nil, "empty", t.TempDir())
	if err != nil {
		t.Fatalf("BuildDeck() error = %v", err)
	}

	db := openPackage(t, path)
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM notes").Scan(&count); err != nil {
		t.Fatalf("Failed to count notes: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected empty deck, got %d notes", count)
	}
}

func TestBuildDeckUnwritableDir(t *testing.T) {
	// A regular file where the output directory should be
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := BuildDeck(testCards, "test", filepath.Join(blocker, "sub")); err == nil {
		t.Error("Expected error when output directory cannot be created")
	}
}
