package archive

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestArchiveDeck(t *testing.T) {
	tmpDir := t.TempDir()

	deckPath := filepath.Join(tmpDir, "anime.apkg")
	if err := os.WriteFile(deckPath, []byte("old deck"), 0644); err != nil {
		t.Fatalf("Failed to create deck: %v", err)
	}

	archivePath, err := ArchiveDeck(deckPath)
	if err != nil {
		t.Fatalf("ArchiveDeck failed: %v", err)
	}

	// Check that the deck no longer exists
	if _, err := os.Stat(deckPath); !os.IsNotExist(err) {
		t.Error("Deck still exists after archiving")
	}

	if filepath.Dir(archivePath) != filepath.Join(tmpDir, "archive") {
		t.Errorf("Expected archive in %s, got %s", filepath.Join(tmpDir, "archive"), archivePath)
	}

	name := filepath.Base(archivePath)
	if !strings.HasPrefix(name, "anime-") || !strings.HasSuffix(name, ".apkg") {
		t.Errorf("Unexpected archive name %q", name)
	}

	content, err := os.ReadFile(archivePath)
	if err != nil {
		t.Fatalf("Failed to read archived deck: %v", err)
	}
	if string(content) != "old deck" {
		t.Errorf("Archived content = %q, want 'old deck'", content)
	}
}

func TestArchiveDeckTimestamp(t *testing.T) {
	tmpDir := t.TempDir()
	deckPath := filepath.Join(tmpDir, "test.apkg")
	now := time.Date(2024, 3, 9, 14, 5, 7, 123456000, time.UTC)

	if err := os.WriteFile(deckPath, []byte("first"), 0644); err != nil {
		t.Fatal(err)
	}
	first, err := archiveDeck(deckPath, now)
	if err != nil {
		t.Fatalf("archiveDeck failed: %v", err)
	}
	if filepath.Base(first) != "test-20240309-140507.apkg" {
		t.Errorf("Unexpected archive name %q", filepath.Base(first))
	}

	// Same second again gets the microsecond suffix
	if err := os.WriteFile(deckPath, []byte("second"), 0644); err != nil {
		t.Fatal(err)
	}
	second, err := archiveDeck(deckPath, now)
	if err != nil {
		t.Fatalf("archiveDeck failed: %v", err)
	}
	if filepath.Base(second) != "test-20240309-140507.123456.apkg" {
		t.Errorf("Unexpected archive name %q", filepath.Base(second))
	}

	entries, err := os.ReadDir(filepath.Join(tmpDir, "archive"))
	if err != nil {
		t.Fatalf("Failed to read archive directory: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("Expected 2 archived decks, got %d", len(entries))
	}
}

func TestArchiveDeckMissing(t *testing.T) {
	tmpDir := t.TempDir()

	archivePath, err := ArchiveDeck(filepath.Join(tmpDir, "missing.apkg"))
	if err != nil {
		t.Fatalf("Expected no error for missing deck, got %v", err)
	}
	if archivePath != "" {
		t.Errorf("Expected empty archive path, got %q", archivePath)
	}

	if _, err := os.Stat(filepath.Join(tmpDir, "archive")); !os.IsNotExist(err) {
		t.Error("Archive directory created although there was nothing to archive")
	}
}

func TestArchiveDeckDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	dirPath := filepath.Join(tmpDir, "deck.apkg")
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		t.Fatal(err)
	}

	if _, err := ArchiveDeck(dirPath); err == nil {
		t.Error("Expected error when deck path is a directory")
	}
}
