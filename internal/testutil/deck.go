package testutil

import (
	"archive/zip"
	"database/sql"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// DeckNote is the front and back of one note read back from a package
type DeckNote struct {
	Front string
	Back  string
}

// ReadDeckNotes opens an .apkg file and returns its notes in insertion order
func ReadDeckNotes(t *testing.T, apkgPath string) []DeckNote {
	t.Helper()

	reader, err := zip.OpenReader(apkgPath)
	if err != nil {
		t.Fatalf("Failed to open APKG as zip: %v", err)
	}
	defer reader.Close()

	dbPath := filepath.Join(t.TempDir(), "collection.anki2")
	extracted := false
	for _, file := range reader.File {
		if file.Name != "collection.anki2" {
			continue
		}
		src, err := file.Open()
		if err != nil {
			t.Fatalf("Failed to open collection: %v", err)
		}
		content, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			t.Fatalf("Failed to read collection: %v", err)
		}
		if err := os.WriteFile(dbPath, content, 0644); err != nil {
			t.Fatalf("Failed to extract collection: %v", err)
		}
		extracted = true
	}
	if !extracted {
		t.Fatalf("collection.anki2 not found in %s", apkgPath)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("Failed to open collection: %v", err)
	}
	defer db.Close()

	rows, err := db.Query("SELECT flds FROM notes ORDER BY id")
	if err != nil {
		t.Fatalf("Failed to query notes: %v", err)
	}
	defer rows.Close()

	var notes []DeckNote
	for rows.Next() {
		var flds string
		if err := rows.Scan(&flds); err != nil {
			t.Fatalf("Failed to scan note: %v", err)
		}
		front, back, _ := strings.Cut(flds, "\x1f")
		notes = append(notes, DeckNote{Front: front, Back: back})
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("Failed to read notes: %v", err)
	}
	return notes
}
