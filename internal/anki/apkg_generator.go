package anki

import (
	"archive/zip"
	"crypto/sha1"
	"database/sql"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"codeberg.org/snonux/srt2anki/internal"
)

const (
	// ModelName is the note type every generated deck uses
	ModelName = "Simple Model"
	// FieldSeparator joins note fields in the notes.flds column
	FieldSeparator = "\x1f"
)

// noteNamespace scopes the name-based UUIDs used as note GUIDs
var noteNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://codeberg.org/snonux/srt2anki"))

// APKGGenerator creates Anki package files (.apkg)
type APKGGenerator struct {
	deckName string
	deckID   int64
	modelID  int64
	cards    []Card
	now      func() time.Time
}

// NewAPKGGenerator creates a new APKG generator.
// Deck and model IDs are derived from their names so that re-importing a
// regenerated deck updates the existing one in Anki.
func NewAPKGGenerator(deckName string) *APKGGenerator {
	return &APKGGenerator{
		deckName: deckName,
		deckID:   internal.StableID("deck:" + deckName),
		modelID:  internal.StableID("model:" + ModelName),
		cards:    make([]Card, 0),
		now:      time.Now,
	}
}

// AddCard adds a card to the generator. Cards with duplicate fronts are kept.
func (g *APKGGenerator) AddCard(card Card) {
	g.cards = append(g.cards, card)
}

// GenerateAPKG creates an .apkg file
func (g *APKGGenerator) GenerateAPKG(outputPath string) error {
	// Create temporary directory for building the package
	tempDir, err := os.MkdirTemp("", "srt2anki_export_*")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	// Decks without media still need an empty mapping
	if err := os.WriteFile(filepath.Join(tempDir, "media"), []byte("{}"), 0644); err != nil {
		return fmt.Errorf("failed to create media mapping: %w", err)
	}

	dbPath := filepath.Join(tempDir, "collection.anki2")
	if err := g.createDatabase(dbPath); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}

	lock := flock.New(outputPath + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("failed to lock %s: %w", outputPath, err)
	}
	if !locked {
		return fmt.Errorf("deck %s is being written by another process", outputPath)
	}
	defer func() {
		lock.Unlock()
		os.Remove(lock.Path())
	}()

	if err := g.createZipPackage(tempDir, outputPath); err != nil {
		return fmt.Errorf("failed to create zip package: %w", err)
	}

	return nil
}

// createDatabase creates the Anki SQLite database
func (g *APKGGenerator) createDatabase(dbPath string) error {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := g.createTables(db); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	if err := g.insertCollection(db); err != nil {
		return fmt.Errorf("failed to insert collection: %w", err)
	}

	if err := g.insertNotesAndCards(db); err != nil {
		return fmt.Errorf("failed to insert notes and cards: %w", err)
	}

	return nil
}

// createTables creates the Anki schema version 11 tables
func (g *APKGGenerator) createTables(db *sql.DB) error {
	for _, stmt := range schemaStatements() {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to execute %q: %w", firstLine(stmt), err)
		}
	}
	return nil
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}

// insertCollection writes the single col row holding the deck and note type
func (g *APKGGenerator) insertCollection(db *sql.DB) error {
	now := g.now().Unix()

	cols, err := g.collectionColumns(now)
	if err != nil {
		return fmt.Errorf("failed to encode collection: %w", err)
	}

	_, err = db.Exec(`INSERT INTO col VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		1,        // id
		now,      // crt
		now*1000, // mod
		now*1000, // scm
		11,       // ver
		0,        // dty
		0,        // usn
		0,        // ls
		cols.conf,
		cols.models,
		cols.decks,
		cols.dconf,
		"{}", // tags
	)
	return err
}

// insertNotesAndCards inserts one new note and one new card per Card, in
// order, so the new-card queue follows the subtitle.
func (g *APKGGenerator) insertNotesAndCards(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// notes: id, guid, mid, mod, usn, tags, flds, sfld, csum, flags, data
	insertNote, err := tx.Prepare(`INSERT INTO notes VALUES (?, ?, ?, ?, -1, '', ?, ?, ?, 0, '')`)
	if err != nil {
		return err
	}
	defer insertNote.Close()

	// cards: id, nid, did, ord, mod, usn, type, queue, due, then scheduling state
	insertCard, err := tx.Prepare(`INSERT INTO cards VALUES (?, ?, ?, 0, ?, -1, 0, 0, ?, 0, 0, 0, 0, 0, 0, 0, 0, '')`)
	if err != nil {
		return err
	}
	defer insertCard.Close()

	now := g.now()
	mod := now.Unix()
	base := now.UnixMilli()

	for i, card := range g.cards {
		id := base + int64(i)
		fields := card.Front + FieldSeparator + card.Back

		if _, err := insertNote.Exec(id, g.noteGUID(i, card), g.modelID, mod, fields, card.Front, fieldChecksum(card.Front)); err != nil {
			return fmt.Errorf("failed to insert note for %q: %w", card.Front, err)
		}
		// due is the position in the new-card queue
		if _, err := insertCard.Exec(id, id, g.deckID, mod, i+1); err != nil {
			return fmt.Errorf("failed to insert card for %q: %w", card.Front, err)
		}
	}

	return tx.Commit()
}

// noteGUID returns a name-based UUID unique per deck position, so duplicate
// cards still import as separate notes.
func (g *APKGGenerator) noteGUID(i int, card Card) string {
	name := strings.Join([]string{g.deckName, strconv.Itoa(i), card.Front, card.Back}, FieldSeparator)
	return uuid.NewSHA1(noteNamespace, []byte(name)).String()
}

// fieldChecksum is Anki's duplicate-detection checksum: the first 32 bits of
// the SHA-1 of the sort field.
func fieldChecksum(field string) int64 {
	hash := sha1.Sum([]byte(field))
	return int64(binary.BigEndian.Uint32(hash[:4]))
}

// createZipPackage creates the final .apkg zip file
func (g *APKGGenerator) createZipPackage(tempDir, outputPath string) error {
	zipFile, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer zipFile.Close()

	archive := zip.NewWriter(zipFile)

	for _, name := range []string{"collection.anki2", "media"} {
		if err := addZipEntry(archive, tempDir, name); err != nil {
			return err
		}
	}

	if err := archive.Close(); err != nil {
		return err
	}
	return zipFile.Close()
}

func addZipEntry(archive *zip.Writer, dir, name string) error {
	writer, err := archive.Create(name)
	if err != nil {
		return err
	}

	file, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = io.Copy(writer, file)
	return err
}
