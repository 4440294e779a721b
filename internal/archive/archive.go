package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ArchiveDeck moves an existing deck file into an archive directory next to
// it, named after the deck and the current time. It returns the archive path,
// or an empty string when there is no deck to archive.
func ArchiveDeck(deckPath string) (string, error) {
	return archiveDeck(deckPath, time.Now())
}

func archiveDeck(deckPath string, now time.Time) (string, error) {
	info, err := os.Stat(deckPath)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to stat deck: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("deck path is a directory: %s", deckPath)
	}

	archiveDir := filepath.Join(filepath.Dir(deckPath), "archive")
	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	ext := filepath.Ext(deckPath)
	stem := strings.TrimSuffix(filepath.Base(deckPath), ext)

	archivePath := filepath.Join(archiveDir, fmt.Sprintf("%s-%s%s", stem, now.Format("20060102-150405"), ext))

	// Two archives within the same second
	if _, err := os.Stat(archivePath); err == nil {
		archivePath = filepath.Join(archiveDir, fmt.Sprintf("%s-%s%s", stem, now.Format("20060102-150405.000000"), ext))
	}

	if err := os.Rename(deckPath, archivePath); err != nil {
		return "", fmt.Errorf("failed to archive deck: %w", err)
	}

	return archivePath, nil
}
