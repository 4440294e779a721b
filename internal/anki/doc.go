// Package anki builds Anki flashcard decks. It writes .apkg packages (a zip
// holding a schema 11 SQLite collection) and CSV files for Anki's text
// importer.
package anki
