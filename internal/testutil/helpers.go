package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// FixtureSRT is a four-cue subtitle file whose dialogue contains
// 誰, 傷つけ, 諦め, 俺, 七 and 大罪 mixed with Latin text and punctuation.
const FixtureSRT = `1
00:00:01,000 --> 00:00:03,500
誰が俺を傷つけた？

2
00:00:04,000 --> 00:00:06,000
諦めるな、OK?

3
00:00:07,250 --> 00:00:09,000
七つの大罪

4
00:00:10,000 --> 00:00:12,000
俺は誰だ 123
`

// WriteFixtureSRT writes FixtureSRT into dir and returns its path
func WriteFixtureSRT(t *testing.T, dir string) string {
	t.Helper()

	path := filepath.Join(dir, "test.srt")
	CreateTestFile(t, path, []byte(FixtureSRT))
	return path
}

// CreateTestFile creates a test file with content
func CreateTestFile(t *testing.T, path string, content []byte) {
	t.Helper()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create directory for test file: %v", err)
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("Failed to create test file %s: %v", path, err)
	}
}

// AssertFileExists checks if a file exists
func AssertFileExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("Expected file to exist: %s", path)
	}
}

// AssertFileNotExists checks if a file does not exist
func AssertFileNotExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); err == nil {
		t.Errorf("Expected file to not exist: %s", path)
	}
}
