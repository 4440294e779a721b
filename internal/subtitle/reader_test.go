package subtitle

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"codeberg.org/snonux/srt2anki/internal/testutil"
)

func TestReadFileFixture(t *testing.T) {
	path := testutil.WriteFixtureSRT(t, t.TempDir())

	lines, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	if len(lines) != 4 {
		t.Fatalf("Expected 4 dialogue lines, got %d: %q", len(lines), lines)
	}

	want := []string{"誰が俺を傷つけた？", "諦めるな、OK?", "七つの大罪", "俺は誰だ 123"}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("ReadFile() = %q, want %q", lines, want)
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.srt"))
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected wrapped os.ErrNotExist, got %v", err)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []Cue
	}{
		{
			name:    "empty file",
			content: "",
			want:    nil,
		},
		{
			name:    "only whitespace",
			content: "   \n\n\t\n\n  ",
			want:    nil,
		},
		{
			name:    "multi line cue",
			content: "1\n00:00:01,000 --> 00:00:02,000\n一行目\n二行目\n",
			want: []Cue{
				{Index: "1", Timing: "00:00:01,000 --> 00:00:02,000", Lines: []string{"一行目", "二行目"}},
			},
		},
		{
			name:    "windows line endings",
			content: "1\r\n00:00:01,000 --> 00:00:02,000\r\n猫\r\n\r\n2\r\n00:00:03,000 --> 00:00:04,000\r\n犬\r\n",
			want: []Cue{
				{Index: "1", Timing: "00:00:01,000 --> 00:00:02,000", Lines: []string{"猫"}},
				{Index: "2", Timing: "00:00:03,000 --> 00:00:04,000", Lines: []string{"犬"}},
			},
		},
		{
			name:    "byte order mark",
			content: "\uFEFF1\n00:00:01,000 --> 00:00:02,000\n猫\n",
			want: []Cue{
				{Index: "1", Timing: "00:00:01,000 --> 00:00:02,000", Lines: []string{"猫"}},
			},
		},
		{
			name:    "whitespace rows inside block",
			content: "1\n   \n00:00:01,000 --> 00:00:02,000\n猫\n",
			want: []Cue{
				{Index: "1", Timing: "00:00:01,000 --> 00:00:02,000", Lines: []string{"猫"}},
			},
		},
		{
			name:    "cue without dialogue",
			content: "1\n00:00:01,000 --> 00:00:02,000\n\n2\n00:00:03,000 --> 00:00:04,000\n犬\n",
			want: []Cue{
				{Index: "1", Timing: "00:00:01,000 --> 00:00:02,000"},
				{Index: "2", Timing: "00:00:03,000 --> 00:00:04,000", Lines: []string{"犬"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.content)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestReadSkipsIndexAndTiming(t *testing.T) {
	lines, err := Read(strings.NewReader(testutil.FixtureSRT))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	for _, line := range lines {
		if strings.Contains(line, "-->") {
			t.Errorf("Timing row leaked into dialogue: %q", line)
		}
		if line == "1" || line == "2" || line == "3" || line == "4" {
			t.Errorf("Index row leaked into dialogue: %q", line)
		}
	}
}
