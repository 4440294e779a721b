package dictionary

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestParseEntry(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    *Entry
		wantErr error
	}{
		{
			name:    "plain json",
			content: `{"word": "諦める", "reading": "あきらめる", "senses": ["to give up", "to abandon"]}`,
			want:    &Entry{Word: "諦める", Reading: "あきらめる", Senses: []string{"to give up", "to abandon"}},
		},
		{
			name:    "code fence",
			content: "```json\n{\"word\": \"誰\", \"reading\": \"だれ\", \"senses\": [\"who\"]}\n```",
			want:    &Entry{Word: "誰", Reading: "だれ", Senses: []string{"who"}},
		},
		{
			name:    "blank senses dropped",
			content: `{"word": " 俺 ", "reading": "おれ", "senses": ["I", " ", ""]}`,
			want:    &Entry{Word: "俺", Reading: "おれ", Senses: []string{"I"}},
		},
		{
			name:    "not a word",
			content: `{"word": "", "reading": "", "senses": []}`,
			wantErr: ErrNoResult,
		},
		{
			name:    "missing reading",
			content: `{"word": "誰", "senses": ["who"]}`,
			wantErr: ErrMissingField,
		},
		{
			name:    "missing senses",
			content: `{"word": "誰", "reading": "だれ"}`,
			wantErr: ErrMissingField,
		},
		{
			name:    "not json",
			content: "誰 means who",
			wantErr: ErrMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseEntry(tt.content)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseEntry() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseEntry() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`{"a": 1}`, `{"a": 1}`},
		{"```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"```json\n{\"a\": 1}\n```", `{"a": 1}`},
	}

	for _, tt := range tests {
		if got := stripCodeFence(tt.in); got != tt.want {
			t.Errorf("stripCodeFence(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEntryPrompt(t *testing.T) {
	prompt := entryPrompt("傷つけ")
	if !strings.Contains(prompt, "'傷つけ'") {
		t.Errorf("Prompt does not name the word: %s", prompt)
	}
	for _, key := range []string{`"word"`, `"reading"`, `"senses"`} {
		if !strings.Contains(prompt, key) {
			t.Errorf("Prompt does not ask for %s", key)
		}
	}
}
