package dictionary

import (
	"encoding/json"
	"fmt"
	"strings"
)

const llmSystemPrompt = "You are a Japanese-English dictionary. Answer every query with a single JSON object and nothing else."

// llmEntry is the JSON object chat models are asked to return
type llmEntry struct {
	Word    string   `json:"word"`
	Reading string   `json:"reading"`
	Senses  []string `json:"senses"`
}

// entryPrompt asks for the dictionary form, kana reading and short English
// glosses of word
func entryPrompt(word string) string {
	return fmt.Sprintf(`Look up the Japanese word '%s'.
Respond with a JSON object with these keys:
- "word": the dictionary form of the word as it is usually written
- "reading": its reading in hiragana
- "senses": a list of short English glosses, one per sense, most common first
If '%s' is not a Japanese word, respond with {"word": "", "reading": "", "senses": []}.`, word, word)
}

// parseEntry decodes a chat model answer into an Entry
func parseEntry(content string) (*Entry, error) {
	content = stripCodeFence(strings.TrimSpace(content))

	var e llmEntry
	if err := json.Unmarshal([]byte(content), &e); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	e.Word = strings.TrimSpace(e.Word)
	e.Reading = strings.TrimSpace(e.Reading)

	senses := make([]string, 0, len(e.Senses))
	for _, sense := range e.Senses {
		if sense = strings.TrimSpace(sense); sense != "" {
			senses = append(senses, sense)
		}
	}

	switch {
	case e.Word == "" && e.Reading == "" && len(senses) == 0:
		return nil, ErrNoResult
	case e.Word == "":
		return nil, fmt.Errorf("%w: word", ErrMissingField)
	case e.Reading == "":
		return nil, fmt.Errorf("%w: reading", ErrMissingField)
	case len(senses) == 0:
		return nil, fmt.Errorf("%w: senses", ErrMissingField)
	}

	return &Entry{Word: e.Word, Reading: e.Reading, Senses: senses}, nil
}

// stripCodeFence removes a markdown code fence some models wrap JSON in
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
