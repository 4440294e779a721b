package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"
)

// JishoWord is one canned dictionary entry served by JishoServer
type JishoWord struct {
	Word     string
	Reading  string
	Meanings []string // first English definition of each sense

	// Aliases are inflected keywords jisho.org resolves to this entry
	Aliases []string
}

// FixtureWords holds the canonical entries for the words in FixtureSRT.
// The glosses are modelled on what jisho.org returns for these words.
// kagome reads 七つの大罪 as 七つ, so both 七 and 七つ are served.
var FixtureWords = []JishoWord{
	{Word: "七", Reading: "しち", Meanings: []string{"seven", "hepta-"}},
	{Word: "七つ", Reading: "ななつ", Meanings: []string{"seven", "seven years of age"}},
	{Word: "俺", Reading: "おれ", Meanings: []string{"I"}},
	{Word: "傷つける", Reading: "きずつける", Meanings: []string{"to wound", "to hurt someone's feelings (pride, etc.)", "to damage"}, Aliases: []string{"傷つけ"}},
	{Word: "誰", Reading: "だれ", Meanings: []string{"who"}},
	{Word: "諦める", Reading: "あきらめる", Meanings: []string{"to give up"}},
	{Word: "大罪", Reading: "だいざい", Meanings: []string{"serious crime", "Mortal sin"}},
}

// Back returns the card back expected for the word
func (w JishoWord) Back() string {
	return "【" + w.Reading + "】: " + strings.Join(w.Meanings, ", ")
}

// JishoServer is a fake of the jisho.org word search API.
// A keyword resolves to the entry with the same spelling or alias; anything
// else gets an empty result set.
type JishoServer struct {
	*httptest.Server

	mu    sync.Mutex
	words []JishoWord
	calls []string
}

// NewJishoServer starts a fake jisho API serving words; it is closed on test cleanup
func NewJishoServer(t *testing.T, words []JishoWord) *JishoServer {
	t.Helper()

	js := &JishoServer{words: words}
	js.Server = httptest.NewServer(http.HandlerFunc(js.handle))
	t.Cleanup(js.Close)
	return js
}

// SearchURL returns the search endpoint of the fake server
func (js *JishoServer) SearchURL() string {
	return js.Server.URL + "/api/v1/search/words"
}

// Calls returns the keywords requested so far
func (js *JishoServer) Calls() []string {
	js.mu.Lock()
	defer js.mu.Unlock()

	return append([]string(nil), js.calls...)
}

func (js *JishoServer) handle(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("keyword")

	js.mu.Lock()
	js.calls = append(js.calls, keyword)
	js.mu.Unlock()

	data := []any{}
	if word, ok := js.find(keyword); ok {
		senses := make([]map[string]any, 0, len(word.Meanings))
		for _, meaning := range word.Meanings {
			senses = append(senses, map[string]any{
				"english_definitions": []string{meaning},
				"parts_of_speech":     []string{},
			})
		}
		data = append(data, map[string]any{
			"slug":      word.Word,
			"is_common": true,
			"japanese": []map[string]string{
				{"word": word.Word, "reading": word.Reading},
			},
			"senses": senses,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"meta": map[string]int{"status": 200},
		"data": data,
	})
}

func (js *JishoServer) find(keyword string) (JishoWord, bool) {
	for _, word := range js.words {
		if word.Word == keyword || slices.Contains(word.Aliases, keyword) {
			return word, true
		}
	}
	return JishoWord{}, false
}
