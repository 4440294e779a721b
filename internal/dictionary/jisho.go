package dictionary

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultJishoURL is the jisho.org word search endpoint
const DefaultJishoURL = "https://jisho.org/api/v1/search/words"

// JishoConfig configures a JishoClient
type JishoConfig struct {
	BaseURL string        // Search endpoint, DefaultJishoURL when empty
	Timeout time.Duration // Per-request timeout, none when zero
}

// JishoClient implements Dictionary for the jisho.org API
type JishoClient struct {
	baseURL    string
	httpClient *http.Client
}

// jishoResponse represents the API response structure
type jishoResponse struct {
	Meta struct {
		Status int `json:"status"`
	} `json:"meta"`
	Data []jishoWord `json:"data"`
}

// jishoWord represents a single search hit
type jishoWord struct {
	Slug     string          `json:"slug"`
	IsCommon bool            `json:"is_common"`
	Japanese []jishoJapanese `json:"japanese"`
	Senses   []jishoSense    `json:"senses"`
}

type jishoJapanese struct {
	Word    string `json:"word"`
	Reading string `json:"reading"`
}

type jishoSense struct {
	EnglishDefinitions []string `json:"english_definitions"`
	PartsOfSpeech      []string `json:"parts_of_speech"`
}

// NewJishoClient creates a new jisho.org API client
func NewJishoClient(cfg *JishoConfig) *JishoClient {
	if cfg == nil {
		cfg = &JishoConfig{}
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultJishoURL
	}

	return &JishoClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Name returns the backend name
func (j *JishoClient) Name() string {
	return "jisho"
}

// Lookup searches jisho.org for word and returns its first hit
func (j *JishoClient) Lookup(ctx context.Context, word string) (*Entry, error) {
	params := url.Values{}
	params.Set("keyword", word)

	reqURL := j.baseURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := j.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &StatusError{
			Service: j.Name(),
			Code:    resp.StatusCode,
			Message: string(body),
		}
	}

	var jishoResp jishoResponse
	if err := json.NewDecoder(resp.Body).Decode(&jishoResp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if len(jishoResp.Data) == 0 {
		return nil, fmt.Errorf("%s: %w", word, ErrNoResult)
	}

	return jishoResp.Data[0].entry()
}

// entry maps a hit to an Entry using the first spelling and the first
// English definition of every sense
func (w jishoWord) entry() (*Entry, error) {
	if len(w.Japanese) == 0 {
		return nil, fmt.Errorf("%w: japanese", ErrMissingField)
	}
	japanese := w.Japanese[0]
	if japanese.Word == "" {
		return nil, fmt.Errorf("%w: word", ErrMissingField)
	}
	if japanese.Reading == "" {
		return nil, fmt.Errorf("%w: reading", ErrMissingField)
	}

	senses := make([]string, 0, len(w.Senses))
	for i, sense := range w.Senses {
		if len(sense.EnglishDefinitions) == 0 {
			return nil, fmt.Errorf("%w: english_definitions of sense %d", ErrMissingField, i)
		}
		senses = append(senses, sense.EnglishDefinitions[0])
	}

	return &Entry{
		Word:    japanese.Word,
		Reading: japanese.Reading,
		Senses:  senses,
	}, nil
}
