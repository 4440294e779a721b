package dictionary

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// DefaultGeminiModel is used when no Gemini model is configured
const DefaultGeminiModel = "gemini-2.5-flash"

// GeminiConfig configures a GeminiDictionary
type GeminiConfig struct {
	APIKey  string
	Model   string // DefaultGeminiModel when empty
	BaseURL string // API base URL, the public endpoint when empty
}

// GeminiDictionary implements Dictionary with a Gemini model
type GeminiDictionary struct {
	model  string
	client *genai.Client
}

// NewGeminiDictionary creates a new Gemini-backed dictionary
func NewGeminiDictionary(ctx context.Context, cfg *GeminiConfig) (*GeminiDictionary, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key not found")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{
			BaseURL: cfg.BaseURL,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = DefaultGeminiModel
	}

	return &GeminiDictionary{model: model, client: client}, nil
}

// Name returns the backend name
func (d *GeminiDictionary) Name() string {
	return "gemini"
}

// Lookup asks the model for the entry of word
func (d *GeminiDictionary) Lookup(ctx context.Context, word string) (*Entry, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(llmSystemPrompt, genai.RoleUser),
		ResponseMIMEType:  "application/json",
	}

	resp, err := d.client.Models.GenerateContent(ctx, d.model, genai.Text(entryPrompt(word)), config)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return nil, &StatusError{Service: "gemini", Code: apiErr.Code, Message: apiErr.Message}
		}
		return nil, fmt.Errorf("Gemini API error: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("%w: no response from Gemini", ErrMalformed)
	}

	return parseEntry(text)
}
