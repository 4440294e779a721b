package dictionary

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// OpenAIConfig configures an OpenAIDictionary
type OpenAIConfig struct {
	APIKey  string
	Model   string // Chat model, openai.GPT4oMini when empty
	BaseURL string // API base URL, the public endpoint when empty
}

// OpenAIDictionary implements Dictionary with an OpenAI chat model
type OpenAIDictionary struct {
	apiKey string
	model  string
	client *openai.Client
}

// NewOpenAIDictionary creates a new OpenAI-backed dictionary
func NewOpenAIDictionary(cfg *OpenAIConfig) *OpenAIDictionary {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}

	return &OpenAIDictionary{
		apiKey: cfg.APIKey,
		model:  model,
		client: openai.NewClientWithConfig(clientConfig),
	}
}

// Name returns the backend name
func (d *OpenAIDictionary) Name() string {
	return "openai"
}

// Lookup asks the chat model for the entry of word
func (d *OpenAIDictionary) Lookup(ctx context.Context, word string) (*Entry, error) {
	if d.apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key not found")
	}

	req := openai.ChatCompletionRequest{
		Model: d.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: llmSystemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: entryPrompt(word),
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		MaxTokens:   200,
		Temperature: 0.2,
	}

	resp, err := d.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, openAIError(err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("%w: no response from OpenAI", ErrMalformed)
	}

	return parseEntry(resp.Choices[0].Message.Content)
}

// openAIError turns HTTP level failures into a StatusError
func openAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode > 0 {
		return &StatusError{Service: "openai", Code: apiErr.HTTPStatusCode, Message: apiErr.Message}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode > 0 {
		return &StatusError{Service: "openai", Code: reqErr.HTTPStatusCode}
	}
	return fmt.Errorf("OpenAI API error: %w", err)
}
