package models

import (
	"context"
	"fmt"
	"io"
	"slices"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
)

// Config holds the credentials used to query model lists
type Config struct {
	OpenAIKey     string
	OpenAIBaseURL string // public endpoint when empty
	GeminiKey     string
	GeminiBaseURL string // public endpoint when empty
}

// Lister handles listing chat models usable as dictionary backends
type Lister struct {
	cfg    Config
	client *openai.Client
}

// NewLister creates a new model lister
func NewLister(cfg Config) *Lister {
	clientConfig := openai.DefaultConfig(cfg.OpenAIKey)
	if cfg.OpenAIBaseURL != "" {
		clientConfig.BaseURL = cfg.OpenAIBaseURL
	}
	return &Lister{
		cfg:    cfg,
		client: openai.NewClientWithConfig(clientConfig),
	}
}

// ListAvailableModels writes the chat models of every configured provider to w
func (l *Lister) ListAvailableModels(ctx context.Context, w io.Writer) error {
	if l.cfg.OpenAIKey == "" && l.cfg.GeminiKey == "" {
		return fmt.Errorf("no API key found. Set OPENAI_API_KEY or GEMINI_API_KEY environment variable or configure in .srt2anki.yaml")
	}

	if l.cfg.OpenAIKey != "" {
		chatModels, err := l.OpenAIChatModels(ctx)
		if err != nil {
			return err
		}
		printModels(w, "OpenAI chat models (--dictionary openai --openai-model ...):", chatModels)
	}

	if l.cfg.GeminiKey != "" {
		geminiModels, err := l.GeminiModels(ctx)
		if err != nil {
			return err
		}
		printModels(w, "Gemini models (--dictionary gemini --gemini-model ...):", geminiModels)
	}

	return nil
}

// OpenAIChatModels returns the sorted IDs of OpenAI models that can answer
// chat completions
func (l *Lister) OpenAIChatModels(ctx context.Context) ([]string, error) {
	models, err := l.client.ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}

	chatModels := []string{}
	for _, model := range models.Models {
		if isChatModel(model.ID) {
			chatModels = append(chatModels, model.ID)
		}
	}
	sort.Strings(chatModels)
	return chatModels, nil
}

// GeminiModels returns the sorted names of Gemini models supporting
// generateContent
func (l *Lister) GeminiModels(ctx context.Context) ([]string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      l.cfg.GeminiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: l.cfg.GeminiBaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	names := []string{}
	for model, err := range client.Models.All(ctx) {
		if err != nil {
			return nil, fmt.Errorf("failed to list Gemini models: %w", err)
		}
		if len(model.SupportedActions) > 0 && !slices.Contains(model.SupportedActions, "generateContent") {
			continue
		}
		names = append(names, strings.TrimPrefix(model.Name, "models/"))
	}
	sort.Strings(names)
	return names, nil
}

// isChatModel keeps text chat models and drops speech, image, embedding and
// moderation models
func isChatModel(id string) bool {
	for _, skip := range []string{"tts", "audio", "realtime", "transcribe", "image", "dall-e", "embedding", "moderation", "whisper", "search"} {
		if strings.Contains(id, skip) {
			return false
		}
	}
	return strings.HasPrefix(id, "gpt") || strings.HasPrefix(id, "o1") ||
		strings.HasPrefix(id, "o3") || strings.HasPrefix(id, "o4") || strings.Contains(id, "chat")
}

func printModels(w io.Writer, title string, models []string) {
	fmt.Fprintln(w, title)
	if len(models) == 0 {
		fmt.Fprintln(w, "  No models found")
		return
	}
	for _, model := range models {
		fmt.Fprintf(w, "  %s\n", model)
	}
}
