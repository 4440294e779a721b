package dictionary

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/sashabaranov/go-openai"
)

// chatServer answers chat completion requests with content
func chatServer(t *testing.T, status int, content string) (*httptest.Server, *openai.ChatCompletionRequest) {
	t.Helper()

	var captured openai.ChatCompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.NotFound(w, r)
			return
		}
		json.NewDecoder(r.Body).Decode(&captured)

		w.Header().Set("Content-Type", "application/json")
		if status != http.StatusOK {
			w.WriteHeader(status)
			w.Write([]byte(`{"error": {"message": "quota exceeded", "type": "insufficient_quota"}}`))
			return
		}
		json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			ID:     "chatcmpl-test",
			Object: "chat.completion",
			Model:  captured.Model,
			Choices: []openai.ChatCompletionChoice{{
				Index:        0,
				Message:      openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: content},
				FinishReason: openai.FinishReasonStop,
			}},
		})
	}))
	t.Cleanup(server.Close)
	return server, &captured
}

func TestNewOpenAIDictionary(t *testing.T) {
	dict := NewOpenAIDictionary(&OpenAIConfig{APIKey: "test-api-key"})

	if dict.apiKey != "test-api-key" {
		t.Errorf("Expected API key 'test-api-key', got '%s'", dict.apiKey)
	}
	if dict.model != openai.GPT4oMini {
		t.Errorf("Expected default model %s, got %s", openai.GPT4oMini, dict.model)
	}
	if dict.client == nil {
		t.Error("OpenAI client not initialized")
	}
	if dict.Name() != "openai" {
		t.Errorf("Expected name 'openai', got %q", dict.Name())
	}
}

func TestOpenAILookup_NoAPIKey(t *testing.T) {
	dict := NewOpenAIDictionary(&OpenAIConfig{})

	_, err := dict.Lookup(context.Background(), "誰")
	if err == nil {
		t.Fatal("Expected error for missing API key")
	}
	if err.Error() != "OpenAI API key not found" {
		t.Errorf("Expected 'OpenAI API key not found' error, got: %v", err)
	}
}

func TestOpenAILookup(t *testing.T) {
	server, captured := chatServer(t, http.StatusOK, `{"word": "傷つける", "reading": "きずつける", "senses": ["to wound", "to damage"]}`)

	dict := NewOpenAIDictionary(&OpenAIConfig{APIKey: "test-api-key", Model: "gpt-test", BaseURL: server.URL + "/v1"})
	entry, err := dict.Lookup(context.Background(), "傷つけ")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}

	if entry.Word != "傷つける" || entry.Reading != "きずつける" {
		t.Errorf("Unexpected entry %+v", entry)
	}
	if strings.Join(entry.Senses, ", ") != "to wound, to damage" {
		t.Errorf("Unexpected senses %v", entry.Senses)
	}

	if captured.Model != "gpt-test" {
		t.Errorf("Expected model gpt-test, got %q", captured.Model)
	}
	if captured.ResponseFormat == nil || captured.ResponseFormat.Type != openai.ChatCompletionResponseFormatTypeJSONObject {
		t.Error("Expected JSON response format")
	}
	if len(captured.Messages) != 2 || !strings.Contains(captured.Messages[1].Content, "傷つけ") {
		t.Errorf("Unexpected messages %+v", captured.Messages)
	}
}

func TestOpenAILookup_StatusError(t *testing.T) {
	server, _ := chatServer(t, http.StatusTooManyRequests, "")

	dict := NewOpenAIDictionary(&OpenAIConfig{APIKey: "test-api-key", BaseURL: server.URL + "/v1"})
	_, err := dict.Lookup(context.Background(), "誰")

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("Expected *StatusError, got %v", err)
	}
	if statusErr.Code != http.StatusTooManyRequests {
		t.Errorf("Expected status 429, got %d", statusErr.Code)
	}
}

func TestOpenAILookup_Malformed(t *testing.T) {
	server, _ := chatServer(t, http.StatusOK, "誰 means who")

	dict := NewOpenAIDictionary(&OpenAIConfig{APIKey: "test-api-key", BaseURL: server.URL + "/v1"})
	_, err := dict.Lookup(context.Background(), "誰")
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("Expected ErrMalformed, got %v", err)
	}
}

func TestOpenAILookup_Integration(t *testing.T) {
	// Skip if no API key
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		t.Skip("Skipping integration test: OPENAI_API_KEY not set")
	}

	dict := NewOpenAIDictionary(&OpenAIConfig{APIKey: apiKey})
	entry, err := dict.Lookup(context.Background(), "諦める")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}

	t.Logf("Entry for '諦める': %+v", entry)
}
