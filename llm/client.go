// Package llm abstracts the language-model client used by the petition
// generator so providers can be swapped or mocked.
package llm

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// Client produces a completion for a prompt
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Settings holds provider configuration
type Settings struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
}

// NewClientFromEnv creates a client from environment variables. Provider is
// selected by LLM_PROVIDER (gemini | openai | static); static returns
// LLM_STATIC_RESPONSE verbatim and exists for offline use.
func NewClientFromEnv(ctx context.Context) (Client, error) {
	provider := os.Getenv("LLM_PROVIDER")
	if provider == "" {
		provider = "gemini"
	}

	switch provider {
	case "gemini":
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			return nil, errors.New("GEMINI_API_KEY environment variable is required for the gemini provider")
		}
		model := os.Getenv("GEMINI_MODEL")
		return NewGeminiClient(ctx, Settings{Model: model, APIKey: apiKey})

	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, errors.New("OPENAI_API_KEY environment variable is required for the openai provider")
		}
		return NewOpenAIClient(Settings{
			Model:   os.Getenv("OPENAI_MODEL"),
			APIKey:  apiKey,
			BaseURL: os.Getenv("OPENAI_BASE_URL"),
		})

	case "static":
		return &StaticClient{Text: os.Getenv("LLM_STATIC_RESPONSE")}, nil

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s", provider)
	}
}
