package factory

import (
	"fmt"

	"storefront-assistant-be/pkg/llm"
	"storefront-assistant-be/pkg/llm/gemini"
	"storefront-assistant-be/pkg/llm/ollama"
)

// NewLLMProvider selects a completion backend from configuration.
// "ollama" runs against a local model, "gemini" against the hosted API.
func NewLLMProvider(provider, model, ollamaBaseURL, geminiApiKey string) (llm.LLMProvider, error) {
	switch provider {
	case "ollama":
		return ollama.NewOllamaProvider(ollamaBaseURL, model), nil
	case "gemini":
		if geminiApiKey == "" {
			return nil, fmt.Errorf("gemini provider selected but no API key configured")
		}
		return gemini.NewGeminiProvider(geminiApiKey, model), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", provider)
	}
}
