package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/agenthands/stash/internal/config"
)

// NewClient builds the LLM and embedder clients for the configured provider.
// A nil EmbedderClient means the provider cannot embed and the caller must
// supply one separately.
func NewClient(ctx context.Context, cfg config.LLMConfig, emb config.EmbeddingConfig, temperature float32) (LLMClient, EmbedderClient, error) {
	provider := strings.ToLower(cfg.Provider)

	switch provider {
	case "openai":
		c := NewOpenAIClient(cfg.APIKey, cfg.Model, cfg.EmbeddingModel, cfg.BaseURL, emb.MaxTextLength, emb.Dimension)
		return c, c, nil

	case "gemini":
		c, err := NewGeminiClient(ctx, cfg.APIKey, cfg.Model, cfg.EmbeddingModel, temperature, emb.MaxTextLength)
		if err != nil {
			return nil, nil, err
		}
		return c, c, nil

	case "claude":
		c := NewClaudeClient(cfg.APIKey, cfg.Model, cfg.BaseURL)
		return c, nil, nil

	case "ollama":
		// OpenAI-compatible endpoint, same as the native client but with
		// usage tracking.
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		if !strings.HasSuffix(baseURL, "/v1") {
			baseURL = fmt.Sprintf("%s/v1", strings.TrimRight(baseURL, "/"))
		}

		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = "ollama" // dummy, ignored by Ollama
		}

		c := NewOpenAIClient(apiKey, cfg.Model, cfg.EmbeddingModel, baseURL, emb.MaxTextLength, emb.Dimension)
		return c, c, nil

	case "ollama-native":
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		c, err := NewOllamaClient(cfg.Model, baseURL, emb.MaxTextLength)
		if err != nil {
			return nil, nil, err
		}
		return c, c, nil

	default:
		return nil, nil, fmt.Errorf("unsupported llm provider: %s", provider)
	}
}
