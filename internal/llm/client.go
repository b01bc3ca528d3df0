package llm

import (
	"context"
	"errors"
	"strings"
)

// ErrEmbeddingUnavailable indicates the embedding backend is unreachable,
// misconfigured, or was given empty text. Fatal for the current
// classification; callers may retry.
var ErrEmbeddingUnavailable = errors.New("embedding unavailable")

type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type EmbedderClient interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// prepareEmbedText validates and truncates text before sending it to an
// embedding backend. Empty text is an ErrEmbeddingUnavailable condition.
func prepareEmbedText(text string, maxLen int) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmbeddingUnavailable
	}
	if maxLen > 0 && len(text) > maxLen {
		text = text[:maxLen]
	}
	return text, nil
}
