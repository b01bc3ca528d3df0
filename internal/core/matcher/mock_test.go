package matcher

import (
	"context"
	"fmt"
)

// MockEmbedder returns a fixed vector per input text so similarity scores
// in tests are exact and repeatable.
type MockEmbedder struct {
	Vectors map[string][]float32
	Default []float32
	ErrFor  map[string]error
}

func (m *MockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if err, ok := m.ErrFor[text]; ok {
		return nil, err
	}
	if v, ok := m.Vectors[text]; ok {
		return v, nil
	}
	if m.Default != nil {
		return m.Default, nil
	}
	return nil, fmt.Errorf("no mock vector for %q", text)
}
