package core

import (
	"context"
	"fmt"
)

type MockLLM struct {
	Response string
	Err      error
	Calls    int
}

func (m *MockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	m.Calls++
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

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
