package taxonomy

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agenthands/stash/internal/config"
	"github.com/agenthands/stash/internal/core/model"
)

type MockLLMClient struct {
	Response string
	Err      error
	Calls    int
}

func (m *MockLLMClient) Generate(ctx context.Context, prompt string) (string, error) {
	m.Calls++
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

func newTestGenerator(client *MockLLMClient) *Generator {
	return NewGenerator(client, config.Default())
}

func TestGenerateEmptyInput(t *testing.T) {
	mock := &MockLLMClient{}
	g := newTestGenerator(mock)

	candidate, err := g.Generate(context.Background(), model.Item{RawTopic: "  ", Summary: ""})

	assert.NoError(t, err)
	assert.Equal(t, "Uncategorized", candidate.Domain.Label)
	assert.Equal(t, "General", candidate.Subdomain.Label)
	assert.Nil(t, candidate.LeafTopic)
	assert.Equal(t, 0.3, candidate.Confidence)
	assert.Equal(t, 0, mock.Calls)
}

func TestGenerateAliasShortcutSkipsLLM(t *testing.T) {
	mock := &MockLLMClient{}
	g := newTestGenerator(mock)

	candidate, err := g.Generate(context.Background(), model.Item{
		RawTopic: "Calorie Deficit",
		Summary:  "notes on cutting",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Health & Fitness", candidate.Domain.Label)
	assert.Equal(t, "Weight Loss", candidate.Subdomain.Label)
	assert.Equal(t, 0.95, candidate.Confidence)
	assert.Contains(t, candidate.Tags, "calorie deficit")
	assert.Equal(t, 0, mock.Calls)
}

func TestGenerateParsesLLMResponse(t *testing.T) {
	mock := &MockLLMClient{Response: "```json\n" + `{
		"domain": {"label": "Computer Science", "aliases": ["cs"]},
		"subdomain": {"label": "Frontend", "aliases": ["web dev"]},
		"leaf_topic": {"label": "React", "aliases": ["reactjs"], "optional": false},
		"tags": ["react", "hooks"],
		"confidence": 0.9,
		"rationale": "Tutorial about React hooks"
	}` + "\n```"}
	g := newTestGenerator(mock)

	candidate, err := g.Generate(context.Background(), model.Item{
		RawTopic: "React hooks",
		Summary:  "Tutorial on useEffect and useState",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Computer Science", candidate.Domain.Label)
	assert.Equal(t, "Frontend", candidate.Subdomain.Label)
	assert.NotNil(t, candidate.LeafTopic)
	assert.Equal(t, "React", candidate.LeafTopic.Label)
	assert.False(t, candidate.LeafTopic.Optional)
	assert.Equal(t, 0.9, candidate.Confidence)
	assert.Contains(t, candidate.Tags, "react hooks")
	assert.Equal(t, 1, mock.Calls)
}

func TestGenerateAcceptsBareStringLabels(t *testing.T) {
	mock := &MockLLMClient{Response: `{
		"domain": "Cooking",
		"subdomain": "Recipes",
		"leaf_topic": "Pasta",
		"confidence": 0.8
	}`}
	g := newTestGenerator(mock)

	candidate, err := g.Generate(context.Background(), model.Item{
		RawTopic: "carbonara",
		Summary:  "how to make carbonara",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Cooking", candidate.Domain.Label)
	assert.Equal(t, "Recipes", candidate.Subdomain.Label)
	assert.NotNil(t, candidate.LeafTopic)
	assert.Equal(t, "Pasta", candidate.LeafTopic.Label)
	// A bare string leaf is treated as marginal.
	assert.True(t, candidate.LeafTopic.Optional)
}

func TestGenerateMalformedResponseFallsBack(t *testing.T) {
	mock := &MockLLMClient{Response: "I cannot classify this content."}
	g := newTestGenerator(mock)

	candidate, err := g.Generate(context.Background(), model.Item{
		RawTopic: "strength training workout",
		Summary:  "three day split with cardio",
	})

	assert.NoError(t, err)
	assert.Equal(t, 0.5, candidate.Confidence)
	assert.Equal(t, "Health & Fitness", candidate.Domain.Label)
	assert.Equal(t, "Exercise", candidate.Subdomain.Label)
	assert.Equal(t, "Fallback classification via keyword matching", candidate.Rationale)
}

func TestGenerateLLMErrorFallsBack(t *testing.T) {
	mock := &MockLLMClient{Err: errors.New("rate limited")}
	g := newTestGenerator(mock)

	candidate, err := g.Generate(context.Background(), model.Item{
		RawTopic: "zzq blorp",
		Summary:  "xvqk",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Personal", candidate.Domain.Label)
	assert.Equal(t, "Ideas", candidate.Subdomain.Label)
	assert.Equal(t, 0.5, candidate.Confidence)
}

func TestGenerateForbiddenTagsDropped(t *testing.T) {
	mock := &MockLLMClient{Response: `{
		"domain": {"label": "Entertainment"},
		"subdomain": {"label": "Movies"},
		"tags": ["video", "thriller", "YOUTUBE", "heist"],
		"confidence": 0.85
	}`}
	g := newTestGenerator(mock)

	candidate, err := g.Generate(context.Background(), model.Item{
		RawTopic: "heist movie",
		Summary:  "a thriller about a heist",
	})

	assert.NoError(t, err)
	assert.NotContains(t, candidate.Tags, "video")
	assert.NotContains(t, candidate.Tags, "youtube")
	assert.Contains(t, candidate.Tags, "thriller")
	assert.Contains(t, candidate.Tags, "heist")
}

func TestGenerateConfidenceClamped(t *testing.T) {
	mock := &MockLLMClient{Response: `{
		"domain": {"label": "Work"},
		"subdomain": {"label": "Meetings"},
		"confidence": 1.7
	}`}
	g := newTestGenerator(mock)

	candidate, err := g.Generate(context.Background(), model.Item{
		RawTopic: "standup notes",
		Summary:  "weekly sync",
	})

	assert.NoError(t, err)
	assert.Equal(t, 1.0, candidate.Confidence)
}

func TestCleanLabel(t *testing.T) {
	g := newTestGenerator(&MockLLMClient{})

	tests := []struct {
		name     string
		in       string
		maxWords int
		want     string
	}{
		{"collapses whitespace", "  machine   learning  ", 4, "Machine Learning"},
		{"removes forbidden words", "saved Recipes", 4, "Recipes"},
		{"keeps all-forbidden label", "Video Content", 4, "Video Content"},
		{"truncates word count", "one two three four five", 4, "One Two Three Four"},
		{"strips punctuation keeps ampersand", "Health & Fitness!", 4, "Health & Fitness"},
		{"keeps accented letters", "café reviews", 4, "Café Reviews"},
		{"keeps non-ascii mid-word", "español", 4, "Español"},
		{"capitalizes multibyte first letter", "über alltag", 4, "Über Alltag"},
		{"empty", "   ", 4, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.CleanLabel(tt.in, tt.maxWords))
		})
	}
}
