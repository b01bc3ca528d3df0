package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type LLMConfig struct {
	Provider       string `toml:"provider"`
	Model          string `toml:"model"`
	EmbeddingModel string `toml:"embedding_model"`
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
}

// ThresholdConfig holds the similarity cutoffs used by the folder matcher.
// Higher domain thresholds mean fewer top-level folders.
type ThresholdConfig struct {
	Domain            float64 `toml:"domain"`
	Subdomain         float64 `toml:"subdomain"`
	Leaf              float64 `toml:"leaf"`
	LeafConfidence    float64 `toml:"leaf_confidence"`
	MinKeywordOverlap float64 `toml:"min_keyword_overlap"`
	MaxDepth          int     `toml:"max_depth"`
}

type EmbeddingConfig struct {
	Dimension     int `toml:"dimension"`
	MaxTextLength int `toml:"max_text_length"`
}

type TaxonomyConfig struct {
	Temperature       float64 `toml:"temperature"`
	MaxDomainWords    int     `toml:"max_domain_words"`
	MaxSubdomainWords int     `toml:"max_subdomain_words"`
	MaxLeafWords      int     `toml:"max_leaf_words"`
}

// ConfusionPair marks two terms whose folders must never be merged even when
// their embeddings agree.
type ConfusionPair struct {
	A string `toml:"a"`
	B string `toml:"b"`
}

type MatchingConfig struct {
	ConfusionPairs []ConfusionPair `toml:"confusion_pairs"`
	ForbiddenWords []string        `toml:"forbidden_words"`
}

type MemgraphConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

type DatabaseConfig struct {
	// Backend is one of "memory" or "memgraph". Selected once at startup.
	Backend  string         `toml:"backend"`
	Memgraph MemgraphConfig `toml:"memgraph"`
}

type Config struct {
	LLM        LLMConfig       `toml:"llm"`
	Thresholds ThresholdConfig `toml:"thresholds"`
	Embedding  EmbeddingConfig `toml:"embedding"`
	Taxonomy   TaxonomyConfig  `toml:"taxonomy"`
	Matching   MatchingConfig  `toml:"matching"`
	Database   DatabaseConfig  `toml:"database"`
}

// Default returns the built-in configuration. Load starts from these values,
// so a config file only needs to override what differs.
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:       "gemini",
			Model:          "gemini-2.5-flash",
			EmbeddingModel: "text-embedding-004",
		},
		Thresholds: ThresholdConfig{
			Domain:            0.82,
			Subdomain:         0.80,
			Leaf:              0.75,
			LeafConfidence:    0.70,
			MinKeywordOverlap: 0.20,
			MaxDepth:          3,
		},
		Embedding: EmbeddingConfig{
			Dimension:     768,
			MaxTextLength: 8000,
		},
		Taxonomy: TaxonomyConfig{
			Temperature:       0.3,
			MaxDomainWords:    4,
			MaxSubdomainWords: 4,
			MaxLeafWords:      4,
		},
		Matching: MatchingConfig{
			ConfusionPairs: defaultConfusionPairs(),
			ForbiddenWords: defaultForbiddenWords(),
		},
		Database: DatabaseConfig{
			Backend: "memory",
			Memgraph: MemgraphConfig{
				URI: "bolt://localhost:7687",
			},
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return cfg, nil
}

// ApplyEnv overrides config fields from environment variables when present.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		c.LLM.Provider = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv("LLM_EMBEDDING_MODEL"); v != "" {
		c.LLM.EmbeddingModel = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" && c.LLM.APIKey == "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		c.LLM.BaseURL = v
	}
	if v := os.Getenv("DATABASE_BACKEND"); v != "" {
		c.Database.Backend = v
	}
	if v := os.Getenv("MEMGRAPH_URI"); v != "" {
		c.Database.Memgraph.URI = v
	}
	if v := os.Getenv("MEMGRAPH_USER"); v != "" {
		c.Database.Memgraph.User = v
	}
	if v := os.Getenv("MEMGRAPH_PASSWORD"); v != "" {
		c.Database.Memgraph.Password = v
	}
}

func defaultConfusionPairs() []ConfusionPair {
	// Common false-positive patterns seen in embedding-only matching.
	return []ConfusionPair{
		{A: "cooking", B: "computer"},
		{A: "health", B: "computer"},
		{A: "finance", B: "fitness"},
		{A: "travel", B: "technology"},
	}
}

func defaultForbiddenWords() []string {
	return []string{
		"saved", "stash", "stashed", "bookmark", "bookmarked",
		"like", "liked", "favorite", "favourited", "favorited",
		"share", "shared", "post", "posted", "tweet", "tweeted",
		"instagram", "tiktok", "youtube", "twitter", "facebook",
		"video", "image", "photo", "picture", "link", "url",
		"content", "item", "thing", "stuff", "misc", "miscellaneous",
		"other", "general", "various", "random", "untitled", "unknown",
	}
}

// ForbiddenWordSet returns the forbidden label words as a lookup set.
func (m MatchingConfig) ForbiddenWordSet() map[string]bool {
	set := make(map[string]bool, len(m.ForbiddenWords))
	for _, w := range m.ForbiddenWords {
		set[w] = true
	}
	return set
}
