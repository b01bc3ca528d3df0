// Package taxonomy turns a raw topic/summary pair into a canonical
// domain/subdomain/leaf label proposal, using an LLM with an alias-map
// shortcut and a keyword fallback when the model is unavailable.
package taxonomy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agenthands/stash/internal/config"
	"github.com/agenthands/stash/internal/core/common"
	"github.com/agenthands/stash/internal/core/model"
	"github.com/agenthands/stash/internal/llm"
)

// ErrMalformedCandidate indicates the LLM response could not be parsed
// into a usable candidate. Callers normally see the fallback instead.
var ErrMalformedCandidate = errors.New("malformed taxonomy candidate")

const (
	maxTags         = 10
	maxRationaleLen = 500
	maxSummaryLen   = 2000
)

var labelPunctuation = regexp.MustCompile(`[^\p{L}\p{N}_\s&-]`)

// Generator produces taxonomy candidates for items.
type Generator struct {
	client    llm.LLMClient
	cfg       config.TaxonomyConfig
	seeds     []config.SeedDomain
	aliasMap  map[string]string
	forbidden map[string]bool
}

// NewGenerator builds a generator. The alias map is derived from the seed
// taxonomy once at construction.
func NewGenerator(client llm.LLMClient, cfg *config.Config) *Generator {
	return &Generator{
		client:    client,
		cfg:       cfg.Taxonomy,
		seeds:     config.SeedDomains,
		aliasMap:  config.BuildAliasMap(config.SeedDomains),
		forbidden: cfg.Matching.ForbiddenWordSet(),
	}
}

// Generate produces the taxonomy candidate for one item. Empty input gets
// a low-confidence default, known aliases bypass the LLM entirely, and an
// LLM or parse failure degrades to the keyword fallback rather than an
// error.
func (g *Generator) Generate(ctx context.Context, item model.Item) (*model.TaxonomyCandidate, error) {
	if strings.TrimSpace(item.RawTopic) == "" && strings.TrimSpace(item.Summary) == "" {
		log.Printf("empty input for item %s, using default taxonomy", item.ID)
		return &model.TaxonomyCandidate{
			Domain:     model.LabelWithAliases{Label: "Uncategorized"},
			Subdomain:  model.LabelWithAliases{Label: "General"},
			Confidence: 0.3,
			Rationale:  "No content provided for classification",
		}, nil
	}

	if candidate := g.aliasShortcut(item); candidate != nil {
		return candidate, nil
	}

	prompt := g.buildPrompt(item)
	response, err := g.client.Generate(ctx, prompt)
	if err != nil {
		log.Printf("taxonomy generation failed for %q: %v", item.RawTopic, err)
		return g.Fallback(item), nil
	}

	candidate, err := g.parseCandidate(response, item)
	if err != nil {
		log.Printf("taxonomy response unusable for %q: %v", item.RawTopic, err)
		return g.Fallback(item), nil
	}

	log.Printf("generated taxonomy %s (confidence: %.2f)", candidate.FullPath(), candidate.Confidence)
	return candidate, nil
}

// aliasShortcut resolves a raw topic that is an exact known alias, skipping
// the LLM call. Returns nil when the topic is not in the alias map or maps
// to a bare domain.
func (g *Generator) aliasShortcut(item model.Item) *model.TaxonomyCandidate {
	topic := strings.ToLower(strings.TrimSpace(item.RawTopic))
	canonical, ok := g.aliasMap[topic]
	if !ok {
		return nil
	}
	parts := strings.Split(canonical, "/")
	if len(parts) < 2 {
		return nil
	}

	log.Printf("quick match via alias map: %s -> %s", topic, canonical)
	return &model.TaxonomyCandidate{
		Domain:     model.LabelWithAliases{Label: parts[0], Aliases: []string{topic}},
		Subdomain:  model.LabelWithAliases{Label: parts[1]},
		Tags:       []string{topic},
		Confidence: 0.95,
		Rationale:  "Matched via alias map",
	}
}

// Fallback classifies by counting seed alias occurrences in the item text.
// Used when the LLM path fails; always succeeds.
func (g *Generator) Fallback(item model.Item) *model.TaxonomyCandidate {
	log.Printf("using fallback classification for %q", item.RawTopic)

	text := strings.ToLower(item.RawTopic + " " + item.Summary)

	bestDomain := ""
	bestSubdomain := ""
	bestScore := 0
	for _, domain := range g.seeds {
		domainScore := 0
		for _, alias := range domain.Aliases {
			if strings.Contains(text, alias) {
				domainScore++
			}
		}
		if domainScore > bestScore {
			bestScore = domainScore
			bestDomain = domain.Label
			bestSubdomain = "General"
		}
		for _, sub := range domain.Subdomains {
			subScore := domainScore
			for _, alias := range sub.Aliases {
				if strings.Contains(text, alias) {
					subScore++
				}
			}
			if subScore > bestScore {
				bestScore = subScore
				bestDomain = domain.Label
				bestSubdomain = sub.Label
			}
		}
	}
	if bestDomain == "" {
		bestDomain = "Personal"
		bestSubdomain = "Ideas"
	}

	var tags []string
	for _, w := range strings.Fields(item.RawTopic) {
		if len(w) > 2 {
			tags = append(tags, strings.ToLower(w))
		}
		if len(tags) == 5 {
			break
		}
	}

	return &model.TaxonomyCandidate{
		Domain:     model.LabelWithAliases{Label: bestDomain},
		Subdomain:  model.LabelWithAliases{Label: bestSubdomain},
		Tags:       tags,
		Confidence: 0.5,
		Rationale:  "Fallback classification via keyword matching",
	}
}

// rawCandidate mirrors the LLM's JSON shape with label fields kept raw so
// both "Frontend" and {"label": "Frontend"} are accepted.
type rawCandidate struct {
	Domain     json.RawMessage `json:"domain"`
	Subdomain  json.RawMessage `json:"subdomain"`
	LeafTopic  json.RawMessage `json:"leaf_topic"`
	Tags       []interface{}   `json:"tags"`
	Confidence interface{}     `json:"confidence"`
	Rationale  interface{}     `json:"rationale"`
}

func (g *Generator) parseCandidate(response string, item model.Item) (*model.TaxonomyCandidate, error) {
	raw, err := common.ParseJSON[rawCandidate](response)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCandidate, err)
	}

	domain := parseLabel(raw.Domain, "Uncategorized", false)
	domain.Label = g.CleanLabel(domain.Label, g.cfg.MaxDomainWords)
	if domain.Label == "" {
		domain.Label = "Uncategorized"
	}
	// Canonicalize the domain when it is itself a known alias.
	if canonical, ok := g.aliasMap[strings.ToLower(domain.Label)]; ok && !strings.Contains(canonical, "/") {
		domain.Label = canonical
	}

	subdomain := parseLabel(raw.Subdomain, "General", false)
	subdomain.Label = g.CleanLabel(subdomain.Label, g.cfg.MaxSubdomainWords)
	if subdomain.Label == "" {
		subdomain.Label = "General"
	}

	var leaf *model.LabelWithAliases
	if len(raw.LeafTopic) > 0 && string(raw.LeafTopic) != "null" {
		parsed := parseLabel(raw.LeafTopic, "", true)
		parsed.Label = g.CleanLabel(parsed.Label, g.cfg.MaxLeafWords)
		if parsed.Label != "" {
			leaf = &parsed
		}
	}

	var tags []string
	for _, t := range raw.Tags {
		s, ok := t.(string)
		if !ok {
			continue
		}
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" || g.forbidden[s] {
			continue
		}
		tags = append(tags, s)
	}
	if topic := strings.ToLower(strings.TrimSpace(item.RawTopic)); topic != "" && !contains(tags, topic) {
		tags = append(tags, topic)
	}
	if len(tags) > maxTags {
		tags = tags[:maxTags]
	}

	confidence := 0.7
	if f, ok := toFloat(raw.Confidence); ok {
		confidence = f
	}
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	rationale := ""
	if s, ok := raw.Rationale.(string); ok {
		rationale = s
	}
	if len(rationale) > maxRationaleLen {
		rationale = rationale[:maxRationaleLen]
	}

	return &model.TaxonomyCandidate{
		Domain:     domain,
		Subdomain:  subdomain,
		LeafTopic:  leaf,
		Tags:       tags,
		Confidence: confidence,
		Rationale:  rationale,
	}, nil
}

// parseLabel accepts either a bare string or a LabelWithAliases object.
// For string leaves, optional defaults to the given value.
func parseLabel(raw json.RawMessage, defaultLabel string, defaultOptional bool) model.LabelWithAliases {
	label := model.LabelWithAliases{Label: defaultLabel, Optional: defaultOptional}
	if len(raw) == 0 {
		return label
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s != "" {
			label.Label = s
		}
		return label
	}

	var obj struct {
		Label    string   `json:"label"`
		Aliases  []string `json:"aliases"`
		Optional *bool    `json:"optional"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		if obj.Label != "" {
			label.Label = obj.Label
		}
		label.Aliases = obj.Aliases
		if obj.Optional != nil {
			label.Optional = *obj.Optional
		} else {
			label.Optional = defaultOptional
		}
	}
	return label
}

// CleanLabel normalizes a folder label: collapsed whitespace, forbidden
// words removed (unless that would empty the label), capped word count,
// Title Case, punctuation stripped except & and -.
func (g *Generator) CleanLabel(label string, maxWords int) string {
	words := strings.Fields(label)
	if len(words) == 0 {
		return ""
	}

	cleaned := make([]string, 0, len(words))
	for _, w := range words {
		if !g.forbidden[strings.ToLower(w)] {
			cleaned = append(cleaned, w)
		}
	}
	if len(cleaned) == 0 {
		cleaned = words
	}
	if maxWords > 0 && len(cleaned) > maxWords {
		cleaned = cleaned[:maxWords]
	}

	out := titleCase(strings.Join(cleaned, " "))
	out = labelPunctuation.ReplaceAllString(out, "")
	return strings.TrimSpace(out)
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		lower := strings.ToLower(w)
		r, size := utf8.DecodeRuneInString(lower)
		words[i] = string(unicode.ToUpper(r)) + lower[size:]
	}
	return strings.Join(words, " ")
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
