package model

import (
	"time"

	"github.com/google/uuid"
)

// Item is one piece of content to classify: a topic/summary pair supplied by
// the downloader, plus optional enrichment.
type Item struct {
	ID       string `json:"item_id"`
	RawTopic string `json:"raw_topic"`
	Summary  string `json:"summary"`

	SourceApp string    `json:"source_app,omitempty"`
	URL       string    `json:"url,omitempty"`
	UserNote  string    `json:"user_note,omitempty"`
	Keywords  []string  `json:"keywords,omitempty"`
	MediaType string    `json:"media_type,omitempty"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// NormalizeItem fills in an id and timestamp when the caller omitted them.
func NormalizeItem(item Item) Item {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.Timestamp.IsZero() {
		item.Timestamp = time.Now().UTC()
	}
	return item
}

// LabelWithAliases is a proposed label plus its search aliases. Optional
// marks a marginal leaf that should degrade to a tag instead of a folder.
type LabelWithAliases struct {
	Label    string   `json:"label"`
	Aliases  []string `json:"aliases,omitempty"`
	Optional bool     `json:"optional,omitempty"`
}

// TaxonomyCandidate is the validated three-level label proposal for one item.
// Produced fresh per classification request and consumed exactly once by the
// matcher.
type TaxonomyCandidate struct {
	Domain    LabelWithAliases  `json:"domain"`
	Subdomain LabelWithAliases  `json:"subdomain"`
	LeafTopic *LabelWithAliases `json:"leaf_topic,omitempty"`

	Tags       []string `json:"tags,omitempty"`
	Confidence float64  `json:"confidence"`
	Rationale  string   `json:"rationale,omitempty"`
}

// FullPath is the candidate's proposed path before matching. Optional leaves
// are excluded.
func (c TaxonomyCandidate) FullPath() string {
	path := c.Domain.Label + "/" + c.Subdomain.Label
	if c.LeafTopic != nil && !c.LeafTopic.Optional {
		path += "/" + c.LeafTopic.Label
	}
	return path
}
