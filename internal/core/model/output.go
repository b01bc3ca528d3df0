package model

import (
	"strings"
	"time"
)

// Output is the persisted record for one completed classification.
type Output struct {
	ItemID    string `json:"item_id"`
	FinalPath string `json:"final_path"`

	CreatedFolders []string `json:"created_folders"`
	ReusedFolders  []string `json:"reused_folders"`

	AppliedLabels    map[string]string  `json:"applied_labels"`
	Tags             []string           `json:"tags"`
	SimilarityScores map[string]float64 `json:"similarity_scores"`
	Confidence       float64            `json:"confidence"`
	Notes            string             `json:"notes,omitempty"`

	ProcessedAt      time.Time `json:"processed_at"`
	ProcessingTimeMs int64     `json:"processing_time_ms"`
}

// OutputFromMatch assembles the output record for a finished match.
func OutputFromMatch(itemID string, match *HierarchicalMatch, candidate TaxonomyCandidate, elapsed time.Duration) *Output {
	created := make([]string, 0, 3)
	for _, f := range match.CreatedFolders() {
		created = append(created, f.Path)
	}
	reused := make([]string, 0, 3)
	for _, f := range match.ReusedFolders() {
		reused = append(reused, f.Path)
	}

	labels := map[string]string{
		"domain":    match.DomainResult.LabelUsed,
		"subdomain": match.SubdomainResult.LabelUsed,
	}
	scores := map[string]float64{
		"domain_best":    match.DomainResult.SimilarityScore,
		"subdomain_best": match.SubdomainResult.SimilarityScore,
		"leaf_best":      0,
	}

	var notes []string
	for _, r := range match.results() {
		if r.Notes != "" {
			notes = append(notes, r.Notes)
		}
	}
	if match.LeafResult != nil {
		labels["leaf_topic"] = match.LeafResult.LabelUsed
		scores["leaf_best"] = match.LeafResult.SimilarityScore
	}

	noteText := strings.Join(notes, "; ")
	if noteText == "" {
		noteText = candidate.Rationale
	}

	return &Output{
		ItemID:           itemID,
		FinalPath:        match.FinalPath(),
		CreatedFolders:   created,
		ReusedFolders:    reused,
		AppliedLabels:    labels,
		Tags:             candidate.Tags,
		SimilarityScores: scores,
		Confidence:       candidate.Confidence,
		Notes:            noteText,
		ProcessedAt:      time.Now().UTC(),
		ProcessingTimeMs: elapsed.Milliseconds(),
	}
}

// ErrorOutput is the user-visible record for a failed classification.
func ErrorOutput(itemID string, err error, elapsed time.Duration) *Output {
	return &Output{
		ItemID:    itemID,
		FinalPath: "Uncategorized/Error",
		AppliedLabels: map[string]string{
			"domain":    "Uncategorized",
			"subdomain": "Error",
		},
		CreatedFolders:   []string{},
		ReusedFolders:    []string{},
		Tags:             []string{},
		SimilarityScores: map[string]float64{},
		Confidence:       0,
		Notes:            "Classification failed: " + err.Error(),
		ProcessedAt:      time.Now().UTC(),
		ProcessingTimeMs: elapsed.Milliseconds(),
	}
}

// BatchOutput aggregates the results of a batch classification run.
type BatchOutput struct {
	Results           []*Output `json:"results"`
	TotalItems        int       `json:"total_items"`
	Successful        int       `json:"successful"`
	Failed            int       `json:"failed"`
	NewFoldersCreated int       `json:"new_folders_created"`
	FoldersReused     int       `json:"folders_reused"`
	ProcessingTimeMs  int64     `json:"processing_time_ms"`
}
