package model

import "strings"

// Level is the folder hierarchy depth being matched.
type Level int

const (
	LevelDomain Level = iota + 1
	LevelSubdomain
	LevelLeaf
)

func (l Level) String() string {
	switch l {
	case LevelDomain:
		return "domain"
	case LevelSubdomain:
		return "subdomain"
	case LevelLeaf:
		return "leaf"
	}
	return "unknown"
}

// Action is the matcher's decision at one level.
type Action string

const (
	ReuseExisting Action = "reuse_existing"
	CreateNew     Action = "create_new"
	AttachAsChild Action = "attach_as_child"
	Skip          Action = "skip"
)

// MatchResult is the outcome of matching at a single level. Exactly one of
// MatchedFolder/NewFolder is set unless the action is Skip.
type MatchResult struct {
	Level           Level   `json:"level"`
	Action          Action  `json:"action"`
	MatchedFolder   *Folder `json:"matched_folder,omitempty"`
	NewFolder       *Folder `json:"new_folder,omitempty"`
	SimilarityScore float64 `json:"similarity_score"`
	LabelUsed       string  `json:"label_used"`
	Notes           string  `json:"notes,omitempty"`
}

// Folder returns the resolved folder for this level, matched or new.
func (r *MatchResult) Folder() *Folder {
	if r == nil {
		return nil
	}
	if r.MatchedFolder != nil {
		return r.MatchedFolder
	}
	return r.NewFolder
}

// HierarchicalMatch composes the per-level results. Subdomain matching
// depends on a resolved domain, leaf matching on a resolved subdomain.
type HierarchicalMatch struct {
	DomainResult    *MatchResult `json:"domain_result"`
	SubdomainResult *MatchResult `json:"subdomain_result"`
	LeafResult      *MatchResult `json:"leaf_result,omitempty"`
}

// FinalPath joins the labels of the resolved, non-skipped results.
func (m *HierarchicalMatch) FinalPath() string {
	var parts []string
	for _, r := range m.results() {
		if r.Action == Skip {
			continue
		}
		if f := r.Folder(); f != nil {
			parts = append(parts, f.Label)
		}
	}
	return strings.Join(parts, "/")
}

// CreatedFolders lists folders created during this match, in level order.
func (m *HierarchicalMatch) CreatedFolders() []*Folder {
	var created []*Folder
	for _, r := range m.results() {
		if (r.Action == CreateNew || r.Action == AttachAsChild) && r.NewFolder != nil {
			created = append(created, r.NewFolder)
		}
	}
	return created
}

// ReusedFolders lists existing folders matched during this call.
func (m *HierarchicalMatch) ReusedFolders() []*Folder {
	var reused []*Folder
	for _, r := range m.results() {
		if r.Action == ReuseExisting && r.MatchedFolder != nil {
			reused = append(reused, r.MatchedFolder)
		}
	}
	return reused
}

func (m *HierarchicalMatch) results() []*MatchResult {
	results := make([]*MatchResult, 0, 3)
	for _, r := range []*MatchResult{m.DomainResult, m.SubdomainResult, m.LeafResult} {
		if r != nil {
			results = append(results, r)
		}
	}
	return results
}
